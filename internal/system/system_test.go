package system_test

import (
	"math"
	"testing"
	"time"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/handler"
	"github.com/l1jgo/arena/internal/host"
	"github.com/l1jgo/arena/internal/system"
	"github.com/l1jgo/arena/internal/world/worldtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 50 * time.Millisecond

func newRunner(f *worldtest.Fixture) *coresys.Runner {
	r := coresys.NewRunner()
	system.RegisterAll(r, f.State)
	return r
}

// runUntil ticks until done reports true, failing after limit ticks.
func runUntil(t *testing.T, r *coresys.Runner, limit int, done func() bool) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		r.Tick(tick)
		if done() {
			return i
		}
	}
	t.Fatalf("condition not met after %d ticks", limit)
	return limit
}

func indexOf(events []host.Event, name string, entity ecs.EntityID) int {
	for i, e := range events {
		if e.Name == name && e.Entity == entity {
			return i
		}
	}
	return -1
}

func TestRegisterAllPhaseOrder(t *testing.T) {
	f := worldtest.New(t)
	r := newRunner(f)
	var last coresys.Phase
	for _, s := range r.Systems() {
		assert.GreaterOrEqual(t, s.Phase(), last)
		last = s.Phase()
	}
	assert.Equal(t, coresys.PhaseCleanup, last)
}

func TestMonsterWalksUpAndStrikes(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(7, 5), math.Pi)
	r := newRunner(f)

	runUntil(t, r, 200, func() bool { return f.Rec.Count("Damage", p) > 0 })

	assert.Equal(t, 6.0, f.LifeOf(p))
	ev := f.Rec.Events
	walked := indexOf(ev, "DebugPath", g)
	start := indexOf(ev, "MeleeAttackStart", g)
	finish := indexOf(ev, "MeleeAttackFinish", g)
	hit := indexOf(ev, "Damage", p)
	require.True(t, walked >= 0 && start > walked && finish > start && hit > finish,
		"walk %d start %d finish %d hit %d", walked, start, finish, hit)
	assert.Equal(t, g, ev[hit].Other)
	assert.Equal(t, "melee", ev[hit].Detail)

	d, _ := f.Distance(p, g)
	assert.LessOrEqual(t, d, 1.0)
	assert.GreaterOrEqual(t, d, 0.6-0.05, "bodies stay apart")
	assert.Equal(t, 1, f.Rec.Count("MonsterCreate", g))
}

func TestArcherBulletHits(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	a := f.SpawnMonster(t, "archer", geom.V(5, 10), 0)
	r := newRunner(f)

	runUntil(t, r, 200, func() bool { return f.Rec.Count("Damage", p) > 0 })

	assert.Equal(t, 7.0, f.LifeOf(p))
	created := f.Rec.Named("BulletCreate")
	require.NotEmpty(t, created)
	assert.Equal(t, a, created[0].Other)
	assert.Positive(t, f.Rec.Count("BulletUpdate", created[0].Entity))
	assert.Equal(t, 1, f.Rec.Count("BulletRemove", created[0].Entity))
	d := f.Rec.Named("Damage")
	assert.Equal(t, "range", d[0].Detail)

	r.Tick(tick)
	assert.False(t, f.Alive(created[0].Entity), "destroyed at cleanup")
}

func TestBulletExpiresAtRange(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(10, 10))
	r := newRunner(f)

	require.Equal(t, handler.OK, handler.UseSkillAt(p, "bolt", geom.V(10, 1), f.State))
	runUntil(t, r, 100, func() bool { return f.Rec.Count("BulletRemove", 0) > 0 })

	created := f.Rec.Named("BulletCreate")
	require.Len(t, created, 1)
	removed := f.Rec.Named("BulletRemove")[0]
	assert.Equal(t, created[0].Entity, removed.Entity)
	assert.Zero(t, f.Rec.Count("Damage", 0))
}

func TestAvoidanceKeepsBodiesApart(t *testing.T) {
	f := worldtest.New(t)
	a := f.SpawnMonster(t, "goblin", geom.V(4, 10), 0)
	b := f.SpawnMonster(t, "goblin", geom.V(16, 10.1), math.Pi)
	require.Equal(t, handler.OK, handler.MoveToPoint(a, geom.V(16, 10), f.State))
	require.Equal(t, handler.OK, handler.MoveToPoint(b, geom.V(4, 10.1), f.State))
	r := newRunner(f)

	minDist := math.Inf(1)
	for i := 0; i < 200; i++ {
		r.Tick(tick)
		d, _ := f.Distance(a, b)
		minDist = math.Min(minDist, d)
	}
	assert.GreaterOrEqual(t, minDist, 0.6-0.05)
	assert.Positive(t, f.Rec.Count("DebugNeighbor", a))
}

func TestShiftRunsToClippedPoint(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(18, 5))
	r := newRunner(f)

	require.Equal(t, handler.OK, handler.Shift(p, geom.V(25, 5), f.State))
	n := runUntil(t, r, 20, func() bool { return f.Rec.Count("ShiftFinish", p) > 0 })
	assert.LessOrEqual(t, n, 4)

	pos, _ := f.Position.Get(p)
	assert.InDelta(t, 19.95, pos.X, 1e-6)
	assert.True(t, f.Mesh.Contains(*pos))
	assert.True(t, f.ShiftCooldown.Has(p))

	runUntil(t, r, 60, func() bool { return !f.ShiftCooldown.Has(p) })
	assert.Equal(t, handler.OK, handler.Shift(p, geom.V(10, 5), f.State))
}

func TestShieldRegenRestoresDepleted(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	r := newRunner(f)
	sh, _ := f.Shield.Get(p)
	sh.Value, sh.Full, sh.Depleted = 0, false, true

	for i := 0; i < 20; i++ {
		r.Tick(tick)
	}
	assert.InDelta(t, 1.0, sh.Value, 1e-9)
	assert.Equal(t, handler.FailForbidden, handler.ShieldActivate(p, f.State))

	runUntil(t, r, 200, func() bool { return sh.Full })
	assert.False(t, sh.Depleted)
	assert.Equal(t, handler.OK, handler.ShieldActivate(p, f.State))

	// no regen while raised
	sh.Value = 4
	r.Tick(tick)
	assert.Equal(t, 4.0, sh.Value)
}

func TestTimersExpire(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	r := newRunner(f)
	f.MeleeCooldown.Add(p, component.Cooldown{Duration: 0.47})
	f.Hide.Add(p, component.Hide{Duration: 0.22})
	f.SkillCooldowns.Add(p, component.SkillCooldowns{}).Start("bolt", 0.27)

	for i := 0; i < 4; i++ {
		r.Tick(tick)
	}
	assert.True(t, f.IsHidden(p))
	r.Tick(tick)
	assert.False(t, f.IsHidden(p))
	assert.Equal(t, 1, f.Rec.Count("HideFinish", p))

	for i := 0; i < 5; i++ {
		r.Tick(tick)
	}
	assert.False(t, f.MeleeCooldown.Has(p))
	sc, _ := f.SkillCooldowns.Get(p)
	assert.False(t, sc.Active("bolt"))
}

func TestStunWearsOff(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	r := newRunner(f)

	require.Equal(t, handler.OK, handler.Stun(p, 0.5, f.State))
	n := runUntil(t, r, 40, func() bool { return f.Rec.Count("StunFinish", p) > 0 })
	assert.InDelta(t, 10, n, 1)
	st, _ := f.StateOf(p)
	assert.Equal(t, component.StateIdle, st)
}

func TestVisibilityTracksPlayer(t *testing.T) {
	cfg := worldtest.Config()
	cfg.Grid.VisibleCell = 4
	f := worldtest.NewWith(t, cfg, worldtest.Room())
	p := f.SpawnPlayer(t, geom.V(2, 2))
	g := f.SpawnMonster(t, "goblin", geom.V(15, 15), 0)
	f.AddTile(host.Tile{ID: 1, Kind: "torch", Position: geom.V(1, 1)})
	f.AddTile(host.Tile{ID: 2, Kind: "torch", Position: geom.V(13, 13)})
	r := newRunner(f)

	r.Tick(tick)
	assert.Zero(t, f.Rec.Count("MonsterCreate", g))
	require.Len(t, f.Rec.Named("TileCreate"), 1)
	assert.Equal(t, 4, f.Rec.Count("DebugGridCell", 0))

	f.MarkDirty(g)
	r.Tick(tick)
	assert.Zero(t, f.Rec.Count("MonsterUpdate", g), "not shown yet")

	pos, _ := f.Position.Get(p)
	*pos = geom.V(14, 14)
	r.Tick(tick)
	assert.Equal(t, 1, f.Rec.Count("MonsterCreate", g))
	assert.Len(t, f.Rec.Named("TileDelete"), 1)
	assert.Len(t, f.Rec.Named("TileCreate"), 2)
	assert.True(t, system.InView(f.State, g))

	f.Despawn(g)
	r.Tick(tick)
	assert.Equal(t, 1, f.Rec.Count("MonsterRemove", g))
	assert.False(t, system.InView(f.State, g))
}

func TestEnemySearchSharesWithTeammates(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(2, 10))
	a := f.SpawnMonster(t, "goblin", geom.V(7, 10), 0)
	b := f.SpawnMonster(t, "goblin", geom.V(10, 10), 0)
	f.Index()
	search := system.NewEnemySearchSystem(f.State)

	search.Update(tick) // a
	ea, _ := f.Enemies.Get(a)
	assert.Equal(t, []ecs.EntityID{p}, ea.IDs)

	search.Update(tick) // b, told by a
	eb, _ := f.Enemies.Get(b)
	assert.Equal(t, []ecs.EntityID{p}, eb.IDs)
	assert.Equal(t, 1, f.Rec.Count("DebugSearch", b))

	f.Hide.Add(p, component.Hide{Duration: 5})
	search.Update(tick)
	search.Update(tick)
	assert.Empty(t, ea.IDs)
	assert.Empty(t, eb.IDs)
}

func TestKilledEnemyIsForgotten(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(9, 5), 0)
	r := newRunner(f)
	r.Tick(tick)
	e, _ := f.Enemies.Get(g)
	require.Contains(t, e.IDs, p)

	handler.QueueDamage(p, component.DamageEntry{Attacker: g, Amount: 99, Kind: component.DamageMelee}, f.State)
	r.Tick(tick) // damage applied, death emitted
	r.Tick(tick) // dispatched
	assert.NotContains(t, e.IDs, p)
	assert.Equal(t, 1, f.Rec.Count("Death", p))
}

func TestIdleMonsterPausesThenWanders(t *testing.T) {
	f := worldtest.New(t)
	g := f.SpawnMonster(t, "goblin", geom.V(10, 10), 0)
	r := newRunner(f)

	r.Tick(tick)
	st, _ := f.StateOf(g)
	assert.Equal(t, component.StateIdleWait, st)

	runUntil(t, r, 200, func() bool {
		st, _ := f.StateOf(g)
		return st == component.StateWalkToPoint
	})
	a, _ := f.Action.Get(g)
	w := a.Data.(*component.WalkToPoint)
	assert.LessOrEqual(t, w.Goal.Dist(geom.V(10, 10)), 2.0+1e-9)
}

func TestOutputFlushesDirtyPlayerOnce(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	r := newRunner(f)

	f.MarkDirty(p)
	r.Tick(tick)
	assert.Equal(t, 1, f.Rec.Count("PlayerUpdate", p))
	r.Tick(tick)
	assert.Equal(t, 1, f.Rec.Count("PlayerUpdate", p))
}
