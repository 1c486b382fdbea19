package handler_test

import (
	"math"
	"testing"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/handler"
	"github.com/l1jgo/arena/internal/world/worldtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeleeAttackHitsInCone(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(5.8, 5), math.Pi/2)
	f.Index()

	require.Equal(t, handler.OK, handler.Attack(g, p, f.State))
	c := f.Casting(g)
	require.NotNil(t, c)
	assert.Equal(t, component.CastMelee, c.Cast)
	assert.InDelta(t, 0.4, c.Total, 1e-9)
	fc, _ := f.Facing.Get(g)
	assert.InDelta(t, math.Pi, math.Abs(fc.Angle), 1e-9, "snapped toward target")

	handler.CompleteCast(g, f.State)
	handler.ApplyQueuedDamage(p, f.State)

	assert.Equal(t, 6.0, f.LifeOf(p))
	assert.Equal(t, []string{"MeleeAttackStart", "MeleeAttackFinish", "CooldownStart"}, f.Rec.For(g)[len(f.Rec.For(g))-3:])
	assert.Equal(t, 1, f.Rec.Count("Damage", p))
	assert.True(t, f.MeleeCooldown.Has(g))
	assert.Equal(t, handler.FailCooldown, handler.Attack(g, p, f.State))
}

func TestMeleeMissesOutsideCone(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(5.8, 5), 0)
	f.Index()

	require.Equal(t, handler.OK, handler.Attack(g, p, f.State))
	fc, _ := f.Facing.Get(g)
	fc.Angle = 0 // turned its back
	handler.CompleteCast(g, f.State)
	handler.ApplyQueuedDamage(p, f.State)

	assert.Equal(t, 10.0, f.LifeOf(p))
	assert.Zero(t, f.Rec.Count("Damage", 0))
}

func TestAttackOutOfReachWalks(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(10, 5), 0)

	require.Equal(t, handler.OK, handler.Attack(g, p, f.State))
	a, _ := f.Action.Get(g)
	w, ok := a.Data.(*component.WalkToPoint)
	require.True(t, ok)
	assert.Equal(t, p, w.Target)
	assert.InDelta(t, 0.9, w.StopDistance, 1e-9)

	ta, ok := f.TargetAction.Get(g)
	require.True(t, ok)
	assert.Equal(t, component.TargetAttack, ta.Kind)
	assert.Equal(t, p, ta.Entity)

	// arriving re-issues the attack
	pos, _ := f.Position.Get(g)
	*pos = geom.V(5.8, 5)
	assert.Equal(t, handler.OK, handler.FinishWalk(g, f.State))
	assert.NotNil(t, f.Casting(g))
	assert.False(t, f.TargetAction.Has(g))
}

func TestHandAttackWithoutWeapon(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(5.6, 5), 0)
	f.Index()

	require.Equal(t, handler.OK, handler.Attack(p, g, f.State))
	assert.Equal(t, component.CastHand, f.Casting(p).Cast)
	handler.CompleteCast(p, f.State)
	handler.ApplyQueuedDamage(g, f.State)

	assert.Equal(t, 7.0, f.LifeOf(g))
	assert.Equal(t, 1, f.Rec.Count("HandAttackFinish", p))
}

func TestRangeAttackSpawnsBullet(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	a := f.SpawnMonster(t, "archer", geom.V(5, 10), 0)

	require.Equal(t, handler.OK, handler.Attack(a, p, f.State))
	assert.Equal(t, component.CastRange, f.Casting(a).Cast)
	handler.CompleteCast(a, f.State)

	require.Equal(t, 1, f.Bullets.Len())
	bid := f.Bullets.Snapshot(nil)[0]
	b, _ := f.Bullet.Get(bid)
	assert.Equal(t, a, b.Owner)
	assert.Equal(t, component.DamageRange, b.Kind)
	assert.InDelta(t, -math.Pi/2, b.Direction, 1e-9)
	assert.InDelta(t, 8.0, b.Range, 1e-9)
	assert.Equal(t, 1, f.Rec.Count("BulletCreate", bid))

	handler.BulletHit(bid, p, f.State)
	handler.ApplyQueuedDamage(p, f.State)
	assert.Equal(t, 7.0, f.LifeOf(p))
}

func TestBulletRangeClippedByWall(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(18, 5))
	f.SpawnMonster(t, "goblin", geom.V(2, 2), 0)
	require.Equal(t, handler.OK, handler.EquipWeapon(p, "bow", f.State))

	require.Equal(t, handler.OK, handler.UseSkillAt(p, "bolt", geom.V(30, 5), f.State))
	handler.CompleteCast(p, f.State)
	bid := f.Bullets.Snapshot(nil)[0]
	b, _ := f.Bullet.Get(bid)
	assert.InDelta(t, 2.0, b.Range, 1e-6)
	assert.Equal(t, component.DamageSkill, b.Kind)
}

func TestFriendlyFireIgnored(t *testing.T) {
	f := worldtest.New(t)
	f.SpawnPlayer(t, geom.V(15, 15))
	a := f.SpawnMonster(t, "goblin", geom.V(5, 5), 0)
	b := f.SpawnMonster(t, "goblin", geom.V(5.5, 5), 0)
	f.Index()

	assert.Equal(t, handler.FailForbidden, handler.Attack(a, b, f.State))

	handler.QueueDamage(b, component.DamageEntry{Attacker: a, Amount: 4, Kind: component.DamageMelee}, f.State)
	handler.ApplyQueuedDamage(b, f.State)
	assert.Equal(t, 8.0, f.LifeOf(b))
	assert.Zero(t, f.Rec.Count("Damage", b))
}

func TestDamageOnEntityWithoutActionIsDropped(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(15, 15))
	g := f.SpawnMonster(t, "goblin", geom.V(5, 5), 0)
	f.Action.Remove(g)

	handler.QueueDamage(g, component.DamageEntry{Attacker: p, Amount: 3, Kind: component.DamageMelee}, f.State)
	assert.NotPanics(t, func() { handler.ApplyQueuedDamage(g, f.State) })
	assert.Equal(t, 8.0, f.LifeOf(g))
	assert.Zero(t, f.Rec.Count("Damage", g))
}

func TestOneWayFriendStillTakesDamage(t *testing.T) {
	f := worldtest.New(t)
	f.SpawnPlayer(t, geom.V(15, 15))
	a := f.SpawnMonster(t, "goblin", geom.V(5, 5), 0)
	b := f.SpawnMonster(t, "rival", geom.V(5.5, 5), 0)
	ta, _ := f.Team.Get(a)
	*ta = component.NewTeam(-1, -2)

	assert.Equal(t, handler.FailForbidden, handler.Attack(a, b, f.State))
	handler.QueueDamage(a, component.DamageEntry{Attacker: b, Amount: 3, Kind: component.DamageMelee}, f.State)
	handler.ApplyQueuedDamage(a, f.State)
	assert.Equal(t, 5.0, f.LifeOf(a))
}

func TestRangedParryIsBlocked(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	a := f.SpawnMonster(t, "archer", geom.V(5, 10), 0)

	require.Equal(t, handler.OK, handler.ShieldActivate(p, f.State))
	handler.QueueDamage(p, component.DamageEntry{Attacker: a, Amount: 3, Kind: component.DamageRange, CastDuration: 0.3}, f.State)
	handler.ApplyQueuedDamage(p, f.State)

	sh, _ := f.Shield.Get(p)
	assert.Equal(t, 10.0, f.LifeOf(p))
	assert.Equal(t, 2.0, sh.Value)
	dmg := f.Rec.Named("Damage")
	require.Len(t, dmg, 1)
	assert.Zero(t, dmg[0].Amount)
	st, _ := f.StateOf(a)
	assert.Equal(t, component.StateIdle, st, "ranged attacker is not punished")
}

func TestShieldBreaksAndCarriesExcess(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	a := f.SpawnMonster(t, "archer", geom.V(5, 10), 0)

	require.Equal(t, handler.OK, handler.ShieldActivate(p, f.State))
	act, _ := f.Action.Get(p)
	act.Data.(*component.Shielding).Active = 2

	handler.QueueDamage(p, component.DamageEntry{Attacker: a, Amount: 7, Kind: component.DamageRange, CastDuration: 0.3}, f.State)
	handler.ApplyQueuedDamage(p, f.State)

	sh, _ := f.Shield.Get(p)
	assert.Equal(t, 8.0, f.LifeOf(p))
	assert.Zero(t, sh.Value)
	assert.True(t, sh.Depleted)
	st, _ := f.StateOf(p)
	assert.Equal(t, component.StateIdle, st)
	assert.Equal(t, 1, f.Rec.Count("ShieldRelease", p))

	assert.Equal(t, handler.FailForbidden, handler.ShieldActivate(p, f.State))
	sh.Regen(10)
	assert.Equal(t, handler.OK, handler.ShieldActivate(p, f.State))
}

func TestMeleeParryStunsAttacker(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(5.8, 5), 0)
	f.Index()

	require.Equal(t, handler.OK, handler.ShieldActivate(p, f.State))
	require.Equal(t, handler.OK, handler.Attack(g, p, f.State))
	handler.CompleteCast(g, f.State)
	handler.ApplyQueuedDamage(p, f.State)

	st, _ := f.StateOf(g)
	assert.Equal(t, component.StateStun, st)
	assert.Equal(t, 1, f.Rec.Count("StunStart", g))
	sh, _ := f.Shield.Get(p)
	assert.Equal(t, 1.0, sh.Value)
	assert.Equal(t, 10.0, f.LifeOf(p))
}

func TestLateMeleeOnShieldDoesNotStun(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(5.8, 5), 0)

	require.Equal(t, handler.OK, handler.ShieldActivate(p, f.State))
	act, _ := f.Action.Get(p)
	act.Data.(*component.Shielding).Active = 1
	handler.QueueDamage(p, component.DamageEntry{Attacker: g, Amount: 4, Kind: component.DamageMelee, CastDuration: 0.4}, f.State)
	handler.ApplyQueuedDamage(p, f.State)

	st, _ := f.StateOf(g)
	assert.Equal(t, component.StateIdle, st)
	sh, _ := f.Shield.Get(p)
	assert.Equal(t, 1.0, sh.Value)
}

func TestDeathIsReportedOnce(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(5.8, 5), 0)

	require.Equal(t, handler.OK, handler.Attack(g, p, f.State))
	for i := 0; i < 3; i++ {
		handler.QueueDamage(g, component.DamageEntry{Attacker: p, Amount: 5, Kind: component.DamageMelee}, f.State)
	}
	handler.ApplyQueuedDamage(g, f.State)
	handler.QueueDamage(g, component.DamageEntry{Attacker: p, Amount: 5, Kind: component.DamageMelee}, f.State)
	handler.ApplyQueuedDamage(g, f.State)

	assert.Zero(t, f.LifeOf(g))
	assert.Equal(t, 1, f.Rec.Count("Death", g))
	assert.Equal(t, 1, f.Rec.Count("CastInterrupted", g))
	assert.Equal(t, 2, f.Rec.Count("Damage", g))
	st, _ := f.StateOf(g)
	assert.Equal(t, component.StateDead, st)
}

func TestResurrect(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(9, 5), 0)

	assert.Equal(t, handler.FailWrongCast, handler.Resurrect(p, f.State))
	handler.QueueDamage(p, component.DamageEntry{Attacker: g, Amount: 99, Kind: component.DamageMelee}, f.State)
	handler.ApplyQueuedDamage(p, f.State)
	require.Equal(t, handler.OK, handler.Resurrect(p, f.State))

	assert.Equal(t, 10.0, f.LifeOf(p))
	sh, _ := f.Shield.Get(p)
	assert.Equal(t, 5.0, sh.Value)
	st, _ := f.StateOf(p)
	assert.Equal(t, component.StateIdle, st)
	assert.Equal(t, 1, f.Rec.Count("Resurrect", p))
	assert.Equal(t, 2, f.Bus.Pending(), "killed then resurrected")
}

func TestShiftClipsAtWall(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(18, 5))

	require.Equal(t, handler.OK, handler.Shift(p, geom.V(25, 5), f.State))
	a, _ := f.Action.Get(p)
	s, ok := a.Data.(*component.Shifting)
	require.True(t, ok)
	assert.InDelta(t, 19.95, s.Target.X, 1e-9)
	assert.InDelta(t, 5.0, s.Target.Y, 1e-9)
	assert.True(t, f.Mesh.Contains(s.Target))

	handler.FinishShift(p, f.State)
	assert.True(t, f.ShiftCooldown.Has(p))
	assert.Equal(t, handler.FailCooldown, handler.Shift(p, geom.V(10, 5), f.State))
}

func TestShiftCappedAtDistance(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(2, 5))

	require.Equal(t, handler.OK, handler.Shift(p, geom.V(15, 5), f.State))
	a, _ := f.Action.Get(p)
	s := a.Data.(*component.Shifting)
	assert.InDelta(t, 6.0, s.Target.X, 1e-9)
	assert.InDelta(t, 4.0/16+0.25, s.MaxTime, 1e-9)
}

func TestSkillGating(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(6, 5), 0)
	f.Index()

	assert.Equal(t, handler.FailForbidden, handler.UseSkill(p, "whirl", f.State), "needs a melee weapon")
	assert.Equal(t, handler.FailGeneric, handler.UseSkill(p, "nope", f.State))
	assert.Equal(t, handler.FailWrongCast, handler.UseSkill(p, "clap", f.State))
	assert.Equal(t, handler.FailForbidden, handler.UseSkill(g, "whirl", f.State), "not learned")

	require.Equal(t, handler.OK, handler.EquipWeapon(p, "sword", f.State))
	require.Equal(t, handler.OK, handler.UseSkill(p, "whirl", f.State))
	handler.CompleteCast(p, f.State)
	handler.ApplyQueuedDamage(g, f.State)

	assert.Equal(t, 3.0, f.LifeOf(g))
	assert.Equal(t, 1, f.Rec.Count("SkillCastFinish", p))
	assert.Equal(t, handler.FailCooldown, handler.UseSkill(p, "whirl", f.State))
	cds := f.Rec.Named("CooldownStart")
	require.NotEmpty(t, cds)
	assert.Equal(t, "skill:whirl", cds[len(cds)-1].Detail)
}

func TestRoundAttackReachesPastSearchCell(t *testing.T) {
	cfg := worldtest.Config()
	cfg.Grid.NeighborhoodCell = 0.5
	cfg.Grid.SearchCell = 0.5
	f := worldtest.NewWith(t, cfg, worldtest.Room())
	p := f.SpawnPlayer(t, geom.V(5, 5))
	near := f.SpawnMonster(t, "goblin", geom.V(6.8, 5), 0)
	far := f.SpawnMonster(t, "goblin", geom.V(5, 7.5), 0)
	f.Index()

	require.Equal(t, handler.OK, handler.EquipWeapon(p, "sword", f.State))
	require.Equal(t, handler.OK, handler.UseSkill(p, "whirl", f.State))
	handler.CompleteCast(p, f.State)
	handler.ApplyQueuedDamage(near, f.State)
	handler.ApplyQueuedDamage(far, f.State)

	assert.Equal(t, 3.0, f.LifeOf(near), "outside the 3×3 search block")
	assert.Equal(t, 8.0, f.LifeOf(far))
}

func TestStunAreaOutOfRangeWalks(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(2, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(12, 5), 0)
	f.Index()

	require.Equal(t, handler.OK, handler.UseSkillAt(p, "clap", geom.V(12, 5), f.State))
	ta, ok := f.TargetAction.Get(p)
	require.True(t, ok)
	assert.Equal(t, component.TargetSkillAt, ta.Kind)
	assert.Equal(t, "clap", ta.SkillID)

	pos, _ := f.Position.Get(p)
	*pos = geom.V(8, 5)
	require.Equal(t, handler.OK, handler.FinishWalk(p, f.State))
	handler.CompleteCast(p, f.State)

	st, _ := f.StateOf(g)
	assert.Equal(t, component.StateStun, st)
}

func TestUltimateTakesAllLife(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(6, 5), 0)

	assert.Equal(t, handler.FailWrongCast, handler.UseSkillOn(p, "bolt", g, f.State))
	require.Equal(t, handler.OK, handler.UseSkillOn(p, "execute", g, f.State))
	handler.CompleteCast(p, f.State)
	handler.ApplyQueuedDamage(g, f.State)

	assert.Zero(t, f.LifeOf(g))
	assert.Equal(t, 1, f.Rec.Count("Death", g))
	d := f.Rec.Named("Damage")
	require.Len(t, d, 1)
	assert.Equal(t, 8.0, d[0].Amount)
	assert.Equal(t, "ultimate", d[0].Detail)
}

func TestShadowStrikeBlinksBehind(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(7, 5), 0)
	f.ShadowStrike.Add(p, component.ShadowStrike{Distance: 3, Damage: 2, CastTime: 0.2, Cooldown: 4})

	require.Equal(t, handler.OK, handler.Attack(p, g, f.State))
	assert.Equal(t, component.CastShadow, f.Casting(p).Cast)
	handler.CompleteCast(p, f.State)
	handler.ApplyQueuedDamage(g, f.State)

	pos, _ := f.Position.Get(p)
	assert.InDelta(t, 7.6, pos.X, 1e-9)
	assert.Equal(t, 6.0, f.LifeOf(g))
	assert.True(t, f.ShadowCooldown.Has(p))
}

func TestHideToggle(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(5.8, 5), 0)

	require.Equal(t, handler.OK, handler.ToggleHide(p, f.State))
	assert.Equal(t, component.CastHide, f.Casting(p).Cast)
	handler.CompleteCast(p, f.State)
	assert.True(t, f.IsHidden(p))
	assert.Equal(t, 1, f.Rec.Count("HideStart", p))

	assert.Equal(t, handler.FailForbidden, handler.Attack(g, p, f.State))

	require.Equal(t, handler.OK, handler.ToggleHide(p, f.State))
	assert.False(t, f.IsHidden(p))
	assert.Equal(t, 1, f.Rec.Count("HideFinish", p))
	assert.Equal(t, handler.FailCooldown, handler.ToggleHide(p, f.State))
}

func TestAttackBreaksHide(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))
	g := f.SpawnMonster(t, "goblin", geom.V(5.6, 5), 0)
	f.Hide.Add(p, component.Hide{Duration: 5})

	require.Equal(t, handler.OK, handler.Attack(p, g, f.State))
	assert.False(t, f.IsHidden(p))
}

func TestEquipAndUnequip(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))

	assert.Equal(t, handler.FailGeneric, handler.UnequipWeapon(p, f.State))
	assert.Equal(t, handler.FailGeneric, handler.EquipWeapon(p, "trident", f.State))
	require.Equal(t, handler.OK, handler.EquipWeapon(p, "bow", f.State))
	w, _ := f.Weapon.Get(p)
	assert.Equal(t, component.WeaponRange, w.Kind)
	require.Equal(t, handler.OK, handler.UnequipWeapon(p, f.State))
	assert.False(t, f.Weapon.Has(p))
}

func TestShieldReleaseRequiresShield(t *testing.T) {
	f := worldtest.New(t)
	p := f.SpawnPlayer(t, geom.V(5, 5))

	assert.Equal(t, handler.FailWrongCast, handler.ShieldRelease(p, f.State))
	require.Equal(t, handler.OK, handler.ShieldActivate(p, f.State))
	assert.Equal(t, handler.OK, handler.ShieldActivate(p, f.State))
	assert.Equal(t, handler.OK, handler.ShieldRelease(p, f.State))
	assert.Equal(t, 1, f.Rec.Count("ShieldActivate", p))
	assert.Equal(t, 1, f.Rec.Count("ShieldRelease", p))
}
