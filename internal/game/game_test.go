package game_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/l1jgo/arena/internal/config"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/data"
	"github.com/l1jgo/arena/internal/game"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/host"
	"github.com/l1jgo/arena/internal/world/worldtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const tick = 50 * time.Millisecond

const arenaLevel = `
name: pit
vertices: [[0, 0], [20, 0], [20, 20], [0, 20]]
polygons: [[0, 1, 2, 3]]
tiles:
  - {id: 1, kind: torch, x: 2, y: 2}
player: {x: 5, y: 5, team: 0, life: 10, shield: 5, speed: 4, radius: 0.3, skills: [bolt]}
monsters:
  - {template: goblin, x: 7, y: 5, angle: 180}
`

func newGame(t *testing.T, raw string) (*game.Game, *host.Recorder) {
	t.Helper()
	level, err := data.ParseLevel([]byte(raw))
	require.NoError(t, err)
	rec := host.NewRecorder()
	g, err := game.New(worldtest.Config(), zap.NewNop(), rec, worldtest.Tables(t), level, nil)
	require.NoError(t, err)
	return g, rec
}

func monsterIDs(rec *host.Recorder) []ecs.EntityID {
	var out []ecs.EntityID
	for _, e := range rec.Named("MonsterCreate") {
		out = append(out, e.Entity)
	}
	return out
}

func TestNewAnnouncesLevelThenPlayer(t *testing.T) {
	g, rec := newGame(t, arenaLevel)
	require.GreaterOrEqual(t, len(rec.Events), 2)
	assert.Equal(t, "DefineLevel", rec.Events[0].Name)
	assert.Equal(t, "PlayerCreate", rec.Events[1].Name)
	assert.Equal(t, g.Player(), rec.Events[1].Entity)
	require.NotNil(t, rec.Level)
	assert.Equal(t, "pit", rec.Level.Name)
	assert.Equal(t, geom.V(20, 20), rec.Level.Bounds.Max)

	g.Advance(tick)
	assert.Len(t, rec.Named("TileCreate"), 1)
	assert.Len(t, monsterIDs(rec), 1)
	assert.InDelta(t, 0.05, g.Clock(), 1e-12)
	assert.Equal(t, uint64(1), g.Ticks())
}

func TestNewRejectsBadLevels(t *testing.T) {
	cases := map[string]string{
		"unknown template": `
name: bad
vertices: [[0, 0], [20, 0], [20, 20], [0, 20]]
polygons: [[0, 1, 2, 3]]
player: {x: 5, y: 5, life: 10, speed: 4, radius: 0.3}
monsters: [{template: dragon, x: 7, y: 5}]
`,
		"player off mesh": `
name: bad
vertices: [[0, 0], [20, 0], [20, 20], [0, 20]]
polygons: [[0, 1, 2, 3]]
player: {x: 50, y: 50, life: 10, speed: 4, radius: 0.3}
`,
		"two-vertex polygon": `
name: bad
vertices: [[0, 0], [20, 0], [20, 20]]
polygons: [[0, 1]]
player: {x: 1, y: 1, life: 10, speed: 4, radius: 0.3}
`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			level, err := data.ParseLevel([]byte(raw))
			require.NoError(t, err)
			_, err = game.New(worldtest.Config(), zap.NewNop(), host.NewRecorder(), worldtest.Tables(t), level, nil)
			assert.Error(t, err)
		})
	}
}

func TestMeleeScenario(t *testing.T) {
	g, rec := newGame(t, arenaLevel)
	p := g.Player()
	for i := 0; i < 200 && rec.Count("Damage", p) == 0; i++ {
		g.Advance(tick)
	}
	hits := rec.Named("Damage")
	require.NotEmpty(t, hits)
	assert.Equal(t, p, hits[0].Entity)
	assert.Equal(t, 4.0, hits[0].Amount)
	l, _ := g.State().Life.Get(p)
	assert.Equal(t, 6.0, l.Value)
}

func TestCommandsRejectUnknownIDs(t *testing.T) {
	g, _ := newGame(t, arenaLevel)
	p := g.Player()
	ghost := ecs.NewEntityID(999, 1)

	assert.False(t, g.MoveToPoint(ghost, geom.V(1, 1)))
	assert.False(t, g.Attack(ghost, p))
	assert.False(t, g.Attack(p, ghost))
	assert.False(t, g.ShieldActivate(0))
	assert.False(t, g.Stun(ghost, 1))
	assert.False(t, g.UseSkill(p, "nope"))
	assert.False(t, g.Resurrect(p), "alive")

	assert.True(t, g.Shift(p, geom.V(9, 5)))
	assert.False(t, g.Shift(p, geom.V(1, 5)), "shifting cannot be interrupted")
}

func TestCloseRemovesEverything(t *testing.T) {
	g, rec := newGame(t, arenaLevel)
	p := g.Player()
	g.Advance(tick)
	g.Close()
	g.Close()

	assert.Equal(t, 1, rec.Count("PlayerRemove", p))
	assert.False(t, g.State().Alive(p))
	ticks := g.Ticks()
	g.Advance(tick)
	assert.Equal(t, ticks, g.Ticks())
	assert.False(t, g.MoveToPoint(p, geom.V(1, 1)))
}

// run plays a fixed command script against the sample level.
func run(t *testing.T, seed int64) []host.Event {
	t.Helper()
	const dir = "../../data/yaml"
	tables, err := data.LoadTables(
		filepath.Join(dir, "weapons.yaml"),
		filepath.Join(dir, "skills.yaml"),
		filepath.Join(dir, "monsters.yaml"),
	)
	require.NoError(t, err)
	level, err := data.LoadLevel(filepath.Join(dir, "level_01.yaml"))
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Simulation.Seed = seed
	cfg.Simulation.Debug = true
	rec := host.NewRecorder()
	g, err := game.New(cfg, zap.NewNop(), rec, tables, level, nil)
	require.NoError(t, err)
	defer g.Close()

	p := g.Player()
	for i := 0; i < 400; i++ {
		switch i {
		case 10:
			g.MoveToPoint(p, geom.V(25, 10))
		case 120:
			g.ShieldActivate(p)
		case 150:
			g.ShieldRelease(p)
		case 160:
			g.Shift(p, geom.V(40, 10))
		case 200:
			for _, m := range monsterIDs(rec) {
				if g.Attack(p, m) {
					break
				}
			}
		}
		g.Advance(tick)
	}
	return append([]host.Event(nil), rec.Events...)
}

func TestAdvanceIsDeterministic(t *testing.T) {
	a := run(t, 7)
	b := run(t, 7)
	require.Equal(t, len(a), len(b))
	assert.Equal(t, a, b)
	assert.Greater(t, len(a), 100)
}
