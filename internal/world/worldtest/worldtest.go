// Package worldtest builds small, fully wired simulation states for tests.
package worldtest

import (
	"math"
	"testing"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/config"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/data"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/host"
	"github.com/l1jgo/arena/internal/navmesh"
	"github.com/l1jgo/arena/internal/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Weapons, Skills and Monsters are the fixture templates.
const (
	Weapons = `
weapons:
  - {id: sword, kind: melee, distance: 1.0, damage: 4, spread: 90, cast_time: 0.4, cooldown: 0.5}
  - {id: bow, kind: range, distance: 8, damage: 3, cast_time: 0.3, cooldown: 0.5, bullet_speed: 10, bullet_radius: 0.1}
`
	Skills = `
skills:
  - {id: whirl, kind: round_attack, cast_time: 0.2, cooldown: 2, damage: 5, radius: 2, required_weapon: melee}
  - {id: clap, kind: stun_area, cast_time: 0.2, cooldown: 3, distance: 5, radius: 2, duration: 1}
  - {id: bolt, kind: projectile, cast_time: 0.2, cooldown: 1, damage: 6, distance: 8, radius: 0.2, speed: 10}
  - {id: execute, kind: ultimate, cast_time: 0.2, cooldown: 5, distance: 1.5}
`
	Monsters = `
monsters:
  - {id: goblin, team: -1, life: 8, speed: 2, radius: 0.3, vision: 6, wander_radius: 2, weapon: sword}
  - {id: archer, team: -1, life: 6, speed: 2, radius: 0.3, vision: 8, weapon: bow}
  - {id: rival, team: -2, life: 8, speed: 2, radius: 0.3, vision: 6, weapon: sword}
`
)

// Room is a 20×20 square walkable area starting at the origin.
func Room() *navmesh.Mesh {
	m, err := navmesh.New(
		[]geom.Vec2{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20}},
		[][]int{{0, 1, 2, 3}},
	)
	if err != nil {
		panic(err)
	}
	return m
}

// Tables parses the fixture templates.
func Tables(t testing.TB) *data.Tables {
	t.Helper()
	tables, err := data.ParseTables([]byte(Weapons), []byte(Skills), []byte(Monsters))
	require.NoError(t, err)
	return tables
}

// Config returns the default configuration with debug notifications on.
func Config() *config.Config {
	cfg := config.Default()
	cfg.Simulation.Debug = true
	return cfg
}

// Fixture is a State plus the recorder it reports to.
type Fixture struct {
	*world.State
	Rec *host.Recorder
}

// New builds a state over Room with a recording host.
func New(t testing.TB) *Fixture {
	return NewWith(t, Config(), Room())
}

// NewWith builds a state over the given config and mesh.
func NewWith(t testing.TB, cfg *config.Config, mesh *navmesh.Mesh) *Fixture {
	t.Helper()
	rec := host.NewRecorder()
	ws := world.NewState(cfg, mesh, Tables(t), rec, nil, zap.NewNop())
	return &Fixture{State: ws, Rec: rec}
}

// SpawnPlayer places a team-0 player at p with 10 life and 5 shield.
func (f *Fixture) SpawnPlayer(t testing.TB, p geom.Vec2) ecs.EntityID {
	t.Helper()
	id, err := f.State.SpawnPlayer(world.ActorSpec{
		Position: p,
		Team:     component.NewTeam(0),
		Life:     10,
		Shield:   5,
		Speed:    4,
		Radius:   0.3,
		Skills:   []string{"whirl", "clap", "bolt", "execute"},
	})
	require.NoError(t, err)
	return id
}

// SpawnMonster places a monster from a fixture template facing angle.
func (f *Fixture) SpawnMonster(t testing.TB, template string, p geom.Vec2, angle float64) ecs.EntityID {
	t.Helper()
	tmpl, err := f.Tables.Monsters.Lookup(template)
	require.NoError(t, err)
	id, err := f.State.SpawnMonster(tmpl, p, angle)
	require.NoError(t, err)
	return id
}

// Face points a at b.
func (f *Fixture) Face(a, b ecs.EntityID) {
	pa, _ := f.Position.Get(a)
	pb, _ := f.Position.Get(b)
	fc, _ := f.Facing.Get(a)
	fc.Angle = pb.Sub(*pa).Angle()
}

// LifeOf returns the current life of id, NaN without Life.
func (f *Fixture) LifeOf(id ecs.EntityID) float64 {
	if l, ok := f.Life.Get(id); ok {
		return l.Value
	}
	return math.NaN()
}

// Index files every actor into the grids, as the spatial phase would.
func (f *Fixture) Index() {
	f.Actors.Each(func(id ecs.EntityID) { f.Reindex(id) })
}

// Casting returns the cast in progress on id, nil otherwise.
func (f *Fixture) Casting(id ecs.EntityID) *component.Casting {
	a, ok := f.Action.Get(id)
	if !ok {
		return nil
	}
	c, _ := a.Data.(*component.Casting)
	return c
}
