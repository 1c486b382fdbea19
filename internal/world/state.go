package world

import (
	"math/rand"
	"time"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/config"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/core/event"
	"github.com/l1jgo/arena/internal/data"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/grid"
	"github.com/l1jgo/arena/internal/host"
	"github.com/l1jgo/arena/internal/navmesh"
	"github.com/l1jgo/arena/internal/scripting"
	"go.uber.org/zap"
)

// Stores holds every component store, registered in a fixed order so
// component bits are identical across games.
type Stores struct {
	Position     *ecs.Store[geom.Vec2]
	PrevPosition *ecs.Store[geom.Vec2]
	Velocity     *ecs.Store[geom.Vec2]
	Preferred    *ecs.Store[geom.Vec2]
	Movement     *ecs.Store[component.Movement]
	Facing       *ecs.Store[component.Facing]

	PlayerTag *ecs.Store[component.Player]
	Monster   *ecs.Store[component.Monster]
	Team      *ecs.Store[component.Team]
	Life      *ecs.Store[component.Life]
	Shield    *ecs.Store[component.Shield]

	Action       *ecs.Store[component.Action]
	TargetAction *ecs.Store[component.TargetAction]
	Enemies      *ecs.Store[component.Enemies]

	VisibleIndex  *ecs.Store[component.GridIndex]
	NeighborIndex *ecs.Store[component.GridIndex]
	SearchIndex   *ecs.Store[component.GridIndex]
	Nearby        *ecs.Store[component.Neighborhood]

	ApplyDamage    *ecs.Store[component.ApplyDamage]
	ShiftCooldown  *ecs.Store[component.Cooldown]
	MeleeCooldown  *ecs.Store[component.Cooldown]
	HideCooldown   *ecs.Store[component.Cooldown]
	ShadowCooldown *ecs.Store[component.Cooldown]
	SkillCooldowns *ecs.Store[component.SkillCooldowns]

	Weapon       *ecs.Store[component.Weapon]
	Skills       *ecs.Store[component.Skills]
	ShadowStrike *ecs.Store[component.ShadowStrike]
	Hide         *ecs.Store[component.Hide]
	Bullet       *ecs.Store[component.Bullet]
	Dirty        *ecs.Store[component.Dirty]
}

func newStores(reg *ecs.Registry) Stores {
	return Stores{
		Position:     ecs.NewStore[geom.Vec2](reg),
		PrevPosition: ecs.NewStore[geom.Vec2](reg),
		Velocity:     ecs.NewStore[geom.Vec2](reg),
		Preferred:    ecs.NewStore[geom.Vec2](reg),
		Movement:     ecs.NewStore[component.Movement](reg),
		Facing:       ecs.NewStore[component.Facing](reg),

		PlayerTag: ecs.NewStore[component.Player](reg),
		Monster:   ecs.NewStore[component.Monster](reg),
		Team:      ecs.NewStore[component.Team](reg),
		Life:      ecs.NewStore[component.Life](reg),
		Shield:    ecs.NewStore[component.Shield](reg),

		Action:       ecs.NewStore[component.Action](reg),
		TargetAction: ecs.NewStore[component.TargetAction](reg),
		Enemies:      ecs.NewStore[component.Enemies](reg),

		VisibleIndex:  ecs.NewStore[component.GridIndex](reg),
		NeighborIndex: ecs.NewStore[component.GridIndex](reg),
		SearchIndex:   ecs.NewStore[component.GridIndex](reg),
		Nearby:        ecs.NewStore[component.Neighborhood](reg),

		ApplyDamage:    ecs.NewStore[component.ApplyDamage](reg),
		ShiftCooldown:  ecs.NewStore[component.Cooldown](reg),
		MeleeCooldown:  ecs.NewStore[component.Cooldown](reg),
		HideCooldown:   ecs.NewStore[component.Cooldown](reg),
		ShadowCooldown: ecs.NewStore[component.Cooldown](reg),
		SkillCooldowns: ecs.NewStore[component.SkillCooldowns](reg),

		Weapon:       ecs.NewStore[component.Weapon](reg),
		Skills:       ecs.NewStore[component.Skills](reg),
		ShadowStrike: ecs.NewStore[component.ShadowStrike](reg),
		Hide:         ecs.NewStore[component.Hide](reg),
		Bullet:       ecs.NewStore[component.Bullet](reg),
		Dirty:        ecs.NewStore[component.Dirty](reg),
	}
}

// Views are the incrementally maintained entity sets systems iterate.
type Views struct {
	Actors   *ecs.View // Position + Action
	Movers   *ecs.View // Position + Velocity + Preferred + Movement + Action
	Monsters *ecs.View // Monster + Position + Action
	Bullets  *ecs.View // Bullet + Position
	Damaged  *ecs.View // ApplyDamage
	Flagged  *ecs.View // Dirty
	Hidden   *ecs.View
	Shields  *ecs.View // Shield + Action
}

func newViews(reg *ecs.Registry, s *Stores) Views {
	return Views{
		Actors:   reg.NewView(s.Position, s.Action),
		Movers:   reg.NewView(s.Position, s.Velocity, s.Preferred, s.Movement, s.Action),
		Monsters: reg.NewView(s.Monster, s.Position, s.Action),
		Bullets:  reg.NewView(s.Bullet, s.Position),
		Damaged:  reg.NewView(s.ApplyDamage),
		Flagged:  reg.NewView(s.Dirty),
		Hidden:   reg.NewView(s.Hide),
		Shields:  reg.NewView(s.Shield, s.Action),
	}
}

// State is the whole simulation of one game. Accessed only from the tick
// goroutine and holds no locks.
type State struct {
	ECS    *ecs.World
	Bus    *event.Bus
	Log    *zap.Logger
	Host   host.Host
	Cfg    *config.Config
	Mesh   *navmesh.Mesh
	Tables *data.Tables
	Lua    *scripting.Engine
	Rand   *rand.Rand

	Visible      *grid.Grid
	Neighborhood *grid.Grid
	Search       *grid.Grid

	Stores
	Views

	Player ecs.EntityID
	Clock  float64 // simulated seconds since creation

	tiles map[int][]host.Tile // visible cell -> tiles
}

// NewState wires a fresh registry, grids sized to the mesh bounds and a
// seeded RNG. lua may be nil.
func NewState(cfg *config.Config, mesh *navmesh.Mesh, tables *data.Tables, h host.Host, lua *scripting.Engine, log *zap.Logger) *State {
	if h == nil {
		h = host.Nop{}
	}
	w := ecs.NewWorld()
	s := &State{
		ECS:    w,
		Bus:    event.NewBus(),
		Log:    log,
		Host:   h,
		Cfg:    cfg,
		Mesh:   mesh,
		Tables: tables,
		Lua:    lua,
		Rand:   rand.New(rand.NewSource(cfg.Simulation.Seed)),
		tiles:  make(map[int][]host.Tile),
	}
	s.Stores = newStores(w.Registry())
	s.Views = newViews(w.Registry(), &s.Stores)

	b := mesh.Bounds()
	width, height := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y
	s.Visible = grid.New("visible", b.Min, width, height, cfg.Grid.VisibleCell)
	s.Neighborhood = grid.New("neighborhood", b.Min, width, height, cfg.Grid.NeighborhoodCell)
	s.Search = grid.New("search", b.Min, width, height, cfg.Grid.SearchCell)
	return s
}

// Seconds converts a tick duration to simulation seconds.
func Seconds(dt time.Duration) float64 { return dt.Seconds() }

// Debug reports whether the debug notification channel is enabled.
func (s *State) Debug() bool { return s.Cfg.Simulation.Debug }

// Alive reports whether id refers to a live entity.
func (s *State) Alive(id ecs.EntityID) bool { return s.ECS.Alive(id) }

// StateOf returns the current action state of an actor.
func (s *State) StateOf(id ecs.EntityID) (component.State, bool) {
	a, ok := s.Action.Get(id)
	if !ok {
		return component.StateIdle, false
	}
	return a.Kind(), true
}

// IsDead reports whether id is a dead actor. Missing actors count as dead.
func (s *State) IsDead(id ecs.EntityID) bool {
	st, ok := s.StateOf(id)
	return !ok || st == component.StateDead
}

// IsHidden reports whether id is currently hidden.
func (s *State) IsHidden(id ecs.EntityID) bool { return s.Hide.Has(id) }

// IsPlayer reports whether id is the player.
func (s *State) IsPlayer(id ecs.EntityID) bool { return s.PlayerTag.Has(id) }

// MarkDirty flags id for the output system.
func (s *State) MarkDirty(id ecs.EntityID) {
	if s.Alive(id) && !s.Dirty.Has(id) {
		s.Dirty.Add(id, component.Dirty{})
	}
}

// Distance returns the centre distance between two positioned entities.
func (s *State) Distance(a, b ecs.EntityID) (float64, bool) {
	pa, ok1 := s.Position.Get(a)
	pb, ok2 := s.Position.Get(b)
	if !ok1 || !ok2 {
		return 0, false
	}
	return pa.Dist(*pb), true
}

// RadiusOf returns an entity's collision radius, 0 without Movement.
func (s *State) RadiusOf(id ecs.EntityID) float64 {
	if m, ok := s.Movement.Get(id); ok {
		return m.Radius
	}
	return 0
}

// Snapshot builds the host view of an actor.
func (s *State) Snapshot(id ecs.EntityID) host.Actor {
	a := host.Actor{ID: id}
	if p, ok := s.Position.Get(id); ok {
		a.Position = *p
	}
	if f, ok := s.Facing.Get(id); ok {
		a.Angle = f.Angle
	}
	if v, ok := s.Velocity.Get(id); ok {
		a.Moving = !v.IsZero()
	}
	if st, ok := s.StateOf(id); ok {
		a.State = st
	}
	if l, ok := s.Life.Get(id); ok {
		a.Life, a.LifeMax = l.Value, l.Max
	}
	if sh, ok := s.Shield.Get(id); ok {
		a.Shield, a.ShieldMax = sh.Value, sh.Max
	}
	if m, ok := s.Monster.Get(id); ok {
		a.Template = m.Template
	}
	a.Hidden = s.IsHidden(id)
	return a
}

// BulletSnapshot builds the host view of a bullet.
func (s *State) BulletSnapshot(id ecs.EntityID) host.Bullet {
	b := host.Bullet{ID: id}
	if p, ok := s.Position.Get(id); ok {
		b.Position = *p
	}
	if bl, ok := s.Bullet.Get(id); ok {
		b.Owner = bl.Owner
		b.Angle = bl.Direction
		b.Radius = bl.Radius
	}
	return b
}

// AddTile files a tile under its visible cell.
func (s *State) AddTile(t host.Tile) {
	cell := s.Visible.CellIndex(t.Position.X, t.Position.Y)
	s.tiles[cell] = append(s.tiles[cell], t)
}

// TilesIn returns the tiles filed under a visible cell.
func (s *State) TilesIn(cell int) []host.Tile { return s.tiles[cell] }
