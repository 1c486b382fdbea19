package system

import (
	"time"

	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/grid"
	"github.com/l1jgo/arena/internal/world"
)

// EnemySearchSystem keeps each monster's Enemies list current. Only one
// segment of the monsters is refreshed per tick, so a full pass spans
// grid.search_segments ticks. Teammates in view share what they know.
// Phase 2 (Spatial), after grid indexing.
type EnemySearchSystem struct {
	ws  *world.State
	seg *grid.Segmenter

	found  []ecs.EntityID
	shared []ecs.EntityID
	merged []ecs.EntityID
	near   []ecs.EntityID
}

func NewEnemySearchSystem(ws *world.State) *EnemySearchSystem {
	return &EnemySearchSystem{ws: ws, seg: grid.NewSegmenter(ws.Cfg.Grid.SearchSegments)}
}

func (s *EnemySearchSystem) Phase() coresys.Phase { return coresys.PhaseSpatial }

func (s *EnemySearchSystem) Update(_ time.Duration) {
	batch := s.seg.Next(s.ws.Monsters.Snapshot)
	for _, id := range batch {
		if !s.ws.Alive(id) || s.ws.IsDead(id) {
			continue
		}
		s.refresh(id)
	}
}

func (s *EnemySearchSystem) refresh(id ecs.EntityID) {
	ws := s.ws
	pos, _ := ws.Position.Get(id)
	m, _ := ws.Monster.Get(id)
	team, _ := ws.Team.Get(id)
	enemies, ok := ws.Enemies.Get(id)
	if !ok || team == nil {
		return
	}

	s.near = append(s.near[:0], ws.Search.ItemsAround(pos.X, pos.Y)...)
	s.found = s.found[:0]
	s.shared = s.shared[:0]
	for _, other := range s.near {
		if other == id || !ws.Action.Has(other) || ws.IsDead(other) {
			continue
		}
		op, ok := ws.Position.Get(other)
		if !ok || pos.Dist(*op) > m.Vision {
			continue
		}
		ot, ok := ws.Team.Get(other)
		if !ok {
			continue
		}
		switch {
		case !team.Friendly(*ot):
			if !ws.IsHidden(other) {
				s.found = append(s.found, other)
			}
		case ws.Enemies.Has(other):
			// share a friendly monster's list
			if oe, _ := ws.Enemies.Get(other); len(oe.IDs) > 0 {
				s.merged = grid.Union(s.merged, s.shared, oe.IDs)
				s.shared = append(s.shared[:0], s.merged...)
			}
		}
	}

	s.merged = grid.Union(s.merged, s.found, s.shared)
	s.shared = grid.Union(s.shared, s.merged, enemies.IDs)

	limit := m.Vision * ws.Cfg.AI.LoseDistance
	next := make([]ecs.EntityID, 0, len(s.shared))
	for _, e := range s.shared {
		if e == id || !ws.Alive(e) || ws.IsDead(e) || ws.IsHidden(e) {
			continue
		}
		if d, ok := ws.Distance(id, e); !ok || d > limit {
			continue
		}
		if et, ok := ws.Team.Get(e); !ok || team.Friendly(*et) {
			continue
		}
		next = append(next, e)
	}

	if ws.Debug() {
		grid.Diff(enemies.IDs, next, func(e ecs.EntityID) { ws.Host.DebugSearch(id, e) }, nil)
	}
	enemies.IDs = next
}
