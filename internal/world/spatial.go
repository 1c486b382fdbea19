package world

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/grid"
)

// Reindex files id into the cell of each grid containing its position.
// Returns true when the visible cell changed. Despawned entities stay out.
func (s *State) Reindex(id ecs.EntityID) bool {
	pos, ok := s.Position.Get(id)
	if !ok || s.ECS.PendingDestruction(id) {
		return false
	}
	changed := false
	for _, gs := range s.gridStores() {
		gi, ok := gs.store.Get(id)
		if !ok {
			continue
		}
		cell := gs.grid.CellIndex(pos.X, pos.Y)
		if cell == gi.Cell {
			continue
		}
		gs.grid.Move(id, gi.Cell, cell)
		gi.Cell = cell
		if gs.grid == s.Visible {
			changed = true
		}
	}
	return changed
}

type gridStore struct {
	grid  *grid.Grid
	store *ecs.Store[component.GridIndex]
}

func (s *State) gridStores() [3]gridStore {
	return [3]gridStore{
		{s.Visible, s.VisibleIndex},
		{s.Neighborhood, s.NeighborIndex},
		{s.Search, s.SearchIndex},
	}
}
