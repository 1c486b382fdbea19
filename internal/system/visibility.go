package system

import (
	"sort"
	"time"

	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/grid"
	"github.com/l1jgo/arena/internal/world"
)

// VisibilitySystem tracks the 3×3 visible-grid block around the player.
// Monsters entering or leaving it get MonsterCreate / MonsterRemove, cells
// entering or leaving it get their tiles created or deleted.
// Phase 2 (Spatial), after grid indexing.
type VisibilitySystem struct {
	ws *world.State

	cells    []int
	monsters []ecs.EntityID
}

func NewVisibilitySystem(ws *world.State) *VisibilitySystem {
	return &VisibilitySystem{ws: ws}
}

func (s *VisibilitySystem) Phase() coresys.Phase { return coresys.PhaseSpatial }

func (s *VisibilitySystem) Update(_ time.Duration) {
	ws := s.ws
	p := ws.Player
	nb, ok := ws.Nearby.Get(p)
	if !ok || !ws.Alive(p) {
		return
	}
	pos, _ := ws.Position.Get(p)

	// Cells entering and leaving the view.
	s.cells = ws.Visible.AroundCells(s.cells[:0], pos.X, pos.Y)
	grid.Diff(nb.Cells, s.cells, s.cellEntered, s.cellLeft)
	nb.Cells = append(nb.Cells[:0], s.cells...)

	// Monsters entering and leaving the view.
	s.monsters = s.monsters[:0]
	for _, cell := range s.cells {
		for _, id := range ws.Visible.Bucket(cell) {
			if ws.Monster.Has(id) {
				s.monsters = append(s.monsters, id)
			}
		}
	}
	sort.Slice(s.monsters, func(i, j int) bool { return s.monsters[i] < s.monsters[j] })
	grid.Diff(nb.Monsters, s.monsters,
		func(id ecs.EntityID) { ws.Host.MonsterCreate(ws.Snapshot(id)) },
		func(id ecs.EntityID) { ws.Host.MonsterRemove(id) },
	)
	nb.Monsters = append(nb.Monsters[:0], s.monsters...)
}

func (s *VisibilitySystem) cellEntered(cell int) {
	ws := s.ws
	for _, t := range ws.TilesIn(cell) {
		ws.Host.TileCreate(t)
	}
	if ws.Debug() {
		ws.Host.DebugGridCell(ws.Visible.Name(), cell, ws.Visible.CellRect(cell))
	}
}

func (s *VisibilitySystem) cellLeft(cell int) {
	for _, t := range s.ws.TilesIn(cell) {
		s.ws.Host.TileDelete(t)
	}
}

// InView reports whether monster id is currently shown to the host.
func InView(ws *world.State, id ecs.EntityID) bool {
	nb, ok := ws.Nearby.Get(ws.Player)
	if !ok {
		return false
	}
	i := sort.Search(len(nb.Monsters), func(i int) bool { return nb.Monsters[i] >= id })
	return i < len(nb.Monsters) && nb.Monsters[i] == id
}
