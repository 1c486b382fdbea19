package system

import (
	"time"

	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/world"
)

// GridIndexSystem refiles every actor into the visible, neighborhood and
// search grids. Phase 2 (Spatial), first.
type GridIndexSystem struct {
	ws *world.State
}

func NewGridIndexSystem(ws *world.State) *GridIndexSystem {
	return &GridIndexSystem{ws: ws}
}

func (s *GridIndexSystem) Phase() coresys.Phase { return coresys.PhaseSpatial }

func (s *GridIndexSystem) Update(_ time.Duration) {
	s.ws.Actors.Each(func(id ecs.EntityID) {
		s.ws.Reindex(id)
	})
}
