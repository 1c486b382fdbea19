package system

import (
	"time"

	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/world"
)

// MoveSystem integrates velocities. Positions leaving the navmesh are
// snapped back onto it, or held when no walkable point is close enough.
// Phase 4 (Move).
type MoveSystem struct {
	ws *world.State
}

func NewMoveSystem(ws *world.State) *MoveSystem {
	return &MoveSystem{ws: ws}
}

func (s *MoveSystem) Phase() coresys.Phase { return coresys.PhaseMove }

func (s *MoveSystem) Update(dt time.Duration) {
	sec := world.Seconds(dt)
	ws := s.ws
	ws.Movers.Each(func(id ecs.EntityID) {
		v, _ := ws.Velocity.Get(id)
		if v.IsZero() {
			return
		}
		pos, _ := ws.Position.Get(id)
		next := pos.Add(v.Scale(sec))
		if !ws.Mesh.Contains(next) {
			snapped, ok := ws.Mesh.Sample(next, ws.Cfg.Path.MaxSampleDistance)
			if !ok {
				return
			}
			next = snapped
		}
		*pos = next
		ws.MarkDirty(id)
	})
}
