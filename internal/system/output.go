package system

import (
	"time"

	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/world"
)

// OutputSystem sends one update per dirty actor: the player always,
// monsters only while the host is showing them. Phase 8 (Output).
type OutputSystem struct {
	ws *world.State
}

func NewOutputSystem(ws *world.State) *OutputSystem {
	return &OutputSystem{ws: ws}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	ws := s.ws
	ws.Flagged.Each(func(id ecs.EntityID) {
		ws.Dirty.Remove(id)
		switch {
		case ws.IsPlayer(id):
			ws.Host.PlayerUpdate(ws.Snapshot(id))
		case ws.Monster.Has(id) && InView(ws, id):
			ws.Host.MonsterUpdate(ws.Snapshot(id))
		}
	})
}
