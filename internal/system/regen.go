package system

import (
	"time"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/world"
)

// ShieldRegenSystem refills shields while they are lowered. A depleted
// shield becomes usable again once it is full. Phase 7 (Timers).
type ShieldRegenSystem struct {
	ws *world.State
}

func NewShieldRegenSystem(ws *world.State) *ShieldRegenSystem {
	return &ShieldRegenSystem{ws: ws}
}

func (s *ShieldRegenSystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *ShieldRegenSystem) Update(dt time.Duration) {
	sec := world.Seconds(dt)
	s.ws.Shields.Each(func(id ecs.EntityID) {
		switch st, _ := s.ws.StateOf(id); st {
		case component.StateShield, component.StateDead:
			return
		}
		sh, _ := s.ws.Shield.Get(id)
		if sh.Full || sh.Max <= 0 {
			return
		}
		sh.Regen(sh.RegenRate * sec)
		s.ws.MarkDirty(id)
	})
}
