package system

import (
	"time"

	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/core/event"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
)

// EventDispatchSystem delivers last tick's bus events.
// Phase 0 (PreUpdate).
type EventDispatchSystem struct {
	ws *world.State
}

func NewEventDispatchSystem(ws *world.State) *EventDispatchSystem {
	s := &EventDispatchSystem{ws: ws}
	event.Subscribe(ws.Bus, s.onKilled)
	event.Subscribe(ws.Bus, s.onResurrected)
	return s
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.ws.Bus.SwapBuffers()
	s.ws.Bus.DispatchAll()
}

// onKilled makes every monster forget the dead entity.
func (s *EventDispatchSystem) onKilled(ev event.EntityKilled) {
	for _, id := range s.ws.Enemies.Entities() {
		if e, ok := s.ws.Enemies.Get(id); ok {
			e.Remove(ev.EntityID)
		}
	}
	s.ws.Log.Info("entity killed",
		zap.Uint64("entity", uint64(ev.EntityID)),
		zap.Uint64("killer", uint64(ev.KillerID)),
		zap.Float64("clock", s.ws.Clock))
}

func (s *EventDispatchSystem) onResurrected(ev event.EntityResurrected) {
	if m, ok := s.ws.Monster.Get(ev.EntityID); ok {
		m.Rested = false
	}
	s.ws.MarkDirty(ev.EntityID)
	s.ws.Log.Info("entity resurrected", zap.Uint64("entity", uint64(ev.EntityID)))
}

// VelocityResetSystem clears per-tick scratch movement.
// Phase 0 (PreUpdate), after event dispatch.
type VelocityResetSystem struct {
	ws *world.State
}

func NewVelocityResetSystem(ws *world.State) *VelocityResetSystem {
	return &VelocityResetSystem{ws: ws}
}

func (s *VelocityResetSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *VelocityResetSystem) Update(_ time.Duration) {
	s.ws.Movers.Each(func(id ecs.EntityID) {
		pos, _ := s.ws.Position.Get(id)
		if prev, ok := s.ws.PrevPosition.Get(id); ok {
			*prev = *pos
		}
		pref, _ := s.ws.Preferred.Get(id)
		pref.X, pref.Y = 0, 0
	})
}
