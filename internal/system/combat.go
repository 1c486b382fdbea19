package system

import (
	"time"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/handler"
	"github.com/l1jgo/arena/internal/world"
)

// ResolveSystem advances timed states and fires their transitions: cast
// completion, IdleWait / Stun / Shift expiry, and shield age.
// Phase 5 (Resolve).
type ResolveSystem struct {
	ws *world.State
}

func NewResolveSystem(ws *world.State) *ResolveSystem {
	return &ResolveSystem{ws: ws}
}

func (s *ResolveSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *ResolveSystem) Update(dt time.Duration) {
	sec := world.Seconds(dt)
	ws := s.ws
	ws.Actors.Each(func(id ecs.EntityID) {
		a, _ := ws.Action.Get(id)
		switch d := a.Data.(type) {
		case *component.Casting:
			d.Elapsed += sec
			if d.Elapsed >= d.Total {
				handler.CompleteCast(id, ws)
			}
		case *component.IdleWait:
			d.Elapsed += sec
			if d.Elapsed >= d.Duration {
				handler.SetState(id, &component.Idle{}, ws)
				if m, ok := ws.Monster.Get(id); ok {
					m.Rested = true
				}
			}
		case *component.Stunned:
			d.Elapsed += sec
			if d.Elapsed >= d.Duration {
				handler.FinishStun(id, ws)
			}
		case *component.Shifting:
			d.Elapsed += sec
			pos, _ := ws.Position.Get(id)
			if pos.Dist(d.Target) <= ws.Cfg.Path.ArriveEpsilon || d.Elapsed >= d.MaxTime {
				handler.FinishShift(id, ws)
			}
		case *component.Shielding:
			d.Active += sec
		}
	})
}

// DamageSystem drains every queued hit. Phase 6 (Damage).
type DamageSystem struct {
	ws *world.State
}

func NewDamageSystem(ws *world.State) *DamageSystem {
	return &DamageSystem{ws: ws}
}

func (s *DamageSystem) Phase() coresys.Phase { return coresys.PhaseDamage }

func (s *DamageSystem) Update(_ time.Duration) {
	s.ws.Damaged.Each(func(id ecs.EntityID) {
		handler.ApplyQueuedDamage(id, s.ws)
	})
}
