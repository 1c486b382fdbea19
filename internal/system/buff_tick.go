package system

import (
	"time"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/handler"
	"github.com/l1jgo/arena/internal/world"
)

// CooldownSystem counts cooldown timers up and removes the elapsed ones;
// the command layer only checks their presence. Hide expiry runs here too.
// Phase 7 (Timers).
type CooldownSystem struct {
	ws      *world.State
	expired []ecs.EntityID
}

func NewCooldownSystem(ws *world.State) *CooldownSystem {
	return &CooldownSystem{ws: ws}
}

func (s *CooldownSystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *CooldownSystem) Update(dt time.Duration) {
	sec := world.Seconds(dt)
	ws := s.ws
	for _, store := range []*ecs.Store[component.Cooldown]{
		ws.ShiftCooldown, ws.MeleeCooldown, ws.HideCooldown, ws.ShadowCooldown,
	} {
		s.tick(store, sec)
	}

	for _, id := range ws.SkillCooldowns.Entities() {
		sc, _ := ws.SkillCooldowns.Get(id)
		sc.Advance(sec)
	}

	ws.Hidden.Each(func(id ecs.EntityID) {
		h, _ := ws.Hide.Get(id)
		h.Elapsed += sec
		if h.Elapsed >= h.Duration {
			handler.BreakHide(id, ws)
		}
	})
}

func (s *CooldownSystem) tick(store *ecs.Store[component.Cooldown], sec float64) {
	s.expired = s.expired[:0]
	for _, id := range store.Entities() {
		cd, _ := store.Get(id)
		cd.Elapsed += sec
		if cd.Elapsed >= cd.Duration {
			s.expired = append(s.expired, id)
		}
	}
	for _, id := range s.expired {
		store.Remove(id)
	}
}
