package system

import (
	"math"
	"time"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/handler"
	"github.com/l1jgo/arena/internal/world"
)

// PathSystem turns WalkToPoint and Shifting into preferred velocities.
// Walks re-plan on a fixed cadence and finish on arrival. Phase 1 (Intent),
// after the AI.
type PathSystem struct {
	ws *world.State
}

func NewPathSystem(ws *world.State) *PathSystem {
	return &PathSystem{ws: ws}
}

func (s *PathSystem) Phase() coresys.Phase { return coresys.PhaseIntent }

func (s *PathSystem) Update(dt time.Duration) {
	sec := world.Seconds(dt)
	if sec <= 0 {
		return
	}
	s.ws.Movers.Each(func(id ecs.EntityID) {
		a, _ := s.ws.Action.Get(id)
		switch d := a.Data.(type) {
		case *component.WalkToPoint:
			s.walk(id, d, sec)
		case *component.Shifting:
			s.shift(id, d, sec)
		}
	})
}

func (s *PathSystem) walk(id ecs.EntityID, w *component.WalkToPoint, sec float64) {
	cfg := s.ws.Cfg.Path
	pos, _ := s.ws.Position.Get(id)
	pref, _ := s.ws.Preferred.Get(id)
	mv, _ := s.ws.Movement.Get(id)

	cadence := cfg.RecalcPoint
	if w.Target != 0 {
		if !s.ws.Alive(w.Target) || s.ws.IsDead(w.Target) {
			handler.AbortWalk(id, s.ws)
			return
		}
		if d, _ := s.ws.Distance(id, w.Target); d <= w.StopDistance {
			handler.FinishWalk(id, s.ws)
			return
		}
		cadence = cfg.RecalcEntity
	}
	w.Recalc += sec
	if w.Recalc >= cadence && !handler.Replan(id, w, s.ws) {
		handler.AbortWalk(id, s.ws)
		return
	}

	for w.Index < len(w.Path) && pos.Dist(w.Path[w.Index]) <= cfg.ArriveEpsilon {
		w.Index++
	}
	if w.Index >= len(w.Path) {
		if w.Target == 0 {
			handler.FinishWalk(id, s.ws)
		}
		// an entity goal waits here for the next re-plan
		return
	}

	d := w.Path[w.Index].Sub(*pos)
	dist := d.Len()
	speed := math.Min(mv.Speed, dist/sec)
	*pref = d.Scale(speed / dist)
	if f, ok := s.ws.Facing.Get(id); ok {
		f.Angle = geom.RotateToward(f.Angle, d.Angle(), mv.TurnRate*sec)
	}
}

func (s *PathSystem) shift(id ecs.EntityID, sh *component.Shifting, sec float64) {
	pos, _ := s.ws.Position.Get(id)
	pref, _ := s.ws.Preferred.Get(id)
	d := sh.Target.Sub(*pos)
	dist := d.Len()
	if dist <= geom.Epsilon {
		return
	}
	speed := math.Min(sh.Speed, dist/sec)
	*pref = d.Scale(speed / dist)
}
