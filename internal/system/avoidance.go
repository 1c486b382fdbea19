package system

import (
	"sort"
	"time"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/rvo"
	"github.com/l1jgo/arena/internal/world"
)

// AvoidanceSystem converts preferred velocities into collision-free ones
// with the ORCA solver. Every agent is solved against the velocities of the
// previous tick; results are committed only after all agents are solved.
// Phase 3 (Avoidance).
type AvoidanceSystem struct {
	ws *world.State

	ids       []ecs.EntityID
	out       []geom.Vec2
	neighbors []rvo.Neighbor
	cands     []candidate
	lines     []rvo.Line
}

type candidate struct {
	id   ecs.EntityID
	d2   float64
	here rvo.Neighbor
}

func NewAvoidanceSystem(ws *world.State) *AvoidanceSystem {
	return &AvoidanceSystem{ws: ws}
}

func (s *AvoidanceSystem) Phase() coresys.Phase { return coresys.PhaseAvoidance }

func (s *AvoidanceSystem) Update(dt time.Duration) {
	ws := s.ws
	params := rvo.Params{
		TimeHorizon:  ws.Cfg.RVO.TimeHorizon,
		TimeStep:     world.Seconds(dt),
		DirectionOpt: ws.Cfg.RVO.DirectionOpt,
	}
	if params.TimeStep <= 0 {
		return
	}

	s.ids = ws.Movers.Snapshot(s.ids)
	s.out = s.out[:0]
	for _, id := range s.ids {
		s.out = append(s.out, s.solve(id, params))
	}
	for i, id := range s.ids {
		if v, ok := ws.Velocity.Get(id); ok {
			*v = s.out[i]
		}
	}
}

func (s *AvoidanceSystem) solve(id ecs.EntityID, params rvo.Params) geom.Vec2 {
	ws := s.ws
	pref, _ := ws.Preferred.Get(id)
	st, _ := ws.StateOf(id)
	if ws.IsPlayer(id) || st == component.StateShifting {
		return *pref
	}
	if !avoids(st) {
		return geom.Vec2{}
	}

	pos, _ := ws.Position.Get(id)
	vel, _ := ws.Velocity.Get(id)
	mv, _ := ws.Movement.Get(id)
	s.collect(id, *pos)
	res := rvo.ComputeVelocity(rvo.Agent{
		Position:  *pos,
		Velocity:  *vel,
		Preferred: *pref,
		Radius:    mv.Radius,
		MaxSpeed:  mv.Speed,
	}, s.neighbors, params, s.lines)
	s.lines = res.Lines
	return res.Velocity
}

// collect fills s.neighbors with the nearest movers around pos, sorted by
// (distance², id) and truncated to rvo.max_neighbors.
func (s *AvoidanceSystem) collect(id ecs.EntityID, pos geom.Vec2) {
	ws := s.ws
	maxD2 := ws.Cfg.RVO.NeighborDistance * ws.Cfg.RVO.NeighborDistance
	s.cands = s.cands[:0]
	for _, other := range ws.Neighborhood.ItemsAround(pos.X, pos.Y) {
		if other == id || !ws.Movement.Has(other) {
			continue
		}
		op, _ := ws.Position.Get(other)
		d2 := pos.DistSq(*op)
		if d2 > maxD2 {
			continue
		}
		ov, _ := ws.Velocity.Get(other)
		st, _ := ws.StateOf(other)
		s.cands = append(s.cands, candidate{id: other, d2: d2, here: rvo.Neighbor{
			Position:   *op,
			Velocity:   *ov,
			Radius:     ws.RadiusOf(other),
			Reciprocal: !ws.IsPlayer(other) && avoids(st),
		}})
	}
	sort.Slice(s.cands, func(i, j int) bool {
		if s.cands[i].d2 != s.cands[j].d2 {
			return s.cands[i].d2 < s.cands[j].d2
		}
		return s.cands[i].id < s.cands[j].id
	})
	if n := ws.Cfg.RVO.MaxNeighbors; n > 0 && len(s.cands) > n {
		s.cands = s.cands[:n]
	}
	s.neighbors = s.neighbors[:0]
	for _, c := range s.cands {
		s.neighbors = append(s.neighbors, c.here)
		if ws.Debug() {
			ws.Host.DebugNeighbor(id, c.id)
		}
	}
}

// avoids reports whether an actor in st runs the solver itself.
func avoids(st component.State) bool {
	switch st {
	case component.StateIdle, component.StateIdleWait, component.StateWalkToPoint:
		return true
	}
	return false
}
