package handler

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
)

// SetState replaces the actor's state data in one step. The previous
// record is dropped; no notifications are sent.
func SetState(id ecs.EntityID, data component.StateData, ws *world.State) bool {
	a, ok := ws.Action.Get(id)
	if !ws.Invariant(ok, "set state on entity without action",
		zap.Uint64("entity", uint64(id)), zap.Stringer("state", data.Kind())) {
		return false
	}
	a.Data = data
	ws.MarkDirty(id)
	return true
}

// InterruptToIdle leaves the current state so a new intent can start.
//
//	Idle               no-op, OK
//	IdleWait, Walk     exit, pending TargetAction dropped, OK
//	Casting            CastInterrupted, OK
//	Shield             ShieldRelease, OK
//	Shifting, Stun     FailForbidden
//	Dead               FailGeneric
func InterruptToIdle(id ecs.EntityID, ws *world.State) Result {
	a, ok := ws.Action.Get(id)
	if !ws.Invariant(ok, "interrupt on entity without action", zap.Uint64("entity", uint64(id))) {
		return FailGeneric
	}
	switch d := a.Data.(type) {
	case nil:
		a.Data = &component.Idle{}
		return OK
	case *component.Idle:
		return OK
	case *component.IdleWait, *component.WalkToPoint:
		ws.TargetAction.Remove(id)
		SetState(id, &component.Idle{}, ws)
		return OK
	case *component.Casting:
		ws.Host.CastInterrupted(id, d.Cast)
		SetState(id, &component.Idle{}, ws)
		return OK
	case *component.Shielding:
		ws.Host.ShieldRelease(id)
		SetState(id, &component.Idle{}, ws)
		return OK
	case *component.Shifting, *component.Stunned:
		return FailForbidden
	case *component.Dead:
		return FailGeneric
	}
	return FailGeneric
}

// StartIdleWait pauses an idle monster for duration seconds.
func StartIdleWait(id ecs.EntityID, duration float64, ws *world.State) Result {
	st, ok := ws.StateOf(id)
	if !ok || st != component.StateIdle {
		return FailWrongCast
	}
	SetState(id, &component.IdleWait{Duration: duration}, ws)
	return OK
}

// validActor reports whether id is a live actor able to receive commands.
func validActor(id ecs.EntityID, ws *world.State) bool {
	return ws.Alive(id) && ws.Action.Has(id) && ws.Position.Has(id)
}

// hostile reports whether a regards b as an enemy.
func hostile(a, b ecs.EntityID, ws *world.State) bool {
	ta, ok1 := ws.Team.Get(a)
	tb, ok2 := ws.Team.Get(b)
	if !ok1 || !ok2 {
		return false
	}
	return !ta.Friendly(*tb)
}

// face turns id toward p immediately.
func face(id ecs.EntityID, p geom.Vec2, ws *world.State) {
	pos, ok := ws.Position.Get(id)
	if !ok {
		return
	}
	d := p.Sub(*pos)
	if d.IsZero() {
		return
	}
	if f, ok := ws.Facing.Get(id); ok {
		f.Angle = d.Angle()
	}
}

// stop zeroes both velocities of id.
func stop(id ecs.EntityID, ws *world.State) {
	if v, ok := ws.Velocity.Get(id); ok {
		*v = geom.Vec2{}
	}
	if v, ok := ws.Preferred.Get(id); ok {
		*v = geom.Vec2{}
	}
}

// bodySlack bounds the body radius of anything a range query can hit.
const bodySlack = 1.0

// around returns a copy of the entities filed within radius of p, body
// slack included. The neighborhood block serves radii that fit it; anything
// wider walks as many search cells as the radius covers.
func around(p geom.Vec2, radius float64, ws *world.State) []ecs.EntityID {
	reach := radius + bodySlack
	if reach <= ws.Neighborhood.CellSize() {
		return append([]ecs.EntityID(nil), ws.Neighborhood.ItemsAround(p.X, p.Y)...)
	}
	return append([]ecs.EntityID(nil), ws.Search.ItemsWithin(p.X, p.Y, reach)...)
}
