package handler

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/world"
)

// ShieldActivate raises the shield. A broken shield stays down until it
// has fully regenerated.
func ShieldActivate(id ecs.EntityID, ws *world.State) Result {
	if !validActor(id, ws) {
		return FailGeneric
	}
	sh, ok := ws.Shield.Get(id)
	if !ok || sh.Max <= 0 {
		return FailGeneric
	}
	if st, _ := ws.StateOf(id); st == component.StateShield {
		return OK
	}
	if sh.Depleted || sh.Value <= 0 {
		return FailForbidden
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	ws.TargetAction.Remove(id)
	stop(id, ws)
	SetState(id, &component.Shielding{}, ws)
	ws.Host.ShieldActivate(id)
	return OK
}

// ShieldRelease lowers a raised shield.
func ShieldRelease(id ecs.EntityID, ws *world.State) Result {
	if !validActor(id, ws) {
		return FailGeneric
	}
	if st, _ := ws.StateOf(id); st != component.StateShield {
		return FailWrongCast
	}
	SetState(id, &component.Idle{}, ws)
	ws.Host.ShieldRelease(id)
	return OK
}
