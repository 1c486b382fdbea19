package handler

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/world"
)

// Stun forces id into Stun for duration seconds. Uses the interrupt
// protocol, so an actor already stunned or shifting is not re-stunned.
func Stun(id ecs.EntityID, duration float64, ws *world.State) Result {
	if !validActor(id, ws) || duration <= 0 {
		return FailGeneric
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	ws.TargetAction.Remove(id)
	stop(id, ws)
	SetState(id, &component.Stunned{Duration: duration}, ws)
	ws.Host.StunStart(id, duration)
	return OK
}

// FinishStun returns a stunned actor to Idle.
func FinishStun(id ecs.EntityID, ws *world.State) {
	if st, _ := ws.StateOf(id); st != component.StateStun {
		return
	}
	SetState(id, &component.Idle{}, ws)
	ws.Host.StunFinish(id)
}
