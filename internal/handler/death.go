package handler

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/core/event"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
)

// kill moves id to Dead regardless of its current state. The state being
// left still gets its end notification.
func kill(id, killer ecs.EntityID, ws *world.State) {
	a, ok := ws.Action.Get(id)
	if !ok {
		return
	}
	switch d := a.Data.(type) {
	case *component.Dead:
		return
	case *component.Casting:
		ws.Host.CastInterrupted(id, d.Cast)
	case *component.Shielding:
		ws.Host.ShieldRelease(id)
	case *component.Stunned:
		ws.Host.StunFinish(id)
	case *component.Shifting:
		ws.Host.ShiftFinish(id)
	}
	SetState(id, &component.Dead{}, ws)
	ws.TargetAction.Remove(id)
	ws.ApplyDamage.Remove(id)
	BreakHide(id, ws)
	stop(id, ws)

	ws.Host.Death(id, killer)
	event.Emit(ws.Bus, event.EntityKilled{EntityID: id, KillerID: killer})
	ws.Log.Debug("entity killed", zap.Uint64("entity", uint64(id)), zap.Uint64("killer", uint64(killer)))
}

// Resurrect brings a dead actor back at full life and shield.
func Resurrect(id ecs.EntityID, ws *world.State) Result {
	if !validActor(id, ws) {
		return FailGeneric
	}
	if st, _ := ws.StateOf(id); st != component.StateDead {
		return FailWrongCast
	}
	if l, ok := ws.Life.Get(id); ok {
		l.Reset()
	}
	if sh, ok := ws.Shield.Get(id); ok {
		sh.Reset()
	}
	SetState(id, &component.Idle{}, ws)
	ws.Host.Resurrect(id)
	event.Emit(ws.Bus, event.EntityResurrected{EntityID: id})
	return OK
}
