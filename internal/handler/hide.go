package handler

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/world"
)

// ToggleHide breaks an active hide, or starts the hide cast.
func ToggleHide(id ecs.EntityID, ws *world.State) Result {
	if !validActor(id, ws) {
		return FailGeneric
	}
	if BreakHide(id, ws) {
		return OK
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	if ws.HideCooldown.Has(id) {
		return FailCooldown
	}
	startCast(id, component.Casting{Cast: component.CastHide, Total: ws.Cfg.Combat.HideCastTime}, ws)
	return OK
}

// BreakHide ends hide early. Reports whether the actor was hidden.
func BreakHide(id ecs.EntityID, ws *world.State) bool {
	if !ws.Hide.Has(id) {
		return false
	}
	ws.Hide.Remove(id)
	ws.Host.HideFinish(id)
	ws.MarkDirty(id)
	return true
}

func activateHide(id ecs.EntityID, ws *world.State) {
	cc := ws.Cfg.Combat
	ws.Hide.Add(id, component.Hide{Duration: cc.HideDuration})
	ws.Host.HideStart(id)
	ws.MarkDirty(id)
	startCooldown(id, ws.HideCooldown, component.CooldownHide, cc.HideCooldown, ws)
}
