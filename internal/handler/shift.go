package handler

import (
	"math"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/world"
)

// shiftGrace is added to the nominal dash time before a shift is forced
// to finish.
const shiftGrace = 0.25

// Shift dashes toward cursor, capped at the configured distance and clipped
// just short of the first navmesh wall.
func Shift(id ecs.EntityID, cursor geom.Vec2, ws *world.State) Result {
	if !validActor(id, ws) {
		return FailGeneric
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	if ws.ShiftCooldown.Has(id) {
		return FailCooldown
	}
	cc := ws.Cfg.Combat
	pos, _ := ws.Position.Get(id)
	dest := cursor
	if d := cursor.Sub(*pos); d.Len() > cc.ShiftDistance {
		dest = pos.Add(d.Normalize().Scale(cc.ShiftDistance))
	}
	dest, _ = ws.Mesh.ClipSegment(*pos, dest, ws.Cfg.Path.WallEpsilon)
	dist := pos.Dist(dest)
	if dist < geom.Epsilon {
		return FailGeneric
	}
	ws.TargetAction.Remove(id)
	BreakHide(id, ws)
	face(id, dest, ws)
	SetState(id, &component.Shifting{
		From:    *pos,
		Target:  dest,
		Speed:   cc.ShiftSpeed,
		MaxTime: dist/math.Max(cc.ShiftSpeed, geom.Epsilon) + shiftGrace,
	}, ws)
	ws.Host.ShiftStart(id, *pos, dest)
	return OK
}

// FinishShift ends a dash and starts the shift cooldown.
func FinishShift(id ecs.EntityID, ws *world.State) {
	if st, _ := ws.StateOf(id); st != component.StateShifting {
		return
	}
	SetState(id, &component.Idle{}, ws)
	stop(id, ws)
	ws.Host.ShiftFinish(id)
	startCooldown(id, ws.ShiftCooldown, component.CooldownShift, ws.Cfg.Combat.ShiftCooldown, ws)
}
