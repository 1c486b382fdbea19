package handler

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/navmesh"
	"github.com/l1jgo/arena/internal/world"
)

// followSlack is added to the combined radius when following a friend.
const followSlack = 0.5

// MoveToPoint walks id to p along the navmesh.
func MoveToPoint(id ecs.EntityID, p geom.Vec2, ws *world.State) Result {
	if !validActor(id, ws) {
		return FailGeneric
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	ws.TargetAction.Remove(id)
	return startWalk(id, p, 0, 0, ws)
}

// MoveToEntity attacks target when it is hostile and follows it otherwise.
func MoveToEntity(id, target ecs.EntityID, ws *world.State) Result {
	if !validActor(id, ws) || !validActor(target, ws) || id == target {
		return FailGeneric
	}
	if hostile(id, target, ws) {
		return Attack(id, target, ws)
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	ws.TargetAction.Remove(id)
	tp, _ := ws.Position.Get(target)
	stopAt := ws.RadiusOf(id) + ws.RadiusOf(target) + followSlack
	if d, _ := ws.Distance(id, target); d <= stopAt {
		return OK
	}
	return startWalk(id, *tp, target, stopAt, ws)
}

// walkForTarget degrades a failed-distance command into a walk that
// re-attempts ta on arrival.
func walkForTarget(id ecs.EntityID, goal geom.Vec2, target ecs.EntityID, stopAt float64, ta component.TargetAction, ws *world.State) Result {
	if r := startWalk(id, goal, target, stopAt, ws); r != OK {
		return r
	}
	ws.TargetAction.Add(id, ta)
	return OK
}

// startWalk plans a path and enters WalkToPoint. The actor must be idle.
func startWalk(id ecs.EntityID, goal geom.Vec2, target ecs.EntityID, stopAt float64, ws *world.State) Result {
	pos, ok := ws.Position.Get(id)
	if !ok {
		return FailGeneric
	}
	path := planPath(id, *pos, goal, ws)
	if len(path) == 0 {
		return FailGeneric
	}
	SetState(id, &component.WalkToPoint{
		Path:         path,
		Index:        1,
		Goal:         goal,
		Target:       target,
		StopDistance: stopAt,
	}, ws)
	return OK
}

func planPath(id ecs.EntityID, from, to geom.Vec2, ws *world.State) []geom.Vec2 {
	path := ws.Mesh.SearchPath(from, to, ws.Cfg.Path.MaxSampleDistance)
	if len(path) == 0 {
		return nil
	}
	path = navmesh.Offset(path, ws.Cfg.Path.OffsetDelta)
	if ws.Debug() {
		ws.Host.DebugPath(id, path)
	}
	return path
}

// Replan recomputes the path of a walk in progress. Entity goals track the
// target's current position. Returns false when no path exists any more.
func Replan(id ecs.EntityID, w *component.WalkToPoint, ws *world.State) bool {
	pos, ok := ws.Position.Get(id)
	if !ok {
		return false
	}
	if w.Target != 0 {
		tp, ok := ws.Position.Get(w.Target)
		if !ok {
			return false
		}
		w.Goal = *tp
	}
	w.Recalc = 0
	path := planPath(id, *pos, w.Goal, ws)
	if len(path) == 0 {
		return false
	}
	w.Path = path
	w.Index = 1
	return true
}

// FinishWalk ends a walk and re-attempts the pending TargetAction, if any.
func FinishWalk(id ecs.EntityID, ws *world.State) Result {
	SetState(id, &component.Idle{}, ws)
	stop(id, ws)
	if !ws.TargetAction.Has(id) {
		return OK
	}
	return RetryTarget(id, ws)
}

// AbortWalk ends a walk whose goal became unreachable.
func AbortWalk(id ecs.EntityID, ws *world.State) {
	ws.TargetAction.Remove(id)
	SetState(id, &component.Idle{}, ws)
	stop(id, ws)
}

// RetryTarget consumes the pending TargetAction and issues it again.
func RetryTarget(id ecs.EntityID, ws *world.State) Result {
	ta, ok := ws.TargetAction.Get(id)
	if !ok {
		return FailGeneric
	}
	t := *ta
	ws.TargetAction.Remove(id)
	switch t.Kind {
	case component.TargetAttack:
		return Attack(id, t.Entity, ws)
	case component.TargetSkillAt:
		return UseSkillAt(id, t.SkillID, t.Point, ws)
	case component.TargetSkillOn:
		return UseSkillOn(id, t.SkillID, t.Entity, ws)
	}
	return FailGeneric
}
