package handler

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/data"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/world"
)

// UseSkill casts a non-targeted skill around the caster.
func UseSkill(id ecs.EntityID, skillID string, ws *world.State) Result {
	sk, r := skillFor(id, skillID, ws)
	if r != OK {
		return r
	}
	if sk.Kind != data.SkillRoundAttack {
		return FailWrongCast
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	if r := skillReady(id, sk, ws); r != OK {
		return r
	}
	startCast(id, component.Casting{Cast: component.CastSkill, SkillID: sk.ID, Total: sk.CastTime}, ws)
	return OK
}

// UseSkillAt casts a positional skill toward point.
func UseSkillAt(id ecs.EntityID, skillID string, point geom.Vec2, ws *world.State) Result {
	sk, r := skillFor(id, skillID, ws)
	if r != OK {
		return r
	}
	if sk.Kind != data.SkillStunArea && sk.Kind != data.SkillProjectile {
		return FailWrongCast
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	if r := skillReady(id, sk, ws); r != OK {
		return r
	}
	pos, _ := ws.Position.Get(id)
	// projectiles fly toward the point whatever the distance
	if sk.Kind == data.SkillStunArea && pos.Dist(point) > sk.Distance {
		return walkForTarget(id, point, 0, sk.Distance*approach, component.TargetAction{
			Kind: component.TargetSkillAt, SkillID: sk.ID, Point: point, HasPoint: true,
		}, ws)
	}
	startCast(id, component.Casting{Cast: component.CastSkill, SkillID: sk.ID, Point: point, Total: sk.CastTime}, ws)
	return OK
}

// UseSkillOn casts an entity-targeted skill on target.
func UseSkillOn(id ecs.EntityID, skillID string, target ecs.EntityID, ws *world.State) Result {
	sk, r := skillFor(id, skillID, ws)
	if r != OK {
		return r
	}
	if sk.Kind != data.SkillUltimate {
		return FailWrongCast
	}
	if !validActor(target, ws) || target == id {
		return FailGeneric
	}
	if ws.IsDead(target) || !hostile(id, target, ws) || ws.IsHidden(target) {
		return FailForbidden
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	if r := skillReady(id, sk, ws); r != OK {
		return r
	}
	if d, _ := ws.Distance(id, target); d > sk.Distance {
		tp, _ := ws.Position.Get(target)
		return walkForTarget(id, *tp, target, sk.Distance*approach, component.TargetAction{
			Kind: component.TargetSkillOn, SkillID: sk.ID, Entity: target,
		}, ws)
	}
	startCast(id, component.Casting{Cast: component.CastSkill, SkillID: sk.ID, Target: target, Total: sk.CastTime}, ws)
	return OK
}

// skillFor resolves a skill the actor knows. Unknown ids are generic
// failures, known-but-unlearned ones are forbidden.
func skillFor(id ecs.EntityID, skillID string, ws *world.State) (*data.SkillInfo, Result) {
	if !validActor(id, ws) || ws.Tables == nil {
		return nil, FailGeneric
	}
	sk := ws.Tables.Skills.Get(skillID)
	if sk == nil {
		return nil, FailGeneric
	}
	if s, ok := ws.Skills.Get(id); !ok || !s.Has(skillID) {
		return nil, FailForbidden
	}
	return sk, OK
}

// skillReady checks weapon gating and the per-skill cooldown.
func skillReady(id ecs.EntityID, sk *data.SkillInfo, ws *world.State) Result {
	if sk.RequiredWeapon != nil {
		w, ok := ws.Weapon.Get(id)
		if !ok || w.Kind != *sk.RequiredWeapon {
			return FailForbidden
		}
	}
	if skillCoolingDown(id, sk.ID, ws) {
		return FailCooldown
	}
	return OK
}

// completeSkill applies a finished skill cast.
func completeSkill(id ecs.EntityID, cast component.Casting, ws *world.State) {
	sk := ws.Tables.Skills.Get(cast.SkillID)
	if sk == nil {
		return
	}
	pos, _ := ws.Position.Get(id)
	switch sk.Kind {
	case data.SkillRoundAttack:
		for _, other := range inRadius(id, *pos, sk.Radius, ws) {
			hit(id, other, sk.Damage, component.DamageMelee, sk.ID, cast.Total, ws)
		}
	case data.SkillStunArea:
		targets := inRadius(id, cast.Point, sk.Radius, ws)
		for _, other := range targets {
			Stun(other, sk.Duration, ws)
		}
	case data.SkillProjectile:
		fireAt(id, 0, cast.Point, bulletSpec{
			damage: sk.Damage, kind: component.DamageSkill, cast: cast.Total,
			speed: sk.Speed, radius: sk.Radius, rng: sk.Distance,
		}, ws)
	case data.SkillUltimate:
		if validActor(cast.Target, ws) && !ws.IsDead(cast.Target) {
			hit(id, cast.Target, 0, component.DamageUltimate, sk.ID, cast.Total, ws)
		}
	}
	ws.Host.SkillCastFinish(id, sk.ID)
	startSkillCooldown(id, sk.ID, sk.Cooldown, ws)
}

// inRadius lists the living hostile actors of id whose body overlaps the
// circle at p.
func inRadius(id ecs.EntityID, p geom.Vec2, radius float64, ws *world.State) []ecs.EntityID {
	var out []ecs.EntityID
	for _, other := range around(p, radius, ws) {
		if other == id || !ws.Action.Has(other) || ws.IsDead(other) || !hostile(id, other, ws) {
			continue
		}
		op, _ := ws.Position.Get(other)
		if op.Dist(p) <= radius+ws.RadiusOf(other) {
			out = append(out, other)
		}
	}
	return out
}
