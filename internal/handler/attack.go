package handler

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/scripting"
	"github.com/l1jgo/arena/internal/world"
	"go.uber.org/zap"
)

// approach is the share of an action's reach used as the walk stop
// distance, so the actor ends up inside reach.
const approach = 0.9

// Attack starts the best available attack on target, or walks toward it
// when out of reach. Weapon choice, first match wins:
//
//	melee weapon within reach  -> melee
//	shadow strike ready, within its reach -> shadow
//	range weapon               -> range
//	no weapon                  -> hand
func Attack(id, target ecs.EntityID, ws *world.State) Result {
	if !validActor(id, ws) || !validActor(target, ws) || id == target {
		return FailGeneric
	}
	if ws.IsDead(target) || !hostile(id, target, ws) || ws.IsHidden(target) {
		return FailForbidden
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	r, reach := tryAttack(id, target, ws)
	if r != FailDistance {
		return r
	}
	tp, _ := ws.Position.Get(target)
	return walkForTarget(id, *tp, target, reach*approach,
		component.TargetAction{Kind: component.TargetAttack, Entity: target}, ws)
}

// tryAttack starts a cast if target is within reach. On FailDistance the
// reach of the chosen attack is returned.
func tryAttack(id, target ecs.EntityID, ws *world.State) (Result, float64) {
	dist, _ := ws.Distance(id, target)
	w, armed := ws.Weapon.Get(id)

	if armed && w.Kind == component.WeaponMelee && dist <= w.Distance {
		if ws.MeleeCooldown.Has(id) {
			return FailCooldown, 0
		}
		startCast(id, component.Casting{Cast: component.CastMelee, Target: target, Total: w.CastTime}, ws)
		return OK, 0
	}
	if ss, ok := ws.ShadowStrike.Get(id); ok && !ws.ShadowCooldown.Has(id) && dist <= ss.Distance {
		startCast(id, component.Casting{Cast: component.CastShadow, Target: target, Total: ss.CastTime}, ws)
		return OK, 0
	}
	if armed {
		// a melee weapon reaching here is out of range
		if w.Kind == component.WeaponMelee || dist > w.Distance {
			return FailDistance, w.Distance
		}
		if ws.MeleeCooldown.Has(id) {
			return FailCooldown, 0
		}
		startCast(id, component.Casting{Cast: component.CastRange, Target: target, Total: w.CastTime}, ws)
		return OK, 0
	}
	hand := ws.Cfg.Combat.HandDistance
	if dist > hand {
		return FailDistance, hand
	}
	if ws.MeleeCooldown.Has(id) {
		return FailCooldown, 0
	}
	startCast(id, component.Casting{Cast: component.CastHand, Target: target, Total: ws.Cfg.Combat.HandCastTime}, ws)
	return OK, 0
}

// startCast enters Casting from Idle. A pending TargetAction is consumed
// and any attack breaks hide.
func startCast(id ecs.EntityID, c component.Casting, ws *world.State) {
	ws.TargetAction.Remove(id)
	if c.Target != 0 {
		if tp, ok := ws.Position.Get(c.Target); ok {
			face(id, *tp, ws)
		}
	} else if c.Cast == component.CastSkill && c.Point != (geom.Vec2{}) {
		face(id, c.Point, ws)
	}
	if c.Cast != component.CastHide {
		BreakHide(id, ws)
	}
	stop(id, ws)
	cast := c
	SetState(id, &cast, ws)

	switch c.Cast {
	case component.CastMelee:
		ws.Host.MeleeAttackStart(id, c.Target, c.Total)
	case component.CastRange:
		ws.Host.RangeAttackStart(id, c.Target, c.Total)
	case component.CastHand:
		ws.Host.HandAttackStart(id, c.Target, c.Total)
	case component.CastShadow:
		ws.Host.ShadowAttackStart(id, c.Target, c.Total)
	case component.CastSkill:
		ws.Host.SkillCastStart(id, c.SkillID, c.Total)
	}
}

// CompleteCast applies the effect of a finished cast, starts its cooldown
// and returns the actor to Idle.
func CompleteCast(id ecs.EntityID, ws *world.State) {
	a, ok := ws.Action.Get(id)
	if !ok {
		return
	}
	c, ok := a.Data.(*component.Casting)
	if !ok {
		return
	}
	cast := *c
	SetState(id, &component.Idle{}, ws)

	switch cast.Cast {
	case component.CastMelee:
		w, ok := ws.Weapon.Get(id)
		if !ws.Invariant(ok, "melee cast without weapon", zap.Uint64("entity", uint64(id))) {
			return
		}
		coneHit(id, w.Distance, w.Spread, w.Damage, component.DamageMelee, cast.Total, ws)
		ws.Host.MeleeAttackFinish(id)
		startCooldown(id, ws.MeleeCooldown, component.CooldownMelee, w.Cooldown, ws)
	case component.CastHand:
		cc := ws.Cfg.Combat
		coneHit(id, cc.HandDistance, cc.HandSpread, cc.HandDamage, component.DamageHand, cast.Total, ws)
		ws.Host.HandAttackFinish(id)
		startCooldown(id, ws.MeleeCooldown, component.CooldownMelee, cc.HandCooldown, ws)
	case component.CastRange:
		w, ok := ws.Weapon.Get(id)
		if !ws.Invariant(ok, "range cast without weapon", zap.Uint64("entity", uint64(id))) {
			return
		}
		fireAt(id, cast.Target, cast.Point, bulletSpec{
			damage: w.Damage, kind: component.DamageRange, cast: cast.Total,
			speed: w.BulletSpeed, radius: w.BulletRadius, rng: w.Distance,
		}, ws)
		ws.Host.RangeAttackFinish(id)
		startCooldown(id, ws.MeleeCooldown, component.CooldownMelee, w.Cooldown, ws)
	case component.CastShadow:
		ss, ok := ws.ShadowStrike.Get(id)
		if !ok {
			return
		}
		shadowStrike(id, cast.Target, ss.Damage, cast.Total, ws)
		ws.Host.ShadowAttackFinish(id)
		startCooldown(id, ws.ShadowCooldown, component.CooldownShadow, ss.Cooldown, ws)
	case component.CastSkill:
		completeSkill(id, cast, ws)
	case component.CastHide:
		activateHide(id, ws)
	}
}

// hit computes final damage through the scripting hook and queues it.
func hit(attacker, target ecs.EntityID, base float64, kind component.DamageKind, skill string, castDuration float64, ws *world.State) {
	ctx := scripting.DamageContext{Kind: kind.String(), SkillID: skill, Base: base}
	if t, ok := ws.Team.Get(attacker); ok {
		ctx.AttackerTeam = t.ID
	}
	if l, ok := ws.Life.Get(attacker); ok {
		ctx.AttackerLife, ctx.AttackerMax = l.Value, l.Max
	}
	if t, ok := ws.Team.Get(target); ok {
		ctx.TargetTeam = t.ID
	}
	if l, ok := ws.Life.Get(target); ok {
		ctx.TargetLife = l.Value
	}
	if s, ok := ws.Shield.Get(target); ok {
		ctx.TargetShield = s.Value
	}
	if st, _ := ws.StateOf(target); st == component.StateShield {
		ctx.Shielding = true
	}
	amount := base
	if kind != component.DamageUltimate {
		amount = ws.Lua.CalcDamage(ctx)
	}
	QueueDamage(target, component.DamageEntry{
		Attacker:     attacker,
		Amount:       amount,
		Kind:         kind,
		CastDuration: castDuration,
	}, ws)
}

// coneHit damages every hostile actor within reach inside the facing cone.
// spread is the full cone angle.
func coneHit(id ecs.EntityID, reach, spread, damage float64, kind component.DamageKind, castDuration float64, ws *world.State) {
	pos, ok := ws.Position.Get(id)
	if !ok {
		return
	}
	heading := 0.0
	if f, ok := ws.Facing.Get(id); ok {
		heading = f.Angle
	}
	for _, other := range around(*pos, reach, ws) {
		if other == id || !ws.Action.Has(other) || ws.IsDead(other) || !hostile(id, other, ws) {
			continue
		}
		op, _ := ws.Position.Get(other)
		d := op.Sub(*pos)
		if d.Len() > reach+ws.RadiusOf(other) {
			continue
		}
		if !geom.InCone(heading, d, spread/2) {
			continue
		}
		hit(id, other, damage, kind, "", castDuration, ws)
	}
}

// shadowStrike blinks id to just behind target and hits it.
func shadowStrike(id, target ecs.EntityID, damage, castDuration float64, ws *world.State) {
	if !validActor(target, ws) || ws.IsDead(target) {
		return
	}
	pos, _ := ws.Position.Get(id)
	tp, _ := ws.Position.Get(target)
	dir := tp.Sub(*pos).Normalize()
	if dir.IsZero() {
		dir = geom.FromAngle(0)
	}
	behind := tp.Add(dir.Scale(ws.RadiusOf(id) + ws.RadiusOf(target)))
	dest, _ := ws.Mesh.ClipSegment(*tp, behind, ws.Cfg.Path.WallEpsilon)
	*pos = dest
	face(id, *tp, ws)
	hit(id, target, damage, component.DamageShadow, "", castDuration, ws)
}

type bulletSpec struct {
	damage float64
	kind   component.DamageKind
	cast   float64
	speed  float64
	radius float64
	rng    float64
}

// fireAt spawns a bullet from id toward target (or point when target is
// gone). Range is clipped to the first navmesh boundary on the way.
func fireAt(id, target ecs.EntityID, point geom.Vec2, b bulletSpec, ws *world.State) {
	pos, ok := ws.Position.Get(id)
	if !ok {
		return
	}
	aim := point
	if tp, ok := ws.Position.Get(target); ok && target != 0 {
		aim = *tp
	}
	dir := aim.Sub(*pos)
	if dir.IsZero() {
		if f, ok := ws.Facing.Get(id); ok {
			dir = geom.FromAngle(f.Angle)
		} else {
			dir = geom.FromAngle(0)
		}
	}
	dir = dir.Normalize()
	face(id, pos.Add(dir), ws)
	rng := b.rng
	if t, hit := ws.Mesh.IntersectBoundary(*pos, pos.Add(dir.Scale(rng))); hit {
		rng *= t
	}
	var team component.Team
	if t, ok := ws.Team.Get(id); ok {
		team = component.NewTeam(t.ID, t.Friends...)
	}
	bid := ws.SpawnBullet(*pos, component.Bullet{
		Owner:        id,
		Team:         team,
		Damage:       b.damage,
		Kind:         b.kind,
		CastDuration: b.cast,
		Radius:       b.radius,
		Speed:        b.speed,
		Direction:    dir.Angle(),
		Range:        rng,
	})
	ws.Host.BulletCreate(ws.BulletSnapshot(bid))
}

// BulletHit resolves a bullet reaching target.
func BulletHit(bullet, target ecs.EntityID, ws *world.State) {
	b, ok := ws.Bullet.Get(bullet)
	if !ok {
		return
	}
	hit(b.Owner, target, b.Damage, b.Kind, "", b.CastDuration, ws)
}
