package handler

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/world"
)

// QueueDamage appends a hit to target's pending damage. Nothing is applied
// until the damage system drains the queue.
func QueueDamage(target ecs.EntityID, e component.DamageEntry, ws *world.State) {
	if !ws.Alive(target) || !ws.Life.Has(target) {
		return
	}
	ad, ok := ws.ApplyDamage.Get(target)
	if !ok {
		ad = ws.ApplyDamage.Add(target, component.ApplyDamage{})
	}
	ad.Entries = append(ad.Entries, e)
}

// ApplyQueuedDamage drains and resolves every hit queued on id.
func ApplyQueuedDamage(id ecs.EntityID, ws *world.State) {
	ad, ok := ws.ApplyDamage.Get(id)
	if !ok {
		return
	}
	entries := ad.Entries
	ws.ApplyDamage.Remove(id)
	for _, e := range entries {
		applyEntry(id, e, ws)
	}
}

// applyEntry resolves one hit:
//
//	allied attacker         skipped
//	ultimate                all remaining life
//	shield raised           absorbs first, excess carries to life
//	  early + ranged        blocked, life untouched
//	  early + melee family  attacker stunned
//	life at zero            Dead
func applyEntry(target ecs.EntityID, e component.DamageEntry, ws *world.State) {
	if ws.IsDead(target) {
		return
	}
	ta, ok1 := ws.Team.Get(e.Attacker)
	tt, ok2 := ws.Team.Get(target)
	if ok1 && ok2 && component.Allied(*ta, *tt) {
		return
	}
	life, ok := ws.Life.Get(target)
	if !ok {
		return
	}
	amount := e.Amount
	if e.Kind == component.DamageUltimate {
		amount = life.Value
	}

	if a, ok := ws.Action.Get(target); ok {
		if sd, ok := a.Data.(*component.Shielding); ok {
			amount = shieldHit(target, e, amount, sd.Active < e.CastDuration, ws)
		}
	}

	taken := life.Sub(amount)
	ws.Host.Damage(e.Attacker, target, taken, e.Kind)
	if life.Value <= 0 {
		kill(target, e.Attacker, ws)
		return
	}
	ws.MarkDirty(target)
}

// shieldHit runs a hit through a raised shield and returns what carries
// through to life.
func shieldHit(target ecs.EntityID, e component.DamageEntry, amount float64, parry bool, ws *world.State) float64 {
	sh, ok := ws.Shield.Get(target)
	if !ok {
		return amount
	}
	rest := amount
	switch {
	case parry && e.Kind.Ranged():
		sh.Absorb(amount)
		rest = 0
	default:
		if parry && e.Kind != component.DamageUltimate && ws.Alive(e.Attacker) {
			Stun(e.Attacker, ws.Cfg.Combat.ParryStun, ws)
		}
		rest = amount - sh.Absorb(amount)
	}
	if sh.Value <= 0 {
		sh.Depleted = true
		SetState(target, &component.Idle{}, ws)
		ws.Host.ShieldRelease(target)
	}
	return rest
}
