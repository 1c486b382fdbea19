package handler

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/world"
)

func startCooldown(id ecs.EntityID, store *ecs.Store[component.Cooldown], kind component.CooldownKind, duration float64, ws *world.State) {
	if duration <= 0 {
		return
	}
	store.Add(id, component.Cooldown{Duration: duration})
	ws.Host.CooldownStart(id, kind, "", duration)
}

func startSkillCooldown(id ecs.EntityID, skill string, duration float64, ws *world.State) {
	if duration <= 0 {
		return
	}
	sc, ok := ws.SkillCooldowns.Get(id)
	if !ok {
		sc = ws.SkillCooldowns.Add(id, component.SkillCooldowns{})
	}
	sc.Start(skill, duration)
	ws.Host.CooldownStart(id, component.CooldownSkill, skill, duration)
}

func skillCoolingDown(id ecs.EntityID, skill string, ws *world.State) bool {
	sc, ok := ws.SkillCooldowns.Get(id)
	return ok && sc.Active(skill)
}
