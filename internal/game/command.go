package game

import (
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/handler"
	"go.uber.org/zap"
)

// Every command returns true when the handler accepted it. Unknown or dead
// ids are rejected without side effects.

func (g *Game) accept(cmd string, id ecs.EntityID, r handler.Result) bool {
	if r != handler.OK {
		g.log.Debug("command rejected",
			zap.String("cmd", cmd),
			zap.Uint64("entity", uint64(id)),
			zap.Stringer("result", r),
		)
	}
	return r == handler.OK
}

func (g *Game) MoveToPoint(id ecs.EntityID, p geom.Vec2) bool {
	if g.closed {
		return false
	}
	return g.accept("move_to_point", id, handler.MoveToPoint(id, p, g.ws))
}

// MoveToEntity follows a friend or attacks a hostile target.
func (g *Game) MoveToEntity(id, target ecs.EntityID) bool {
	if g.closed {
		return false
	}
	return g.accept("move_to_entity", id, handler.MoveToEntity(id, target, g.ws))
}

func (g *Game) Attack(id, target ecs.EntityID) bool {
	if g.closed {
		return false
	}
	return g.accept("attack", id, handler.Attack(id, target, g.ws))
}

func (g *Game) ShieldActivate(id ecs.EntityID) bool {
	if g.closed {
		return false
	}
	return g.accept("shield_activate", id, handler.ShieldActivate(id, g.ws))
}

func (g *Game) ShieldRelease(id ecs.EntityID) bool {
	if g.closed {
		return false
	}
	return g.accept("shield_release", id, handler.ShieldRelease(id, g.ws))
}

// Shift dashes toward cursor, capped by the shift distance and walls.
func (g *Game) Shift(id ecs.EntityID, cursor geom.Vec2) bool {
	if g.closed {
		return false
	}
	return g.accept("shift", id, handler.Shift(id, cursor, g.ws))
}

func (g *Game) UseSkill(id ecs.EntityID, skill string) bool {
	if g.closed {
		return false
	}
	return g.accept("use_skill", id, handler.UseSkill(id, skill, g.ws))
}

func (g *Game) UseSkillAt(id ecs.EntityID, skill string, p geom.Vec2) bool {
	if g.closed {
		return false
	}
	return g.accept("use_skill_at", id, handler.UseSkillAt(id, skill, p, g.ws))
}

func (g *Game) UseSkillOn(id ecs.EntityID, skill string, target ecs.EntityID) bool {
	if g.closed {
		return false
	}
	return g.accept("use_skill_on", id, handler.UseSkillOn(id, skill, target, g.ws))
}

func (g *Game) Resurrect(id ecs.EntityID) bool {
	if g.closed {
		return false
	}
	return g.accept("resurrect", id, handler.Resurrect(id, g.ws))
}

func (g *Game) EquipWeapon(id ecs.EntityID, weapon string) bool {
	if g.closed {
		return false
	}
	return g.accept("equip_weapon", id, handler.EquipWeapon(id, weapon, g.ws))
}

func (g *Game) UnequipWeapon(id ecs.EntityID) bool {
	if g.closed {
		return false
	}
	return g.accept("unequip_weapon", id, handler.UnequipWeapon(id, g.ws))
}

func (g *Game) ToggleHide(id ecs.EntityID) bool {
	if g.closed {
		return false
	}
	return g.accept("toggle_hide", id, handler.ToggleHide(id, g.ws))
}

// Stun forces id into Stun for duration seconds.
func (g *Game) Stun(id ecs.EntityID, duration float64) bool {
	if g.closed {
		return false
	}
	return g.accept("stun", id, handler.Stun(id, duration, g.ws))
}
