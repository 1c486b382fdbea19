package handler

import (
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/world"
)

// EquipWeapon replaces the actor's weapon with the table entry weaponID.
func EquipWeapon(id ecs.EntityID, weaponID string, ws *world.State) Result {
	if !validActor(id, ws) || ws.Tables == nil {
		return FailGeneric
	}
	info := ws.Tables.Weapons.Get(weaponID)
	if info == nil {
		return FailGeneric
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	ws.Weapon.Add(id, info.Component())
	ws.MeleeCooldown.Remove(id)
	ws.MarkDirty(id)
	return OK
}

// UnequipWeapon returns the actor to bare hands.
func UnequipWeapon(id ecs.EntityID, ws *world.State) Result {
	if !validActor(id, ws) || !ws.Weapon.Has(id) {
		return FailGeneric
	}
	if r := InterruptToIdle(id, ws); r != OK {
		return r
	}
	ws.Weapon.Remove(id)
	ws.MarkDirty(id)
	return OK
}
