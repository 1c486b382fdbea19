// Package host defines the outbound notification boundary between the
// simulation and its presentation layer.
package host

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/geom"
)

// Level is the walkable surface announced once at game creation.
type Level struct {
	Name     string
	Vertices []geom.Vec2
	Polygons [][]int
	Bounds   geom.Rect
}

// Tile is a static decoration the host instantiates near the player.
type Tile struct {
	ID       int
	Kind     string
	Position geom.Vec2
}

// Actor is the snapshot sent on player and monster create/update.
type Actor struct {
	ID        ecs.EntityID
	Template  string
	Position  geom.Vec2
	Angle     float64
	Moving    bool
	State     component.State
	Life      float64
	LifeMax   float64
	Shield    float64
	ShieldMax float64
	Hidden    bool
}

// Bullet is the snapshot sent on bullet create/update.
type Bullet struct {
	ID       ecs.EntityID
	Owner    ecs.EntityID
	Position geom.Vec2
	Angle    float64
	Radius   float64
}

// Host receives every notification the simulation emits during a tick.
// Calls are fire-and-forget; only per-entity chronological order is
// guaranteed.
type Host interface {
	DefineLevel(level Level)
	TileCreate(tile Tile)
	TileDelete(tile Tile)

	PlayerCreate(a Actor)
	PlayerUpdate(a Actor)
	PlayerRemove(id ecs.EntityID)
	MonsterCreate(a Actor)
	MonsterUpdate(a Actor)
	MonsterRemove(id ecs.EntityID)
	BulletCreate(b Bullet)
	BulletUpdate(b Bullet)
	BulletRemove(id ecs.EntityID)

	ShiftStart(id ecs.EntityID, from, to geom.Vec2)
	ShiftFinish(id ecs.EntityID)
	MeleeAttackStart(id, target ecs.EntityID, castTime float64)
	MeleeAttackFinish(id ecs.EntityID)
	RangeAttackStart(id, target ecs.EntityID, castTime float64)
	RangeAttackFinish(id ecs.EntityID)
	HandAttackStart(id, target ecs.EntityID, castTime float64)
	HandAttackFinish(id ecs.EntityID)
	ShadowAttackStart(id, target ecs.EntityID, castTime float64)
	ShadowAttackFinish(id ecs.EntityID)
	SkillCastStart(id ecs.EntityID, skill string, castTime float64)
	SkillCastFinish(id ecs.EntityID, skill string)
	CastInterrupted(id ecs.EntityID, cast component.CastKind)
	ShieldActivate(id ecs.EntityID)
	ShieldRelease(id ecs.EntityID)
	StunStart(id ecs.EntityID, duration float64)
	StunFinish(id ecs.EntityID)
	HideStart(id ecs.EntityID)
	HideFinish(id ecs.EntityID)
	CooldownStart(id ecs.EntityID, kind component.CooldownKind, skill string, duration float64)

	Damage(attacker, target ecs.EntityID, amount float64, kind component.DamageKind)
	Death(id, killer ecs.EntityID)
	Resurrect(id ecs.EntityID)

	DebugPath(id ecs.EntityID, path []geom.Vec2)
	DebugNeighbor(a, b ecs.EntityID)
	DebugGridCell(grid string, cell int, rect geom.Rect)
	DebugSearch(monster, enemy ecs.EntityID)
}

// Nop ignores every notification. Embed it to implement a subset of Host.
type Nop struct{}

var _ Host = Nop{}

func (Nop) DefineLevel(Level)                                                   {}
func (Nop) TileCreate(Tile)                                                     {}
func (Nop) TileDelete(Tile)                                                     {}
func (Nop) PlayerCreate(Actor)                                                  {}
func (Nop) PlayerUpdate(Actor)                                                  {}
func (Nop) PlayerRemove(ecs.EntityID)                                           {}
func (Nop) MonsterCreate(Actor)                                                 {}
func (Nop) MonsterUpdate(Actor)                                                 {}
func (Nop) MonsterRemove(ecs.EntityID)                                          {}
func (Nop) BulletCreate(Bullet)                                                 {}
func (Nop) BulletUpdate(Bullet)                                                 {}
func (Nop) BulletRemove(ecs.EntityID)                                           {}
func (Nop) ShiftStart(ecs.EntityID, geom.Vec2, geom.Vec2)                       {}
func (Nop) ShiftFinish(ecs.EntityID)                                            {}
func (Nop) MeleeAttackStart(ecs.EntityID, ecs.EntityID, float64)                {}
func (Nop) MeleeAttackFinish(ecs.EntityID)                                      {}
func (Nop) RangeAttackStart(ecs.EntityID, ecs.EntityID, float64)                {}
func (Nop) RangeAttackFinish(ecs.EntityID)                                      {}
func (Nop) HandAttackStart(ecs.EntityID, ecs.EntityID, float64)                 {}
func (Nop) HandAttackFinish(ecs.EntityID)                                       {}
func (Nop) ShadowAttackStart(ecs.EntityID, ecs.EntityID, float64)               {}
func (Nop) ShadowAttackFinish(ecs.EntityID)                                     {}
func (Nop) SkillCastStart(ecs.EntityID, string, float64)                        {}
func (Nop) SkillCastFinish(ecs.EntityID, string)                                {}
func (Nop) CastInterrupted(ecs.EntityID, component.CastKind)                    {}
func (Nop) ShieldActivate(ecs.EntityID)                                         {}
func (Nop) ShieldRelease(ecs.EntityID)                                          {}
func (Nop) StunStart(ecs.EntityID, float64)                                     {}
func (Nop) StunFinish(ecs.EntityID)                                             {}
func (Nop) HideStart(ecs.EntityID)                                              {}
func (Nop) HideFinish(ecs.EntityID)                                             {}
func (Nop) CooldownStart(ecs.EntityID, component.CooldownKind, string, float64) {}
func (Nop) Damage(ecs.EntityID, ecs.EntityID, float64, component.DamageKind)    {}
func (Nop) Death(ecs.EntityID, ecs.EntityID)                                    {}
func (Nop) Resurrect(ecs.EntityID)                                              {}
func (Nop) DebugPath(ecs.EntityID, []geom.Vec2)                                 {}
func (Nop) DebugNeighbor(ecs.EntityID, ecs.EntityID)                            {}
func (Nop) DebugGridCell(string, int, geom.Rect)                                {}
func (Nop) DebugSearch(ecs.EntityID, ecs.EntityID)                              {}
