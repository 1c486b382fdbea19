package system

import (
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/world"
)

// RegisterAll installs every simulation system on r. Within a phase the
// registration order below is the execution order.
func RegisterAll(r *coresys.Runner, ws *world.State) {
	r.Register(NewEventDispatchSystem(ws))
	r.Register(NewVelocityResetSystem(ws))

	r.Register(NewMonsterAISystem(ws))
	r.Register(NewPathSystem(ws))

	r.Register(NewGridIndexSystem(ws))
	r.Register(NewEnemySearchSystem(ws))
	r.Register(NewVisibilitySystem(ws))

	r.Register(NewAvoidanceSystem(ws))

	r.Register(NewMoveSystem(ws))
	r.Register(NewBulletSystem(ws))

	r.Register(NewResolveSystem(ws))
	r.Register(NewDamageSystem(ws))

	r.Register(NewCooldownSystem(ws))
	r.Register(NewShieldRegenSystem(ws))

	r.Register(NewOutputSystem(ws))
	r.Register(NewCleanupSystem(ws))
}
