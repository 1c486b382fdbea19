package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate Phase = iota // 0: dispatch last tick's events, reset scratch velocities
	PhaseIntent                 // 1: AI decisions, preferred velocities
	PhaseSpatial                // 2: grid indices, enemy search, player neighborhood
	PhaseAvoidance              // 3: RVO
	PhaseMove                   // 4: integrate positions, bullets
	PhaseResolve                // 5: state-machine transitions
	PhaseDamage                 // 6: drain queued damage
	PhaseTimers                 // 7: cooldowns, buffs, shield regen
	PhaseOutput                 // 8: flush notifications
	PhaseCleanup                // 9: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "PreUpdate"
	case PhaseIntent:
		return "Intent"
	case PhaseSpatial:
		return "Spatial"
	case PhaseAvoidance:
		return "Avoidance"
	case PhaseMove:
		return "Move"
	case PhaseResolve:
		return "Resolve"
	case PhaseDamage:
		return "Damage"
	case PhaseTimers:
		return "Timers"
	case PhaseOutput:
		return "Output"
	case PhaseCleanup:
		return "Cleanup"
	default:
		return "Unknown"
	}
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
