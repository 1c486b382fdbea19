package component

import (
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/geom"
)

// State enumerates the action states.
type State uint8

const (
	StateIdle State = iota
	StateIdleWait
	StateWalkToPoint
	StateShifting
	StateCasting
	StateShield
	StateStun
	StateDead
)

var stateNames = [...]string{"idle", "idle_wait", "walk_to_point", "shifting", "casting", "shield", "stun", "dead"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// StateData is the data of the current action state. The concrete type is
// the state, so an actor can never carry two state records at once.
type StateData interface {
	Kind() State
	sealed()
}

// Action holds an actor's current state.
type Action struct {
	Data StateData
}

// Kind returns the current state, StateIdle when unset.
func (a *Action) Kind() State {
	if a.Data == nil {
		return StateIdle
	}
	return a.Data.Kind()
}

type Idle struct{}

// IdleWait is a randomized pause taken by monsters between wanders.
type IdleWait struct {
	Elapsed  float64
	Duration float64
}

// WalkToPoint follows a navmesh path. When Target is set the goal tracks
// that entity and the walk ends once within StopDistance of it.
type WalkToPoint struct {
	Path         []geom.Vec2
	Index        int // next waypoint
	Goal         geom.Vec2
	Target       ecs.EntityID
	StopDistance float64
	Recalc       float64 // seconds since the last re-plan
}

// Shifting is a dash toward a pre-clipped point.
type Shifting struct {
	From    geom.Vec2
	Target  geom.Vec2
	Speed   float64
	Elapsed float64
	MaxTime float64
}

// Casting is a timed attack or skill that resolves when Elapsed reaches Total.
type Casting struct {
	Cast    CastKind
	SkillID string
	Target  ecs.EntityID
	Point   geom.Vec2
	Elapsed float64
	Total   float64
}

// Shielding is the raised-shield state. Active counts seconds since it was
// raised and decides parries.
type Shielding struct {
	Active float64
}

type Stunned struct {
	Elapsed  float64
	Duration float64
}

type Dead struct{}

func (*Idle) Kind() State        { return StateIdle }
func (*IdleWait) Kind() State    { return StateIdleWait }
func (*WalkToPoint) Kind() State { return StateWalkToPoint }
func (*Shifting) Kind() State    { return StateShifting }
func (*Casting) Kind() State     { return StateCasting }
func (*Shielding) Kind() State   { return StateShield }
func (*Stunned) Kind() State     { return StateStun }
func (*Dead) Kind() State        { return StateDead }

func (*Idle) sealed()        {}
func (*IdleWait) sealed()    {}
func (*WalkToPoint) sealed() {}
func (*Shifting) sealed()    {}
func (*Casting) sealed()     {}
func (*Shielding) sealed()   {}
func (*Stunned) sealed()     {}
func (*Dead) sealed()        {}

// TargetKind is the intent recorded by a TargetAction.
type TargetKind uint8

const (
	TargetAttack TargetKind = iota
	TargetSkillAt
	TargetSkillOn
)

// TargetAction is the pending intent re-attempted when a walk completes.
type TargetAction struct {
	Kind     TargetKind
	SkillID  string
	Entity   ecs.EntityID
	Point    geom.Vec2
	HasPoint bool
}
