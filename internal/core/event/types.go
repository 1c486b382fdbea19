package event

import "github.com/l1jgo/arena/internal/core/ecs"

// EntityKilled fires when an actor's life reaches zero.
type EntityKilled struct {
	EntityID ecs.EntityID
	KillerID ecs.EntityID
}

// EntityResurrected fires when a dead actor returns to Idle.
type EntityResurrected struct {
	EntityID ecs.EntityID
}
