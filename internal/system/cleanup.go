package system

import (
	"time"

	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 9 (Cleanup).
type CleanupSystem struct {
	ws *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{ws: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(dt time.Duration) {
	s.ws.ECS.FlushDestroyQueue()
	s.ws.Clock += world.Seconds(dt)
}
