package world

import (
	"fmt"

	"go.uber.org/zap"
)

// Invariant checks a condition the simulation relies on, typically that an
// entity carries a component it must always have. Debug builds panic with
// the diagnostic; release builds log it and let the caller no-op.
//
//	if !ws.Invariant(ok, "actor without action", zap.Uint64("entity", uint64(id))) {
//		return false
//	}
func (s *State) Invariant(ok bool, msg string, fields ...zap.Field) bool {
	if ok {
		return true
	}
	if debugBuild {
		panic(fmt.Sprintf("invariant violated: %s %v", msg, fields))
	}
	s.Log.Error("invariant violated: "+msg, fields...)
	return false
}
