// Package handler implements the action state machine and the commands that
// drive it. Every command first routes through InterruptToIdle, then checks
// its own preconditions, and reports a Result.
package handler

// Result is the outcome of a command or state transition request.
type Result uint8

const (
	OK Result = iota
	FailDistance
	FailCooldown
	FailWrongCast
	FailForbidden
	FailGeneric
)

var resultNames = [...]string{"ok", "fail_distance", "fail_cooldown", "fail_wrong_cast", "fail_forbidden", "fail_generic"}

func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "unknown"
}

// Succeeded reports r == OK.
func (r Result) Succeeded() bool { return r == OK }
