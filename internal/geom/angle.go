package geom

import "math"

// WrapAngle maps an angle into (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed shortest rotation from a to b in (-π, π].
// When a and b are exactly opposite the result is +π, so callers rotating
// by the sign of the difference turn counter-clockwise.
func AngleDiff(a, b float64) float64 {
	return WrapAngle(b - a)
}

// RotateToward turns current toward target by at most maxStep radians and
// returns the new heading. Exactly opposite headings resolve
// counter-clockwise.
func RotateToward(current, target, maxStep float64) float64 {
	diff := AngleDiff(current, target)
	if math.Abs(diff) <= maxStep {
		return WrapAngle(target)
	}
	if diff > 0 {
		return WrapAngle(current + maxStep)
	}
	return WrapAngle(current - maxStep)
}

// InCone reports whether dir lies within halfSpread radians of heading.
func InCone(heading float64, dir Vec2, halfSpread float64) bool {
	if dir.IsZero() {
		return true
	}
	return math.Abs(AngleDiff(heading, dir.Angle())) <= halfSpread+Epsilon
}
