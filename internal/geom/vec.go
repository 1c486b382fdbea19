// Package geom holds the float64 2D vector math shared by the grids, the
// navmesh, the avoidance solver and the movement systems.
package geom

import "math"

// Epsilon is the tolerance used for degenerate-length and parallel tests.
const Epsilon = 1e-6

// Vec2 is a 2D point or direction.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2             { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2             { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2        { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Neg() Vec2                   { return Vec2{-a.X, -a.Y} }
func (a Vec2) Dot(b Vec2) float64          { return a.X*b.X + a.Y*b.Y }
func (a Vec2) LenSq() float64              { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Len() float64                { return math.Sqrt(a.LenSq()) }
func (a Vec2) DistSq(b Vec2) float64       { return a.Sub(b).LenSq() }
func (a Vec2) Dist(b Vec2) float64         { return a.Sub(b).Len() }
func (a Vec2) IsZero() bool                { return a.X == 0 && a.Y == 0 }
func (a Vec2) Lerp(b Vec2, t float64) Vec2 { return a.Add(b.Sub(a).Scale(t)) }

// Det returns the 2D cross product a.X*b.Y - a.Y*b.X. Positive when b lies
// counter-clockwise of a.
func Det(a, b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Cross returns Det(b-a, c-a): positive when c is left of the ray a→b.
func Cross(a, b, c Vec2) float64 { return Det(b.Sub(a), c.Sub(a)) }

// Normalize returns the unit vector, zero-safe.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l <= Epsilon {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// ClampLen limits the vector to maxLen while preserving direction.
func (a Vec2) ClampLen(maxLen float64) Vec2 {
	l := a.Len()
	if l <= maxLen || l == 0 {
		return a
	}
	return a.Scale(maxLen / l)
}

// Perp returns the vector rotated 90° counter-clockwise.
func (a Vec2) Perp() Vec2 { return Vec2{-a.Y, a.X} }

// Angle returns atan2(Y, X).
func (a Vec2) Angle() float64 { return math.Atan2(a.Y, a.X) }

// FromAngle returns the unit vector at angle radians.
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// Rotate rotates the vector by angle radians counter-clockwise.
func (a Vec2) Rotate(angle float64) Vec2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec2{a.X*c - a.Y*s, a.X*s + a.Y*c}
}

// Near reports whether a and b are within eps of each other.
func Near(a, b Vec2, eps float64) bool {
	return a.DistSq(b) <= eps*eps
}
