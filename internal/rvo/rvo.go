// Package rvo computes collision-free velocities with optimal reciprocal
// collision avoidance (ORCA). Each neighbor contributes one half-plane in
// velocity space; the new velocity is the solution of a small bounded linear
// program over those half-planes.
package rvo

import (
	"math"

	"github.com/l1jgo/arena/internal/geom"
)

const epsilon = 1e-5

// Line is a directed line in velocity space. The feasible half-plane lies to
// the left of Direction.
type Line struct {
	Point     geom.Vec2
	Direction geom.Vec2
}

// Agent is the entity whose velocity is being solved.
type Agent struct {
	Position  geom.Vec2
	Velocity  geom.Vec2
	Preferred geom.Vec2
	Radius    float64
	MaxSpeed  float64
}

// Neighbor is one obstacle agent. Reciprocal neighbors run the same solver
// and share half of the avoidance effort; the rest are treated as not
// reacting, so the agent takes all of it.
type Neighbor struct {
	Position   geom.Vec2
	Velocity   geom.Vec2
	Radius     float64
	Reciprocal bool
}

// Params controls the solver.
type Params struct {
	TimeHorizon  float64 // seconds of lookahead for agent-agent collisions
	TimeStep     float64 // tick length, used when agents already overlap
	DirectionOpt bool    // optimise direction toward Preferred instead of distance
}

// Result carries the solved velocity and the constraint lines it was solved
// against.
type Result struct {
	Velocity geom.Vec2
	Lines    []Line
	// Feasible is false when pass one could not satisfy every line and the
	// minimal-violation fallback produced Velocity.
	Feasible bool
}

// ComputeVelocity solves one agent against its neighbors. neighbors must be
// in a reproducible order; lines are built in that order.
func ComputeVelocity(agent Agent, neighbors []Neighbor, p Params, lines []Line) Result {
	lines = lines[:0]
	for _, n := range neighbors {
		lines = append(lines, orcaLine(agent, n, p))
	}
	opt, dirOpt := agent.Preferred, p.DirectionOpt
	if dirOpt {
		// The direction program expects a unit vector. A zero preference has
		// no direction, so it falls back to the distance program toward rest.
		if l := opt.Len(); l > epsilon {
			opt = opt.Scale(1 / l)
		} else {
			opt, dirOpt = geom.Vec2{}, false
		}
	}
	var v geom.Vec2
	fail := linearProgram2(lines, agent.MaxSpeed, opt, dirOpt, &v)
	res := Result{Lines: lines, Feasible: fail == len(lines)}
	switch {
	case !res.Feasible:
		linearProgram3(lines, 0, fail, agent.MaxSpeed, &v)
	case dirOpt:
		// The direction program lands on the speed disk. Keep the preferred
		// speed itself whenever no line forbids it.
		if pref := agent.Preferred.ClampLen(agent.MaxSpeed); MaxViolation(lines, pref) == 0 {
			v = pref
		}
	}
	res.Velocity = v
	return res
}

// orcaLine builds the half-plane of permitted velocities for agent against n.
func orcaLine(agent Agent, n Neighbor, p Params) Line {
	invTimeHorizon := 1 / p.TimeHorizon
	relPos := n.Position.Sub(agent.Position)
	relVel := agent.Velocity.Sub(n.Velocity)
	distSq := relPos.LenSq()
	combinedRadius := agent.Radius + n.Radius
	combinedRadiusSq := combinedRadius * combinedRadius

	var line Line
	var u geom.Vec2

	if distSq > combinedRadiusSq {
		// No collision yet. Vector from cutoff centre to relative velocity.
		w := relVel.Sub(relPos.Scale(invTimeHorizon))
		wLengthSq := w.LenSq()
		dot1 := w.Dot(relPos)

		if dot1 < 0 && dot1*dot1 > combinedRadiusSq*wLengthSq {
			// Project on cut-off circle.
			wLength := math.Sqrt(wLengthSq)
			unitW := w.Scale(1 / wLength)
			line.Direction = geom.Vec2{X: unitW.Y, Y: -unitW.X}
			u = unitW.Scale(combinedRadius*invTimeHorizon - wLength)
		} else {
			// Project on legs.
			leg := math.Sqrt(distSq - combinedRadiusSq)
			if geom.Det(relPos, w) > 0 {
				line.Direction = geom.Vec2{
					X: relPos.X*leg - relPos.Y*combinedRadius,
					Y: relPos.X*combinedRadius + relPos.Y*leg,
				}.Scale(1 / distSq)
			} else {
				line.Direction = geom.Vec2{
					X: relPos.X*leg + relPos.Y*combinedRadius,
					Y: -relPos.X*combinedRadius + relPos.Y*leg,
				}.Scale(-1 / distSq)
			}
			dot2 := relVel.Dot(line.Direction)
			u = line.Direction.Scale(dot2).Sub(relVel)
		}
	} else {
		// Already overlapping: resolve within one time step.
		invTimeStep := 1 / p.TimeStep
		w := relVel.Sub(relPos.Scale(invTimeStep))
		wLength := w.Len()
		var unitW geom.Vec2
		if wLength > epsilon {
			unitW = w.Scale(1 / wLength)
		} else if distSq > epsilon*epsilon {
			unitW = relPos.Normalize().Neg()
		} else {
			unitW = geom.Vec2{X: 1}
		}
		line.Direction = geom.Vec2{X: unitW.Y, Y: -unitW.X}
		u = unitW.Scale(combinedRadius*invTimeStep - wLength)
	}

	share := 0.5
	if !n.Reciprocal {
		share = 1
	}
	line.Point = agent.Velocity.Add(u.Scale(share))
	return line
}

// linearProgram1 solves the 1D problem on lines[lineNo] restricted by all
// earlier lines and the speed circle. Returns false if infeasible.
func linearProgram1(lines []Line, lineNo int, radius float64, optVelocity geom.Vec2, directionOpt bool, result *geom.Vec2) bool {
	ln := lines[lineNo]
	dot := ln.Point.Dot(ln.Direction)
	discriminant := dot*dot + radius*radius - ln.Point.LenSq()
	if discriminant < 0 {
		// Max speed circle fully invalidates line lineNo.
		return false
	}
	sqrtDisc := math.Sqrt(discriminant)
	tLeft := -dot - sqrtDisc
	tRight := -dot + sqrtDisc

	for i := 0; i < lineNo; i++ {
		denominator := geom.Det(ln.Direction, lines[i].Direction)
		numerator := geom.Det(lines[i].Direction, ln.Point.Sub(lines[i].Point))

		if math.Abs(denominator) <= epsilon {
			// Lines are (almost) parallel.
			if numerator < 0 {
				return false
			}
			continue
		}
		t := numerator / denominator
		if denominator >= 0 {
			tRight = math.Min(tRight, t)
		} else {
			tLeft = math.Max(tLeft, t)
		}
		if tLeft > tRight {
			return false
		}
	}

	switch {
	case directionOpt:
		if optVelocity.Dot(ln.Direction) > 0 {
			*result = ln.Point.Add(ln.Direction.Scale(tRight))
		} else {
			*result = ln.Point.Add(ln.Direction.Scale(tLeft))
		}
	default:
		t := ln.Direction.Dot(optVelocity.Sub(ln.Point))
		switch {
		case t < tLeft:
			*result = ln.Point.Add(ln.Direction.Scale(tLeft))
		case t > tRight:
			*result = ln.Point.Add(ln.Direction.Scale(tRight))
		default:
			*result = ln.Point.Add(ln.Direction.Scale(t))
		}
	}
	return true
}

// linearProgram2 is pass one: it walks the lines in order and re-optimises on
// each violated line. Returns the index of the first line it could not
// satisfy, or len(lines) on success.
func linearProgram2(lines []Line, radius float64, optVelocity geom.Vec2, directionOpt bool, result *geom.Vec2) int {
	switch {
	case directionOpt:
		// optVelocity must be a unit direction here.
		*result = optVelocity.Scale(radius)
	case optVelocity.LenSq() > radius*radius:
		*result = optVelocity.Normalize().Scale(radius)
	default:
		*result = optVelocity
	}

	for i := range lines {
		if geom.Det(lines[i].Direction, lines[i].Point.Sub(*result)) > 0 {
			// Result does not satisfy constraint i.
			temp := *result
			if !linearProgram1(lines, i, radius, optVelocity, directionOpt, result) {
				*result = temp
				return i
			}
		}
	}
	return len(lines)
}

// linearProgram3 is pass two: starting at the first failed line it minimises
// the maximum violation distance by solving, for each still-violated line, a
// direction-optimised 2D program over the earlier lines projected onto it.
func linearProgram3(lines []Line, numObstLines, beginLine int, radius float64, result *geom.Vec2) {
	distance := 0.0
	var projLines []Line
	for i := beginLine; i < len(lines); i++ {
		if geom.Det(lines[i].Direction, lines[i].Point.Sub(*result)) <= distance {
			continue
		}
		projLines = append(projLines[:0], lines[:numObstLines]...)
		for j := numObstLines; j < i; j++ {
			var line Line
			determinant := geom.Det(lines[i].Direction, lines[j].Direction)
			if math.Abs(determinant) <= epsilon {
				if lines[i].Direction.Dot(lines[j].Direction) > 0 {
					// Same direction.
					continue
				}
				// Opposite direction.
				line.Point = lines[i].Point.Add(lines[j].Point).Scale(0.5)
			} else {
				line.Point = lines[i].Point.Add(lines[i].Direction.Scale(
					geom.Det(lines[j].Direction, lines[i].Point.Sub(lines[j].Point)) / determinant))
			}
			line.Direction = lines[j].Direction.Sub(lines[i].Direction).Normalize()
			projLines = append(projLines, line)
		}

		temp := *result
		opt := geom.Vec2{X: -lines[i].Direction.Y, Y: lines[i].Direction.X}
		if linearProgram2(projLines, radius, opt, true, result) < len(projLines) {
			// Should in principle not happen: the result is by definition
			// already in the feasible region of this program.
			*result = temp
		}
		distance = geom.Det(lines[i].Direction, lines[i].Point.Sub(*result))
	}
}

// Violation returns how far v lies on the forbidden side of line (0 when it
// satisfies the constraint).
func Violation(line Line, v geom.Vec2) float64 {
	d := geom.Det(line.Direction, line.Point.Sub(v))
	if d < 0 {
		return 0
	}
	return d
}

// MaxViolation returns the largest Violation of v over lines.
func MaxViolation(lines []Line, v geom.Vec2) float64 {
	worst := 0.0
	for _, l := range lines {
		if d := Violation(l, v); d > worst {
			worst = d
		}
	}
	return worst
}
