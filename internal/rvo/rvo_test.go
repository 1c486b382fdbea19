package rvo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/arena/internal/geom"
)

var params = Params{TimeHorizon: 2, TimeStep: 0.1}

func TestNoNeighborsKeepsPreferred(t *testing.T) {
	a := Agent{Preferred: geom.V(1, 0), Radius: 0.5, MaxSpeed: 2}
	res := ComputeVelocity(a, nil, params, nil)
	assert.True(t, res.Feasible)
	assert.Equal(t, geom.V(1, 0), res.Velocity)

	a.Preferred = geom.V(5, 0)
	res = ComputeVelocity(a, nil, params, nil)
	assert.InDelta(t, 2, res.Velocity.Len(), 1e-12, "clamped to max speed")
}

func TestHeadOnSatisfiesEveryLine(t *testing.T) {
	a := Agent{
		Position: geom.V(0, 0), Velocity: geom.V(1, 0), Preferred: geom.V(1, 0),
		Radius: 0.5, MaxSpeed: 2,
	}
	n := []Neighbor{{Position: geom.V(3, 0), Velocity: geom.V(-1, 0), Radius: 0.5, Reciprocal: true}}
	res := ComputeVelocity(a, n, params, nil)

	require.True(t, res.Feasible)
	require.Len(t, res.Lines, 1)
	assert.LessOrEqual(t, MaxViolation(res.Lines, res.Velocity), 1e-9)
	assert.NotEqual(t, 0.0, res.Velocity.Y, "sidesteps instead of ploughing on")
	assert.LessOrEqual(t, res.Velocity.Len(), a.MaxSpeed+1e-9)
}

func TestFarNeighborDoesNotDisturb(t *testing.T) {
	a := Agent{Velocity: geom.V(1, 0), Preferred: geom.V(1, 0), Radius: 0.5, MaxSpeed: 2}
	n := []Neighbor{{Position: geom.V(0, 20), Radius: 0.5}}
	res := ComputeVelocity(a, n, params, nil)
	assert.True(t, res.Feasible)
	assert.InDelta(t, 1, res.Velocity.X, 1e-9)
	assert.InDelta(t, 0, res.Velocity.Y, 1e-9)
}

func TestInfeasibleFallsBackToMinimalViolation(t *testing.T) {
	// Boxed in by four overlapping, non-reacting neighbors.
	a := Agent{Preferred: geom.V(1, 0), Radius: 0.5, MaxSpeed: 1}
	n := []Neighbor{
		{Position: geom.V(0.5, 0), Radius: 0.5},
		{Position: geom.V(-0.5, 0), Radius: 0.5},
		{Position: geom.V(0, 0.5), Radius: 0.5},
		{Position: geom.V(0, -0.5), Radius: 0.5},
	}
	res := ComputeVelocity(a, n, params, nil)
	require.False(t, res.Feasible)

	var passOne geom.Vec2
	fail := linearProgram2(res.Lines, a.MaxSpeed, a.Preferred, false, &passOne)
	require.Less(t, fail, len(res.Lines))

	assert.Less(t, MaxViolation(res.Lines, res.Velocity), MaxViolation(res.Lines, passOne))
	assert.LessOrEqual(t, res.Velocity.Len(), a.MaxSpeed+1e-9)
}

func TestNonReciprocalTakesFullResponsibility(t *testing.T) {
	a := Agent{Velocity: geom.V(1, 0), Preferred: geom.V(1, 0), Radius: 0.5, MaxSpeed: 2}
	half := orcaLine(a, Neighbor{Position: geom.V(3, 0), Radius: 0.5, Reciprocal: true}, params)
	full := orcaLine(a, Neighbor{Position: geom.V(3, 0), Radius: 0.5}, params)
	// The full-responsibility line is pushed twice as far from the current
	// velocity.
	dHalf := half.Point.Sub(a.Velocity)
	dFull := full.Point.Sub(a.Velocity)
	assert.InDelta(t, 2*dHalf.X, dFull.X, 1e-9)
	assert.InDelta(t, 2*dHalf.Y, dFull.Y, 1e-9)
}

func TestDeterministic(t *testing.T) {
	a := Agent{Velocity: geom.V(1, 0.2), Preferred: geom.V(1, 0), Radius: 0.4, MaxSpeed: 1.5}
	n := []Neighbor{
		{Position: geom.V(1.5, 0.3), Velocity: geom.V(-1, 0), Radius: 0.4, Reciprocal: true},
		{Position: geom.V(1.2, -0.7), Velocity: geom.V(0, 0.5), Radius: 0.4, Reciprocal: true},
	}
	first := ComputeVelocity(a, n, params, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first.Velocity, ComputeVelocity(a, n, params, nil).Velocity)
	}
}

var directionParams = Params{TimeHorizon: 2, TimeStep: 0.1, DirectionOpt: true}

func assertAlong(t *testing.T, want, got geom.Vec2) {
	t.Helper()
	assert.InDelta(t, 0, geom.Det(want, got), 1e-9, "parallel")
	assert.Positive(t, want.Dot(got), "same direction")
}

func TestDirectionModeClampsFastPreference(t *testing.T) {
	a := Agent{Preferred: geom.V(3, 4), Radius: 0.5, MaxSpeed: 2}
	res := ComputeVelocity(a, nil, directionParams, nil)
	require.True(t, res.Feasible)
	assert.InDelta(t, 2, res.Velocity.Len(), 1e-9)
	assertAlong(t, a.Preferred, res.Velocity)
}

func TestDirectionModeKeepsSlowPreference(t *testing.T) {
	a := Agent{Preferred: geom.V(0.3, -0.4), Radius: 0.5, MaxSpeed: 4}
	res := ComputeVelocity(a, nil, directionParams, nil)
	require.True(t, res.Feasible)
	assert.LessOrEqual(t, res.Velocity.Len(), a.MaxSpeed)
	assert.InDelta(t, 0.5, res.Velocity.Len(), 1e-9)
	assertAlong(t, a.Preferred, res.Velocity)
}

func TestDirectionModeZeroPreferenceRests(t *testing.T) {
	a := Agent{Radius: 0.5, MaxSpeed: 4}
	res := ComputeVelocity(a, nil, directionParams, nil)
	assert.True(t, res.Feasible)
	assert.Equal(t, geom.Vec2{}, res.Velocity)
}

func TestDirectionModeRespectsHalfPlanes(t *testing.T) {
	a := Agent{
		Position: geom.V(0, 0), Velocity: geom.V(1, 0), Preferred: geom.V(1, 0),
		Radius: 0.5, MaxSpeed: 2,
	}
	n := []Neighbor{{Position: geom.V(3, 0), Velocity: geom.V(-1, 0), Radius: 0.5, Reciprocal: true}}
	res := ComputeVelocity(a, n, directionParams, nil)
	require.True(t, res.Feasible)
	require.Len(t, res.Lines, 1)
	assert.LessOrEqual(t, MaxViolation(res.Lines, res.Velocity), 1e-9)
	assert.LessOrEqual(t, res.Velocity.Len(), a.MaxSpeed+1e-9)
	assert.Positive(t, res.Velocity.Dot(a.Preferred))
}

func TestDirectionProgramEndsOnSpeedCircle(t *testing.T) {
	// Only velocities with X <= 1 are permitted.
	lines := []Line{{Point: geom.V(1, 0), Direction: geom.V(0, 1)}}
	var v geom.Vec2
	fail := linearProgram2(lines, 4, geom.V(4, 1).Normalize(), true, &v)
	require.Equal(t, len(lines), fail)
	assert.InDelta(t, 1, v.X, 1e-9)
	assert.InDelta(t, math.Sqrt(15), v.Y, 1e-9)
	assert.InDelta(t, 4, v.Len(), 1e-9)
}
