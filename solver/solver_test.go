// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package solver

import (
	"math"
	"testing"
	"time"

	"github.com/myphysicslab/myphysicslab-sub011/collision"
	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

func TestSolveLinearSystemDiagonal(t *testing.T) {
	a := [][]float64{{2, 0}, {0, 4}}
	b := []float64{4, 8}
	x, err := SolveLinearSystem(a, b, ZeroTolerance)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if math.Abs(x[0]-2) > 1e-9 || math.Abs(x[1]-2) > 1e-9 {
		t.Errorf("x = %v, want [2, 2]", x)
	}
}

func TestSolveLinearSystemCoupled(t *testing.T) {
	a := [][]float64{{3, 1}, {1, 2}}
	b := []float64{9, 8}
	x, err := SolveLinearSystem(a, b, ZeroTolerance)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	// 3x+y=9, x+2y=8 => x=2, y=3
	if math.Abs(x[0]-2) > 1e-9 || math.Abs(x[1]-3) > 1e-9 {
		t.Errorf("x = %v, want [2, 3]", x)
	}
}

func newBallBody(name string, mass float64) *rigidbody.Polygon {
	poly := rigidbody.NewPolygon(name)
	start := poly.AddVertex(math2d.New(0.5, 0))
	poly.AddCircularEdge(start, start, math2d.Origin, false, true)
	inertia := 0.4 * mass * 0.25
	poly.SetMass(mass, inertia)
	return poly
}

func TestSimultaneousSolveRemovesApproachVelocity(t *testing.T) {
	a := newBallBody("a", 1)
	a.SetPose(rigidbody.Pose{Position: math2d.New(-1, 0)})
	a.SetLinearVelocity(math2d.New(1, 0))

	b := newBallBody("b", 1)
	b.SetPose(rigidbody.Pose{Position: math2d.New(1, 0)})
	b.SetLinearVelocity(math2d.New(-1, 0))

	rec := &collision.Record{
		PrimaryBody: a, NormalBody: b,
		Impact1: math2d.New(0, 0),
		// Normal points away from NormalBody (b, at x=1) towards
		// PrimaryBody (a, at x=-1).
		Normal:  math2d.New(-1, 0),
		R1:      math2d.New(1, 0),
		R2:      math2d.New(-1, 0),
		NormalVelocity: -2,
	}

	s := NewImpulseSolver(SIMULTANEOUS)
	if err := s.Solve([]*collision.Record{rec}, 0.5, time.Time{}); err != nil {
		t.Fatalf("solve: %v", err)
	}

	va := a.LinearVelocity()
	vb := b.LinearVelocity()
	if va.X >= 0 {
		t.Errorf("body a velocity.X = %g, want negative (bounced back)", va.X)
	}
	if vb.X <= 0 {
		t.Errorf("body b velocity.X = %g, want positive (bounced back)", vb.X)
	}
}

func TestModeStringIdentifiers(t *testing.T) {
	cases := map[Mode]string{
		SIMULTANEOUS:             "SIMULTANEOUS",
		HYBRID:                   "HYBRID",
		SERIAL_GROUPED:           "SERIAL_GROUPED",
		SERIAL_GROUPED_LASTPASS:  "SERIAL_GROUPED_LASTPASS",
		SERIAL_SEPARATE:          "SERIAL_SEPARATE",
		SERIAL_SEPARATE_LASTPASS: "SERIAL_SEPARATE_LASTPASS",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}
