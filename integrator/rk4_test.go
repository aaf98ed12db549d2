// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package integrator

import (
	"errors"
	"math"
	"testing"
)

// TestRK4MatchesExactSolutionForConstantAcceleration exercises free fall
// (x'=v, v'=-g), a quadratic whose exact solution RK4 reproduces without
// truncation error, so the comparison can use a tight tolerance.
func TestRK4MatchesExactSolutionForConstantAcceleration(t *testing.T) {
	const g = 9.8
	evaluate := func(vars, change []float64, dt float64) error {
		change[0] = vars[1]
		change[1] = -g
		return nil
	}

	vars := []float64{10, 0} // x0=10, v0=0
	rk4 := NewRK4()
	dt := 0.5
	if err := rk4.Step(vars, dt, evaluate); err != nil {
		t.Fatalf("step: %v", err)
	}

	wantX := 10 - 0.5*g*dt*dt
	wantV := -g * dt
	if math.Abs(vars[0]-wantX) > 1e-9 {
		t.Errorf("x = %g, want %g", vars[0], wantX)
	}
	if math.Abs(vars[1]-wantV) > 1e-9 {
		t.Errorf("v = %g, want %g", vars[1], wantV)
	}
}

func TestRK4PropagatesEvaluateError(t *testing.T) {
	wantErr := errors.New("boom")
	evaluate := func(vars, change []float64, dt float64) error { return wantErr }

	rk4 := NewRK4()
	if err := rk4.Step([]float64{0}, 0.1, evaluate); err != wantErr {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
