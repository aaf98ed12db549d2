// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package integrator implements the ODE integrator collaborator that
// advances a simulation's vars between collision events (§4.8, §6).
package integrator

// RK4 is a fixed-step classical Runge-Kutta integrator. It satisfies
// advance.Integrator without importing that package, keeping the
// dependency direction the same as the rest of the core's collaborator
// contracts (§6): the driver depends on a narrow interface, not on a
// concrete scheme.
type RK4 struct{}

// NewRK4 returns a stateless RK4 integrator; it holds no configuration
// of its own, since step size and evaluate come from the caller.
func NewRK4() *RK4 { return &RK4{} }

// Step advances vars by dt in place, calling evaluate up to four times
// per the classical RK4 weighting (k1, k2, k3, k4 at t, t+dt/2, t+dt/2,
// t+dt). evaluate must not mutate anything but its change argument
// (§5's "the core never allocates inside evaluate" extends to state
// mutation: this is what lets the same vars be evaluated from four
// different trial offsets without corrupting the next).
func (RK4) Step(vars []float64, dt float64, evaluate func(vars, change []float64, dt float64) error) error {
	n := len(vars)
	k1 := make([]float64, n)
	k2 := make([]float64, n)
	k3 := make([]float64, n)
	k4 := make([]float64, n)
	trial := make([]float64, n)

	if err := evaluate(vars, k1, dt); err != nil {
		return err
	}

	for i := range trial {
		trial[i] = vars[i] + 0.5*dt*k1[i]
	}
	if err := evaluate(trial, k2, dt); err != nil {
		return err
	}

	for i := range trial {
		trial[i] = vars[i] + 0.5*dt*k2[i]
	}
	if err := evaluate(trial, k3, dt); err != nil {
		return err
	}

	for i := range trial {
		trial[i] = vars[i] + dt*k3[i]
	}
	if err := evaluate(trial, k4, dt); err != nil {
		return err
	}

	for i := range vars {
		vars[i] += dt / 6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
	}
	return nil
}
