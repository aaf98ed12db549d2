// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package sim

// config.go replaces the source's runtime Parameter registry (§9) with
// an explicit configuration struct set via functional options, the same
// pattern the rest of this module's lineage uses for its own top-level
// engine configuration (vu.Attr / vu.Config).

import "github.com/myphysicslab/myphysicslab-sub011/solver"

// Config holds the tunable values §9 enumerates as the dynamic-
// property-system replacement: dist_tol, velocity_tol, accuracy,
// collision_handling, extra_accel, show_forces, show_collisions.
type Config struct {
	DistTol     float64
	VelocityTol float64
	Accuracy    float64

	CollisionHandling solver.Mode

	// ExtraAccel is an additional constant y acceleration applied in
	// Evaluate alongside Gravity (e.g. to counteract it for "anti-
	// gravity" numerical stabilization some scenarios enable); zero
	// disables it.
	ExtraAccel float64

	// ShowForces/ShowCollisions are display hints with no effect on the
	// core's own computation; they exist purely so a display
	// collaborator (outside this module) can ask the simulation whether
	// to annotate its output, exactly as source Parameters did.
	ShowForces     bool
	ShowCollisions bool
}

// defaultConfig matches §6's numerical constants.
var defaultConfig = Config{
	DistTol:           0.01,
	VelocityTol:       0.5,
	Accuracy:          0.1,
	CollisionHandling: solver.SIMULTANEOUS,
}

// Option configures a Config; see NewConfig.
type Option func(*Config)

// NewConfig returns a Config seeded with the documented defaults and
// then each opt applied in order.
func NewConfig(opts ...Option) Config {
	c := defaultConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// DistTol sets the distance tolerance.
func DistTol(d float64) Option { return func(c *Config) { c.DistTol = d } }

// VelocityTol sets the velocity tolerance.
func VelocityTol(v float64) Option { return func(c *Config) { c.VelocityTol = v } }

// Accuracy sets the accuracy fraction, in (0, 1].
func Accuracy(a float64) Option { return func(c *Config) { c.Accuracy = a } }

// CollisionHandling sets the solver mode.
func CollisionHandling(m solver.Mode) Option { return func(c *Config) { c.CollisionHandling = m } }

// ExtraAccel sets an additional constant y acceleration.
func ExtraAccel(a float64) Option { return func(c *Config) { c.ExtraAccel = a } }

// ShowForces enables the display hint.
func ShowForces() Option { return func(c *Config) { c.ShowForces = true } }

// ShowCollisions enables the display hint.
func ShowCollisions() Option { return func(c *Config) { c.ShowCollisions = true } }
