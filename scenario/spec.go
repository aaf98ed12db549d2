// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package scenario loads and builds the "illustrative constructors" §1
// permits outside the core (square-on-floor, two-discs, block-stack,
// pendulum) from a YAML document or directly as Go values, the
// asset-loading layer for this engine's physics setup.
package scenario

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/myphysicslab/myphysicslab-sub011/solver"
)

// Spec is the YAML-decodable description of one demonstration scenario:
// a set of bodies, a set of joints connecting them, and the simulation
// tunables to run them with.
type Spec struct {
	Name              string      `yaml:"name"`
	Gravity           float64     `yaml:"gravity"`
	Damping           float64     `yaml:"damping"`
	CollisionHandling string      `yaml:"collision_handling"`
	DistTol           float64     `yaml:"dist_tol"`
	VelocityTol       float64     `yaml:"velocity_tol"`
	Accuracy          float64     `yaml:"accuracy"`
	Bodies            []BodySpec  `yaml:"bodies"`
	Joints            []JointSpec `yaml:"joints"`
}

// BodySpec describes one rigid body: its shape, mass, and initial pose
// and velocity.
type BodySpec struct {
	Name       string  `yaml:"name"`
	Shape      string  `yaml:"shape"` // "square" or "disc"
	Size       float64 `yaml:"size"`  // half-width (square) or radius (disc)
	Mass       float64 `yaml:"mass"`  // ignored (treated as +Inf) when Fixed
	Fixed      bool    `yaml:"fixed"`
	Elasticity float64 `yaml:"elasticity"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Angle      float64 `yaml:"angle"`
	Vx         float64 `yaml:"vx"`
	Vy         float64 `yaml:"vy"`
	Omega      float64 `yaml:"omega"`
}

// JointSpec describes a bilateral Joint connecting two named bodies (or
// one named body to a fixed world anchor when Body2 is left empty).
type JointSpec struct {
	Body1    string  `yaml:"body1"`
	Body2    string  `yaml:"body2"`
	Attach1X float64 `yaml:"attach1x"`
	Attach1Y float64 `yaml:"attach1y"`
	Attach2X float64 `yaml:"attach2x"`
	Attach2Y float64 `yaml:"attach2y"`
	NormalX  float64 `yaml:"normalx"`
	NormalY  float64 `yaml:"normaly"`
}

// Load decodes a Spec from r.
func Load(r io.Reader) (*Spec, error) {
	var sp Spec
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&sp); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	return &sp, nil
}

// collisionMode maps the scenario's string identifier onto solver.Mode,
// defaulting to SIMULTANEOUS when unset.
func (sp *Spec) collisionMode() (solver.Mode, error) {
	switch sp.CollisionHandling {
	case "", "SIMULTANEOUS":
		return solver.SIMULTANEOUS, nil
	case "HYBRID":
		return solver.HYBRID, nil
	case "SERIAL_GROUPED":
		return solver.SERIAL_GROUPED, nil
	case "SERIAL_GROUPED_LASTPASS":
		return solver.SERIAL_GROUPED_LASTPASS, nil
	case "SERIAL_SEPARATE":
		return solver.SERIAL_SEPARATE, nil
	case "SERIAL_SEPARATE_LASTPASS":
		return solver.SERIAL_SEPARATE_LASTPASS, nil
	default:
		return 0, fmt.Errorf("scenario: unknown collision_handling %q", sp.CollisionHandling)
	}
}
