// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package scenario

import (
	"fmt"
	"math"

	"github.com/myphysicslab/myphysicslab-sub011/advance"
	"github.com/myphysicslab/myphysicslab-sub011/collision"
	"github.com/myphysicslab/myphysicslab-sub011/integrator"
	"github.com/myphysicslab/myphysicslab-sub011/joint"
	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
	"github.com/myphysicslab/myphysicslab-sub011/sim"
	"github.com/myphysicslab/myphysicslab-sub011/solver"
)

// Built is a scenario fully wired into a running simulation: the
// driver a caller advances step by step, plus a name-to-body index for
// inspecting results.
type Built struct {
	Advance *advance.CollisionAdvance
	Bodies  map[string]*rigidbody.Polygon
}

// Build constructs an ImpulseSim, its bodies and joints, and a
// CollisionAdvance driver from sp.
func Build(sp *Spec) (*Built, error) {
	mode, err := sp.collisionMode()
	if err != nil {
		return nil, err
	}

	cfg := sim.NewConfig(
		sim.DistTol(nonZero(sp.DistTol, 0.01)),
		sim.VelocityTol(nonZero(sp.VelocityTol, 0.5)),
		sim.Accuracy(nonZero(sp.Accuracy, 0.1)),
		sim.CollisionHandling(mode),
	)
	s := sim.NewImpulseSim(cfg)
	s.Gravity = sp.Gravity
	s.Damping = sp.Damping

	bodies := make(map[string]*rigidbody.Polygon, len(sp.Bodies))
	for _, bs := range sp.Bodies {
		b, err := buildBody(bs)
		if err != nil {
			return nil, fmt.Errorf("scenario: body %q: %w", bs.Name, err)
		}
		bodies[bs.Name] = b
		s.AddBody(b)
	}

	for i, js := range sp.Joints {
		b1, ok := bodies[js.Body1]
		if !ok {
			return nil, fmt.Errorf("scenario: joint %d: unknown body1 %q", i, js.Body1)
		}
		b2 := bodies[js.Body2]
		if b2 == nil {
			b2 = newFixedAnchor(js.Body1 + "-anchor")
		}
		j := joint.NewJoint(b1, math2d.New(js.Attach1X, js.Attach1Y), b2, math2d.New(js.Attach2X, js.Attach2Y), math2d.New(js.NormalX, js.NormalY))
		s.AddConnector(j)
	}

	detector := collision.NewDetector(cfg.DistTol)
	sol := solver.NewImpulseSolver(mode)
	adv := advance.NewCollisionAdvance(s, detector, sol, integrator.NewRK4())

	return &Built{Advance: adv, Bodies: bodies}, nil
}

// buildBody constructs a Polygon from bs: a square or disc, posed and
// set in motion as described, fixed (infinite mass) when bs.Fixed.
func buildBody(bs BodySpec) (*rigidbody.Polygon, error) {
	var b *rigidbody.Polygon
	var err error
	switch bs.Shape {
	case "square":
		b = newSquare(bs.Name, bs.Size, bs.Mass)
	case "disc":
		b, err = newDisc(bs.Name, bs.Size, bs.Mass)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown shape %q", bs.Shape)
	}

	b.SetPose(rigidbody.Pose{Position: math2d.New(bs.X, bs.Y), Angle: bs.Angle})
	b.SetLinearVelocity(math2d.New(bs.Vx, bs.Vy))
	b.SetAngularVelocity(bs.Omega)
	if bs.Elasticity != 0 {
		b.SetElasticity(bs.Elasticity)
	}
	if bs.Fixed {
		b.SetMass(math.Inf(1), math.Inf(1))
	}
	return b, nil
}

// newFixedAnchor returns an infinite-mass block used as a joint's world
// anchor when a JointSpec leaves Body2 empty.
func newFixedAnchor(name string) *rigidbody.Polygon {
	b := newSquare(name, 0.5, 1)
	b.SetMass(math.Inf(1), math.Inf(1))
	return b
}

// nonZero returns v unless it is zero, in which case it returns def;
// used so a YAML document that omits a tolerance field keeps the
// documented default instead of silently becoming 0.
func nonZero(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
