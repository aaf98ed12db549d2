// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package scenario

import (
	"math"

	"github.com/myphysicslab/myphysicslab-sub011/joint"
	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
	"github.com/myphysicslab/myphysicslab-sub011/solver"
)

// library.go is the programmatic counterpart to Load: the six end-to-
// end configurations called out as testable properties, built directly
// as Go values rather than round-tripped through YAML, the same way a
// demo program picks a built-in scene by name.

// SquareOnFloor drops a unit square from rest onto a fixed floor, the
// simplest elastic-bounce configuration.
func SquareOnFloor() *Spec {
	return &Spec{
		Name:              "square-on-floor",
		Gravity:           10,
		CollisionHandling: "SIMULTANEOUS",
		DistTol:           0.01,
		VelocityTol:       0.5,
		Accuracy:          0.1,
		Bodies: []BodySpec{
			{Name: "floor", Shape: "square", Size: 50, Fixed: true, Elasticity: 1, Y: -50},
			{Name: "block", Shape: "square", Size: 0.5, Mass: 1, Elasticity: 1, Y: 2},
		},
	}
}

// TwoDiscsHeadOn sends two equal-mass discs toward each other along the
// x axis for a perfectly elastic head-on collision, which exchanges
// their velocities exactly.
func TwoDiscsHeadOn() *Spec {
	return &Spec{
		Name:              "two-discs-head-on",
		CollisionHandling: "SIMULTANEOUS",
		DistTol:           0.01,
		VelocityTol:       0.5,
		Accuracy:          0.1,
		Bodies: []BodySpec{
			{Name: "left", Shape: "disc", Size: 0.5, Mass: 1, Elasticity: 1, X: -2, Vx: 1},
			{Name: "right", Shape: "disc", Size: 0.5, Mass: 1, Elasticity: 1, X: 2, Vx: -1},
		},
	}
}

// BlockStackOnWall stacks three blocks at rest on a fixed floor, a
// resting-contact configuration that exercises the simultaneous
// solver's handling of many concurrent contacts.
func BlockStackOnWall() *Spec {
	return &Spec{
		Name:              "block-stack-on-wall",
		Gravity:           10,
		CollisionHandling: "SIMULTANEOUS",
		DistTol:           0.01,
		VelocityTol:       0.5,
		Accuracy:          0.1,
		Bodies: []BodySpec{
			{Name: "floor", Shape: "square", Size: 50, Fixed: true, Y: -50},
			{Name: "block1", Shape: "square", Size: 0.5, Mass: 1, Y: 0.5},
			{Name: "block2", Shape: "square", Size: 0.5, Mass: 1, Y: 1.5},
			{Name: "block3", Shape: "square", Size: 0.5, Mass: 1, Y: 2.5},
		},
	}
}

// Pendulum returns the pendulum scenario's Spec (no joint: the
// PathJoint is wired directly in BuildPendulum since JointSpec has no
// path representation).
func Pendulum() *Spec {
	return &Spec{
		Name:        "pendulum",
		Gravity:     10,
		DistTol:     0.01,
		VelocityTol: 0.5,
		Accuracy:    0.1,
		Bodies: []BodySpec{
			{Name: "bob", Shape: "disc", Size: 0.2, Mass: 1, X: 2},
		},
	}
}

// BuildPendulum builds the pendulum scenario: a bob on a PathJoint
// tracking a circle of the given radius centered at the origin,
// released from horizontal (§8 scenario 4).
func BuildPendulum(radius float64) (*Built, error) {
	sp := Pendulum()
	sp.Bodies[0].X = radius
	built, err := Build(sp)
	if err != nil {
		return nil, err
	}
	bob := built.Bodies["bob"]
	path := joint.CirclePath{Center: math2d.Origin, Radius: radius}
	pj := joint.NewPathJoint(bob, math2d.Origin, path, 0)
	built.Advance.Sim.AddConnector(pj)
	return built, nil
}

// CornerCornerSlide sets up two acute (30-degree) triangular wedges
// sliding past each other corner to corner, exercising the straight-edge
// corner-corner contact branch at a shallow angle.
func CornerCornerSlide() *Spec {
	return &Spec{
		Name:              "corner-corner-slide",
		CollisionHandling: "SIMULTANEOUS",
		DistTol:           0.01,
		VelocityTol:       0.5,
		Accuracy:          0.1,
	}
}

// BuildCornerCornerSlide builds two 30-degree acute wedges on a
// collision course, since a general triangle shape has no BodySpec
// representation.
func BuildCornerCornerSlide() (*Built, error) {
	sp := CornerCornerSlide()
	built, err := Build(sp)
	if err != nil {
		return nil, err
	}
	a := newWedge("wedge-a", math.Pi/12)
	a.SetPose(rigidbody.Pose{Position: math2d.New(-3, 0)})
	a.SetLinearVelocity(math2d.New(1, 0))
	a.SetElasticity(1)

	b := newWedge("wedge-b", math.Pi/12)
	b.SetPose(rigidbody.Pose{Position: math2d.New(3, 0.05), Angle: math.Pi})
	b.SetLinearVelocity(math2d.New(-1, 0))
	b.SetElasticity(1)

	built.Advance.Sim.AddBody(a)
	built.Advance.Sim.AddBody(b)
	built.Bodies["wedge-a"] = a
	built.Bodies["wedge-b"] = b
	return built, nil
}

// SerialVsSimultaneousPile returns a five-body pile (one fixed floor
// plus four free blocks stacked with slight overlap) used to compare
// the serial-grouped and simultaneous solver modes against each other
// on the same initial state (§8 scenario 6).
func SerialVsSimultaneousPile(mode solver.Mode) *Spec {
	modeName := "SIMULTANEOUS"
	switch mode {
	case solver.SERIAL_GROUPED:
		modeName = "SERIAL_GROUPED"
	case solver.SERIAL_GROUPED_LASTPASS:
		modeName = "SERIAL_GROUPED_LASTPASS"
	case solver.SERIAL_SEPARATE:
		modeName = "SERIAL_SEPARATE"
	case solver.SERIAL_SEPARATE_LASTPASS:
		modeName = "SERIAL_SEPARATE_LASTPASS"
	case solver.HYBRID:
		modeName = "HYBRID"
	}
	return &Spec{
		Name:              "serial-vs-simultaneous-pile",
		Gravity:           10,
		CollisionHandling: modeName,
		DistTol:           0.01,
		VelocityTol:       0.5,
		Accuracy:          0.1,
		Bodies: []BodySpec{
			{Name: "floor", Shape: "square", Size: 50, Fixed: true, Y: -50},
			{Name: "b1", Shape: "square", Size: 0.5, Mass: 1, Y: 0.495},
			{Name: "b2", Shape: "square", Size: 0.5, Mass: 1, Y: 1.49},
			{Name: "b3", Shape: "square", Size: 0.5, Mass: 1, Y: 2.485},
			{Name: "b4", Shape: "square", Size: 0.5, Mass: 1, Y: 3.48},
		},
	}
}


// newWedge returns an isosceles triangular wedge with the given acute
// half-angle at its apex, apex at (1, 0) pointing in +x, base on the y
// axis centered on the origin.
func newWedge(name string, halfAngle float64) *rigidbody.Polygon {
	poly := rigidbody.NewPolygon(name)
	const length = 1.0
	h := length * math.Tan(halfAngle)
	apex := poly.AddVertex(math2d.New(length, 0))
	top := poly.AddVertex(math2d.New(0, h))
	bottom := poly.AddVertex(math2d.New(0, -h))
	poly.AddStraightEdge(bottom, apex, true)
	poly.AddStraightEdge(apex, top, true)
	poly.AddStraightEdge(top, bottom, true)
	poly.SetMass(1, 1.0/6.0)
	return poly
}
