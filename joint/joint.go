// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package joint implements bilateral and unilateral connectors between
// rigid bodies: Joint (fixed-normal distance constraint), PathJoint
// (attachment to a parameterized external path), and PathEndPoint
// (unilateral crossing detection on a path parameter), per §4.7.
package joint

import (
	"math"
	"time"

	"github.com/myphysicslab/myphysicslab-sub011/collision"
	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

// Joint is a bilateral constraint between two attachment points: the
// normal direction is fixed in NormalBody's frame and rotates with it,
// so distance = normal . (p1_world - p2_world) measures the offset of
// PrimaryBody's attachment from NormalBody's along that one direction.
// Two orthogonal Joints pin two points together; a single Joint
// constrains motion along one axis only (a slider).
type Joint struct {
	PrimaryBody *rigidbody.Polygon
	NormalBody  *rigidbody.Polygon

	// PrimaryAttach/NormalAttach are the attachment points, in body
	// coordinates of their respective bodies.
	PrimaryAttach math2d.Vector
	NormalAttach  math2d.Vector

	// NormalDir is the constraint direction, in NormalBody's body
	// coordinates; it need not be a unit vector on input (NewJoint
	// normalizes it).
	NormalDir math2d.Vector
}

// NewJoint returns a Joint connecting the two attachment points along
// normalDir (NormalBody-local coordinates).
func NewJoint(primary *rigidbody.Polygon, primaryAttach math2d.Vector, normal *rigidbody.Polygon, normalAttach, normalDir math2d.Vector) *Joint {
	return &Joint{
		PrimaryBody:   primary,
		NormalBody:    normal,
		PrimaryAttach: primaryAttach,
		NormalAttach:  normalAttach,
		NormalDir:     normalDir.Normalize(),
	}
}

// NewRecord returns a fresh KindConnector Record wired to this joint,
// with IsJoint set and radii at +Inf (a joint has no curvature).
func (j *Joint) NewRecord() *collision.Record {
	return &collision.Record{
		Kind:        collision.KindConnector,
		PrimaryBody: j.PrimaryBody,
		NormalBody:  j.NormalBody,
		IsJoint:     true,
		Radius1:     math.Inf(1),
		Radius2:     math.Inf(1),
		Connector:   j,
	}
}

// UpdateConnector recomputes distance, normal, and the two attachment
// points, then the normal velocity including the ṅ . (p1 - p2) term
// from NormalBody's rotation, per §4.7's "distance = n . (p1 - p2)".
func (j *Joint) UpdateConnector(r *collision.Record, t time.Time) error {
	p1 := j.PrimaryBody.BodyToWorld(j.PrimaryAttach)
	p2 := j.NormalBody.BodyToWorld(j.NormalAttach)
	n := j.NormalBody.RotateBodyToWorld(j.NormalDir)

	r.Impact1 = p1
	r.Impact2 = p2
	r.Normal = n
	r.Distance = n.Dot(p1.Sub(p2))
	r.BallObject = false
	r.BallNormal = false
	r.Radius1 = math.Inf(1)
	r.Radius2 = math.Inf(1)

	if !j.PrimaryBody.IsFixed() {
		r.R1 = p1.Sub(j.PrimaryBody.Position())
	}
	if !j.NormalBody.IsFixed() {
		r.R2 = p2.Sub(j.NormalBody.Position())
	}

	v1 := j.PrimaryBody.GetVelocity(p1)
	v2 := j.NormalBody.GetVelocity(p2)
	// ṅ = omega2 x n, since n is fixed in NormalBody's frame.
	nDot := math2d.CrossScalar(j.NormalBody.AngularVelocity(), n)
	r.NormalVelocity = n.Dot(v1.Sub(v2)) + nDot.Dot(p1.Sub(p2))
	return nil
}
