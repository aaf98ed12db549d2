// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package rigidbody

import (
	"math"
	"testing"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
)

func newUnitSquare() *Polygon {
	poly := NewPolygon("block")
	a := poly.AddVertex(math2d.New(-1, -1))
	b := poly.AddVertex(math2d.New(1, -1))
	c := poly.AddVertex(math2d.New(1, 1))
	d := poly.AddVertex(math2d.New(-1, 1))
	poly.AddStraightEdge(a, b, true)
	poly.AddStraightEdge(b, c, true)
	poly.AddStraightEdge(c, d, true)
	poly.AddStraightEdge(d, a, true)
	poly.SetMass(4, 8.0/3.0)
	return poly
}

func TestPolygonBodyWorldRoundTrip(t *testing.T) {
	poly := newUnitSquare()
	poly.SetPose(Pose{Position: math2d.New(3, -2), Angle: math.Pi / 6})

	p := math2d.New(0.4, -0.7)
	world := poly.BodyToWorld(p)
	back := poly.WorldToBody(world)
	if !back.Aeq(p) {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func TestPolygonGetVelocityAtCM(t *testing.T) {
	poly := newUnitSquare()
	poly.SetPose(Pose{Position: math2d.New(1, 1), Angle: 0})
	poly.SetLinearVelocity(math2d.New(2, -3))
	poly.SetAngularVelocity(0)

	v := poly.GetVelocity(poly.Position())
	if !v.Aeq(math2d.New(2, -3)) {
		t.Errorf("velocity at CM = %v, want (2, -3)", v)
	}
}

func TestPolygonGetVelocityWithSpin(t *testing.T) {
	poly := newUnitSquare()
	poly.SetPose(Pose{Position: math2d.Origin, Angle: 0})
	poly.SetLinearVelocity(math2d.Origin)
	poly.SetAngularVelocity(1)

	v := poly.GetVelocity(math2d.New(1, 0))
	if !v.Aeq(math2d.New(0, 1)) {
		t.Errorf("velocity = %v, want (0, 1)", v)
	}
}

func TestPolygonKineticEnergy(t *testing.T) {
	poly := newUnitSquare()
	poly.SetLinearVelocity(math2d.New(3, 4))
	poly.SetAngularVelocity(0)

	ke := poly.GetKineticEnergy()
	want := 0.5 * 4 * 25.0
	if math.Abs(ke-want) > math2d.Epsilon {
		t.Errorf("kinetic energy = %g, want %g", ke, want)
	}
}

func TestPolygonOldCopy(t *testing.T) {
	poly := newUnitSquare()
	if poly.GetOldCopy() != nil {
		t.Fatal("expected no old copy before SaveOldCopy")
	}
	poly.SetPose(Pose{Position: math2d.New(1, 2), Angle: 0.5})
	poly.SaveOldCopy()
	poly.SetPose(Pose{Position: math2d.New(9, 9), Angle: 1.5})

	old := poly.GetOldCopy()
	if old == nil {
		t.Fatal("expected old copy to be set")
	}
	if !old.Position.Aeq(math2d.New(1, 2)) || math.Abs(old.Angle-0.5) > math2d.Epsilon {
		t.Errorf("old copy = %+v, want {(1,2) 0.5}", old)
	}

	poly.EraseOldCopy()
	if poly.GetOldCopy() != nil {
		t.Error("expected old copy to be cleared")
	}
}

func TestPolygonFixedBodyInvMass(t *testing.T) {
	poly := NewPolygon("floor")
	poly.SetMass(math.Inf(1), math.Inf(1))
	if !poly.IsFixed() {
		t.Error("expected fixed body")
	}
	if poly.InvMass() != 0 {
		t.Errorf("InvMass = %g, want 0", poly.InvMass())
	}
	if poly.InvInertia() != 0 {
		t.Errorf("InvInertia = %g, want 0", poly.InvInertia())
	}
}

func TestPolygonWorldAABBTracksPose(t *testing.T) {
	poly := newUnitSquare()
	poly.SetPose(Pose{Position: math2d.New(5, 5), Angle: 0})

	box := poly.WorldAABB()
	if math.Abs(box.MinX-4) > math2d.Epsilon || math.Abs(box.MaxX-6) > math2d.Epsilon {
		t.Errorf("box X range = [%g,%g], want [4,6]", box.MinX, box.MaxX)
	}
	if math.Abs(box.MinY-4) > math2d.Epsilon || math.Abs(box.MaxY-6) > math2d.Epsilon {
		t.Errorf("box Y range = [%g,%g], want [4,6]", box.MinY, box.MaxY)
	}
}

func TestPolygonNonCollideIsSymmetric(t *testing.T) {
	a := newUnitSquare()
	a.Name = "a"
	b := newUnitSquare()
	b.Name = "b"
	a.AddNonCollide([]*Polygon{b})

	if !a.DoesNotCollide(b) {
		t.Error("expected a to not collide with b")
	}
	if !b.DoesNotCollide(a) {
		t.Error("expected non-collide to be registered on b too")
	}
}
