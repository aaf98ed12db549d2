// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package joint

import (
	"math"
	"testing"
	"time"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

func newBlock(name string, mass float64) *rigidbody.Polygon {
	poly := rigidbody.NewPolygon(name)
	a := poly.AddVertex(math2d.New(-0.5, -0.5))
	b := poly.AddVertex(math2d.New(0.5, -0.5))
	c := poly.AddVertex(math2d.New(0.5, 0.5))
	d := poly.AddVertex(math2d.New(-0.5, 0.5))
	poly.AddStraightEdge(a, b, false)
	poly.AddStraightEdge(b, c, false)
	poly.AddStraightEdge(c, d, false)
	poly.AddStraightEdge(d, a, false)
	poly.SetMass(mass, mass/6)
	return poly
}

func newFixedAnchor() *rigidbody.Polygon {
	poly := newBlock("wall", 1)
	poly.SetMass(math.Inf(1), math.Inf(1))
	return poly
}

func TestJointDistanceAtAttachmentOffset(t *testing.T) {
	body := newBlock("pendulum", 1)
	body.SetPose(rigidbody.Pose{Position: math2d.New(3, 0)})

	anchor := newFixedAnchor()
	anchor.SetPose(rigidbody.Pose{Position: math2d.New(0, 0)})

	j := NewJoint(body, math2d.New(0, 0), anchor, math2d.New(0, 0), math2d.New(1, 0))
	rec := j.NewRecord()
	if err := rec.UpdateCollision(time.Time{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if math.Abs(rec.Distance-3) > 1e-9 {
		t.Errorf("distance = %g, want 3", rec.Distance)
	}
}

func TestJointNormalVelocityTracksSeparationRate(t *testing.T) {
	body := newBlock("slider", 1)
	body.SetPose(rigidbody.Pose{Position: math2d.New(1, 0)})
	body.SetLinearVelocity(math2d.New(2, 0))

	anchor := newFixedAnchor()

	j := NewJoint(body, math2d.New(0, 0), anchor, math2d.New(0, 0), math2d.New(1, 0))
	rec := j.NewRecord()
	if err := rec.UpdateCollision(time.Time{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if math.Abs(rec.NormalVelocity-2) > 1e-9 {
		t.Errorf("normal velocity = %g, want 2", rec.NormalVelocity)
	}
}

// straightPath is a Path along the X axis, parameterized by arc length
// (s == x), used to exercise PathJoint/PathEndPoint without a curved
// track's extra bookkeeping.
type straightPath struct {
	y float64
}

func (p straightPath) ClosestParameter(pt math2d.Vector, guess float64) float64 { return pt.X }
func (p straightPath) PointAt(s float64) (math2d.Vector, math2d.Vector) {
	return math2d.New(s, p.y), math2d.New(1, 0)
}
func (p straightPath) Velocity(s float64) math2d.Vector { return math2d.Origin }
func (p straightPath) Limits() (float64, float64)       { return math.Inf(-1), math.Inf(1) }

func TestPathJointTracksAttachmentAboveTrack(t *testing.T) {
	body := newBlock("bead", 1)
	body.SetPose(rigidbody.Pose{Position: math2d.New(2, 1)})

	pj := NewPathJoint(body, math2d.New(0, 0), straightPath{y: 0}, 2)
	rec := pj.NewRecord()
	if err := rec.UpdateCollision(time.Time{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if math.Abs(rec.Distance-1) > 1e-9 {
		t.Errorf("distance = %g, want 1", rec.Distance)
	}
	if !math.IsNaN(rec.Radius2) {
		t.Errorf("radius2 = %g, want NaN", rec.Radius2)
	}
}

func TestPathEndPointFiresOnlyOnCrossing(t *testing.T) {
	body := newBlock("cart", 1)
	body.SetPose(rigidbody.Pose{Position: math2d.New(4, 0)})
	body.SaveOldCopy()
	body.SetPose(rigidbody.Pose{Position: math2d.New(6, 0)})

	ep := NewPathEndPoint(body, math2d.New(0, 0), straightPath{y: 0}, 5, true, 4)
	rec := ep.Detect(time.Time{})
	if rec == nil {
		t.Fatal("expected a crossing collision, got nil")
	}
	if math.Abs(rec.Distance-(-1)) > 1e-9 {
		t.Errorf("distance = %g, want -1", rec.Distance)
	}

	// No further crossing once already past the limit with old==current side.
	body.SaveOldCopy()
	body.SetPose(rigidbody.Pose{Position: math2d.New(7, 0)})
	if again := ep.Detect(time.Time{}); again != nil {
		t.Errorf("expected no re-fire while staying outside, got %+v", again)
	}
}
