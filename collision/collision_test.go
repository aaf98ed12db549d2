// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package collision

import (
	"math"
	"testing"
	"time"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

func newSquare(name string) *rigidbody.Polygon {
	poly := rigidbody.NewPolygon(name)
	a := poly.AddVertex(math2d.New(-0.5, -0.5))
	b := poly.AddVertex(math2d.New(0.5, -0.5))
	c := poly.AddVertex(math2d.New(0.5, 0.5))
	d := poly.AddVertex(math2d.New(-0.5, 0.5))
	poly.AddStraightEdge(a, b, true)
	poly.AddStraightEdge(b, c, true)
	poly.AddStraightEdge(c, d, true)
	poly.AddStraightEdge(d, a, true)
	poly.SetMass(1, 1.0/6.0)
	return poly
}

func newFloor() *rigidbody.Polygon {
	poly := rigidbody.NewPolygon("floor")
	a := poly.AddVertex(math2d.New(-10, -1))
	b := poly.AddVertex(math2d.New(10, -1))
	c := poly.AddVertex(math2d.New(10, 0))
	d := poly.AddVertex(math2d.New(-10, 0))
	poly.AddStraightEdge(a, b, true)
	poly.AddStraightEdge(b, c, true)
	poly.AddStraightEdge(c, d, true)
	poly.AddStraightEdge(d, a, true)
	poly.SetMass(math.Inf(1), math.Inf(1))
	return poly
}

func TestDetectNonOverlappingBoxesNoCollision(t *testing.T) {
	a := newSquare("a")
	a.SetPose(rigidbody.Pose{Position: math2d.New(0, 10)})
	b := newFloor()

	d := NewDetector(0.01)
	recs := d.Detect([]*rigidbody.Polygon{a, b}, time.Time{})
	if len(recs) != 0 {
		t.Errorf("got %d records, want 0 for non-overlapping boxes", len(recs))
	}
}

func TestDetectSquareRestingOnFloorProducesCornerEdge(t *testing.T) {
	a := newSquare("a")
	a.SetPose(rigidbody.Pose{Position: math2d.New(0, 0.5)})
	b := newFloor()

	d := NewDetector(0.01)
	recs := d.Detect([]*rigidbody.Polygon{a, b}, time.Time{})
	if len(recs) == 0 {
		t.Fatal("expected at least one contact between resting square and floor")
	}
	for _, r := range recs {
		if math.Abs(r.Distance) > 0.02 {
			t.Errorf("contact distance = %g, want near 0", r.Distance)
		}
	}
}

func TestNearnessConcaveIsInfinite(t *testing.T) {
	if n := Nearness(-1, 2, 0.01); !math.IsInf(n, 1) {
		t.Errorf("Nearness with concave side = %g, want +Inf", n)
	}
}

func TestNearnessStraightFallsBackToDistTol(t *testing.T) {
	if n := Nearness(math.Inf(1), math.Inf(1), 0.01); n != 0.01 {
		t.Errorf("Nearness(straight, straight) = %g, want 0.01", n)
	}
}

func TestSimilarRequiresSameBodyPair(t *testing.T) {
	a := newSquare("a")
	b := newSquare("b")
	c := newSquare("c")
	r1 := &Record{PrimaryBody: a, NormalBody: b, Impact1: math2d.New(0, 0), Normal: math2d.New(0, 1), Radius1: math.Inf(1), Radius2: math.Inf(1)}
	r2 := &Record{PrimaryBody: a, NormalBody: c, Impact1: math2d.New(0, 0), Normal: math2d.New(0, 1), Radius1: math.Inf(1), Radius2: math.Inf(1)}
	if Similar(r1, r2, 0.01) {
		t.Error("expected records with different body pairs not to be similar")
	}
}
