// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package rigidbody

import (
	"math"
	"testing"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
)

// newDiscBody builds a unit disc as a single full-circle CircularEdge: a
// common construction for round bodies, per §4.1's full-circle case.
func newDiscBody(t *testing.T, radius float64) (*Polygon, EdgeID) {
	t.Helper()
	poly := NewPolygon("disc")
	start := poly.AddVertex(math2d.New(radius, 0))
	id, err := poly.AddCircularEdge(start, start, math2d.Origin, false, true)
	if err != nil {
		t.Fatalf("AddCircularEdge: %v", err)
	}
	return poly, id
}

func TestCircularEdgeFullCircleDistance(t *testing.T) {
	poly, id := newDiscBody(t, 2)
	e := poly.Edge(id)

	d := e.DistanceToLine(poly, math2d.New(5, 0))
	if math.Abs(d-3) > math2d.Epsilon {
		t.Errorf("distance to line = %g, want 3", d)
	}
	inside := e.DistanceToLine(poly, math2d.Origin)
	if math.Abs(inside+2) > math2d.Epsilon {
		t.Errorf("distance to line at center = %g, want -2", inside)
	}
}

func TestCircularEdgeNormalAtIsRadial(t *testing.T) {
	poly, id := newDiscBody(t, 1)
	e := poly.Edge(id)

	n := e.NormalAt(poly, math2d.New(0, 10))
	if !n.Aeq(math2d.New(0, 1)) {
		t.Errorf("normal = %v, want (0, 1)", n)
	}
}

func TestCircularEdgeDecoratedVertexCountQuarterArc(t *testing.T) {
	// A small radius keeps the arc-length cap (0.3 body-length-units per
	// sector) looser than the pi/4-per-sector angle cap, so the angle cap
	// is what decides the decoration count here.
	poly := NewPolygon("quarter")
	a := poly.AddVertex(math2d.New(0.1, 0))
	b := poly.AddVertex(math2d.New(0, 0.1))
	id, err := poly.AddCircularEdge(a, b, math2d.Origin, false, true)
	if err != nil {
		t.Fatalf("AddCircularEdge: %v", err)
	}
	ce := poly.Edge(id).(*CircularEdge)
	if got := ce.AngleHigh() - ce.AngleLow(); math.Abs(got-math.Pi/2) > math2d.Epsilon {
		t.Errorf("arc span = %g, want pi/2", got)
	}
	// A quarter turn needs exactly one split to stay within pi/4 per sector.
	if len(ce.DecoratedVertices()) != 1 {
		t.Errorf("decorated vertex count = %d, want 1", len(ce.DecoratedVertices()))
	}
}

func TestCircularEdgeRejectsUnequalRadii(t *testing.T) {
	poly := NewPolygon("bad")
	a := poly.AddVertex(math2d.New(1, 0))
	b := poly.AddVertex(math2d.New(0, 2))
	if _, err := poly.AddCircularEdge(a, b, math2d.Origin, false, true); err == nil {
		t.Error("expected error for endpoints at different radii")
	}
}

func TestCircularEdgeContainsWithinArc(t *testing.T) {
	poly := NewPolygon("arc")
	a := poly.AddVertex(math2d.New(1, 0))
	b := poly.AddVertex(math2d.New(-1, 0))
	id, err := poly.AddCircularEdge(a, b, math2d.Origin, false, true)
	if err != nil {
		t.Fatalf("AddCircularEdge: %v", err)
	}
	e := poly.Edge(id)
	if !e.Contains(poly, math2d.New(0, 5)) {
		t.Error("expected point above the upper semicircle to be within the arc")
	}
	if e.Contains(poly, math2d.New(0, -5)) {
		t.Error("expected point below the lower semicircle to be out of the arc")
	}
}

func TestCircularEdgeConcaveNormalPointsInward(t *testing.T) {
	poly := NewPolygon("pocket")
	a := poly.AddVertex(math2d.New(1, 0))
	b := poly.AddVertex(math2d.New(-1, 0))
	id, err := poly.AddCircularEdge(a, b, math2d.Origin, false, false)
	if err != nil {
		t.Fatalf("AddCircularEdge: %v", err)
	}
	e := poly.Edge(id)
	n := e.NormalAt(poly, math2d.New(0, 5))
	if !n.Aeq(math2d.New(0, -1)) {
		t.Errorf("concave normal = %v, want (0, -1)", n)
	}
}
