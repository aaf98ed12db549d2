// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package rigidbody

// query.go contains closest-point queries against a polygon's boundary.
// It is separate from collision detection and is used to answer "where
// on this shape is the nearest point to p?" for callers such as
// scenario authoring tools that need no full contact record. PathJoint
// does not use it: its local search goes through its Path's own
// ClosestParameter.

import "github.com/myphysicslab/myphysicslab-sub011/math2d"

// ClosestPointOnBoundary returns the point on poly's boundary (body
// coordinates) nearest to p, the outward normal there, and the distance
// (always non-negative, regardless of p's side of the edge). When no
// edge's perpendicular foot lies within its span, it returns the nearest
// vertex with a zero normal.
func (poly *Polygon) ClosestPointOnBoundary(p math2d.Vector) (point, normal math2d.Vector, dist float64) {
	best := math2d.Vector{}
	bestNormal := math2d.Vector{}
	bestDist := 0.0
	found := false

	for _, e := range poly.edges {
		c, n, ok := e.ProjectPoint(poly, p)
		if !ok {
			continue
		}
		d := c.DistanceTo(p)
		if !found || d < bestDist {
			best, bestNormal, bestDist = c, n, d
			found = true
		}
	}
	if found {
		return best, bestNormal, bestDist
	}

	// Every edge's projection fell outside its own span (can happen at
	// acute corners): fall back to the nearest vertex.
	for _, v := range poly.vertices {
		d := v.point.DistanceTo(p)
		if !found || d < bestDist {
			best, bestDist = v.point, d
			found = true
		}
	}
	return best, bestNormal, bestDist
}
