// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package scenario

import (
	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

// newSquare returns a unit-ish square body of half-width half and the
// given mass, centered on its own centroid.
func newSquare(name string, half, mass float64) *rigidbody.Polygon {
	poly := rigidbody.NewPolygon(name)
	a := poly.AddVertex(math2d.New(-half, -half))
	b := poly.AddVertex(math2d.New(half, -half))
	c := poly.AddVertex(math2d.New(half, half))
	d := poly.AddVertex(math2d.New(-half, half))
	poly.AddStraightEdge(a, b, true)
	poly.AddStraightEdge(b, c, true)
	poly.AddStraightEdge(c, d, true)
	poly.AddStraightEdge(d, a, true)
	poly.SetMass(mass, mass*(2*half)*(2*half)/6)
	return poly
}

// newDisc returns a circular body of the given radius and mass.
func newDisc(name string, radius, mass float64) (*rigidbody.Polygon, error) {
	poly := rigidbody.NewPolygon(name)
	start := poly.AddVertex(math2d.New(radius, 0))
	if _, err := poly.AddCircularEdge(start, start, math2d.Origin, false, true); err != nil {
		return nil, err
	}
	poly.SetMass(mass, 0.5*mass*radius*radius)
	return poly, nil
}
