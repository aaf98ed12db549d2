// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package rigidbody

import (
	"math"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
)

// VertexID indexes into a Polygon's vertex arena. Stable for the lifetime
// of the polygon. This replaces the source's vertex<->edge pointer cycle
// (§9: "cyclic back-references") with an index into storage the Polygon
// owns.
type VertexID int

// EdgeID indexes into a Polygon's edge arena.
type EdgeID int

// noEdge marks an edge reference that has not been set yet.
const noEdge EdgeID = -1

// Vertex is a point in a polygon's body coordinates plus references to its
// neighboring edges. End-point vertices have two distinct neighboring
// edges (edge1 the previous edge, edge2 the next). Decorated mid-point
// vertices, added along curved edges to let vertex/edge detection
// approximate edge/edge collisions, have edge2 == edge1.
type Vertex struct {
	id     VertexID
	point  math2d.Vector // position in body coordinates
	edge1  EdgeID        // previous edge; set exactly once
	edge2  EdgeID        // next edge; == edge1 for decorated vertices
	decor  bool          // true if this is a decorated mid-edge vertex
}

// ID returns the vertex's integer identity, unique within its polygon.
func (v Vertex) ID() VertexID { return v.id }

// Point returns the vertex's position in body coordinates.
func (v Vertex) Point() math2d.Vector { return v.point }

// IsDecorated reports whether this is a mid-edge vertex added for
// curved-edge collision sampling rather than an endpoint of the polygon.
func (v Vertex) IsDecorated() bool { return v.decor }

// Edge1 returns the previous edge around the polygon boundary.
func (v Vertex) Edge1() EdgeID { return v.edge1 }

// Edge2 returns the next edge around the polygon boundary. Equal to
// Edge1 for decorated vertices.
func (v Vertex) Edge2() EdgeID { return v.edge2 }

// Curvature returns the signed curvature at this vertex: the reciprocal
// of the smaller-magnitude neighboring edge radius, or +Inf if both
// neighboring edges are straight.
func (v Vertex) Curvature(poly *Polygon) float64 {
	if v.edge1 == noEdge {
		return math.Inf(1)
	}
	r1 := poly.Edge(v.edge1).Radius()
	r2 := r1
	if v.edge2 != noEdge {
		r2 = poly.Edge(v.edge2).Radius()
	}
	r := r1
	if math.Abs(r2) < math.Abs(r1) {
		r = r2
	}
	if math.IsInf(r, 0) {
		return math.Inf(1)
	}
	return 1.0 / r
}
