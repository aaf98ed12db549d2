// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package rigidbody

import "github.com/myphysicslab/myphysicslab-sub011/math2d"

// EdgeKind tags which concrete geometry an Edge holds. Edges are a small,
// closed variant set (Straight, Circular); the shared operations go
// through edge.go's Edge interface, and Kind lets callers branch on the
// concrete shape (straight_edge.go / circular_edge.go) where they must.
type EdgeKind int

const (
	// KindStraight is a line segment edge.
	KindStraight EdgeKind = iota
	// KindCircular is a circular arc edge.
	KindCircular
)

// Numerical constants from §6; part of the contract.
const (
	// ParallelTolerance bounds how close two segment directions can be
	// before intersection treats them as parallel.
	ParallelTolerance = 1e-16
	// EndpointExtensionTolerance lets segment/segment intersection find
	// contacts at acute corners despite floating point error.
	EndpointExtensionTolerance = 1e-14
	// VertexCornerFactor scales dist_tol for the vertex/vertex fallback
	// test in the collision package's findVertexContact; chosen
	// empirically to suppress spurious contacts in near-vertex geometry.
	VertexCornerFactor = 0.6
	// TinyPositive is the axis-alignment threshold StraightEdge uses to
	// recognize a vertical edge when choosing its "up" side.
	TinyPositive = 1e-10
	// NearlyCoincidentVertex is the lower bound below which two vertices
	// are treated as the same point.
	NearlyCoincidentVertex = 1e-6
)

// Edge is the shared geometry contract implemented by StraightEdge and
// CircularEdge. All methods operate in the owning Polygon's body
// coordinates; p is always a point already expressed in that frame.
type Edge interface {
	// ID returns the edge's identity within its owning polygon.
	ID() EdgeID
	// Kind distinguishes Straight from Circular without a type switch.
	Kind() EdgeKind
	// StartVertex and EndVertex are the edge's two endpoints, in the
	// direction the polygon boundary is wound.
	StartVertex() VertexID
	EndVertex() VertexID
	// OutsideUp reports which side of the edge faces the body's exterior:
	// for StraightEdge this is outside_is_up, for CircularEdge
	// outside_is_out. Both answer the same question ("does increasing
	// DistanceToLine move away from the body?") so a single accessor
	// name serves both variants.
	OutsideUp() bool
	// DistanceToLine returns the signed perpendicular distance from p to
	// the infinite line/circle extending the edge, positive outside.
	DistanceToLine(poly *Polygon, p math2d.Vector) float64
	// DistanceToPoint is like DistanceToLine but returns +Inf if p's
	// projection falls outside the edge's span.
	DistanceToPoint(poly *Polygon, p math2d.Vector) float64
	// Radius returns the signed radius of curvature: positive convex,
	// negative concave, +Inf for a straight edge.
	Radius() float64
	// ChordError returns the maximum deviation of the edge's chord from
	// its true geometry; zero for straight edges.
	ChordError() float64
	// BoundingBox returns the edge's axis-aligned bounding box in body
	// coordinates.
	BoundingBox(poly *Polygon) AABB
	// NormalAt returns the outward unit normal in body coordinates at
	// the point of the edge closest to p.
	NormalAt(poly *Polygon, p math2d.Vector) math2d.Vector
	// Contains reports whether p's projection onto the edge's
	// line/circle falls within the edge's span: the segment for
	// StraightEdge, the arc's angular range for CircularEdge. This is
	// "is_within_arc" generalized to both edge kinds.
	Contains(poly *Polygon, p math2d.Vector) bool
	// ProjectPoint returns the closest point on the edge to p and the
	// outward unit normal there ("get_point_on_edge"). ok is false if p
	// projects outside the edge's span.
	ProjectPoint(poly *Polygon, p math2d.Vector) (point, normal math2d.Vector, ok bool)
}
