// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package rigidbody

import (
	"math"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
)

// StraightEdge is a line segment between two vertices in body coordinates.
type StraightEdge struct {
	id          EdgeID
	start, end  VertexID
	outsideIsUp bool
}

var _ Edge = (*StraightEdge)(nil)

func (e *StraightEdge) ID() EdgeID          { return e.id }
func (e *StraightEdge) Kind() EdgeKind      { return KindStraight }
func (e *StraightEdge) StartVertex() VertexID { return e.start }
func (e *StraightEdge) EndVertex() VertexID   { return e.end }
func (e *StraightEdge) OutsideUp() bool       { return e.outsideIsUp }
func (e *StraightEdge) Radius() float64       { return math.Inf(1) }
func (e *StraightEdge) ChordError() float64   { return 0 }

func (e *StraightEdge) endpoints(poly *Polygon) (p1, p2 math2d.Vector) {
	return poly.VertexPoint(e.start), poly.VertexPoint(e.end)
}

// upNormal returns the unit normal of a line with direction dir that
// points up (toward greater y) or, for a vertical line, to the right
// (toward greater x), whichever way dir itself runs.
func upNormal(dir math2d.Vector) math2d.Vector {
	n := dir.Rotate90().Normalize()
	if n.Y < -TinyPositive || (math.Abs(n.Y) <= TinyPositive && n.X < 0) {
		return n.Neg()
	}
	return n
}

// DistanceToLine returns the signed perpendicular distance from p to the
// infinite line through the edge, positive on the outside. With
// outsideIsUp the outside is the side of greater y (for a vertical edge,
// the side of greater x); otherwise it is the opposite side. The
// distance is the Hesse-normal-form projection onto that unit normal,
// so no slope division is involved; only a vertical edge is recognized
// separately, to pick its "up" side.
func (e *StraightEdge) DistanceToLine(poly *Polygon, p math2d.Vector) float64 {
	p1, p2 := e.endpoints(poly)
	dir := p2.Sub(p1)
	if dir.AeqZ() {
		return math.Inf(1)
	}
	n := upNormal(dir)
	raw := p.Sub(p1).Dot(n)
	if e.outsideIsUp {
		return raw
	}
	return -raw
}

// DistanceToPoint is DistanceToLine restricted to the segment: it returns
// +Inf when the foot of the perpendicular falls outside [start, end].
func (e *StraightEdge) DistanceToPoint(poly *Polygon, p math2d.Vector) float64 {
	if !e.Contains(poly, p) {
		return math.Inf(1)
	}
	return e.DistanceToLine(poly, p)
}

// Contains reports whether p's perpendicular foot lies within the
// segment span.
func (e *StraightEdge) Contains(poly *Polygon, p math2d.Vector) bool {
	p1, p2 := e.endpoints(poly)
	d := p2.Sub(p1)
	length2 := d.LengthSqr()
	if length2 < math2d.Epsilon {
		return false
	}
	t := p.Sub(p1).Dot(d) / length2
	return t >= 0 && t <= 1
}

// ProjectPoint returns the perpendicular foot of p on the segment and the
// outward normal there.
func (e *StraightEdge) ProjectPoint(poly *Polygon, p math2d.Vector) (math2d.Vector, math2d.Vector, bool) {
	p1, p2 := e.endpoints(poly)
	d := p2.Sub(p1)
	length2 := d.LengthSqr()
	if length2 < math2d.Epsilon {
		return p1, math2d.Vector{}, false
	}
	t := p.Sub(p1).Dot(d) / length2
	if t < 0 || t > 1 {
		return p1.Add(d.Scale(clamp01(t))), e.NormalAt(poly, p), false
	}
	point := p1.Add(d.Scale(t))
	return point, e.NormalAt(poly, p), true
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// NormalAt returns the outward unit normal of the line, independent of p
// (a straight edge has one normal along its whole length).
func (e *StraightEdge) NormalAt(poly *Polygon, p math2d.Vector) math2d.Vector {
	p1, p2 := e.endpoints(poly)
	n := upNormal(p2.Sub(p1))
	if e.outsideIsUp {
		return n
	}
	return n.Neg()
}

// BoundingBox returns the segment's axis-aligned bounding box.
func (e *StraightEdge) BoundingBox(poly *Polygon) AABB {
	p1, p2 := e.endpoints(poly)
	return EmptyAABB().Expand(p1).Expand(p2)
}

// Intersection finds the intersection point of this segment (in its own
// body coordinates) with the segment [q1, q2] given in the same frame,
// using a parallel tolerance of 1e-16 and an endpoint extension
// tolerance of 1e-14 so that acute-angle corner/corner collisions are
// still found despite floating point error in the segment endpoints.
func (e *StraightEdge) Intersection(poly *Polygon, q1, q2 math2d.Vector) (math2d.Vector, bool) {
	p1, p2 := e.endpoints(poly)
	return SegmentIntersection(p1, p2, q1, q2)
}

// SegmentIntersection finds where segment [p1,p2] crosses segment
// [q1,q2], extending each segment very slightly past its endpoints
// (EndpointExtensionTolerance) to catch corner/corner collisions that
// floating point error would otherwise miss.
func SegmentIntersection(p1, p2, q1, q2 math2d.Vector) (math2d.Vector, bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	denom := r.Cross(s)
	if math.Abs(denom) < ParallelTolerance {
		return math2d.Vector{}, false
	}
	qp := q1.Sub(p1)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	ext := EndpointExtensionTolerance
	if t < -ext || t > 1+ext || u < -ext || u > 1+ext {
		return math2d.Vector{}, false
	}
	return p1.Add(r.Scale(t)), true
}
