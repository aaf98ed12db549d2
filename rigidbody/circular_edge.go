// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package rigidbody

import (
	"fmt"
	"math"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
)

// CircularEdge is a circular arc between two vertices in body
// coordinates, defined by a center, radius, winding direction, and which
// side faces the body's exterior.
type CircularEdge struct {
	id         EdgeID
	start, end VertexID
	center     math2d.Vector
	radius     float64
	clockwise  bool
	outsideOut bool

	angleLow, angleHigh float64 // angleLow in [-pi,pi], angleHigh >= angleLow
	fullCircle          bool

	decorated []VertexID

	centroid       math2d.Vector
	centroidRadius float64
}

var _ Edge = (*CircularEdge)(nil)

func (e *CircularEdge) ID() EdgeID            { return e.id }
func (e *CircularEdge) Kind() EdgeKind        { return KindCircular }
func (e *CircularEdge) StartVertex() VertexID { return e.start }
func (e *CircularEdge) EndVertex() VertexID   { return e.end }
func (e *CircularEdge) OutsideUp() bool       { return e.outsideOut }

// Radius returns the signed radius of curvature: positive when the body
// exterior is outside the circle (convex), negative when the exterior is
// inside it (concave).
func (e *CircularEdge) Radius() float64 {
	if e.outsideOut {
		return e.radius
	}
	return -e.radius
}

// Center returns the arc's center in body coordinates.
func (e *CircularEdge) Center() math2d.Vector { return e.center }

// AngleLow and AngleHigh return the normalized arc range: angleLow is in
// [-pi, pi], angleHigh >= angleLow, and every point on the arc has an
// edge-coordinate angle in [angleLow, angleHigh].
func (e *CircularEdge) AngleLow() float64  { return e.angleLow }
func (e *CircularEdge) AngleHigh() float64 { return e.angleHigh }
func (e *CircularEdge) IsFullCircle() bool { return e.fullCircle }

// ChordError returns r*(1 - sqrt(1 - alpha^2/4)) for the decoration angle
// alpha between adjacent decorated vertices: the maximum distance between
// the arc and the chord approximating it at that resolution.
func (e *CircularEdge) ChordError() float64 {
	n := len(e.decorated) + 1
	if n < 1 {
		n = 1
	}
	alpha := (e.angleHigh - e.angleLow) / float64(n)
	inner := 1 - alpha*alpha/4
	if inner < 0 {
		inner = 0
	}
	return e.radius * (1 - math.Sqrt(inner))
}

// DecoratedVertices returns the mid-arc vertices generated at
// construction for vertex/edge collision sampling.
func (e *CircularEdge) DecoratedVertices() []VertexID { return e.decorated }

// toEdgeCoords translates a body-coordinate point into edge coordinates:
// body coordinates with the origin moved to the arc's center.
func (e *CircularEdge) toEdgeCoords(p math2d.Vector) math2d.Vector { return p.Sub(e.center) }

// angleOf returns the edge-coordinate angle of p relative to the center,
// normalized to lie within [angleLow, angleHigh] when possible (adding
// 2*pi if the raw atan2 answer falls just below angleLow).
func (e *CircularEdge) angleOf(pBody math2d.Vector) float64 {
	a := e.toEdgeCoords(pBody).Angle()
	for a < e.angleLow-math2d.Epsilon {
		a += 2 * math.Pi
	}
	for a > e.angleHigh+math2d.Epsilon {
		a -= 2 * math.Pi
	}
	return a
}

// Contains ("is_within_arc") reports whether p's angle around the center
// falls within [angleLow, angleHigh].
func (e *CircularEdge) Contains(poly *Polygon, p math2d.Vector) bool {
	a := e.angleOf(p)
	return a >= e.angleLow-math2d.Epsilon && a <= e.angleHigh+math2d.Epsilon
}

// DistanceToLine returns (outside_is_out ? 1 : -1) * (|p-center| - radius).
func (e *CircularEdge) DistanceToLine(poly *Polygon, p math2d.Vector) float64 {
	d := e.toEdgeCoords(p).Length() - e.radius
	if e.outsideOut {
		return d
	}
	return -d
}

// DistanceToPoint is DistanceToLine restricted to the arc's angular span.
func (e *CircularEdge) DistanceToPoint(poly *Polygon, p math2d.Vector) float64 {
	if !e.Contains(poly, p) {
		return math.Inf(1)
	}
	return e.DistanceToLine(poly, p)
}

// NormalAt returns the outward unit normal at the point of the arc
// closest to p: the radial direction from the center through p, signed
// by outsideOut.
func (e *CircularEdge) NormalAt(poly *Polygon, p math2d.Vector) math2d.Vector {
	dir := e.toEdgeCoords(p)
	if dir.AeqZ() {
		dir = math2d.New(1, 0)
	}
	n := dir.Normalize()
	if !e.outsideOut {
		n = n.Neg()
	}
	return n
}

// ProjectPoint ("get_point_on_edge") projects p along the radial from the
// center onto the arc, returning the point and outward normal there.
func (e *CircularEdge) ProjectPoint(poly *Polygon, p math2d.Vector) (math2d.Vector, math2d.Vector, bool) {
	dir := e.toEdgeCoords(p)
	if dir.AeqZ() {
		return e.center, math2d.Vector{}, false
	}
	unit := dir.Normalize()
	point := e.center.Add(unit.Scale(e.radius))
	normal := unit
	if !e.outsideOut {
		normal = normal.Neg()
	}
	return point, normal, e.Contains(poly, p)
}

// BoundingBox returns the arc's axis-aligned bounding box, including the
// points where the arc crosses the coordinate axes if those angles lie
// within its span.
func (e *CircularEdge) BoundingBox(poly *Polygon) AABB {
	box := EmptyAABB()
	box = box.Expand(e.pointAt(e.angleLow))
	box = box.Expand(e.pointAt(e.angleHigh))
	for _, axisAngle := range []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2, 3 * math.Pi / 2} {
		a := axisAngle
		for a < e.angleLow {
			a += 2 * math.Pi
		}
		if a >= e.angleLow && a <= e.angleHigh {
			box = box.Expand(e.pointAt(a))
		}
	}
	return box
}

func (e *CircularEdge) pointAt(angle float64) math2d.Vector {
	return e.center.Add(math2d.FromAngle(angle).Scale(e.radius))
}

// String implements fmt.Stringer for debugging/log output.
func (e *CircularEdge) String() string {
	return fmt.Sprintf("CircularEdge(r=%g, [%g,%g], cw=%t, out=%t)", e.radius, e.angleLow, e.angleHigh, e.clockwise, e.outsideOut)
}

// AddCircularEdge adds a circular arc edge from start to end around
// center, with clockwise giving the winding direction from start to end
// and outsideIsOut indicating whether the body's exterior is outside the
// circle (convex) or inside it (concave). Decorated mid-arc vertices are
// generated and appended to the polygon for vertex/edge collision
// sampling (§4.1, CircularEdge construction steps 1-5).
func (poly *Polygon) AddCircularEdge(start, end VertexID, center math2d.Vector, clockwise, outsideIsOut bool) (EdgeID, error) {
	p1, p2 := poly.VertexPoint(start), poly.VertexPoint(end)
	r1, r2 := p1.DistanceTo(center), p2.DistanceTo(center)
	if math.Abs(r1-r2) > NearlyCoincidentVertex {
		return 0, fmt.Errorf("rigidbody: circular edge endpoints not equidistant from center: %g vs %g", r1, r2)
	}
	radius := (r1 + r2) / 2
	if radius < math2d.Epsilon {
		return 0, fmt.Errorf("rigidbody: circular edge has zero radius")
	}

	startAngle := p1.Sub(center).Angle()
	finishAngle := p2.Sub(center).Angle()
	angleLow, angleHigh, full := arcRange(startAngle, finishAngle, clockwise)

	id := EdgeID(len(poly.edges))
	e := &CircularEdge{
		id: id, start: start, end: end, center: center, radius: radius,
		clockwise: clockwise, outsideOut: outsideIsOut,
		angleLow: angleLow, angleHigh: angleHigh, fullCircle: full,
	}

	e.decorated = poly.generateDecoratedVertices(e)

	if angleHigh-angleLow >= math.Pi {
		e.centroid = center
		e.centroidRadius = radius
	} else {
		mid := p1.Add(p2).Scale(0.5)
		e.centroid = mid
		e.centroidRadius = mid.DistanceTo(center)
		if !outsideIsOut {
			e.centroidRadius *= 1.2
		}
	}

	poly.edges = append(poly.edges, e)
	poly.setVertexEdge(start, id, 2)
	poly.setVertexEdge(end, id, 1)
	return id, nil
}

// arcRange normalizes start/finish angles into [angleLow, angleHigh] per
// the table in §4.1: angleLow in [-pi, pi], angleHigh in
// [angleLow, angleLow + 2pi].
func arcRange(start, finish float64, clockwise bool) (low, high float64, full bool) {
	start = normalizePi(start)
	finish = normalizePi(finish)
	diff := finish - start
	switch {
	case math.Abs(diff) < NearlyCoincidentVertex:
		return start, start + 2*math.Pi, true
	case math.Abs(math.Abs(diff)-2*math.Pi) < NearlyCoincidentVertex:
		low = math.Min(start, finish)
		return low, low + 2*math.Pi, true
	case start > finish && clockwise:
		return finish, start, false
	case start > finish && !clockwise:
		return start, finish + 2*math.Pi, false
	case start < finish && clockwise:
		return finish, start + 2*math.Pi, false
	default: // start < finish, counter-clockwise
		return start, finish, false
	}
}

func normalizePi(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// generateDecoratedVertices adds mid-arc vertices spaced at most pi/4
// apart and at most 0.3 body-length-units of arc apart, whichever is
// denser, so vertex/edge collision detection can approximate edge/edge
// contact against a curved edge.
func (poly *Polygon) generateDecoratedVertices(e *CircularEdge) []VertexID {
	span := e.angleHigh - e.angleLow
	maxAngleStep := math.Pi / 4
	maxArcStep := 0.3 / e.radius
	step := math.Min(maxAngleStep, maxArcStep)
	segments := int(math.Ceil(span / step))
	if segments < 1 {
		segments = 1
	}
	ids := make([]VertexID, 0, segments-1)
	for i := 1; i < segments; i++ {
		a := e.angleLow + span*float64(i)/float64(segments)
		p := e.pointAt(a)
		ids = append(ids, poly.addDecoratedVertex(p, e.id))
	}
	return ids
}
