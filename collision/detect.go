// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package collision

import (
	"math"
	"time"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

// Detector scans pairs of rigid bodies for candidate contacts, per the
// pipeline in §4.3.
type Detector struct {
	// Step is the ODE step size k used to compute swellage = max(dist_tol,
	// k*velocity), the broad-phase bounding-box inflation.
	Step float64
}

// NewDetector returns a detector using the given integrator step size
// for swellage.
func NewDetector(step float64) *Detector {
	return &Detector{Step: step}
}

// Detect scans every ordered pair of bodies in bodies that has not opted
// out via non-collide, returning every candidate contact found.
func (d *Detector) Detect(bodies []*rigidbody.Polygon, t time.Time) []*Record {
	var out []*Record
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.DoesNotCollide(b) {
				continue
			}
			out = append(out, d.detectPair(a, b, t)...)
		}
	}
	return Dedup(out, defaultDistTol(bodies))
}

func defaultDistTol(bodies []*rigidbody.Polygon) float64 {
	if len(bodies) == 0 {
		return 0.01
	}
	return bodies[0].DistanceTol()
}

func (d *Detector) swellage(body *rigidbody.Polygon) float64 {
	speed := body.LinearVelocity().Length() + math.Abs(body.AngularVelocity())
	s := d.Step * speed
	if body.DistanceTol() > s {
		return body.DistanceTol()
	}
	return s
}

func (d *Detector) detectPair(a, b *rigidbody.Polygon, t time.Time) []*Record {
	boxA := a.WorldAABB().Swell(d.swellage(a))
	boxB := b.WorldAABB().Swell(d.swellage(b))
	if !boxA.Overlaps(boxB) {
		return nil
	}

	var out []*Record
	distTol := a.DistanceTol()

	out = append(out, d.vertexEdgeScan(a, b, distTol, t)...)
	out = append(out, d.vertexEdgeScan(b, a, distTol, t)...)
	out = append(out, d.edgeEdgeScan(a, b, distTol, t)...)
	return out
}

// vertexEdgeScan checks every vertex of from (endpoints and decorated
// mid-points) against every edge of to, per §4.3 step 3.
func (d *Detector) vertexEdgeScan(from, to *rigidbody.Polygon, distTol float64, t time.Time) []*Record {
	var out []*Record
	for _, v := range from.Vertices() {
		worldPoint := from.BodyToWorld(v.Point())
		pointInTo := to.WorldToBody(worldPoint)
		for _, e := range to.Edges() {
			if rec := findVertexContact(from, v, to, e, pointInTo, distTol, t); rec != nil {
				out = append(out, rec)
			}
		}
	}
	return out
}

// findVertexContact is the shared "find_vertex_contact" routine of
// §4.1: if the vertex's projection lands within the edge's span and the
// signed distance is in [0, dist_tol], emit a CornerEdge contact;
// otherwise fall back to a vertex/vertex CornerCorner test against each
// endpoint, using the 0.6*dist_tol threshold §4.1 calls out as part of
// the contract.
func findVertexContact(fromBody *rigidbody.Polygon, v rigidbody.Vertex, toBody *rigidbody.Polygon, e rigidbody.Edge, pointInTo math2d.Vector, distTol float64, t time.Time) *Record {
	dist := e.DistanceToPoint(toBody, pointInTo)
	if !math.IsInf(dist, 1) && dist >= 0 && dist <= distTol {
		point, normal, ok := e.ProjectPoint(toBody, pointInTo)
		if ok {
			rec := &Record{
				Kind:        KindCornerEdge,
				PrimaryBody: fromBody, PrimaryVertex: v.Point(), HasVertices: true,
				NormalBody: toBody, NormalEdge: e,
				Impact1: toBody.BodyToWorld(point),
				Normal:  toBody.RotateBodyToWorld(normal),
				Distance: dist,
				Radius1:  math.Inf(1),
				Radius2:  e.Radius(),
				BallNormal: e.Kind() == rigidbody.KindCircular,
				DetectedTime: t, UpdateTime: t,
				Creator: "findVertexContact",
			}
			if rec.BallNormal {
				// Half the gap is folded into radius2 for circular
				// edges, per §4.1, for numerical stability.
				rec.Radius2 += dist / 2
			}
			rec.refreshBase()
			return rec
		}
	}

	threshold := rigidbody.VertexCornerFactor * distTol
	for _, endpoint := range []rigidbody.VertexID{e.StartVertex(), e.EndVertex()} {
		candidate := toBody.VertexPoint(endpoint)
		d := pointInTo.DistanceTo(candidate)
		if d <= threshold {
			rec := &Record{
				Kind:        KindCornerCorner,
				PrimaryBody: fromBody, PrimaryVertex: v.Point(), HasVertices: true,
				NormalBody: toBody, NormalVertex: candidate,
				DetectedTime: t, UpdateTime: t,
				Creator: "findVertexContact",
			}
			if err := rec.updateCornerCorner(); err != nil {
				continue
			}
			rec.refreshBase()
			return rec
		}
	}
	return nil
}

// edgeEdgeScan runs §4.3 step 4: curved-edge pairs are tested directly;
// straight/straight pairs never emit (covered by vertex/edge tests).
func (d *Detector) edgeEdgeScan(a, b *rigidbody.Polygon, distTol float64, t time.Time) []*Record {
	var out []*Record
	for _, ea := range a.Edges() {
		for _, eb := range b.Edges() {
			ca, aIsCircular := ea.(*rigidbody.CircularEdge)
			cb, bIsCircular := eb.(*rigidbody.CircularEdge)
			switch {
			case aIsCircular && bIsCircular:
				if rec, ok := CircleCircle(a, ca, b, cb, distTol, t); ok {
					out = append(out, rec)
				}
			case aIsCircular:
				sb := eb.(*rigidbody.StraightEdge)
				if rec, ok := CircleStraight(b, sb, a, ca, distTol, t); ok {
					out = append(out, rec)
				}
			case bIsCircular:
				sa := ea.(*rigidbody.StraightEdge)
				if rec, ok := CircleStraight(a, sa, b, cb, distTol, t); ok {
					out = append(out, rec)
				}
			default:
				// Straight/straight: never emits (§4.1).
			}
		}
	}
	return out
}
