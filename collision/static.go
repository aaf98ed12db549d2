// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package collision

import (
	"math"
	"time"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

// CircleStraight implements the static edge/edge routine of §4.4 for one
// circular edge against one straight edge. circleBody/circleEdge play
// the "normal" role in the returned record (the normal side supplies
// the outward normal); straightBody/straightEdge play "primary".
func CircleStraight(straightBody *rigidbody.Polygon, straightEdge *rigidbody.StraightEdge, circleBody *rigidbody.Polygon, circleEdge *rigidbody.CircularEdge, distTol float64, t time.Time) (*Record, bool) {
	if !circleEdge.OutsideUp() {
		// Concave circle x straight edge emits nothing; covered by
		// vertex/edge logic (§4.4 step 6).
		return nil, false
	}

	centerWorld := circleBody.BodyToWorld(circleEdge.Center())
	cb := straightBody.WorldToBody(centerWorld)

	n := straightEdge.NormalAt(straightBody, cb)
	r := circleEdge.Radius()
	pb := cb.Sub(n.Scale(r))

	d := straightEdge.DistanceToLine(straightBody, pb)

	if d > 0 {
		if d > distTol {
			return nil, false
		}
		if math.IsInf(straightEdge.DistanceToPoint(straightBody, pb), 1) {
			return nil, false
		}
		lineImpact := projectOntoLine(straightEdgeStart(straightBody, straightEdge), straightEdgeEnd(straightBody, straightEdge), cb)
		impactWorld := straightBody.BodyToWorld(lineImpact)
		impactInCircle := circleBody.WorldToBody(impactWorld)
		if !circleEdge.Contains(circleBody, impactInCircle) {
			return nil, false
		}
		rec := &Record{
			Kind:        KindEdgeEdge,
			PrimaryBody: straightBody, PrimaryEdge: straightEdge,
			NormalBody: circleBody, NormalEdge: circleEdge,
			Impact1: impactWorld,
			Normal:  straightBody.RotateBodyToWorld(n.Neg()),
			Distance: d,
			Radius1:  math.Inf(1),
			Radius2:  r + d,
			BallNormal: true,
			DetectedTime: t, UpdateTime: t,
			Creator: "CircleStraight",
		}
		rec.refreshBase()
		return rec, true
	}

	// d <= 0: penetrating. Replay against the old pose to reject if the
	// circle was already on the wrong side last step.
	oldCircle := circleBody.GetOldCopy()
	oldStraight := straightBody.GetOldCopy()
	if oldCircle == nil || oldStraight == nil {
		return nil, false
	}
	oldCenterWorld := oldCircle.Transform().Transform(circleEdge.Center())
	oldCb := oldStraight.Transform().InverseTransform(oldCenterWorld)
	oldPb := oldCb.Sub(n.Scale(r))
	oldD := straightEdge.DistanceToLine(straightBody, oldPb)
	if oldD <= 0 {
		return nil, false
	}

	lineImpact := projectOntoLine(straightEdgeStart(straightBody, straightEdge), straightEdgeEnd(straightBody, straightEdge), cb)
	impactWorld := straightBody.BodyToWorld(lineImpact)
	impactInCircle := circleBody.WorldToBody(impactWorld)
	if !circleEdge.Contains(circleBody, impactInCircle) {
		return nil, false
	}
	crossing, ok := rigidbody.SegmentIntersection(pb, oldPb, straightEdgeStart(straightBody, straightEdge), straightEdgeEnd(straightBody, straightEdge))
	impact := crossing
	if !ok {
		impact = pb
	}
	rec := &Record{
		Kind:        KindEdgeEdge,
		PrimaryBody: straightBody, PrimaryEdge: straightEdge,
		NormalBody: circleBody, NormalEdge: circleEdge,
		Impact1: straightBody.BodyToWorld(impact),
		Normal:  straightBody.RotateBodyToWorld(n.Neg()),
		Distance: d,
		Radius1:  math.Inf(1),
		Radius2:  r,
		BallNormal: true,
		DetectedTime: t, UpdateTime: t,
		Creator: "CircleStraight",
	}
	rec.refreshBase()
	return rec, true
}

// projectOntoLine projects p onto the infinite line through p1, p2,
// with no clipping to the segment span.
func projectOntoLine(p1, p2, p math2d.Vector) math2d.Vector {
	d := p2.Sub(p1)
	length2 := d.LengthSqr()
	if length2 < math2d.Epsilon {
		return p1
	}
	t := p.Sub(p1).Dot(d) / length2
	return p1.Add(d.Scale(t))
}

func straightEdgeStart(poly *rigidbody.Polygon, e *rigidbody.StraightEdge) math2d.Vector {
	return poly.VertexPoint(e.StartVertex())
}

func straightEdgeEnd(poly *rigidbody.Polygon, e *rigidbody.StraightEdge) math2d.Vector {
	return poly.VertexPoint(e.EndVertex())
}

// CircleCircle implements §4.4's two-circular-edge static routine.
func CircleCircle(bodyA *rigidbody.Polygon, edgeA *rigidbody.CircularEdge, bodyB *rigidbody.Polygon, edgeB *rigidbody.CircularEdge, distTol float64, t time.Time) (*Record, bool) {
	convexA, convexB := edgeA.OutsideUp(), edgeB.OutsideUp()

	switch {
	case !convexA && !convexB:
		return nil, false

	case convexA && convexB:
		centerAWorld := bodyA.BodyToWorld(edgeA.Center())
		centerBWorld := bodyB.BodyToWorld(edgeB.Center())
		centerAInA := edgeA.Center()
		centerBInA := bodyA.WorldToBody(centerBWorld)
		centerAInB := bodyB.WorldToBody(centerAWorld)
		if !edgeA.Contains(bodyA, centerBInA) || !edgeB.Contains(bodyB, centerAInB) {
			return nil, false
		}
		length := centerAInA.DistanceTo(centerBInA)
		d := length - (edgeA.Radius() + edgeB.Radius())
		maxDepth := arcDepth(edgeA)
		if arcDepth(edgeB) > maxDepth {
			maxDepth = arcDepth(edgeB)
		}
		if d > 0 {
			if d > distTol {
				return nil, false
			}
			return buildCircleCircleRecord(bodyA, edgeA, bodyB, edgeB, centerAWorld, centerBWorld, d, true, t), true
		}
		if -d > maxDepth {
			return nil, false
		}
		return buildCircleCircleRecord(bodyA, edgeA, bodyB, edgeB, centerAWorld, centerBWorld, d, false, t), true

	default:
		// One concave, one convex.
		concaveBody, concaveEdge, convexBody, convexEdge := bodyA, edgeA, bodyB, edgeB
		if convexA {
			concaveBody, concaveEdge, convexBody, convexEdge = bodyB, edgeB, bodyA, edgeA
		}
		if concaveEdge.Radius() >= 0 || -concaveEdge.Radius() <= convexEdge.Radius() {
			return nil, false
		}
		convexCenterWorld := convexBody.BodyToWorld(convexEdge.Center())
		concaveCenterWorld := concaveBody.BodyToWorld(concaveEdge.Center())
		convexCenterInConcave := concaveBody.WorldToBody(convexCenterWorld)
		concaveCenterInConvex := convexBody.WorldToBody(concaveCenterWorld)
		if !concaveEdge.Contains(concaveBody, convexCenterInConcave) {
			return nil, false
		}
		if !convexEdge.Contains(convexBody, concaveCenterInConvex) {
			return nil, false
		}
		length := convexCenterWorld.DistanceTo(concaveCenterWorld)
		d := (-concaveEdge.Radius()) - convexEdge.Radius() - length
		maxDepth := arcDepth(convexEdge)
		if d > 0 {
			if d > distTol {
				return nil, false
			}
			return buildCircleCircleRecord(convexBody, convexEdge, concaveBody, concaveEdge, convexCenterWorld, concaveCenterWorld, d, true, t), true
		}
		if -d > maxDepth {
			return nil, false
		}
		return buildCircleCircleRecord(convexBody, convexEdge, concaveBody, concaveEdge, convexCenterWorld, concaveCenterWorld, d, false, t), true
	}
}

// arcDepth returns r*(1 - cos(alpha/2)) for the edge's full arc angle
// alpha, used to bound how deep a CircleCircle penetration may be before
// being rejected as a false positive (§4.4's max_depth).
func arcDepth(e *rigidbody.CircularEdge) float64 {
	alpha := e.AngleHigh() - e.AngleLow()
	r := math.Abs(e.Radius())
	return r * (1 - math.Cos(alpha/2))
}

func buildCircleCircleRecord(bodyA *rigidbody.Polygon, edgeA *rigidbody.CircularEdge, bodyB *rigidbody.Polygon, edgeB *rigidbody.CircularEdge, centerAWorld, centerBWorld math2d.Vector, d float64, isContact bool, t time.Time) *Record {
	dir := centerBWorld.Sub(centerAWorld)
	if dir.AeqZ() {
		dir = math2d.New(1, 0)
	}
	// Away from B: outward from a convex B, toward a concave B's center.
	normal := dir.Normalize()
	if edgeB.OutsideUp() {
		normal = normal.Neg()
	}
	impact := centerAWorld.Sub(normal.Scale(edgeA.Radius()))

	gap := d
	if !isContact {
		gap = 0
	}
	half := gap / 2

	rec := &Record{
		Kind:        KindEdgeEdge,
		PrimaryBody: bodyA, PrimaryEdge: edgeA,
		NormalBody: bodyB, NormalEdge: edgeB,
		Impact1: impact,
		Normal:  normal,
		Distance: d,
		Radius1:  edgeA.Radius() + half,
		Radius2:  edgeB.Radius() + half,
		BallObject: true, BallNormal: true,
		DetectedTime: t, UpdateTime: t,
		Creator: "CircleCircle",
	}
	rec.refreshBase()
	return rec
}

// ImproveAccuracyEdge delegates an EdgeEdge record's refresh to the
// appropriate static routine, per §4.5's "EdgeEdge: delegate to
// improve_accuracy_edge of the primary edge against the normal edge."
func ImproveAccuracyEdge(r *Record, t time.Time) error {
	primaryCircular, primaryIsCircular := r.PrimaryEdge.(*rigidbody.CircularEdge)
	normalCircular, normalIsCircular := r.NormalEdge.(*rigidbody.CircularEdge)

	var rec *Record
	var ok bool
	var swapped bool
	switch {
	case primaryIsCircular && normalIsCircular:
		rec, ok = CircleCircle(r.PrimaryBody, primaryCircular, r.NormalBody, normalCircular, math.Inf(1), t)
	case primaryIsCircular:
		// CircleStraight expects (straightBody, straightEdge, circleBody,
		// circleEdge): the normal/primary roles are reversed relative to
		// r, so the result's fields are swapped back below.
		normalStraight := r.NormalEdge.(*rigidbody.StraightEdge)
		rec, ok = CircleStraight(r.NormalBody, normalStraight, r.PrimaryBody, primaryCircular, math.Inf(1), t)
		swapped = true
	case normalIsCircular:
		primaryStraight := r.PrimaryEdge.(*rigidbody.StraightEdge)
		rec, ok = CircleStraight(r.PrimaryBody, primaryStraight, r.NormalBody, normalCircular, math.Inf(1), t)
	default:
		return ErrNumericalFailure
	}
	if !ok || rec == nil {
		return ErrNumericalFailure
	}
	r.Impact1 = rec.Impact1
	r.Distance = rec.Distance
	if swapped {
		r.Normal = rec.Normal.Neg()
		r.Radius1 = rec.Radius2
		r.Radius2 = rec.Radius1
		r.BallObject = rec.BallNormal
		r.BallNormal = rec.BallObject
	} else {
		r.Normal = rec.Normal
		r.Radius1 = rec.Radius1
		r.Radius2 = rec.Radius2
		r.BallObject = rec.BallObject
		r.BallNormal = rec.BallNormal
	}
	return nil
}
