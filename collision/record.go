// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package collision detects and classifies candidate contacts between
// rigid bodies: corner/corner, corner/edge, and edge/edge records, plus
// the bilateral ConnectorCollision variant used by joints.
package collision

import (
	"log/slog"
	"math"
	"time"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

// Kind distinguishes the four RigidBodyCollision variants; they differ
// only in how UpdateCollision refreshes their geometric fields.
type Kind int

const (
	KindCornerCorner Kind = iota
	KindCornerEdge
	KindEdgeEdge
	KindConnector
)

func (k Kind) String() string {
	switch k {
	case KindCornerCorner:
		return "CornerCorner"
	case KindCornerEdge:
		return "CornerEdge"
	case KindEdgeEdge:
		return "EdgeEdge"
	case KindConnector:
		return "Connector"
	default:
		return "Unknown"
	}
}

// Record is a RigidBodyCollision: a candidate contact between two
// bodies. PrimaryBody/NormalBody follow the asymmetric naming in §3:
// normal points away from NormalBody.
type Record struct {
	Kind Kind

	PrimaryBody *rigidbody.Polygon
	NormalBody  *rigidbody.Polygon

	// PrimaryVertex/NormalVertex are set for CornerCorner records, in
	// body coordinates of their respective owning bodies.
	PrimaryVertex math2d.Vector
	NormalVertex  math2d.Vector
	HasVertices   bool

	// PrimaryEdge/NormalEdge are set when the corresponding side is an
	// edge rather than a bare vertex (CornerEdge, EdgeEdge).
	PrimaryEdge rigidbody.Edge
	NormalEdge  rigidbody.Edge

	Impact1 math2d.Vector // point of impact, world coordinates
	// Impact2 is the NormalBody-side attachment point, world coordinates.
	// Only meaningful for KindConnector records, whose two attachment
	// points can differ (that's what makes the joint distance nonzero);
	// every other kind has a single shared impact point and leaves this
	// unset (the zero vector).
	Impact2  math2d.Vector
	Normal   math2d.Vector // unit normal, world coordinates, away from NormalBody
	Distance float64       // signed gap: negative = penetration

	R1, R2 math2d.Vector // CM-to-impact vectors, world coordinates
	U1, U2 math2d.Vector // CM-to-curvature-center vectors, world coordinates

	Radius1, Radius2 float64 // curvature radii at contact; +Inf for straight

	BallObject bool // primary side is a curved edge at the contact
	BallNormal bool // normal side is a curved edge at the contact

	IsJoint bool

	NormalVelocity float64 // (v_primary - v_normal) . Normal

	DetectedTime time.Time
	UpdateTime   time.Time
	Creator      string

	// Connector is set for KindConnector records; it owns its own
	// UpdateCollision hook (§4.7).
	Connector Connector
}

// Connector is the narrow interface joints implement so the base Record
// can delegate geometric refresh to them (§4.5's "ConnectorCollision:
// use the connector's own update_collision hook").
type Connector interface {
	UpdateConnector(r *Record, t time.Time) error
}

// IsContact reports whether a record, by the glossary's definition, is
// a contact (small positive gap, small normal velocity) rather than a
// colliding approach.
func (r *Record) IsContact(distTol, velocityTol float64) bool {
	return r.Distance > 0 && r.Distance <= distTol && math.Abs(r.NormalVelocity) < velocityTol
}

// UpdateCollision recomputes every geometric field from current body
// poses, per §4.5. Variant-specific geometry is refreshed first; then,
// for every kind except connectors (which refresh these themselves),
// the base fields (r1, r2, normal velocity, u1, u2) are recomputed.
func (r *Record) UpdateCollision(t time.Time) error {
	var err error
	switch r.Kind {
	case KindCornerCorner:
		err = r.updateCornerCorner()
	case KindCornerEdge:
		err = r.updateCornerEdge()
	case KindEdgeEdge:
		err = r.updateEdgeEdge(t)
	case KindConnector:
		if r.Connector != nil {
			err = r.Connector.UpdateConnector(r, t)
		}
	}
	if err != nil {
		return err
	}
	r.UpdateTime = t
	// Connectors own their full geometric refresh, including r1/r2 and
	// normal velocity, since a joint's two attachment points can move
	// independently and its normal may rotate with a body (ṅ ≠ 0); the
	// generic single-impact-point formula below does not apply.
	if r.Kind != KindConnector {
		r.refreshBase()
	}
	return nil
}

func (r *Record) updateCornerCorner() error {
	worldVertex := r.NormalBody.BodyToWorld(r.NormalVertex)
	r.Impact1 = worldVertex
	diffNormalCoords := r.NormalBody.WorldToBody(r.PrimaryBody.BodyToWorld(r.PrimaryVertex)).Sub(r.NormalVertex)
	dist := diffNormalCoords.Length()
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return ErrNumericalFailure
	}
	r.Distance = dist
	if diffNormalCoords.AeqZ() {
		return ErrNumericalFailure
	}
	dir := r.NormalBody.RotateBodyToWorld(diffNormalCoords.Normalize())
	r.Normal = dir
	r.BallObject = false
	r.BallNormal = false
	r.Radius1 = math.Inf(1)
	r.Radius2 = math.Inf(1)
	return nil
}

func (r *Record) updateCornerEdge() error {
	primaryWorld := r.PrimaryBody.BodyToWorld(r.PrimaryVertex)
	primaryInNormal := r.NormalBody.WorldToBody(primaryWorld)
	point, normal, _ := r.NormalEdge.ProjectPoint(r.NormalBody, primaryInNormal)
	r.Impact1 = r.NormalBody.BodyToWorld(point)
	r.Normal = r.NormalBody.RotateBodyToWorld(normal)
	r.Distance = r.NormalEdge.DistanceToLine(r.NormalBody, primaryInNormal)
	r.BallObject = false
	r.BallNormal = r.NormalEdge.Kind() == rigidbody.KindCircular
	r.Radius1 = math.Inf(1)
	r.Radius2 = r.NormalEdge.Radius()
	return nil
}

func (r *Record) updateEdgeEdge(t time.Time) error {
	return ImproveAccuracyEdge(r, t)
}

// refreshBase recomputes r1, r2, normal velocity, u1, u2, common to
// every variant, after variant-specific fields are current.
func (r *Record) refreshBase() {
	if !r.PrimaryBody.IsFixed() {
		r.R1 = r.Impact1.Sub(r.PrimaryBody.Position())
	}
	if !r.NormalBody.IsFixed() {
		r.R2 = r.Impact1.Sub(r.NormalBody.Position())
	}
	vPrimary := r.PrimaryBody.GetVelocity(r.Impact1)
	vNormal := r.NormalBody.GetVelocity(r.Impact1)
	r.NormalVelocity = vPrimary.Sub(vNormal).Dot(r.Normal)

	if r.BallObject && r.PrimaryEdge != nil {
		if ce, ok := r.PrimaryEdge.(*rigidbody.CircularEdge); ok {
			r.U1 = r.PrimaryBody.BodyToWorld(ce.Center()).Sub(r.PrimaryBody.Position())
		}
	}
	if r.BallNormal && r.NormalEdge != nil {
		if ce, ok := r.NormalEdge.(*rigidbody.CircularEdge); ok {
			r.U2 = r.NormalBody.BodyToWorld(ce.Center()).Sub(r.NormalBody.Position())
		}
	}
}

// Nearness returns the merge-distance threshold used by Similar, a
// function of the smaller radius of curvature at the contact: for two
// convex arcs, `2*min(r1,r2)*sqrt(2*distTol/min(r1,r2))`; a concave side
// dominates (returns +Inf, so any two records against a concave side
// pass the nearness test); two straight edges fall back to distTol.
func Nearness(radius1, radius2, distTol float64) float64 {
	if radius1 < 0 || radius2 < 0 {
		return math.Inf(1)
	}
	r1, r2 := radius1, radius2
	if math.IsInf(r1, 1) && math.IsInf(r2, 1) {
		return distTol
	}
	minR := r1
	if r2 < minR {
		minR = r2
	}
	if math.IsInf(minR, 1) {
		return distTol
	}
	return 2 * minR * math.Sqrt(2*distTol/minR)
}

// Similar reports whether a and b are the source's notion of the same
// contact re-detected: same two bodies, and either sharing a vertex (or,
// for EdgeEdge, both edges), or within Nearness of each other with
// parallel normals (|dot| >= 0.9). Per §5's ordering guarantee, when two
// collisions are similar the later one (b) is kept.
func Similar(a, b *Record, distTol float64) bool {
	samePair := (a.PrimaryBody == b.PrimaryBody && a.NormalBody == b.NormalBody) ||
		(a.PrimaryBody == b.NormalBody && a.NormalBody == b.PrimaryBody)
	if !samePair {
		return false
	}
	if a.Kind == KindCornerCorner && b.Kind == KindCornerCorner && a.HasVertices && b.HasVertices {
		if a.NormalVertex.Aeq(b.NormalVertex) || a.PrimaryVertex.Aeq(b.PrimaryVertex) {
			return true
		}
	}
	if a.Kind == KindEdgeEdge && b.Kind == KindEdgeEdge {
		if a.PrimaryEdge == b.PrimaryEdge && a.NormalEdge == b.NormalEdge {
			return true
		}
	}
	if a.Impact1.DistanceTo(b.Impact1) <= Nearness(a.Radius1, a.Radius2, distTol) {
		if math.Abs(a.Normal.Dot(b.Normal)) >= 0.9 {
			return true
		}
	}
	return false
}

// Dedup collapses each record similar to an already-kept one into a
// single entry, replacing the earlier with the later (per §5, "the later
// one is kept") and logging degenerate/
// merged state at slog.Debug, below Warn, when a merge occurs.
func Dedup(records []*Record, distTol float64) []*Record {
	kept := make([]*Record, 0, len(records))
	for _, r := range records {
		merged := false
		for i, k := range kept {
			if Similar(k, r, distTol) {
				kept[i] = r
				merged = true
				slog.Debug("merged similar collision", "bodies", []string{r.PrimaryBody.Name, r.NormalBody.Name})
				break
			}
		}
		if !merged {
			kept = append(kept, r)
		}
	}
	return kept
}
