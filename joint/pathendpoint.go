// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package joint

import (
	"math"
	"time"

	"github.com/myphysicslab/myphysicslab-sub011/collision"
	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

// PathEndPoint creates a unilateral collision when a body attachment
// point's nearest path parameter crosses Limit: an invisible stop at
// one end of a track. It only fires on the inside-to-outside crossing
// between the body's old and current snapshot (§4.7); re-detecting it
// every step like a Joint would instead produce a bilateral constraint.
type PathEndPoint struct {
	Body   *rigidbody.Polygon
	Attach math2d.Vector
	Path   Path

	Limit        float64
	LimitIsUpper bool // true: valid range is param <= Limit; false: param >= Limit

	Param float64 // last known parameter, local-search seed
}

// NewPathEndPoint returns a PathEndPoint watching for a crossing of
// limit, starting its local search from initialParam.
func NewPathEndPoint(body *rigidbody.Polygon, attach math2d.Vector, path Path, limit float64, limitIsUpper bool, initialParam float64) *PathEndPoint {
	return &PathEndPoint{Body: body, Attach: attach, Path: path, Limit: limit, LimitIsUpper: limitIsUpper, Param: initialParam}
}

func (j *PathEndPoint) inside(param float64) bool {
	if j.LimitIsUpper {
		return param <= j.Limit
	}
	return param >= j.Limit
}

// Detect reports whether the attachment point crossed the limit since
// the body's last saved old copy, returning a populated KindConnector
// record when it did, nil otherwise. Detect always advances Param to
// the current parameter, whether or not a crossing fired.
func (j *PathEndPoint) Detect(t time.Time) *collision.Record {
	oldPose := j.Body.GetOldCopy()
	current := j.Body.BodyToWorld(j.Attach)
	currentParam := j.Path.ClosestParameter(current, j.Param)

	if oldPose == nil {
		j.Param = currentParam
		return nil
	}

	oldWorld := oldPose.Transform().Transform(j.Attach)
	oldParam := j.Path.ClosestParameter(oldWorld, j.Param)
	j.Param = currentParam

	if !(j.inside(oldParam) && !j.inside(currentParam)) {
		return nil
	}

	r := &collision.Record{
		Kind:        collision.KindConnector,
		PrimaryBody: j.Body,
		NormalBody:  pathAnchor,
		IsJoint:     false,
		Radius1:     math.Inf(1),
		Radius2:     math.NaN(),
		Connector:   j,
	}
	if err := j.UpdateConnector(r, t); err != nil {
		return nil
	}
	return r
}

// UpdateConnector refreshes the stop's geometric fields: distance is
// positive while still inside the limit, crossing zero (and then
// negative) as the attachment point runs past it.
func (j *PathEndPoint) UpdateConnector(r *collision.Record, t time.Time) error {
	pBody := j.Body.BodyToWorld(j.Attach)
	s := j.Path.ClosestParameter(pBody, j.Param)
	j.Param = s

	pathPos, rawTangent := j.Path.PointAt(s)
	if !rawTangent.IsFinite() || rawTangent.AeqZ() {
		return collision.ErrNumericalFailure
	}
	rawTangent = rawTangent.Normalize()

	// Normal is the gradient of Distance with respect to the attachment
	// point's world position: Distance = Limit - s for an upper limit
	// (valid while s <= Limit, so Distance falls as s rises along
	// rawTangent), Distance = s - Limit for a lower one.
	normal := rawTangent
	if j.LimitIsUpper {
		normal = rawTangent.Neg()
	}

	r.Impact1 = pBody
	r.Impact2 = pathPos
	r.Normal = normal
	if j.LimitIsUpper {
		r.Distance = j.Limit - s
	} else {
		r.Distance = s - j.Limit
	}
	r.BallObject = false
	r.BallNormal = false
	r.Radius1 = math.Inf(1)
	r.Radius2 = math.NaN()

	if !j.Body.IsFixed() {
		r.R1 = pBody.Sub(j.Body.Position())
	}

	vBody := j.Body.GetVelocity(pBody)
	r.NormalVelocity = normal.Dot(vBody)
	return nil
}
