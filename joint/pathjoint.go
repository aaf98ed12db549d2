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

// Path is the external collaborator a PathJoint or PathEndPoint
// attaches to: a parameterized curve in world coordinates, owned
// outside this package (e.g. a scenario's fixed track or a moving
// conveyor).
type Path interface {
	// ClosestParameter does a local search for the path parameter whose
	// position is nearest p, starting from guess (the previous step's
	// parameter) rather than scanning the whole domain.
	ClosestParameter(p math2d.Vector, guess float64) float64
	// PointAt returns the path's world position and unit tangent at
	// parameter s.
	PointAt(s float64) (pos, tangent math2d.Vector)
	// Velocity returns the path's own world-coordinate velocity at s,
	// the zero vector for a stationary path.
	Velocity(s float64) math2d.Vector
	// Limits returns the path's valid parameter domain.
	Limits() (min, max float64)
}

// pathAnchor stands in for "the path" on the solver's two-body side: an
// infinite-mass body with identity pose, so the impulse solver's
// existing PrimaryBody/NormalBody machinery (which always needs two
// Polygons) applies unchanged, and impulses are never applied to it.
var pathAnchor = func() *rigidbody.Polygon {
	p := rigidbody.NewPolygon("path")
	p.SetMass(math.Inf(1), math.Inf(1))
	return p
}()

// PathJoint anchors a body attachment point to a Path (§4.7). Param
// caches the previous step's path parameter as the seed for the next
// local search.
type PathJoint struct {
	Body   *rigidbody.Polygon
	Attach math2d.Vector // body-local attachment point
	Path   Path
	Param  float64
}

// NewPathJoint returns a PathJoint starting its local search from
// initialParam.
func NewPathJoint(body *rigidbody.Polygon, attach math2d.Vector, path Path, initialParam float64) *PathJoint {
	return &PathJoint{Body: body, Attach: attach, Path: path, Param: initialParam}
}

// NewRecord returns a fresh KindConnector Record wired to this path
// joint. Radius2 is NaN: §4.7's signal to use the normal's time
// derivative rather than a radius of curvature.
func (j *PathJoint) NewRecord() *collision.Record {
	return &collision.Record{
		Kind:        collision.KindConnector,
		PrimaryBody: j.Body,
		NormalBody:  pathAnchor,
		IsJoint:     true,
		Radius1:     math.Inf(1),
		Radius2:     math.NaN(),
		Connector:   j,
	}
}

// UpdateConnector projects the current attachment point onto the
// nearest path parameter (local search from Param), then sets impact1
// (body attachment), impact2 (path point), normal (path normal), and
// the normal velocity including the path's own motion and the rotation
// of its normal as the parameter's nearest point slides (§4.7).
func (j *PathJoint) UpdateConnector(r *collision.Record, t time.Time) error {
	pBody := j.Body.BodyToWorld(j.Attach)

	s := j.Path.ClosestParameter(pBody, j.Param)
	j.Param = s

	pathPos, tangent := j.Path.PointAt(s)
	if !tangent.IsFinite() || tangent.AeqZ() {
		return collision.ErrNumericalFailure
	}
	tangent = tangent.Normalize()
	normal := tangent.Rotate90()
	pathVel := j.Path.Velocity(s)

	r.Impact1 = pBody
	r.Impact2 = pathPos
	r.Normal = normal
	r.Distance = normal.Dot(pBody.Sub(pathPos))
	r.BallObject = false
	r.BallNormal = false
	r.Radius1 = math.Inf(1)
	r.Radius2 = math.NaN()

	if !j.Body.IsFixed() {
		r.R1 = pBody.Sub(j.Body.Position())
	}

	vBody := j.Body.GetVelocity(pBody)
	// normal-time-derivative = tangent x path-velocity (§4.7): the rate
	// the tangent (and so the normal, its 90-degree rotation) turns as
	// the nearest point slides along a curving path.
	nRate := tangent.Cross(pathVel)
	nDot := math2d.CrossScalar(nRate, normal)
	r.NormalVelocity = normal.Dot(vBody.Sub(pathVel)) + nDot.Dot(pBody.Sub(pathPos))
	return nil
}
