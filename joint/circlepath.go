// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package joint

import (
	"math"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
)

// CirclePath is a fixed circular Path centered at Center with the given
// Radius, parameterized by angle in radians: the track a PathJoint
// pendulum swings along (§4.7, §8 scenario 4).
type CirclePath struct {
	Center math2d.Vector
	Radius float64
}

// ClosestParameter returns the angle of p around Center, unwrapped to
// the 2*pi branch nearest guess so a PathJoint's local search stays
// continuous across the +-pi seam.
func (c CirclePath) ClosestParameter(p math2d.Vector, guess float64) float64 {
	d := p.Sub(c.Center)
	theta := math.Atan2(d.Y, d.X)
	for theta-guess > math.Pi {
		theta -= 2 * math.Pi
	}
	for theta-guess < -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

// PointAt returns the point at angle s on the circle and its unit
// tangent in the direction of increasing angle.
func (c CirclePath) PointAt(s float64) (pos, tangent math2d.Vector) {
	cosS, sinS := math.Cos(s), math.Sin(s)
	pos = c.Center.Add(math2d.New(c.Radius*cosS, c.Radius*sinS))
	tangent = math2d.New(-sinS, cosS)
	return pos, tangent
}

// Velocity is always zero: CirclePath never moves.
func (c CirclePath) Velocity(s float64) math2d.Vector { return math2d.Origin }

// Limits returns an unbounded domain: the pendulum may swing through
// any number of full revolutions.
func (c CirclePath) Limits() (min, max float64) { return math.Inf(-1), math.Inf(1) }
