// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package solver

import (
	"log"
	"math"
	"time"

	"github.com/myphysicslab/myphysicslab-sub011/collision"
)

// Mode selects the collision-handling strategy, with the exact
// identifiers §6 specifies.
type Mode int

const (
	SIMULTANEOUS Mode = iota
	HYBRID
	SERIAL_GROUPED
	SERIAL_GROUPED_LASTPASS
	SERIAL_SEPARATE
	SERIAL_SEPARATE_LASTPASS
)

func (m Mode) String() string {
	switch m {
	case SIMULTANEOUS:
		return "SIMULTANEOUS"
	case HYBRID:
		return "HYBRID"
	case SERIAL_GROUPED:
		return "SERIAL_GROUPED"
	case SERIAL_GROUPED_LASTPASS:
		return "SERIAL_GROUPED_LASTPASS"
	case SERIAL_SEPARATE:
		return "SERIAL_SEPARATE"
	case SERIAL_SEPARATE_LASTPASS:
		return "SERIAL_SEPARATE_LASTPASS"
	default:
		return "Unknown"
	}
}

// ErrStallDetected signals the serial solver ricocheted beyond its
// iteration budget (§7).
type ErrStallDetected struct{ Iterations int }

func (e *ErrStallDetected) Error() string {
	return "solver: stall detected after too many serial iterations"
}

// ImpulseSolver applies impulses to a list of collision records so that
// post-impulse normal velocities satisfy each contact's restitution
// target (§4.6).
type ImpulseSolver struct {
	Mode             Mode
	ZeroTolerance    float64
	MaxSerialRounds  int
	RNG              *RNG
}

// NewImpulseSolver returns a solver in the given mode with the default
// zero tolerance and a deterministic RNG for serial-mode tie breaking.
func NewImpulseSolver(mode Mode) *ImpulseSolver {
	return &ImpulseSolver{
		Mode:            mode,
		ZeroTolerance:   ZeroTolerance,
		MaxSerialRounds: 200,
		RNG:             NewRNG(1),
	}
}

// Solve applies impulses to records in place, per the configured mode.
// The serial modes re-run each pending record's UpdateCollision after
// every focus round (t is the round's timestamp) so ricochets are
// re-detected from the bodies' post-impulse velocities.
func (s *ImpulseSolver) Solve(records []*collision.Record, velocityTol float64, t time.Time) error {
	switch s.Mode {
	case SIMULTANEOUS:
		return s.solveSimultaneous(records, velocityTol, false)
	case HYBRID:
		for _, group := range partition(records) {
			if err := s.solveSimultaneous(group, velocityTol, false); err != nil {
				return err
			}
		}
		return nil
	case SERIAL_GROUPED, SERIAL_GROUPED_LASTPASS:
		return s.solveSerial(records, velocityTol, true, s.Mode == SERIAL_GROUPED_LASTPASS, t)
	case SERIAL_SEPARATE, SERIAL_SEPARATE_LASTPASS:
		return s.solveSerial(records, velocityTol, false, s.Mode == SERIAL_SEPARATE_LASTPASS, t)
	default:
		log.Printf("solver: unknown mode %v, should never happen", s.Mode)
		return s.solveSimultaneous(records, velocityTol, false)
	}
}

// solveSimultaneous builds and solves the k*k system of §4.6 for the
// given set of records, applying the resulting impulses. forceZeroE
// overrides every non-joint target restitution to zero, for the
// last-pass drift-removal solve.
func (s *ImpulseSolver) solveSimultaneous(records []*collision.Record, velocityTol float64, forceZeroE bool) error {
	k := len(records)
	if k == 0 {
		return nil
	}

	a := make([][]float64, k)
	for i := range a {
		a[i] = make([]float64, k)
	}
	b := make([]float64, k)

	for i, ri := range records {
		for j, rj := range records {
			a[i][j] = influenceCoefficient(ri, rj)
		}
		e := elasticity(ri)
		if forceZeroE {
			e = 0
		}
		if ri.IsJoint {
			b[i] = -ri.NormalVelocity
		} else {
			b[i] = -(1 + e) * ri.NormalVelocity
		}
	}

	x, err := SolveLinearSystem(a, b, s.ZeroTolerance)
	if err != nil {
		return err
	}

	for i, r := range records {
		applyImpulse(r, x[i])
	}
	return nil
}

// influenceCoefficient computes A[i][j] per §4.6's definition: the
// change in normal velocity at contact i per unit impulse at j.
func influenceCoefficient(ri, rj *collision.Record) float64 {
	var coeff float64
	if ri.PrimaryBody == rj.PrimaryBody && !ri.PrimaryBody.IsFixed() {
		coeff += ri.Normal.Dot(rj.Normal) * ri.PrimaryBody.InvMass()
		coeff += (ri.R1.Cross(ri.Normal)) * (rj.R1.Cross(rj.Normal)) * ri.PrimaryBody.InvInertia()
	}
	if ri.NormalBody == rj.NormalBody && !ri.NormalBody.IsFixed() {
		coeff += ri.Normal.Dot(rj.Normal) * ri.NormalBody.InvMass()
		coeff += (ri.R2.Cross(ri.Normal)) * (rj.R2.Cross(rj.Normal)) * ri.NormalBody.InvInertia()
	}
	if ri.PrimaryBody == rj.NormalBody && !ri.PrimaryBody.IsFixed() {
		coeff -= ri.Normal.Dot(rj.Normal) * ri.PrimaryBody.InvMass()
		coeff -= (ri.R1.Cross(ri.Normal)) * (rj.R2.Cross(rj.Normal)) * ri.PrimaryBody.InvInertia()
	}
	if ri.NormalBody == rj.PrimaryBody && !ri.NormalBody.IsFixed() {
		coeff -= ri.Normal.Dot(rj.Normal) * ri.NormalBody.InvMass()
		coeff -= (ri.R2.Cross(ri.Normal)) * (rj.R1.Cross(rj.Normal)) * ri.NormalBody.InvInertia()
	}
	return coeff
}

func elasticity(r *collision.Record) float64 {
	if r.IsJoint {
		return 0
	}
	e := r.PrimaryBody.Elasticity()
	if r.NormalBody.Elasticity() < e {
		e = r.NormalBody.Elasticity()
	}
	return e
}

// applyImpulse applies impulse magnitude x along r's normal to both
// bodies: dv = x*n/m, domega = x*(r x n)/I.
func applyImpulse(r *collision.Record, x float64) {
	if !r.PrimaryBody.IsFixed() {
		dv := r.Normal.Scale(x * r.PrimaryBody.InvMass())
		r.PrimaryBody.SetLinearVelocity(r.PrimaryBody.LinearVelocity().Add(dv))
		dw := x * r.R1.Cross(r.Normal) * r.PrimaryBody.InvInertia()
		r.PrimaryBody.SetAngularVelocity(r.PrimaryBody.AngularVelocity() + dw)
	}
	if !r.NormalBody.IsFixed() {
		dv := r.Normal.Scale(-x * r.NormalBody.InvMass())
		r.NormalBody.SetLinearVelocity(r.NormalBody.LinearVelocity().Add(dv))
		dw := -x * r.R2.Cross(r.Normal) * r.NormalBody.InvInertia()
		r.NormalBody.SetAngularVelocity(r.NormalBody.AngularVelocity() + dw)
	}
}

// solveSerial implements the four serial variants of §4.6: repeatedly
// pick a random focus collision among those still approaching, handle
// it (and, for grouped variants, joints connected to its two bodies,
// simultaneously), re-detect every pending record's normal velocity
// from the bodies' new post-impulse state, and loop until every
// collision has either been handled or has |v| close to zero. Without
// this re-detection a just-solved record keeps its stale approaching
// velocity and is re-selected forever, and a joint's r.IsJoint clause
// never drops out of `approaching` in the first place. Last-pass
// variants finish with a zero-elasticity simultaneous solve over any
// still-resting contacts.
func (s *ImpulseSolver) solveSerial(records []*collision.Record, velocityTol float64, grouped, lastPass bool, t time.Time) error {
	pending := make([]*collision.Record, len(records))
	copy(pending, records)

	for round := 0; round < s.MaxSerialRounds; round++ {
		var approaching []*collision.Record
		for _, r := range pending {
			if r.IsJoint {
				if math.Abs(r.NormalVelocity) > velocityTol {
					approaching = append(approaching, r)
				}
			} else if r.NormalVelocity < -velocityTol {
				approaching = append(approaching, r)
			}
		}
		if len(approaching) == 0 {
			if lastPass {
				return s.solveSimultaneous(pending, velocityTol, true)
			}
			return nil
		}

		focus := approaching[s.RNG.Intn(len(approaching))]
		group := []*collision.Record{focus}
		if grouped {
			group = append(group, connectedJoints(pending, focus)...)
		}
		if err := s.solveSimultaneous(group, velocityTol, false); err != nil {
			return err
		}

		for _, r := range pending {
			if err := r.UpdateCollision(t); err != nil {
				return err
			}
		}
	}
	return &ErrStallDetected{Iterations: s.MaxSerialRounds}
}

// connectedJoints returns every joint record in pending sharing a body
// with focus, used by the Grouped serial variants.
func connectedJoints(pending []*collision.Record, focus *collision.Record) []*collision.Record {
	var out []*collision.Record
	for _, r := range pending {
		if r == focus || !r.IsJoint {
			continue
		}
		if r.PrimaryBody == focus.PrimaryBody || r.PrimaryBody == focus.NormalBody ||
			r.NormalBody == focus.PrimaryBody || r.NormalBody == focus.NormalBody {
			out = append(out, r)
		}
	}
	return out
}

