// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package advance implements CollisionAdvance, the event-driven time
// stepping driver that brackets the instant of collision via bisection
// and hands accepted contacts to the impulse solver (§4.9).
package advance

import (
	"time"

	"github.com/google/uuid"

	"github.com/myphysicslab/myphysicslab-sub011/collision"
	"github.com/myphysicslab/myphysicslab-sub011/sim"
	"github.com/myphysicslab/myphysicslab-sub011/solver"
)

// Integrator advances vars by dt using evaluate as the derivative
// function (§6's ODE integrator collaborator contract). A fixed-step
// RK4 implementation lives in the integrator package; CollisionAdvance
// depends only on this narrow interface so it never imports a
// particular integration scheme.
type Integrator interface {
	Step(vars []float64, dt float64, evaluate func(vars, change []float64, dt float64) error) error
}

// StepReport summarizes one call to Step, for structured run
// diagnostics: how deep bisection went, how many collisions were
// handled, which solver mode ran, and the run's correlation id.
type StepReport struct {
	RunID             uuid.UUID
	BisectionDepth    int
	CollisionsHandled int
	SolverMode        solver.Mode
}

// CollisionAdvance owns the simulation, detector, solver, and
// integrator, and drives time forward one requested step at a time.
type CollisionAdvance struct {
	Sim        *sim.ImpulseSim
	Detector   *collision.Detector
	Solver     *solver.ImpulseSolver
	Integrator Integrator

	// MaxBisectionDepth bounds the event-bracketing binary search (§4.9
	// step 5); MaxEventBudget bounds how many bisect-then-solve rounds
	// one Step may take before reporting stall (§4.9 step 8).
	MaxBisectionDepth int
	MaxEventBudget    int

	RunID uuid.UUID
}

// NewCollisionAdvance returns a driver wired to sim, using detector and
// solver for the detect and solve stages and integrator to advance the
// ODE, with the documented default bisection depth and event budget.
func NewCollisionAdvance(s *sim.ImpulseSim, detector *collision.Detector, solv *solver.ImpulseSolver, integ Integrator) *CollisionAdvance {
	return &CollisionAdvance{
		Sim:               s,
		Detector:          detector,
		Solver:            solv,
		Integrator:        integ,
		MaxBisectionDepth: 10,
		MaxEventBudget:    20,
		RunID:             uuid.New(),
	}
}

// classified is the output of one integrate-detect-classify attempt
// (§4.9 steps 2-4).
type classified struct {
	handled []*collision.Record
	pending []*collision.Record
}

// Step advances the simulation by up to dtRequest, bracketing any
// collision found partway through via bisection and applying impulses,
// per §4.9's state machine. It returns a report of the work done, or an
// error if bisection or the event budget is exhausted; on error the
// simulation is left at the last fully-accepted snapshot.
func (a *CollisionAdvance) Step(dtRequest float64) (*StepReport, error) {
	report := &StepReport{RunID: a.RunID, SolverMode: a.Solver.Mode}
	dtRemaining := dtRequest

	for event := 0; dtRemaining > 0; event++ {
		if event >= a.MaxEventBudget {
			return report, &ErrStallDetected{Budget: a.MaxEventBudget}
		}

		snapshot := a.Sim.SaveState() // §4.9 step 1
		dt := dtRemaining

		class, depth, err := a.bracket(snapshot, dt)
		if depth > report.BisectionDepth {
			report.BisectionDepth = depth
		}
		if err != nil {
			a.Sim.RestoreState(snapshot)
			return report, err
		}

		all := append(append([]*collision.Record{}, class.handled...), class.pending...)
		if len(all) > 0 {
			t := a.Sim.Vars().Time()
			if err := a.Solver.Solve(all, a.Sim.Config.VelocityTol, timeFromSeconds(t)); err != nil {
				a.Sim.RestoreState(snapshot)
				return report, err
			}
			// The solver mutates body velocities directly (applyImpulse);
			// pull them back into vars so the next bracket's RestoreState/
			// ModifyObjects round-trip doesn't overwrite the post-impulse
			// bounce with the stale pre-impulse snapshot.
			a.Sim.PullVars()
			report.CollisionsHandled += len(all)
		}

		dtRemaining -= dt
	}
	return report, nil
}

// bracket implements §4.9 steps 2-5: integrate the full interval, and if
// any pending (approaching, out-of-band) collisions result, restore and
// retry with half the interval, up to MaxBisectionDepth. It returns the
// accepted classification and how many bisection halvings were used.
func (a *CollisionAdvance) bracket(snapshot *sim.StateSnapshot, dt float64) (*classified, int, error) {
	for depth := 0; depth <= a.MaxBisectionDepth; depth++ {
		a.Sim.RestoreState(snapshot)

		if err := a.integrate(dt); err != nil {
			return nil, depth, err
		}
		a.Sim.ModifyObjects()

		class := a.detectAndClassify()
		if len(class.pending) == 0 {
			return class, depth, nil
		}
		if depth == a.MaxBisectionDepth {
			if anyBelowAccuracyFloor(class.pending, a.Sim.Config.Accuracy, a.Sim.Config.DistTol) {
				// §4.9 step 5's documented default: apply impulses anyway
				// rather than report failure, matching observed source
				// behavior for this known trade-off.
				return class, depth, nil
			}
			return nil, depth, &ErrBisectionExhausted{Depth: depth}
		}
		dt /= 2
	}
	return nil, a.MaxBisectionDepth, &ErrBisectionExhausted{Depth: a.MaxBisectionDepth}
}

// integrate runs the ODE integrator for dt over the simulation's vars.
func (a *CollisionAdvance) integrate(dt float64) error {
	vars := a.Sim.Vars().Values()
	return a.Integrator.Step(vars, dt, a.Sim.Evaluate)
}

// detectAndClassify runs the detector and every connector's scan, calls
// UpdateCollision on each resulting record, and splits them into handled
// (already within the acceptance band) and pending (§4.9 step 4).
func (a *CollisionAdvance) detectAndClassify() *classified {
	t := timeFromSeconds(a.Sim.Vars().Time())
	records := a.Detector.Detect(a.Sim.Bodies(), t)
	records = append(records, a.Sim.ScanConnectors(t)...)

	class := &classified{}
	distTol, accuracy := a.Sim.Config.DistTol, a.Sim.Config.Accuracy
	for _, r := range records {
		if r.IsJoint {
			if withinJointTolerance(r, distTol) {
				class.handled = append(class.handled, r)
			} else {
				class.pending = append(class.pending, r)
			}
			continue
		}
		lo := accuracy * distTol
		if r.Distance >= lo && r.Distance <= distTol {
			class.handled = append(class.handled, r)
		} else if r.Distance < 0 || r.NormalVelocity < 0 {
			class.pending = append(class.pending, r)
		}
	}
	return class
}

func withinJointTolerance(r *collision.Record, distTol float64) bool {
	d := r.Distance
	if d < 0 {
		d = -d
	}
	return d <= distTol
}

// anyBelowAccuracyFloor reports whether any pending record's distance is
// still below the acceptance band's lower bound, the condition §4.9
// step 5 gates its exhausted-bisection default on.
func anyBelowAccuracyFloor(pending []*collision.Record, accuracy, distTol float64) bool {
	floor := accuracy * distTol
	for _, r := range pending {
		if r.Distance < floor {
			return true
		}
	}
	return false
}

// timeFromSeconds converts a vars-list time value (seconds, as a plain
// float64 per §4.8's layout) into the time.Time the collision and joint
// packages key their records on. The Unix epoch plus a duration keeps
// ordering and subtraction well-defined.
func timeFromSeconds(t float64) time.Time {
	return time.Unix(0, 0).Add(time.Duration(t * float64(time.Second)))
}
