// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package sim

import (
	"time"

	"github.com/myphysicslab/myphysicslab-sub011/collision"
	"github.com/myphysicslab/myphysicslab-sub011/joint"
	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

// ForceLaw computes an additional force/torque on one body (a spring, a
// user drag force) as a function of the current trial vars (§4.8:
// "any force laws attached to bodies"). bodyIndex is the body's index
// in ImpulseSim's own body list, not a vars offset.
type ForceLaw interface {
	Force(vars []float64, bodyIndex int) (fx, fy, torque float64)
}

// ImpulseSim owns the bodies, connectors, global forces, and collision-
// handling mode selector (§4.8): the rest of the core's ODE interface.
type ImpulseSim struct {
	broadcaster

	Config  Config
	Gravity float64 // directed along -y
	Damping float64 // viscous damping coefficient, force = -damping*v

	bodies     []*rigidbody.Polygon
	connectors []joint.Connector
	forceLaws  []ForceLaw

	vars *VarsList
}

// NewImpulseSim returns an empty simulation with the given
// configuration and zero gravity/damping; callers set Gravity/Damping
// directly and add bodies with AddBody.
func NewImpulseSim(cfg Config) *ImpulseSim {
	return &ImpulseSim{Config: cfg, vars: NewVarsList(0)}
}

// Bodies returns the simulation's bodies, in the order added.
func (s *ImpulseSim) Bodies() []*rigidbody.Polygon { return s.bodies }

// Connectors returns the simulation's joints and path connectors.
func (s *ImpulseSim) Connectors() []joint.Connector { return s.connectors }

// Vars returns the simulation's live VarsList.
func (s *ImpulseSim) Vars() *VarsList { return s.vars }

// AddBody appends b, propagates the simulation's tolerances to it
// (§4.2: "ImpulseSim owns the canonical values and propagates them to
// all bodies"), rebuilds the vars list to match, and broadcasts
// OBJECT_ADDED.
func (s *ImpulseSim) AddBody(b *rigidbody.Polygon) {
	b.SetTolerances(s.Config.DistTol, s.Config.VelocityTol, s.Config.Accuracy)
	s.bodies = append(s.bodies, b)
	s.rebuildVars()
	s.emit(Event{Type: ObjectAdded, Body: b.Name})
}

// RemoveBody drops the named body, rebuilds the vars list, and
// broadcasts OBJECT_REMOVED. It is a no-op if no body has that name.
func (s *ImpulseSim) RemoveBody(name string) {
	for i, b := range s.bodies {
		if b.Name == name {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			s.rebuildVars()
			s.emit(Event{Type: ObjectRemoved, Body: name})
			return
		}
	}
}

// AddConnector appends a joint, path joint, or path end point to the
// simulation's connector list.
func (s *ImpulseSim) AddConnector(c joint.Connector) {
	s.connectors = append(s.connectors, c)
}

// AddForceLaw registers an additional force/torque contributor.
func (s *ImpulseSim) AddForceLaw(f ForceLaw) {
	s.forceLaws = append(s.forceLaws, f)
}

// rebuildVars resizes the vars list for the current body count and
// resyncs it from the bodies' current poses and velocities, preserving
// the time variable.
func (s *ImpulseSim) rebuildVars() {
	t := s.vars.Time()
	s.vars = NewVarsList(len(s.bodies))
	s.vars.SetTime(t)
	s.pullVars()
}

// PullVars writes the bodies' current pose/velocity into vars,
// discontinuously: callers invoke this after mutating body state
// outside the ODE's own continuous writes (e.g. a solver applying
// impulses), so the next integration step starts from the resulting
// velocities rather than stale vars.
func (s *ImpulseSim) PullVars() {
	s.pullVars()
}

// pullVars is PullVars' unexported implementation, also used by
// rebuildVars right after a body is added or removed.
func (s *ImpulseSim) pullVars() {
	for i, b := range s.bodies {
		o := BodyIndex(i)
		p, v := b.Position(), b.LinearVelocity()
		s.vars.SetDiscontinuous(o+0, p.X)
		s.vars.SetDiscontinuous(o+1, v.X)
		s.vars.SetDiscontinuous(o+2, p.Y)
		s.vars.SetDiscontinuous(o+3, v.Y)
		s.vars.SetDiscontinuous(o+4, b.Angle())
		s.vars.SetDiscontinuous(o+5, b.AngularVelocity())
	}
}

// ModifyObjects propagates the vars list into body poses and
// velocities (§4.8): called after the ODE integrator has advanced vars,
// to bring body state back in sync before collision detection.
func (s *ImpulseSim) ModifyObjects() {
	for i, b := range s.bodies {
		if b.IsFixed() {
			continue
		}
		o := BodyIndex(i)
		b.SetPose(rigidbody.Pose{
			Position: math2d.New(s.vars.Get(o+0), s.vars.Get(o+2)),
			Angle:    s.vars.Get(o + 4),
		})
		b.SetLinearVelocity(math2d.New(s.vars.Get(o+1), s.vars.Get(o+3)))
		b.SetAngularVelocity(s.vars.Get(o + 5))
	}
}

// Evaluate writes time derivatives into change for the trial state
// vars, per §4.8's fixed layout. It is the function handed to the ODE
// integrator collaborator (§6); it must not mutate anything but change.
func (s *ImpulseSim) Evaluate(vars, change []float64, dt float64) error {
	for i, b := range s.bodies {
		o := BodyIndex(i)
		if b.IsFixed() {
			for k := 0; k < 6; k++ {
				change[o+k] = 0
			}
			continue
		}

		vx, vy, omega := vars[o+1], vars[o+3], vars[o+5]
		fx, fy, torque := -s.Damping*vx, -s.Damping*vy, -s.Damping*omega
		for _, law := range s.forceLaws {
			lfx, lfy, lt := law.Force(vars, i)
			fx += lfx
			fy += lfy
			torque += lt
		}

		invMass, invInertia := b.InvMass(), b.InvInertia()
		change[o+0] = vx
		change[o+1] = fx * invMass
		change[o+2] = vy
		change[o+3] = fy*invMass - s.Gravity + s.Config.ExtraAccel
		change[o+4] = omega
		change[o+5] = torque * invInertia
	}
	change[s.vars.TimeIndex()] = 1
	return nil
}

// TotalEnergy returns kinetic plus gravitational potential energy
// summed over every non-fixed body, used by the square-on-floor and
// pendulum end-to-end tests (§8 scenarios 1 and 4).
func (s *ImpulseSim) TotalEnergy() float64 {
	var e float64
	for _, b := range s.bodies {
		if b.IsFixed() {
			continue
		}
		e += b.GetKineticEnergy() + b.Mass()*s.Gravity*b.Position().Y
	}
	return e
}

// ScanConnectors runs every connector's Scan and returns the non-nil
// results, for the detector's "for every connector" step (§4.3 step 5).
func (s *ImpulseSim) ScanConnectors(t time.Time) []*collision.Record {
	var out []*collision.Record
	for _, c := range s.connectors {
		if r := c.Scan(t); r != nil {
			out = append(out, r)
		}
	}
	return out
}
