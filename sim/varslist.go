// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package sim implements ImpulseSim, the ODE-interface simulation that
// owns bodies, connectors, and global forces (§4.8). CollisionAdvance,
// the event-driven time-stepping driver (§4.9), lives in package advance.
package sim

// VarsList is a contiguous, indexed vector of scalar state variables
// plus a time value, with a per-entry sequence number that increments
// whenever a variable is written discontinuously (an impulse, a reset)
// rather than smoothly integrated (§3, §4.8). The layout is 6 scalars
// per body (x, vx, y, vy, theta, omega) followed by one time variable,
// per §4.8's evaluate layout.
type VarsList struct {
	values    []float64
	seq       []int64
	timeIndex int
}

// NewVarsList returns a VarsList sized for numBodies rigid bodies plus
// the trailing time variable.
func NewVarsList(numBodies int) *VarsList {
	n := numBodies*6 + 1
	return &VarsList{
		values:    make([]float64, n),
		seq:       make([]int64, n),
		timeIndex: n - 1,
	}
}

// Len returns the total number of scalar variables, including time.
func (vl *VarsList) Len() int { return len(vl.values) }

// TimeIndex returns the index of the time variable.
func (vl *VarsList) TimeIndex() int { return vl.timeIndex }

// BodyIndex returns the starting index of body i's six variables.
func BodyIndex(i int) int { return 6 * i }

// Get returns the value at index i.
func (vl *VarsList) Get(i int) float64 { return vl.values[i] }

// Seq returns the sequence number at index i.
func (vl *VarsList) Seq(i int) int64 { return vl.seq[i] }

// SetContinuous writes v at index i without bumping the sequence
// number: used by the ODE integrator, whose writes are smooth by
// construction.
func (vl *VarsList) SetContinuous(i int, v float64) { vl.values[i] = v }

// SetDiscontinuous writes v at index i and bumps the sequence number:
// used whenever a value jumps (an impulse changing a velocity, a
// position reset), so observers can detect the discontinuity.
func (vl *VarsList) SetDiscontinuous(i int, v float64) {
	vl.values[i] = v
	vl.seq[i]++
}

// Time returns the current time variable's value.
func (vl *VarsList) Time() float64 { return vl.values[vl.timeIndex] }

// SetTime sets the time variable continuously (time never jumps).
func (vl *VarsList) SetTime(t float64) { vl.SetContinuous(vl.timeIndex, t) }

// Values returns the full backing slice of values; callers must not
// retain it past the next mutating call.
func (vl *VarsList) Values() []float64 { return vl.values }

// Clone returns a deep copy, used by save_state.
func (vl *VarsList) Clone() *VarsList {
	out := &VarsList{
		values:    make([]float64, len(vl.values)),
		seq:       make([]int64, len(vl.seq)),
		timeIndex: vl.timeIndex,
	}
	copy(out.values, vl.values)
	copy(out.seq, vl.seq)
	return out
}

// Restore overwrites vl's values and sequence numbers from snapshot,
// used by restore_state; snapshot must be the same length as vl.
func (vl *VarsList) Restore(snapshot *VarsList) {
	copy(vl.values, snapshot.values)
	copy(vl.seq, snapshot.seq)
}
