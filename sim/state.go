// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package sim

import "github.com/myphysicslab/myphysicslab-sub011/rigidbody"

// StateSnapshot is what SaveState/RestoreState copy atomically (§4.8):
// the vars list plus each body's "old coords" pose.
type StateSnapshot struct {
	vars     *VarsList
	oldPoses []*rigidbody.Pose
}

// SaveState snapshots the current vars and, for every body, its pose as
// the new "old coords" (used by continuous collision detection on the
// next integration attempt).
func (s *ImpulseSim) SaveState() *StateSnapshot {
	oldPoses := make([]*rigidbody.Pose, len(s.bodies))
	for i, b := range s.bodies {
		b.SaveOldCopy()
		oldPoses[i] = b.GetOldCopy()
	}
	return &StateSnapshot{vars: s.vars.Clone(), oldPoses: oldPoses}
}

// RestoreState rewinds vars and every body's old-coords snapshot to
// snap, then calls ModifyObjects to push the restored vars back onto
// the bodies (used by CollisionAdvance's bisection loop to back up
// time and re-integrate a shorter step).
func (s *ImpulseSim) RestoreState(snap *StateSnapshot) {
	s.vars.Restore(snap.vars)
	s.ModifyObjects()
	for i, b := range s.bodies {
		if i < len(snap.oldPoses) {
			b.SetOldCopy(snap.oldPoses[i])
		}
	}
}
