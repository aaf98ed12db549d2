// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package joint

import (
	"log/slog"
	"time"

	"github.com/myphysicslab/myphysicslab-sub011/collision"
)

// Connector is the uniform scan entry point the detector and ImpulseSim
// use for every joint/path connector (§4.3 step 5: "for every connector
// ... call add_collision"). Joint and PathJoint return a record except
// on a step where their geometry is degenerate; PathEndPoint returns nil
// except on the step its path parameter crosses its limit.
type Connector interface {
	Scan(t time.Time) *collision.Record
}

// Scan returns this joint's current collision record, or nil if its
// geometry is degenerate this step (logged and dropped per §7: "the
// detector is expected to silently drop degenerate vertex/edge pairs").
func (j *Joint) Scan(t time.Time) *collision.Record {
	r := j.NewRecord()
	if err := r.UpdateCollision(t); err != nil {
		slog.Debug("joint: dropping degenerate record", "error", err)
		return nil
	}
	return r
}

// Scan returns this path joint's current collision record, dropping it
// on numerical failure exactly as Joint.Scan does.
func (j *PathJoint) Scan(t time.Time) *collision.Record {
	r := j.NewRecord()
	if err := r.UpdateCollision(t); err != nil {
		slog.Debug("path joint: dropping degenerate record", "error", err)
		return nil
	}
	return r
}

// Scan reports a crossing, if the attachment point's path parameter
// crossed Limit since the body's last saved old copy; nil otherwise.
func (j *PathEndPoint) Scan(t time.Time) *collision.Record {
	return j.Detect(t)
}
