// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package rigidbody

import (
	"math"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
)

// AABB is an axis-aligned bounding box in world coordinates.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyAABB returns a degenerate box that Expand will grow from.
func EmptyAABB() AABB {
	return AABB{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// Expand grows the box to include p.
func (b AABB) Expand(p math2d.Vector) AABB {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
	return b
}

// Swell returns the box expanded uniformly by margin on every side. This is
// the "swellage" of §4.3: broad-phase bounding boxes are inflated by
// max(dist_tol, k*velocity) before the quick-reject test.
func (b AABB) Swell(margin float64) AABB {
	return AABB{MinX: b.MinX - margin, MinY: b.MinY - margin, MaxX: b.MaxX + margin, MaxY: b.MaxY + margin}
}

// Overlaps reports whether b and o intersect.
func (b AABB) Overlaps(o AABB) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}
