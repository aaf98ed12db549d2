// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package collision

import "errors"

// ErrInvalidGeometry signals circular edge endpoints that are not
// equidistant from their center, or a zero-length segment used as a
// normal direction. Construction fails; the caller cannot proceed.
var ErrInvalidGeometry = errors.New("collision: invalid geometry")

// ErrNumericalFailure signals a non-finite distance, a zero-vector
// normalization, or a NaN that would otherwise enter the impulse
// matrix. The current collision record is aborted; the step continues.
var ErrNumericalFailure = errors.New("collision: numerical failure")
