// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

import (
	"math"
	"testing"
)

func TestTransformRoundTrip(t *testing.T) {
	tr := NewTransform(math.Pi/6, 2, -3)
	p := New(1.5, -0.25)
	w := tr.Transform(p)
	b := tr.InverseTransform(w)
	if !b.Aeq(p) {
		t.Errorf("round trip failed: got %v want %v", b, p)
	}
}

func TestTransformIdentity(t *testing.T) {
	p := New(4, 5)
	if got := Identity.Transform(p); !got.Eq(p) {
		t.Errorf("identity transform should not change point: got %v want %v", got, p)
	}
}

func TestTransformRotateOnly(t *testing.T) {
	tr := NewTransform(math.Pi/2, 10, 20)
	d := New(1, 0)
	r := tr.Rotate(d)
	if !r.Aeq(New(0, 1)) {
		t.Errorf("Rotate should ignore translation: got %v want (0,1)", r)
	}
	back := tr.InverseRotate(r)
	if !back.Aeq(d) {
		t.Errorf("InverseRotate did not invert Rotate: got %v want %v", back, d)
	}
}

func TestTransformInverseIsInverse(t *testing.T) {
	tr := NewTransform(1.1, 3, 4)
	inv := tr.Inverse()
	p := New(-2, 7)
	if got := inv.Transform(tr.Transform(p)); !got.Aeq(p) {
		t.Errorf("Inverse().Transform(Transform(p)) should equal p: got %v want %v", got, p)
	}
}
