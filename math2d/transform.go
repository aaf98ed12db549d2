// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

import "math"

// AffineTransform is a composable 2x3 planar transform: rotation and
// translation applied as world = R*body + T. It is immutable; every
// operation returns a new AffineTransform.
type AffineTransform struct {
	angle float64 // rotation in radians, counter-clockwise
	sin   float64
	cos   float64
	tx    float64
	ty    float64
}

// Identity is the transform with no rotation or translation.
var Identity = AffineTransform{cos: 1}

// NewTransform returns the transform that rotates by angle radians
// counter-clockwise then translates by (tx, ty).
func NewTransform(angle, tx, ty float64) AffineTransform {
	s, c := math.Sincos(angle)
	return AffineTransform{angle: angle, sin: s, cos: c, tx: tx, ty: ty}
}

// Translation returns a pure-translation transform.
func Translation(t Vector) AffineTransform {
	return AffineTransform{cos: 1, tx: t.X, ty: t.Y}
}

// Rotation returns a pure-rotation transform about the origin.
func Rotation(angle float64) AffineTransform {
	s, c := math.Sincos(angle)
	return AffineTransform{angle: angle, sin: s, cos: c}
}

// Angle returns the rotation component of the transform.
func (t AffineTransform) Angle() float64 { return t.angle }

// Translate returns the translation component of the transform.
func (t AffineTransform) Translate() Vector { return Vector{t.tx, t.ty} }

// Transform applies the transform to a point: rotate then translate.
func (t AffineTransform) Transform(p Vector) Vector {
	return Vector{
		X: t.cos*p.X - t.sin*p.Y + t.tx,
		Y: t.sin*p.X + t.cos*p.Y + t.ty,
	}
}

// Rotate applies only the rotation component of the transform to a
// direction vector, ignoring translation. Used to move velocities and
// normals between body and world coordinates.
func (t AffineTransform) Rotate(d Vector) Vector {
	return Vector{
		X: t.cos*d.X - t.sin*d.Y,
		Y: t.sin*d.X + t.cos*d.Y,
	}
}

// Inverse returns the transform that undoes t.
func (t AffineTransform) Inverse() AffineTransform {
	// Inverse of rotate-then-translate is un-translate-then-un-rotate:
	// p = R*b + T  =>  b = R^-1 * (p - T)
	ix := t.cos*(-t.tx) + t.sin*(-t.ty)
	iy := -t.sin*(-t.tx) + t.cos*(-t.ty)
	return AffineTransform{angle: -t.angle, sin: -t.sin, cos: t.cos, tx: ix, ty: iy}
}

// InverseTransform maps a world point back into the space t transforms
// from (the inverse of Transform).
func (t AffineTransform) InverseTransform(p Vector) Vector {
	dx, dy := p.X-t.tx, p.Y-t.ty
	return Vector{
		X: t.cos*dx + t.sin*dy,
		Y: -t.sin*dx + t.cos*dy,
	}
}

// InverseRotate is the inverse of Rotate.
func (t AffineTransform) InverseRotate(d Vector) Vector {
	return Vector{
		X: t.cos*d.X + t.sin*d.Y,
		Y: -t.sin*d.X + t.cos*d.Y,
	}
}

// Compose returns the transform equivalent to applying t first, then a:
// Compose(a) applied to p == a.Transform(t.Transform(p)).
func (t AffineTransform) Compose(a AffineTransform) AffineTransform {
	loc := a.Transform(Vector{t.tx, t.ty})
	return AffineTransform{
		angle: t.angle + a.angle,
		sin:   math.Sin(t.angle + a.angle),
		cos:   math.Cos(t.angle + a.angle),
		tx:    loc.X,
		ty:    loc.Y,
	}
}
