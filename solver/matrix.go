// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package solver applies impulses to rigid body collisions so that
// post-impulse normal velocities satisfy each contact's restitution or
// joint constraint (§4.6).
package solver

import (
	"errors"
	"fmt"
	"math"
)

// ErrSingularMatrix signals that Gaussian elimination could not find a
// solution because b lies outside A's column space: the solve cannot
// proceed without a fallback policy chosen by the caller (§7).
var ErrSingularMatrix = errors.New("solver: singular matrix")

// ZeroTolerance is the default threshold below which a pivot or a
// residual is treated as zero (§6's Gaussian elimination zero
// tolerance).
const ZeroTolerance = 1e-10

// SingularMatrixError reports which row of a rank-deficient system had a
// nonzero residual against the zero column it reduced to, i.e. the row
// for which b is demonstrably outside the column space.
type SingularMatrixError struct {
	Row       int
	Residual  float64
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("solver: row %d has residual %g; b not in column space", e.Row, e.Residual)
}

func (e *SingularMatrixError) Unwrap() error { return ErrSingularMatrix }

// SolveLinearSystem solves A x = b via Gaussian elimination with scaled
// partial pivoting (§4.6/§6). A is n*n, row-major; b has length n. The
// matrix is permitted to be rank-deficient provided b lies in the
// column space: free variables in a singular system are assigned zero
// by back substitution rather than failing immediately, but a nonzero
// residual against an all-zero reduced row is reported as
// ErrSingularMatrix via SingularMatrixError identifying the offending
// row.
func SolveLinearSystem(a [][]float64, b []float64, zeroTol float64) ([]float64, error) {
	n := len(b)
	if n == 0 {
		return nil, nil
	}
	if zeroTol <= 0 {
		zeroTol = ZeroTolerance
	}

	// Work on a copy; augmented with b as the last column.
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	scale := make([]float64, n)
	for i := 0; i < n; i++ {
		maxAbs := 0.0
		for j := 0; j < n; j++ {
			if v := math.Abs(m[i][j]); v > maxAbs {
				maxAbs = v
			}
		}
		scale[i] = maxAbs
	}

	rowOrder := make([]int, n)
	for i := range rowOrder {
		rowOrder[i] = i
	}

	for col := 0; col < n; col++ {
		// Scaled partial pivot: choose the remaining row with the
		// largest |pivot|/scale ratio.
		best, bestRatio := -1, -1.0
		for k := col; k < n; k++ {
			r := rowOrder[k]
			if scale[r] < zeroTol {
				continue
			}
			ratio := math.Abs(m[r][col]) / scale[r]
			if ratio > bestRatio {
				best, bestRatio = k, ratio
			}
		}
		if best < 0 || bestRatio < zeroTol {
			// This column is free: every remaining row has a
			// negligible coefficient here. Treat x[col] = 0 and move
			// on; a nonzero residual will surface in verification
			// below if b is not actually in the column space.
			continue
		}
		rowOrder[col], rowOrder[best] = rowOrder[best], rowOrder[col]

		pivotRow := rowOrder[col]
		pivot := m[pivotRow][col]
		for k := col + 1; k < n; k++ {
			r := rowOrder[k]
			factor := m[r][col] / pivot
			if factor == 0 {
				continue
			}
			for j := col; j <= n; j++ {
				m[r][j] -= factor * m[pivotRow][j]
			}
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		r := rowOrder[i]
		// Find the pivot column actually used for this row (the first
		// column from i onward with a nonzero coefficient).
		pivotCol := -1
		for j := i; j < n; j++ {
			if math.Abs(m[r][j]) >= zeroTol {
				pivotCol = j
				break
			}
		}
		if pivotCol < 0 {
			// Entire row reduced to zero coefficients; residual must
			// also be zero or b is outside the column space.
			if math.Abs(m[r][n]) > zeroTol {
				return nil, &SingularMatrixError{Row: r, Residual: m[r][n]}
			}
			continue
		}
		sum := m[r][n]
		for j := pivotCol + 1; j < n; j++ {
			sum -= m[r][j] * x[j]
		}
		x[pivotCol] = sum / m[r][pivotCol]
	}
	return x, nil
}
