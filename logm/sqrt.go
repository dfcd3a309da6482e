// SPDX-License-Identifier: MIT

package logm

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/logm/cmatrix"
)

// SqrtDenmanBeavers returns a square root Y of m with Y·Y ≈ m.
// Implementation:
//   - Stage 1: Y₀ = M, Z₀ = I.
//   - Stage 2: Yₖ₊₁ = ½(Yₖ + Zₖ⁻¹), Zₖ₊₁ = ½(Zₖ + Yₖ⁻¹) for at most SqrtMaxIter steps,
//     stopping once ‖Yₖ₊₁ − Yₖ‖_F < SqrtTol.
//
// Behavior highlights:
//   - If Yₖ or Zₖ is singular the iteration is abandoned and a copy of m is
//     returned with a nil error. Callers that need a true root must check the
//     residual ‖Y·Y − M‖_F themselves.
//
// Errors:
//   - ErrNilMatrix only; numerical trouble never surfaces as an error.
//
// Complexity:
//   - Time O(SqrtMaxIter·n³), Space O(n²).
func SqrtDenmanBeavers(m *cmatrix.CDense) (*cmatrix.CDense, error) {
	return run{obs: Nop}.sqrt(m)
}

func (r run) sqrt(m *cmatrix.CDense) (*cmatrix.CDense, error) {
	if err := cmatrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("SqrtDenmanBeavers: %w", err)
	}
	y := m.Clone()
	z, err := cmatrix.NewIdentity(m.Dim())
	if err != nil {
		return nil, fmt.Errorf("SqrtDenmanBeavers: %w", err)
	}

	var yInv, zInv, yNext, zNext, diff *cmatrix.CDense
	for k := 0; k < SqrtMaxIter; k++ {
		yInv, err = cmatrix.Inverse(y)
		if err == nil {
			zInv, err = cmatrix.Inverse(z)
		}
		if errors.Is(err, cmatrix.ErrSingular) {
			r.emit(EventSingularSqrt, m.Dim(), float64(k),
				fmt.Sprintf("singular iterate at step %d, returning input unchanged", k))
			return m.Clone(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("SqrtDenmanBeavers: %w", err)
		}

		if yNext, err = average(y, zInv); err != nil {
			return nil, fmt.Errorf("SqrtDenmanBeavers: %w", err)
		}
		if zNext, err = average(z, yInv); err != nil {
			return nil, fmt.Errorf("SqrtDenmanBeavers: %w", err)
		}
		if diff, err = cmatrix.Sub(yNext, y); err != nil {
			return nil, fmt.Errorf("SqrtDenmanBeavers: %w", err)
		}
		y, z = yNext, zNext
		if cmatrix.FrobeniusNorm(diff) < SqrtTol {
			break
		}
	}

	return y, nil
}

// average returns ½(a + b).
func average(a, b *cmatrix.CDense) (*cmatrix.CDense, error) {
	sum, err := cmatrix.Add(a, b)
	if err != nil {
		return nil, err
	}

	return cmatrix.Scale(sum, 0.5)
}
