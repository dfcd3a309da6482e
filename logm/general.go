// SPDX-License-Identifier: MIT

package logm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/logm/cmatrix"
)

// LogScalingSquaring computes log(M) by inverse scaling and squaring.
// Implementation:
//   - Stage 1: Lift M to the complex domain as A.
//   - Stage 2: While ‖A − I‖_F ≥ ScalingTarget and fewer than ScalingMaxSteps
//     roots were taken, replace A by its Denman–Beavers square root (k++).
//   - Stage 3: L₀ = LogNearIdentity(A); return L₀·2ᵏ.
//
// Behavior highlights:
//   - General purpose: no eigenvalue structure is assumed, only a convergent
//     square-root chain. Inputs with eigenvalues on the closed negative real
//     axis get no guarantee.
//
// Errors:
//   - cmatrix.ErrNilMatrix, cmatrix.ErrNonSquare, cmatrix.ErrInvalidDimensions.
//
// Complexity:
//   - Time O((k·SqrtMaxIter + SeriesMaxTerms)·n³), Space O(n²).
func LogScalingSquaring(m mat.Matrix) (*cmatrix.CDense, error) {
	return run{obs: Nop}.logScaling(m)
}

func (r run) logScaling(m mat.Matrix) (*cmatrix.CDense, error) {
	if _, err := cmatrix.ValidateSquareReal(m); err != nil {
		return nil, fmt.Errorf("LogScalingSquaring: %w", err)
	}
	a, err := cmatrix.FromReal(m)
	if err != nil {
		return nil, fmt.Errorf("LogScalingSquaring: %w", err)
	}

	var (
		k    int
		dist float64
		off  *cmatrix.CDense
	)
	for {
		if off, err = cmatrix.SubIdentity(a); err != nil {
			return nil, fmt.Errorf("LogScalingSquaring: %w", err)
		}
		dist = cmatrix.FrobeniusNorm(off)
		if dist < ScalingTarget || k >= ScalingMaxSteps {
			break
		}
		if a, err = r.sqrt(a); err != nil {
			return nil, fmt.Errorf("LogScalingSquaring: step %d: %w", k, err)
		}
		k++
	}
	if dist >= ScalingTarget {
		r.emit(EventSqrtCapReached, a.Dim(), dist,
			fmt.Sprintf("‖A − I‖_F = %.3g after %d square roots", dist, k))
	}

	l0, err := LogNearIdentity(a)
	if err != nil {
		return nil, fmt.Errorf("LogScalingSquaring: %w", err)
	}
	l, err := cmatrix.Scale(l0, complex(math.Ldexp(1, k), 0))
	if err != nil {
		return nil, fmt.Errorf("LogScalingSquaring: %w", err)
	}

	return l, nil
}
