// SPDX-License-Identifier: MIT

package logm

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/logm/cmatrix"
	"github.com/katalvlaran/logm/schur"
)

// LogSchur computes log(M) through the real Schur form M = Q·T·Qᵀ.
// Implementation:
//   - Stage 1: schur.Decompose(M, SchurTol, SchurMaxIter). On failure the
//     result of LogScalingSquaring(M) is returned instead.
//   - Stage 2: logT = LogQuasiTriangular(T).
//   - Stage 3: log(M) = Q·logT·Qᴴ.
//
// Behavior highlights:
//   - Accurate and cheap for orthogonal (normal) inputs, where T is block
//     diagonal up to rounding. For general matrices the off-diagonal part of
//     logT is only a first-order approximation.
//
// Errors:
//   - cmatrix.ErrNilMatrix, cmatrix.ErrNonSquare, cmatrix.ErrInvalidDimensions.
//     Decomposition failure is not an error.
func LogSchur(m mat.Matrix) (*cmatrix.CDense, error) {
	return run{obs: Nop}.logSchur(m)
}

func (r run) logSchur(m mat.Matrix) (*cmatrix.CDense, error) {
	rs, err := r.decompose(m, "LogSchur")
	if err != nil {
		return nil, err
	}
	if rs == nil {
		return r.logScaling(m)
	}

	logT, err := LogQuasiTriangular(rs.T)
	if err != nil {
		return nil, fmt.Errorf("LogSchur: %w", err)
	}
	q, err := cmatrix.FromReal(rs.Q)
	if err != nil {
		return nil, fmt.Errorf("LogSchur: %w", err)
	}

	return similarity(q, logT, "LogSchur")
}

// LogSchurDiagonal computes log(M) through the complex Schur form M = U·S·Uᴴ,
// treating S as diagonal: log(S) = diag(Log sᵢᵢ) with the principal branch.
//
// Exact only when M is normal. If any off-diagonal |S(i,j)| exceeds
// OffDiagonalWarnTol an EventNonOrthogonal is reported and the result is
// still returned. Decomposition failure falls back to LogScalingSquaring.
func LogSchurDiagonal(m mat.Matrix) (*cmatrix.CDense, error) {
	return run{obs: Nop}.logSchurDiagonal(m)
}

func (r run) logSchurDiagonal(m mat.Matrix) (*cmatrix.CDense, error) {
	rs, err := r.decompose(m, "LogSchurDiagonal")
	if err != nil {
		return nil, err
	}
	if rs == nil {
		return r.logScaling(m)
	}
	cs, err := rs.Complex()
	if err != nil {
		return nil, fmt.Errorf("LogSchurDiagonal: %w", err)
	}

	n := cs.T.Dim()
	logS, err := cmatrix.NewCDense(n)
	if err != nil {
		return nil, fmt.Errorf("LogSchurDiagonal: %w", err)
	}
	var (
		i, j   int
		v      complex128
		maxOff float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v, _ = cs.T.At(i, j)
			if i != j {
				maxOff = math.Max(maxOff, cmplx.Abs(v))
				continue
			}
			if v == 0 {
				v = complex(LogZeroSubstitute, 0)
			} else {
				v = cmplx.Log(v)
			}
			_ = logS.Set(i, i, v)
		}
	}
	if maxOff > OffDiagonalWarnTol {
		r.emit(EventNonOrthogonal, n, maxOff,
			fmt.Sprintf("Schur factor off-diagonal %.3g exceeds %g; input is not orthogonal", maxOff, OffDiagonalWarnTol))
	}

	return similarity(cs.Q, logS, "LogSchurDiagonal")
}

// decompose validates m and runs the real Schur decomposition. A nil result
// with a nil error means the caller must fall back to LogScalingSquaring.
func (r run) decompose(m mat.Matrix, op string) (*schur.Real, error) {
	n, err := cmatrix.ValidateSquareReal(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", op, cmatrix.ErrInvalidDimensions)
	}
	rs, err := schur.Decompose(m, SchurTol, SchurMaxIter)
	if err != nil {
		r.emit(EventSchurFallback, n, 0,
			fmt.Sprintf("Schur decomposition failed (%v), falling back to scaling and squaring", err))
		return nil, nil
	}

	return rs, nil
}

// LogQuasiTriangular computes log(T) for a real quasi-upper-triangular T.
// Implementation:
//   - Stage 1: Walk the diagonal. |T(i+1,i)| > BlockTol starts a 2×2 block
//     [[a,b],[c,d]] with discriminant Δ = (a+d)² − 4(ad − bc):
//     Δ < 0 gives the rotation-scaling form [[ln r, −θ],[θ, ln r]] of the pair
//     r·e^{±iθ}; Δ ≥ 0 puts log λ₁, log λ₂ on the diagonal.
//     A 1×1 block holds log λ.
//   - Stage 2: Each remaining off-diagonal entry with both endpoints outside
//     2×2 blocks becomes T(i,j) / (logT(i,i) − logT(j,j)). Entries with
//     |T(i,j)| ≤ 1e-12 or |logT(i,i) − logT(j,j)| ≤ DividedDiffTol stay zero.
//
// Behavior highlights:
//   - log λ for real λ: ln λ (λ > 0), ln|λ| + iπ (λ < 0), LogZeroSubstitute (λ = 0).
//   - Stage 2 is a first-order approximation, not the Parlett recurrence. It is
//     adequate when T is nearly block diagonal.
//
// Complexity: O(n²).
func LogQuasiTriangular(t mat.Matrix) (*cmatrix.CDense, error) {
	n, err := cmatrix.ValidateSquareReal(t)
	if err != nil {
		return nil, fmt.Errorf("LogQuasiTriangular: %w", err)
	}
	logT, err := cmatrix.NewCDense(n)
	if err != nil {
		return nil, fmt.Errorf("LogQuasiTriangular: %w", err)
	}

	inBlock := make([]bool, n)
	var (
		a, b, c, d           float64
		tr, det, disc        float64
		re, im, lr, th, root float64
	)
	for i := 0; i < n; {
		if i+1 < n && math.Abs(t.At(i+1, i)) > BlockTol {
			a, b = t.At(i, i), t.At(i, i+1)
			c, d = t.At(i+1, i), t.At(i+1, i+1)
			tr = a + d
			det = a*d - b*c
			disc = tr*tr - 4*det
			if disc < 0 {
				re, im = tr/2, math.Sqrt(-disc)/2
				lr = math.Log(math.Hypot(re, im))
				th = math.Atan2(im, re)
				_ = logT.Set(i, i, complex(lr, 0))
				_ = logT.Set(i, i+1, complex(-th, 0))
				_ = logT.Set(i+1, i, complex(th, 0))
				_ = logT.Set(i+1, i+1, complex(lr, 0))
			} else {
				root = math.Sqrt(disc)
				_ = logT.Set(i, i, logReal((tr+root)/2))
				_ = logT.Set(i+1, i+1, logReal((tr-root)/2))
			}
			inBlock[i], inBlock[i+1] = true, true
			i += 2
			continue
		}
		_ = logT.Set(i, i, logReal(t.At(i, i)))
		i++
	}

	var (
		row, col   int
		tv         float64
		lrow, lcol complex128
		denom      complex128
	)
	for col = 1; col < n; col++ {
		for row = 0; row < col; row++ {
			if inBlock[row] || inBlock[col] {
				continue
			}
			tv = t.At(row, col)
			if math.Abs(tv) <= offDiagonalZero {
				continue
			}
			lrow, _ = logT.At(row, row)
			lcol, _ = logT.At(col, col)
			denom = lrow - lcol
			if cmplx.Abs(denom) <= DividedDiffTol {
				continue
			}
			_ = logT.Set(row, col, complex(tv, 0)/denom)
		}
	}

	return logT, nil
}

// logReal is the principal logarithm of a real scalar with the λ = 0 substitute.
func logReal(lambda float64) complex128 {
	switch {
	case lambda > 0:
		return complex(math.Log(lambda), 0)
	case lambda < 0:
		return complex(math.Log(-lambda), math.Pi)
	default:
		return complex(LogZeroSubstitute, 0)
	}
}

// similarity returns Q·X·Qᴴ.
func similarity(q, x *cmatrix.CDense, op string) (*cmatrix.CDense, error) {
	qx, err := cmatrix.Mul(q, x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	qh, err := cmatrix.ConjTranspose(q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out, err := cmatrix.Mul(qx, qh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
