// SPDX-License-Identifier: MIT
// Package cmatrix provides universal operations on CDense matrices,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, conjugate transpose, scaling and inversion. All functions
// perform strict fail-fast validation and return clear errors on misuse.
//
// Notes:
//   - Every kernel allocates a fresh result; operands are never mutated.
//   - Errors are wrapped via matrixErrorf so errors.Is keeps matching the sentinels.

package cmatrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroPivot is the sentinel magnitude for detecting a singular pivot column.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd           = "Add"
	opSub           = "Sub"
	opMul           = "Mul"
	opScale         = "Scale"
	opTranspose     = "Transpose"
	opConjTranspose = "ConjTranspose"
	opInverse       = "Inverse"
	opSubIdentity   = "SubIdentity"
	opAddIdentity   = "AddIdentity"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Internal helper for Add/Sub to share validation and allocation.
//
// Determinism:
//   - Single flat slice walk 0..(n*n−1).
//
// Complexity:
//   - Time O(n²), Space O(n²) for the new result.
func addSub(a, b *CDense, sign complex128, opTag string) (*CDense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewCDense(a.n)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx := range res.data {
		res.data[idx] = a.data[idx] + sign*b.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
func Add(a, b *CDense) (*CDense, error) { return addSub(a, b, 1, opAdd) }

// Sub computes the element-wise difference C = A - B.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
func Sub(a, b *CDense) (*CDense, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and equal dimensions.
//   - Stage 2: i→k→j over row-major strides, skipping zero A[i,k].
//
// Behavior highlights:
//   - Deterministic triple loop; no temporary tiles; one allocation for C.
//
// Complexity:
//   - Time O(n³), Space O(n²). Skipping zero A[i,k] helps on block-diagonal Schur factors.
func Mul(a, b *CDense) (*CDense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	n := a.n
	res, err := NewCDense(n)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k    int
		av         complex128
		rowA, rowB int
	)
	for i = 0; i < n; i++ {
		rowA = i * n
		for k = 0; k < n; k++ {
			av = a.data[rowA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowB = k * n
			for j = 0; j < n; j++ {
				res.data[rowA+j] += av * b.data[rowB+j]
			}
		}
	}

	return res, nil
}

// Scale returns alpha·M.
// alpha = 0 yields an explicit zero matrix with the same shape.
// Complexity: O(n²).
func Scale(m *CDense, alpha complex128) (*CDense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewCDense(m.n)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range m.data {
		res.data[idx] = v * alpha
	}

	return res, nil
}

// Transpose returns Mᵀ (no conjugation).
func Transpose(m *CDense) (*CDense, error) {
	return transpose(m, false, opTranspose)
}

// ConjTranspose returns the Hermitian adjoint Mᴴ.
// For the unitary factor of a Schur decomposition, Mᴴ is also its inverse.
func ConjTranspose(m *CDense) (*CDense, error) {
	return transpose(m, true, opConjTranspose)
}

func transpose(m *CDense, conj bool, opTag string) (*CDense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	n := m.n
	res, err := NewCDense(n)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	var i, j int
	var v complex128
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v = m.data[i*n+j]
			if conj {
				v = cmplx.Conj(v)
			}
			res.data[j*n+i] = v
		}
	}

	return res, nil
}

// shiftIdentity returns M + alpha·I.
func shiftIdentity(m *CDense, alpha complex128, opTag string) (*CDense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res := m.Clone()
	for i := 0; i < m.n; i++ {
		res.data[i*m.n+i] += alpha
	}

	return res, nil
}

// SubIdentity returns M − I.
func SubIdentity(m *CDense) (*CDense, error) { return shiftIdentity(m, -1, opSubIdentity) }

// AddIdentity returns M + I.
func AddIdentity(m *CDense) (*CDense, error) { return shiftIdentity(m, 1, opAddIdentity) }

// FrobeniusNorm returns sqrt(Σ|m_ij|²). A nil matrix has norm 0.
// Complexity: O(n²).
func FrobeniusNorm(m *CDense) float64 {
	if m == nil {
		return NormZero
	}
	sum := NormZero
	for _, v := range m.data {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}

	return math.Sqrt(sum)
}

// Inverse computes M⁻¹ by Gauss–Jordan elimination with partial pivoting.
// Implementation:
//   - Stage 1: ValidateNotNil(m). Build working copy W = M and result R = I.
//   - Stage 2: For each column k pick the row p ≥ k maximizing |W[p,k]|, swap rows
//     p↔k in W and R, normalize row k, and eliminate column k from every other row.
//
// Behavior highlights:
//   - Deterministic pivot choice (first maximum in row order).
//   - Input m is read-only.
//
// Errors:
//   - ErrNilMatrix (nil input).
//   - ErrSingular  when the best pivot in a column has magnitude ZeroPivot.
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// Notes:
//   - Callers that treat the inverse as optional (Denman–Beavers) check
//     errors.Is(err, ErrSingular) and degrade instead of failing.
func Inverse(m *CDense) (*CDense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := m.n
	w := m.Clone()
	res, err := NewIdentity(n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		i, j, k, p    int
		best, mag     float64
		pivot, factor complex128
		rowK, rowI    int
	)
	for k = 0; k < n; k++ {
		// pivot search
		p, best = k, ZeroPivot
		for i = k; i < n; i++ {
			mag = cmplx.Abs(w.data[i*n+k])
			if mag > best {
				p, best = i, mag
			}
		}
		if best == ZeroPivot {
			return nil, matrixErrorf(opInverse, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			swapRows(w, p, k)
			swapRows(res, p, k)
		}

		// normalize pivot row
		rowK = k * n
		pivot = w.data[rowK+k]
		for j = 0; j < n; j++ {
			w.data[rowK+j] /= pivot
			res.data[rowK+j] /= pivot
		}

		// eliminate column k elsewhere
		for i = 0; i < n; i++ {
			if i == k {
				continue
			}
			rowI = i * n
			factor = w.data[rowI+k]
			if factor == 0 {
				continue
			}
			for j = 0; j < n; j++ {
				w.data[rowI+j] -= factor * w.data[rowK+j]
				res.data[rowI+j] -= factor * res.data[rowK+j]
			}
		}
	}

	return res, nil
}

func swapRows(m *CDense, a, b int) {
	n := m.n
	for j := 0; j < n; j++ {
		m.data[a*n+j], m.data[b*n+j] = m.data[b*n+j], m.data[a*n+j]
	}
}
