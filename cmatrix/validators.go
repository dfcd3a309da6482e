// SPDX-License-Identifier: MIT
// Package: cmatrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating nil/shape/length/finiteness checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.

package cmatrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *CDense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil and have equal dimensions.
// Complexity: O(1).
func ValidateSameShape(a, b *CDense) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateSameShape", ErrNilMatrix)
	}
	if a.n != b.n {
		return validatorErrorf("ValidateSameShape", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquareReal ensures a gonum matrix is non-nil and square, returning n.
// Complexity: O(1).
func ValidateSquareReal(a mat.Matrix) (int, error) {
	if a == nil {
		return 0, validatorErrorf("ValidateSquareReal", ErrNilMatrix)
	}
	r, c := a.Dims()
	if r != c {
		return 0, validatorErrorf("ValidateSquareReal", fmt.Errorf("%dx%d: %w", r, c, ErrNonSquare))
	}

	return r, nil
}

// ValidateFlatLen checks that a flat array encodes an n×n matrix with `stride`
// float64 values per entry (1 for real, 2 for interleaved complex).
//
// Errors:
//   - ErrInvalidDimensions when n <= 0.
//   - ErrDimensionMismatch when len(data) != stride*n*n; the message names both lengths.
//
// Complexity: O(1).
func ValidateFlatLen(data []float64, n, stride int) error {
	if n <= 0 {
		return validatorErrorf("ValidateFlatLen", fmt.Errorf("n=%d: %w", n, ErrInvalidDimensions))
	}
	if want := stride * n * n; len(data) != want {
		return validatorErrorf("ValidateFlatLen",
			fmt.Errorf("len %d, want %d for n=%d: %w", len(data), want, n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf values.
// Complexity: O(len(data)).
func ValidateFinite(data []float64) error {
	for idx, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf("ValidateFinite", fmt.Errorf("index %d: %w", idx, ErrNaNInf))
		}
	}

	return nil
}
