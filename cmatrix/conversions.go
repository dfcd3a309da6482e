// Package cmatrix provides converters between the flat row-major boundary
// representation and in-memory matrices.
//
// Layout:
//
//	real    : arr[i*n+j]                   = entry (i,j), length n²
//	complex : arr[2*(i*n+j)], arr[2*(i*n+j)+1] = re, im of (i,j), length 2n²
package cmatrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RealFromFlat validates a flat row-major array and wraps a copy as an n×n gonum Dense.
// Errors: ErrInvalidDimensions, ErrDimensionMismatch, ErrNaNInf.
//
// Time Complexity: O(n²)
func RealFromFlat(data []float64, n int) (*mat.Dense, error) {
	if err := ValidateFlatLen(data, n, 1); err != nil {
		return nil, fmt.Errorf("RealFromFlat: %w", err)
	}
	if err := ValidateFinite(data); err != nil {
		return nil, fmt.Errorf("RealFromFlat: %w", err)
	}
	cp := make([]float64, len(data))
	copy(cp, data)

	return mat.NewDense(n, n, cp), nil
}

// FromFlatComplex parses an interleaved (re, im) row-major array of length 2n².
func FromFlatComplex(data []float64, n int) (*CDense, error) {
	if err := ValidateFlatLen(data, n, 2); err != nil {
		return nil, fmt.Errorf("FromFlatComplex: %w", err)
	}
	if err := ValidateFinite(data); err != nil {
		return nil, fmt.Errorf("FromFlatComplex: %w", err)
	}
	m, err := NewCDense(n)
	if err != nil {
		return nil, fmt.Errorf("FromFlatComplex: %w", err)
	}
	for idx := range m.data {
		m.data[idx] = complex(data[2*idx], data[2*idx+1])
	}

	return m, nil
}

// ToFlatReal returns the real parts in row-major order (length n²),
// discarding any residual imaginary component.
func ToFlatReal(m *CDense) []float64 {
	out := make([]float64, len(m.data))
	for idx, v := range m.data {
		out[idx] = real(v)
	}

	return out
}

// ToFlatComplex returns interleaved (re, im) pairs in row-major order (length 2n²).
func ToFlatComplex(m *CDense) []float64 {
	out := make([]float64, 0, 2*len(m.data))
	for _, v := range m.data {
		out = append(out, real(v), imag(v))
	}

	return out
}

// DenseToFlat flattens a real gonum matrix row by row.
func DenseToFlat(a mat.Matrix) []float64 {
	r, c := a.Dims()
	out := make([]float64, 0, r*c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out = append(out, a.At(i, j))
		}
	}

	return out
}
