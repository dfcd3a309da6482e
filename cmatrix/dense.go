// SPDX-License-Identifier: MIT
// Package cmatrix provides core complex linear algebra primitives for square matrices.
// CDense is a concrete, row-major square matrix of complex128 values,
// storing elements in a flat slice for performance and cache friendliness.

package cmatrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// denseErrorf wraps an underlying error with CDense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("CDense.%s(%d,%d): %w", method, row, col, err)
}

// CDense is a row-major n×n matrix of complex128 values.
// n is the dimension and data holds n*n elements in row-major order.
type CDense struct {
	n    int          // rows == cols
	data []complex128 // flat backing storage, length == n*n
}

// NewCDense creates an n×n CDense initialized to zeros.
// Stage 1 (Validate): ensure n > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(n²) time and memory.
func NewCDense(n int) (*CDense, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &CDense{n: n, data: make([]complex128, n*n)}, nil
}

// NewIdentity returns the n×n identity matrix.
// Complexity: O(n²).
func NewIdentity(n int) (*CDense, error) {
	m, err := NewCDense(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// FromRowMajor builds an n×n CDense from a row-major slice of length n*n.
// The slice is copied; later writes to data do not affect the matrix.
func FromRowMajor(n int, data []complex128) (*CDense, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != n*n {
		return nil, fmt.Errorf("FromRowMajor: len %d != %d: %w", len(data), n*n, ErrDimensionMismatch)
	}
	cp := make([]complex128, len(data))
	copy(cp, data)

	return &CDense{n: n, data: cp}, nil
}

// FromReal lifts a real square gonum matrix into the complex domain (imaginary parts 0).
// Returns ErrNilMatrix for nil input and ErrNonSquare for r != c.
// Complexity: O(n²).
func FromReal(a mat.Matrix) (*CDense, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("FromReal: %dx%d: %w", r, c, ErrNonSquare)
	}
	m, err := NewCDense(r)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			m.data[i*r+j] = complex(a.At(i, j), 0)
		}
	}

	return m, nil
}

// Dim returns the dimension n of the n×n matrix.
func (m *CDense) Dim() int { return m.n }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *CDense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.n + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *CDense) At(row, col int) (complex128, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *CDense) Set(row, col int, v complex128) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the matrix.
// Complexity: O(n²) time and memory for copy.
func (m *CDense) Clone() *CDense {
	cp := make([]complex128, len(m.data))
	copy(cp, m.data)

	return &CDense{n: m.n, data: cp}
}

// RealPart returns the real parts as a gonum Dense, discarding imaginary residue.
func (m *CDense) RealPart() *mat.Dense {
	out := make([]float64, len(m.data))
	for idx, v := range m.data {
		out[idx] = real(v)
	}

	return mat.NewDense(m.n, m.n, out)
}

// ImagNorm returns the Frobenius norm of the imaginary parts.
// For logarithms of real orthogonal inputs it measures the residue that
// RealPart throws away.
func (m *CDense) ImagNorm() float64 {
	var sum float64
	for _, v := range m.data {
		sum += imag(v) * imag(v)
	}

	return math.Sqrt(sum)
}

// IsFinite reports whether every entry has finite real and imaginary parts.
func (m *CDense) IsFinite() bool {
	for _, v := range m.data {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(n²) for string construction.
func (m *CDense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.n; i++ {
		sb.WriteString("[")
		for j = 0; j < m.n; j++ {
			fmt.Fprintf(&sb, "%g", m.data[i*m.n+j])
			if j < m.n-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
