// SPDX-License-Identifier: MIT

package schur

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/logm/cmatrix"
)

// Complex is the complex Schur factorization M = Q·T·Qᴴ with Q unitary and
// T upper-triangular. The eigenvalues of M sit on the diagonal of T.
type Complex struct {
	Q *cmatrix.CDense
	T *cmatrix.CDense
}

// Eigenvalues lists the eigenvalues encoded by the diagonal blocks of T,
// in diagonal order. A 2×2 block contributes its pair with the positive
// imaginary part first.
func (r *Real) Eigenvalues() []complex128 {
	n, _ := r.T.Dims()
	out := make([]complex128, 0, n)
	for i := 0; i < n; i++ {
		if i+1 < n && r.T.At(i+1, i) != 0 {
			re, im, ok := blockPair(r.T.At(i, i), r.T.At(i, i+1), r.T.At(i+1, i), r.T.At(i+1, i+1))
			if ok {
				out = append(out, complex(re, im), complex(re, -im))
				i++
				continue
			}
		}
		out = append(out, complex(r.T.At(i, i), 0))
	}

	return out
}

// blockPair returns the complex-conjugate eigenvalues re ± i·im of [[a,b],[c,d]].
// ok is false when the block has real eigenvalues.
func blockPair(a, b, c, d float64) (re, im float64, ok bool) {
	tr := a + d
	det := a*d - b*c
	disc := tr*tr - 4*det
	if disc >= 0 {
		return 0, 0, false
	}

	return tr / 2, math.Sqrt(-disc) / 2, true
}

// Complex refines the real Schur form into the complex Schur form.
// Implementation:
//   - Stage 1: Lift Q and T to complex row-major slices.
//   - Stage 2: For each 2×2 block with complex eigenvalues λ, λ̄ build the unitary
//     U₂ = [v | w] from the unit eigenvector v for λ and its orthogonal complement w.
//   - Stage 3: T ← U₂ᴴ·T on rows (i, i+1), T ← T·U₂ on columns (i, i+1), Q ← Q·U₂.
//     The sub-diagonal entry becomes exactly zero.
//
// Complexity: O(n²) per block, O(n³) worst case.
func (r *Real) Complex() (*Complex, error) {
	n, _ := r.T.Dims()
	t := make([]complex128, n*n)
	q := make([]complex128, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			t[i*n+j] = complex(r.T.At(i, j), 0)
			q[i*n+j] = complex(r.Q.At(i, j), 0)
		}
	}

	for i = 0; i+1 < n; i++ {
		if t[(i+1)*n+i] == 0 {
			continue
		}
		a, b := real(t[i*n+i]), real(t[i*n+i+1])
		c, d := real(t[(i+1)*n+i]), real(t[(i+1)*n+i+1])
		re, im, ok := blockPair(a, b, c, d)
		if !ok {
			continue
		}
		lambda := complex(re, im)

		// (B − λI)·v = 0 for v = (b, λ − a).
		v1, v2 := complex(b, 0), lambda-complex(a, 0)
		norm := math.Hypot(cmplx.Abs(v1), cmplx.Abs(v2))
		v1 /= complex(norm, 0)
		v2 /= complex(norm, 0)
		w1, w2 := -cmplx.Conj(v2), cmplx.Conj(v1)

		rotateRows(t, n, i, v1, v2, w1, w2)
		rotateCols(t, n, i, v1, v2, w1, w2)
		rotateCols(q, n, i, v1, v2, w1, w2)
		t[(i+1)*n+i] = 0
		i++ // skip the second row of the block
	}

	tc, err := cmatrix.FromRowMajor(n, t)
	if err != nil {
		return nil, fmt.Errorf("Complex: %w", err)
	}
	qc, err := cmatrix.FromRowMajor(n, q)
	if err != nil {
		return nil, fmt.Errorf("Complex: %w", err)
	}

	return &Complex{Q: qc, T: tc}, nil
}

// rotateRows applies U₂ᴴ from the left to rows i, i+1.
func rotateRows(m []complex128, n, i int, v1, v2, w1, w2 complex128) {
	var x, y complex128
	for j := 0; j < n; j++ {
		x, y = m[i*n+j], m[(i+1)*n+j]
		m[i*n+j] = cmplx.Conj(v1)*x + cmplx.Conj(v2)*y
		m[(i+1)*n+j] = cmplx.Conj(w1)*x + cmplx.Conj(w2)*y
	}
}

// rotateCols applies U₂ from the right to columns i, i+1.
func rotateCols(m []complex128, n, i int, v1, v2, w1, w2 complex128) {
	var x, y complex128
	for r := 0; r < n; r++ {
		x, y = m[r*n+i], m[r*n+i+1]
		m[r*n+i] = x*v1 + y*v2
		m[r*n+i+1] = x*w1 + y*w2
	}
}
