// SPDX-License-Identifier: MIT

package schur

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	lapack "gonum.org/v1/gonum/lapack/gonum"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotConverged is returned when the QR sweeps exceed the iteration cap.
	ErrNotConverged = errors.New("schur: QR iteration did not converge")

	// ErrNonSquare is returned for r != c or empty input.
	ErrNonSquare = errors.New("schur: matrix must be square and non-empty")

	// ErrBadParam is returned for tol <= 0 or maxIter <= 0.
	ErrBadParam = errors.New("schur: tolerance and iteration cap must be positive")
)

// exceptionalEvery is the number of stalled sweeps after which an ad hoc
// shift replaces the Francis shift for one sweep.
const exceptionalEvery = 10

// Real is the real Schur factorization M = Q·T·Qᵀ.
type Real struct {
	Q *mat.Dense // orthogonal
	T *mat.Dense // quasi-upper-triangular, standardized 2×2 blocks

	// Sweeps is the number of Francis sweeps spent.
	Sweeps int
}

// Decompose computes the real Schur form of a.
// Implementation:
//   - Stage 1: Validate a is square, tol > 0, maxIter > 0.
//   - Stage 2: Reduce to upper Hessenberg H = Q₀ᵀ·A·Q₀ (LAPACK Dgehrd + Dorghr).
//   - Stage 3: Francis double-shift sweeps on the active window, deflating a
//     sub-diagonal entry once |h(k,k−1)| ≤ tol·(|h(k−1,k−1)|+|h(k,k)|).
//   - Stage 4: Standardize each deflated 2×2 block (Dlanv2), then flip signs so
//     the sub-diagonal of every complex block is positive.
//
// Errors:
//   - ErrNonSquare, ErrBadParam, ErrNotConverged (more than maxIter sweeps).
//
// Complexity:
//   - Time O(n³ + maxIter·n²), Space O(n²).
func Decompose(a mat.Matrix, tol float64, maxIter int) (*Real, error) {
	if a == nil {
		return nil, fmt.Errorf("Decompose: nil: %w", ErrNonSquare)
	}
	n, c := a.Dims()
	if n != c || n == 0 {
		return nil, fmt.Errorf("Decompose: %dx%d: %w", n, c, ErrNonSquare)
	}
	if !(tol > 0) || maxIter <= 0 {
		return nil, fmt.Errorf("Decompose: tol=%g maxIter=%d: %w", tol, maxIter, ErrBadParam)
	}

	w := newWorkspace(n, a)
	w.hessenberg()
	if err := w.iterate(tol, maxIter); err != nil {
		return nil, fmt.Errorf("Decompose: %d sweeps: %w", w.sweeps, err)
	}
	w.clearBelowSubdiagonal()

	return &Real{
		Q:      mat.NewDense(n, n, w.q),
		T:      mat.NewDense(n, n, w.h),
		Sweeps: w.sweeps,
	}, nil
}

// workspace keeps H and Q as row-major slices so that the sweeps can update
// whole rows and columns without interface dispatch.
type workspace struct {
	n      int
	h, q   []float64
	sweeps int
	impl   lapack.Implementation
}

func newWorkspace(n int, a mat.Matrix) *workspace {
	h := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			h[i*n+j] = a.At(i, j)
		}
	}
	q := make([]float64, n*n)
	for i = 0; i < n; i++ {
		q[i*n+i] = 1
	}

	return &workspace{n: n, h: h, q: q}
}

// hessenberg replaces h by its Hessenberg form and q by the accumulated reflectors.
func (w *workspace) hessenberg() {
	n := w.n
	if n < 3 {
		return // already Hessenberg
	}
	tau := make([]float64, n-1)
	work := make([]float64, 1)

	w.impl.Dgehrd(n, 0, n-1, w.h, n, tau, work, -1)
	work = make([]float64, int(work[0]))
	w.impl.Dgehrd(n, 0, n-1, w.h, n, tau, work, len(work))

	// Reflectors live below the sub-diagonal; Dorghr expands them into Q₀.
	copy(w.q, w.h)
	work = make([]float64, 1)
	w.impl.Dorghr(n, 0, n-1, w.q, n, tau, work, -1)
	work = make([]float64, int(work[0]))
	w.impl.Dorghr(n, 0, n-1, w.q, n, tau, work, len(work))

	w.clearBelowSubdiagonal()
}

func (w *workspace) clearBelowSubdiagonal() {
	n := w.n
	var i, j int
	for i = 2; i < n; i++ {
		for j = 0; j < i-1; j++ {
			w.h[i*n+j] = 0
		}
	}
}

// iterate runs Francis sweeps until every block has deflated.
func (w *workspace) iterate(tol float64, maxIter int) error {
	n := w.n
	h := w.h
	hnorm := floats.Norm(h, 2)
	if hnorm == 0 {
		return nil // zero matrix is its own Schur form
	}

	var (
		hi, lo, its int
		scale       float64
	)
	hi = n - 1
	for hi >= 0 {
		// Find the lowest negligible sub-diagonal in [0, hi].
		for lo = hi; lo > 0; lo-- {
			scale = math.Abs(h[(lo-1)*n+lo-1]) + math.Abs(h[lo*n+lo])
			if scale == 0 {
				scale = hnorm
			}
			if math.Abs(h[lo*n+lo-1]) <= tol*scale {
				h[lo*n+lo-1] = 0
				break
			}
		}

		switch {
		case lo == hi: // 1×1 block converged
			hi--
			its = 0
			continue
		case lo == hi-1: // 2×2 block converged
			w.standardize(hi - 1)
			hi -= 2
			its = 0
			continue
		}

		if w.sweeps >= maxIter {
			return ErrNotConverged
		}
		w.francisSweep(lo, hi, its)
		w.sweeps++
		its++
	}

	return nil
}

// francisSweep performs one implicit double-shift QR step on the window [lo, hi]
// (size ≥ 3), applying every reflector to the full rows/columns of H and to Q.
func (w *workspace) francisSweep(lo, hi, its int) {
	n := w.n
	h := w.h

	// Shifts are the eigenvalues of the trailing 2×2 block, or an ad hoc pair
	// every exceptionalEvery stalled sweeps.
	h11, h12 := h[(hi-1)*n+hi-1], h[(hi-1)*n+hi]
	h21, h22 := h[hi*n+hi-1], h[hi*n+hi]
	if its > 0 && its%exceptionalEvery == 0 {
		var e, d float64
		if (its/exceptionalEvery)%2 == 1 {
			e = math.Abs(h[(lo+1)*n+lo]) + math.Abs(h[(lo+2)*n+lo+1])
			d = h[lo*n+lo]
		} else {
			e = math.Abs(h[hi*n+hi-1]) + math.Abs(h[(hi-1)*n+hi-2])
			d = h[hi*n+hi]
		}
		h11 = 0.75*e + d
		h12 = -0.4375 * e
		h21 = e
		h22 = h11
	}
	s := h11 + h22
	t := h11*h22 - h12*h21

	// First column of (H − σ₁I)(H − σ₂I), restricted to the window.
	x := h[lo*n+lo]*h[lo*n+lo] + h[lo*n+lo+1]*h[(lo+1)*n+lo] - s*h[lo*n+lo] + t
	y := h[(lo+1)*n+lo] * (h[lo*n+lo] + h[(lo+1)*n+lo+1] - s)
	z := h[(lo+1)*n+lo] * h[(lo+2)*n+lo+1]

	v := make([]float64, 3)
	var k int
	for k = lo; k <= hi-2; k++ {
		v[0], v[1], v[2] = x, y, z
		if u, beta, ok := house(v); ok {
			w.reflectRows(u, beta, k, max(lo, k-1))
			w.reflectCols(u, beta, k, min(k+3, hi))
			if k > lo {
				h[(k+1)*n+k-1] = 0
				h[(k+2)*n+k-1] = 0
			}
		}
		x = h[(k+1)*n+k]
		y = h[(k+2)*n+k]
		if k < hi-2 {
			z = h[(k+3)*n+k]
		}
	}

	// Final 2-vector reflector on rows hi-1, hi.
	if u, beta, ok := house([]float64{x, y}); ok {
		w.reflectRows(u, beta, hi-1, hi-2)
		w.reflectCols(u, beta, hi-1, hi)
		h[hi*n+hi-2] = 0
	}
}

// house returns u, beta with (I − beta·u·uᵀ)·v = ∓‖v‖·e₁. ok is false for v = 0.
func house(v []float64) (u []float64, beta float64, ok bool) {
	norm := floats.Norm(v, 2)
	if norm == 0 {
		return nil, 0, false
	}
	u = make([]float64, len(v))
	copy(u, v)
	u[0] += math.Copysign(norm, v[0])

	return u, 2 / floats.Dot(u, u), true
}

// reflectRows applies P = I − beta·u·uᵀ from the left to rows r0..r0+len(u)-1,
// columns c0..n-1 of H.
func (w *workspace) reflectRows(u []float64, beta float64, r0, c0 int) {
	n := w.n
	h := w.h
	var i, j int
	var sum float64
	for j = c0; j < n; j++ {
		sum = 0
		for i = range u {
			sum += u[i] * h[(r0+i)*n+j]
		}
		sum *= beta
		for i = range u {
			h[(r0+i)*n+j] -= sum * u[i]
		}
	}
}

// reflectCols applies P from the right to columns c0..c0+len(u)-1 of H
// (rows 0..rLast) and of Q (all rows).
func (w *workspace) reflectCols(u []float64, beta float64, c0, rLast int) {
	applyRight(w.h, w.n, u, beta, c0, rLast)
	applyRight(w.q, w.n, u, beta, c0, w.n-1)
}

func applyRight(m []float64, n int, u []float64, beta float64, c0, rLast int) {
	var i, j int
	var sum float64
	for i = 0; i <= rLast; i++ {
		sum = 0
		for j = range u {
			sum += m[i*n+c0+j] * u[j]
		}
		sum *= beta
		for j = range u {
			m[i*n+c0+j] -= sum * u[j]
		}
	}
}

// standardize rewrites the converged 2×2 block at (i, i) in standard form:
// triangular for real eigenvalues, equal diagonals with a positive sub-diagonal
// for a complex pair.
func (w *workspace) standardize(i int) {
	n := w.n
	h := w.h
	a, b := h[i*n+i], h[i*n+i+1]
	c, d := h[(i+1)*n+i], h[(i+1)*n+i+1]

	aa, bb, cc, dd, _, _, _, _, cs, sn := w.impl.Dlanv2(a, b, c, d)
	h[i*n+i], h[i*n+i+1] = aa, bb
	h[(i+1)*n+i], h[(i+1)*n+i+1] = cc, dd

	var r, j int
	var x, y float64
	// rows i, i+1 to the right of the block
	for j = i + 2; j < n; j++ {
		x, y = h[i*n+j], h[(i+1)*n+j]
		h[i*n+j] = cs*x + sn*y
		h[(i+1)*n+j] = cs*y - sn*x
	}
	// columns i, i+1 above the block
	for r = 0; r < i; r++ {
		x, y = h[r*n+i], h[r*n+i+1]
		h[r*n+i] = cs*x + sn*y
		h[r*n+i+1] = cs*y - sn*x
	}
	for r = 0; r < n; r++ {
		x, y = w.q[r*n+i], w.q[r*n+i+1]
		w.q[r*n+i] = cs*x + sn*y
		w.q[r*n+i+1] = cs*y - sn*x
	}

	if cc >= 0 {
		return
	}
	// Similarity with diag(1, −1) on index i+1: the block's off-diagonals swap sign.
	for j = 0; j < n; j++ {
		if j != i+1 {
			h[(i+1)*n+j] = -h[(i+1)*n+j]
			h[j*n+i+1] = -h[j*n+i+1]
		}
		w.q[j*n+i+1] = -w.q[j*n+i+1]
	}
}
