package logm_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/katalvlaran/logm/cmatrix"
	"github.com/katalvlaran/logm/logm"
)

// rot2 is the planar rotation by theta.
func rot2(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)

	return mat.NewDense(2, 2, []float64{c, -s, s, c})
}

// rotZ is the 3D rotation by theta about the z axis.
func rotZ(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)

	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// rotAxis is the 3D rotation by angle about (x, y, z), built from a unit quaternion.
func rotAxis(angle, x, y, z float64) *mat.Dense {
	norm := math.Sqrt(x*x + y*y + z*z)
	s := math.Sin(angle/2) / norm
	q := quat.Number{Real: math.Cos(angle / 2), Imag: x * s, Jmag: y * s, Kmag: z * s}
	q = quat.Scale(1/quat.Abs(q), q)
	w, a, b, c := q.Real, q.Imag, q.Jmag, q.Kmag

	return mat.NewDense(3, 3, []float64{
		1 - 2*(b*b+c*c), 2 * (a*b - w*c), 2 * (a*c + w*b),
		2 * (a*b + w*c), 1 - 2*(a*a+c*c), 2 * (b*c - w*a),
		2 * (a*c - w*b), 2 * (b*c + w*a), 1 - 2*(a*a+b*b),
	})
}

func identity(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}

	return d
}

// strategies returns one Logarithm per Method, all reporting to obs.
func strategies(t *testing.T, obs logm.Observer) []logm.Logarithm {
	t.Helper()
	out := make([]logm.Logarithm, 0, 3)
	for _, m := range logm.Methods() {
		lg, err := logm.NewLogarithm(m, logm.WithObserver(obs))
		require.NoError(t, err)
		out = append(out, lg)
	}

	return out
}

// mustAt reads (i, j) or fails the test.
func mustAt(t *testing.T, m *cmatrix.CDense, i, j int) complex128 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// requireClose asserts entry-wise |a − b| < tol.
func requireClose(t *testing.T, a, b *cmatrix.CDense, tol float64) {
	t.Helper()
	require.Equal(t, a.Dim(), b.Dim())
	n := a.Dim()
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			av, bv := mustAt(t, a, i, j), mustAt(t, b, i, j)
			require.Less(t, cmplx.Abs(av-bv), tol, "entry (%d,%d): %v vs %v", i, j, av, bv)
		}
	}
}

// requireCloseReal asserts entry-wise |a − b| < tol for a complex a against a real b.
func requireCloseReal(t *testing.T, a *cmatrix.CDense, b mat.Matrix, tol float64) {
	t.Helper()
	want, err := cmatrix.FromReal(b)
	require.NoError(t, err)
	requireClose(t, a, want, tol)
}

// relErr returns ‖a − b‖_F / ‖b‖_F for real matrices.
func relErr(a, b mat.Matrix) float64 {
	var d mat.Dense
	d.Sub(a, b)

	return mat.Norm(&d, 2) / mat.Norm(b, 2)
}
