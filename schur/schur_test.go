package schur_test

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/katalvlaran/logm/cmatrix"
	"github.com/katalvlaran/logm/schur"
)

const (
	tol     = 1e-12
	maxIter = 500
	eps     = 1e-9
)

// rotation builds the 3×3 rotation by angle about axis (x, y, z) from a unit quaternion.
func rotation(angle, x, y, z float64) *mat.Dense {
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

// blockRotation returns diag(R(a), R(b)) as a 4×4 orthogonal matrix.
func blockRotation(a, b float64) *mat.Dense {
	ca, sa := math.Cos(a), math.Sin(a)
	cb, sb := math.Cos(b), math.Sin(b)

	return mat.NewDense(4, 4, []float64{
		ca, -sa, 0, 0,
		sa, ca, 0, 0,
		0, 0, cb, -sb,
		0, 0, sb, cb,
	})
}

func requireOrthogonal(t *testing.T, q mat.Matrix) {
	t.Helper()
	n, _ := q.Dims()
	var qtq mat.Dense
	qtq.Mul(q.T(), q)
	require.True(t, mat.EqualApprox(&qtq, identity(n), eps), "QᵀQ != I:\n%v", mat.Formatted(&qtq))
}

func identity(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}

	return d
}

func requireReconstructs(t *testing.T, a mat.Matrix, rs *schur.Real) {
	t.Helper()
	var qt, qtq mat.Dense
	qt.Mul(rs.Q, rs.T)
	qtq.Mul(&qt, rs.Q.T())
	require.True(t, mat.EqualApprox(&qtq, a, eps), "Q·T·Qᵀ != A:\n%v", mat.Formatted(&qtq))
}

func requireQuasiTriangular(t *testing.T, tm *mat.Dense) {
	t.Helper()
	n, _ := tm.Dims()
	var i, j int
	for i = 2; i < n; i++ {
		for j = 0; j < i-1; j++ {
			require.Zero(t, tm.At(i, j), "T[%d,%d] below sub-diagonal", i, j)
		}
	}
	// no two consecutive non-zero sub-diagonal entries
	for i = 1; i+1 < n; i++ {
		require.False(t, tm.At(i, i-1) != 0 && tm.At(i+1, i) != 0, "overlapping blocks at %d", i)
	}
}

func sortedByImag(vals []complex128) []complex128 {
	out := append([]complex128(nil), vals...)
	sort.Slice(out, func(i, j int) bool {
		if imag(out[i]) != imag(out[j]) {
			return imag(out[i]) < imag(out[j])
		}
		return real(out[i]) < real(out[j])
	})

	return out
}

func TestDecompose_Rotations(t *testing.T) {
	for _, tc := range []struct {
		name  string
		a     *mat.Dense
		angle float64
	}{
		{"z-axis 30°", rotation(math.Pi/6, 0, 0, 1), math.Pi / 6},
		{"diagonal axis 100°", rotation(100*math.Pi/180, 1, 1, 1), 100 * math.Pi / 180},
		{"skew axis 1.2rad", rotation(1.2, 0.3, -0.5, 0.8), 1.2},
		{"skew axis -0.7rad", rotation(-0.7, -1, 2, 0.5), 0.7},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rs, err := schur.Decompose(tc.a, tol, maxIter)
			require.NoError(t, err)
			requireOrthogonal(t, rs.Q)
			requireReconstructs(t, tc.a, rs)
			requireQuasiTriangular(t, rs.T)

			got := sortedByImag(rs.Eigenvalues())
			require.Len(t, got, 3)
			want := []complex128{cmplx.Rect(1, -tc.angle), 1, cmplx.Rect(1, tc.angle)}
			for i := range want {
				require.InDelta(t, real(want[i]), real(got[i]), eps, "eigenvalue %d", i)
				require.InDelta(t, imag(want[i]), imag(got[i]), eps, "eigenvalue %d", i)
			}
		})
	}
}

func TestDecompose_StandardizedBlocks(t *testing.T) {
	a := rotation(2.0, 0.2, 0.9, -0.4)
	rs, err := schur.Decompose(a, tol, maxIter)
	require.NoError(t, err)

	n, _ := rs.T.Dims()
	found := false
	for i := 0; i+1 < n; i++ {
		if rs.T.At(i+1, i) == 0 {
			continue
		}
		found = true
		require.Greater(t, rs.T.At(i+1, i), 0.0, "sub-diagonal of block %d must be positive", i)
		require.InDelta(t, rs.T.At(i, i), rs.T.At(i+1, i+1), eps, "block %d diagonals", i)
		require.Less(t, rs.T.At(i, i+1), 0.0, "super-diagonal of block %d", i)
	}
	require.True(t, found, "expected one complex block")
}

func TestDecompose_BlockDiagonal4x4(t *testing.T) {
	a := blockRotation(0.4, -2.5)
	rs, err := schur.Decompose(a, tol, maxIter)
	require.NoError(t, err)
	requireOrthogonal(t, rs.Q)
	requireReconstructs(t, a, rs)
	require.Zero(t, rs.Sweeps, "already in Schur form")

	for i := 0; i < 4; i += 2 {
		require.Greater(t, rs.T.At(i+1, i), 0.0)
	}
}

func TestDecompose_CyclicPermutation(t *testing.T) {
	// Plain Francis shifts stall on this matrix; the exceptional shift breaks it.
	a := mat.NewDense(3, 3, []float64{
		0, 0, 1,
		1, 0, 0,
		0, 1, 0,
	})
	rs, err := schur.Decompose(a, tol, maxIter)
	require.NoError(t, err)
	requireOrthogonal(t, rs.Q)
	requireReconstructs(t, a, rs)

	got := sortedByImag(rs.Eigenvalues())
	want := []complex128{cmplx.Rect(1, -2*math.Pi/3), 1, cmplx.Rect(1, 2*math.Pi/3)}
	for i := range want {
		require.InDelta(t, real(want[i]), real(got[i]), 1e-8)
		require.InDelta(t, imag(want[i]), imag(got[i]), 1e-8)
	}
}

func TestDecompose_NotConverged(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		0, 0, 1,
		1, 0, 0,
		0, 1, 0,
	})
	_, err := schur.Decompose(a, tol, 1)
	require.True(t, errors.Is(err, schur.ErrNotConverged), "got %v", err)
}

func TestDecompose_Errors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		a       mat.Matrix
		tol     float64
		maxIter int
		want    error
	}{
		{"nil", nil, tol, maxIter, schur.ErrNonSquare},
		{"non-square", mat.NewDense(2, 3, nil), tol, maxIter, schur.ErrNonSquare},
		{"zero tol", identity(2), 0, maxIter, schur.ErrBadParam},
		{"NaN tol", identity(2), math.NaN(), maxIter, schur.ErrBadParam},
		{"zero cap", identity(2), tol, 0, schur.ErrBadParam},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schur.Decompose(tc.a, tc.tol, tc.maxIter)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDecompose_Trivial(t *testing.T) {
	t.Run("1x1", func(t *testing.T) {
		rs, err := schur.Decompose(mat.NewDense(1, 1, []float64{-3}), tol, maxIter)
		require.NoError(t, err)
		require.Equal(t, -3.0, rs.T.At(0, 0))
		require.Equal(t, []complex128{-3}, rs.Eigenvalues())
	})
	t.Run("zero", func(t *testing.T) {
		rs, err := schur.Decompose(mat.NewDense(3, 3, nil), tol, maxIter)
		require.NoError(t, err)
		require.Zero(t, mat.Norm(rs.T, 2))
		requireOrthogonal(t, rs.Q)
	})
	t.Run("identity", func(t *testing.T) {
		rs, err := schur.Decompose(identity(5), tol, maxIter)
		require.NoError(t, err)
		require.True(t, mat.EqualApprox(rs.T, identity(5), eps))
	})
}

func TestComplex_Triangular(t *testing.T) {
	for _, a := range []*mat.Dense{
		rotation(1.1, 1, 0, 0),
		rotation(0.6, 0.3, 0.4, -0.2),
		blockRotation(0.9, 2.2),
	} {
		rs, err := schur.Decompose(a, tol, maxIter)
		require.NoError(t, err)
		cs, err := rs.Complex()
		require.NoError(t, err)

		n := cs.T.Dim()
		var i, j int
		for i = 0; i < n; i++ {
			for j = 0; j < i; j++ {
				v, err := cs.T.At(i, j)
				require.NoError(t, err)
				require.Less(t, cmplx.Abs(v), eps, "T[%d,%d]", i, j)
			}
		}

		// Q unitary and Q·T·Qᴴ == A
		qh, err := cmatrix.ConjTranspose(cs.Q)
		require.NoError(t, err)
		qhq, err := cmatrix.Mul(qh, cs.Q)
		require.NoError(t, err)
		id, err := cmatrix.NewIdentity(n)
		require.NoError(t, err)
		diff, err := cmatrix.Sub(qhq, id)
		require.NoError(t, err)
		require.Less(t, cmatrix.FrobeniusNorm(diff), eps)

		qt, err := cmatrix.Mul(cs.Q, cs.T)
		require.NoError(t, err)
		back, err := cmatrix.Mul(qt, qh)
		require.NoError(t, err)
		require.Less(t, back.ImagNorm(), eps)
		require.True(t, mat.EqualApprox(back.RealPart(), a, eps))

		// diagonal carries the eigenvalues, each of unit modulus
		for i = 0; i < n; i++ {
			v, err := cs.T.At(i, i)
			require.NoError(t, err)
			require.InDelta(t, 1.0, cmplx.Abs(v), eps)
		}
	}
}
