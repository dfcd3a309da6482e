package cmatrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/logm/cmatrix"
)

func requireCDenseClose(t *testing.T, want, got *cmatrix.CDense, tol float64) {
	t.Helper()
	diff, err := cmatrix.Sub(want, got)
	require.NoError(t, err)
	require.LessOrEqual(t, cmatrix.FrobeniusNorm(diff), tol, "want\n%sgot\n%s", want, got)
}

func TestAddSub(t *testing.T) {
	a := must(t, 2, 1, 2i, 3, 4)
	b := must(t, 2, 1i, 1, -3, 0.5)

	sum, err := cmatrix.Add(a, b)
	require.NoError(t, err)
	requireCDenseClose(t, must(t, 2, 1+1i, 1+2i, 0, 4.5), sum, 0)

	diff, err := cmatrix.Sub(a, b)
	require.NoError(t, err)
	requireCDenseClose(t, must(t, 2, 1-1i, -1+2i, 6, 3.5), diff, 0)

	// operands untouched
	requireCDenseClose(t, must(t, 2, 1, 2i, 3, 4), a, 0)
}

func TestShapeErrors(t *testing.T) {
	a := must(t, 2, 1, 2, 3, 4)
	b := must(t, 1, 1)
	binary := map[string]func(a, b *cmatrix.CDense) (*cmatrix.CDense, error){
		"Add": cmatrix.Add,
		"Sub": cmatrix.Sub,
		"Mul": cmatrix.Mul,
	}
	for name, fn := range binary {
		t.Run(name, func(t *testing.T) {
			_, err := fn(a, b)
			require.ErrorIs(t, err, cmatrix.ErrDimensionMismatch)
			require.ErrorContains(t, err, name+":")
			_, err = fn(nil, a)
			require.ErrorIs(t, err, cmatrix.ErrNilMatrix)
		})
	}

	unary := map[string]func(m *cmatrix.CDense) (*cmatrix.CDense, error){
		"Transpose":     cmatrix.Transpose,
		"ConjTranspose": cmatrix.ConjTranspose,
		"Inverse":       cmatrix.Inverse,
		"SubIdentity":   cmatrix.SubIdentity,
		"AddIdentity":   cmatrix.AddIdentity,
		"Scale": func(m *cmatrix.CDense) (*cmatrix.CDense, error) {
			return cmatrix.Scale(m, 2)
		},
	}
	for name, fn := range unary {
		t.Run(name, func(t *testing.T) {
			_, err := fn(nil)
			require.ErrorIs(t, err, cmatrix.ErrNilMatrix)
		})
	}
}

func TestMul(t *testing.T) {
	a := must(t, 2, 1, 2, 3, 4)
	b := must(t, 2, 0, 1i, 1, 0)
	got, err := cmatrix.Mul(a, b)
	require.NoError(t, err)
	requireCDenseClose(t, must(t, 2, 2, 1i, 4, 3i), got, 0)

	id, _ := cmatrix.NewIdentity(2)
	got, err = cmatrix.Mul(id, a)
	require.NoError(t, err)
	requireCDenseClose(t, a, got, 0)
}

func TestScale(t *testing.T) {
	a := must(t, 2, 1, 2i, 3, 4)
	got, err := cmatrix.Scale(a, 1i)
	require.NoError(t, err)
	requireCDenseClose(t, must(t, 2, 1i, -2, 3i, 4i), got, 0)

	zero, err := cmatrix.Scale(a, 0)
	require.NoError(t, err)
	require.Zero(t, cmatrix.FrobeniusNorm(zero))
}

func TestTranspose(t *testing.T) {
	a := must(t, 2, 1, 2i, 3, 4-1i)

	tr, err := cmatrix.Transpose(a)
	require.NoError(t, err)
	requireCDenseClose(t, must(t, 2, 1, 3, 2i, 4-1i), tr, 0)

	ct, err := cmatrix.ConjTranspose(a)
	require.NoError(t, err)
	requireCDenseClose(t, must(t, 2, 1, 3, -2i, 4+1i), ct, 0)
}

func TestIdentityShift(t *testing.T) {
	a := must(t, 2, 1, 2, 3, 4)
	sub, err := cmatrix.SubIdentity(a)
	require.NoError(t, err)
	requireCDenseClose(t, must(t, 2, 0, 2, 3, 3), sub, 0)

	add, err := cmatrix.AddIdentity(a)
	require.NoError(t, err)
	requireCDenseClose(t, must(t, 2, 2, 2, 3, 5), add, 0)
}

func TestFrobeniusNorm(t *testing.T) {
	require.Equal(t, 0.0, cmatrix.FrobeniusNorm(nil))
	require.InDelta(t, 5.0, cmatrix.FrobeniusNorm(must(t, 2, 3i, 0, 0, 4)), 1e-15)
	require.InDelta(t, math.Sqrt(3), cmatrix.FrobeniusNorm(must(t, 2, 1, 1i, 0, 1)), 1e-15)
}

func TestInverse(t *testing.T) {
	tests := []struct {
		name string
		m    *cmatrix.CDense
	}{
		{"diagonal", must(t, 2, 2, 0, 0, 4i)},
		{"needs pivoting", must(t, 3, 0, 1, 0, 1, 0, 0, 0, 0, 2)},
		{"complex dense", must(t, 3, 1+1i, 2, 0, -1, 3-2i, 1i, 0.5, 0, 2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := cmatrix.Inverse(tc.m)
			require.NoError(t, err)
			prod, err := cmatrix.Mul(tc.m, inv)
			require.NoError(t, err)
			id, _ := cmatrix.NewIdentity(tc.m.Dim())
			requireCDenseClose(t, id, prod, 1e-13)
		})
	}

	_, err := cmatrix.Inverse(must(t, 2, 1, 2, 2, 4))
	require.ErrorIs(t, err, cmatrix.ErrSingular)
	_, err = cmatrix.Inverse(must(t, 2, 0, 0, 0, 0))
	require.ErrorIs(t, err, cmatrix.ErrSingular)
	require.ErrorContains(t, err, "column 0")
}
