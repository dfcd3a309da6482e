// SPDX-License-Identifier: MIT

package geodesic

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/logm/cmatrix"
	"github.com/katalvlaran/logm/logm"
)

// ErrBadSteps is returned by Path when steps < 1.
var ErrBadSteps = errors.New("geodesic: steps must be >= 1")

// Distance returns ‖log(Rᵀ·T)‖_F.
// Implementation:
//   - Stage 1: Validate r, t are square with equal dimension.
//   - Stage 2: U = Rᵀ·T (gonum).
//   - Stage 3: Frobenius norm of lg.Log(U), imaginary parts included.
//
// Behavior highlights:
//   - Distance(R, R) ≈ 0. Swapping R and T only flips the sign of log(U) for
//     rotations, so the distance is symmetric up to rounding.
//
// Errors:
//   - cmatrix.ErrNilMatrix, cmatrix.ErrNonSquare, cmatrix.ErrDimensionMismatch,
//     plus whatever lg.Log reports.
func Distance(r, t mat.Matrix, lg logm.Logarithm) (float64, error) {
	u, err := relative(r, t, "Distance")
	if err != nil {
		return 0, err
	}
	l, err := logarithm(lg).Log(u)
	if err != nil {
		return 0, fmt.Errorf("Distance: %w", err)
	}

	return cmatrix.FrobeniusNorm(l), nil
}

// Interpolate returns the real part of A·exp(t·log(Aᵀ·B)).
// At t = 0 the result is A and at t = 1 it is B, up to rounding and the
// branch chosen by the logarithm.
func Interpolate(a, b mat.Matrix, t float64, lg logm.Logarithm, exp logm.Exponential) (*mat.Dense, error) {
	g, err := generator(a, b, lg, "Interpolate")
	if err != nil {
		return nil, err
	}

	return g.at(t, exponential(exp))
}

// Path samples the geodesic from A to B at t = i/steps for i = 0..steps,
// returning steps+1 matrices. The logarithm is evaluated once.
func Path(a, b mat.Matrix, steps int, lg logm.Logarithm, exp logm.Exponential) ([]*mat.Dense, error) {
	if steps < 1 {
		return nil, fmt.Errorf("Path: steps=%d: %w", steps, ErrBadSteps)
	}
	g, err := generator(a, b, lg, "Path")
	if err != nil {
		return nil, err
	}

	e := exponential(exp)
	out := make([]*mat.Dense, steps+1)
	for i := 0; i <= steps; i++ {
		if out[i], err = g.at(float64(i)/float64(steps), e); err != nil {
			return nil, fmt.Errorf("Path: sample %d: %w", i, err)
		}
	}

	return out, nil
}

// segment holds the base point A and the generator log(AᵀB) of one path.
type segment struct {
	base *cmatrix.CDense
	gen  *cmatrix.CDense
}

func generator(a, b mat.Matrix, lg logm.Logarithm, op string) (*segment, error) {
	u, err := relative(a, b, op)
	if err != nil {
		return nil, err
	}
	l, err := logarithm(lg).Log(u)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	base, err := cmatrix.FromReal(a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &segment{base: base, gen: l}, nil
}

// at evaluates A·exp(t·L) and keeps the real part.
func (g *segment) at(t float64, exp logm.Exponential) (*mat.Dense, error) {
	scaled, err := cmatrix.Scale(g.gen, complex(t, 0))
	if err != nil {
		return nil, err
	}
	e, err := exp(scaled)
	if err != nil {
		return nil, err
	}
	c, err := cmatrix.Mul(g.base, e)
	if err != nil {
		return nil, err
	}

	return c.RealPart(), nil
}

// relative validates the pair and returns Xᵀ·Y.
func relative(x, y mat.Matrix, op string) (*mat.Dense, error) {
	nx, err := cmatrix.ValidateSquareReal(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ny, err := cmatrix.ValidateSquareReal(y)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if nx != ny {
		return nil, fmt.Errorf("%s: %dx%d vs %dx%d: %w", op, nx, nx, ny, ny, cmatrix.ErrDimensionMismatch)
	}

	var u mat.Dense
	u.Mul(x.T(), y)

	return &u, nil
}

func logarithm(lg logm.Logarithm) logm.Logarithm {
	if lg == nil {
		return logm.ScalingSquaring{}
	}

	return lg
}

func exponential(exp logm.Exponential) logm.Exponential {
	if exp == nil {
		return logm.ExpTaylor
	}

	return exp
}
