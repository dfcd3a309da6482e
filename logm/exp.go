// SPDX-License-Identifier: MIT

package logm

import (
	"fmt"
	"math"

	"github.com/katalvlaran/logm/cmatrix"
)

// Exponential evaluates exp(M). Expm and ExpmPade both satisfy it.
type Exponential func(*cmatrix.CDense) (*cmatrix.CDense, error)

var (
	// ExpTaylor is the default Exponential.
	ExpTaylor Exponential = Expm
	// ExpPade selects the [6/6] Padé approximant.
	ExpPade Exponential = ExpmPade
)

// taylorCoefficients are 1/j! for j = 0..6.
var taylorCoefficients = [...]float64{1, 1, 1.0 / 2, 1.0 / 6, 1.0 / 24, 1.0 / 120, 1.0 / 720}

// Expm computes exp(M) by scaling and squaring around an order-6 Taylor polynomial.
// Implementation:
//   - Stage 1: k = max(0, ⌈log₂(‖M‖_F / ExpScalingTarget)⌉), A = M·2⁻ᵏ.
//   - Stage 2: P = I + A + A²/2 + A³/6 + A⁴/24 + A⁵/120 + A⁶/720.
//   - Stage 3: square P k times.
//
// Notes:
//   - The polynomial has no denominator. After scaling ‖A‖_F ≤ 0.5 and the
//     truncation error per step is about ‖A‖⁷/7!, which k squarings amplify.
//     ExpmPade is the more accurate alternative.
func Expm(m *cmatrix.CDense) (*cmatrix.CDense, error) {
	return scaleAndSquare(m, taylor6, "Expm")
}

// ExpmPade computes exp(M) with the same scaling as Expm but evaluates the
// diagonal Padé approximant r₆(A) = D(A)⁻¹·N(A), where
// N(A) = Σ cⱼAʲ, D(A) = Σ (−1)ʲcⱼAʲ and cⱼ = (2q−j)!·q! / ((2q)!·j!·(q−j)!), q = PadeOrder.
func ExpmPade(m *cmatrix.CDense) (*cmatrix.CDense, error) {
	return scaleAndSquare(m, pade6, "ExpmPade")
}

func scaleAndSquare(m *cmatrix.CDense, approx func(*cmatrix.CDense) (*cmatrix.CDense, error), op string) (*cmatrix.CDense, error) {
	if err := cmatrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	k := scalingPower(cmatrix.FrobeniusNorm(m))
	a, err := cmatrix.Scale(m, complex(math.Ldexp(1, -k), 0))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := approx(a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := 0; i < k; i++ {
		if res, err = cmatrix.Mul(res, res); err != nil {
			return nil, fmt.Errorf("%s: squaring %d: %w", op, i, err)
		}
	}

	return res, nil
}

// scalingPower returns max(0, ⌈log₂(norm/ExpScalingTarget)⌉); 0 for norm = 0.
func scalingPower(norm float64) int {
	if !(norm > 0) {
		return 0
	}
	k := math.Ceil(math.Log2(norm / ExpScalingTarget))
	if k < 0 {
		return 0
	}

	return int(k)
}

// powers returns [I, A, A², …, A⁶] using A⁴ = A²·A² and A⁶ = A³·A³.
func powers(a *cmatrix.CDense) ([]*cmatrix.CDense, error) {
	id, err := cmatrix.NewIdentity(a.Dim())
	if err != nil {
		return nil, err
	}
	p := make([]*cmatrix.CDense, PadeOrder+1)
	p[0], p[1] = id, a
	pairs := [...][2]int{2: {1, 1}, 3: {2, 1}, 4: {2, 2}, 5: {4, 1}, 6: {3, 3}}
	for j := 2; j <= PadeOrder; j++ {
		if p[j], err = cmatrix.Mul(p[pairs[j][0]], p[pairs[j][1]]); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// combine returns Σ coef[j]·p[j].
func combine(p []*cmatrix.CDense, coef []float64) (*cmatrix.CDense, error) {
	out, err := cmatrix.NewCDense(p[0].Dim())
	if err != nil {
		return nil, err
	}
	var term *cmatrix.CDense
	for j := range coef {
		if term, err = cmatrix.Scale(p[j], complex(coef[j], 0)); err != nil {
			return nil, err
		}
		if out, err = cmatrix.Add(out, term); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func taylor6(a *cmatrix.CDense) (*cmatrix.CDense, error) {
	p, err := powers(a)
	if err != nil {
		return nil, err
	}

	return combine(p, taylorCoefficients[:])
}

// padeCoefficients returns cⱼ for the [q/q] approximant via
// c₀ = 1, cⱼ = cⱼ₋₁·(q−j+1) / (j·(2q−j+1)).
func padeCoefficients(q int) []float64 {
	c := make([]float64, q+1)
	c[0] = 1
	for j := 1; j <= q; j++ {
		c[j] = c[j-1] * float64(q-j+1) / float64(j*(2*q-j+1))
	}

	return c
}

func pade6(a *cmatrix.CDense) (*cmatrix.CDense, error) {
	p, err := powers(a)
	if err != nil {
		return nil, err
	}
	c := padeCoefficients(PadeOrder)
	alt := make([]float64, len(c))
	for j := range c {
		alt[j] = c[j]
		if j%2 == 1 {
			alt[j] = -c[j]
		}
	}
	num, err := combine(p, c)
	if err != nil {
		return nil, err
	}
	den, err := combine(p, alt)
	if err != nil {
		return nil, err
	}
	denInv, err := cmatrix.Inverse(den)
	if err != nil {
		return nil, fmt.Errorf("Padé denominator: %w", err)
	}

	return cmatrix.Mul(denInv, num)
}
