// SPDX-License-Identifier: MIT

package logm

import (
	"fmt"

	"github.com/katalvlaran/logm/cmatrix"
)

// LogNearIdentity evaluates log(A) = log(I + X) = X − X²/2 + X³/3 − … with X = A − I.
// Terms are added up to index SeriesMaxTerms; the sum stops early right after
// a term whose Frobenius norm is below SeriesTol.
//
// The series converges only for ‖X‖ < 1. Nothing checks that here; the
// scaling-and-squaring driver is responsible for bringing A close to I.
func LogNearIdentity(a *cmatrix.CDense) (*cmatrix.CDense, error) {
	x, err := cmatrix.SubIdentity(a)
	if err != nil {
		return nil, fmt.Errorf("LogNearIdentity: %w", err)
	}
	result := x.Clone()
	power := x

	var term *cmatrix.CDense
	var coef complex128
	for k := 2; k <= SeriesMaxTerms; k++ {
		if power, err = cmatrix.Mul(power, x); err != nil {
			return nil, fmt.Errorf("LogNearIdentity: term %d: %w", k, err)
		}
		coef = complex(1/float64(k), 0)
		if k%2 == 0 {
			coef = -coef
		}
		if term, err = cmatrix.Scale(power, coef); err != nil {
			return nil, fmt.Errorf("LogNearIdentity: term %d: %w", k, err)
		}
		if result, err = cmatrix.Add(result, term); err != nil {
			return nil, fmt.Errorf("LogNearIdentity: term %d: %w", k, err)
		}
		if cmatrix.FrobeniusNorm(term) < SeriesTol {
			break
		}
	}

	return result, nil
}
