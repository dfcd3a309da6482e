// SPDX-License-Identifier: MIT

package logm

import "errors"

// ErrUnknownMethod is returned by ParseMethod and NewLogarithm for an
// unrecognized strategy name.
//
// Numerical degradations (singular square roots, Schur failures, λ = 0) never
// surface as errors; they are reported as Events on the Observer.
var ErrUnknownMethod = errors.New("logm: unknown logarithm method")
