// SPDX-License-Identifier: MIT

package logm

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/logm/cmatrix"
)

// Logarithm is a matrix logarithm strategy. Implementations are stateless
// apart from their Observer and safe for concurrent use when it is.
type Logarithm interface {
	// Log returns log(m) as a complex matrix.
	Log(m mat.Matrix) (*cmatrix.CDense, error)
	// Name identifies the strategy in diagnostics.
	Name() string
}

// Method names a Logarithm strategy.
type Method string

const (
	// MethodScalingSquaring is the general inverse scaling-and-squaring logarithm.
	MethodScalingSquaring Method = "scaling-squaring"
	// MethodSchur is the real Schur logarithm with 2×2 block handling.
	MethodSchur Method = "schur"
	// MethodSchurDiagonal is the complex Schur logarithm that treats T as diagonal.
	MethodSchurDiagonal Method = "schur-diagonal"
)

// Methods lists every supported Method in a stable order.
func Methods() []Method {
	return []Method{MethodScalingSquaring, MethodSchur, MethodSchurDiagonal}
}

// ParseMethod maps a name to a Method. Matching ignores case and accepts
// "eigen" as an alias for MethodSchur.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(MethodScalingSquaring), "general":
		return MethodScalingSquaring, nil
	case string(MethodSchur), "eigen":
		return MethodSchur, nil
	case string(MethodSchurDiagonal), "diagonal":
		return MethodSchurDiagonal, nil
	}

	return "", fmt.Errorf("ParseMethod(%q): %w", s, ErrUnknownMethod)
}

// NewLogarithm builds the strategy for method.
func NewLogarithm(method Method, opts ...Option) (Logarithm, error) {
	o := NewOptions(opts...)
	switch method {
	case MethodScalingSquaring:
		return ScalingSquaring{Observer: o.Observer()}, nil
	case MethodSchur:
		return SchurOrthogonal{Observer: o.Observer()}, nil
	case MethodSchurDiagonal:
		return SchurDiagonal{Observer: o.Observer()}, nil
	}

	return nil, fmt.Errorf("NewLogarithm(%q): %w", method, ErrUnknownMethod)
}

// ScalingSquaring is the Logarithm backed by LogScalingSquaring.
type ScalingSquaring struct {
	Observer Observer // may be nil
}

// Log implements Logarithm.
func (s ScalingSquaring) Log(m mat.Matrix) (*cmatrix.CDense, error) {
	return run{obs: s.Observer, method: s.Name()}.logScaling(m)
}

// Name implements Logarithm.
func (ScalingSquaring) Name() string { return string(MethodScalingSquaring) }

// SchurOrthogonal is the Logarithm backed by LogSchur. Decomposition
// failures fall back to scaling and squaring inside Log.
type SchurOrthogonal struct {
	Observer Observer // may be nil
}

// Log implements Logarithm.
func (s SchurOrthogonal) Log(m mat.Matrix) (*cmatrix.CDense, error) {
	return run{obs: s.Observer, method: s.Name()}.logSchur(m)
}

// Name implements Logarithm.
func (SchurOrthogonal) Name() string { return string(MethodSchur) }

// SchurDiagonal is the Logarithm backed by LogSchurDiagonal.
type SchurDiagonal struct {
	Observer Observer // may be nil
}

// Log implements Logarithm.
func (s SchurDiagonal) Log(m mat.Matrix) (*cmatrix.CDense, error) {
	return run{obs: s.Observer, method: s.Name()}.logSchurDiagonal(m)
}

// Name implements Logarithm.
func (SchurDiagonal) Name() string { return string(MethodSchurDiagonal) }

// run carries the observer through one top-level call.
type run struct {
	obs    Observer
	method string
}

func (r run) emit(kind EventKind, dim int, value float64, msg string) {
	emit(r.obs, Event{Kind: kind, Method: r.method, Dim: dim, Value: value, Message: msg})
}
