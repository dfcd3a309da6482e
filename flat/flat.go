// SPDX-License-Identifier: MIT
// Package flat is the narrow boundary used by host runtimes: every entry
// point takes row-major float64 arrays plus an explicit dimension n and
// returns flat arrays or scalars.
//
// Layout:
//   - real input/output:  length n², arr[i*n+j] = entry (i,j)
//   - complex output:     length 2n², interleaved (re, im) per entry
//
// Every entry point validates n ≥ 1, len == n² and finiteness before doing
// any arithmetic. Numerical fallbacks never fail a call; they are reported to
// the Kernel's Observer.
package flat

import (
	"fmt"

	"github.com/katalvlaran/logm/cmatrix"
	"github.com/katalvlaran/logm/geodesic"
	"github.com/katalvlaran/logm/logm"
)

// Kernel binds the entry points to one configuration. The zero value is not
// usable; call NewKernel.
type Kernel struct {
	obs logm.Observer
	exp logm.Exponential
}

// NewKernel resolves opts once and returns a Kernel safe for concurrent use
// whenever its Observer is.
func NewKernel(opts ...logm.Option) *Kernel {
	o := logm.NewOptions(opts...)

	return &Kernel{obs: o.Observer(), exp: o.Exponential()}
}

// Default backs the package-level functions: no observer, Taylor exponential.
var Default = NewKernel()

// Init emits a startup EventInit. It has no other effect.
func (k *Kernel) Init() {
	k.obs.Observe(logm.Event{Kind: logm.EventInit, Message: "logm kernels initialized"})
}

// MatrixLogm returns log(M) by scaling and squaring as 2n² interleaved values.
func (k *Kernel) MatrixLogm(matrix []float64, n int) ([]float64, error) {
	return k.logOf(logm.MethodScalingSquaring, matrix, n, "MatrixLogm")
}

// MatrixLogmEigen returns log(M) through the real Schur form as 2n² interleaved values.
func (k *Kernel) MatrixLogmEigen(matrix []float64, n int) ([]float64, error) {
	return k.logOf(logm.MethodSchur, matrix, n, "MatrixLogmEigen")
}

// MatrixLogmDiagonal returns log(M) through the complex Schur form as 2n² interleaved values.
func (k *Kernel) MatrixLogmDiagonal(matrix []float64, n int) ([]float64, error) {
	return k.logOf(logm.MethodSchurDiagonal, matrix, n, "MatrixLogmDiagonal")
}

// MatrixExpm returns the real part of exp(M), n² values.
func (k *Kernel) MatrixExpm(matrix []float64, n int) ([]float64, error) {
	m, err := cmatrix.RealFromFlat(matrix, n)
	if err != nil {
		return nil, fmt.Errorf("MatrixExpm: %w", err)
	}
	c, err := cmatrix.FromReal(m)
	if err != nil {
		return nil, fmt.Errorf("MatrixExpm: %w", err)
	}
	e, err := k.exp(c)
	if err != nil {
		return nil, fmt.Errorf("MatrixExpm: %w", err)
	}

	return cmatrix.ToFlatReal(e), nil
}

// GeodesicDistance returns ‖log(Rᵀ·T)‖_F using scaling and squaring.
func (k *Kernel) GeodesicDistance(r, t []float64, n int) (float64, error) {
	return k.distance(logm.MethodScalingSquaring, r, t, n, "GeodesicDistance")
}

// GeodesicDistanceEigen is GeodesicDistance with the real Schur logarithm.
func (k *Kernel) GeodesicDistanceEigen(r, t []float64, n int) (float64, error) {
	return k.distance(logm.MethodSchur, r, t, n, "GeodesicDistanceEigen")
}

// GeodesicDistanceDiagonal is GeodesicDistance with the complex Schur logarithm.
func (k *Kernel) GeodesicDistanceDiagonal(r, t []float64, n int) (float64, error) {
	return k.distance(logm.MethodSchurDiagonal, r, t, n, "GeodesicDistanceDiagonal")
}

// GeodesicInterp returns the real part of A·exp(t·log(Aᵀ·B)), n² values,
// using scaling and squaring for the logarithm.
func (k *Kernel) GeodesicInterp(a, b []float64, t float64, n int) ([]float64, error) {
	return k.interp(logm.MethodScalingSquaring, a, b, t, n, "GeodesicInterp")
}

// GeodesicInterpEigen is GeodesicInterp with the real Schur logarithm.
func (k *Kernel) GeodesicInterpEigen(a, b []float64, t float64, n int) ([]float64, error) {
	return k.interp(logm.MethodSchur, a, b, t, n, "GeodesicInterpEigen")
}

// GeodesicInterpDiagonal is GeodesicInterp with the complex Schur logarithm.
func (k *Kernel) GeodesicInterpDiagonal(a, b []float64, t float64, n int) ([]float64, error) {
	return k.interp(logm.MethodSchurDiagonal, a, b, t, n, "GeodesicInterpDiagonal")
}

func (k *Kernel) logOf(method logm.Method, matrix []float64, n int, op string) ([]float64, error) {
	m, err := cmatrix.RealFromFlat(matrix, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	lg, err := k.logarithm(method)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	l, err := lg.Log(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cmatrix.ToFlatComplex(l), nil
}

func (k *Kernel) distance(method logm.Method, r, t []float64, n int, op string) (float64, error) {
	rm, err := cmatrix.RealFromFlat(r, n)
	if err != nil {
		return 0, fmt.Errorf("%s: r: %w", op, err)
	}
	tm, err := cmatrix.RealFromFlat(t, n)
	if err != nil {
		return 0, fmt.Errorf("%s: t: %w", op, err)
	}
	lg, err := k.logarithm(method)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	d, err := geodesic.Distance(rm, tm, lg)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return d, nil
}

func (k *Kernel) interp(method logm.Method, a, b []float64, t float64, n int, op string) ([]float64, error) {
	am, err := cmatrix.RealFromFlat(a, n)
	if err != nil {
		return nil, fmt.Errorf("%s: a: %w", op, err)
	}
	bm, err := cmatrix.RealFromFlat(b, n)
	if err != nil {
		return nil, fmt.Errorf("%s: b: %w", op, err)
	}
	lg, err := k.logarithm(method)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c, err := geodesic.Interpolate(am, bm, t, lg, k.exp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cmatrix.DenseToFlat(c), nil
}

func (k *Kernel) logarithm(method logm.Method) (logm.Logarithm, error) {
	return logm.NewLogarithm(method, logm.WithObserver(k.obs))
}

// Package-level entry points backed by Default.

// Init emits the startup diagnostic on Default.
func Init() { Default.Init() }

// MatrixLogm calls Default.MatrixLogm.
func MatrixLogm(matrix []float64, n int) ([]float64, error) { return Default.MatrixLogm(matrix, n) }

// MatrixLogmEigen calls Default.MatrixLogmEigen.
func MatrixLogmEigen(matrix []float64, n int) ([]float64, error) {
	return Default.MatrixLogmEigen(matrix, n)
}

// MatrixLogmDiagonal calls Default.MatrixLogmDiagonal.
func MatrixLogmDiagonal(matrix []float64, n int) ([]float64, error) {
	return Default.MatrixLogmDiagonal(matrix, n)
}

// MatrixExpm calls Default.MatrixExpm.
func MatrixExpm(matrix []float64, n int) ([]float64, error) { return Default.MatrixExpm(matrix, n) }

// GeodesicDistance calls Default.GeodesicDistance.
func GeodesicDistance(r, t []float64, n int) (float64, error) {
	return Default.GeodesicDistance(r, t, n)
}

// GeodesicDistanceEigen calls Default.GeodesicDistanceEigen.
func GeodesicDistanceEigen(r, t []float64, n int) (float64, error) {
	return Default.GeodesicDistanceEigen(r, t, n)
}

// GeodesicDistanceDiagonal calls Default.GeodesicDistanceDiagonal.
func GeodesicDistanceDiagonal(r, t []float64, n int) (float64, error) {
	return Default.GeodesicDistanceDiagonal(r, t, n)
}

// GeodesicInterp calls Default.GeodesicInterp.
func GeodesicInterp(a, b []float64, t float64, n int) ([]float64, error) {
	return Default.GeodesicInterp(a, b, t, n)
}

// GeodesicInterpEigen calls Default.GeodesicInterpEigen.
func GeodesicInterpEigen(a, b []float64, t float64, n int) ([]float64, error) {
	return Default.GeodesicInterpEigen(a, b, t, n)
}

// GeodesicInterpDiagonal calls Default.GeodesicInterpDiagonal.
func GeodesicInterpDiagonal(a, b []float64, t float64, n int) ([]float64, error) {
	return Default.GeodesicInterpDiagonal(a, b, t, n)
}
