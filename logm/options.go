// SPDX-License-Identifier: MIT

// Package logm: functional configuration for the Logarithm strategies.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults,
//   - WithX constructors that panic on nonsensical values (programmer error).
//
// Numerical constants are not configurable; see constants.go.
package logm

// DefaultMethod is the strategy used when none is named.
const DefaultMethod = MethodScalingSquaring

const panicNilObserver = "logm: WithObserver: observer must not be nil"

// Option mutates Options. Applying the same Option twice is harmless.
type Option func(*Options)

// Options is the resolved configuration. Fields are unexported; build it
// with NewOptions.
type Options struct {
	observer Observer    // Nop by default
	exp      Exponential // ExpTaylor by default
}

// WithObserver routes diagnostic events to obs.
// Panics if obs is nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic(panicNilObserver)
	}

	return func(o *Options) { o.observer = obs }
}

// WithPadeExponential selects ExpmPade for every exponential computed on
// behalf of the caller (geodesic interpolation, CLI expm).
func WithPadeExponential() Option {
	return func(o *Options) { o.exp = ExpPade }
}

// NewOptions resolves opts against the defaults. nil entries are skipped.
func NewOptions(opts ...Option) Options {
	o := Options{observer: Nop, exp: ExpTaylor}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Observer returns the configured observer (never nil).
func (o Options) Observer() Observer {
	if o.observer == nil {
		return Nop
	}

	return o.observer
}

// Exponential returns the configured exponential (never nil).
func (o Options) Exponential() Exponential {
	if o.exp == nil {
		return ExpTaylor
	}

	return o.exp
}
