// SPDX-License-Identifier: MIT

package logm

import "fmt"

// EventKind classifies a diagnostic Event.
type EventKind int

const (
	// EventInit is emitted by explicit initialization entry points.
	EventInit EventKind = iota
	// EventSchurFallback: the Schur decomposition failed and the general
	// scaling-and-squaring logarithm was used instead.
	EventSchurFallback
	// EventNonOrthogonal: the complex Schur factor had an off-diagonal entry
	// above OffDiagonalWarnTol. Value carries the largest magnitude.
	EventNonOrthogonal
	// EventSingularSqrt: Denman–Beavers met a singular iterate and returned
	// its input unchanged.
	EventSingularSqrt
	// EventSqrtCapReached: the square-root chain hit ScalingMaxSteps before
	// ‖A − I‖_F dropped below ScalingTarget. Value carries the final distance.
	EventSqrtCapReached
)

var eventKindNames = [...]string{
	EventInit:           "init",
	EventSchurFallback:  "schur_fallback",
	EventNonOrthogonal:  "non_orthogonal",
	EventSingularSqrt:   "singular_sqrt",
	EventSqrtCapReached: "sqrt_cap_reached",
}

// String returns the snake_case name used in logs and metric labels.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}

	return eventKindNames[k]
}

// Event is one diagnostic record. Events describe fallbacks taken, never failures.
type Event struct {
	Kind    EventKind
	Method  string  // Logarithm.Name() of the emitting strategy, empty for free functions
	Dim     int     // n of the matrix being processed
	Value   float64 // kind-specific magnitude, 0 when unused
	Message string
}

// Observer receives diagnostic events. Delivery is fire-and-forget:
// implementations must not block and cannot fail the computation.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

// Nop discards every event.
var Nop Observer = nopObserver{}

// Recorder keeps every observed event in memory. Not safe for concurrent use.
type Recorder struct {
	Events []Event
}

// Observe appends e.
func (r *Recorder) Observe(e Event) { r.Events = append(r.Events, e) }

// Kinds returns the kinds of the recorded events in arrival order.
func (r *Recorder) Kinds() []EventKind {
	out := make([]EventKind, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Kind
	}

	return out
}

// emit sends e to obs, tolerating a nil observer.
func emit(obs Observer, e Event) {
	if obs == nil {
		return
	}
	obs.Observe(e)
}
