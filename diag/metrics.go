package diag

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/logm/logm"
)

// MetricEventsTotal is the name of the event counter.
const MetricEventsTotal = "logm_diagnostic_events_total"

// MetricsObserver counts events by kind and method.
type MetricsObserver struct {
	events *prometheus.CounterVec
}

// NewMetricsObserver creates the counter and registers it with reg.
// A nil reg leaves the counter unregistered. If an identical counter is
// already registered, the existing one is reused.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricEventsTotal,
			Help: "Diagnostic events emitted by the matrix logarithm kernels",
		},
		[]string{"kind", "method"},
	)
	if reg != nil {
		if err := reg.Register(events); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, err
			}
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, err
			}
			events = existing
		}
	}

	return &MetricsObserver{events: events}, nil
}

// Observe implements logm.Observer.
func (m *MetricsObserver) Observe(e logm.Event) {
	m.events.WithLabelValues(e.Kind.String(), e.Method).Inc()
}

// Collector exposes the underlying counter, mostly for tests and custom registries.
func (m *MetricsObserver) Collector() *prometheus.CounterVec { return m.events }
