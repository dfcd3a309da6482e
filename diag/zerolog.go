package diag

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/logm/logm"
)

// ZerologObserver writes every event as one structured record.
type ZerologObserver struct {
	log zerolog.Logger
}

// NewZerologObserver binds an observer to l. The logger is copied.
func NewZerologObserver(l zerolog.Logger) *ZerologObserver {
	return &ZerologObserver{log: l}
}

// Observe implements logm.Observer.
func (z *ZerologObserver) Observe(e logm.Event) {
	ev := z.log.WithLevel(levelFor(e.Kind)).
		Str("kind", e.Kind.String()).
		Int("dim", e.Dim).
		Float64("value", e.Value)
	if e.Method != "" {
		ev = ev.Str("method", e.Method)
	}
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	ev.Msg(msg)
}

// levelFor maps fallbacks and non-normal inputs to Warn, bookkeeping to Debug.
func levelFor(k logm.EventKind) zerolog.Level {
	switch k {
	case logm.EventSchurFallback, logm.EventNonOrthogonal, logm.EventSingularSqrt:
		return zerolog.WarnLevel
	default:
		return zerolog.DebugLevel
	}
}
