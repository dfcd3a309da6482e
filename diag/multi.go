package diag

import "github.com/katalvlaran/logm/logm"

type multi []logm.Observer

func (m multi) Observe(e logm.Event) {
	for _, o := range m {
		o.Observe(e)
	}
}

// Multi fans each event out to every non-nil observer in order.
// With no observers it returns logm.Nop.
func Multi(observers ...logm.Observer) logm.Observer {
	out := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return logm.Nop
	case 1:
		return out[0]
	}

	return out
}
