package diag_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/logm/diag"
	"github.com/katalvlaran/logm/logm"
)

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}

	return out
}

func TestZerologObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := diag.NewZerologObserver(zerolog.New(&buf).Level(zerolog.DebugLevel))

	obs.Observe(logm.Event{Kind: logm.EventSchurFallback, Method: "schur", Dim: 3, Message: "decomposition failed"})
	obs.Observe(logm.Event{Kind: logm.EventSqrtCapReached, Dim: 2, Value: 0.75})

	recs := records(t, &buf)
	require.Len(t, recs, 2)

	require.Equal(t, "warn", recs[0]["level"])
	require.Equal(t, "schur_fallback", recs[0]["kind"])
	require.Equal(t, "schur", recs[0]["method"])
	require.EqualValues(t, 3, recs[0]["dim"])
	require.Equal(t, "decomposition failed", recs[0]["message"])

	require.Equal(t, "debug", recs[1]["level"])
	require.Equal(t, "sqrt_cap_reached", recs[1]["message"])
	require.EqualValues(t, 0.75, recs[1]["value"])
	require.NotContains(t, recs[1], "method")
}

func TestZerologObserver_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	obs := diag.NewZerologObserver(zerolog.New(&buf).Level(zerolog.WarnLevel))

	obs.Observe(logm.Event{Kind: logm.EventInit})
	obs.Observe(logm.Event{Kind: logm.EventNonOrthogonal, Method: "schur-diagonal", Dim: 2, Value: 0.5})

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	require.Equal(t, "non_orthogonal", recs[0]["kind"])
}

func TestMetricsObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := diag.NewMetricsObserver(reg)
	require.NoError(t, err)

	obs.Observe(logm.Event{Kind: logm.EventNonOrthogonal, Method: "schur-diagonal"})
	obs.Observe(logm.Event{Kind: logm.EventNonOrthogonal, Method: "schur-diagonal"})
	obs.Observe(logm.Event{Kind: logm.EventInit})

	c := obs.Collector()
	require.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues("non_orthogonal", "schur-diagonal")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.WithLabelValues("init", "")))
	require.Equal(t, 2, testutil.CollectAndCount(c, diag.MetricEventsTotal))

	// a second observer on the same registry shares the counter
	again, err := diag.NewMetricsObserver(reg)
	require.NoError(t, err)
	again.Observe(logm.Event{Kind: logm.EventInit})
	require.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues("init", "")))
}

func TestMetricsObserver_Conflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: diag.MetricEventsTotal,
		Help: "something else",
	}))

	_, err := diag.NewMetricsObserver(reg)
	require.Error(t, err)
}

func TestMetricsObserver_Unregistered(t *testing.T) {
	obs, err := diag.NewMetricsObserver(nil)
	require.NoError(t, err)
	obs.Observe(logm.Event{Kind: logm.EventSingularSqrt})
	require.Equal(t, 1.0, testutil.ToFloat64(obs.Collector().WithLabelValues("singular_sqrt", "")))
}

func TestMulti(t *testing.T) {
	require.Equal(t, logm.Nop, diag.Multi())
	require.Equal(t, logm.Nop, diag.Multi(nil, nil))

	a, b := &logm.Recorder{}, &logm.Recorder{}
	require.Same(t, a, diag.Multi(nil, a))

	m := diag.Multi(a, nil, b)
	m.Observe(logm.Event{Kind: logm.EventInit})
	require.Equal(t, []logm.EventKind{logm.EventInit}, a.Kinds())
	require.Equal(t, []logm.EventKind{logm.EventInit}, b.Kinds())
}

func TestEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	metrics, err := diag.NewMetricsObserver(reg)
	require.NoError(t, err)
	obs := diag.Multi(diag.NewZerologObserver(zerolog.New(zerolog.SyncWriter(&buf))), metrics)

	lg, err := logm.NewLogarithm(logm.MethodSchurDiagonal, logm.WithObserver(obs))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lg.Log(mat.NewDense(2, 2, []float64{1, 0.5, 0, 2}))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got := testutil.ToFloat64(metrics.Collector().WithLabelValues("non_orthogonal", "schur-diagonal"))
	require.Equal(t, 8.0, got)
	require.Len(t, records(t, &buf), 8)
}
