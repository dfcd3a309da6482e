package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/logm/diag"
	"github.com/katalvlaran/logm/flat"
	"github.com/katalvlaran/logm/logm"
)

// app is the state shared by every sub-command, resolved once in
// PersistentPreRunE from the global flags.
type app struct {
	logLevel   string
	noColor    bool
	methodName string
	pade       bool
	metrics    bool

	log    zerolog.Logger
	reg    *prometheus.Registry
	kernel *flat.Kernel
	ops    kernelOps
	method logm.Method
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "logm",
		Short:         "Matrix logarithm and rotation geodesic toolkit",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.dumpMetrics()
		},
	}
	addGlobalFlags(root.PersistentFlags(), a)

	root.AddCommand(
		newLogCmd(a),
		newExpCmd(a),
		newDistanceCmd(a),
		newInterpCmd(a),
		newBatchCmd(a),
		newRotationCmd(a),
	)

	return root
}

func addGlobalFlags(fs *pflag.FlagSet, a *app) {
	fs.StringVar(&a.logLevel, "log-level", "info", "Log level (trace|debug|info|warn|error)")
	fs.BoolVar(&a.noColor, "no-color", false, "Disable colored log output")
	fs.StringVarP(&a.methodName, "method", "m", string(logm.DefaultMethod),
		"Logarithm method (scaling-squaring|schur|schur-diagonal)")
	fs.BoolVar(&a.pade, "pade", false, "Use the Padé [6/6] exponential instead of Taylor-6")
	fs.BoolVar(&a.metrics, "metrics", false, "Log diagnostic event counters on exit")
}

func (a *app) setup(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	console := zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		TimeFormat: time.Kitchen,
		NoColor:    a.noColor,
	}
	// batch workers log concurrently
	a.log = zerolog.New(zerolog.SyncWriter(console)).Level(level).With().Timestamp().Logger()

	a.method, err = logm.ParseMethod(a.methodName)
	if err != nil {
		return fmt.Errorf("--method: %w", err)
	}

	a.reg = prometheus.NewRegistry()
	metrics, err := diag.NewMetricsObserver(a.reg)
	if err != nil {
		return err
	}

	opts := []logm.Option{
		logm.WithObserver(diag.Multi(diag.NewZerologObserver(a.log), metrics)),
	}
	if a.pade {
		opts = append(opts, logm.WithPadeExponential())
	}
	a.kernel = flat.NewKernel(opts...)
	a.kernel.Init()
	a.ops = opsFor(a.kernel, a.method)

	a.log.Debug().
		Str("method", string(a.method)).
		Bool("pade", a.pade).
		Str("command", cmd.Name()).
		Msg("kernel ready")

	return nil
}

// dumpMetrics logs every non-zero event counter.
func (a *app) dumpMetrics() error {
	if !a.metrics || a.reg == nil {
		return nil
	}
	families, err := a.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			ev := a.log.Info().Str("metric", mf.GetName())
			for _, lp := range m.GetLabel() {
				ev = ev.Str(lp.GetName(), lp.GetValue())
			}
			ev.Float64("count", m.GetCounter().GetValue()).Msg("diagnostic events")
		}
	}

	return nil
}

// kernelOps binds the flat entry points of one logarithm method.
type kernelOps struct {
	log      func(matrix []float64, n int) ([]float64, error)
	expm     func(matrix []float64, n int) ([]float64, error)
	distance func(r, t []float64, n int) (float64, error)
	interp   func(a, b []float64, t float64, n int) ([]float64, error)
}

func opsFor(k *flat.Kernel, m logm.Method) kernelOps {
	switch m {
	case logm.MethodSchur:
		return kernelOps{k.MatrixLogmEigen, k.MatrixExpm, k.GeodesicDistanceEigen, k.GeodesicInterpEigen}
	case logm.MethodSchurDiagonal:
		return kernelOps{k.MatrixLogmDiagonal, k.MatrixExpm, k.GeodesicDistanceDiagonal, k.GeodesicInterpDiagonal}
	default:
		return kernelOps{k.MatrixLogm, k.MatrixExpm, k.GeodesicDistance, k.GeodesicInterp}
	}
}
