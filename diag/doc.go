// Package diag turns logm diagnostic events into operational signals.
//
// The numerical kernels never log or count anything themselves; they hand
// each Event to a logm.Observer. This package supplies the observers a host
// process usually wants:
//
//	zl := diag.NewZerologObserver(log.Logger)
//	mo := diag.NewMetricsObserver(prometheus.DefaultRegisterer)
//	lg, _ := logm.NewLogarithm(logm.MethodSchur, logm.WithObserver(diag.Multi(zl, mo)))
//
// All observers here are safe for concurrent use.
package diag
