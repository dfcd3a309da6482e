// Package logm is a small numerical toolkit for the principal matrix
// logarithm, the matrix exponential and geodesics on the rotation group.
//
// 🚀 What is logm?
//
//	A pure-Go, gonum-backed library that brings together:
//		• Complex matrices: CDense with fail-fast validation
//		• Real Schur form: Hessenberg reduction + Francis double-shift QR
//		• Logarithms: inverse scaling-and-squaring, Schur (quasi-triangular), Schur (diagonal)
//		• Exponential: Taylor-6 with scaling and squaring, opt-in Padé [6/6]
//		• Geodesics: distance ‖log(Rᵀ·T)‖_F and interpolation A·exp(t·log(Aᵀ·B))
//		• Diagnostics: fallback events routed to zerolog and Prometheus
//
// ✨ Why choose logm?
//
//   - Degrades, never fails, on numerically hard inputs; every fallback is observable
//   - Stateless kernels, safe to call from many goroutines
//   - Flat row-major []float64 boundary for hosts that cannot share Go types
//
// Under the hood, everything is organized under these subpackages:
//
//	cmatrix/  — CDense, validators, flat conversions, sentinel errors
//	schur/    — real and complex Schur decomposition
//	logm/     — square root, series, logarithm strategies, exponential, observers
//	geodesic/ — distance, interpolation and sampled paths between rotations
//	flat/     — the flat-array entry points
//	diag/     — zerolog and Prometheus observers
//	cmd/logm/ — CLI over YAML documents, with a parallel batch mode
//
// Quick example:
//
//	R = [[cos θ, −sin θ], [sin θ, cos θ]]   ⇒   log R = [[0, −θ], [θ, 0]]
//
//	go get github.com/katalvlaran/logm
package logm
