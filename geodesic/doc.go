// Package geodesic measures and walks the rotation manifold using matrix
// logarithms and exponentials from package logm.
//
// 🚀 What is a geodesic here?
//
//	For rotations R and T the relative rotation U = Rᵀ·T is itself a
//	rotation, and log(U) is the skew generator that turns R into T along the
//	shortest path. Its Frobenius norm is the geodesic distance (√2·angle in
//	3D), and A·exp(t·log(AᵀB)) sweeps that path as t goes from 0 to 1.
//
// ✨ Key features:
//   - any logm.Logarithm strategy (scaling-squaring, Schur, diagonal Schur)
//   - any logm.Exponential (order-6 Taylor or [6/6] Padé)
//   - t is not clamped: t < 0 or t > 1 extrapolates along the same geodesic
//   - Path reuses a single logarithm for evenly spaced samples
//
// ⚙️ Usage:
//
//	lg, _ := logm.NewLogarithm(logm.MethodSchur)
//	d, err := geodesic.Distance(r, t, lg)
//	mid, err := geodesic.Interpolate(a, b, 0.5, lg, logm.ExpPade)
//
// Passing a nil Logarithm selects logm.ScalingSquaring; a nil Exponential
// selects logm.ExpTaylor.
package geodesic
