// Package schur computes Schur decompositions of real square matrices.
//
// 🚀 What is a Schur decomposition?
//
//	Every real square M factors as M = Q·T·Qᵀ with Q orthogonal and T real
//	quasi-upper-triangular: 1×1 diagonal blocks carry real eigenvalues and
//	2×2 diagonal blocks carry complex-conjugate pairs. Refining each 2×2
//	block with a unitary rotation gives the complex Schur form M = U·S·Uᴴ
//	with S upper-triangular and the eigenvalues on its diagonal.
//
// ✨ Key features:
//   - Hessenberg reduction through gonum's native LAPACK (Dgehrd, Dorghr)
//   - Francis double-shift implicit QR with an explicit tolerance and sweep cap
//   - standardized 2×2 blocks (equal diagonals, positive sub-diagonal)
//   - complex refinement for callers that want eigenvalues on the diagonal
//
// ⚙️ Usage:
//
//	rs, err := schur.Decompose(m, 1e-12, 500)
//	if errors.Is(err, schur.ErrNotConverged) {
//	  // fall back to an iteration-free method
//	}
//	cs, err := rs.Complex()
//
// Performance:
//
//   - Time:   O(n³) for the reduction, O(n²) per QR sweep
//   - Memory: O(n²)
//
// For orthogonal (more generally, normal) inputs T is block-diagonal up to
// rounding, which is what the logarithm kernels in package logm rely on.
package schur
