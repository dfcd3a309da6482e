// Package logm computes principal matrix logarithms and exponentials of real
// square matrices, with strategies tuned for rotation (orthogonal) inputs.
//
// 🚀 What is in here?
//
//	log(M) is the matrix L with exp(L) = M. For a rotation R it is the
//	skew-symmetric generator whose Frobenius norm measures how far R turns
//	away from the identity. Three interchangeable strategies compute it:
//	  • ScalingSquaring: Denman–Beavers square roots until ‖A − I‖_F < ½,
//	    then a truncated log(I+X) series, then multiply by 2ᵏ (general purpose)
//	  • SchurOrthogonal: real Schur form with closed-form logs of 1×1 and
//	    2×2 blocks (fastest and most accurate on orthogonal inputs)
//	  • SchurDiagonal: complex Schur form, principal log of each eigenvalue
//
// ✨ Key features:
//   - every threshold and iteration cap is an exported constant
//   - numerical trouble never fails a call; it degrades and reports an Event
//   - Schur strategies retry with ScalingSquaring when the QR iteration stalls
//   - Expm (order-6 Taylor) and ExpmPade ([6/6] Padé) behind one Exponential type
//
// ⚙️ Usage:
//
//	rec := &logm.Recorder{}
//	lg, _ := logm.NewLogarithm(logm.MethodSchur, logm.WithObserver(rec))
//	l, err := lg.Log(r)          // *cmatrix.CDense
//	back, err := logm.Expm(l)    // ≈ r
//
// Performance:
//
//   - Time:   O(n³) per call for every strategy
//   - Memory: O(n²)
//
// All functions are pure. Concurrent calls on distinct inputs are safe as
// long as the configured Observer is.
package logm
