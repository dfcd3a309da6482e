// SPDX-License-Identifier: MIT

package logm

// Numerical thresholds and iteration caps. Changing any of them changes
// observable output; they are part of the package contract.
const (
	// SqrtMaxIter caps the Denman–Beavers iteration.
	SqrtMaxIter = 10

	// SqrtTol stops Denman–Beavers once ‖Yₖ₊₁ − Yₖ‖_F < SqrtTol.
	SqrtTol = 1e-12

	// SeriesMaxTerms is the highest term index of the log(I+X) series.
	SeriesMaxTerms = 20

	// SeriesTol stops the series after a term with Frobenius norm below it.
	SeriesTol = 1e-15

	// ScalingTarget is the ‖A − I‖_F bound the square-root chain drives towards.
	ScalingTarget = 0.5

	// ScalingMaxSteps caps the number of square roots taken.
	ScalingMaxSteps = 20

	// SchurTol and SchurMaxIter parameterize schur.Decompose.
	SchurTol     = 1e-12
	SchurMaxIter = 500

	// BlockTol classifies a sub-diagonal entry of T as the start of a 2×2 block.
	BlockTol = 1e-10

	// DividedDiffTol leaves an off-diagonal log(T) entry at zero when the
	// eigenvalue-log difference is smaller.
	DividedDiffTol = 1e-10

	// OffDiagonalWarnTol is the off-diagonal magnitude of the complex Schur
	// factor beyond which the input is reported as non-orthogonal.
	OffDiagonalWarnTol = 1e-6

	// LogZeroSubstitute replaces log(0) to keep results finite.
	LogZeroSubstitute = -1e10

	// ExpScalingTarget is the ‖A‖_F bound after scaling in the exponential.
	ExpScalingTarget = 0.5

	// PadeOrder is the degree of the diagonal Padé approximant used by ExpmPade.
	PadeOrder = 6
)

// off-diagonal entries of T below this magnitude carry no information.
const offDiagonalZero = 1e-12
