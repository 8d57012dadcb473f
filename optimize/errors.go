package optimize

import "errors"

// Sentinel errors for the contraction-order optimizer.
var (
	// ErrTooManyFactors is returned when a Product has more Tensor factors
	// than MaxFactors; beyond that, the bitmask DP's 2^N subset space is
	// impractical to allocate.
	ErrTooManyFactors = errors.New("optimize: too many tensor factors for exact optimization")

	// ErrInvalidPlan indicates a postfix sequence failed to assemble into a
	// single contraction tree, an internal invariant violation that should
	// be unreachable for any seq singleTermOpt itself produced.
	ErrInvalidPlan = errors.New("optimize: internal invariant violated while assembling contraction plan")
)
