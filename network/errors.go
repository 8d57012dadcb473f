package network

import "errors"

// Sentinel errors for TensorNetwork construction and canonicalization.
var (
	// ErrIndexMultiplicity is returned when an index occurs in more than two
	// tensor slots across a network: no index may have multiplicity greater
	// than two (an external occurrence plus at most one contraction
	// partner).
	ErrIndexMultiplicity = errors.New("network: index multiplicity exceeds two")

	// ErrInvalidNetwork is the public surface for an internally detected
	// invariant violation, recovered and converted at the optimize package
	// boundary.
	ErrInvalidNetwork = errors.New("network: invalid tensor network")
)
