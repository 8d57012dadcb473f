// Package cost implements the FLOP cost model for a single binary tensor
// contraction, plus the label-sorted set operations (intersection,
// symmetric difference) it and the optimize package's DP both depend on.
//
// Every function here requires its operands already sorted by
// index.ByLabel, each operand individually unique, and the two operands
// jointly unique except for the shared (contracted) subset; the network
// layer's "multiplicity never exceeds 2" invariant is what makes that
// assumption safe.
package cost

import (
	"errors"

	"github.com/ares201005/sequant-go/index"
	"slices"
)

// Sentinel errors for the cost model.
var (
	// ErrNonPositiveDimension is returned when a DimOracle yields a zero
	// dimension for some Index; the oracle must return a positive value.
	ErrNonPositiveDimension = errors.New("cost: dimension oracle returned a non-positive value")
)

// DimOracle maps an Index to its IndexSpace's dimension in the currently
// assumed physical regime. It is supplied by the caller rather than stored
// on IndexSpace so that different regimes (e.g. n_o > n_v vs n_v > n_o) can
// be explored without rebuilding the space model.
type DimOracle func(index.Index) (uint64, error)

// SortedCopy returns a copy of idxs sorted by index.ByLabel, leaving idxs
// untouched. Every function below documents that its inputs must already be
// sorted; SortedCopy is how a caller establishes that precondition once
// per tensor slot list instead of on every pairwise call.
func SortedCopy(idxs []index.Index) []index.Index {
	out := append([]index.Index(nil), idxs...)
	slices.SortFunc(out, index.ByLabel)
	return out
}

// CommonIndices returns the label-sorted indices present in both sorted
// inputs l and r, a merge-based set intersection.
func CommonIndices(l, r []index.Index) []index.Index {
	var out []index.Index
	i, j := 0, 0
	for i < len(l) && j < len(r) {
		switch index.ByLabel(l[i], r[j]) {
		case -1:
			i++
		case 1:
			j++
		default:
			out = append(out, l[i])
			i++
			j++
		}
	}
	return out
}

// ExternalIndices returns the label-sorted symmetric difference of sorted
// inputs l and r: indices appearing in exactly one of the two. This is the
// result index set of a binary contraction of factors with index sets l
// and r.
func ExternalIndices(l, r []index.Index) []index.Index {
	var out []index.Index
	i, j := 0, 0
	for i < len(l) && j < len(r) {
		switch index.ByLabel(l[i], r[j]) {
		case -1:
			out = append(out, l[i])
			i++
		case 1:
			out = append(out, r[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, l[i:]...)
	out = append(out, r[j:]...)
	return out
}

// Flops estimates the cost of contracting factors with (already
// label-sorted, individually-unique, jointly-consistent) index sets l and
// r:
//
//	flops(l, r) = 0                                     if external ∪ common is empty
//	            = ∏_{i in external ∪ common} dim(i)      otherwise
//
// where external = ExternalIndices(l, r) and common = CommonIndices(l, r).
// The product runs over every distinct index touched by the pair, outer
// (external) plus contracted (common).
func Flops(oracle DimOracle, l, r []index.Index) (float64, error) {
	external := ExternalIndices(l, r)
	common := CommonIndices(l, r)
	if len(external) == 0 && len(common) == 0 {
		return 0, nil
	}
	total := 1.0
	for _, idx := range external {
		d, err := dim(oracle, idx)
		if err != nil {
			return 0, err
		}
		total *= float64(d)
	}
	for _, idx := range common {
		d, err := dim(oracle, idx)
		if err != nil {
			return 0, err
		}
		total *= float64(d)
	}
	return total, nil
}

func dim(oracle DimOracle, idx index.Index) (uint64, error) {
	d, err := oracle(idx)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, ErrNonPositiveDimension
	}
	return d, nil
}
