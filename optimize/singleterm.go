package optimize

import (
	"math/bits"

	"github.com/ares201005/sequant-go/cost"
	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/index"
)

// stop is the postfix sentinel meaning "apply binary contraction to the top
// two elements of the stack".
const stop = -1

// dpState is the bitmask-DP record for one nonempty subset of factors:
// its remaining free indices, minimal FLOP cost, and the postfix sequence
// that achieves it. One dpState lives at dp[mask], a flat slice indexed
// directly by the subset's bitmask; a subset's optimal cost depends only
// on the subset itself, never on the order its factors were contracted in,
// so no extra table dimension is needed.
type dpState struct {
	indices []index.Index
	flops   float64
	seq     []int
}

// singleTermOpt runs a bitmask dynamic program over the power set of
// tensors, returning the optimal postfix (reverse-Polish) contraction
// sequence. Positional integers in [0, len(tensors)) denote factors; stop
// means "contract the top two stack entries".
func singleTermOpt(tensors []*expr.Tensor, oracle cost.DimOracle) ([]int, error) {
	n := len(tensors)
	switch {
	case n == 0:
		return nil, nil
	case n == 1:
		return []int{0}, nil
	case n > MaxFactors:
		return nil, ErrTooManyFactors
	}

	full := (1 << uint(n)) - 1
	dp := make([]*dpState, full+1)
	for i, t := range tensors {
		dp[1<<uint(i)] = &dpState{
			indices: cost.SortedCopy(t.Slots()),
			flops:   0,
			seq:     []int{i},
		}
	}

	for mask := 1; mask <= full; mask++ {
		if bits.OnesCount(uint(mask)) < 2 {
			continue // singletons are already seeded above
		}
		parts := bipartitions(mask)
		var best *dpState
		// Walk partitions in bipartitions' own ascending-L order so that
		// the partition with the numerically largest L mask is tried last
		// and, via the <= tie-break below, displaces any earlier equal-cost
		// candidate: later equal candidates win.
		for i := 0; i < len(parts); i++ {
			l, r := parts[i][0], parts[i][1]
			sl, sr := dp[l], dp[r]
			if sl == nil || sr == nil {
				continue
			}
			pairCost, err := cost.Flops(oracle, sl.indices, sr.indices)
			if err != nil {
				return nil, err
			}
			total := sl.flops + sr.flops + pairCost
			if best == nil || total <= best.flops {
				best = &dpState{
					indices: cost.ExternalIndices(sl.indices, sr.indices),
					flops:   total,
					seq:     assembleSeq(sl.seq, sr.seq),
				}
			}
		}
		dp[mask] = best
	}

	result := dp[full]
	if result == nil {
		return nil, ErrInvalidPlan
	}
	return result.seq, nil
}

// assembleSeq concatenates two sub-sequences, the one whose first element
// is numerically smaller going first, then appends stop. Applied
// bottom-up, this uniquely serializes the tree regardless of which side of
// a partition was "left".
func assembleSeq(l, r []int) []int {
	out := make([]int, 0, len(l)+len(r)+1)
	if l[0] < r[0] {
		out = append(out, l...)
		out = append(out, r...)
	} else {
		out = append(out, r...)
		out = append(out, l...)
	}
	return append(out, stop)
}
