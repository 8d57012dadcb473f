package optimize

// bipartitions enumerates every non-trivial bipartition (L, R) of mask: all
// (L, R) with L | R == mask, L & R == 0, L != 0, R != 0, and L < R, so each
// unordered pair is reported exactly once, with the numerically smaller
// mask first. Worked examples:
//
//	bipartitions(3)  == 0b0011 -> [(1, 2)]
//	bipartitions(11) == 0b1011 -> [(1, 10), (2, 9), (3, 8)]
//
// Pairs are returned in increasing order of L. singleTermOpt's tie-break
// additionally depends on this specific order, see its doc comment.
func bipartitions(mask int) [][2]int {
	var out [][2]int
	for l := 1; l < mask; l++ {
		if l&mask != l {
			continue // l is not a submask of mask
		}
		r := mask ^ l
		if l < r {
			out = append(out, [2]int{l, r})
		}
	}
	return out
}
