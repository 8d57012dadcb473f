package optimize

import (
	"slices"

	"github.com/ares201005/sequant-go/expr"
)

// Reorder is the multi-term heuristic: given the already
// single-term-optimized form of each summand of a Sum, it returns a
// permutation of [0, len(terms)) under which summands sharing a structural
// intermediate (a contracted *Product sub-tree appearing in more than one
// term's optimized tree) become contiguous, which improves downstream
// common-subexpression elimination. This never changes any term's value;
// it only reorders them.
func Reorder(terms []expr.Expr) []int {
	n := len(terms)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	firstSeenBy := make(map[uint64]int)
	for i, term := range terms {
		term.Visit(func(e expr.Expr) {
			if _, ok := expr.As[*expr.Product](e); !ok {
				return
			}
			h := e.HashValue()
			if owner, seen := firstSeenBy[h]; seen {
				union(owner, i)
			} else {
				firstSeenBy[h] = i
			}
		})
	}

	byRoot := make(map[int][]int)
	for i := 0; i < n; i++ {
		r := find(i)
		byRoot[r] = append(byRoot[r], i)
	}

	type cluster struct {
		members []int
		minIdx  int
	}
	clusters := make([]cluster, 0, len(byRoot))
	for _, members := range byRoot {
		slices.Sort(members)
		clusters = append(clusters, cluster{members: members, minIdx: members[0]})
	}
	// Descending cluster size, then ascending smallest original index;
	// minIdx is unique per cluster, so this is already a total order and
	// the result is deterministic despite byRoot's map iteration order.
	slices.SortFunc(clusters, func(a, b cluster) int {
		switch {
		case len(a.members) != len(b.members):
			if len(a.members) > len(b.members) {
				return -1
			}
			return 1
		case a.minIdx != b.minIdx:
			if a.minIdx < b.minIdx {
				return -1
			}
			return 1
		default:
			return 0
		}
	})

	perm := make([]int, 0, n)
	for _, c := range clusters {
		perm = append(perm, c.members...)
	}
	return perm
}
