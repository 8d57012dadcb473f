// File: chain.go
// Role: Chain(n) generates a linear tensor-network topology: n rank-2
// tensors T_0..T_{n-1} where T_k's ket slot is T_{k+1}'s bra slot (a shared
// dummy index), the two end slots left free, the matrix-chain-product
// shape A[o1,v1]·B[v1,o2]·C[o2,v2] generalized to any length.
package fixtures

import (
	"math/big"
	"strconv"

	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/index"
)

const minChainFactors = 1

// Chain builds a Product of n tensors forming a linear contraction chain.
// n must be >= 1 (n == 1 yields a single free-standing tensor with no
// dummy index at all, since there is no neighbor to share one with). Slot
// spaces alternate Occupied/Unoccupied along the chain.
func Chain(n int, opts ...Option) (*expr.Product, error) {
	if n < minChainFactors {
		return nil, ErrTooFewFactors
	}
	cfg := resolve(opts...)

	idxs := make([]index.Index, n+1)
	for i := range idxs {
		sp := cfg.OccSpace
		if i%2 == 1 {
			sp = cfg.VirtSpace
		}
		idx, err := index.New(chainBase(sp, cfg), uint32(i), sp)
		if err != nil {
			return nil, err
		}
		idxs[i] = idx
	}

	factors := make([]expr.Expr, n)
	for k := 0; k < n; k++ {
		label := factorLabel(k)
		factors[k] = expr.NewTensor(label,
			[]index.Index{idxs[k]}, []index.Index{idxs[k+1]}, nil,
			cfg.TensorSymmetry, cfg.BraKetSymmetry)
	}
	return expr.NewProduct(big.NewRat(1, 1), factors, expr.FlattenYes), nil
}

func chainBase(sp index.IndexSpace, cfg Config) string {
	if sp.Equal(cfg.OccSpace) {
		return "o"
	}
	return "v"
}

// factorLabel renders the k-th factor's label as a capital letter A, B, C,
// ... wrapping to T<k> past Z: short, stable, human-readable identifiers
// rather than an opaque counter.
func factorLabel(k int) string {
	if k < 26 {
		return string(rune('A' + k))
	}
	return "T" + strconv.Itoa(k)
}
