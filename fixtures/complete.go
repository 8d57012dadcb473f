// File: complete.go
// Role: Complete(n) generates an all-to-all tensor-network topology: n
// tensors where every pair (i, j) shares one dummy index unique to that
// pair, so the whole network fully contracts to a scalar with no free
// indices, the tensor-network analogue of the complete graph K_n.
package fixtures

import (
	"math/big"

	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/index"
)

const minCompleteFactors = 2

// Complete builds a Product of n tensors, each of ket-rank n-1, such that
// tensor i and tensor j (i < j) share exactly one dummy index e_ij. All
// dummy indices are drawn from cfg.VirtSpace: a complete graph's pairwise
// indices have no natural occ/virt alternation the way a chain's do.
// n must be >= 2.
func Complete(n int, opts ...Option) (*expr.Product, error) {
	if n < minCompleteFactors {
		return nil, ErrTooFewFactors
	}
	cfg := resolve(opts...)

	pairIdx := make(map[[2]int]index.Index)
	counter := uint32(0)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			idx, err := index.New("e", counter, cfg.VirtSpace)
			if err != nil {
				return nil, err
			}
			pairIdx[[2]int{i, j}] = idx
			counter++
		}
	}

	factors := make([]expr.Expr, n)
	for i := 0; i < n; i++ {
		slots := make([]index.Index, 0, n-1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			key := [2]int{i, j}
			if i > j {
				key = [2]int{j, i}
			}
			slots = append(slots, pairIdx[key])
		}
		factors[i] = expr.NewTensor(factorLabel(i), nil, slots, nil, cfg.TensorSymmetry, cfg.BraKetSymmetry)
	}
	return expr.NewProduct(big.NewRat(1, 1), factors, expr.FlattenYes), nil
}
