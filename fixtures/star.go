// File: star.go
// Role: Star(n) generates a hub-and-spoke tensor-network topology: one
// central tensor of ket-rank n, and n leaf tensors each contracting a
// single dummy index against one of the hub's slots. A hub of arity 0
// would be a trivial single tensor, so Star always wires every leaf to the
// hub.
package fixtures

import (
	"math/big"

	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/index"
)

const minStarLeaves = 1

// hubLabel is the fixed label for the central tensor.
const hubLabel = "Hub"

// Star builds a Product of 1 + n tensors: a central "Hub" tensor with ket
// slots dummy_0..dummy_{n-1}, and n leaf tensors LeafA, LeafB, ... each with
// a single bra slot contracting the matching hub dummy. n must be >= 1.
// Every dummy index alternates Occupied/Unoccupied by parity so the
// resulting network exercises both spaces' dimensions.
func Star(n int, opts ...Option) (*expr.Product, error) {
	if n < minStarLeaves {
		return nil, ErrTooFewFactors
	}
	cfg := resolve(opts...)

	dummies := make([]index.Index, n)
	for i := range dummies {
		sp := cfg.OccSpace
		if i%2 == 1 {
			sp = cfg.VirtSpace
		}
		base := "i"
		if sp.Equal(cfg.VirtSpace) {
			base = "a"
		}
		idx, err := index.New(base, uint32(i), sp)
		if err != nil {
			return nil, err
		}
		dummies[i] = idx
	}

	hub := expr.NewTensor(hubLabel, nil, dummies, nil, cfg.TensorSymmetry, cfg.BraKetSymmetry)

	factors := make([]expr.Expr, 0, n+1)
	factors = append(factors, hub)
	for i, d := range dummies {
		leaf := expr.NewTensor("Leaf"+factorLabel(i), []index.Index{d}, nil, nil, cfg.TensorSymmetry, cfg.BraKetSymmetry)
		factors = append(factors, leaf)
	}
	return expr.NewProduct(big.NewRat(1, 1), factors, expr.FlattenYes), nil
}
