// File: antisym.go
// Role: AntisymPair generates a two-factor, fully-contracted antisymmetric
// network: a "T" amplitude tensor and a "G" interaction tensor sharing
// every one of their bra/ket slots, both tagged
// AntisymmetricTag/BraKetNonSymmetric, the smallest network exercising
// the optimizer's N=2 base case ([0, 1, -1]) with antisymmetric factors.
package fixtures

import (
	"math/big"

	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/index"
)

// AntisymPair builds a Product of two antisymmetric rank-p tensors T and G
// that fully contract against one another: T's p occupied bra slots and p
// unoccupied ket slots are exactly G's ket and bra slots, respectively
// (T[o_0..o_{p-1}; v_0..v_{p-1}] * G[v_0..v_{p-1}; o_0..o_{p-1}]). p must
// be >= 1.
func AntisymPair(p int, opts ...Option) (*expr.Product, error) {
	if p < 1 {
		return nil, ErrTooFewFactors
	}
	cfg := resolve(opts...)

	occ := make([]index.Index, p)
	virt := make([]index.Index, p)
	for i := 0; i < p; i++ {
		o, err := index.New("o", uint32(i), cfg.OccSpace)
		if err != nil {
			return nil, err
		}
		v, err := index.New("v", uint32(i), cfg.VirtSpace)
		if err != nil {
			return nil, err
		}
		occ[i], virt[i] = o, v
	}

	t := expr.NewTensor("T", occ, virt, nil, expr.AntisymmetricTag, expr.BraKetNonSymmetric)
	g := expr.NewTensor("G", virt, occ, nil, expr.AntisymmetricTag, expr.BraKetNonSymmetric)

	return expr.NewProduct(big.NewRat(1, 1), []expr.Expr{t, g}, expr.FlattenYes), nil
}
