// File: optimize.go
// Role: the package's public entry points, Optimize and SingleTermOpt
// (canon.Canonicalize is the third, in the canon package). This file wires
// the DP (singleterm.go), the tree materializer (tree.go), and the
// multi-term reorderer (reorder.go) into a single top-level dispatch: an
// exhaustive type switch over the closed Expr variant.
package optimize

import (
	"math/big"

	"github.com/ares201005/sequant-go/canon"
	"github.com/ares201005/sequant-go/cost"
	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/network"
)

// MaxFactors bounds the number of Tensor factors a single Product may carry
// into the exact bitmask DP: beyond it the 2^N subset table becomes
// impractical to allocate, and no real coupled-cluster term approaches this
// arity.
const MaxFactors = 24

// Optimize returns, for an expression tree and a dimension oracle, an
// expression of the same mathematical value with every Product's Tensor
// factors rewritten into an explicit, cost-minimal binary contraction
// tree. It never mutates e; the returned tree is always freshly built.
//
// Optimize is the single boundary where an internal invariant panic is
// recovered and surfaced as network.ErrInvalidNetwork; every other
// internal helper in this package panics rather than silently tolerating a
// broken postfix plan.
func Optimize(e expr.Expr, oracle cost.DimOracle) (out expr.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, network.ErrInvalidNetwork
		}
	}()
	return optimize(e, oracle)
}

func optimize(e expr.Expr, oracle cost.DimOracle) (expr.Expr, error) {
	if e == nil {
		return nil, expr.ErrNilExpr
	}
	switch v := e.(type) {
	case *expr.Constant, *expr.Variable, *expr.Tensor:
		return v.Clone(), nil
	case *expr.Sum:
		return optimizeSum(v, oracle)
	case *expr.Product:
		return optimizeProduct(v, oracle)
	default:
		return nil, expr.ErrUnsupportedExpression
	}
}

// optimizeSum recurses into every summand and applies the multi-term
// reorderer to the already single-term-optimized summands, preserving
// value while clustering summands that share a contracted intermediate.
func optimizeSum(s *expr.Sum, oracle cost.DimOracle) (expr.Expr, error) {
	optimized := make([]expr.Expr, s.Len())
	for i := 0; i < s.Len(); i++ {
		summand, err := s.At(i)
		if err != nil {
			return nil, err
		}
		oe, err := optimize(summand, oracle)
		if err != nil {
			return nil, err
		}
		optimized[i] = oe
	}

	perm := Reorder(optimized)
	reordered := make([]expr.Expr, len(perm))
	for i, p := range perm {
		reordered[i] = optimized[p]
	}
	return expr.NewSum(reordered...), nil
}

// optimizeProduct extracts the scalar prefactor and any non-tensor
// factors first and re-prepends them to the outermost resulting Product;
// only Tensor factors participate in the DP. The Tensor factors are
// wrapped as a TensorNetwork so they flow through the same canonical
// dummy-index renaming every other Product undergoes.
func optimizeProduct(p *expr.Product, oracle cost.DimOracle) (expr.Expr, error) {
	canonical, err := canon.Canonicalize(p)
	if err != nil {
		return nil, err
	}
	cp, ok := expr.As[*expr.Product](canonical)
	if !ok {
		// canon.Canonicalize already collapsed this Product to a single
		// factor or a scalar Constant; nothing left for the DP to
		// contract.
		return canonical, nil
	}

	var tensors []*expr.Tensor
	var prelude []expr.Expr
	for i := 0; i < cp.Len(); i++ {
		f, ferr := cp.At(i)
		if ferr != nil {
			return nil, ferr
		}
		if t, isTensor := expr.As[*expr.Tensor](f); isTensor {
			tensors = append(tensors, t)
		} else {
			prelude = append(prelude, f)
		}
	}

	if len(tensors) == 0 {
		return cp.Clone(), nil
	}

	tn, err := network.New(tensors)
	if err != nil {
		return nil, err
	}

	outerScalar := new(big.Rat).Set(cp.Scalar)
	var tree expr.Expr
	if len(tensors) == 1 {
		tree = tn.Tensors[0].Clone()
	} else {
		seq, serr := singleTermOpt(tn.Tensors, oracle)
		if serr != nil {
			return nil, serr
		}
		assertValidPlan(len(tn.Tensors), seq)
		tree, err = buildTree(tn.Tensors, seq)
		if err != nil {
			return nil, err
		}
		// buildTree's intermediate nodes are always unit-scalar today, but
		// pull any nested scalar up regardless: a tree assembled with
		// FlattenNo never folds a Constant factor the way FlattenYes does,
		// so this is the one place it still needs doing explicitly.
		if root, ok := expr.As[*expr.Product](tree); ok {
			expr.PullScalar(root)
			outerScalar.Mul(outerScalar, root.Scalar)
			root.Scalar.SetInt64(1)
		}
	}

	factors := make([]expr.Expr, 0, len(prelude)+1)
	factors = append(factors, prelude...)
	factors = append(factors, tree)
	return expr.NewProduct(outerScalar, factors, expr.FlattenNo), nil
}

// SingleTermOpt takes an already constructed *network.TensorNetwork
// directly, the form a caller holding a canonicalized network rather than
// a raw Product already has in hand. It returns the postfix
// (reverse-Polish) plan: integers in [0, N) for factors, -1 for "contract
// the top two stack entries", with exactly N-1 occurrences of -1.
func SingleTermOpt(tn *network.TensorNetwork, oracle cost.DimOracle) ([]int, error) {
	if tn == nil {
		return nil, network.ErrInvalidNetwork
	}
	seq, err := singleTermOpt(tn.Tensors, oracle)
	if err != nil {
		return nil, err
	}
	assertValidPlan(len(tn.Tensors), seq)
	return seq, nil
}

// assertValidPlan panics if seq is not a well-formed postfix plan over n
// factors: exactly n-1 occurrences of stop, every factor index in [0, n)
// appearing exactly once, and, for n >= 1, a non-empty sequence.
// Optimize's top-level recover converts a failure here into
// network.ErrInvalidNetwork, while SingleTermOpt (a lower-level entry
// point callers may invoke directly) lets the panic propagate.
func assertValidPlan(n int, seq []int) {
	if n == 0 {
		if len(seq) != 0 {
			panic("optimize: non-empty plan for zero factors")
		}
		return
	}
	seen := make([]bool, n)
	stops := 0
	for _, tok := range seq {
		if tok == stop {
			stops++
			continue
		}
		if tok < 0 || tok >= n || seen[tok] {
			panic("optimize: malformed postfix plan")
		}
		seen[tok] = true
	}
	if stops != n-1 {
		panic("optimize: postfix plan has wrong number of contraction steps")
	}
	for _, ok := range seen {
		if !ok {
			panic("optimize: postfix plan omits a factor")
		}
	}
}
