package optimize

import (
	"math/big"

	"github.com/ares201005/sequant-go/expr"
)

// buildTree replays a postfix sequence produced by singleTermOpt into an
// explicit binary contraction tree of unit-scalar, FlattenNo *expr.Product
// nodes, so each intermediate stays visually and structurally distinct.
func buildTree(tensors []*expr.Tensor, seq []int) (expr.Expr, error) {
	if len(seq) == 0 {
		return nil, ErrInvalidPlan
	}
	stack := make([]expr.Expr, 0, len(tensors))
	for _, tok := range seq {
		if tok == stop {
			if len(stack) < 2 {
				return nil, ErrInvalidPlan
			}
			r := stack[len(stack)-1]
			l := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, expr.NewProduct(big.NewRat(1, 1), []expr.Expr{l, r}, expr.FlattenNo))
			continue
		}
		if tok < 0 || tok >= len(tensors) {
			return nil, ErrInvalidPlan
		}
		stack = append(stack, tensors[tok].Clone())
	}
	if len(stack) != 1 {
		return nil, ErrInvalidPlan
	}
	return stack[0], nil
}
