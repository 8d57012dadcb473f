package canon_test

import (
	"fmt"
	"math/big"

	"github.com/ares201005/sequant-go/canon"
	"github.com/ares201005/sequant-go/expr"
)

// ExampleCanonicalize_constantFolding shows a Product of bare Constants
// collapsing to its folded scalar.
func ExampleCanonicalize_constantFolding() {
	p := expr.NewProduct(big.NewRat(1, 1), []expr.Expr{expr.Int(2), expr.Int(3)}, expr.FlattenYes)

	out, err := canon.Canonicalize(p)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out.String())
	// Output: 6
}

// ExampleCanonicalize_zeroSum shows a Sum whose only summand is an exact
// zero Constant canonicalizing to the zero Constant itself.
func ExampleCanonicalize_zeroSum() {
	s := expr.NewSum(expr.Int(0))

	out, err := canon.Canonicalize(s)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out.String())
	// Output: 0
}
