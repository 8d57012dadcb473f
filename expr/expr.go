// Package expr implements the second-quantized expression algebra: a closed
// tagged variant with five cases (Constant, Variable, Tensor, Sum, Product),
// each exposing clone, structural hash, pre-order visit, and adjoint.
//
// Invariants:
//   - Sums and Products own their children exclusively; sharing is only via
//     explicit Clone.
//   - HashValue depends on semantic content only, never on memory identity
//     or insertion path.
//   - A Product with one factor and unit scalar is semantically equal to
//     that factor; empty Sum/Product have defined zero/one semantics. These
//     reductions are applied by the canon package's fixed-point rewrite, not
//     eagerly by the raw constructors here.
//
// This file declares the closed Expr interface. Concrete cases are in
// constant.go, variable.go, tensor.go, sum.go, product.go, one file per
// case.
package expr

// Expr is the closed set of expression node kinds. isExpr is unexported so
// no type outside this package can implement Expr: the variant is a fixed
// tagged union, not an open hierarchy.
type Expr interface {
	isExpr()

	// Clone returns a deep, semantically-equal copy; no subtree is shared
	// with the receiver.
	Clone() Expr

	// HashValue is the structural hash of this node, combining its own kind
	// and content with its children's hashes in child order.
	HashValue() uint64

	// Visit traverses the subtree rooted at this node in pre-order,
	// children left-to-right. Mutating the tree during Visit is forbidden.
	Visit(f func(Expr))

	// Adjoint returns the conjugate of this expression: bra/ket slots of
	// every Tensor are swapped and factor order within every Product is
	// reversed (operator adjoint distributes over composition in reverse).
	Adjoint() Expr

	// String renders a debug form; not a round-trippable literal syntax
	// (that belongs to a printer layered on top of this module).
	String() string
}

// Is reports whether e is of concrete type T, implemented once generically
// instead of per-case.
func Is[T Expr](e Expr) bool {
	_, ok := e.(T)
	return ok
}

// As safely asserts e to concrete type T, returning ok=false rather than
// panicking on mismatch.
func As[T Expr](e Expr) (T, bool) {
	v, ok := e.(T)
	return v, ok
}
