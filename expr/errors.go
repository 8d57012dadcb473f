// File: errors.go
// Role: package-level sentinel errors for expr. Every condition a caller
// should branch on is a sentinel, matched via errors.Is; fmt.Errorf wrapping
// happens only at an outer boundary that needs extra context.
package expr

import "errors"

var (
	// ErrUnsupportedExpression is returned at an optimization/canonicalization
	// boundary when a node is not one of the five known Expr variants.
	ErrUnsupportedExpression = errors.New("expr: unsupported expression node")

	// ErrIndexOutOfRange is returned by At/Erase when the index is invalid.
	ErrIndexOutOfRange = errors.New("expr: index out of range")

	// ErrNilExpr is returned when a nil Expr is appended/prepended where a
	// concrete node is required.
	ErrNilExpr = errors.New("expr: nil expression")
)
