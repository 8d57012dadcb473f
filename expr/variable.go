// File: variable.go
// Role: Variable, the named symbolic-scalar leaf of the expression algebra.
package expr

import "github.com/ares201005/sequant-go/internal/xhash"

// Variable is a named symbolic scalar (e.g. a CC amplitude-independent
// parameter) carried through unevaluated.
type Variable struct {
	Name       string
	Conjugated bool // true if this occurrence is the conjugate of Name
}

// NewVariable constructs a plain (non-conjugated) Variable.
func NewVariable(name string) *Variable {
	return &Variable{Name: name}
}

func (*Variable) isExpr() {}

func (v *Variable) Clone() Expr {
	return &Variable{Name: v.Name, Conjugated: v.Conjugated}
}

func (v *Variable) HashValue() uint64 {
	h := xhash.String("var")
	h = xhash.Combine(h, xhash.String(v.Name))
	if v.Conjugated {
		h = xhash.Combine(h, xhash.String("conj"))
	}
	return h
}

func (v *Variable) Visit(f func(Expr)) { f(v) }

func (v *Variable) Adjoint() Expr {
	return &Variable{Name: v.Name, Conjugated: !v.Conjugated}
}

func (v *Variable) String() string {
	if v.Conjugated {
		return v.Name + "*"
	}
	return v.Name
}
