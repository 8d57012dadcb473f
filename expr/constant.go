// File: constant.go
// Role: Constant, the rational-scalar leaf of the expression algebra.
package expr

import (
	"math/big"

	"github.com/ares201005/sequant-go/internal/xhash"
)

// Constant is an exact rational scalar. A coefficient must compare exactly
// equal across canonicalization passes, so math/big.Rat is used; floats
// would drift.
type Constant struct {
	Value *big.Rat
}

// NewConstant wraps v (by reference; callers that need independent
// ownership should Clone) as a Constant.
func NewConstant(v *big.Rat) *Constant {
	if v == nil {
		v = new(big.Rat)
	}
	return &Constant{Value: v}
}

// Int constructs a Constant from a plain integer.
func Int(n int64) *Constant {
	return &Constant{Value: big.NewRat(n, 1)}
}

func (*Constant) isExpr() {}

// IsZero reports whether this Constant is exactly zero.
func (c *Constant) IsZero() bool { return c.Value.Sign() == 0 }

// IsOne reports whether this Constant is exactly one.
func (c *Constant) IsOne() bool { return c.Value.Cmp(big.NewRat(1, 1)) == 0 }

func (c *Constant) Clone() Expr {
	return &Constant{Value: new(big.Rat).Set(c.Value)}
}

func (c *Constant) HashValue() uint64 {
	h := xhash.String("const")
	h = xhash.Combine(h, xhash.String(c.Value.RatString()))
	return h
}

func (c *Constant) Visit(f func(Expr)) { f(c) }

// Adjoint of a real rational scalar is itself; no complex-conjugation model
// exists at this layer.
func (c *Constant) Adjoint() Expr { return c.Clone() }

func (c *Constant) String() string { return c.Value.RatString() }

// Mul returns a new Constant equal to c * o, leaving both operands intact.
func (c *Constant) Mul(o *Constant) *Constant {
	return &Constant{Value: new(big.Rat).Mul(c.Value, o.Value)}
}
