// File: product.go
// Role: Product, the scalar-prefactored ordered-factor composite.
package expr

import (
	"math/big"
	"strings"

	"github.com/ares201005/sequant-go/internal/xhash"
)

// FlattenPolicy controls whether appending a nested *Product factor inlines
// its factors (multiplying its scalar into the outer Product) or keeps it
// as a single opaque factor. FlattenNo is what lets a binary contraction
// tree be assembled one step at a time without the intermediates dissolving
// into a flat factor list; FlattenYes is the canonicalizer's default.
type FlattenPolicy uint8

const (
	// FlattenYes inlines nested *Product factors on Append/Prepend.
	FlattenYes FlattenPolicy = iota
	// FlattenNo keeps a nested *Product factor as a single opaque factor;
	// required while assembling an explicit binary contraction tree, where
	// each intermediate node must stay visually and structurally distinct.
	FlattenNo
)

// Product is a scalar prefactor times an ordered sequence of factors.
// An empty Product (no factors) has the defined value Scalar; Scalar==1
// with no factors denotes the multiplicative identity.
type Product struct {
	Scalar  *big.Rat
	Factors []Expr
	Flatten FlattenPolicy
}

// NewProduct builds a Product with the given scalar and factors, applying
// Append's scalar-extraction/one-pruning to each factor under policy.
func NewProduct(scalar *big.Rat, factors []Expr, policy FlattenPolicy) *Product {
	if scalar == nil {
		scalar = big.NewRat(1, 1)
	}
	p := &Product{Scalar: new(big.Rat).Set(scalar), Flatten: policy}
	for _, f := range factors {
		p.Append(f)
	}
	return p
}

func (*Product) isExpr() {}

// Len reports the number of stored (post-folding) factors.
func (p *Product) Len() int { return len(p.Factors) }

// At returns the i-th factor.
func (p *Product) At(i int) (Expr, error) {
	if i < 0 || i >= len(p.Factors) {
		return nil, ErrIndexOutOfRange
	}
	return p.Factors[i], nil
}

// IsOne reports whether this Product is the bare multiplicative identity:
// unit scalar and no factors.
func (p *Product) IsOne() bool { return len(p.Factors) == 0 && p.Scalar.Cmp(big.NewRat(1, 1)) == 0 }

// IsZero reports whether this Product's scalar is exactly zero.
func (p *Product) IsZero() bool { return p.Scalar.Sign() == 0 }

// AsSingleFactor implements the equivalence "a Product with a single
// factor and unit prefactor is equal to that factor": it returns that
// factor and ok=true when the equivalence applies.
func (p *Product) AsSingleFactor() (Expr, bool) {
	if len(p.Factors) == 1 && p.Scalar.Cmp(big.NewRat(1, 1)) == 0 {
		return p.Factors[0], true
	}
	return nil, false
}

// Append folds a *Constant factor into Scalar (scalar extraction; a unit
// Constant is thereby silently dropped; one-pruning) and, under
// FlattenYes, inlines a nested *Product's factors and scalar instead of
// storing it as one opaque factor.
func (p *Product) Append(e Expr) error {
	if e == nil {
		return ErrNilExpr
	}
	if c, ok := As[*Constant](e); ok {
		p.Scalar.Mul(p.Scalar, c.Value)
		return nil
	}
	if p.Flatten == FlattenYes {
		if nested, ok := As[*Product](e); ok {
			p.Scalar.Mul(p.Scalar, nested.Scalar)
			for _, f := range nested.Factors {
				if err := p.Append(f); err != nil {
					return err
				}
			}
			return nil
		}
	}
	p.Factors = append(p.Factors, e)
	return nil
}

// Prepend adds e to the front of Factors (subject to the same folding
// Append performs); Constants still fold into Scalar rather than gaining a
// position.
func (p *Product) Prepend(e Expr) error {
	if e == nil {
		return ErrNilExpr
	}
	if c, ok := As[*Constant](e); ok {
		p.Scalar.Mul(p.Scalar, c.Value)
		return nil
	}
	if p.Flatten == FlattenYes {
		if nested, ok := As[*Product](e); ok {
			p.Scalar.Mul(p.Scalar, nested.Scalar)
			for i := len(nested.Factors) - 1; i >= 0; i-- {
				if err := p.Prepend(nested.Factors[i]); err != nil {
					return err
				}
			}
			return nil
		}
	}
	p.Factors = append([]Expr{e}, p.Factors...)
	return nil
}

// Erase removes the factor at i.
func (p *Product) Erase(i int) error {
	if i < 0 || i >= len(p.Factors) {
		return ErrIndexOutOfRange
	}
	p.Factors = append(p.Factors[:i], p.Factors[i+1:]...)
	return nil
}

// Scale multiplies Scalar by s in place.
func (p *Product) Scale(s *big.Rat) {
	p.Scalar.Mul(p.Scalar, s)
}

func (p *Product) Clone() Expr {
	out := &Product{
		Scalar:  new(big.Rat).Set(p.Scalar),
		Factors: make([]Expr, len(p.Factors)),
		Flatten: p.Flatten,
	}
	for i, f := range p.Factors {
		out.Factors[i] = f.Clone()
	}
	return out
}

func (p *Product) HashValue() uint64 {
	h := xhash.String("product")
	h = xhash.Combine(h, xhash.String(p.Scalar.RatString()))
	h = xhash.Combine(h, xhash.Uint64(uint64(len(p.Factors))))
	for _, f := range p.Factors {
		h = xhash.Combine(h, f.HashValue())
	}
	return h
}

func (p *Product) Visit(f func(Expr)) {
	f(p)
	for _, factor := range p.Factors {
		factor.Visit(f)
	}
}

// Adjoint reverses factor order (operator adjoint distributes over
// composition in reverse: (AB)† = B†A†) and conjugates each factor; the
// scalar is a real rational and so unaffected.
func (p *Product) Adjoint() Expr {
	out := &Product{Scalar: new(big.Rat).Set(p.Scalar), Flatten: p.Flatten}
	out.Factors = make([]Expr, len(p.Factors))
	n := len(p.Factors)
	for i, f := range p.Factors {
		out.Factors[n-1-i] = f.Adjoint()
	}
	return out
}

func (p *Product) String() string {
	var b strings.Builder
	if p.Scalar.Cmp(big.NewRat(1, 1)) != 0 || len(p.Factors) == 0 {
		b.WriteString(p.Scalar.RatString())
		if len(p.Factors) > 0 {
			b.WriteString(" * ")
		}
	}
	for i, f := range p.Factors {
		if i > 0 {
			b.WriteString(" * ")
		}
		b.WriteString(f.String())
	}
	return b.String()
}

// PullScalar recursively absorbs any nested *Product factor's scalar into
// p.Scalar, leaving that nested factor's own scalar at 1 but *not*
// inlining its factors into p (unlike Append under FlattenYes): a
// preparatory step that keeps a binary contraction tree's intermediate
// nodes visually distinct while still surfacing every scalar at the top.
func PullScalar(p *Product) {
	for _, f := range p.Factors {
		if nested, ok := As[*Product](f); ok {
			PullScalar(nested)
			p.Scalar.Mul(p.Scalar, nested.Scalar)
			nested.Scalar.SetInt64(1)
		}
	}
}

// TailFactor omits the first top-level factor of a Product, returning a
// clone of the remainder with the same scalar and flatten policy. Its
// intended use is dropping a leading "A"/"S" symmetrizer tensor as a
// preparatory step before evaluating a coupled-cluster amplitude product;
// it never moves a scalar prefactor (that is PullScalar's job). If e is
// not a *Product, or is a *Product with no factors to drop, TailFactor
// returns e.Clone() unchanged.
func TailFactor(e Expr) Expr {
	p, ok := As[*Product](e)
	if !ok || len(p.Factors) == 0 {
		return e.Clone()
	}
	out := &Product{
		Scalar:  new(big.Rat).Set(p.Scalar),
		Factors: make([]Expr, len(p.Factors)-1),
		Flatten: p.Flatten,
	}
	for i, f := range p.Factors[1:] {
		out.Factors[i] = f.Clone()
	}
	return out
}
