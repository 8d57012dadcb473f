// File: sum.go
// Role: Sum, the ordered-summand composite of the expression algebra.
package expr

import (
	"strings"

	"github.com/ares201005/sequant-go/internal/xhash"
)

// Sum is an ordered sequence of summands. An empty Sum has the defined
// value zero; Append/Prepend drop zero Constant summands
// (zero-pruning) so a Sum's stored Summands never directly include an
// explicit Constant zero, though an all-zero Sum is simply empty, not an
// error.
type Sum struct {
	Summands []Expr
}

// NewSum builds a Sum from summands, applying the same zero-pruning Append
// does to each one.
func NewSum(summands ...Expr) *Sum {
	s := &Sum{}
	for _, e := range summands {
		s.Append(e)
	}
	return s
}

func (*Sum) isExpr() {}

// Len reports the number of stored (post-pruning) summands.
func (s *Sum) Len() int { return len(s.Summands) }

// At returns the i-th summand.
func (s *Sum) At(i int) (Expr, error) {
	if i < 0 || i >= len(s.Summands) {
		return nil, ErrIndexOutOfRange
	}
	return s.Summands[i], nil
}

// IsZero reports whether this Sum has no (surviving) summands.
func (s *Sum) IsZero() bool { return len(s.Summands) == 0 }

// Append adds e to the end, dropping it if e is an exactly-zero Constant.
func (s *Sum) Append(e Expr) error {
	if e == nil {
		return ErrNilExpr
	}
	if c, ok := As[*Constant](e); ok && c.IsZero() {
		return nil
	}
	s.Summands = append(s.Summands, e)
	return nil
}

// Prepend adds e to the front, with the same zero-pruning as Append.
func (s *Sum) Prepend(e Expr) error {
	if e == nil {
		return ErrNilExpr
	}
	if c, ok := As[*Constant](e); ok && c.IsZero() {
		return nil
	}
	s.Summands = append([]Expr{e}, s.Summands...)
	return nil
}

// Erase removes the summand at i.
func (s *Sum) Erase(i int) error {
	if i < 0 || i >= len(s.Summands) {
		return ErrIndexOutOfRange
	}
	s.Summands = append(s.Summands[:i], s.Summands[i+1:]...)
	return nil
}

func (s *Sum) Clone() Expr {
	out := &Sum{Summands: make([]Expr, len(s.Summands))}
	for i, e := range s.Summands {
		out.Summands[i] = e.Clone()
	}
	return out
}

// HashValue combines summand hashes in order: a Sum's hash is
// order-sensitive in general and only coincides across differently-ordered
// equal sums once canon has imposed its canonical ordering on both.
func (s *Sum) HashValue() uint64 {
	h := xhash.String("sum")
	h = xhash.Combine(h, xhash.Uint64(uint64(len(s.Summands))))
	for _, e := range s.Summands {
		h = xhash.Combine(h, e.HashValue())
	}
	return h
}

func (s *Sum) Visit(f func(Expr)) {
	f(s)
	for _, e := range s.Summands {
		e.Visit(f)
	}
}

func (s *Sum) Adjoint() Expr {
	out := &Sum{Summands: make([]Expr, len(s.Summands))}
	for i, e := range s.Summands {
		out.Summands[i] = e.Adjoint()
	}
	return out
}

func (s *Sum) String() string {
	if len(s.Summands) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, e := range s.Summands {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(e.String())
	}
	return b.String()
}
