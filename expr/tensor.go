// File: tensor.go
// Role: Tensor, the indexed leaf of the expression algebra: a label, bra/
// ket/aux index slots, a permutational symmetry tag, and a bra-ket symmetry
// tag.
package expr

import (
	"strings"

	"github.com/ares201005/sequant-go/index"
	"github.com/ares201005/sequant-go/internal/xhash"
)

// Symmetry is the permutational symmetry of a Tensor's bra (and,
// independently, its ket) index group under transposition.
type Symmetry uint8

const (
	// NonSymmetric tensors have no permutational symmetry among bra (or
	// ket) slots; every slot ordering is a distinct object.
	NonSymmetric Symmetry = iota
	// SymmetricTag tensors are invariant under any transposition of bra (or
	// ket) slots.
	SymmetricTag
	// AntisymmetricTag tensors pick up a sign (-1) under a single
	// transposition of bra (or ket) slots.
	AntisymmetricTag
)

func (s Symmetry) String() string {
	switch s {
	case SymmetricTag:
		return "sym"
	case AntisymmetricTag:
		return "antisym"
	default:
		return "nonsym"
	}
}

// BraKetSymmetry describes how a Tensor relates to its own bra<->ket swap.
type BraKetSymmetry uint8

const (
	// BraKetNonSymmetric tensors are unrelated to their bra<->ket swap.
	BraKetNonSymmetric BraKetSymmetry = iota
	// BraKetSymmetric tensors are invariant under bra<->ket swap.
	BraKetSymmetric
	// BraKetAntisymmetric tensors pick up a sign under bra<->ket swap.
	BraKetAntisymmetric
	// BraKetConjugate tensors map to their own complex conjugate under
	// bra<->ket swap. Relevant once a complex-amplitude formalism is
	// layered on top; carried here only as a tag, never interpreted by
	// this module.
	BraKetConjugate
)

// Tensor is a labeled, indexed leaf: Label(bra; ket; aux).
type Tensor struct {
	Label          string
	Bra            []index.Index
	Ket            []index.Index
	Aux            []index.Index
	Sym            Symmetry
	BraKetSym      BraKetSymmetry
	ParticleSym    bool // true if the k-th bra slot is tied to the k-th ket slot ("particle symmetry")
}

// NewTensor constructs a Tensor. bra/ket/aux slices are copied so the caller
// retains ownership of the originals.
func NewTensor(label string, bra, ket, aux []index.Index, sym Symmetry, brakSym BraKetSymmetry) *Tensor {
	return &Tensor{
		Label: label,
		Bra:   append([]index.Index(nil), bra...),
		Ket:   append([]index.Index(nil), ket...),
		Aux:   append([]index.Index(nil), aux...),
		Sym:   sym, BraKetSym: brakSym,
	}
}

func (*Tensor) isExpr() {}

// BraRank and KetRank report slot-group arities.
func (t *Tensor) BraRank() int { return len(t.Bra) }
func (t *Tensor) KetRank() int { return len(t.Ket) }

// Slots returns bra, then ket, then aux indices concatenated: the full
// slot sequence the optimizer sorts before each DP base case.
func (t *Tensor) Slots() []index.Index {
	out := make([]index.Index, 0, len(t.Bra)+len(t.Ket)+len(t.Aux))
	out = append(out, t.Bra...)
	out = append(out, t.Ket...)
	out = append(out, t.Aux...)
	return out
}

// WithParticleSymmetry marks t as tying its k-th bra slot to its k-th ket
// slot (consumed by network.Painter.ParticleGroupColor) and returns t for
// chaining at construction time.
func (t *Tensor) WithParticleSymmetry() *Tensor {
	t.ParticleSym = true
	return t
}

func (t *Tensor) Clone() Expr {
	return &Tensor{
		Label:       t.Label,
		Bra:         append([]index.Index(nil), t.Bra...),
		Ket:         append([]index.Index(nil), t.Ket...),
		Aux:         append([]index.Index(nil), t.Aux...),
		Sym:         t.Sym,
		BraKetSym:   t.BraKetSym,
		ParticleSym: t.ParticleSym,
	}
}

func (t *Tensor) HashValue() uint64 {
	h := xhash.String("tensor")
	h = xhash.Combine(h, xhash.String(t.Label))
	h = xhash.Combine(h, xhash.Uint64(uint64(t.Sym)))
	h = xhash.Combine(h, xhash.Uint64(uint64(t.BraKetSym)))
	if t.ParticleSym {
		h = xhash.Combine(h, xhash.String("particle"))
	}
	for _, idx := range t.Bra {
		h = xhash.Combine(h, idx.HashValue())
	}
	h = xhash.Combine(h, xhash.String("|"))
	for _, idx := range t.Ket {
		h = xhash.Combine(h, idx.HashValue())
	}
	h = xhash.Combine(h, xhash.String("|"))
	for _, idx := range t.Aux {
		h = xhash.Combine(h, idx.HashValue())
	}
	return h
}

func (t *Tensor) Visit(f func(Expr)) { f(t) }

// Adjoint swaps bra and ket slot groups. This is structural only: the sign
// conventions for antisymmetric *within-group* permutations are a property
// of reordering slots inside one group, not of swapping the two groups, so
// no scalar sign is introduced here (see DESIGN.md Open Questions).
func (t *Tensor) Adjoint() Expr {
	return &Tensor{
		Label:       t.Label,
		Bra:         append([]index.Index(nil), t.Ket...),
		Ket:         append([]index.Index(nil), t.Bra...),
		Aux:         append([]index.Index(nil), t.Aux...),
		Sym:         t.Sym,
		BraKetSym:   t.BraKetSym,
		ParticleSym: t.ParticleSym,
	}
}

func (t *Tensor) String() string {
	var b strings.Builder
	b.WriteString(t.Label)
	b.WriteByte('{')
	writeIndexList(&b, t.Bra)
	b.WriteByte(';')
	writeIndexList(&b, t.Ket)
	if len(t.Aux) > 0 {
		b.WriteByte(';')
		writeIndexList(&b, t.Aux)
	}
	b.WriteByte('}')
	return b.String()
}

func writeIndexList(b *strings.Builder, idxs []index.Index) {
	for i, idx := range idxs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(idx.String())
	}
}
