package network

import (
	"strconv"

	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/index"
	"github.com/ares201005/sequant-go/internal/xhash"
	"github.com/google/btree"
)

// vertexKind enumerates the vertex kinds of the bipartite tensor/index
// multigraph: a tensor vertex, one group vertex per slot
// kind (bra/ket/aux), a particle-symmetry group vertex, and an index
// vertex. The kind doubles as the per-case salt fed into each raw color so
// that, e.g., a bra group and a ket group can never share a color by
// accident of equal inputs.
type vertexKind uint8

const (
	tensorVertexKind vertexKind = iota
	braGroupVertexKind
	ketGroupVertexKind
	auxGroupVertexKind
	particleGroupVertexKind
	indexVertexKind
)

// colorEntry is one occupied slot in the color registry, ordered first by
// color then by key so Ascend gives a stable, deterministic walk of every
// vertex class sharing (or neighboring) a given color.
type colorEntry struct {
	color uint64
	key   string
}

func lessColorEntry(a, b colorEntry) bool {
	if a.color != b.color {
		return a.color < b.color
	}
	return a.key < b.key
}

// colorRegistry is an insertion-stable, ordered record of every color
// assigned so far, used to
// detect and deterministically resolve collisions between semantically
// distinct vertex classes (ensureUniqueness). A github.com/google/btree
// B-tree is used instead of a map because resolving a collision must walk
// colors in a stable order on every run, which Go's randomized map
// iteration cannot guarantee.
type colorRegistry struct {
	tree *btree.BTreeG[colorEntry]
	seen map[string]uint64
}

func newColorRegistry() *colorRegistry {
	return &colorRegistry{
		tree: btree.NewG(32, lessColorEntry),
		seen: make(map[string]uint64),
	}
}

// ensureUniqueness returns a color for the semantic class named by key,
// starting from raw: if a *different* class already occupies raw, it
// perturbs the color deterministically, hash-combining with the key itself
// (a salt derived from the class's own identity), until a free color is
// found. Re-querying the
// same key always returns its previously assigned color, so every member
// of one class shares one color; only distinct classes are forced apart.
func (r *colorRegistry) ensureUniqueness(raw uint64, key string) uint64 {
	if c, ok := r.seen[key]; ok {
		return c
	}
	color := raw
	for r.colorTaken(color, key) {
		color = xhash.Combine(xhash.Uint64(color), xhash.String(key))
	}
	r.tree.ReplaceOrInsert(colorEntry{color: color, key: key})
	r.seen[key] = color
	return color
}

func (r *colorRegistry) colorTaken(color uint64, key string) bool {
	taken := false
	r.tree.AscendGreaterOrEqual(colorEntry{color: color}, func(e colorEntry) bool {
		if e.color != color {
			return false
		}
		if e.key != key {
			taken = true
		}
		return true
	})
	return taken
}

// Painter assigns deterministic colors to the vertex classes of a tensor
// network's bipartite graph. Colors are a function of semantic content
// only: a tensor vertex is colored by its label, arities, and symmetry
// tags, never by its position in the factor list, so two occurrences of
// the same tensor share a color and the refinement in canonical.go is free
// to discover (or rule out) their interchangeability from connectivity
// alone.
//
// named holds the position of each free (externally fixed) index within a
// stable label ordering; when distinctNamed is true, free indices are
// colored pairwise-distinct by that position instead of by IndexSpace.
type Painter struct {
	reg           *colorRegistry
	named         map[string]int
	distinctNamed bool
}

// NewPainter builds a Painter whose free-index ordering is given by free
// (typically TensorNetwork.FreeIndices()).
func NewPainter(free []index.Index, distinctNamed bool) *Painter {
	named := make(map[string]int, len(free))
	for i, idx := range free {
		named[idx.FullLabel()] = i
	}
	return &Painter{reg: newColorRegistry(), named: named, distinctNamed: distinctNamed}
}

// TensorColor colors the tensor vertex class of t: label, bra/ket/aux
// arities, and both symmetry tags. Two structurally identical tensors at
// different factor positions share this color.
func (p *Painter) TensorColor(t *expr.Tensor) uint64 {
	raw := xhash.Combine(xhash.Uint64(uint64(tensorVertexKind)), xhash.String(t.Label))
	raw = xhash.Combine(raw, xhash.Uint64(uint64(t.BraRank())<<16|uint64(t.KetRank())<<8|uint64(len(t.Aux))))
	raw = xhash.Combine(raw, xhash.Uint64(uint64(t.Sym)<<8|uint64(t.BraKetSym)))
	if t.ParticleSym {
		raw = xhash.Combine(raw, xhash.Uint64(1))
	}
	key := "tensor:" + t.Label +
		":" + strconv.Itoa(t.BraRank()) + ":" + strconv.Itoa(t.KetRank()) + ":" + strconv.Itoa(len(t.Aux)) +
		":" + strconv.Itoa(int(t.Sym)) + ":" + strconv.Itoa(int(t.BraKetSym)) +
		":" + strconv.FormatBool(t.ParticleSym)
	return p.reg.ensureUniqueness(raw, key)
}

// BraGroupColor and KetGroupColor color the slot-group vertex classes that
// let the refinement distinguish a bra-i-ket-j connection from a
// bra-j-ket-i one, unless sym permits the swap (BraKetSymmetric), in which
// case both groups deliberately share one color so the two connections
// become exchangeable.
func (p *Painter) BraGroupColor(sym expr.BraKetSymmetry) uint64 {
	if sym == expr.BraKetSymmetric {
		return p.braketMergedColor()
	}
	return p.reg.ensureUniqueness(xhash.Uint64(uint64(braGroupVertexKind)+0xff), "group:bra")
}

func (p *Painter) KetGroupColor(sym expr.BraKetSymmetry) uint64 {
	if sym == expr.BraKetSymmetric {
		return p.braketMergedColor()
	}
	return p.reg.ensureUniqueness(xhash.Uint64(uint64(ketGroupVertexKind)+0xff00), "group:ket")
}

func (p *Painter) braketMergedColor() uint64 {
	return p.reg.ensureUniqueness(xhash.Uint64(uint64(braGroupVertexKind)+uint64(ketGroupVertexKind)+0xf0f0), "group:braket")
}

// AuxGroupColor colors the auxiliary slot-group vertex class.
func (p *Painter) AuxGroupColor() uint64 {
	return p.reg.ensureUniqueness(xhash.Uint64(uint64(auxGroupVertexKind)+3*0xff0000), "group:aux")
}

// ParticleGroupColor colors the particle-symmetry tie vertex class shared
// by the k-th ("slot"-th) bra and ket index of a particle-symmetric
// tensor. It is keyed by slot alone: the refinement combines it with the
// owning tensor's color, so two distinct tensors' k-th ties only merge
// when the tensors themselves are interchangeable.
func (p *Painter) ParticleGroupColor(slot int) uint64 {
	key := "group:particle:" + strconv.Itoa(slot)
	return p.reg.ensureUniqueness(xhash.Combine(xhash.Uint64(uint64(particleGroupVertexKind)), xhash.Uint64(uint64(slot))), key)
}

// IndexColor colors an index vertex class: a free index colors by its
// stable position among free indices (if distinctNamed) or by its
// IndexSpace shifted clear of the anonymous range; a dummy index colors by
// its IndexSpace alone, so every same-space dummy starts in one class and
// only connectivity (the refinement) can tell them apart. Both paths are
// shifted by a fixed constant before collision resolution, mirroring
// to_color's "+= 0xaa" shift.
func (p *Painter) IndexColor(idx index.Index) uint64 {
	var pre uint64
	var key string
	pos, named := p.named[idx.FullLabel()]
	switch {
	case named && p.distinctNamed:
		pre = uint64(pos)
		key = "named:" + strconv.Itoa(pos)
	case named:
		pre = idx.Space.Color() + 0xabcd
		key = "namedspace:" + strconv.FormatUint(idx.Space.Color(), 10)
	default:
		pre = idx.Space.Color()
		key = "space:" + strconv.FormatUint(idx.Space.Color(), 10)
	}
	pre += 0xaa
	return p.reg.ensureUniqueness(xhash.Combine(xhash.Uint64(uint64(indexVertexKind)), xhash.Uint64(pre)), key)
}
