// Package network implements the bipartite tensor/index view of a Product
// of Tensor factors and its canonicalization: a vertex-coloring graph
// isomorphism procedure that assigns every summation (dummy) index a
// canonical replacement.
package network

import (
	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/index"
	"slices"
)

// TensorNetwork is an ordered list of Tensor factors together with the
// classification of every index touched by them into "free" (occurs in
// exactly one slot, an externally fixed, named index) or "dummy" (occurs
// in exactly two slots, a summation index). Construction fails with
// ErrIndexMultiplicity if any index occurs in more than two slots.
type TensorNetwork struct {
	Tensors []*expr.Tensor
}

// New validates and wraps tensors into a TensorNetwork. The slice is copied;
// the caller retains ownership of the originals.
func New(tensors []*expr.Tensor) (*TensorNetwork, error) {
	tn := &TensorNetwork{Tensors: append([]*expr.Tensor(nil), tensors...)}
	if err := tn.validate(); err != nil {
		return nil, err
	}
	return tn, nil
}

func (tn *TensorNetwork) validate() error {
	for _, o := range tn.occurrences() {
		if o.count > 2 {
			return ErrIndexMultiplicity
		}
	}
	return nil
}

type occurrence struct {
	idx   index.Index
	count int
}

// occurrences maps each distinct index's FullLabel to its Index value and
// the number of tensor slots it fills across the whole network.
func (tn *TensorNetwork) occurrences() map[string]*occurrence {
	out := make(map[string]*occurrence)
	for _, t := range tn.Tensors {
		for _, idx := range t.Slots() {
			o, ok := out[idx.FullLabel()]
			if !ok {
				o = &occurrence{idx: idx}
				out[idx.FullLabel()] = o
			}
			o.count++
		}
	}
	return out
}

// FreeIndices returns, in label order, every index occurring in exactly one
// slot across the network, the externally fixed indices of the contracted
// result.
func (tn *TensorNetwork) FreeIndices() []index.Index {
	return tn.indicesWithCount(1)
}

// DummyIndices returns, in label order, every index occurring in exactly
// two slots across the network, the summation (contracted) indices.
func (tn *TensorNetwork) DummyIndices() []index.Index {
	return tn.indicesWithCount(2)
}

func (tn *TensorNetwork) indicesWithCount(n int) []index.Index {
	var out []index.Index
	for _, o := range tn.occurrences() {
		if o.count == n {
			out = append(out, o.idx)
		}
	}
	slices.SortFunc(out, index.ByLabel)
	return out
}

// Rename returns a copy of t with every slot index replaced by its image
// under rename (indices absent from rename pass through unchanged). Used to
// apply a CanonicalForm dummy-index permutation back onto a tensor.
func Rename(t *expr.Tensor, rename map[string]index.Index) *expr.Tensor {
	out := expr.NewTensor(t.Label, renameSlots(t.Bra, rename), renameSlots(t.Ket, rename), renameSlots(t.Aux, rename), t.Sym, t.BraKetSym)
	if t.ParticleSym {
		out.WithParticleSymmetry()
	}
	return out
}

func renameSlots(idxs []index.Index, rename map[string]index.Index) []index.Index {
	out := make([]index.Index, len(idxs))
	for i, idx := range idxs {
		if r, ok := rename[idx.FullLabel()]; ok {
			out[i] = r
		} else {
			out[i] = idx
		}
	}
	return out
}
