package network

import (
	"strings"

	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/index"
	"github.com/ares201005/sequant-go/internal/xhash"
	"slices"
)

// maxRefinementRounds bounds the color-refinement loop. Tensor network
// graphs in scope here are small and bounded-degree (bra/ket/aux arity
// rarely exceeds a handful), so the class partition stabilizes in a few
// rounds; this is a safety bound, not a tuned performance parameter.
const maxRefinementRounds = 8

// CanonicalForm computes the canonical dummy-index renaming for tn: a
// mapping from each dummy (summation) index's FullLabel to a fresh Index
// chosen deterministically from its final color class. The induced
// permutation on index labels is what canon feeds back into its
// dummy-renaming rewrite. Free indices are never renamed; they are colored
// pairwise-distinct so the refinement can never merge two of them into the
// same class.
func CanonicalForm(tn *TensorNetwork) (map[string]index.Index, error) {
	free := tn.FreeIndices()
	dummy := tn.DummyIndices()
	if len(dummy) == 0 {
		return map[string]index.Index{}, nil
	}

	painter := NewPainter(free, true)
	colors := refine(tn, painter)

	type classed struct {
		idx   index.Index
		color uint64
	}
	classes := make([]classed, 0, len(dummy))
	for _, idx := range dummy {
		classes = append(classes, classed{idx: idx, color: colors[idx.FullLabel()]})
	}
	slices.SortFunc(classes, func(a, b classed) int {
		switch {
		case a.color < b.color:
			return -1
		case a.color > b.color:
			return 1
		default:
			return index.ByLabel(a.idx, b.idx)
		}
	})

	freeLabels := make(map[string]bool, len(free))
	for _, idx := range free {
		freeLabels[idx.FullLabel()] = true
	}
	counters := make(map[string]uint32)
	out := make(map[string]index.Index, len(classes))
	for _, c := range classes {
		base := dummyBase(c.idx.Space)
		var newIdx index.Index
		for {
			counters[base]++
			cand, err := index.New(base, counters[base], c.idx.Space, c.idx.Proto...)
			if err != nil {
				return nil, err
			}
			if !freeLabels[cand.FullLabel()] {
				newIdx = cand
				break
			}
		}
		out[c.idx.FullLabel()] = newIdx
	}
	return out, nil
}

// dummyBase picks the conventional dummy-index symbol for a space: i for
// occupied regions, a for unoccupied ones, p for the undifferentiated
// complete space, the standard second-quantization convention.
func dummyBase(sp index.IndexSpace) string {
	switch sp.Type {
	case index.Occupied:
		return "i"
	case index.ActiveOccupied:
		return "I"
	case index.Unoccupied:
		return "a"
	case index.ActiveUnoccupied:
		return "A"
	default:
		return "p"
	}
}

// refine runs iterative color refinement over tn's bipartite tensor/index
// multigraph until the partition of index vertices into color classes
// stops growing (or maxRefinementRounds, whichever comes first). Each
// round first recolors every tensor vertex by folding its slot groups'
// current index colors into its semantic base color, then recolors every
// index vertex with the contributions of every (tensor, slot group, slot)
// it fills. Slot position participates only for NonSymmetric groups: a
// symmetric or antisymmetric tensor's slots within one group are
// permutable, so their contributions fold order-independently.
func refine(tn *TensorNetwork, painter *Painter) map[string]uint64 {
	n := len(tn.Tensors)
	baseColor := make([]uint64, n)
	braColor := make([]uint64, n)
	ketColor := make([]uint64, n)
	auxColor := make([]uint64, n)
	for i, t := range tn.Tensors {
		baseColor[i] = painter.TensorColor(t)
		braColor[i] = painter.BraGroupColor(t.BraKetSym)
		ketColor[i] = painter.KetGroupColor(t.BraKetSym)
		if len(t.Aux) > 0 {
			auxColor[i] = painter.AuxGroupColor()
		}
	}

	allIdx := make(map[string]index.Index)
	for _, t := range tn.Tensors {
		for _, idx := range t.Slots() {
			allIdx[idx.FullLabel()] = idx
		}
	}

	// Free indices first, then dummies, each in label order: on a raw-color
	// collision ensureUniqueness keeps the raw color for whichever class is
	// registered first, so a fixed order keeps the outcome the same on
	// every run.
	labels := make([]string, 0, len(allIdx))
	for lbl := range allIdx {
		labels = append(labels, lbl)
	}
	slices.SortFunc(labels, func(a, b string) int {
		_, na := painter.named[a]
		_, nb := painter.named[b]
		if na != nb {
			if na {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	color := make(map[string]uint64, len(allIdx))
	for _, lbl := range labels {
		color[lbl] = painter.IndexColor(allIdx[lbl])
	}

	tcolor := append([]uint64(nil), baseColor...)
	prevClasses := countClasses(color)
	for round := 0; round < maxRefinementRounds; round++ {
		for ti, t := range tn.Tensors {
			braFold := groupFold(braColor[ti], t.Sym, t.Bra, color)
			ketFold := groupFold(ketColor[ti], t.Sym, t.Ket, color)
			if t.BraKetSym == expr.BraKetSymmetric && ketFold < braFold {
				braFold, ketFold = ketFold, braFold
			}
			h := xhash.Combine(baseColor[ti], braFold)
			h = xhash.Combine(h, ketFold)
			if len(t.Aux) > 0 {
				h = xhash.Combine(h, groupFold(auxColor[ti], expr.NonSymmetric, t.Aux, color))
			}
			tcolor[ti] = h
		}

		next := make(map[string]uint64, len(color))
		for lbl := range allIdx {
			var neighbors []uint64
			for ti, t := range tn.Tensors {
				particleSlots := len(t.Bra)
				if len(t.Ket) < particleSlots {
					particleSlots = len(t.Ket)
				}
				for k, s := range t.Bra {
					if s.FullLabel() == lbl {
						neighbors = append(neighbors, slotContribution(tcolor[ti], braColor[ti], t.Sym, k))
						if t.ParticleSym && k < particleSlots {
							neighbors = append(neighbors, xhash.Combine(tcolor[ti], painter.ParticleGroupColor(k)))
						}
					}
				}
				for k, s := range t.Ket {
					if s.FullLabel() == lbl {
						neighbors = append(neighbors, slotContribution(tcolor[ti], ketColor[ti], t.Sym, k))
						if t.ParticleSym && k < particleSlots {
							neighbors = append(neighbors, xhash.Combine(tcolor[ti], painter.ParticleGroupColor(k)))
						}
					}
				}
				for k, s := range t.Aux {
					if s.FullLabel() == lbl {
						neighbors = append(neighbors, slotContribution(tcolor[ti], auxColor[ti], expr.NonSymmetric, k))
					}
				}
			}
			slices.Sort(neighbors)
			h := color[lbl]
			for _, nh := range neighbors {
				h = xhash.Combine(h, nh)
			}
			next[lbl] = h
		}
		color = next

		classes := countClasses(color)
		if classes == prevClasses {
			break
		}
		prevClasses = classes
	}
	return color
}

// groupFold folds one slot group's current index colors into a single
// contribution to its tensor's round color. For NonSymmetric groups the
// slot position is folded in and order preserved; for symmetric and
// antisymmetric groups the per-slot values are sorted first, since those
// slots are permutable.
func groupFold(groupColor uint64, sym expr.Symmetry, slots []index.Index, color map[string]uint64) uint64 {
	vals := make([]uint64, len(slots))
	for k, s := range slots {
		v := xhash.Combine(groupColor, color[s.FullLabel()])
		if sym == expr.NonSymmetric {
			v = xhash.Combine(v, xhash.Uint64(uint64(k)))
		}
		vals[k] = v
	}
	if sym != expr.NonSymmetric {
		slices.Sort(vals)
	}
	h := groupColor
	for _, v := range vals {
		h = xhash.Combine(h, v)
	}
	return h
}

// slotContribution is the color an index receives from filling slot k of
// the group colored groupColor on the tensor currently colored tcol. The
// position k participates only for NonSymmetric groups.
func slotContribution(tcol, groupColor uint64, sym expr.Symmetry, k int) uint64 {
	h := xhash.Combine(tcol, groupColor)
	if sym == expr.NonSymmetric {
		h = xhash.Combine(h, xhash.Uint64(uint64(k)))
	}
	return h
}

// countClasses reports the number of distinct colors currently assigned to
// index vertices, the refinement's progress measure: raw color values
// churn every round by construction, but the partition they induce is what
// a further round could still split.
func countClasses(color map[string]uint64) int {
	seen := make(map[uint64]struct{}, len(color))
	for _, c := range color {
		seen[c] = struct{}{}
	}
	return len(seen)
}
