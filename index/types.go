// Package index defines Index and IndexSpace, the labeled-slot model that
// every Tensor, Expr, and TensorNetwork in this module is built from.
//
// Index is an immutable value: a textual label, a numeric subscript, an
// IndexSpace, and an optional proto-index bundle. Two Index values compare
// equal iff their label, id, and proto-indices are equal; an Index's space
// is fixed at construction and never mutated.
//
// Errors:
//
//	ErrEmptyLabel     - a literal index label was the empty string.
//	ErrBadLabel       - a literal index label did not parse as base_N / baseN.
//	ErrUnknownSpace   - a label's base was not found in the active registry.
package index

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ares201005/sequant-go/internal/xhash"
)

// Sentinel errors for index construction and registry lookups.
var (
	// ErrEmptyLabel indicates an empty string was given as an index label.
	ErrEmptyLabel = errors.New("index: label is empty")

	// ErrBadLabel indicates a label did not parse into a base and subscript.
	ErrBadLabel = errors.New("index: label does not match base_N form")

	// ErrUnknownSpace indicates no IndexSpace is registered for a label's base.
	ErrUnknownSpace = errors.New("index: unknown space for label")
)

// SpaceType enumerates the base occupancy regions of the lattice of spaces.
// Complete is the top of the lattice (union of Occupied and Unoccupied);
// ActiveOccupied is a sub-space of Occupied used by active-space methods.
type SpaceType uint8

const (
	// Occupied indexes hole states below the Fermi vacuum.
	Occupied SpaceType = iota
	// ActiveOccupied indexes the active-space subset of Occupied.
	ActiveOccupied
	// Unoccupied indexes particle states above the Fermi vacuum.
	Unoccupied
	// ActiveUnoccupied indexes the active-space subset of Unoccupied.
	ActiveUnoccupied
	// Complete is the union of Occupied and Unoccupied (all orbitals).
	Complete
)

// String renders the canonical single-letter-ish name used in labels.
func (t SpaceType) String() string {
	switch t {
	case Occupied:
		return "occ"
	case ActiveOccupied:
		return "aocc"
	case Unoccupied:
		return "virt"
	case ActiveUnoccupied:
		return "avirt"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// QuantumNumber enumerates the spin label attached to an IndexSpace. Null
// means "no spin distinction" (spin-free/spin-orbital formalism).
type QuantumNumber uint8

const (
	// NullQN denotes no spin quantum number attached.
	NullQN QuantumNumber = iota
	// Alpha denotes spin-up.
	Alpha
	// Beta denotes spin-down.
	Beta
)

// IndexSpace is a typed region of the orbital lattice plus a quantum number.
// IndexSpace is a small value type: comparisons are by value, never by
// pointer identity, and it carries no dimension of its own; dimensions are
// supplied externally by a cost.DimOracle so different physical regimes can
// be explored without rebuilding the space model.
type IndexSpace struct {
	Type SpaceType
	Qns  QuantumNumber
}

// Color returns a stable integer fingerprint combining Type and Qns, used
// as a graph-coloring input in network.Painter.
func (s IndexSpace) Color() uint64 {
	return uint64(s.Type)<<8 | uint64(s.Qns)
}

// Equal reports whether two spaces denote the same type and quantum number.
func (s IndexSpace) Equal(o IndexSpace) bool {
	return s.Type == o.Type && s.Qns == o.Qns
}

// Intersect computes the lattice meet of two spaces. The lattice is fixed:
// a sub-space (ActiveOccupied/ActiveUnoccupied) meets its parent
// (Occupied/Unoccupied) to itself; Complete meets anything to that thing;
// otherwise disjoint regions meet to a zero-value IndexSpace and ok=false.
// Differing quantum numbers never intersect unless one side is NullQN, in
// which case the non-null side wins.
func (s IndexSpace) Intersect(o IndexSpace) (IndexSpace, bool) {
	qn, qnOK := intersectQN(s.Qns, o.Qns)
	if !qnOK {
		return IndexSpace{}, false
	}
	typ, typOK := intersectType(s.Type, o.Type)
	if !typOK {
		return IndexSpace{}, false
	}
	return IndexSpace{Type: typ, Qns: qn}, true
}

func intersectQN(a, b QuantumNumber) (QuantumNumber, bool) {
	if a == b {
		return a, true
	}
	if a == NullQN {
		return b, true
	}
	if b == NullQN {
		return a, true
	}
	return NullQN, false
}

func intersectType(a, b SpaceType) (SpaceType, bool) {
	if a == b {
		return a, true
	}
	if a == Complete {
		return b, true
	}
	if b == Complete {
		return a, true
	}
	switch {
	case a == Occupied && b == ActiveOccupied, a == ActiveOccupied && b == Occupied:
		return ActiveOccupied, true
	case a == Unoccupied && b == ActiveUnoccupied, a == ActiveUnoccupied && b == Unoccupied:
		return ActiveUnoccupied, true
	default:
		return 0, false
	}
}

// Index is an abstract, immutable label referencing an IndexSpace.
//
// Invariants:
//   - Two Index values are Equal iff Label, ID, and Proto all match.
//   - Label ordering (ByLabel) is total and stable.
//   - Space is fixed at construction.
type Index struct {
	Label string
	ID    uint32
	Space IndexSpace
	Proto []Index // optional proto-indices; nil for ordinary indices
}

// New constructs an Index directly from a base label, numeric id, space,
// and optional proto-indices. base must be non-empty.
func New(base string, id uint32, space IndexSpace, proto ...Index) (Index, error) {
	if base == "" {
		return Index{}, ErrEmptyLabel
	}
	var protoCopy []Index
	if len(proto) > 0 {
		protoCopy = append([]Index(nil), proto...)
	}
	return Index{Label: base, ID: id, Space: space, Proto: protoCopy}, nil
}

// ParseLabel parses a literal label of the form "base_N" or "baseN" (N a
// decimal run) into (base, id). The base is the label with its trailing
// decimal run removed; "_": is stripped if present right before the digits.
func ParseLabel(label string) (base string, id uint32, err error) {
	if label == "" {
		return "", 0, ErrEmptyLabel
	}
	i := len(label)
	for i > 0 && label[i-1] >= '0' && label[i-1] <= '9' {
		i--
	}
	if i == len(label) {
		// No trailing digits at all: treat the whole label as base, id 0.
		return label, 0, nil
	}
	digits := label[i:]
	base = label[:i]
	base = strings.TrimSuffix(base, "_")
	if base == "" {
		return "", 0, ErrBadLabel
	}
	n, convErr := strconv.ParseUint(digits, 10, 32)
	if convErr != nil {
		return "", 0, fmt.Errorf("index: %w: %s", ErrBadLabel, label)
	}
	return base, uint32(n), nil
}

// FromLabel constructs an Index by parsing a literal label and looking its
// base up in reg (use a *Registry from PushDefaultRegistry, or DefaultReg()
// for the process-wide default).
func FromLabel(reg *Registry, label string) (Index, error) {
	base, id, err := ParseLabel(label)
	if err != nil {
		return Index{}, err
	}
	space, ok := reg.Lookup(base)
	if !ok {
		return Index{}, fmt.Errorf("index: %w: %s", ErrUnknownSpace, base)
	}
	return Index{Label: base, ID: id, Space: space}, nil
}

// FullLabel renders "base_id", the canonical textual form.
func (idx Index) FullLabel() string {
	return idx.Label + "_" + strconv.FormatUint(uint64(idx.ID), 10)
}

// Equal reports semantic slot equality: label, id, and
// proto-indices must all match (the Space is a pure function of the label
// within one registry, so it is not compared directly; two Index values
// built against different registries but with identical Label/ID/Proto are
// still considered the same abstract slot).
func (idx Index) Equal(o Index) bool {
	if idx.Label != o.Label || idx.ID != o.ID {
		return false
	}
	if len(idx.Proto) != len(o.Proto) {
		return false
	}
	for i := range idx.Proto {
		if !idx.Proto[i].Equal(o.Proto[i]) {
			return false
		}
	}
	return true
}

// Color returns a stable fingerprint for use as a graph-coloring input,
// combining the space color with the hashed full label via xhash.Combine.
func (idx Index) Color() uint64 {
	c := idx.Space.Color()
	c = xhash.Combine(c, xhash.String(idx.FullLabel()))
	for _, p := range idx.Proto {
		c = xhash.Combine(c, p.Color())
	}
	return c
}

// HashValue is the structural hash contribution of this Index, used by
// expr.Tensor's hashValue().
func (idx Index) HashValue() uint64 {
	h := xhash.String(idx.FullLabel())
	for _, p := range idx.Proto {
		h = xhash.Combine(h, p.HashValue())
	}
	return h
}

// String renders the canonical textual form (same as FullLabel) with any
// proto-index bundle appended in angle brackets, matching the literal
// syntax the (out-of-scope) parser/printer would round-trip.
func (idx Index) String() string {
	if len(idx.Proto) == 0 {
		return idx.FullLabel()
	}
	var b strings.Builder
	b.WriteString(idx.FullLabel())
	b.WriteByte('<')
	for i, p := range idx.Proto {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.FullLabel())
	}
	b.WriteByte('>')
	return b.String()
}

// Less implements the total order used as the stable tie-break everywhere
// index sequences must be sorted before a set operation. Primary key:
// Label; secondary: ID; tertiary: proto-index sequence, compared
// element-wise.
func (idx Index) Less(o Index) bool {
	if idx.Label != o.Label {
		return idx.Label < o.Label
	}
	if idx.ID != o.ID {
		return idx.ID < o.ID
	}
	n := len(idx.Proto)
	if len(o.Proto) < n {
		n = len(o.Proto)
	}
	for i := 0; i < n; i++ {
		if idx.Proto[i].Equal(o.Proto[i]) {
			continue
		}
		return idx.Proto[i].Less(o.Proto[i])
	}
	return len(idx.Proto) < len(o.Proto)
}

// ByLabel is a three-way comparator usable with slices.SortFunc, the one
// ordering every sort and set operation over index sequences in this
// module goes through.
func ByLabel(a, b Index) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
