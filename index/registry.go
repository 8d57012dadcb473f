// File: registry.go
// Role: An optional process-wide default IndexSpace table (base label ->
// IndexSpace), with a scoped push/pop handle a host can use to install a
// temporary default and guarantee its release on every exit path.
//
// The handle guarantees the prior default is restored on every exit path,
// including a panic unwinding through the scope; the table itself uses a
// narrow RWMutex, with read locks released before any write lock is taken.
//
// Registry is never read by canon/network/optimize internals: those
// packages only ever see IndexSpace values passed explicitly. Registry
// exists purely so that fixtures, examples, and hosts constructing literal
// expressions have somewhere deterministic to resolve "occ_1"-style labels
// from.
package index

import (
	"sync"

	"github.com/google/btree"
)

// Registry is a base-label -> IndexSpace table, safe for concurrent reads
// and writes via an internal RWMutex.
type Registry struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[regEntry]
}

type regEntry struct {
	base  string
	space IndexSpace
}

func regEntryLess(a, b regEntry) bool { return a.base < b.base }

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tree: btree.NewG(32, regEntryLess)}
}

// Register associates base with space, overwriting any prior association.
// Complexity: O(log n).
func (r *Registry) Register(base string, space IndexSpace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tree.ReplaceOrInsert(regEntry{base: base, space: space})
}

// Lookup returns the IndexSpace registered for base, if any.
// Complexity: O(log n).
func (r *Registry) Lookup(base string) (IndexSpace, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tree.Get(regEntry{base: base})
	return e.space, ok
}

// Bases returns every registered base label in ascending order; using the
// B-tree's stable Ascend rather than a Go map range, whose iteration order
// is deliberately randomized and would make any text built from it
// non-reproducible across runs.
func (r *Registry) Bases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, r.tree.Len())
	r.tree.Ascend(func(e regEntry) bool {
		out = append(out, e.base)
		return true
	})
	return out
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := NewRegistry()
	r.tree.Ascend(func(e regEntry) bool {
		out.tree.ReplaceOrInsert(e)
		return true
	})
	return out
}

// defaultRegistry is the process-wide fallback used by DefaultReg. It
// starts populated with the canonical occupied/unoccupied/complete spaces
// under their conventional base labels.
var defaultRegistry = newStandardRegistry()

var defaultMu sync.RWMutex

func newStandardRegistry() *Registry {
	r := NewRegistry()
	r.Register("o", IndexSpace{Type: Occupied, Qns: NullQN})
	r.Register("O", IndexSpace{Type: ActiveOccupied, Qns: NullQN})
	r.Register("v", IndexSpace{Type: Unoccupied, Qns: NullQN})
	r.Register("V", IndexSpace{Type: ActiveUnoccupied, Qns: NullQN})
	r.Register("p", IndexSpace{Type: Complete, Qns: NullQN})
	return r
}

// DefaultReg returns the currently-installed process-wide default Registry.
// Safe for concurrent use.
func DefaultReg() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}

// RegistryHandle is returned by PushDefaultRegistry; calling Pop restores
// the previously-installed default. Pop is idempotent: calling it more than
// once (e.g. once from a deferred call and once explicitly) is a safe no-op
// after the first call, so hosts can always `defer handle.Pop()` regardless
// of other early-return paths.
type RegistryHandle struct {
	prev    *Registry
	popped  bool
	popOnce sync.Once
}

// PushDefaultRegistry installs reg as the process-wide default and returns a
// handle whose Pop restores the prior default. Callers MUST defer Pop
// immediately after a successful push so the prior default is restored on
// every exit path, including a panic unwinding through the scope.
func PushDefaultRegistry(reg *Registry) *RegistryHandle {
	defaultMu.Lock()
	prev := defaultRegistry
	defaultRegistry = reg
	defaultMu.Unlock()
	return &RegistryHandle{prev: prev}
}

// Pop restores the Registry that was installed before the matching Push.
func (h *RegistryHandle) Pop() {
	h.popOnce.Do(func() {
		defaultMu.Lock()
		defaultRegistry = h.prev
		defaultMu.Unlock()
		h.popped = true
	})
}
