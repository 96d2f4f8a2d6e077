package boxtree

import (
	"sync"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/frame/flow"
)

// LayoutStore holds the construction results of document nodes, one slot per
// node and pseudo-element category. It is kept between construction passes,
// making incremental construction possible.
//
// LayoutStore is safe for concurrent use.
type LayoutStore struct {
	mx    sync.RWMutex
	slots map[slotKey]*slot
}

type slotKey struct {
	node   flow.OpaqueNode
	pseudo style.PseudoElement
}

type slot struct {
	result ConstructionResult
	fresh  bool // the node's flow has been (re-)constructed since its parent last looked
}

// NewLayoutStore creates an empty layout store.
func NewLayoutStore() *LayoutStore {
	return &LayoutStore{slots: make(map[slotKey]*slot)}
}

func keyOf(n DocumentNode) slotKey {
	return slotKey{node: n.Opaque(), pseudo: n.Pseudo()}
}

func (ls *LayoutStore) lookup(n DocumentNode, create bool) *slot {
	k := keyOf(n)
	if !create {
		ls.mx.RLock()
		defer ls.mx.RUnlock()
		return ls.slots[k]
	}
	ls.mx.Lock()
	defer ls.mx.Unlock()
	s, ok := ls.slots[k]
	if !ok {
		s = &slot{result: NoResult{}}
		ls.slots[k] = s
	}
	return s
}

// Result returns a copy of the construction result of a node. The stored
// result stays in place and may be read again, e.g. after an ancestor has
// been invalidated while the node itself is unchanged.
func (ls *LayoutStore) Result(n DocumentNode) ConstructionResult {
	s := ls.lookup(n, false)
	if s == nil {
		return NoResult{}
	}
	ls.mx.RLock()
	defer ls.mx.RUnlock()
	return s.result.clone()
}

// storedResult returns the stored construction result itself, to be modified
// in place by incremental repair.
func (ls *LayoutStore) storedResult(n DocumentNode) (ConstructionResult, bool) {
	s := ls.lookup(n, false)
	if s == nil {
		return NoResult{}, false
	}
	ls.mx.RLock()
	defer ls.mx.RUnlock()
	return s.result, true
}

// SetResult stores the construction result of a node.
func (ls *LayoutStore) SetResult(n DocumentNode, r ConstructionResult) {
	if r == nil {
		r = NoResult{}
	}
	s := ls.lookup(n, true)
	ls.mx.Lock()
	defer ls.mx.Unlock()
	s.result = r
}

// Has is true if a construction result has been stored for a node.
func (ls *LayoutStore) Has(n DocumentNode) bool {
	return ls.lookup(n, false) != nil
}

func (ls *LayoutStore) markFresh(n DocumentNode) {
	s := ls.lookup(n, true)
	ls.mx.Lock()
	defer ls.mx.Unlock()
	s.fresh = true
}

// clearFresh clears the 'freshly constructed' mark and reports if it had
// been set.
func (ls *LayoutStore) clearFresh(n DocumentNode) bool {
	s := ls.lookup(n, false)
	if s == nil {
		return false
	}
	ls.mx.Lock()
	defer ls.mx.Unlock()
	was := s.fresh
	s.fresh = false
	return was
}

// Clear removes all construction results, forcing the next construction pass
// to rebuild every node.
func (ls *LayoutStore) Clear() {
	ls.mx.Lock()
	defer ls.mx.Unlock()
	ls.slots = make(map[slotKey]*slot)
}
