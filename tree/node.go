package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// Node is the base type our tree is built of. Each node carries a payload
// of type parameter T and an ordered list of children.
//
// Trees are usually built by a single goroutine and then read by many, e.g.
// by the workers of a fork-join traversal. All operations on nodes are
// concurrency-safe.
type Node[T comparable] struct {
	parent   atomic.Pointer[Node[T]] // parent node of this node
	mx       sync.RWMutex            // guards children
	children []*Node[T]
	Payload  T      // nodes may carry a payload of arbitrary type
	Rank     uint32 // number of nodes in the subtree, see CalcRank
}

// NewNode creates a new tree node with a given payload.
func NewNode[T comparable](payload T) *Node[T] {
	return &Node[T]{Payload: payload}
}

func (node *Node[T]) String() string {
	return fmt.Sprintf("(Node #ch=%d %v)", node.ChildCount(), node.Payload)
}

// AddChild appends a child node and connects it to this node as its parent.
// It returns the parent node to allow for chaining. A child currently
// attached elsewhere is removed from its old parent first.
func (node *Node[T]) AddChild(ch *Node[T]) *Node[T] {
	return node.InsertChildAt(-1, ch)
}

// InsertChildAt inserts a child node at position i, shifting children at
// later positions. i < 0 or i beyond the last child appends.
// It returns the parent node to allow for chaining.
func (node *Node[T]) InsertChildAt(i int, ch *Node[T]) *Node[T] {
	if ch == nil {
		return node
	}
	assertThat(ch != node, "node cannot be its own child")
	if old := ch.Parent(); old != nil {
		old.RemoveChild(ch)
	}
	node.mx.Lock()
	if i < 0 || i > len(node.children) {
		i = len(node.children)
	}
	node.children = slices.Insert(node.children, i, ch)
	node.mx.Unlock()
	ch.parent.Store(node)
	return node
}

// RemoveChild detaches a child from this node. The positions of later
// siblings shift by one. It returns false if ch is not a child of node.
func (node *Node[T]) RemoveChild(ch *Node[T]) bool {
	if ch == nil {
		return false
	}
	node.mx.Lock()
	i := slices.Index(node.children, ch)
	if i >= 0 {
		node.children = slices.Delete(node.children, i, i+1)
	}
	node.mx.Unlock()
	if i < 0 {
		return false
	}
	ch.parent.CompareAndSwap(node, nil)
	return true
}

// Parent returns the parent node or nil (for the root of the tree).
func (node *Node[T]) Parent() *Node[T] {
	return node.parent.Load()
}

// ChildCount returns the number of children of a node.
func (node *Node[T]) ChildCount() int {
	node.mx.RLock()
	defer node.mx.RUnlock()
	return len(node.children)
}

// Child returns the child at position n, if any.
func (node *Node[T]) Child(n int) (*Node[T], bool) {
	node.mx.RLock()
	defer node.mx.RUnlock()
	if n < 0 || n >= len(node.children) {
		return nil, false
	}
	return node.children[n], true
}

// Children returns a snapshot of the children of a node. Clients may modify
// the returned slice.
func (node *Node[T]) Children() []*Node[T] {
	node.mx.RLock()
	defer node.mx.RUnlock()
	return slices.Clone(node.children)
}

// IndexOfChild returns the index of a child within the list of children
// of its parent, or -1 if ch is not a child of node.
func (node *Node[T]) IndexOfChild(ch *Node[T]) int {
	if ch == nil {
		return -1
	}
	node.mx.RLock()
	defer node.mx.RUnlock()
	return slices.Index(node.children, ch)
}
