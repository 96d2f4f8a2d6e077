package tree

import (
	"cmp"
	"slices"
	"sync"
)

// nodeCounter is a concurrency-safe map of per-node counters. Walkers keep
// document order serials in it, and bottom-up workers count the finished
// children of a parent.
type nodeCounter[T comparable] struct {
	mx    sync.Mutex
	count map[*Node[T]]uint32
}

func newNodeCounter[T comparable]() *nodeCounter[T] {
	return &nodeCounter[T]{count: make(map[*Node[T]]uint32)}
}

// set sets the counter of n and returns the previous value.
func (nc *nodeCounter[T]) set(n *Node[T], v uint32) uint32 {
	assertThat(n != nil, "counter for nil node")
	nc.mx.Lock()
	defer nc.mx.Unlock()
	prev := nc.count[n]
	nc.count[n] = v
	return prev
}

// get returns the counter of n, 0 if unset.
func (nc *nodeCounter[T]) get(n *Node[T]) uint32 {
	if n == nil || nc == nil {
		return 0
	}
	nc.mx.Lock()
	defer nc.mx.Unlock()
	return nc.count[n]
}

// inc increments the counter of n and returns the new value.
func (nc *nodeCounter[T]) inc(n *Node[T]) uint32 {
	assertThat(n != nil, "counter for nil node")
	nc.mx.Lock()
	defer nc.mx.Unlock()
	nc.count[n]++
	return nc.count[n]
}

// remove deletes the counter of n.
func (nc *nodeCounter[T]) remove(n *Node[T]) {
	nc.mx.Lock()
	defer nc.mx.Unlock()
	delete(nc.count, n)
}

// --------------------------------------------------------------------------------

// serialNode pairs a result node with its document order serial.
type serialNode[T comparable] struct {
	node   *Node[T]
	serial uint32
}

// sortBySerial brings result nodes into document order. Nodes with equal
// serials keep their relative order.
func sortBySerial[T comparable](sn []serialNode[T]) []*Node[T] {
	slices.SortStableFunc(sn, func(a, b serialNode[T]) int {
		return cmp.Compare(a.serial, b.serial)
	})
	nodes := make([]*Node[T], len(sn))
	for i := range sn {
		nodes[i] = sn[i].node
	}
	return nodes
}
