package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"sync"
)

// ErrInvalidFilter is thrown if a filter step is defunct.
var ErrInvalidFilter = errors.New("filter stage is invalid")

// ErrEmptyTree is thrown if a Walker is called with an empty tree. Refer to
// the documentation of NewWalker() for details about this scenario.
var ErrEmptyTree = errors.New("cannot walk empty tree")

// ErrNoMoreFiltersAccepted is thrown if a client already called Promise(), but tried to
// re-use a walker with another filter.
var ErrNoMoreFiltersAccepted = errors.New("in promise mode; will not accept new filters; use a new walker")

// Walker holds information for operating on trees: finding nodes and
// doing work on them. Clients usually create a Walker for a (sub-)tree
// to search for a selection of nodes matching certain criteria, and
// then perform some operation on this selection.
//
// A Walker will eventually return two client-level values:
// A slice of tree nodes and the last error occured.
// These fields are accessed through a
// Promise-object, which represents future values for the two fields.
//
// A typical usage of a Walker looks like this ("FindNodesAndDoSomething()" is
// a placeholder for a sequence of function calls, see below):
//
//    w := NewWalker(node)
//    futureResult := w.FindNodesAndDoSomething(...).Promise()
//    nodes, err := futureResult()
//
// Walker support a set of search & filter functions. Clients will chain
// some of these to perform tasks on tree nodes.
// You may think of the set of operations to form a small
// Domain Specific Language (DSL), similar in concept to JQuery.
//
// Every step returns a new Walker and leaves the receiver untouched. Nodes
// of a step's selection are processed concurrently, therefore predicates and
// actions must be safe for concurrent use.
type Walker[T comparable] struct {
	initial   *Node[T]   // initial node of (sub-)tree
	fj        *ForkJoin  // worker budget
	order     *nodeCounter[T] // document order of nodes
	selection []*Node[T]
	err       error // last error occured
	promising bool  // client has called Promise()
}

var defaultForkJoin = NewForkJoin(0)

// NewWalker creates a Walker for the initial node of a (sub-)tree.
// The first subsequent call to a node filter function will have this
// initial node as input.
//
// If initial is nil, NewWalker will return a nil-Walker, resulting
// in a NOP-chain of operations, resulting in an empty set of nodes
// and an error (ErrEmptyTree).
func NewWalker[T comparable](initial *Node[T]) *Walker[T] {
	if initial == nil {
		return nil
	}
	tracer().Debugf("new tree-walker, initial node = %v", initial)
	return &Walker[T]{
		initial:   initial,
		fj:        defaultForkJoin,
		order:     documentOrder(initial),
		selection: []*Node[T]{initial},
	}
}

// Using sets the worker budget for subsequent steps.
func (w *Walker[T]) Using(fj *ForkJoin) *Walker[T] {
	if w == nil {
		return nil
	}
	nw := w.clone(w.selection, w.err)
	nw.fj = fj
	return nw
}

func (w *Walker[T]) clone(selection []*Node[T], err error) *Walker[T] {
	return &Walker[T]{
		initial:   w.initial,
		fj:        w.fj,
		order:     w.order,
		selection: selection,
		err:       err,
		promising: w.promising,
	}
}

// Promise is a future synchronisation point.
// Clients will not receive the resulting node list immediately, but
// rather get handed a Promise.
// Clients will then, any time after they received the Promise, call the
// Promise (which is of function type) to receive a slice of nodes and
// a possible error value.
func (w *Walker[T]) Promise() func() ([]*Node[T], error) {
	if w == nil {
		// empty Walker => return nil set and an error
		return func() ([]*Node[T], error) {
			return nil, ErrEmptyTree
		}
	}
	w.promising = true // will block calls to establish new filters
	selection, err := w.selection, w.err
	return func() ([]*Node[T], error) {
		return selection, err
	}
}

// step applies a task to every node of the selection, collecting the
// nodes the tasks emit into a new selection.
func (w *Walker[T]) step(task func(n *Node[T], c *collector[T]) error) *Walker[T] {
	if w.promising {
		return w.clone(nil, ErrNoMoreFiltersAccepted)
	}
	c := &collector[T]{}
	err := Each(w.fj, w.selection, func(_ int, n *Node[T]) error {
		return task(n, c)
	})
	if err == nil {
		err = c.err
	}
	if err == nil {
		err = w.err
	}
	return w.clone(w.sorted(c.nodes), err)
}

// collector gathers result nodes of concurrent tasks.
type collector[T comparable] struct {
	sync.Mutex
	nodes []*Node[T]
	err   error
}

func (c *collector[T]) emit(n *Node[T]) {
	if n == nil {
		return
	}
	c.Lock()
	defer c.Unlock()
	c.nodes = append(c.nodes, n)
}

func (c *collector[T]) fail(err error) {
	if err == nil {
		return
	}
	c.Lock()
	defer c.Unlock()
	c.err = err
}

// sorted removes duplicates from a set of result nodes and brings them into
// document order.
func (w *Walker[T]) sorted(nodes []*Node[T]) []*Node[T] {
	seen := make(map[*Node[T]]struct{}, len(nodes))
	sn := make([]serialNode[T], 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		sn = append(sn, serialNode[T]{n, w.serialOf(n)})
	}
	return sortBySerial(sn)
}

// serialOf returns the document order position of a node. Nodes inserted
// after the walker has been created are placed with their nearest known
// ancestor.
func (w *Walker[T]) serialOf(n *Node[T]) uint32 {
	for ; n != nil; n = n.Parent() {
		if s := w.order.get(n); s > 0 {
			return s
		}
	}
	return 0
}

// documentOrder numbers all nodes of the tree containing n in pre-order,
// starting with 1 for the root.
func documentOrder[T comparable](n *Node[T]) *nodeCounter[T] {
	root := n
	for root.Parent() != nil {
		root = root.Parent()
	}
	order := newNodeCounter[T]()
	serial := uint32(0)
	var number func(*Node[T])
	number = func(node *Node[T]) {
		serial++
		order.set(node, serial)
		for _, ch := range node.Children() {
			number(ch)
		}
	}
	number(root)
	return order
}

// ----------------------------------------------------------------------

// Predicate is a function type to match against nodes of a tree.
// Is is used as an argument for various Walker functions to
// collect a selection of nodes.
// test is the node under test, node is the input node.
type Predicate[T comparable] func(test *Node[T], node *Node[T]) (match *Node[T], err error)

// Whatever is a predicate to match anything (see type Predicate).
// It is useful to match the first node in a given direction.
func Whatever[T comparable]() Predicate[T] {
	return func(test *Node[T], node *Node[T]) (*Node[T], error) {
		return test, nil
	}
}

// NodeIsLeaf is a predicate to match leafs of a tree.
func NodeIsLeaf[T comparable]() Predicate[T] {
	return func(test *Node[T], node *Node[T]) (match *Node[T], err error) {
		if test.ChildCount() == 0 {
			return test, nil
		}
		return nil, nil
	}
}

// ----------------------------------------------------------------------

// Parent returns the parent node.
//
// If w is nil, Parent will return nil.
func (w *Walker[T]) Parent() *Walker[T] {
	if w == nil {
		return nil
	}
	return w.step(func(n *Node[T], c *collector[T]) error {
		c.emit(n.Parent()) // root nodes will not produce a result
		return nil
	})
}

// AncestorWith finds an ancestor matching the given predicate.
// The search does not include the start node.
//
// If w is nil, AncestorWith will return nil.
func (w *Walker[T]) AncestorWith(predicate Predicate[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if predicate == nil {
		return w.clone(w.selection, ErrInvalidFilter)
	}
	return w.step(func(n *Node[T], c *collector[T]) error {
		for anc := n.Parent(); anc != nil; anc = anc.Parent() {
			match, err := predicate(anc, n)
			if err != nil {
				return err
			}
			if match != nil {
				c.emit(match)
				return nil
			}
		}
		return nil // no matching ancestor found, not an error
	})
}

// DescendentsWith finds descendents matching a predicate.
// The search does not include the start node.
//
// If the predicate returns an error for a node, descending the branch below
// this node is aborted.
//
// If w is nil, DescendentsWith will return nil.
func (w *Walker[T]) DescendentsWith(predicate Predicate[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if predicate == nil {
		return w.clone(w.selection, ErrInvalidFilter)
	}
	return w.step(func(n *Node[T], c *collector[T]) error {
		w.descend(n, c, func(ch, _ *Node[T], _ int) (*Node[T], error) {
			return predicate(ch, n)
		})
		return nil
	})
}

// AllDescendents traverses all descendents.
// The traversal does not include the start node.
// This is just a wrapper around `w.DescendentsWith(Whatever)`.
//
// If w is nil, AllDescendents will return nil.
func (w *Walker[T]) AllDescendents() *Walker[T] {
	return w.DescendentsWith(Whatever[T]())
}

// descend applies an action to the children of a node, then recursively to
// their children. Sibling subtrees are processed concurrently.
func (w *Walker[T]) descend(node *Node[T], c *collector[T], action Action[T]) {
	j := &join{}
	for position, ch := range node.Children() {
		if ch == nil {
			continue
		}
		position, ch := position, ch
		j.spawn(w.fj, func() error {
			result, err := action(ch, node, position)
			if err != nil {
				c.fail(err)
				return nil // do not descend further
			}
			c.emit(result)
			w.descend(ch, c, action)
			return nil
		})
	}
	j.wait()
}

// Filter calls a client-provided function on each node of the selection.
// The user function should return the input node if it is accepted and
// nil otherwise.
//
// If w is nil, Filter will return nil.
func (w *Walker[T]) Filter(f Predicate[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if f == nil {
		return w.clone(w.selection, ErrInvalidFilter)
	}
	return w.step(func(n *Node[T], c *collector[T]) error {
		match, err := f(n, n)
		if err == nil {
			c.emit(match)
		}
		return err
	})
}

// Action is a function type to operate on tree nodes.
// Resulting nodes will be part of the next selection, if
// no error occured.
type Action[T comparable] func(n *Node[T], parent *Node[T], position int) (*Node[T], error)

// TopDown traverses a tree starting at (and including) the selected nodes.
// The traversal guarantees that parents are always processed before
// their children.
//
// If the action function returns an error for a node,
// descending the branch below this node is aborted.
//
// If w is nil, TopDown will return nil.
func (w *Walker[T]) TopDown(action Action[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if action == nil {
		return w.clone(w.selection, ErrInvalidFilter)
	}
	return w.step(func(n *Node[T], c *collector[T]) error {
		parent, position := n.Parent(), 0
		if parent != nil {
			position = parent.IndexOfChild(n)
		}
		result, err := action(n, parent, position)
		if err != nil {
			return err
		}
		c.emit(result)
		w.descend(n, c, action)
		return nil
	})
}

// BottomUp traverses a tree starting at (and including) all the current nodes.
// Usually clients will select all of the tree's leafs before calling BottomUp().
// The traversal guarantees that parents are not processed before
// all of their children.
//
// If the action function returns an error for a node,
// the parent is processed regardless.
//
// If w is nil, BottomUp will return nil.
func (w *Walker[T]) BottomUp(action Action[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if action == nil {
		return w.clone(w.selection, ErrInvalidFilter)
	}
	finished := newNodeCounter[T]()
	return w.step(func(n *Node[T], c *collector[T]) error {
		if n.ChildCount() > 0 {
			return nil // will be processed after its last child
		}
		for n != nil {
			parent, position := n.Parent(), 0
			if parent != nil {
				position = parent.IndexOfChild(n)
			}
			result, err := action(n, parent, position)
			if err != nil {
				c.fail(err)
			} else {
				c.emit(result)
			}
			if parent == nil {
				break
			}
			// the worker finishing the last child continues with the parent
			if int(finished.inc(parent)) < parent.ChildCount() {
				break
			}
			finished.remove(parent)
			n = parent
		}
		return nil
	})
}

// CalcRank is an action for bottom-up processing. It Calculates the 'rank'-member
// for each node, meaning: the number of child-nodes + 1.
// The root node will hold the number of nodes in the entire tree.
// Leaf nodes will have a rank of 1.
func CalcRank[T comparable](n *Node[T], parent *Node[T], position int) (*Node[T], error) {
	//
	r := uint32(1)
	for _, ch := range n.Children() {
		r += ch.Rank
	}
	n.Rank = r
	return n, nil
}
