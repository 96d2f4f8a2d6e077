/*
Package boxtree constructs box trees from styled documents.

A box tree is a tree of flows (package flow), built bottom-up from a styled
document tree. Every document node is visited once per construction pass,
children before parents. A node classifies itself by the triple (display,
float, position) and stores a construction result for its parent to pick up:
nothing, a finished flow, or an unresolved construction item (runs of inline
fragments, collapsible white-space, table columns).

Inline content interrupted by block-level content is split ("{ib} split"):
the inline fragments preceding the block, the block itself, and the fragments
following it are handed to the nearest block container in document order.
Before a flow is attached to its parent, a legalizer inserts anonymous boxes
whenever the combination of parent and child is not legal (e.g., a table
cell directly inside a block).

Absolutely positioned flows bubble up as a side list until they reach a
positioned ancestor (or the root), which becomes their containing block.

Incremental construction

Construction results are kept in a LayoutStore between passes. On later
passes, subtrees without restyle damage are skipped, and nodes with damage
which does not affect the structure of the box tree are repaired in place.

Concurrency

Sibling subtrees are constructed concurrently, using package tree's
fork-join traversal. Construction of a single node is sequential; all
intermediate data structures are local to the worker constructing the node.

Errors

Construction has no recoverable error conditions. Malformed input is
corrected by inserting anonymous boxes. Violations of internal invariants
result in a panic, with a message prefixed by "boxtree:".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package boxtree

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyse.frame'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.frame")
}

// ErrNoRootFlow is returned if the root of a document did not produce a flow,
// e.g., because it has 'display: none'.
var ErrNoRootFlow = errors.New("document root did not produce a flow")

// ErrNilRoot is returned if box tree construction is called without a
// document.
var ErrNilRoot = errors.New("document root is nil")
