/*
Package dom provides utilities for styled HTML documents.

Overview

Package styledtree builds a tree of styled nodes from an HTML document.
This package adds a W3C view of styled nodes (see package w3cdom),
predicates for tree.Walker selections, and helpers to restyle nodes.

Restyling

Box tree construction may run incrementally: after the first pass, only
nodes with restyle damage are revisited. SetProperty changes a property of
a styled node and records the damage the change causes, on the node itself
and on descendants inheriting the property. Changes of properties which
classify boxes ('display', 'position', 'float', 'content', …) cause boxes to
be reconstructed; other changes let boxes be repaired in place.

Tree Implementation

Styling and layout of HTML/CSS involves a lot of operations on different trees.
We implement the various trees on top of a general purpose tree type
(package tree), which offers concurrent operations to manipulate
tree nodes.

In a fully object oriented programming language we would subclass this
tree type for every type of tree in use, but in Go we resort to
composition, thus including a generic tree node in every node (sub-)type.
The downside of this approach is that we will have to provide an adapter
for every node sub-type to return the sub-type from the generic type.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyse.dom'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.dom")
}
