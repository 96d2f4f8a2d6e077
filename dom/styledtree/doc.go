/*
Package styledtree is a straightforward default implementation of a styled document tree.

Overview

A styled tree mirrors an HTML parse tree, with every node carrying its
computed styles. BuildFromHTML parses a document, applies the style sheets
of its <style> elements and its inline styles and creates a StyNode for
every element and text node.

StyNode implements boxtree.DocumentNode and is the input to box tree
construction. Generated content is represented by nodes of its own: an
element gets children for ::before and ::after if its styles set
'content'. The children of <details> elements are wrapped into a summary
node and a content node.

Every node carries restyle damage. New nodes are fully damaged; box tree
construction clears the damage of the nodes it visits. Package dom
records damage when styles are changed.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyse.dom'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.dom")
}
