/*
Package flow defines the building blocks of box trees: flows and fragments.

A flow is a node of the box tree with layout behaviour of its own: blocks,
inline formatting contexts, the parts of a table, flex containers, list items
and multi-column containers. Flows own an ordered list of child flows.

A fragment is a leaf content unit. Every fragment carries a specific payload
(text, an image, a table column, a wrapper for an inline-block, etc.), the
identity of the document node it originates from, and its style. A fragment
owns a flow only through one of the wrapper payloads.

Flows and fragments are created by the box tree constructor (package boxtree)
and are read-only for subsequent layout stages. The only exception is
incremental repair, which propagates new styles and restyle damage into
existing flows.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package flow

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyse.frame'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.frame")
}
