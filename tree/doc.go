/*
Package tree implements an all-purpose tree type, used as a base for the
styled tree of a document.

Tree operations are performed concurrently. Sibling subtrees are processed
by a bounded set of worker goroutines (see ForkJoin), with a parent always
joining all of its children before it is processed itself. This is
transparent for clients, besides getting a
promise (https://en.wikipedia.org/wiki/Futures_and_promises)
as a return type from selections.

Selections

We support a set of search & filter functions on tree nodes. Clients will chain
these to perform tasks on nodes. You may think of the set of operations to
form a small Domain Specific Language (DSL). This is similar in concept to
JQuery, but of course with a much smaller set of functions.

Navigation functions:

   Parent()                     // find parent for all selected nodes
   AncestorWith(predicate)      // find ancestor with a given predicate
   DescendentsWith(predicate)   // find descendets with a given predicate
   AllDescendents()             // select the complete subtree
   TopDown(action)              // traverse all nodes top down
   BottomUp(action)             // traverse all nodes bottom up

Filter functions:

   Filter(userfunc)             // apply a user-provided filter function

Selections are always delivered in document order.

Post-Order Traversal

Building derived trees (like the box tree of a document) needs the results
of children to be available when processing a parent. Postorder performs such
a traversal for any kind of node type.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyse.frame.tree'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.frame.tree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("tree: "+msg, msgargs...)
		panic(msg)
	}
}
