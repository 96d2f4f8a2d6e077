package boxtree

import (
	"fmt"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/boxtree/frame/flow"
)

// repairIfPossible tries to bring the stored construction result of a
// restyled node up to date without reconstructing it. It returns false if
// the node's boxes have to be reconstructed.
//
// Repair is possible if neither the node nor any of its children have been
// reconstructed since the node's result has been built, and if the node's
// restyle damage does not require reconstruction.
func (b *builder) repairIfPossible(n DocumentNode) bool {
	pmap := n.Styles()
	if css.DisplayOf(pmap).Contains(css.DisplayNone) {
		return false
	}
	// every kid's flag has to be cleared, no early return
	needToReconstruct := false
	for _, kid := range n.Children() {
		if b.store.clearFresh(kid) {
			needToReconstruct = true
		}
	}
	if needToReconstruct {
		return false
	}
	damage := n.RestyleDamage()
	if damage.Contains(style.ReconstructFlow) {
		return false
	}
	if css.IsFragmentable(pmap) || css.IsMulticol(pmap) {
		return false
	}
	r, ok := b.store.storedResult(n)
	if !ok {
		return false
	}
	switch r := r.(type) {
	case NoResult:
		return true
	case *FlowResult:
		// same kind of flow with the same children: propagate damage and style
		if r.Flow.Kind != flow.Block {
			return false
		}
		r.Flow.Damage = r.Flow.Damage.Insert(damage)
		r.Flow.RepairStyleAndBubbleISizes(pmap)
		return true
	case *InlineFragmentsItem:
		if len(r.Splits) > 0 {
			return false
		}
		return b.repairInlineFragments(n, r.Fragments.Fragments, damage)
	}
	return false
}

// repairInlineFragments repairs the fragments of a node within its inline
// construction result. Fragments of descendants are left untouched.
func (b *builder) repairInlineFragments(n DocumentNode, fragments []*flow.Fragment,
	damage style.RestyleDamage) bool {
	//
	pmap := n.Styles()
	restyled := false
	for _, f := range fragments {
		if !f.IsFrom(n.Opaque(), n.Pseudo()) {
			continue
		}
		switch info := f.Specific.(type) {
		case *flow.InlineBlock, *flow.InlineAbsoluteHypothetical, *flow.InlineAbsolute:
			wrapped := flow.WrappedFlow(info)
			wrapped.Damage = wrapped.Damage.Insert(damage)
			wrapped.RepairStyleAndBubbleISizes(pmap)
		case *flow.ScannedText:
			panic(fmt.Sprintf("boxtree: scanned text in construction result of %s", nodeName(n)))
		case *flow.UnscannedText, *flow.GeneratedContent:
			// scanned copies in the parent's inline flow cannot be found
			return false
		default:
			f.RepairStyle(pmap)
			restyled = true
		}
	}
	if restyled {
		// the parent holds copies of the fragments
		b.store.markFresh(n)
	}
	return true
}
