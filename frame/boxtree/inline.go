package boxtree

import (
	"fmt"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/boxtree/frame/flow"
)

// buildFragmentsForInline builds the fragments of a node with
// 'display: inline'.
func (b *builder) buildFragmentsForInline(n DocumentNode) ConstructionResult {
	if isReplacedContent(n) {
		return b.buildFragmentsForReplacedInlineContent(n)
	}
	return b.buildFragmentsForNonReplacedInlineContent(n)
}

// buildFragmentsForNonReplacedInlineContent concatenates the fragments of a
// node's children. Block-level children split the run of fragments. A node
// without any content yields NoResult.
func (b *builder) buildFragmentsForNonReplacedInlineContent(n DocumentNode) ConstructionResult {
	var splits []InlineBlockSplit
	acc := accumulatorFromInlineNode(n)
	acc.bidiOpen, acc.bidiClose, acc.hasBidi = bidiControlChars(n.Styles())
	var abs flow.AbsoluteDescendants
	kids := n.Children()
	for _, kid := range kids {
		switch r := b.store.Result(kid).(type) {
		case NoResult:
		case *FlowResult:
			if !r.Flow.Flags.Contains(flow.IsAbsolutelyPositioned) {
				splits = append(splits, acc.split(n, r.Flow, b.opts.Styler))
				abs.PushDescendants(r.Abs)
				break
			}
			// the absolutely positioned child stays in the inline content
			main := r.Flow.Fragment
			acc.push(flow.NewFragment(main.Node, main.Pseudo, main.Style, main.SelectedStyle,
				main.Damage, &flow.InlineAbsolute{Flow: r.Flow}))
			acc.pushAbs(r.Abs)
		case *InlineFragmentsItem:
			for _, split := range r.Splits {
				acc.pushAll(split.Predecessors)
				splits = append(splits, acc.split(n, split.Flow, b.opts.Styler))
			}
			acc.pushAll(r.Fragments)
		case *WhitespaceItem:
			acc.push(whitespaceFragment(r, n))
		case *TableColumnItem:
			// columns outside of a column group are dropped
		default:
			panic(fmt.Sprintf("boxtree: unknown construction result %T", r))
		}
	}
	pmap := n.Styles()
	if len(kids) == 0 && hasPaddingOrBorder(pmap) {
		// an empty inline box still draws its background and border
		acc.push(newNodeFragment(n, pmap, &flow.UnscannedText{Text: ""}))
	}
	if len(splits) == 0 && acc.fragments.IsEmpty() && len(abs) == 0 {
		return NoResult{}
	}
	acc.pushAbs(abs)
	if isPositioned(n) {
		acc.fragments.Abs.MarkAsHavingReachedContainingBlock()
	}
	return &InlineFragmentsItem{
		Splits:    splits,
		Fragments: acc.finish(b.opts.Styler),
	}
}

// buildFragmentsForReplacedInlineContent creates the single fragment of a
// replaced inline node. Replaced content does not render its children.
func (b *builder) buildFragmentsForReplacedInlineContent(n DocumentNode) ConstructionResult {
	for _, kid := range n.Children() {
		b.store.SetResult(kid, NoResult{})
	}
	pmap := n.Styles()
	if isIgnorableWhitespace(n) {
		return &WhitespaceItem{
			Node:   n.Opaque(),
			Pseudo: n.Pseudo(),
			Style:  b.opts.Styler(style.AnonText, pmap),
			Damage: n.RestyleDamage(),
		}
	}
	var iif IntermediateInlineFragments
	switch {
	case n.Type() == TextNode:
		b.createFragmentsForNodeTextContent(&iif, n, b.opts.Styler(style.AnonText, pmap))
	case n.Pseudo() == style.PseudoNormal:
		iif.Fragments = append(iif.Fragments, b.buildFragmentForBlock(n))
	default:
		b.createFragmentsForNodeTextContent(&iif, n, pmap)
	}
	return &InlineFragmentsItem{Fragments: iif}
}

// buildFragmentForInlineBlockOrFlex builds a block or flex flow for a node
// and wraps it into an inline fragment.
func (b *builder) buildFragmentForInlineBlockOrFlex(n DocumentNode, class boxClass) ConstructionResult {
	var r ConstructionResult
	switch class {
	case boxInlineBlock:
		r = b.buildFlowForBlock(n, flow.NotFloating)
	case boxInlineFlex:
		r = b.buildFlowForFlex(n, flow.NotFloating)
	default:
		panic(fmt.Sprintf("boxtree: inline wrapper for box class %d", class))
	}
	fr := mustBeFlow(r, n)
	pmap := b.opts.Styler(style.AnonInlineBlockWrapper, n.Styles())
	acc := newInlineAccumulator()
	acc.push(newNodeFragment(n, pmap, &flow.InlineBlock{Flow: fr.Flow}))
	acc.pushAbs(fr.Abs)
	return &InlineFragmentsItem{Fragments: acc.finish(b.opts.Styler)}
}

// buildFragmentForAbsolutelyPositionedInline builds a block flow for an
// absolutely positioned node whose hypothetical box is inline.
func (b *builder) buildFragmentForAbsolutelyPositionedInline(n DocumentNode) ConstructionResult {
	fr := mustBeFlow(b.buildFlowForBlock(n, flow.NotFloating), n)
	pmap := b.opts.Styler(style.AnonInlineAbsolute, n.Styles())
	f := flow.NewFragment(n.Opaque(), style.PseudoNormal, pmap, n.Styles(), n.RestyleDamage(),
		&flow.InlineAbsoluteHypothetical{Flow: fr.Flow})
	acc := accumulatorFromInlineNode(n)
	acc.push(f)
	acc.pushAbs(fr.Abs)
	return &InlineFragmentsItem{Fragments: acc.finish(b.opts.Styler)}
}

func mustBeFlow(r ConstructionResult, n DocumentNode) *FlowResult {
	fr, ok := r.(*FlowResult)
	if !ok {
		panic(fmt.Sprintf("boxtree: block construction for %s did not yield a flow: %s", nodeName(n), r))
	}
	return fr
}

func isPositioned(n DocumentNode) bool {
	return !css.PositionOf(n.Styles()).IsStatic()
}
