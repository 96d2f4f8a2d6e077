package boxtree

import (
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/boxtree/frame/flow"
)

// buildFlowForListItem builds a list item flow with its marker. Outside
// markers are kept with the flow, inside markers become the first inline
// content of the item (CSS 2.1 § 12.5.1).
func (b *builder) buildFlowForListItem(n DocumentNode, fk flow.FloatKind) ConstructionResult {
	markers := b.listMarkerFragments(n)
	fl := newFloatingFlow(flow.ListItem, b.buildFragmentForBlock(n), fk)
	var initial IntermediateInlineFragments
	if css.ListStylePositionOf(n.Styles()) {
		initial.Fragments = markers
	} else {
		fl.Markers = markers
	}
	return b.buildFlowForBlockStartingWithFragments(fl, n, initial)
}

// listMarkerFragments creates the marker of a list item, from either
// 'list-style-image' or 'list-style-type'.
func (b *builder) listMarkerFragments(n DocumentNode) []*flow.Fragment {
	pmap := n.Styles()
	if url, ok := css.ListStyleImageOf(pmap); ok {
		return []*flow.Fragment{newNodeFragment(n, pmap, &flow.Image{URL: url})}
	}
	lst := css.ListStyleTypeOf(pmap)
	if lst.IsNone() {
		return nil
	}
	if r, ok := lst.StaticMarker(); ok {
		text := string(r) + "\u00A0"
		marker := newNodeFragment(n, pmap, &flow.UnscannedText{Text: text})
		return b.opts.Scanner.ScanForRuns([]*flow.Fragment{marker})
	}
	item := css.ContentItem{Kind: css.ContentCounter, Value: "list-item", Style: string(lst)}
	return []*flow.Fragment{newNodeFragment(n, pmap, &flow.GeneratedContent{Item: item})}
}

// buildFlowForMulticol builds a multi-column container holding a single
// column flow, which in turn holds the node's content.
func (b *builder) buildFlowForMulticol(n DocumentNode, fk flow.FloatKind) ConstructionResult {
	fl := newFloatingFlow(flow.Multicol, newNodeFragment(n, n.Styles(), flow.MulticolInfo{}), fk)
	column := flow.NewFlow(flow.MulticolColumn, newNodeFragment(n, n.Styles(), flow.MulticolColumnInfo{}))
	var abs flow.AbsoluteDescendants
	if fr, ok := b.buildFlowForBlockLike(column, n).(*FlowResult); ok {
		fl.AddNewChild(fr.Flow)
		abs.PushDescendants(fr.Abs)
	}
	b.markRoot(n, fl)
	fl.Finish()
	abs = finishAbsoluteDescendants(fl, abs)
	return &FlowResult{Flow: fl, Abs: abs}
}

// buildFlowForFlex builds a flex container. Its children are tagged as flex
// items by the legalizer.
func (b *builder) buildFlowForFlex(n DocumentNode, fk flow.FloatKind) ConstructionResult {
	fl := newFloatingFlow(flow.Flex, b.buildFragmentForBlock(n), fk)
	return b.buildFlowForBlockLike(fl, n)
}
