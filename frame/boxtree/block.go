package boxtree

import (
	"fmt"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/boxtree/frame/flow"
)

// buildFragmentForBlock creates the main fragment of a block-like flow.
func (b *builder) buildFragmentForBlock(n DocumentNode) *flow.Fragment {
	return newNodeFragment(n, n.Styles(), specificInfoFor(n))
}

func newNodeFragment(n DocumentNode, pmap *style.PropertyMap, info flow.SpecificInfo) *flow.Fragment {
	return flow.NewFragment(n.Opaque(), n.Pseudo(), pmap, n.Styles(), n.RestyleDamage(), info)
}

// newFloatingFlow creates a block-like flow, floated to a side.
func newFloatingFlow(kind flow.Kind, fragment *flow.Fragment, fk flow.FloatKind) *flow.Flow {
	fl := flow.NewFlow(kind, fragment)
	fl.Float = fk
	switch fk {
	case flow.FloatLeft:
		fl.Flags |= flow.FloatsLeft
	case flow.FloatRight:
		fl.Flags |= flow.FloatsRight
	}
	return fl
}

// buildFlowForBlock builds a block flow for a node, possibly with other
// block flows or inline flows underneath it. Multi-column containers are
// diverted.
func (b *builder) buildFlowForBlock(n DocumentNode, fk flow.FloatKind) ConstructionResult {
	if css.IsMulticol(n.Styles()) {
		return b.buildFlowForMulticol(n, fk)
	}
	fl := newFloatingFlow(flow.Block, b.buildFragmentForBlock(n), fk)
	return b.buildFlowForBlockLike(fl, n)
}

// buildFlowForBlockLike collects the initial content of replaced nodes
// (generated content, the value of form controls) and then builds the flow's
// children.
func (b *builder) buildFlowForBlockLike(fl *flow.Flow, n DocumentNode) ConstructionResult {
	var initial IntermediateInlineFragments
	isInput := false
	if n.Type() == ElementNode && n.Pseudo() == style.PseudoNormal {
		name := n.ElementName()
		isInput = name == "input" || name == "textarea"
		if name == "textarea" {
			// text content is displayed by the text input box
			for _, kid := range n.Children() {
				b.store.SetResult(kid, NoResult{})
			}
		}
	}
	if n.Pseudo().IsReplacedContent() || isInput {
		pmap := b.opts.Styler(style.AnonText, n.Styles())
		if isInput {
			pmap = b.opts.Styler(style.AnonInputText, pmap)
		}
		b.createFragmentsForNodeTextContent(&initial, n, pmap)
	}
	return b.buildFlowForBlockStartingWithFragments(fl, n, initial)
}

// buildFlowForBlockStartingWithFragments appends the construction results of
// a node's children to a block-like flow, after a list of initial inline
// fragments. {ib} splits are resolved and absolutely positioned descendants
// are either taken by the flow or passed on.
func (b *builder) buildFlowForBlockStartingWithFragments(fl *flow.Flow, n DocumentNode,
	initial IntermediateInlineFragments) ConstructionResult {
	//
	acc := newInlineAccumulator()
	acc.pushAll(initial)
	var abs flow.AbsoluteDescendants
	lz := newLegalizer(b.opts.Styler)
	if !isReplacedContent(n) {
		for _, kid := range n.Children() {
			b.buildBlockFlowUsingChildResult(fl, n, kid, acc, &abs, lz)
		}
	}
	b.flushInlineFragmentsToFlow(acc, fl, &abs, lz, n)
	lz.finish(fl)
	b.markRoot(n, fl)
	fl.Finish()
	abs = finishAbsoluteDescendants(fl, abs)
	return &FlowResult{Flow: fl, Abs: abs}
}

// markRoot flags the outermost flow of the document's root node.
func (b *builder) markRoot(n DocumentNode, fl *flow.Flow) {
	if b.isRoot(n) && fl.Kind != flow.MulticolColumn && fl.Kind != flow.Table {
		fl.Flags |= flow.IsRoot
	}
}

// buildBlockFlowUsingChildResult handles the construction result of a single
// child of a block-like flow.
func (b *builder) buildBlockFlowUsingChildResult(fl *flow.Flow, n, kid DocumentNode,
	acc *inlineAccumulator, abs *flow.AbsoluteDescendants, lz *legalizer) {
	//
	switch r := b.store.Result(kid).(type) {
	case NoResult:
	case *FlowResult:
		if fl.Kind == flow.Table && r.Flow.Kind == flow.TableCaption {
			// captions are placed by the table wrapper
			b.store.SetResult(kid, &FlowResult{Flow: r.Flow})
		} else {
			if !r.Flow.Flags.Contains(flow.IsAbsolutelyPositioned) {
				b.flushInlineFragmentsToFlow(acc.take(), fl, abs, lz, n)
			}
			lz.addChild(fl, r.Flow)
		}
		abs.PushDescendants(r.Abs)
	case *InlineFragmentsItem:
		for _, split := range r.Splits {
			acc.pushAll(split.Predecessors)
			tracer().Debugf("flushing %d inline fragments before {ib} split", len(acc.fragments.Fragments))
			old := acc.take()
			b.flushInlineFragmentsToFlow(old, fl, &acc.fragments.Abs, lz, n)
			lz.addChild(fl, split.Flow)
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

// whitespaceFragment instantiates collapsible white-space as a single space.
// It will be stripped if it ends up between block-level boxes.
func whitespaceFragment(ws *WhitespaceItem, parent DocumentNode) *flow.Fragment {
	return flow.NewFragment(ws.Node, ws.Pseudo, ws.Style, parent.Styles(), ws.Damage,
		&flow.UnscannedText{Text: " "})
}

// flushInlineFragmentsToFlow creates an inline flow from the fragments of an
// accumulator and attaches it to fl.
func (b *builder) flushInlineFragmentsToFlow(acc *inlineAccumulator, fl *flow.Flow,
	abs *flow.AbsoluteDescendants, lz *legalizer, n DocumentNode) {
	//
	iif := acc.finish(b.opts.Styler)
	if iif.IsEmpty() {
		return
	}
	iif.Fragments = stripIgnorableWhitespaceFromStart(iif.Fragments)
	iif.Fragments = stripIgnorableWhitespaceFromEnd(iif.Fragments)
	if len(iif.Fragments) == 0 {
		abs.PushDescendants(iif.Abs)
		return
	}
	var wrapped []*flow.Flow
	for _, f := range iif.Fragments {
		if w := flow.WrappedFlow(f.Specific); w != nil {
			wrapped = append(wrapped, w)
		}
	}
	// scanning may collapse white-space, leaving only hypothetical boxes
	scanned := b.opts.Scanner.ScanForRuns(iif.Fragments)
	pmap := n.Styles()
	inline := flow.NewInlineFlow(scanned, css.WritingModeOf(pmap))
	for _, w := range wrapped {
		resetFlexItem(w)
		inline.AddNewChild(w)
	}
	// a positioned inline element may be the containing block
	rest := inline.TakeApplicableAbsoluteDescendants(iif.Abs)
	abs.PushDescendants(rest)
	inline.MinLineHeight = css.LineHeightOf(pmap)
	inline.Finish()
	lz.addChild(fl, inline)
}

// createFragmentsForNodeTextContent appends fragments for the content of a
// node: its text, or the items of the 'content' property for
// pseudo-elements.
func (b *builder) createFragmentsForNodeTextContent(iif *IntermediateInlineFragments, n DocumentNode,
	pmap *style.PropertyMap) {
	//
	if !n.Pseudo().IsReplacedContent() {
		text := n.TextContent()
		if text == "" {
			return
		}
		iif.Fragments = append(iif.Fragments, newNodeFragment(n, pmap, &flow.UnscannedText{Text: text}))
		return
	}
	items, err := css.ParseContent(style.GetProperty(n.Styles(), "content"))
	if err != nil {
		tracer().Errorf("%s: %v", nodeName(n), err)
		return
	}
	for _, item := range items {
		var info flow.SpecificInfo
		switch item.Kind {
		case css.ContentString:
			info = &flow.UnscannedText{Text: item.Value}
		case css.ContentAttr:
			v, _ := n.Attribute(item.Value)
			info = &flow.UnscannedText{Text: v}
		default:
			info = &flow.GeneratedContent{Item: item}
		}
		iif.Fragments = append(iif.Fragments, newNodeFragment(n, pmap, info))
	}
}

// stripIgnorableWhitespaceFromStart removes fragments consisting of
// collapsible white-space from the start of a list. Fragments consisting of
// bidi control characters only are kept in front.
func stripIgnorableWhitespaceFromStart(fragments []*flow.Fragment) []*flow.Fragment {
	var bidi []*flow.Fragment
loop:
	for len(fragments) > 0 {
		switch fragments[0].StripLeadingWhitespaceIfNecessary() {
		case flow.RetainFragment:
			break loop
		case flow.FragmentContainedOnlyBidiControlCharacters:
			bidi = append(bidi, fragments[0])
			fragments = fragments[1:]
		case flow.FragmentContainedOnlyWhitespace:
			removed := fragments[0]
			fragments = fragments[1:]
			if len(fragments) > 0 {
				fragments[0].MeldWithPrevInlineFragment(removed)
			}
		}
	}
	if len(bidi) == 0 {
		return fragments
	}
	return append(bidi, fragments...)
}

// stripIgnorableWhitespaceFromEnd removes fragments consisting of
// collapsible white-space from the end of a list. Fragments consisting of
// bidi control characters only are kept at the end.
func stripIgnorableWhitespaceFromEnd(fragments []*flow.Fragment) []*flow.Fragment {
	var bidi []*flow.Fragment // in reverse order
loop:
	for len(fragments) > 0 {
		last := fragments[len(fragments)-1]
		switch last.StripTrailingWhitespaceIfNecessary() {
		case flow.RetainFragment:
			break loop
		case flow.FragmentContainedOnlyBidiControlCharacters:
			bidi = append(bidi, last)
			fragments = fragments[:len(fragments)-1]
		case flow.FragmentContainedOnlyWhitespace:
			fragments = fragments[:len(fragments)-1]
			if len(fragments) > 0 {
				fragments[len(fragments)-1].MeldWithNextInlineFragment(last)
			}
		}
	}
	fragments = fragments[:len(fragments):len(fragments)]
	for i := len(bidi) - 1; i >= 0; i-- {
		fragments = append(fragments, bidi[i])
	}
	return fragments
}
