package boxtree

import (
	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/frame/flow"
)

// inlineAccumulator collects the inline fragments of an inline element (or of
// the inline content of a block container, in which case there is no
// enclosing element).
type inlineAccumulator struct {
	fragments IntermediateInlineFragments
	enclosing *flow.InlineFragmentNodeInfo
	damage    style.RestyleDamage
	bidiOpen  string // control characters to wrap around the content
	bidiClose string
	hasBidi   bool
}

func newInlineAccumulator() *inlineAccumulator {
	return &inlineAccumulator{}
}

// accumulatorFromInlineNode creates an accumulator for the content of an
// inline element. Its first fragment will be marked as first fragment of the
// element, its last fragment as the last one.
func accumulatorFromInlineNode(n DocumentNode) *inlineAccumulator {
	return &inlineAccumulator{
		enclosing: &flow.InlineFragmentNodeInfo{
			Address:       n.Opaque(),
			Pseudo:        n.Pseudo(),
			Style:         n.Styles(),
			SelectedStyle: n.Styles(),
			Flags:         flow.FirstFragmentOfElement | flow.LastFragmentOfElement,
		},
		damage: n.RestyleDamage(),
	}
}

func (acc *inlineAccumulator) push(f *flow.Fragment) {
	acc.fragments.Fragments = append(acc.fragments.Fragments, f)
}

func (acc *inlineAccumulator) pushAll(iif IntermediateInlineFragments) {
	acc.fragments.pushAll(iif)
}

func (acc *inlineAccumulator) pushAbs(abs flow.AbsoluteDescendants) {
	acc.fragments.Abs.PushDescendants(abs)
}

// take hands out the accumulated state and resets acc to an empty
// accumulator without enclosing element.
func (acc *inlineAccumulator) take() *inlineAccumulator {
	old := *acc
	*acc = inlineAccumulator{}
	return &old
}

// finish returns the accumulated fragments. Every fragment gets the enclosing
// element added to its inline context, with the first/last markers on the
// first and last fragment only. The accumulator must not be used afterwards.
func (acc *inlineAccumulator) finish(styler AnonymousStyler) IntermediateInlineFragments {
	iif := acc.fragments
	if acc.enclosing == nil {
		return iif
	}
	n := len(iif.Fragments)
	for i, f := range iif.Fragments {
		info := *acc.enclosing
		if i != 0 {
			info.Flags &^= flow.FirstFragmentOfElement
		}
		if i != n-1 {
			info.Flags &^= flow.LastFragmentOfElement
		}
		f.AddInlineContextStyle(info)
	}
	acc.enclosing.Flags &^= flow.FirstFragmentOfElement | flow.LastFragmentOfElement
	if acc.hasBidi {
		opening := acc.controlCharsFragment(acc.bidiOpen, styler)
		closing := acc.controlCharsFragment(acc.bidiClose, styler)
		iif.Fragments = append([]*flow.Fragment{opening}, iif.Fragments...)
		iif.Fragments = append(iif.Fragments, closing)
	}
	return iif
}

func (acc *inlineAccumulator) controlCharsFragment(text string, styler AnonymousStyler) *flow.Fragment {
	node := acc.enclosing
	return flow.NewFragment(node.Address, node.Pseudo, styler(style.AnonText, node.Style),
		node.SelectedStyle, acc.damage, &flow.UnscannedText{Text: text})
}

// split ends the current run of inline fragments at an interrupting
// block-level flow. The accumulator continues with a fresh run for the same
// inline element, which does not start the element anymore. Both runs are
// wrapped in the element's bidi control characters.
func (acc *inlineAccumulator) split(n DocumentNode, f *flow.Flow, styler AnonymousStyler) InlineBlockSplit {
	if acc.enclosing == nil {
		panic("boxtree: {ib} split outside of an inline element")
	}
	acc.enclosing.Flags &^= flow.LastFragmentOfElement
	old := *acc
	*acc = *accumulatorFromInlineNode(n)
	acc.enclosing.Flags &^= flow.FirstFragmentOfElement
	acc.bidiOpen, acc.bidiClose, acc.hasBidi = old.bidiOpen, old.bidiClose, old.hasBidi
	return InlineBlockSplit{
		Predecessors: old.finish(styler),
		Flow:         f,
	}
}
