package boxtree

import (
	"fmt"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/frame/flow"
)

// ConstructionResult is what a document node contributes to the box tree of
// its parent. It is one of
//
//	NoResult            the node contributes nothing
//	*FlowResult         a finished flow, plus absolute descendants not yet placed
//	ConstructionItem    content still looking for a flow to live in
//
// Clients switch over the concrete types.
type ConstructionResult interface {
	fmt.Stringer
	clone() ConstructionResult
}

// ConstructionItem is unresolved content bubbling up to an ancestor. It is one
// of *InlineFragmentsItem, *WhitespaceItem or *TableColumnItem.
type ConstructionItem interface {
	ConstructionResult
	isItem()
}

// NoResult is the construction result of nodes which do not contribute to the
// box tree.
type NoResult struct{}

// FlowResult is a finished flow.
type FlowResult struct {
	Flow *flow.Flow
	Abs  flow.AbsoluteDescendants // not yet placed
}

// IntermediateInlineFragments is a list of inline fragments, together with the
// absolute descendants found while collecting them.
type IntermediateInlineFragments struct {
	Fragments []*flow.Fragment
	Abs       flow.AbsoluteDescendants
}

// InlineBlockSplit is a block-level flow interrupting inline content, together
// with the inline fragments preceding it.
type InlineBlockSplit struct {
	Predecessors IntermediateInlineFragments
	Flow         *flow.Flow
}

// InlineFragmentsItem is a run of inline content, possibly interrupted by
// block-level flows.
type InlineFragmentsItem struct {
	Splits    []InlineBlockSplit
	Fragments IntermediateInlineFragments // fragments following the last split
}

// WhitespaceItem is collapsible white-space between block-level boxes. It
// turns into a single space if it ends up in inline content.
type WhitespaceItem struct {
	Node   flow.OpaqueNode
	Pseudo style.PseudoElement
	Style  *style.PropertyMap
	Damage style.RestyleDamage
}

// TableColumnItem is a table column, to be collected by a column group.
type TableColumnItem struct {
	Fragment *flow.Fragment
}

func (*InlineFragmentsItem) isItem() {}
func (*WhitespaceItem) isItem()      {}
func (*TableColumnItem) isItem()     {}

func (NoResult) String() string { return "None" }

func (r *FlowResult) String() string {
	return fmt.Sprintf("Flow(%s, %d abs)", r.Flow, len(r.Abs))
}

func (it *InlineFragmentsItem) String() string {
	return fmt.Sprintf("InlineFragments(%d splits, %d fragments)", len(it.Splits), len(it.Fragments.Fragments))
}

func (it *WhitespaceItem) String() string { return "Whitespace" }

func (it *TableColumnItem) String() string {
	return fmt.Sprintf("TableColumn(%s)", it.Fragment)
}

// Reading a construction result from the layout store hands out a copy:
// fragments are cloned, flows are shared.

func (NoResult) clone() ConstructionResult { return NoResult{} }

func (r *FlowResult) clone() ConstructionResult {
	return &FlowResult{Flow: r.Flow, Abs: r.Abs.Clone()}
}

func (it *InlineFragmentsItem) clone() ConstructionResult {
	c := &InlineFragmentsItem{Fragments: it.Fragments.clone()}
	if it.Splits != nil {
		c.Splits = make([]InlineBlockSplit, len(it.Splits))
		for i, split := range it.Splits {
			c.Splits[i] = InlineBlockSplit{Predecessors: split.Predecessors.clone(), Flow: split.Flow}
		}
	}
	return c
}

func (it *WhitespaceItem) clone() ConstructionResult {
	c := *it
	return &c
}

func (it *TableColumnItem) clone() ConstructionResult {
	return &TableColumnItem{Fragment: it.Fragment.Clone()}
}

func (iif IntermediateInlineFragments) clone() IntermediateInlineFragments {
	c := IntermediateInlineFragments{Abs: iif.Abs.Clone()}
	if iif.Fragments != nil {
		c.Fragments = make([]*flow.Fragment, len(iif.Fragments))
		for i, f := range iif.Fragments {
			c.Fragments[i] = f.Clone()
		}
	}
	return c
}

// IsEmpty is true if neither fragments nor absolute descendants are present.
func (iif IntermediateInlineFragments) IsEmpty() bool {
	return len(iif.Fragments) == 0 && len(iif.Abs) == 0
}

// pushAll appends the fragments and absolute descendants of other.
func (iif *IntermediateInlineFragments) pushAll(other IntermediateInlineFragments) {
	iif.Fragments = append(iif.Fragments, other.Fragments...)
	iif.Abs.PushDescendants(other.Abs)
}
