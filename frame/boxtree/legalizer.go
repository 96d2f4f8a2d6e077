package boxtree

import (
	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/boxtree/frame/flow"
)

// legalizer keeps a flow tree legal while children are attached to a parent
// flow, following the rules of CSS 2.1 § 17.2.1. Illegal children are wrapped
// into anonymous flows, which are kept on a stack until a child arrives which
// does not fit into them.
//
// Example: a table cell added to a block is wrapped into an anonymous table
// wrapper, table, and table row. A following table cell is added to the same
// anonymous row.
type legalizer struct {
	stack  []*flow.Flow
	styler AnonymousStyler
}

func newLegalizer(styler AnonymousStyler) *legalizer {
	return &legalizer{styler: styler}
}

// addChild attaches child to parent, inserting anonymous flows if necessary.
// Flags a child got from a previous parent are reset.
func (lz *legalizer) addChild(parent, child *flow.Flow) {
	resetFlexItem(child)
	for len(lz.stack) > 0 {
		if lz.tryToAddChild(parent, child) {
			return
		}
		lz.flushTop(parent)
	}
	for !lz.tryToAddChild(parent, child) {
		lz.pushNextAnonymousFlow(parent)
	}
}

// finish attaches all pending anonymous flows.
func (lz *legalizer) finish(parent *flow.Flow) {
	for len(lz.stack) > 0 {
		lz.flushTop(parent)
	}
}

func (lz *legalizer) top(parent *flow.Flow) *flow.Flow {
	if len(lz.stack) == 0 {
		return parent
	}
	return lz.stack[len(lz.stack)-1]
}

func (lz *legalizer) tryToAddChild(realParent, child *flow.Flow) bool {
	parent := lz.top(realParent)
	switch {
	case isLegalTablePair(parent.Kind, child.Kind):
		parent.AddNewChild(child)
		return true
	case isTableContainer(parent.Kind) || child.Kind.IsTablePart():
		return false
	case parent.Kind == flow.Flex && child.Kind == flow.Inline:
		child.Flags |= flow.MarginsCannotCollapse
		wrapper := lz.anonymousFlow(parent, flow.Block, flow.Generic{}, style.AnonBlock)
		wrapper.Flags |= flow.MarginsCannotCollapse
		wrapper.Fragment.Flags |= flexItemFlag(parent)
		wrapper.AddNewChild(child)
		wrapper.Finish()
		parent.AddNewChild(wrapper)
		return true
	case parent.Kind == flow.Flex:
		child.Flags |= flow.MarginsCannotCollapse
		child.Fragment.Flags |= flexItemFlag(parent)
		parent.AddNewChild(child)
		return true
	}
	parent.AddNewChild(child)
	return true
}

func isLegalTablePair(parent, child flow.Kind) bool {
	switch parent {
	case flow.TableWrapper:
		return child == flow.Table
	case flow.Table:
		switch child {
		case flow.TableColGroup, flow.TableRowGroup, flow.TableRow, flow.TableCaption:
			return true
		}
	case flow.TableRowGroup:
		return child == flow.TableRow
	case flow.TableRow:
		return child == flow.TableCell
	}
	return false
}

// isTableContainer is true for flows which accept table parts only.
func isTableContainer(k flow.Kind) bool {
	switch k {
	case flow.TableWrapper, flow.Table, flow.TableRowGroup, flow.TableRow:
		return true
	}
	return false
}

// resetFlexItem clears the flags set for items of a flex container. Reused
// flows may be attached to a parent of different kind or flex direction.
func resetFlexItem(child *flow.Flow) {
	child.Flags &^= flow.MarginsCannotCollapse
	if child.Fragment != nil {
		child.Fragment.Flags &^= flow.IsInlineFlexItem | flow.IsBlockFlexItem
	}
}

func flexItemFlag(flex *flow.Flow) flow.FragmentFlags {
	if css.FlexDirectionOf(flex.Style()).IsRow() {
		return flow.IsInlineFlexItem
	}
	return flow.IsBlockFlexItem
}

func (lz *legalizer) flushTop(parent *flow.Flow) {
	child := lz.stack[len(lz.stack)-1]
	lz.stack = lz.stack[:len(lz.stack)-1]
	child.Finish()
	lz.top(parent).AddNewChild(child)
}

// pushNextAnonymousFlow pushes the anonymous flow which the current top of
// the stack needs as a child. Styles of anonymous flows are always derived
// from the real parent.
func (lz *legalizer) pushNextAnonymousFlow(parent *flow.Flow) {
	var anon *flow.Flow
	switch lz.top(parent).Kind {
	case flow.TableRow:
		anon = lz.anonymousFlow(parent, flow.TableCell, flow.TableCellInfo{}, style.AnonTableCell)
	case flow.Table, flow.TableRowGroup:
		anon = lz.anonymousFlow(parent, flow.TableRow, flow.TableRowInfo{}, style.AnonTableRow)
	case flow.TableWrapper:
		anon = lz.anonymousFlow(parent, flow.Table, flow.TableInfo{}, style.AnonTable)
	default:
		anon = lz.anonymousFlow(parent, flow.TableWrapper, flow.TableWrapperInfo{},
			style.AnonLegacyTableWrapper, style.AnonTableWrapper)
	}
	tracer().Debugf("legalizer inserts anonymous %s below %s", anon, parent)
	lz.stack = append(lz.stack, anon)
}

// anonymousFlow creates a flow with the identity of reference's main fragment
// and a style derived from it.
func (lz *legalizer) anonymousFlow(reference *flow.Flow, kind flow.Kind, info flow.SpecificInfo,
	kinds ...style.AnonymousKind) *flow.Flow {
	//
	if reference.Fragment == nil {
		panic("boxtree: anonymous flow for a parent without main fragment")
	}
	pmap := reference.Fragment.Style
	for _, k := range kinds {
		pmap = lz.styler(k, pmap)
	}
	return flow.NewFlow(kind, reference.Fragment.CreateSimilarAnonymousFragment(pmap, info))
}
