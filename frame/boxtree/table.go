package boxtree

import (
	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/boxtree/frame/flow"
)

// buildFlowForTable builds a table wrapper for a node with 'display: table'.
// The wrapper holds the top captions, the table flow and the bottom captions,
// in this order.
func (b *builder) buildFlowForTable(n DocumentNode, fk flow.FloatKind) ConstructionResult {
	lz := newLegalizer(b.opts.Styler)
	wrapperStyle := b.opts.Styler(style.AnonLegacyTableWrapper, n.Styles())
	wrapperFragment := flow.NewFragment(n.Opaque(), style.PseudoNormal, wrapperStyle, n.Styles(),
		n.RestyleDamage(), flow.TableWrapperInfo{})
	wrapper := newFloatingFlow(flow.TableWrapper, wrapperFragment, fk)
	table := flow.NewFlow(flow.Table, newNodeFragment(n, n.Styles(), flow.TableInfo{}))
	r := b.buildFlowForBlockLike(table, n)
	var abs flow.AbsoluteDescendants
	// captions are not necessarily in document order relative to the table
	b.placeTableCaptions(wrapper, n, css.CaptionTop)
	if fr, ok := r.(*FlowResult); ok {
		lz.addChild(wrapper, fr.Flow)
		abs.PushDescendants(fr.Abs)
	}
	b.placeTableCaptions(wrapper, n, css.CaptionBottom)
	lz.finish(wrapper)
	b.markRoot(n, wrapper)
	wrapper.Finish()
	abs = finishAbsoluteDescendants(wrapper, abs)
	return &FlowResult{Flow: wrapper, Abs: abs}
}

// placeTableCaptions attaches the caption flows of a table's children with a
// given 'caption-side' to the table wrapper.
func (b *builder) placeTableCaptions(wrapper *flow.Flow, n DocumentNode, side css.CaptionSide) {
	for _, kid := range n.Children() {
		fr, ok := b.store.Result(kid).(*FlowResult)
		if !ok || fr.Flow.Kind != flow.TableCaption {
			continue
		}
		if css.CaptionSideOf(fr.Flow.Style()) == side {
			resetFlexItem(fr.Flow)
			wrapper.AddNewChild(fr.Flow)
		}
	}
}

func (b *builder) buildFlowForTableCaption(n DocumentNode) ConstructionResult {
	fl := flow.NewFlow(flow.TableCaption, b.buildFragmentForBlock(n))
	return b.buildFlowForBlockLike(fl, n)
}

func (b *builder) buildFlowForTableRowGroup(n DocumentNode) ConstructionResult {
	fl := flow.NewFlow(flow.TableRowGroup, newNodeFragment(n, n.Styles(), flow.TableRowInfo{}))
	return b.buildFlowForBlockLike(fl, n)
}

func (b *builder) buildFlowForTableRow(n DocumentNode) ConstructionResult {
	fl := flow.NewFlow(flow.TableRow, newNodeFragment(n, n.Styles(), flow.TableRowInfo{}))
	return b.buildFlowForBlockLike(fl, n)
}

// buildFlowForTableCell builds a table cell. With 'empty-cells: hide', a cell
// without in-flow content is hidden (CSS 2.1 § 17.6.1.1).
func (b *builder) buildFlowForTableCell(n DocumentNode) ConstructionResult {
	fl := flow.NewFlow(flow.TableCell, newNodeFragment(n, n.Styles(), flow.TableCellInfo{}))
	if css.EmptyCellsHidden(n.Styles()) && !hasInFlowContent(n) {
		fl.Flags |= flow.Hidden
	}
	return b.buildFlowForBlockLike(fl, n)
}

func hasInFlowContent(n DocumentNode) bool {
	for _, kid := range n.Children() {
		if isContent(kid) && !css.PositionOf(kid.Styles()).IsOutOfFlow() {
			return true
		}
	}
	return false
}

// buildFragmentsForTableColumn creates the fragment of a table column. The
// children of a column are treated as 'display: none' (CSS 2.1 § 17.2.1).
func (b *builder) buildFragmentsForTableColumn(n DocumentNode) ConstructionResult {
	for _, kid := range n.Children() {
		b.store.SetResult(kid, NoResult{})
	}
	return &TableColumnItem{
		Fragment: newNodeFragment(n, n.Styles(), &flow.TableColumn{Span: spanOf(n)}),
	}
}

// buildFlowForTableColGroup collects the column fragments of a column
// group's children. Other children are treated as 'display: none'. A group
// without columns stands for a column of its own.
func (b *builder) buildFlowForTableColGroup(n DocumentNode) ConstructionResult {
	fl := flow.NewFlow(flow.TableColGroup, newNodeFragment(n, n.Styles(), &flow.TableColumn{Span: spanOf(n)}))
	for _, kid := range n.Children() {
		if col, ok := b.store.Result(kid).(*TableColumnItem); ok {
			fl.Columns = append(fl.Columns, col.Fragment)
		}
	}
	if len(fl.Columns) == 0 {
		tracer().Debugf("empty column group %s gets a default column", nodeName(n))
		fl.Columns = append(fl.Columns, newNodeFragment(n, n.Styles(), &flow.TableColumn{Span: spanOf(n)}))
	}
	fl.Finish()
	return &FlowResult{Flow: fl}
}
