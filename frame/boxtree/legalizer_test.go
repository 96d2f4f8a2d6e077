package boxtree

import (
	"testing"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/frame/flow"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockFlow(kind flow.Kind) *flow.Flow {
	pmap := style.InheritFrom(nil)
	return flow.NewFlow(kind, flow.NewFragment(nil, style.PseudoNormal, pmap, pmap, style.NoDamage, nil))
}

func TestLegalizerWrapsCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	parent := blockFlow(flow.Block)
	lz := newLegalizer(style.StyleForAnonymous)
	lz.addChild(parent, blockFlow(flow.TableCell))
	lz.addChild(parent, blockFlow(flow.TableCell))
	lz.addChild(parent, blockFlow(flow.Block))
	lz.finish(parent)
	require.Equal(t, 2, parent.ChildCount())
	wrapper := parent.Children()[0]
	assert.Equal(t, flow.TableWrapper, wrapper.Kind)
	row := wrapper.Children()[0].Children()[0]
	assert.Equal(t, flow.TableRow, row.Kind)
	assert.Equal(t, 2, row.ChildCount(), "consecutive cells share an anonymous row")
	assert.Equal(t, flow.Block, parent.Children()[1].Kind)
}

func TestLegalizerWrapsFlexText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	flex := blockFlow(flow.Flex)
	lz := newLegalizer(style.StyleForAnonymous)
	lz.addChild(flex, flow.NewInlineFlow(nil, 0))
	lz.finish(flex)
	require.Equal(t, 1, flex.ChildCount())
	item := flex.Children()[0]
	assert.Equal(t, flow.Block, item.Kind)
	assert.True(t, item.Flags.Contains(flow.MarginsCannotCollapse))
	assert.Equal(t, flow.Inline, item.Children()[0].Kind)
}

func TestLegalizerResetsFlexItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	item := blockFlow(flow.Block)
	newLegalizer(style.StyleForAnonymous).addChild(blockFlow(flow.Flex), item)
	require.True(t, item.Flags.Contains(flow.MarginsCannotCollapse))
	require.Equal(t, flow.IsInlineFlexItem, item.Fragment.Flags)
	//
	column := blockFlow(flow.Flex)
	column.Fragment.Style.Add("flex-direction", "column")
	newLegalizer(style.StyleForAnonymous).addChild(column, item)
	assert.Equal(t, flow.IsBlockFlexItem, item.Fragment.Flags)
	//
	block := blockFlow(flow.Block)
	newLegalizer(style.StyleForAnonymous).addChild(block, item)
	assert.Equal(t, flow.Flags(0), item.Flags)
	assert.Equal(t, flow.FragmentFlags(0), item.Fragment.Flags)
}
