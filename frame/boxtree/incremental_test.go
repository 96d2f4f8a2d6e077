package boxtree_test

import (
	"context"
	"errors"
	"testing"

	"github.com/npillmayer/boxtree/dom"
	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/styledtree"
	"github.com/npillmayer/boxtree/frame/boxtree"
	"github.com/npillmayer/boxtree/frame/flow"
	"github.com/npillmayer/boxtree/frame/framedbg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blocks = `<html><body><div id="a"><div id="b"></div><div id="c"></div></div></body></html>`

func findStyled(sn *styledtree.StyNode, id string) *styledtree.StyNode {
	if v, ok := sn.Attribute("id"); ok && v == id && sn.Pseudo() == style.PseudoNormal {
		return sn
	}
	for _, ch := range sn.StyledChildren() {
		if r := findStyled(ch, id); r != nil {
			return r
		}
	}
	return nil
}

// findByID returns the first flow originating from an element with a given id.
func findByID(root *flow.Flow, styled *styledtree.StyNode, id string) *flow.Flow {
	node := findStyled(styled, id).Opaque()
	var found *flow.Flow
	root.Walk(func(fl *flow.Flow, depth int) {
		if found == nil && fl.Fragment != nil && fl.Fragment.Node == node {
			found = fl
		}
	})
	return found
}

func TestUnchangedDocumentIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	doc := styledDoc(t, `<html><body><p>Hello <b>World</b></p><table><tr><td>A</td></tr></table></body></html>`)
	c := boxtree.NewConstructor(boxtree.DefaultOptions())
	first, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	second, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	assert.Same(t, first, second, "undamaged document keeps its box tree")
}

func TestRepaintIsRepaired(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	doc := styledDoc(t, blocks)
	c := boxtree.NewConstructor(boxtree.DefaultOptions())
	root, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	b := findByID(root, doc, "b")
	require.NotNil(t, b)
	//
	require.NoError(t, dom.SetProperty(findStyled(doc, "a"), "color", "red"))
	repaired, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	t.Logf("\n%s", framedbg.String(repaired))
	assert.Same(t, root, repaired, "repaint damage does not reconstruct")
	assert.Same(t, b, findByID(repaired, doc, "b"))
	assert.True(t, b.Damage.Contains(style.Repaint), "damage is propagated to the flow")
	assert.Equal(t, "red", string(b.Style().Get("color")))
	assert.Equal(t, style.NoDamage, findStyled(doc, "b").RestyleDamage(), "visited nodes are cleared")
	full, err := boxtree.BuildBoxTree(context.Background(), doc, boxtree.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, shape(full), shape(repaired), "repaired result equals a full rebuild")
}

func TestDisplayChangeReconstructs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	doc := styledDoc(t, blocks)
	c := boxtree.NewConstructor(boxtree.DefaultOptions())
	root, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	a, cflow := findByID(root, doc, "a"), findByID(root, doc, "c")
	require.Equal(t, 2, a.ChildCount())
	//
	require.NoError(t, dom.SetDisplayNone(findStyled(doc, "b")))
	rebuilt, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	t.Logf("\n%s", framedbg.String(rebuilt))
	assert.NotSame(t, root, rebuilt, "ancestors of a reconstructed node are reconstructed")
	newA := findByID(rebuilt, doc, "a")
	require.NotNil(t, newA)
	assert.NotSame(t, a, newA)
	require.Equal(t, 1, newA.ChildCount())
	assert.Same(t, cflow, newA.Children()[0], "undamaged sibling keeps its flow")
	assert.Nil(t, findByID(rebuilt, doc, "b"))
	//
	full, err := boxtree.BuildBoxTree(context.Background(), doc, boxtree.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, shape(full), shape(rebuilt), "incremental result equals a full rebuild")
}

func TestInlineRestyleReconstructsText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	doc := styledDoc(t, `<html><body><p id="p">Hello <b id="b">bold</b> World</p></body></html>`)
	c := boxtree.NewConstructor(boxtree.DefaultOptions())
	_, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	require.NoError(t, dom.SetProperty(findStyled(doc, "b"), "font-weight", "normal"))
	inc, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	full, err := boxtree.BuildBoxTree(context.Background(), doc, boxtree.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, shape(full), shape(inc))
	p := findByID(inc, doc, "p")
	require.NotNil(t, p)
	assert.Equal(t, []string{"Hello ", "bold", " World"}, texts(p.Children()[0]))
}

func TestNonIncrementalRebuilds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	doc := styledDoc(t, blocks)
	opts := boxtree.DefaultOptions()
	opts.Incremental = false
	c := boxtree.NewConstructor(opts)
	first, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	second, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, shape(first), shape(second))
}

func TestCancelledPassForcesRebuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	doc := styledDoc(t, blocks)
	c := boxtree.NewConstructor(boxtree.DefaultOptions())
	first, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.BuildBoxTree(ctx, doc)
	assert.True(t, errors.Is(err, context.Canceled), "expected context.Canceled, is %v", err)
	third, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	assert.NotSame(t, first, third, "pass after cancellation is not incremental")
	assert.Equal(t, shape(first), shape(third))
	fourth, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	assert.Same(t, third, fourth, "incremental construction resumes")
}

func TestClearedStoreRebuilds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	doc := styledDoc(t, blocks)
	c := boxtree.NewConstructor(boxtree.DefaultOptions())
	first, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, c.Store().Has(doc))
	c.Store().Clear()
	assert.False(t, c.Store().Has(doc))
	second, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

const flexItems = `<html><body><div id="a" style="display: flex"><div id="b"></div></div></body></html>`

func TestReusedFlexItemIsReattached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	doc := styledDoc(t, flexItems)
	c := boxtree.NewConstructor(boxtree.DefaultOptions())
	root, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	b := findByID(root, doc, "b")
	require.NotNil(t, b)
	require.True(t, b.Flags.Contains(flow.MarginsCannotCollapse))
	require.Equal(t, flow.IsInlineFlexItem, b.Fragment.Flags)
	//
	a := findStyled(doc, "a")
	require.NoError(t, dom.SetProperty(a, "flex-direction", "column"))
	column, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	assert.Same(t, b, findByID(column, doc, "b"), "undamaged flex item keeps its flow")
	assert.True(t, b.Flags.Contains(flow.MarginsCannotCollapse))
	assert.Equal(t, flow.IsBlockFlexItem, b.Fragment.Flags, "flex item follows the new direction")
	//
	require.NoError(t, dom.SetProperty(a, "display", "block"))
	block, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	assert.Same(t, b, findByID(block, doc, "b"))
	full, err := boxtree.BuildBoxTree(context.Background(), doc, boxtree.DefaultOptions())
	require.NoError(t, err)
	fullB := findByID(full, doc, "b")
	require.NotNil(t, fullB)
	assert.Equal(t, flow.Flags(0), fullB.Flags)
	assert.Equal(t, fullB.Flags, b.Flags, "no flex item flags after parent became a block")
	assert.Equal(t, fullB.Fragment.Flags, b.Fragment.Flags)
	assert.Equal(t, shape(full), shape(block))
}

func TestPseudoElementsAreReused(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	doc := styledDoc(t, `<html><head><style>p::before { content: "[" }</style></head>`+
		`<body><p id="p">x</p></body></html>`)
	c := boxtree.NewConstructor(boxtree.DefaultOptions())
	_, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	// 'position' is not inherited: p is reconstructed, its ::before keeps its result
	require.NoError(t, dom.SetProperty(findStyled(doc, "p"), "position", "relative"))
	inc, err := c.BuildBoxTree(context.Background(), doc)
	require.NoError(t, err)
	full, err := boxtree.BuildBoxTree(context.Background(), doc, boxtree.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, shape(full), shape(inc))
	p := findByID(inc, doc, "p")
	require.NotNil(t, p)
	require.Equal(t, 1, p.ChildCount())
	assert.Equal(t, []string{"[", "x"}, texts(p.Children()[0]))
}
