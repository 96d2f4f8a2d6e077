package boxtree_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/styledtree"
	"github.com/npillmayer/boxtree/frame/boxtree"
	"github.com/npillmayer/boxtree/frame/flow"
	"github.com/npillmayer/boxtree/frame/framedbg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func styledDoc(t *testing.T, doc string) *styledtree.StyNode {
	root, err := styledtree.BuildFromHTML(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

func build(t *testing.T, doc string) *flow.Flow {
	fl, err := boxtree.BuildBoxTree(context.Background(), styledDoc(t, doc), boxtree.DefaultOptions())
	require.NoError(t, err)
	t.Logf("\n%s", framedbg.String(fl))
	return fl
}

func elementOf(fl *flow.Flow) string {
	if fl.Fragment == nil {
		return ""
	}
	if h, ok := fl.Fragment.Node.(*html.Node); ok && h.Type == html.ElementNode {
		return h.Data
	}
	return ""
}

// findFlow returns the first flow of a given kind originating from an element.
func findFlow(root *flow.Flow, kind flow.Kind, element string) *flow.Flow {
	var found *flow.Flow
	root.Walk(func(fl *flow.Flow, depth int) {
		if found == nil && fl.Kind == kind && elementOf(fl) == element {
			found = fl
		}
	})
	return found
}

func kinds(flows []*flow.Flow) []flow.Kind {
	k := make([]flow.Kind, len(flows))
	for i, fl := range flows {
		k[i] = fl.Kind
	}
	return k
}

func texts(fl *flow.Flow) []string {
	var t []string
	for _, f := range fl.Content {
		if st, ok := f.Specific.(*flow.ScannedText); ok {
			t = append(t, st.Text())
		}
	}
	return t
}

func TestBlockWithText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><p>Hello <b>World</b></p></body></html>`)
	assert.Equal(t, flow.Block, root.Kind)
	assert.True(t, root.Flags.Contains(flow.IsRoot))
	assert.Equal(t, "html", elementOf(root))
	p := findFlow(root, flow.Block, "p")
	require.NotNil(t, p)
	require.Equal(t, 1, p.ChildCount())
	inline := p.Children()[0]
	require.Equal(t, flow.Inline, inline.Kind)
	require.Len(t, inline.Content, 2)
	first := inline.Content[0].Specific.(*flow.ScannedText)
	second := inline.Content[1].Specific.(*flow.ScannedText)
	assert.Same(t, first.Run, second.Run, "fragments share a text run")
	assert.Equal(t, "Hello World", first.Run.Text)
	assert.Equal(t, 2, first.Run.Count)
	assert.Equal(t, []string{"Hello ", "World"}, texts(inline))
	assert.Nil(t, inline.Content[0].InlineContext)
	require.NotNil(t, inline.Content[1].InlineContext)
	assert.Equal(t, "b", inline.Content[1].InlineContext.Nodes[0].Address.(*html.Node).Data)
}

func TestTableIsWrapped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><table><tr><td>A</td></tr></table></body></html>`)
	wrapper := findFlow(root, flow.TableWrapper, "table")
	require.NotNil(t, wrapper)
	require.Equal(t, []flow.Kind{flow.Table}, kinds(wrapper.Children()))
	table := wrapper.Children()[0]
	require.Equal(t, []flow.Kind{flow.TableRowGroup}, kinds(table.Children()), "parser inserts <tbody>")
	tbody := table.Children()[0]
	assert.Equal(t, "tbody", elementOf(tbody))
	require.Equal(t, []flow.Kind{flow.TableRow}, kinds(tbody.Children()))
	row := tbody.Children()[0]
	require.Equal(t, []flow.Kind{flow.TableCell}, kinds(row.Children()))
	cell := row.Children()[0]
	require.Equal(t, 1, cell.ChildCount())
	assert.Equal(t, []string{"A"}, texts(cell.Children()[0]))
}

func TestAnonymousTableParts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><div><span style="display: table-cell">x</span></div></body></html>`)
	div := findFlow(root, flow.Block, "div")
	require.NotNil(t, div)
	require.Equal(t, []flow.Kind{flow.TableWrapper}, kinds(div.Children()))
	wrapper := div.Children()[0]
	require.Equal(t, []flow.Kind{flow.Table}, kinds(wrapper.Children()))
	table := wrapper.Children()[0]
	require.Equal(t, []flow.Kind{flow.TableRow}, kinds(table.Children()), "table takes rows without a group")
	row := table.Children()[0]
	require.Equal(t, []flow.Kind{flow.TableCell}, kinds(row.Children()))
	assert.Equal(t, "span", elementOf(row.Children()[0]))
	for _, anon := range []*flow.Flow{wrapper, table, row} {
		assert.Equal(t, "div", elementOf(anon), "anonymous flows reference their parent's node")
	}
}

func TestBlockInsideInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><span>A<div>B</div>C</span></body></html>`)
	body := findFlow(root, flow.Block, "body")
	require.NotNil(t, body)
	require.Equal(t, []flow.Kind{flow.Inline, flow.Block, flow.Inline}, kinds(body.Children()))
	before, div, after := body.Children()[0], body.Children()[1], body.Children()[2]
	assert.Equal(t, []string{"A"}, texts(before))
	assert.Equal(t, "div", elementOf(div))
	assert.Equal(t, []string{"B"}, texts(div.Children()[0]))
	assert.Equal(t, []string{"C"}, texts(after))
	// the span is split: "A" starts it, "C" ends it
	ctxA := before.Content[0].InlineContext
	require.NotNil(t, ctxA)
	assert.Equal(t, "span", ctxA.Nodes[0].Address.(*html.Node).Data)
	assert.NotZero(t, ctxA.Nodes[0].Flags&flow.FirstFragmentOfElement)
	assert.Zero(t, ctxA.Nodes[0].Flags&flow.LastFragmentOfElement)
	ctxC := after.Content[0].InlineContext
	require.NotNil(t, ctxC)
	assert.Zero(t, ctxC.Nodes[0].Flags&flow.FirstFragmentOfElement)
	assert.NotZero(t, ctxC.Nodes[0].Flags&flow.LastFragmentOfElement)
}

func TestAbsoluteDescendantsBubbleToContainingBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><div style="position: relative"><p>`+
		`<span style="position: absolute; display: block">abs</span>text</p></div></body></html>`)
	div := findFlow(root, flow.Block, "div")
	require.NotNil(t, div)
	p := findFlow(root, flow.Block, "p")
	require.NotNil(t, p)
	assert.Empty(t, p.AbsDescendants, "static block is no containing block")
	require.Len(t, div.AbsDescendants, 1)
	abs := div.AbsDescendants[0].Flow
	assert.Equal(t, "span", elementOf(abs))
	assert.True(t, abs.Flags.Contains(flow.IsAbsolutelyPositioned))
	assert.Empty(t, root.AbsDescendants)
}

func TestRootAbsorbsAbsoluteDescendants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><div style="position: absolute">abs</div></body></html>`)
	require.Len(t, root.AbsDescendants, 1)
	assert.Equal(t, "div", elementOf(root.AbsDescendants[0].Flow))
}

func TestPositionedInlineIsContainingBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><p><span style="position: relative">x`+
		`<em style="position: absolute">abs</em></span></p></body></html>`)
	p := findFlow(root, flow.Block, "p")
	require.NotNil(t, p)
	assert.Empty(t, p.AbsDescendants)
	require.Equal(t, 1, p.ChildCount())
	inline := p.Children()[0]
	require.Equal(t, flow.Inline, inline.Kind)
	require.Len(t, inline.AbsDescendants, 1, "inline flow with a positioned fragment takes abs descendants")
	assert.Equal(t, "em", elementOf(inline.AbsDescendants[0].Flow))
}

func TestWhitespaceOnlyTextIsStripped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, "<html><body><div>  \n  <p>text</p>\n  </div></body></html>")
	div := findFlow(root, flow.Block, "div")
	require.NotNil(t, div)
	assert.Equal(t, []flow.Kind{flow.Block}, kinds(div.Children()), "no inline flows for white-space")
	p := div.Children()[0]
	require.Equal(t, 1, p.ChildCount())
	assert.Equal(t, []string{"text"}, texts(p.Children()[0]))
}

func TestPreservedWhitespaceIsKept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><div style="white-space: pre">  </div></body></html>`)
	div := findFlow(root, flow.Block, "div")
	require.NotNil(t, div)
	require.Equal(t, 1, div.ChildCount())
	assert.Equal(t, []string{"  "}, texts(div.Children()[0]))
}

func TestListItemMarkers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><ul><li id="o">out</li>`+
		`<li style="list-style-position: inside">in</li>`+
		`<li style="list-style-type: none">none</li></ul></body></html>`)
	ul := findFlow(root, flow.Block, "ul")
	require.NotNil(t, ul)
	require.Equal(t, []flow.Kind{flow.ListItem, flow.ListItem, flow.ListItem}, kinds(ul.Children()))
	outside, inside, none := ul.Children()[0], ul.Children()[1], ul.Children()[2]
	require.Len(t, outside.Markers, 1)
	marker, ok := outside.Markers[0].Specific.(*flow.ScannedText)
	require.True(t, ok, "marker is scanned text")
	assert.Equal(t, "• ", marker.Text())
	assert.Equal(t, []string{"out"}, texts(outside.Children()[0]))
	assert.Empty(t, inside.Markers)
	require.Equal(t, 1, inside.ChildCount())
	assert.Equal(t, []string{"• ", "in"}, texts(inside.Children()[0]), "inside marker starts the content")
	assert.Empty(t, none.Markers)
}

func TestTableCaptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><table>`+
		`<caption style="caption-side: bottom">below</caption>`+
		`<caption>above</caption>`+
		`<tr><td>A</td></tr></table></body></html>`)
	wrapper := findFlow(root, flow.TableWrapper, "table")
	require.NotNil(t, wrapper)
	require.Equal(t, []flow.Kind{flow.TableCaption, flow.Table, flow.TableCaption}, kinds(wrapper.Children()))
	assert.Equal(t, []string{"above"}, texts(wrapper.Children()[0].Children()[0]))
	assert.Equal(t, []string{"below"}, texts(wrapper.Children()[2].Children()[0]))
	table := wrapper.Children()[1]
	assert.Equal(t, []flow.Kind{flow.TableRowGroup}, kinds(table.Children()), "captions are not part of the table")
}

func TestTableColumnGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><table>`+
		`<colgroup span="2"></colgroup>`+
		`<colgroup><col><col span="3"></colgroup>`+
		`<tr><td>A</td></tr></table></body></html>`)
	table := findFlow(root, flow.Table, "table")
	require.NotNil(t, table)
	require.Equal(t, []flow.Kind{flow.TableColGroup, flow.TableColGroup, flow.TableRowGroup}, kinds(table.Children()))
	empty, full := table.Children()[0], table.Children()[1]
	require.Len(t, empty.Columns, 1, "empty group gets a default column")
	assert.Equal(t, 2, empty.Columns[0].Specific.(*flow.TableColumn).Span)
	require.Len(t, full.Columns, 2)
	assert.Equal(t, 1, full.Columns[0].Specific.(*flow.TableColumn).Span)
	assert.Equal(t, 3, full.Columns[1].Specific.(*flow.TableColumn).Span)
}

func TestEmptyCellsHide(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><table style="empty-cells: hide"><tr>`+
		`<td id="e"></td><td>A</td></tr></table></body></html>`)
	row := findFlow(root, flow.TableRow, "tr")
	require.NotNil(t, row)
	require.Equal(t, 2, row.ChildCount())
	assert.True(t, row.Children()[0].Flags.Contains(flow.Hidden))
	assert.False(t, row.Children()[1].Flags.Contains(flow.Hidden))
}

func TestFlexItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><div style="display: flex">text<p>block</p></div></body></html>`)
	flex := findFlow(root, flow.Flex, "div")
	require.NotNil(t, flex)
	require.Equal(t, 2, flex.ChildCount())
	for _, item := range flex.Children() {
		require.True(t, item.Kind.IsBlockLike(), "flex items are block-like, is %s", item.Kind)
		assert.NotZero(t, item.Fragment.Flags&(flow.IsBlockFlexItem|flow.IsInlineFlexItem))
	}
}

func TestInlineBlockIsWrapped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><body><p>a<span style="display: inline-block">b</span>c</p></body></html>`)
	p := findFlow(root, flow.Block, "p")
	require.NotNil(t, p)
	require.Equal(t, 1, p.ChildCount())
	inline := p.Children()[0]
	require.Len(t, inline.Content, 3)
	wrapped := flow.WrappedFlow(inline.Content[1].Specific)
	require.NotNil(t, wrapped, "inline-block wraps a block flow")
	assert.Equal(t, flow.Block, wrapped.Kind)
	assert.Equal(t, "span", elementOf(wrapped))
}

func TestBeforeAndAfterContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := build(t, `<html><head><style>p::before { content: "[" } p::after { content: "]" }</style>`+
		`</head><body><p>x</p></body></html>`)
	p := findFlow(root, flow.Block, "p")
	require.NotNil(t, p)
	require.Equal(t, 1, p.ChildCount())
	inline := p.Children()[0]
	require.Len(t, inline.Content, 3)
	assert.Equal(t, style.PseudoBefore, inline.Content[0].Pseudo)
	assert.Equal(t, style.PseudoNormal, inline.Content[1].Pseudo)
	assert.Equal(t, style.PseudoAfter, inline.Content[2].Pseudo)
}

func TestNoRootFlow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	root := styledDoc(t, `<html style="display: none"><body>x</body></html>`)
	_, err := boxtree.BuildBoxTree(context.Background(), root, boxtree.DefaultOptions())
	assert.True(t, errors.Is(err, boxtree.ErrNoRootFlow), "expected ErrNoRootFlow, is %v", err)
	_, err = boxtree.BuildBoxTree(context.Background(), nil, boxtree.DefaultOptions())
	assert.True(t, errors.Is(err, boxtree.ErrNilRoot), "expected ErrNilRoot, is %v", err)
}

func TestSequentialAndConcurrentAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	doc := `<html><body><div><p>one <b>two</b></p><table><tr><td>A</td><td>B</td></tr></table>` +
		`<span>x<div>y</div>z</span><ul><li>i</li></ul></div></body></html>`
	seq := boxtree.DefaultOptions()
	seq.Workers = 1
	fl1, err := boxtree.BuildBoxTree(context.Background(), styledDoc(t, doc), seq)
	require.NoError(t, err)
	par := boxtree.DefaultOptions()
	par.Workers = 8
	fl2, err := boxtree.BuildBoxTree(context.Background(), styledDoc(t, doc), par)
	require.NoError(t, err)
	assert.Equal(t, shape(fl1), shape(fl2))
}

// shape is a textual rendition of a box tree without identifiers.
func shape(root *flow.Flow) string {
	var b strings.Builder
	root.Walk(func(fl *flow.Flow, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(fl.Kind.String())
		if fl.Fragment != nil {
			b.WriteString(" " + framedbg.NodeName(fl.Fragment.Node, fl.Fragment.Pseudo))
		}
		for _, f := range fl.Content {
			b.WriteString(" " + framedbg.NodeName(f.Node, f.Pseudo))
			if st, ok := f.Specific.(*flow.ScannedText); ok {
				b.WriteString("(" + st.Text() + ")")
			}
		}
		if fl.Flags != 0 {
			b.WriteString(" [" + fl.Flags.String() + "]")
		}
		b.WriteString("\n")
	})
	return b.String()
}
