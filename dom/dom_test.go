package dom

import (
	"strings"
	"testing"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/styledtree"
	"github.com/npillmayer/boxtree/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var myhtml = `<html><head><style>
b::before { content: "*" }
</style></head><body>
<div id="a">Hello <b>bold</b> <i style="color: green">World</i></div>
</body></html>
`

func styled(t *testing.T) *styledtree.StyNode {
	root, err := styledtree.BuildFromHTML(strings.NewReader(myhtml))
	require.NoError(t, err)
	return root
}

func findElement(sn *styledtree.StyNode, name string) *styledtree.StyNode {
	if sn.ElementName() == name && sn.Pseudo() == style.PseudoNormal {
		return sn
	}
	for _, ch := range sn.StyledChildren() {
		if r := findElement(ch, name); r != nil {
			return r
		}
	}
	return nil
}

func clearDamage(t *testing.T, root *styledtree.StyNode) {
	_, err := tree.NewWalker(&root.Node).TopDown(
		func(n, parent *tree.Node[*styledtree.StyNode], position int) (*tree.Node[*styledtree.StyNode], error) {
			n.Payload.ClearRestyleDamage()
			return nil, nil
		}).Promise()()
	require.NoError(t, err)
}

func damaged(t *testing.T, root *styledtree.StyNode) []*tree.Node[*styledtree.StyNode] {
	nodes, err := tree.NewWalker(&root.Node).DescendentsWith(NodeIsDamaged).Promise()()
	require.NoError(t, err)
	return nodes
}

func TestW3CNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.dom")
	defer teardown()
	//
	root := styled(t)
	div := NodeFromStyledNode(findElement(root, "div"))
	assert.Equal(t, "div", div.NodeName())
	assert.True(t, div.HasAttributes())
	assert.Equal(t, "a", div.Attributes().GetNamedItem("id").Value())
	assert.Equal(t, 2, div.Children().Length(), "element children are <b> and <i>")
	text, err := div.TextContent()
	require.NoError(t, err)
	if text != "Hello bold World" {
		t.Errorf("expected text content 'Hello bold World', is %q", text)
	}
	b := div.Children().Item(0)
	assert.Equal(t, "b::before", b.FirstChild().NodeName())
	assert.True(t, b.FirstChild().IsPseudoElement())
	assert.Equal(t, "#text", b.NextSibling().NodeName())
	assert.Equal(t, "div", b.ParentNode().NodeName())
	i := div.Children().Item(1)
	assert.Equal(t, "green", string(i.ComputedStyles().GetPropertyValue("color")))
}

func TestNodeIsText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.dom")
	defer teardown()
	//
	root := styled(t)
	div := findElement(root, "div")
	texts, err := tree.NewWalker(&div.Node).DescendentsWith(NodeIsText).Promise()()
	require.NoError(t, err)
	assert.Len(t, texts, 4)
	pseudos, err := tree.NewWalker(&div.Node).DescendentsWith(NodeIsPseudoElement).Promise()()
	require.NoError(t, err)
	assert.Len(t, pseudos, 1)
}

func TestSetPropertyRepaint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.dom")
	defer teardown()
	//
	root := styled(t)
	clearDamage(t, root)
	div := findElement(root, "div")
	require.NoError(t, SetProperty(div, "color", "red"))
	if div.RestyleDamage() != style.Repaint {
		t.Errorf("expected damage 'repaint' for color change, is %s", div.RestyleDamage())
	}
	// text nodes, <b> and b::before inherit; <i> sets color itself
	i := findElement(root, "i")
	assert.Equal(t, style.NoDamage, i.RestyleDamage())
	assert.Equal(t, style.NoDamage, i.StyledChildren()[0].RestyleDamage())
	b := findElement(root, "b")
	assert.Equal(t, style.Repaint, b.RestyleDamage())
	assert.Equal(t, "red", string(b.GetPropertyValue("color")))
	assert.Len(t, damaged(t, root), 1+5, "body is not damaged, div and 5 descendants are")
}

func TestSetPropertyReconstruct(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.dom")
	defer teardown()
	//
	root := styled(t)
	clearDamage(t, root)
	i := findElement(root, "i")
	require.NoError(t, SetProperty(i, "display", "block"))
	assert.True(t, i.RestyleDamage().Contains(style.ReconstructFlow))
	assert.Len(t, damaged(t, root), 1, "display does not inherit")
	require.NoError(t, SetProperty(i, "display", "block"))
	assert.Len(t, damaged(t, root), 1, "unchanged value causes no damage")
}

func TestSetCompoundProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.dom")
	defer teardown()
	//
	root := styled(t)
	clearDamage(t, root)
	b := findElement(root, "b")
	require.NoError(t, SetProperty(b, "padding", "3px"))
	assert.Equal(t, "3px", string(b.GetPropertyValue("padding-left")))
	assert.True(t, b.RestyleDamage().Contains(style.Reflow))
	assert.Error(t, SetProperty(nil, "color", "red"))
}
