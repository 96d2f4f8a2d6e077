package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/styledtree"
	"github.com/npillmayer/boxtree/dom/w3cdom"
	"github.com/npillmayer/boxtree/tree"
	"golang.org/x/net/html"
)

// ErrNotAStyledNode is returned if a tree node does not carry a styled node.
var ErrNotAStyledNode = errors.New("tree node is not a styled node")

// W3CNode is the W3C view of a styled node.
type W3CNode struct {
	stylednode *styledtree.StyNode
}

var _ w3cdom.Node = &W3CNode{}

// NodeFromStyledNode wraps a styled node. It returns nil for nil.
func NodeFromStyledNode(sn *styledtree.StyNode) *W3CNode {
	if sn == nil {
		return nil
	}
	return &W3CNode{sn}
}

// NodeFromTreeNode returns the W3C view of a node of a styled tree.
func NodeFromTreeNode(n *tree.Node[*styledtree.StyNode]) (*W3CNode, error) {
	if n == nil || n.Payload == nil {
		return nil, ErrNotAStyledNode
	}
	return NodeFromStyledNode(n.Payload), nil
}

// StyledNode returns the styled node underlying a W3C node.
func (w *W3CNode) StyledNode() *styledtree.StyNode {
	return w.stylednode
}

// HTMLNode returns the HTML node of the styled node.
func (w *W3CNode) HTMLNode() *html.Node {
	return w.stylednode.HTMLNode()
}

func (w *W3CNode) String() string {
	return fmt.Sprintf("W3CNode<%s>", w.NodeName())
}

// NodeType returns the type of the underlying HTML node.
func (w *W3CNode) NodeType() html.NodeType {
	return w.HTMLNode().Type
}

// NodeName returns the tag name of an element, "#text" for text nodes and
// "#document" for documents. Pseudo-elements add their suffix to the tag
// name.
func (w *W3CNode) NodeName() string {
	h := w.HTMLNode()
	switch h.Type {
	case html.TextNode:
		return "#text"
	case html.DocumentNode:
		return "#document"
	}
	if w.IsPseudoElement() {
		return h.Data + w.stylednode.Pseudo().String()
	}
	return h.Data
}

// NodeValue returns the text of a text node.
func (w *W3CNode) NodeValue() string {
	if w.NodeType() == html.TextNode && !w.IsPseudoElement() {
		return w.HTMLNode().Data
	}
	return ""
}

// IsPseudoElement is true for generated nodes.
func (w *W3CNode) IsPseudoElement() bool {
	return w.stylednode.Pseudo() != style.PseudoNormal
}

// HasAttributes is true for elements with attributes.
func (w *W3CNode) HasAttributes() bool {
	return w.NodeType() == html.ElementNode && len(w.HTMLNode().Attr) > 0
}

// ParentNode returns the parent or nil for the root.
func (w *W3CNode) ParentNode() w3cdom.Node {
	if p := w.stylednode.ParentNode(); p != nil {
		return NodeFromStyledNode(p)
	}
	return nil
}

// HasChildNodes is true if the node has children.
func (w *W3CNode) HasChildNodes() bool {
	return w.stylednode.ChildCount() > 0
}

// ChildNodes returns all children.
func (w *W3CNode) ChildNodes() w3cdom.NodeList {
	kids := w.stylednode.StyledChildren()
	list := &W3CNodeList{nodes: make([]*W3CNode, len(kids))}
	for i, k := range kids {
		list.nodes[i] = NodeFromStyledNode(k)
	}
	return list
}

// Children returns the element children.
func (w *W3CNode) Children() w3cdom.NodeList {
	list := &W3CNodeList{}
	for _, k := range w.stylednode.StyledChildren() {
		if k.HTMLNode().Type == html.ElementNode {
			list.nodes = append(list.nodes, NodeFromStyledNode(k))
		}
	}
	return list
}

// FirstChild returns the first child or nil.
func (w *W3CNode) FirstChild() w3cdom.Node {
	if ch, ok := w.stylednode.Child(0); ok && ch != nil {
		return NodeFromStyledNode(ch.Payload)
	}
	return nil
}

// NextSibling returns the next sibling or nil.
func (w *W3CNode) NextSibling() w3cdom.Node {
	parent := w.stylednode.Parent()
	if parent == nil {
		return nil
	}
	i := parent.IndexOfChild(&w.stylednode.Node)
	if i < 0 {
		return nil
	}
	if ch, ok := parent.Child(i + 1); ok && ch != nil {
		return NodeFromStyledNode(ch.Payload)
	}
	return nil
}

// Attributes returns the attributes of an element. Pseudo-elements return
// the attributes of their element.
func (w *W3CNode) Attributes() w3cdom.NamedNodeMap {
	if w.NodeType() != html.ElementNode {
		return emptyNodeMap
	}
	return nodeMap(w.HTMLNode().Attr)
}

// ComputedStyles returns the styles of a node.
func (w *W3CNode) ComputedStyles() w3cdom.ComputedStyles {
	return w.stylednode
}

// TextContent collects the text of all text nodes below a node, in
// document order. Generated content is not included.
func (w *W3CNode) TextContent() (string, error) {
	if w.NodeType() == html.TextNode {
		return w.NodeValue(), nil
	}
	texts, err := tree.NewWalker(&w.stylednode.Node).DescendentsWith(NodeIsText).Promise()()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, t := range texts {
		b.WriteString(t.Payload.HTMLNode().Data)
	}
	return b.String(), nil
}

// --- Node lists and attributes ----------------------------------------

// W3CNodeList is a list of W3C nodes.
type W3CNodeList struct {
	nodes []*W3CNode
}

// Length returns the number of nodes.
func (l *W3CNodeList) Length() int {
	if l == nil {
		return 0
	}
	return len(l.nodes)
}

// Item returns the node at position i or nil.
func (l *W3CNodeList) Item(i int) w3cdom.Node {
	if l == nil || i < 0 || i >= len(l.nodes) {
		return nil
	}
	return l.nodes[i]
}

func (l *W3CNodeList) String() string {
	names := make([]string, l.Length())
	for i := range names {
		names[i] = l.nodes[i].NodeName()
	}
	return "[" + strings.Join(names, " ") + "]"
}

type attr struct {
	a html.Attribute
}

func (a attr) Namespace() string { return a.a.Namespace }
func (a attr) Key() string       { return a.a.Key }
func (a attr) Value() string     { return a.a.Val }

type nodeMap []html.Attribute

var emptyNodeMap = nodeMap(nil)

func (m nodeMap) Length() int {
	return len(m)
}

func (m nodeMap) Item(i int) w3cdom.Attr {
	if i < 0 || i >= len(m) {
		return nil
	}
	return attr{m[i]}
}

func (m nodeMap) GetNamedItem(key string) w3cdom.Attr {
	for _, a := range m {
		if a.Key == key {
			return attr{a}
		}
	}
	return nil
}
