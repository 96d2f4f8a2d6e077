package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/frame/boxtree"
	"github.com/npillmayer/boxtree/frame/flow"
	"github.com/npillmayer/boxtree/tree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StyNode is a style node, the building block of the styled tree.
//
// Nodes for pseudo-elements share the HTML node of their originating
// element. They are children of the element: ::before first, ::after last.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of general purpose tree
	htmlNode            *html.Node
	pseudo              style.PseudoElement
	computedStyles      *style.PropertyMap
	damage              atomic.Uint32 // style.RestyleDamage
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
// New nodes carry full restyle damage.
func NewNodeForHTMLNode(h *html.Node) *StyNode {
	return newNode(h, style.PseudoNormal)
}

func newNode(h *html.Node, pseudo style.PseudoElement) *StyNode {
	sn := &StyNode{htmlNode: h, pseudo: pseudo}
	sn.Payload = sn // Payload will always reference the node itself
	sn.damage.Store(uint32(style.RebuildAll))
	return sn
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

func (sn *StyNode) String() string {
	if sn == nil {
		return "<nil>"
	}
	return fmt.Sprintf("StyNode<%s>", sn.nodeName())
}

func (sn *StyNode) nodeName() string {
	switch {
	case sn.htmlNode == nil:
		return "?"
	case sn.htmlNode.Type == html.TextNode:
		return "#text"
	case sn.pseudo != style.PseudoNormal:
		return sn.htmlNode.Data + sn.pseudo.String()
	}
	return sn.htmlNode.Data
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
// For pseudo-elements, this is the HTML node of the originating element.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// ParentNode returns the styled parent node, or nil for the root.
func (sn *StyNode) ParentNode() *StyNode {
	return Node(sn.Node.Parent())
}

// StyledChildren returns the styled children of a node in document order,
// including nodes for pseudo-elements.
func (sn *StyNode) StyledChildren() []*StyNode {
	chs := sn.Node.Children()
	kids := make([]*StyNode, len(chs))
	for i, ch := range chs {
		kids[i] = ch.Payload
	}
	return kids
}

// Styles is part of interface boxtree.DocumentNode.
func (sn *StyNode) Styles() *style.PropertyMap {
	return sn.computedStyles
}

// SetStyles sets the styling properties of a styled node.
func (sn *StyNode) SetStyles(styles *style.PropertyMap) {
	sn.computedStyles = styles
}

// GetPropertyValue returns the computed value of a property, respecting
// CSS inheritance.
func (sn *StyNode) GetPropertyValue(key string) style.Property {
	return style.GetProperty(sn.computedStyles, key)
}

// AddRestyleDamage records restyle damage for a node.
func (sn *StyNode) AddRestyleDamage(d style.RestyleDamage) {
	for {
		old := sn.damage.Load()
		if sn.damage.CompareAndSwap(old, old|uint32(d)) {
			return
		}
	}
}

// --- Interface boxtree.DocumentNode -----------------------------------

var _ boxtree.DocumentNode = (*StyNode)(nil)

// Opaque returns the identity of a node: its HTML node.
func (sn *StyNode) Opaque() flow.OpaqueNode {
	return sn.htmlNode
}

// Type is part of interface boxtree.DocumentNode.
func (sn *StyNode) Type() boxtree.NodeType {
	if sn.htmlNode != nil && sn.htmlNode.Type == html.TextNode && sn.pseudo == style.PseudoNormal {
		return boxtree.TextNode
	}
	return boxtree.ElementNode
}

// Pseudo is part of interface boxtree.DocumentNode.
func (sn *StyNode) Pseudo() style.PseudoElement {
	return sn.pseudo
}

// ElementName returns the lowercase tag name of an element. Pseudo-elements
// return the name of their originating element.
func (sn *StyNode) ElementName() string {
	if sn.htmlNode == nil || sn.htmlNode.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(sn.htmlNode.Data)
}

// Attribute returns the value of an attribute of an element. Pseudo-elements
// return the attributes of their originating element.
func (sn *StyNode) Attribute(key string) (string, bool) {
	if sn.htmlNode == nil || sn.htmlNode.Type != html.ElementNode {
		return "", false
	}
	for _, a := range sn.htmlNode.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Children is part of interface boxtree.DocumentNode.
func (sn *StyNode) Children() []boxtree.DocumentNode {
	chs := sn.Node.Children()
	kids := make([]boxtree.DocumentNode, len(chs))
	for i, ch := range chs {
		kids[i] = ch.Payload
	}
	return kids
}

// TextContent returns the text of a text node, the value of an input
// element, or the text of a textarea. Other nodes have no text content.
func (sn *StyNode) TextContent() string {
	if sn.htmlNode == nil || sn.pseudo != style.PseudoNormal {
		return ""
	}
	switch {
	case sn.htmlNode.Type == html.TextNode:
		return sn.htmlNode.Data
	case sn.htmlNode.DataAtom == atom.Input:
		if v, ok := sn.Attribute("value"); ok {
			return v
		}
		v, _ := sn.Attribute("placeholder")
		return v
	case sn.htmlNode.DataAtom == atom.Textarea:
		var b strings.Builder
		for ch := sn.htmlNode.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.Type == html.TextNode {
				b.WriteString(ch.Data)
			}
		}
		return b.String()
	}
	return ""
}

// RestyleDamage is part of interface boxtree.DocumentNode.
func (sn *StyNode) RestyleDamage() style.RestyleDamage {
	return style.RestyleDamage(sn.damage.Load())
}

// ClearRestyleDamage is part of interface boxtree.DocumentNode.
func (sn *StyNode) ClearRestyleDamage() {
	sn.damage.Store(uint32(style.NoDamage))
}
