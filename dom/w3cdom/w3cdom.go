/*
Package w3cdom defines an interface type for W3C Document Object Models.

See also https://www.w3schools.com/XML/dom_intro.asp

Nodes of a styled tree are presented as W3C nodes, for debugging output and
for clients used to DOM-style navigation. Generated pseudo-elements appear as
nodes of their own, named after their element, e.g. "p::before".

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package w3cdom

import (
	"github.com/npillmayer/boxtree/dom/style"
	"golang.org/x/net/html"
)

// Node represents W3C-type Node
type Node interface {
	NodeType() html.NodeType        // type of the underlying HTML node
	NodeName() string               // tag name, "#text", or tag name with pseudo-element suffix
	NodeValue() string              // text of text nodes, empty otherwise
	IsPseudoElement() bool          // node stands for generated content or a wrapper
	HasAttributes() bool            // element has attributes
	ParentNode() Node               // parent node or nil for the root
	HasChildNodes() bool            // node has children
	ChildNodes() NodeList           // all children, including text nodes
	Children() NodeList             // element children only
	FirstChild() Node               // first child or nil
	NextSibling() Node              // next sibling or nil if last
	Attributes() NamedNodeMap       // attributes of an element
	ComputedStyles() ComputedStyles // computed CSS styles
	TextContent() (string, error)   // text of the node and all its descendents
}

// NodeList represents W3C-type NodeList
type NodeList interface {
	Length() int
	Item(int) Node
	String() string
}

// Attr represents W3C-type Attr
type Attr interface {
	Namespace() string
	Key() string
	Value() string
}

// NamedNodeMap represents W3C-type NamedNodeMap
type NamedNodeMap interface {
	Length() int
	Item(int) Attr
	GetNamedItem(string) Attr
}

// ComputedStyles gives access to the styles of a node. Values of inherited
// properties are looked up along the chain of ancestors.
type ComputedStyles interface {
	GetPropertyValue(string) style.Property
	Styles() *style.PropertyMap
}
