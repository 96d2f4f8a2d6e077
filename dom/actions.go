package dom

import (
	"github.com/npillmayer/boxtree/dom/styledtree"
	"github.com/npillmayer/boxtree/tree"
)

// NodeIsText is a predicate to match text-nodes of a DOM.
// It is intended to be used in a tree.Walker.
var NodeIsText = func(n *tree.Node[*styledtree.StyNode], unused *tree.Node[*styledtree.StyNode]) (
	match *tree.Node[*styledtree.StyNode], err error) {
	//
	domnode, err := NodeFromTreeNode(n)
	if err != nil {
		return nil, err
	}
	if domnode.NodeName() == "#text" {
		return n, nil
	}
	return nil, nil
}

// NodeIsPseudoElement is a predicate to match nodes for generated content
// and other pseudo-elements.
var NodeIsPseudoElement = func(n *tree.Node[*styledtree.StyNode], unused *tree.Node[*styledtree.StyNode]) (
	match *tree.Node[*styledtree.StyNode], err error) {
	//
	domnode, err := NodeFromTreeNode(n)
	if err != nil {
		return nil, err
	}
	if domnode.IsPseudoElement() {
		return n, nil
	}
	return nil, nil
}

// NodeIsDamaged is a predicate to match nodes with pending restyle damage.
var NodeIsDamaged = func(n *tree.Node[*styledtree.StyNode], unused *tree.Node[*styledtree.StyNode]) (
	match *tree.Node[*styledtree.StyNode], err error) {
	//
	if n == nil || n.Payload == nil {
		return nil, ErrNotAStyledNode
	}
	if n.Payload.RestyleDamage() != 0 {
		return n, nil
	}
	return nil, nil
}
