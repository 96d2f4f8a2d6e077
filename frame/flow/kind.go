package flow

import (
	"strings"

	"github.com/npillmayer/boxtree/dom/style/css"
)

// Kind is the class of a flow.
type Kind uint8

// Flow kinds. Every algorithm deciding on flow kinds switches over all of them.
const (
	Block Kind = iota
	Inline
	ListItem
	Flex
	Multicol
	MulticolColumn
	TableWrapper
	Table
	TableColGroup
	TableRowGroup
	TableRow
	TableCaption
	TableCell
)

var kindNames = [...]string{
	"Block", "Inline", "ListItem", "Flex", "Multicol", "MulticolColumn",
	"TableWrapper", "Table", "TableColGroup", "TableRowGroup", "TableRow",
	"TableCaption", "TableCell",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind?"
}

// IsBlockLike is true for flows with a block fragment of their own, i.e. every
// kind besides Inline.
func (k Kind) IsBlockLike() bool {
	return k != Inline
}

// IsTablePart is true for the internal table kinds.
func (k Kind) IsTablePart() bool {
	switch k {
	case Table, TableColGroup, TableRowGroup, TableRow, TableCaption, TableCell:
		return true
	}
	return false
}

// Flags is a set of boolean properties of a flow.
type Flags uint16

// Flow flags.
const (
	IsAbsolutelyPositioned Flags = 1 << iota // flow is absolutely or fixed positioned
	FloatsLeft                               // flow is floated to the left
	FloatsRight                              // flow is floated to the right
	MarginsCannotCollapse                    // margins of the flow never collapse with its children
	IsRoot                                   // flow is the root of a box tree
	Hidden                                   // table cell is not rendered (empty-cells)
)

var flagNames = [...]string{"abs", "float-left", "float-right", "no-collapse", "root", "hidden"}

// Contains is true if all of the flags in fl2 are set in fl.
func (fl Flags) Contains(fl2 Flags) bool {
	return fl&fl2 == fl2
}

func (fl Flags) String() string {
	var names []string
	for i, n := range flagNames {
		if fl&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return strings.Join(names, "|")
}

// FloatKind describes the side a flow floats to, if any.
type FloatKind uint8

// Float kinds.
const (
	NotFloating FloatKind = iota
	FloatLeft
	FloatRight
)

// FloatKindFromProperty maps the 'float' property to a FloatKind. The writing
// mode is currently not considered.
func FloatKindFromProperty(f css.FloatT, wm css.WritingMode) FloatKind {
	switch f {
	case css.FloatLeft:
		return FloatLeft
	case css.FloatRight:
		return FloatRight
	}
	return NotFloating
}

func (fk FloatKind) String() string {
	switch fk {
	case FloatLeft:
		return "left"
	case FloatRight:
		return "right"
	}
	return "none"
}

// FragmentFlags is a set of boolean properties of a fragment.
type FragmentFlags uint8

// Fragment flags.
const (
	IsInlineFlexItem FragmentFlags = 1 << iota // item of a flex container with inline main axis
	IsBlockFlexItem                            // item of a flex container with block main axis
)

// InlineNodeFlags are the flags of an inline context node of a fragment.
type InlineNodeFlags uint8

// Flags marking the edges of an inline element's run of fragments.
const (
	FirstFragmentOfElement InlineNodeFlags = 1 << iota
	LastFragmentOfElement
)
