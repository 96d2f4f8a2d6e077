package boxtree

import (
	"context"
	"fmt"
	"sync"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/boxtree/frame/flow"
	"github.com/npillmayer/boxtree/tree"
)

// Constructor builds box trees for a document. It keeps the construction
// results of all document nodes in a LayoutStore, so that later passes over
// the same (restyled) document may work incrementally.
//
// A Constructor is not meant to run more than one pass at a time; passes are
// serialized.
type Constructor struct {
	opts    Options
	store   *LayoutStore
	mx      sync.Mutex // serializes passes
	rebuild bool       // next pass must not skip or repair nodes
}

// NewConstructor creates a box tree constructor.
func NewConstructor(opts Options) *Constructor {
	return &Constructor{
		opts:  opts.withDefaults(),
		store: NewLayoutStore(),
	}
}

// Store returns the layout store holding the construction results of the
// document's nodes.
func (c *Constructor) Store() *LayoutStore {
	return c.store
}

// BuildBoxTree is a convenience function which constructs the box tree for a
// document with a fresh constructor.
func BuildBoxTree(ctx context.Context, root DocumentNode, opts Options) (*flow.Flow, error) {
	return NewConstructor(opts).BuildBoxTree(ctx, root)
}

// BuildBoxTree runs a construction pass over the document tree below root
// and returns the root flow of the box tree.
//
// Nodes are visited children first, with sibling subtrees visited
// concurrently. On passes after the first, subtrees without restyle damage
// are skipped and damaged nodes are repaired in place where possible. Restyle
// damage of visited nodes is cleared.
//
// If ctx is cancelled, the pass is aborted and ctx.Err() is returned. The
// following pass will then reconstruct every node.
func (c *Constructor) BuildBoxTree(ctx context.Context, root DocumentNode) (*flow.Flow, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	c.mx.Lock()
	defer c.mx.Unlock()
	b := &builder{
		store:       c.store,
		opts:        c.opts,
		root:        keyOf(root),
		incremental: c.opts.Incremental && !c.rebuild,
	}
	tracer().Debugf("box tree construction, incremental=%v", b.incremental)
	fj := tree.NewForkJoin(c.opts.Workers)
	_, err := tree.Postorder(ctx, fj, root, DocumentNode.Children, b.visit)
	if err != nil {
		c.rebuild = true
		tracer().Infof("box tree construction aborted: %v", err)
		return nil, err
	}
	c.rebuild = false
	c.store.clearFresh(root)
	r, _ := c.store.storedResult(root)
	fr, ok := r.(*FlowResult)
	if !ok {
		return nil, fmt.Errorf("%w: result is %s", ErrNoRootFlow, r)
	}
	if len(fr.Abs) > 0 {
		tracer().Debugf("root absorbs %d absolute descendants", len(fr.Abs))
		fr.Flow.SetAbsoluteDescendants(fr.Abs)
		fr.Abs = nil
	}
	return fr.Flow, nil
}

// builder holds the state of a single construction pass. Everything it
// builds for a node is local to the goroutine visiting the node.
type builder struct {
	store       *LayoutStore
	opts        Options
	root        slotKey
	incremental bool
}

// visit is called for every document node, after all of its children. It
// returns true if the subtree of n has been restyled.
func (b *builder) visit(n DocumentNode, dirtyKids []bool) bool {
	dirty := n.RestyleDamage() != style.NoDamage
	for _, d := range dirtyKids {
		dirty = dirty || d
	}
	if b.incremental && b.store.Has(n) {
		if !dirty {
			return false
		}
		if b.repairIfPossible(n) {
			tracer().Debugf("repaired %s", nodeName(n))
			n.ClearRestyleDamage()
			return true
		}
	}
	b.process(n)
	n.ClearRestyleDamage()
	return dirty
}

// process constructs the box tree contribution of a node and stores it.
// Boxes are decided upon by the triple (display, float, position), following
// CSS 2.1 § 9.7.
func (b *builder) process(n DocumentNode) {
	b.store.markFresh(n)
	class, float, position := classify(n)
	floatKind := flow.FloatKindFromProperty(float, css.WritingModeOf(n.Styles()))
	abs := position.IsOutOfFlow()
	var result ConstructionResult
	switch {
	case class == boxNone:
		result = NoResult{}
	case class == boxTable:
		result = b.buildFlowForTable(n, floatKind)
	case class == boxBlock && abs:
		result = b.buildFlowForBlock(n, flow.NotFloating)
	case (class == boxInline || class == boxInlineBlock) && abs:
		result = b.buildFragmentForAbsolutelyPositionedInline(n)
	case class == boxInline && float == css.FloatNone:
		result = b.buildFragmentsForInline(n)
	case class == boxInlineBlock && float == css.FloatNone:
		result = b.buildFragmentForInlineBlockOrFlex(n, boxInlineBlock)
	case class == boxTableCaption:
		result = b.buildFlowForTableCaption(n)
	case class == boxTableColumnGroup:
		result = b.buildFlowForTableColGroup(n)
	case class == boxTableColumn:
		result = b.buildFragmentsForTableColumn(n)
	case class == boxTableRowGroup:
		result = b.buildFlowForTableRowGroup(n)
	case class == boxTableRow:
		result = b.buildFlowForTableRow(n)
	case class == boxTableCell:
		result = b.buildFlowForTableCell(n)
	case class == boxFlex:
		result = b.buildFlowForFlex(n, floatKind)
	case class == boxInlineFlex:
		result = b.buildFragmentForInlineBlockOrFlex(n, boxInlineFlex)
	case class == boxListItem:
		result = b.buildFlowForListItem(n, floatKind)
	default:
		result = b.buildFlowForBlock(n, floatKind)
	}
	tracer().Debugf("%s: %s", nodeName(n), result)
	b.store.SetResult(n, result)
	for _, ch := range n.Children() {
		b.store.clearFresh(ch)
	}
}

// boxClass is the class of box a node's display value asks for.
type boxClass uint8

const (
	boxNone boxClass = iota
	boxBlock
	boxInline
	boxInlineBlock
	boxListItem
	boxFlex
	boxInlineFlex
	boxTable
	boxTableCaption
	boxTableColumnGroup
	boxTableColumn
	boxTableRowGroup
	boxTableRow
	boxTableCell
)

// classify returns the effective (display, float, position) triple of a node.
// Text nodes are inline, not floating and static. Elements use their
// original display if it is inline or inline-block; the style engine may
// have blockified the computed display value.
func classify(n DocumentNode) (boxClass, css.FloatT, css.PositionT) {
	if n.Type() == TextNode && n.Pseudo() == style.PseudoNormal {
		return boxInline, css.FloatNone, css.Static()
	}
	pmap := n.Styles()
	display := css.DisplayOf(pmap)
	if n.Pseudo() == style.PseudoNormal {
		if orig := css.OriginalDisplayOf(pmap); orig == css.DisplayInline || orig == css.DisplayInlineBlock {
			display = orig
		}
	}
	return classOfDisplay(display, nodeName(n)), css.FloatOf(pmap), css.PositionOf(pmap)
}

func classOfDisplay(display css.DisplayMode, name string) boxClass {
	switch {
	case display == css.NoMode:
		panic(fmt.Sprintf("boxtree: no display value for %s", name))
	case display.Contains(css.DisplayNone):
		return boxNone
	case display.Contains(css.TableMode):
		return boxTable
	case display.Contains(css.TableCaptionMode):
		return boxTableCaption
	case display.Contains(css.TableColumnGroupMode):
		return boxTableColumnGroup
	case display.Contains(css.TableColumnMode):
		return boxTableColumn
	case display.Overlaps(css.TableRowGroupMode | css.TableHeaderGroupMode | css.TableFooterGroupMode):
		return boxTableRowGroup
	case display.Contains(css.TableRowMode):
		return boxTableRow
	case display.Contains(css.TableCellMode):
		return boxTableCell
	case display.Contains(css.FlexMode):
		if display.Contains(css.InlineMode) {
			return boxInlineFlex
		}
		return boxFlex
	case display.Contains(css.ListItemMode):
		return boxListItem
	case display.Contains(css.InlineMode):
		if display.Contains(css.InnerBlockMode) {
			return boxInlineBlock
		}
		return boxInline
	}
	return boxBlock
}

// isRoot is true for the root node of the current pass.
func (b *builder) isRoot(n DocumentNode) bool {
	return keyOf(n) == b.root
}

// finishAbsoluteDescendants decides about the absolute descendants collected
// for a finished flow. If fl is a containing block, it takes all of them and,
// being absolutely positioned itself, starts a new list with itself.
// Otherwise they are passed on to the parent.
func finishAbsoluteDescendants(fl *flow.Flow, abs flow.AbsoluteDescendants) flow.AbsoluteDescendants {
	if !fl.IsAbsoluteContainingBlock() {
		return abs
	}
	fl.SetAbsoluteDescendants(abs)
	var rest flow.AbsoluteDescendants
	if fl.Flags.Contains(flow.IsAbsolutelyPositioned) {
		rest.Push(fl)
	}
	return rest
}

func nodeName(n DocumentNode) string {
	name := n.ElementName()
	if n.Type() == TextNode {
		name = "#text"
	}
	if n.Pseudo() != style.PseudoNormal {
		return name + n.Pseudo().String()
	}
	return name
}
