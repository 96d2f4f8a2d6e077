package flow

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/tyse/core/dimen"
)

// Flow is a node of the box tree. Children are owned by their parent flow; the
// parent link is used for bookkeeping only.
//
// Children may be added concurrently from different goroutines. All other
// fields are expected to be modified by the goroutine constructing the flow.
type Flow struct {
	Kind     Kind
	Fragment *Fragment   // main fragment, nil for inline flows
	Content  []*Fragment // inline content of an inline flow
	Markers  []*Fragment // outside list markers of a list item
	Columns  []*Fragment // column fragments of a column group
	Flags    Flags
	Float    FloatKind
	Damage   style.RestyleDamage
	// absolute descendants this flow is the containing block for
	AbsDescendants AbsoluteDescendants
	// minimum line height of the containing block, for inline flows
	MinLineHeight dimen.DU
	WritingMode   css.WritingMode
	ISizes        ISizes
	children      []*Flow
	chMutex       sync.RWMutex
	parent        *Flow
	childCount    int32
	finished      bool
	id            uint32
}

var flowSerial uint32

// NewFlow creates a block-like flow with a main fragment.
func NewFlow(kind Kind, fragment *Fragment) *Flow {
	if fragment == nil {
		panic(fmt.Sprintf("boxtree: %s flow without main fragment", kind))
	}
	f := &Flow{
		Kind:     kind,
		Fragment: fragment,
		Damage:   fragment.Damage,
		id:       atomic.AddUint32(&flowSerial, 1),
	}
	if fragment.Style != nil {
		f.WritingMode = css.WritingModeOf(fragment.Style)
		if fragment.IsAbsolutelyPositioned() {
			f.Flags |= IsAbsolutelyPositioned
		}
	}
	return f
}

// NewInlineFlow creates an inline flow holding a list of fragments. The
// fragments are expected to have been run through the text-run scanner.
func NewInlineFlow(fragments []*Fragment, wm css.WritingMode) *Flow {
	f := &Flow{
		Kind:        Inline,
		Content:     fragments,
		WritingMode: wm,
		id:          atomic.AddUint32(&flowSerial, 1),
	}
	for _, frag := range fragments {
		f.Damage = f.Damage.Insert(frag.Damage)
	}
	return f
}

// ID is a debugging identifier, unique within a process.
func (f *Flow) ID() uint32 {
	return f.id
}

func (f *Flow) String() string {
	if f == nil {
		return "<nil flow>"
	}
	return fmt.Sprintf("%s#%d", f.Kind, f.id)
}

// Style returns the style of the main fragment, or nil for inline flows.
func (f *Flow) Style() *style.PropertyMap {
	if f.Fragment == nil {
		return nil
	}
	return f.Fragment.Style
}

// Parent returns the parent flow, if any.
func (f *Flow) Parent() *Flow {
	f.chMutex.RLock()
	defer f.chMutex.RUnlock()
	return f.parent
}

// AddNewChild appends a child flow. It is safe to call AddNewChild
// concurrently on the same parent.
func (f *Flow) AddNewChild(child *Flow) {
	if child == nil {
		panic(fmt.Sprintf("boxtree: nil child added to %s", f))
	}
	f.chMutex.Lock()
	f.children = append(f.children, child)
	f.chMutex.Unlock()
	child.chMutex.Lock()
	child.parent = f
	child.chMutex.Unlock()
	atomic.AddInt32(&f.childCount, 1)
}

// Children returns a copy of the list of child flows.
func (f *Flow) Children() []*Flow {
	f.chMutex.RLock()
	defer f.chMutex.RUnlock()
	ch := make([]*Flow, len(f.children))
	copy(ch, f.children)
	return ch
}

// ChildCount returns the number of children.
func (f *Flow) ChildCount() int {
	return int(atomic.LoadInt32(&f.childCount))
}

// LastChild returns the last child flow, or nil.
func (f *Flow) LastChild() *Flow {
	f.chMutex.RLock()
	defer f.chMutex.RUnlock()
	if len(f.children) == 0 {
		return nil
	}
	return f.children[len(f.children)-1]
}

// Finish is called when all children have been added. It computes the
// intrinsic inline sizes of f.
func (f *Flow) Finish() {
	f.BubbleISizes()
	f.Damage = f.Damage.Remove(style.BubbleISizes)
	f.finished = true
}

// IsFinished is true after Finish has been called.
func (f *Flow) IsFinished() bool {
	return f.finished
}

// IsAbsoluteContainingBlock is true if f is the containing block for its
// absolutely positioned descendants. This is the case for positioned
// block-like flows and for the root of the box tree. Tables delegate this role
// to their wrapper.
func (f *Flow) IsAbsoluteContainingBlock() bool {
	switch f.Kind {
	case Inline, Table:
		return false
	}
	if f.Flags.Contains(IsRoot) {
		return true
	}
	return f.Fragment != nil && f.Fragment.IsPositioned()
}

// SetAbsoluteDescendants makes f the containing block of a list of absolutely
// positioned flows.
func (f *Flow) SetAbsoluteDescendants(abs AbsoluteDescendants) {
	f.AbsDescendants = append(f.AbsDescendants, abs...)
}

// TakeApplicableAbsoluteDescendants moves all entries which have reached their
// containing block from abs to f. It returns the remaining entries.
func (f *Flow) TakeApplicableAbsoluteDescendants(abs AbsoluteDescendants) AbsoluteDescendants {
	var rest AbsoluteDescendants
	for _, d := range abs {
		if d.HasReachedContainingBlock {
			f.AbsDescendants = append(f.AbsDescendants, d)
		} else {
			rest = append(rest, d)
		}
	}
	return rest
}

// RepairStyleAndBubbleISizes installs a new style for the main fragment of f
// and re-computes the intrinsic inline sizes.
func (f *Flow) RepairStyleAndBubbleISizes(pmap *style.PropertyMap) {
	if f.Fragment != nil {
		f.Fragment.RepairStyle(pmap)
		if f.Fragment.IsAbsolutelyPositioned() {
			f.Flags |= IsAbsolutelyPositioned
		} else {
			f.Flags &^= IsAbsolutelyPositioned
		}
	}
	f.WritingMode = css.WritingModeOf(pmap)
	f.BubbleISizes()
	f.Damage = f.Damage.Remove(style.BubbleISizes)
}

// Walk calls visit for f and all of its descendants, in document order. Flows
// wrapped by inline fragments are visited after the inline flow holding them.
func (f *Flow) Walk(visit func(fl *Flow, depth int)) {
	f.walk(visit, 0)
}

func (f *Flow) walk(visit func(*Flow, int), depth int) {
	visit(f, depth)
	for _, ch := range f.Children() {
		ch.walk(visit, depth+1)
	}
}
