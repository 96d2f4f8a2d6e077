package flow

import (
	"sync"
	"testing"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func textFragment(node OpaqueNode, text string, pmap *style.PropertyMap) *Fragment {
	return NewFragment(node, style.PseudoNormal, pmap, nil, style.RebuildAll,
		&UnscannedText{Text: text})
}

func textOf(f *Fragment) string {
	return f.Specific.(*UnscannedText).Text
}

func TestStripLeadingWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	pmap := style.InheritFrom(nil)
	f := textFragment(1, " \t\nHello ", pmap)
	if r := f.StripLeadingWhitespaceIfNecessary(); r != RetainFragment {
		t.Errorf("expected fragment to be retained, is %d", r)
	}
	if textOf(f) != "Hello " {
		t.Errorf("expected leading white-space to be stripped, is %q", textOf(f))
	}
	f = textFragment(1, "  ", pmap)
	if r := f.StripLeadingWhitespaceIfNecessary(); r != FragmentContainedOnlyWhitespace {
		t.Errorf("expected fragment to contain only white-space, is %d", r)
	}
}

func TestStripTrailingWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	pmap := style.InheritFrom(nil)
	f := textFragment(1, " Hello \n\u2069 \u202C", pmap)
	if r := f.StripTrailingWhitespaceIfNecessary(); r != RetainFragment {
		t.Errorf("expected fragment to be retained, is %d", r)
	}
	if textOf(f) != " Hello\u2069\u202C" {
		t.Errorf("expected trailing bidi controls to survive, is %q", textOf(f))
	}
}

func TestStripBidiOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	pmap := style.InheritFrom(nil)
	f := textFragment(1, "\u2067 ", pmap)
	if r := f.StripTrailingWhitespaceIfNecessary(); r != FragmentContainedOnlyBidiControlCharacters {
		t.Errorf("expected fragment to contain only bidi controls, is %d", r)
	}
	if textOf(f) != "\u2067" {
		t.Errorf("expected bidi control to be kept, is %q", textOf(f))
	}
}

func TestStripIsIdempotent(t *testing.T) {
	pmap := style.InheritFrom(nil)
	for _, s := range []string{"  a b  ", "\u202A \u202C", "", "x", " \u200E y\t"} {
		f := textFragment(1, s, pmap)
		r1 := f.StripLeadingWhitespaceIfNecessary()
		r2 := f.StripTrailingWhitespaceIfNecessary()
		once := textOf(f)
		r3 := f.StripLeadingWhitespaceIfNecessary()
		r4 := f.StripTrailingWhitespaceIfNecessary()
		assert.Equal(t, once, textOf(f), "stripping %q twice", s)
		assert.Equal(t, r2, r4, "trailing result for %q", s)
		if r1 == RetainFragment {
			assert.Equal(t, RetainFragment, r3, "leading result for %q", s)
		}
	}
}

func TestPreservedWhitespaceIsRetained(t *testing.T) {
	pmap := style.InheritFrom(nil)
	pmap.Add("white-space", "pre")
	f := textFragment(1, "   ", pmap)
	if r := f.StripLeadingWhitespaceIfNecessary(); r != RetainFragment {
		t.Errorf("expected pre-formatted white-space to be retained, is %d", r)
	}
	if textOf(f) != "   " {
		t.Errorf("expected text to be unchanged, is %q", textOf(f))
	}
}

func TestMeldWithNext(t *testing.T) {
	pmap := style.InheritFrom(nil)
	span := InlineFragmentNodeInfo{Address: 7, Style: pmap}
	a := textFragment(1, "a", pmap)
	b := textFragment(2, " ", pmap)
	infoA, infoB := span, span
	infoA.Flags = FirstFragmentOfElement
	infoB.Flags = LastFragmentOfElement
	a.AddInlineContextStyle(infoA)
	b.AddInlineContextStyle(infoB)
	a.MeldWithNextInlineFragment(b)
	flags := a.InlineContext.Nodes[0].Flags
	if flags != FirstFragmentOfElement|LastFragmentOfElement {
		t.Errorf("expected melded fragment to be first and last, is %b", flags)
	}
}

func TestCloneIsDeep(t *testing.T) {
	pmap := style.InheritFrom(nil)
	a := textFragment(1, "  a", pmap)
	a.AddInlineContextStyle(InlineFragmentNodeInfo{Address: 7, Flags: FirstFragmentOfElement})
	b := a.Clone()
	b.StripLeadingWhitespaceIfNecessary()
	b.InlineContext.Nodes[0].Flags = 0
	assert.Equal(t, "  a", textOf(a))
	assert.Equal(t, FirstFragmentOfElement, a.InlineContext.Nodes[0].Flags)
}

func TestConcurrentAddChild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame")
	defer teardown()
	//
	pmap := style.InheritFrom(nil)
	parent := NewFlow(Block, NewFragment(0, style.PseudoNormal, pmap, nil, 0, nil))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			parent.AddNewChild(NewFlow(Block, NewFragment(i, style.PseudoNormal, pmap, nil, 0, nil)))
		}(i)
	}
	wg.Wait()
	if parent.ChildCount() != 20 || len(parent.Children()) != 20 {
		t.Errorf("expected 20 children, have %d", parent.ChildCount())
	}
	for _, ch := range parent.Children() {
		if ch.Parent() != parent {
			t.Fatalf("expected parent link to be set for %s", ch)
		}
	}
}

func TestAbsoluteContainingBlock(t *testing.T) {
	static := style.InheritFrom(nil)
	relative := style.InheritFrom(nil)
	relative.Add("position", "relative")
	absolute := style.InheritFrom(nil)
	absolute.Add("position", "absolute")
	//
	rel := NewFlow(Block, NewFragment(1, style.PseudoNormal, relative, nil, 0, nil))
	abs := NewFlow(Block, NewFragment(2, style.PseudoNormal, absolute, nil, 0, nil))
	st := NewFlow(Block, NewFragment(3, style.PseudoNormal, static, nil, 0, nil))
	tab := NewFlow(Table, NewFragment(4, style.PseudoNormal, relative, nil, 0, TableInfo{}))
	assert.True(t, rel.IsAbsoluteContainingBlock())
	assert.True(t, abs.IsAbsoluteContainingBlock())
	assert.True(t, abs.Flags.Contains(IsAbsolutelyPositioned))
	assert.False(t, st.IsAbsoluteContainingBlock())
	assert.False(t, tab.IsAbsoluteContainingBlock())
	st.Flags |= IsRoot
	assert.True(t, st.IsAbsoluteContainingBlock())
	//
	var list AbsoluteDescendants
	list.Push(abs)
	var inner AbsoluteDescendants
	inner.Push(st)
	inner.MarkAsHavingReachedContainingBlock()
	list.PushDescendants(inner)
	rest := rel.TakeApplicableAbsoluteDescendants(list)
	assert.Equal(t, []*Flow{abs}, rest.Flows())
	assert.Equal(t, []*Flow{st}, rel.AbsDescendants.Flows())
}

func TestBubbleISizes(t *testing.T) {
	pmap := style.InheritFrom(nil)
	inline := NewInlineFlow([]*Fragment{
		textFragment(1, "abc", pmap),
		textFragment(2, "de", pmap),
	}, 0)
	inline.Finish()
	assert.Equal(t, ISizes{Min: 3, Max: 5}, inline.ISizes)
	//
	row := NewFlow(TableRow, NewFragment(3, style.PseudoNormal, pmap, nil, 0, TableRowInfo{}))
	for i := 0; i < 2; i++ {
		cell := NewFlow(TableCell, NewFragment(4+i, style.PseudoNormal, pmap, nil, 0, TableCellInfo{}))
		cell.AddNewChild(NewInlineFlow([]*Fragment{textFragment(9, "abcd", pmap)}, 0))
		cell.Children()[0].Finish()
		cell.Finish()
		row.AddNewChild(cell)
	}
	row.Finish()
	assert.Equal(t, ISizes{Min: 8, Max: 8}, row.ISizes)
	block := NewFlow(Block, NewFragment(8, style.PseudoNormal, pmap, nil, style.BubbleISizes, nil))
	block.AddNewChild(row)
	block.AddNewChild(inline)
	block.Finish()
	assert.Equal(t, ISizes{Min: 8, Max: 8}, block.ISizes)
	assert.False(t, block.Damage.Contains(style.BubbleISizes))
}
