package flow

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/css"
)

// OpaqueNode identifies the document node a box originates from. Pseudo-elements
// share the identity of their element and are told apart by their PseudoElement
// category. Values must be comparable.
type OpaqueNode interface{}

// Fragment is a leaf content unit of the box tree.
type Fragment struct {
	Node          OpaqueNode          // originating node
	Pseudo        style.PseudoElement // pseudo-element category of the originating node
	Style         *style.PropertyMap
	SelectedStyle *style.PropertyMap
	Damage        style.RestyleDamage
	Specific      SpecificInfo
	InlineContext *InlineFragmentContext // enclosing inline elements, if any
	Flags         FragmentFlags
	id            uint32
}

var fragmentSerial uint32

// NewFragment creates a fragment for a node (or one of its pseudo-elements).
func NewFragment(node OpaqueNode, pseudo style.PseudoElement, pmap *style.PropertyMap,
	selected *style.PropertyMap, damage style.RestyleDamage, specific SpecificInfo) *Fragment {
	//
	if specific == nil {
		specific = Generic{}
	}
	return &Fragment{
		Node:          node,
		Pseudo:        pseudo,
		Style:         pmap,
		SelectedStyle: selected,
		Damage:        damage,
		Specific:      specific,
		id:            atomic.AddUint32(&fragmentSerial, 1),
	}
}

// ID is a debugging identifier, unique within a process.
func (f *Fragment) ID() uint32 {
	return f.id
}

func (f *Fragment) String() string {
	return fmt.Sprintf("%s#%d", f.Specific, f.id)
}

// Clone returns a copy of f which may be modified without affecting f. The
// payload is shared except for unscanned text, which is modified by
// white-space stripping.
func (f *Fragment) Clone() *Fragment {
	c := *f
	if t, ok := f.Specific.(*UnscannedText); ok {
		c.Specific = &UnscannedText{Text: t.Text}
	}
	c.InlineContext = f.InlineContext.clone()
	return &c
}

// CreateSimilarAnonymousFragment creates a fragment with the identity of f, but
// with a different style and payload.
func (f *Fragment) CreateSimilarAnonymousFragment(pmap *style.PropertyMap, specific SpecificInfo) *Fragment {
	return NewFragment(f.Node, f.Pseudo, pmap, f.SelectedStyle, f.Damage, specific)
}

// IsPositioned is true if the fragment's style has a position other than static.
func (f *Fragment) IsPositioned() bool {
	return !css.PositionOf(f.Style).IsStatic()
}

// IsAbsolutelyPositioned is true for absolute and fixed positioning.
func (f *Fragment) IsAbsolutelyPositioned() bool {
	return css.PositionOf(f.Style).IsOutOfFlow()
}

// WhiteSpace returns the computed 'white-space' of the fragment.
func (f *Fragment) WhiteSpace() css.WhiteSpace {
	return css.WhiteSpaceOf(f.Style)
}

// RepairStyle replaces the style of a fragment after a restyle.
func (f *Fragment) RepairStyle(pmap *style.PropertyMap) {
	f.Style = pmap
}

// IsFrom is true if the fragment originates from node and pseudo.
func (f *Fragment) IsFrom(node OpaqueNode, pseudo style.PseudoElement) bool {
	return f.Node == node && f.Pseudo == pseudo
}

// ISizes returns the intrinsic inline sizes of a fragment.
func (f *Fragment) ISizes() ISizes {
	switch s := f.Specific.(type) {
	case *ScannedText:
		return ISizes{Min: s.MinISize, Max: s.MaxISize}
	case *UnscannedText:
		n := len([]rune(s.Text))
		return ISizes{Min: n, Max: n}
	case *InlineBlock:
		return s.Flow.ISizes
	case *InlineAbsoluteHypothetical, *InlineAbsolute:
		return ISizes{}
	case *Image, *Media, *Iframe, Canvas, Svg:
		return ISizes{Min: 1, Max: 1}
	}
	return ISizes{}
}

// --- Inline context --------------------------------------------------------

// InlineFragmentNodeInfo describes an inline element enclosing a fragment.
type InlineFragmentNodeInfo struct {
	Address       OpaqueNode
	Pseudo        style.PseudoElement
	Style         *style.PropertyMap
	SelectedStyle *style.PropertyMap
	Flags         InlineNodeFlags
}

// InlineFragmentContext lists the inline elements enclosing a fragment,
// innermost first.
type InlineFragmentContext struct {
	Nodes []InlineFragmentNodeInfo
}

func (ctx *InlineFragmentContext) clone() *InlineFragmentContext {
	if ctx == nil {
		return nil
	}
	nodes := make([]InlineFragmentNodeInfo, len(ctx.Nodes))
	copy(nodes, ctx.Nodes)
	return &InlineFragmentContext{Nodes: nodes}
}

// Contains is true if the context lists an inline element.
func (ctx *InlineFragmentContext) Contains(node OpaqueNode, pseudo style.PseudoElement) bool {
	if ctx == nil {
		return false
	}
	for _, n := range ctx.Nodes {
		if n.Address == node && n.Pseudo == pseudo {
			return true
		}
	}
	return false
}

// AddInlineContextStyle adds an enclosing inline element, which will be outside
// of all inline elements already known.
func (f *Fragment) AddInlineContextStyle(info InlineFragmentNodeInfo) {
	if f.InlineContext == nil {
		f.InlineContext = &InlineFragmentContext{}
	}
	f.InlineContext.Nodes = append(f.InlineContext.Nodes, info)
}

// MeldWithNextInlineFragment is called when the fragment following f is
// removed. f inherits the 'last fragment' markers of the removed fragment for
// the inline elements they share.
func (f *Fragment) MeldWithNextInlineFragment(next *Fragment) {
	f.meld(next, LastFragmentOfElement)
}

// MeldWithPrevInlineFragment is called when the fragment preceding f is
// removed. f inherits the 'first fragment' markers of the removed fragment for
// the inline elements they share.
func (f *Fragment) MeldWithPrevInlineFragment(prev *Fragment) {
	f.meld(prev, FirstFragmentOfElement)
}

func (f *Fragment) meld(removed *Fragment, flag InlineNodeFlags) {
	if f.InlineContext == nil || removed.InlineContext == nil {
		return
	}
	mine, theirs := f.InlineContext.Nodes, removed.InlineContext.Nodes
	// compare from the outermost element inwards
	for i, j := len(mine)-1, len(theirs)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		if theirs[j].Flags&flag == 0 || theirs[j].Address != mine[i].Address {
			continue
		}
		mine[i].Flags |= flag
	}
}

// --- White-space stripping -------------------------------------------------

// WhitespaceStrippingResult tells what is left of a fragment after stripping
// collapsible white-space from one of its edges.
type WhitespaceStrippingResult uint8

// Outcomes of white-space stripping.
const (
	RetainFragment WhitespaceStrippingResult = iota
	FragmentContainedOnlyBidiControlCharacters
	FragmentContainedOnlyWhitespace
)

// IsBidiControl is true for the invisible characters controlling bidi
// embedding, overrides and isolation.
func IsBidiControl(r rune) bool {
	switch {
	case r >= '\u202A' && r <= '\u202E':
		return true
	case r >= '\u2066' && r <= '\u2069':
		return true
	case r == '\u200E', r == '\u200F', r == '\u061C':
		return true
	}
	return false
}

// IsCollapsibleWhitespace is true for the characters CSS treats as white-space.
func IsCollapsibleWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func classifyUnscanned(text string) WhitespaceStrippingResult {
	if text == "" {
		return FragmentContainedOnlyWhitespace
	}
	for _, r := range text {
		if !IsBidiControl(r) {
			return RetainFragment
		}
	}
	return FragmentContainedOnlyBidiControlCharacters
}

// StripLeadingWhitespaceIfNecessary removes collapsible white-space from the
// start of an unscanned text fragment. Bidi control characters are kept.
func (f *Fragment) StripLeadingWhitespaceIfNecessary() WhitespaceStrippingResult {
	if f.WhiteSpace().PreserveSpaces() {
		return RetainFragment
	}
	t, ok := f.Specific.(*UnscannedText)
	if !ok {
		return RetainFragment
	}
	var b strings.Builder
	modified := false
	for i, r := range t.Text {
		if IsBidiControl(r) {
			b.WriteRune(r)
			continue
		}
		if IsCollapsibleWhitespace(r) {
			modified = true
			continue
		}
		if modified {
			b.WriteString(t.Text[i:])
		}
		break
	}
	if modified {
		t.Text = b.String()
	}
	return classifyUnscanned(t.Text)
}

// StripTrailingWhitespaceIfNecessary removes collapsible white-space from the
// end of an unscanned text fragment. Trailing bidi control characters are kept.
func (f *Fragment) StripTrailingWhitespaceIfNecessary() WhitespaceStrippingResult {
	if f.WhiteSpace().PreserveSpaces() {
		return RetainFragment
	}
	t, ok := f.Specific.(*UnscannedText)
	if !ok {
		return RetainFragment
	}
	runes := []rune(t.Text)
	var bidi []rune // in reverse order
	end := 0
	for i := len(runes) - 1; i >= 0; i-- {
		r := runes[i]
		if IsBidiControl(r) {
			bidi = append(bidi, r)
			continue
		}
		if IsCollapsibleWhitespace(r) {
			continue
		}
		end = i + 1
		break
	}
	text := string(runes[:end])
	for i := len(bidi) - 1; i >= 0; i-- {
		text += string(bidi[i])
	}
	t.Text = text
	return classifyUnscanned(t.Text)
}
