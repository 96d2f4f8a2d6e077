package flow

import (
	"fmt"

	"github.com/npillmayer/boxtree/dom/style/css"
)

// ISizes are the intrinsic inline sizes of a flow or fragment, measured in
// grapheme clusters. Min is the size of the widest unbreakable content, Max
// the size without any line breaks.
type ISizes struct {
	Min, Max int
}

func (is ISizes) String() string {
	return fmt.Sprintf("[%d…%d]", is.Min, is.Max)
}

func (is ISizes) union(other ISizes) ISizes {
	return ISizes{Min: max(is.Min, other.Min), Max: max(is.Max, other.Max)}
}

func (is ISizes) sum(other ISizes) ISizes {
	return ISizes{Min: is.Min + other.Min, Max: is.Max + other.Max}
}

// BubbleISizes computes the intrinsic inline sizes of f from its content and
// its in-flow children. Children are expected to have been finished already.
func (f *Flow) BubbleISizes() {
	var is ISizes
	switch f.Kind {
	case Inline:
		for _, frag := range f.Content {
			fis := frag.ISizes()
			is.Min = max(is.Min, fis.Min)
			is.Max += fis.Max
		}
		f.ISizes = is
		return
	case TableRow:
		is = f.sumChildren()
	case Flex:
		if f.Fragment.Style != nil && css.FlexDirectionOf(f.Fragment.Style).IsRow() {
			is = f.sumChildren()
		} else {
			is = f.unionChildren()
		}
	default:
		is = f.unionChildren()
	}
	if f.Fragment != nil && IsReplaced(f.Fragment.Specific) {
		is = is.union(f.Fragment.ISizes())
	}
	for _, m := range f.Markers {
		is = is.union(m.ISizes())
	}
	f.ISizes = is
}

func inFlow(ch *Flow) bool {
	return !ch.Flags.Contains(IsAbsolutelyPositioned)
}

func (f *Flow) sumChildren() (is ISizes) {
	for _, ch := range f.Children() {
		if inFlow(ch) {
			is = is.sum(ch.ISizes)
		}
	}
	return
}

func (f *Flow) unionChildren() (is ISizes) {
	for _, ch := range f.Children() {
		if inFlow(ch) {
			is = is.union(ch.ISizes)
		}
	}
	return
}
