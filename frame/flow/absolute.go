package flow

// AbsoluteDescendant is an absolutely positioned flow on its way up to its
// containing block.
type AbsoluteDescendant struct {
	Flow *Flow
	// set by a positioned inline element which will be the containing block
	HasReachedContainingBlock bool
}

// AbsoluteDescendants is a list of absolutely positioned flows in document
// order. Lists are only ever concatenated.
type AbsoluteDescendants []AbsoluteDescendant

// Push appends a flow.
func (abs *AbsoluteDescendants) Push(f *Flow) {
	*abs = append(*abs, AbsoluteDescendant{Flow: f})
}

// PushDescendants appends all entries of another list.
func (abs *AbsoluteDescendants) PushDescendants(other AbsoluteDescendants) {
	*abs = append(*abs, other...)
}

// MarkAsHavingReachedContainingBlock marks every entry.
func (abs AbsoluteDescendants) MarkAsHavingReachedContainingBlock() {
	for i := range abs {
		abs[i].HasReachedContainingBlock = true
	}
}

// Flows returns the flows of the list.
func (abs AbsoluteDescendants) Flows() []*Flow {
	flows := make([]*Flow, len(abs))
	for i, d := range abs {
		flows[i] = d.Flow
	}
	return flows
}

// Clone returns a copy which may be modified independently.
func (abs AbsoluteDescendants) Clone() AbsoluteDescendants {
	if abs == nil {
		return nil
	}
	c := make(AbsoluteDescendants, len(abs))
	copy(c, abs)
	return c
}
