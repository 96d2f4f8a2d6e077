package css

import (
	"strings"

	"github.com/npillmayer/boxtree/dom/style"
)

type positionKind uint8

const (
	positionUnset positionKind = iota
	positionStatic
	positionRelative
	positionSticky
	positionAbsolute
	positionFixed
)

var positionNames = [...]string{"unset", "static", "relative", "sticky", "absolute", "fixed"}

// PositionT is the value of the CSS 'position' property, together with the
// box offsets 'top', 'right', 'bottom' and 'left' for positioned boxes.
//
// Box construction distinguishes three groups: static boxes (unset counts as
// static), positioned boxes in flow (relative, sticky), which are containing
// blocks for absolutely positioned descendants, and boxes out of flow
// (absolute, fixed).
type PositionT struct {
	offsets []PositionOffset
	kind    positionKind
}

// PositionOffset is a box offset in one direction.
type PositionOffset struct {
	Dim DimenT
	Dir PosDir
}

// PosDir is either Top, Right, Bottom or Left.
type PosDir uint8

// Offset directions, in the order CSS lists them.
const (
	Top PosDir = iota
	Right
	Bottom
	Left
)

var offsetKeys = [4]string{"top", "right", "bottom", "left"}

// NormalizeOffsets normalizes offsets into a 4-way slice, indexed by PosDir.
// Missing directions get a zero dimension, invalid ones are dropped.
func NormalizeOffsets(offsets []PositionOffset) []PositionOffset {
	norm := ZeroOffsets()
	for _, o := range offsets {
		if o.Dir <= Left {
			norm[o.Dir] = o
		}
	}
	return norm
}

// ZeroOffsets returns (Top, Right, Bottom, Left) = (0, 0, 0, 0).
func ZeroOffsets() []PositionOffset {
	zeros := make([]PositionOffset, 4)
	for i := range zeros {
		zeros[i].Dir = PosDir(i)
	}
	return zeros
}

// Static creates a CSS position of value `static`.
func Static() PositionT {
	return PositionT{kind: positionStatic}
}

// Relative creates a CSS position of value `relative`, given optional
// offsets. Offsets may be provided partially or not at all.
func Relative(offsets []PositionOffset) PositionT {
	return PositionT{kind: positionRelative, offsets: NormalizeOffsets(offsets)}
}

// Sticky creates a CSS position of value `sticky`.
func Sticky(offsets []PositionOffset) PositionT {
	return PositionT{kind: positionSticky, offsets: NormalizeOffsets(offsets)}
}

// Absolute creates a CSS position of value `absolute`.
func Absolute(offsets []PositionOffset) PositionT {
	return PositionT{kind: positionAbsolute, offsets: NormalizeOffsets(offsets)}
}

// Fixed creates a CSS position of value `fixed`.
func Fixed(offsets []PositionOffset) PositionT {
	return PositionT{kind: positionFixed, offsets: NormalizeOffsets(offsets)}
}

// Position returns a position from a property string, without offsets.
// Illegal input results in an unset position.
func Position(p style.Property) PositionT {
	switch strings.ToLower(strings.TrimSpace(string(p))) {
	case "static":
		return Static()
	case "relative":
		return Relative(nil)
	case "sticky":
		return Sticky(nil)
	case "absolute":
		return Absolute(nil)
	case "fixed":
		return Fixed(nil)
	}
	return PositionT{}
}

// PositionOf returns the computed position of a style. Positioned boxes
// get their offsets; offsets which cannot be parsed are zero.
func PositionOf(pmap *style.PropertyMap) PositionT {
	pos := Position(style.GetProperty(pmap, "position"))
	if pos.IsStatic() {
		return pos
	}
	var offsets []PositionOffset
	for dir, key := range offsetKeys {
		d, err := ParseDimen(style.GetProperty(pmap, key))
		if err != nil {
			tracer().Debugf("position offset %s: %v", key, err)
			continue
		}
		offsets = append(offsets, PositionOffset{Dim: d, Dir: PosDir(dir)})
	}
	pos.offsets = NormalizeOffsets(offsets)
	return pos
}

// Offsets returns the box offsets of a positioned box, indexed by PosDir,
// or nil for static boxes.
func (p PositionT) Offsets() []PositionOffset {
	return p.offsets
}

func (p PositionT) String() string {
	return positionNames[p.kind]
}

// IsUnset returns true if p is unset.
func (p PositionT) IsUnset() bool {
	return p.kind == positionUnset
}

// IsStatic returns true for static positions. Unset positions count as static.
func (p PositionT) IsStatic() bool {
	return p.kind <= positionStatic
}

// IsRelative returns true for relative positions.
func (p PositionT) IsRelative() bool {
	return p.kind == positionRelative
}

// IsSticky returns true for sticky positions.
func (p PositionT) IsSticky() bool {
	return p.kind == positionSticky
}

// IsAbsolute returns true for absolute positions.
func (p PositionT) IsAbsolute() bool {
	return p.kind == positionAbsolute
}

// IsFixed returns true for fixed positions.
func (p PositionT) IsFixed() bool {
	return p.kind == positionFixed
}

// IsOutOfFlow returns true for absolute and fixed positions.
func (p PositionT) IsOutOfFlow() bool {
	return p.kind >= positionAbsolute
}

// --- Matching --------------------------------------------------------------

// Match starts a type switch on a position:
//
//	switch m := pos.Match(); m {
//	case m.Absolute(&offsets):
//	    …
//	}
func (p PositionT) Match() *PMatcher {
	return &PMatcher{pos: p}
}

// PMatcher matches positions by kind, optionally extracting the offsets.
type PMatcher struct {
	pos PositionT
}

func (m *PMatcher) kind(k positionKind, o *[]PositionOffset) *PMatcher {
	if m.pos.kind != k {
		return nil
	}
	if o != nil {
		*o = m.pos.offsets
	}
	return m
}

// IsKind matches positions of the same kind as p.
func (m *PMatcher) IsKind(p PositionT) *PMatcher { return m.kind(p.kind, nil) }

// Relative matches relative positions.
func (m *PMatcher) Relative(o *[]PositionOffset) *PMatcher { return m.kind(positionRelative, o) }

// Sticky matches sticky positions.
func (m *PMatcher) Sticky(o *[]PositionOffset) *PMatcher { return m.kind(positionSticky, o) }

// Absolute matches absolute positions.
func (m *PMatcher) Absolute(o *[]PositionOffset) *PMatcher { return m.kind(positionAbsolute, o) }

// Fixed matches fixed positions.
func (m *PMatcher) Fixed(o *[]PositionOffset) *PMatcher { return m.kind(positionFixed, o) }

// PositionPatterns holds a result per position kind, for PositionPattern.
// Static positions select Default.
type PositionPatterns[T any] struct {
	Unset    T
	Relative T
	Sticky   T
	Absolute T
	Fixed    T
	Default  T
}

// PositionPattern starts a pattern match on a position, selecting one of a
// set of results by the position's kind.
func PositionPattern[T any](p PositionT) *PMatchExpr[T] {
	return &PMatchExpr[T]{pos: p}
}

// PMatchExpr is a pattern match expression on a position. It is
// instantiated with PositionPattern.
type PMatchExpr[T any] struct {
	pos PositionT
}

// OneOf selects the result for the position's kind.
func (m *PMatchExpr[T]) OneOf(patterns PositionPatterns[T]) T {
	switch m.pos.kind {
	case positionUnset:
		return patterns.Unset
	case positionRelative:
		return patterns.Relative
	case positionSticky:
		return patterns.Sticky
	case positionAbsolute:
		return patterns.Absolute
	case positionFixed:
		return patterns.Fixed
	}
	return patterns.Default
}

// With extracts the offsets of the position matched.
func (m *PMatchExpr[T]) With(o *[]PositionOffset) *PMatchExpr[T] {
	if o != nil {
		*o = m.pos.offsets
	}
	return m
}

// Const returns x, to be used as a pattern result after With.
func (m *PMatchExpr[T]) Const(x T) T {
	return x
}
