package css

import (
	"strings"

	"github.com/npillmayer/boxtree/dom/style"
)

// Direction is an enum type for CSS property 'direction'.
type Direction uint8

// Inline base directions.
const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// DirectionOf returns the computed inline base direction of a style.
func DirectionOf(pmap *style.PropertyMap) Direction {
	if strings.ToLower(style.GetProperty(pmap, "direction").String()) == "rtl" {
		return RightToLeft
	}
	return LeftToRight
}

// UnicodeBidi is an enum type for CSS property 'unicode-bidi'.
type UnicodeBidi uint8

// Values for 'unicode-bidi'.
const (
	BidiNormal UnicodeBidi = iota
	BidiEmbed
	BidiIsolate
	BidiOverride
	BidiIsolateOverride
	BidiPlaintext
)

var unicodeBidiNames = [...]string{"normal", "embed", "isolate", "bidi-override",
	"isolate-override", "plaintext"}

func (ub UnicodeBidi) String() string {
	return unicodeBidiNames[ub]
}

// UnicodeBidiOf returns the computed 'unicode-bidi' value of a style.
func UnicodeBidiOf(pmap *style.PropertyMap) UnicodeBidi {
	v := strings.ToLower(style.GetProperty(pmap, "unicode-bidi").String())
	for i, name := range unicodeBidiNames {
		if v == name {
			return UnicodeBidi(i)
		}
	}
	return BidiNormal
}

// WhiteSpace is an enum type for CSS property 'white-space'.
type WhiteSpace uint8

// Values for 'white-space'.
const (
	WhiteSpaceNormal WhiteSpace = iota
	WhiteSpacePre
	WhiteSpaceNowrap
	WhiteSpacePreWrap
	WhiteSpacePreLine
	WhiteSpaceBreakSpaces
)

var whiteSpaceNames = [...]string{"normal", "pre", "nowrap", "pre-wrap", "pre-line", "break-spaces"}

func (ws WhiteSpace) String() string {
	return whiteSpaceNames[ws]
}

// PreserveNewlines is true if segment breaks are not collapsed.
func (ws WhiteSpace) PreserveNewlines() bool {
	return ws == WhiteSpacePre || ws == WhiteSpacePreWrap || ws == WhiteSpacePreLine ||
		ws == WhiteSpaceBreakSpaces
}

// PreserveSpaces is true if spaces and tabs are not collapsed.
func (ws WhiteSpace) PreserveSpaces() bool {
	return ws == WhiteSpacePre || ws == WhiteSpacePreWrap || ws == WhiteSpaceBreakSpaces
}

// AllowWrap is true if lines may be broken at soft wrap opportunities.
func (ws WhiteSpace) AllowWrap() bool {
	return ws != WhiteSpacePre && ws != WhiteSpaceNowrap
}

// WhiteSpaceOf returns the computed 'white-space' value of a style.
func WhiteSpaceOf(pmap *style.PropertyMap) WhiteSpace {
	v := strings.ToLower(style.GetProperty(pmap, "white-space").String())
	for i, name := range whiteSpaceNames {
		if v == name {
			return WhiteSpace(i)
		}
	}
	return WhiteSpaceNormal
}

// WritingMode is an enum type for CSS property 'writing-mode'.
type WritingMode uint8

// Values for 'writing-mode'.
const (
	HorizontalTB WritingMode = iota
	VerticalRL
	VerticalLR
)

// IsVertical is true for vertical writing modes.
func (wm WritingMode) IsVertical() bool {
	return wm != HorizontalTB
}

// WritingModeOf returns the computed writing mode of a style.
func WritingModeOf(pmap *style.PropertyMap) WritingMode {
	switch strings.ToLower(style.GetProperty(pmap, "writing-mode").String()) {
	case "vertical-rl", "sideways-rl", "tb-rl", "tb":
		return VerticalRL
	case "vertical-lr", "sideways-lr":
		return VerticalLR
	}
	return HorizontalTB
}

// IsFragmentable returns true if boxes for a style may be broken across
// fragmentation containers, e.g. pages. This is the extension property
// '-x-fragmentable'.
func IsFragmentable(pmap *style.PropertyMap) bool {
	return style.GetProperty(pmap, "-x-fragmentable") == "true"
}
