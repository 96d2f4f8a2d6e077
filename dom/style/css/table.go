package css

import (
	"strings"

	"github.com/npillmayer/boxtree/dom/style"
)

// CaptionSide is an enum type for CSS property 'caption-side'.
type CaptionSide uint8

// Caption placements.
const (
	CaptionTop CaptionSide = iota
	CaptionBottom
)

func (cs CaptionSide) String() string {
	if cs == CaptionBottom {
		return "bottom"
	}
	return "top"
}

// CaptionSideOf returns the computed caption side of a style.
func CaptionSideOf(pmap *style.PropertyMap) CaptionSide {
	if strings.ToLower(style.GetProperty(pmap, "caption-side").String()) == "bottom" {
		return CaptionBottom
	}
	return CaptionTop
}

// EmptyCellsHidden returns true for 'empty-cells: hide'.
func EmptyCellsHidden(pmap *style.PropertyMap) bool {
	return strings.ToLower(style.GetProperty(pmap, "empty-cells").String()) == "hide"
}

// FlexDirection is an enum type for CSS property 'flex-direction'.
type FlexDirection uint8

// Flex main axis directions.
const (
	FlexRow FlexDirection = iota
	FlexRowReverse
	FlexColumn
	FlexColumnReverse
)

// IsRow is true if the main axis of a flex container is its inline axis.
func (fd FlexDirection) IsRow() bool {
	return fd == FlexRow || fd == FlexRowReverse
}

// FlexDirectionOf returns the computed flex direction of a style.
func FlexDirectionOf(pmap *style.PropertyMap) FlexDirection {
	switch strings.ToLower(style.GetProperty(pmap, "flex-direction").String()) {
	case "row-reverse":
		return FlexRowReverse
	case "column":
		return FlexColumn
	case "column-reverse":
		return FlexColumnReverse
	}
	return FlexRow
}

// IsMulticol returns true if a style establishes a multi-column container,
// i.e. either 'column-count' or 'column-width' is not 'auto'.
func IsMulticol(pmap *style.PropertyMap) bool {
	isSet := func(key string) bool {
		v := strings.ToLower(style.GetProperty(pmap, key).String())
		return v != "" && v != "auto" && v != "normal"
	}
	return isSet("column-count") || isSet("column-width")
}
