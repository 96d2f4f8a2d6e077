package css

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/npillmayer/boxtree/dom/style"
)

// DisplayMode is a type for CSS property "display".
//
type DisplayMode uint32

// Flags for box context and display mode (outer and inner).
const (
	NoMode               DisplayMode = iota    // unset or error condition
	DisplayNone          DisplayMode = 0x00001 // CSS outer display = none
	BlockMode            DisplayMode = 0x00002 // CSS block context (inner or outer)
	InlineMode           DisplayMode = 0x00004 // CSS inline context
	FlowRootMode         DisplayMode = 0x00010 // CSS flow-root display property
	ListItemMode         DisplayMode = 0x00020 // CSS list-item display
	FlexMode             DisplayMode = 0x00040 // CSS inner display = flex
	GridMode             DisplayMode = 0x00080 // CSS inner display = grid
	TableMode            DisplayMode = 0x00100 // CSS table display property (inner or outer)
	InnerBlockMode       DisplayMode = 0x00200 // CSS inner block mode (inline-block)
	InnerInlineMode      DisplayMode = 0x00400 // CSS inner inline mode (paragraphs)
	TableCaptionMode     DisplayMode = 0x00800 // CSS table-caption
	TableRowGroupMode    DisplayMode = 0x01000 // CSS table-row-group
	TableHeaderGroupMode DisplayMode = 0x02000 // CSS table-header-group
	TableFooterGroupMode DisplayMode = 0x04000 // CSS table-footer-group
	TableRowMode         DisplayMode = 0x08000 // CSS table-row
	TableCellMode        DisplayMode = 0x10000 // CSS table-cell
	TableColumnMode      DisplayMode = 0x20000 // CSS table-column
	TableColumnGroupMode DisplayMode = 0x40000 // CSS table-column-group
)

// Display modes as produced by ParseDisplay for the CSS keywords.
const (
	DisplayBlock            = BlockMode | InnerBlockMode
	DisplayInline           = InlineMode | InnerInlineMode
	DisplayInlineBlock      = InlineMode | InnerBlockMode
	DisplayFlowRoot         = BlockMode | FlowRootMode
	DisplayListItem         = BlockMode | ListItemMode
	DisplayTable            = BlockMode | TableMode
	DisplayInlineTable      = InlineMode | TableMode
	DisplayFlex             = BlockMode | FlexMode
	DisplayInlineFlex       = InlineMode | FlexMode
	DisplayGrid             = BlockMode | GridMode
	DisplayTableCaption     = TableCaptionMode
	DisplayTableRowGroup    = TableRowGroupMode
	DisplayTableHeaderGroup = TableHeaderGroupMode
	DisplayTableFooterGroup = TableFooterGroupMode
	DisplayTableRow         = TableRowMode
	DisplayTableCell        = TableCellMode
	DisplayTableColumn      = TableColumnMode
	DisplayTableColumnGroup = TableColumnGroupMode
)

var allDisplayModes = []DisplayMode{
	DisplayNone, BlockMode, InlineMode, ListItemMode, FlowRootMode, FlexMode,
	GridMode, TableMode, InnerBlockMode, InnerInlineMode, TableCaptionMode,
	TableRowGroupMode, TableHeaderGroupMode, TableFooterGroupMode, TableRowMode,
	TableCellMode, TableColumnMode, TableColumnGroupMode,
}

var displayModeNames = map[DisplayMode]string{
	NoMode:               "NoMode",
	DisplayNone:          "DisplayNone",
	BlockMode:            "BlockMode",
	InlineMode:           "InlineMode",
	FlowRootMode:         "FlowRootMode",
	ListItemMode:         "ListItemMode",
	FlexMode:             "FlexMode",
	GridMode:             "GridMode",
	TableMode:            "TableMode",
	InnerBlockMode:       "InnerBlockMode",
	InnerInlineMode:      "InnerInlineMode",
	TableCaptionMode:     "TableCaptionMode",
	TableRowGroupMode:    "TableRowGroupMode",
	TableHeaderGroupMode: "TableHeaderGroupMode",
	TableFooterGroupMode: "TableFooterGroupMode",
	TableRowMode:         "TableRowMode",
	TableCellMode:        "TableCellMode",
	TableColumnMode:      "TableColumnMode",
	TableColumnGroupMode: "TableColumnGroupMode",
}

func (disp DisplayMode) String() string {
	if s, ok := displayModeNames[disp]; ok {
		return s
	}
	return disp.FullString()
}

// Outer returns outer mode
func (disp DisplayMode) Outer() DisplayMode {
	return disp & 0x0000f
}

// Inner returns inner mode
func (disp DisplayMode) Inner() DisplayMode {
	return disp &^ 0x0000f
}

// IsBlockLevel return true if it has outer display level of BlockMode.
//
// A block-level element is defined by CSS Display Level 3:
// Block-level elements are those elements of the source document that are formatted visually
// as blocks (e.g., paragraphs). The following values of the 'display' property make an element
// block-level: 'block', 'list-item', and 'table'.
//
func (disp DisplayMode) IsBlockLevel() bool {
	return disp&0x000f == BlockMode
}

// IsTablePart is true for display modes of table-internal boxes.
func (disp DisplayMode) IsTablePart() bool {
	return disp.Overlaps(TableCaptionMode | TableRowGroupMode | TableHeaderGroupMode |
		TableFooterGroupMode | TableRowMode | TableCellMode | TableColumnMode | TableColumnGroupMode)
}

// Set sets a given atomic mode within this display mode.
func (disp *DisplayMode) Set(d DisplayMode) {
	*disp = (*disp) | d
}

// Contains checks if a display mode contains a given atomic mode.
// Returns false for d = NoMode.
func (disp DisplayMode) Contains(d DisplayMode) bool {
	return d != NoMode && (disp&d > 0)
}

// Overlaps returns true if a given display mode shares at least one atomic
// mode flag with disp (excluding NoMode).
func (disp DisplayMode) Overlaps(d DisplayMode) bool {
	for _, m := range allDisplayModes {
		if disp.Contains(m) && d.Contains(m) {
			return true
		}
	}
	return false
}

// FullString returns all atomic modes set in a display mode.
func (disp DisplayMode) FullString() string {
	var b bytes.Buffer
	first := true
	for _, m := range allDisplayModes {
		if disp.Contains(m) {
			if !first {
				b.WriteString(" ")
			}
			first = false
			b.WriteString(displayModeNames[m])
		}
	}
	return b.String()
}

// Symbol returns a Unicode symbol for a mode.
func (disp DisplayMode) Symbol() string {
	if disp.IsTablePart() || disp.Contains(TableMode) {
		return "▥"
	} else if disp.Contains(ListItemMode) {
		return "▣"
	} else if disp.Contains(FlexMode) {
		return "▤"
	} else if disp.Contains(GridMode) {
		return "◰"
	} else if disp.Contains(BlockMode) || disp.Contains(InnerBlockMode) {
		return "▩"
	} else if disp.Contains(InlineMode) || disp.Contains(InnerInlineMode) {
		return "►"
	} else if disp == NoMode {
		return "–"
	}
	return "?"
}

var displayKeywords = map[string]DisplayMode{
	"none":                DisplayNone,
	"block":               DisplayBlock,
	"inline":              DisplayInline,
	"list-item":           DisplayListItem,
	"block-inline":        BlockMode | InnerInlineMode,
	"inline-block":        DisplayInlineBlock,
	"flow-root":           DisplayFlowRoot,
	"table":               DisplayTable,
	"inline-table":        DisplayInlineTable,
	"flex":                DisplayFlex,
	"inline-flex":         DisplayInlineFlex,
	"grid":                DisplayGrid,
	"table-caption":       DisplayTableCaption,
	"table-row-group":     DisplayTableRowGroup,
	"table-header-group":  DisplayTableHeaderGroup,
	"table-footer-group":  DisplayTableFooterGroup,
	"table-row":           DisplayTableRow,
	"table-cell":          DisplayTableCell,
	"table-column":        DisplayTableColumn,
	"table-column-group":  DisplayTableColumnGroup,
}

// ParseDisplay returns mode flags from a display property string (outer and inner).
func ParseDisplay(display string) (DisplayMode, error) {
	if display == "" {
		return NoMode, nil
	}
	if mode, ok := displayKeywords[strings.ToLower(display)]; ok {
		return mode, nil
	}
	return BlockMode, fmt.Errorf("unknown display mode: %s", display)
}

// DisplayOf returns the computed display mode of a style. A missing or
// unknown value is reported as NoMode.
func DisplayOf(pmap *style.PropertyMap) DisplayMode {
	return displayFromProperty(style.GetProperty(pmap, "display"))
}

// OriginalDisplayOf returns the display mode of a style before table and
// float fix-ups of the style engine. If unset, it is the computed display.
func OriginalDisplayOf(pmap *style.PropertyMap) DisplayMode {
	p := style.GetProperty(pmap, "original-display")
	if p.IsEmpty() {
		return DisplayOf(pmap)
	}
	return displayFromProperty(p)
}

func displayFromProperty(p style.Property) DisplayMode {
	mode, err := ParseDisplay(p.String())
	if err != nil {
		tracer().Errorf(err.Error())
		return NoMode
	}
	return mode
}
