package flow

import (
	"fmt"

	"github.com/npillmayer/boxtree/dom/style/css"
)

// SpecificInfo is the payload of a fragment. The set of payload types is
// closed; clients switch over the types declared in this file.
type SpecificInfo interface {
	fmt.Stringer
	isSpecific()
}

// Generic is the payload of fragments without content of their own, e.g. the
// main fragment of a block.
type Generic struct{}

// UnscannedText is text which has not yet been run through the text-run
// scanner.
type UnscannedText struct {
	Text string
}

// ScannedText is a range of a scanned text run.
type ScannedText struct {
	Run       *TextRun
	Start     int // byte offset into Run.Text
	End       int // byte offset into Run.Text
	BidiLevel uint8
	MinISize  int // longest unbreakable segment, in grapheme clusters
	MaxISize  int // whole range, in grapheme clusters
}

// TextRun is a run of text, concatenated from one or more fragments, after
// white-space processing.
type TextRun struct {
	Text  string
	RTL   bool // paragraph direction
	Count int  // number of fragments sharing this run
}

// Image is a replaced image, including list-marker images.
type Image struct {
	URL string
}

// Media is a replaced <video> or <audio> element.
type Media struct {
	Src string
}

// Iframe is a replaced <iframe>.
type Iframe struct {
	Src string
}

// Canvas is a replaced <canvas>.
type Canvas struct{}

// Svg is a replaced inline <svg>.
type Svg struct{}

// TableWrapperInfo is the payload of the main fragment of a table wrapper.
type TableWrapperInfo struct{}

// TableInfo is the payload of the main fragment of a table.
type TableInfo struct{}

// TableRowInfo is the payload of the main fragment of rows and row groups.
type TableRowInfo struct{}

// TableCellInfo is the payload of the main fragment of a table cell.
type TableCellInfo struct{}

// TableColumn is a table column, spanning one or more columns.
type TableColumn struct {
	Span int
}

// MulticolInfo is the payload of the main fragment of a multi-column container.
type MulticolInfo struct{}

// MulticolColumnInfo is the payload of the main fragment of a column.
type MulticolColumnInfo struct{}

// InlineBlock wraps the flow of an inline-block or inline-flex element.
type InlineBlock struct {
	Flow *Flow
}

// InlineAbsoluteHypothetical wraps the flow of an absolutely positioned inline
// element, at the position it would have had if statically positioned.
type InlineAbsoluteHypothetical struct {
	Flow *Flow
}

// InlineAbsolute wraps an absolutely positioned flow which is a child of an
// inline element.
type InlineAbsolute struct {
	Flow *Flow
}

// GeneratedContent is an item of CSS 'content' which needs further
// resolution, e.g. counters and quotes.
type GeneratedContent struct {
	Item css.ContentItem
}

func (Generic) isSpecific() {}
func (*UnscannedText) isSpecific() {}
func (*ScannedText) isSpecific() {}
func (*Image) isSpecific() {}
func (*Media) isSpecific() {}
func (*Iframe) isSpecific() {}
func (Canvas) isSpecific() {}
func (Svg) isSpecific() {}
func (TableWrapperInfo) isSpecific() {}
func (TableInfo) isSpecific() {}
func (TableRowInfo) isSpecific() {}
func (TableCellInfo) isSpecific() {}
func (*TableColumn) isSpecific() {}
func (MulticolInfo) isSpecific() {}
func (MulticolColumnInfo) isSpecific() {}
func (*InlineBlock) isSpecific() {}
func (*InlineAbsoluteHypothetical) isSpecific() {}
func (*InlineAbsolute) isSpecific() {}
func (*GeneratedContent) isSpecific() {}

func (Generic) String() string { return "Generic" }
func (t *UnscannedText) String() string { return fmt.Sprintf("UnscannedText(%q)", t.Text) }
func (t *ScannedText) String() string { return fmt.Sprintf("ScannedText(%q)", t.Text()) }
func (i *Image) String() string { return fmt.Sprintf("Image(%s)", i.URL) }
func (m *Media) String() string { return fmt.Sprintf("Media(%s)", m.Src) }
func (i *Iframe) String() string { return fmt.Sprintf("Iframe(%s)", i.Src) }
func (Canvas) String() string { return "Canvas" }
func (Svg) String() string { return "Svg" }
func (TableWrapperInfo) String() string { return "TableWrapper" }
func (TableInfo) String() string { return "Table" }
func (TableRowInfo) String() string { return "TableRow" }
func (TableCellInfo) String() string { return "TableCell" }
func (c *TableColumn) String() string { return fmt.Sprintf("TableColumn(span=%d)", c.Span) }
func (MulticolInfo) String() string { return "Multicol" }
func (MulticolColumnInfo) String() string { return "MulticolColumn" }
func (ib *InlineBlock) String() string { return fmt.Sprintf("InlineBlock(%s)", ib.Flow) }
func (ia *InlineAbsoluteHypothetical) String() string {
	return fmt.Sprintf("InlineAbsoluteHypothetical(%s)", ia.Flow)
}
func (ia *InlineAbsolute) String() string { return fmt.Sprintf("InlineAbsolute(%s)", ia.Flow) }
func (gc *GeneratedContent) String() string { return fmt.Sprintf("GeneratedContent(%s)", gc.Item) }

// Text returns the text range of a scanned text fragment.
func (t *ScannedText) Text() string {
	if t.Run == nil {
		return ""
	}
	return t.Run.Text[t.Start:t.End]
}

// WrappedFlow returns the flow owned by a wrapper payload, or nil.
func WrappedFlow(info SpecificInfo) *Flow {
	switch s := info.(type) {
	case *InlineBlock:
		return s.Flow
	case *InlineAbsoluteHypothetical:
		return s.Flow
	case *InlineAbsolute:
		return s.Flow
	}
	return nil
}

// IsReplaced is true for payloads of replaced content.
func IsReplaced(info SpecificInfo) bool {
	switch info.(type) {
	case *Image, *Media, *Iframe, Canvas, Svg:
		return true
	}
	return false
}
