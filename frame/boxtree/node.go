package boxtree

import (
	"encoding/base64"
	"strings"

	"github.com/h2non/filetype"
	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/boxtree/frame/flow"
)

// NodeType is the type of a document node.
type NodeType uint8

// Document node types relevant for box construction.
const (
	ElementNode NodeType = iota
	TextNode
)

// DocumentNode is the read-only view of a styled document node the
// constructor works on. Pseudo-elements are document nodes of their own,
// sharing the identity (Opaque) of their element.
//
// Children returns the node's children in document order, including the
// nodes of generated pseudo-elements: ::before first, ::after last.
type DocumentNode interface {
	Opaque() flow.OpaqueNode
	Type() NodeType
	Pseudo() style.PseudoElement
	ElementName() string // lowercase tag name; empty for text nodes
	Attribute(key string) (string, bool)
	Styles() *style.PropertyMap
	Children() []DocumentNode
	TextContent() string
	RestyleDamage() style.RestyleDamage
	ClearRestyleDamage()
}

// isReplacedContent is true for nodes whose content is not given by their
// children: text, images, media, iframes, canvases, inline SVG and objects
// embedding image data. For pseudo-elements it depends on the category.
func isReplacedContent(n DocumentNode) bool {
	if n.Pseudo() != style.PseudoNormal {
		return n.Pseudo().IsReplacedContent()
	}
	if n.Type() == TextNode {
		return true
	}
	switch n.ElementName() {
	case "img", "video", "audio", "iframe", "canvas", "svg":
		return true
	case "object":
		_, hasType := n.Attribute("type")
		data, hasData := n.Attribute("data")
		return !hasType && hasData && isImageData(data)
	}
	return false
}

// imageDataTypes maps the data URI prefixes of supported image formats to
// the file type checked against base64 payloads.
var imageDataTypes = []struct{ prefix, ext string }{
	{"data:image/png", "png"},
	{"data:image/gif", "gif"},
	{"data:image/jpeg", "jpg"},
}

// isImageData is true for data URIs of images in a supported format. Base64
// payloads have to carry the magic number of the declared format.
func isImageData(uri string) bool {
	for _, t := range imageDataTypes {
		if !strings.HasPrefix(uri, t.prefix) {
			continue
		}
		header, payload, ok := strings.Cut(uri, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return true
		}
		if len(payload) > 400 { // filetype looks at the first 262 bytes
			payload = payload[:400]
		}
		data := make([]byte, base64.StdEncoding.DecodedLen(len(payload)))
		n, _ := base64.StdEncoding.Decode(data, []byte(payload))
		return filetype.Is(data[:n], t.ext)
	}
	return false
}

// isIgnorableWhitespace is true for text nodes which consist of white-space
// only, with white-space not preserving newlines.
func isIgnorableWhitespace(n DocumentNode) bool {
	if n.Type() != TextNode || n.Pseudo() != style.PseudoNormal {
		return false
	}
	if css.WhiteSpaceOf(n.Styles()).PreserveNewlines() {
		return false
	}
	for _, r := range n.TextContent() {
		if !flow.IsCollapsibleWhitespace(r) {
			return false
		}
	}
	return true
}

// isContent is false for nodes which do not constitute content of a table
// cell when deciding about 'empty-cells'.
func isContent(n DocumentNode) bool {
	return n.Pseudo() == style.PseudoNormal && !isIgnorableWhitespace(n)
}

// hasPaddingOrBorder is true if a style has non-zero padding or border on
// any side.
func hasPaddingOrBorder(pmap *style.PropertyMap) bool {
	for _, side := range css.Sides {
		if !css.PaddingOf(pmap, side).IsZero() || !css.BorderWidthOf(pmap, side).IsZero() {
			return true
		}
	}
	return false
}

// bidiControlChars returns the control characters to wrap around the content
// of an inline element, given 'unicode-bidi' and 'direction'.
func bidiControlChars(pmap *style.PropertyMap) (open, close string, ok bool) {
	rtl := css.DirectionOf(pmap) == css.RightToLeft
	pick := func(ltr, rtlChar string) string {
		if rtl {
			return rtlChar
		}
		return ltr
	}
	switch css.UnicodeBidiOf(pmap) {
	case css.BidiEmbed:
		return pick("\u202A", "\u202B"), "\u202C", true
	case css.BidiIsolate:
		return pick("\u2066", "\u2067"), "\u2069", true
	case css.BidiOverride:
		return pick("\u202D", "\u202E"), "\u202C", true
	case css.BidiIsolateOverride:
		return pick("\u2068\u202D", "\u2068\u202E"), "\u202C\u2069", true
	case css.BidiPlaintext:
		return "\u2068", "\u2069", true
	}
	return "", "", false
}

// specificInfoFor returns the payload of the main fragment of an element.
func specificInfoFor(n DocumentNode) flow.SpecificInfo {
	if n.Type() != ElementNode || n.Pseudo() != style.PseudoNormal {
		return flow.Generic{}
	}
	attr := func(key string) string {
		v, _ := n.Attribute(key)
		return v
	}
	switch n.ElementName() {
	case "iframe":
		return &flow.Iframe{Src: attr("src")}
	case "img":
		return &flow.Image{URL: attr("src")}
	case "video", "audio":
		return &flow.Media{Src: attr("src")}
	case "object":
		if isReplacedContent(n) {
			return &flow.Image{URL: attr("data")}
		}
	case "table":
		return flow.TableWrapperInfo{}
	case "col", "colgroup":
		return &flow.TableColumn{Span: spanOf(n)}
	case "td", "th":
		return flow.TableCellInfo{}
	case "tr", "tbody", "thead", "tfoot":
		return flow.TableRowInfo{}
	case "canvas":
		return flow.Canvas{}
	case "svg":
		return flow.Svg{}
	}
	return flow.Generic{}
}

// spanOf returns the 'span' attribute of a column element, at least 1.
func spanOf(n DocumentNode) int {
	s, ok := n.Attribute("span")
	if !ok {
		return 1
	}
	span := 0
	for _, r := range strings.TrimSpace(s) {
		if r < '0' || r > '9' {
			break
		}
		span = span*10 + int(r-'0')
		if span > 1000 {
			return 1000
		}
	}
	if span < 1 {
		return 1
	}
	return span
}
