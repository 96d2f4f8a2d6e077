package style

import (
	"golang.org/x/net/html"
)

// Values "default" have the following semantics:
// Treat this as an inherent UA default, which should not be instantiated in memory,
// but rather will be treated implicitely by rendering code.
// See issure https://github.com/npillmayer/tyse/issues/8
//
var nonInherited = map[string]string{
	"display":             "inline",
	"original-display":    "",
	"position":            "static",
	"float":               "none",
	"clear":               "none",
	"z-index":             "auto",
	"unicode-bidi":        "normal",
	"background-color":    "default",
	"border-top-color":    "default",
	"border-left-color":   "default",
	"border-right-color":  "default",
	"border-bottom-color": "default",
	"border-top-style":    "none",
	"border-left-style":   "none",
	"border-right-style":  "none",
	"border-bottom-style": "none",
	"flow-from":           "none",
	"flow-into":           "none",
	"column-count":        "auto",
	"column-width":        "auto",
	"flex-direction":      "row",
	"flex-wrap":           "nowrap",
	"content":             "normal",
	"counter-reset":       "none",
	"counter-increment":   "none",
}

var isDimension = map[string]string{
	"width":                      "auto",
	"height":                     "auto",
	"min-width":                  "none",
	"min-height":                 "none",
	"max-width":                  "none",
	"max-height":                 "none",
	"top":                        "auto",
	"right":                      "auto",
	"bottom":                     "auto",
	"left":                       "auto",
	"margin-top":                 "0",
	"margin-left":                "0",
	"margin-right":               "0",
	"margin-bottom":              "0",
	"padding-top":                "0",
	"padding-left":               "0",
	"padding-right":              "0",
	"padding-bottom":             "0",
	"border-top-width":           "medium",
	"border-left-width":          "medium",
	"border-right-width":         "medium",
	"border-bottom-width":        "medium",
	"border-top-left-radius":     "0",
	"border-top-right-radius":    "0",
	"border-bottom-left-radius":  "0",
	"border-bottom-right-radius": "0",
}

// GetUserAgentDefaultProperty returns the user-agent default property for a given key.
// For key "display" the default depends on the HTML element; a nil node
// yields the CSS initial value.
func GetUserAgentDefaultProperty(node *html.Node, key string) Property {
	if key == "display" && node != nil {
		return DisplayPropertyForHTMLNode(node)
	}
	if dim, ok := isDimension[key]; ok {
		return Property(dim)
	}
	if p, ok := nonInherited[key]; ok {
		return Property(p)
	}
	if g := uaDefaults.Group(GroupNameFromPropertyKey(key)); g != nil {
		if p, ok := g.Get(key); ok {
			return p
		}
	}
	return NullStyle
}

// DisplayPropertyForHTMLNode returns the default `display` CSS property for an HTML node.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	if node.Type == html.TextNode {
		return "inline"
	}
	if node.Type != html.ElementNode {
		tracer().Debugf("cannot get display-property for non-element")
		return "none"
	}
	switch node.Data {
	case "head", "script", "style", "title", "meta", "link", "template", "noscript":
		return "none"
	case "html", "aside", "body", "div", "h1", "h2", "h3",
		"h4", "h5", "h6", "it", "ol", "section", "p", "ul",
		"article", "header", "footer", "nav", "main", "figure",
		"blockquote", "pre", "form", "fieldset", "address", "dl", "dd", "dt",
		"hr", "details", "summary", "menu", "figcaption":
		return "block"
	case "li":
		return "list-item"
	case "table":
		return "table"
	case "caption":
		return "table-caption"
	case "colgroup":
		return "table-column-group"
	case "col":
		return "table-column"
	case "thead":
		return "table-header-group"
	case "tbody":
		return "table-row-group"
	case "tfoot":
		return "table-footer-group"
	case "tr":
		return "table-row"
	case "td", "th":
		return "table-cell"
	case "i", "b", "em", "span", "strong", "a", "code", "small", "big", "sub",
		"sup", "u", "s", "q", "abbr", "cite", "kbd", "var", "mark", "label", "br",
		"img", "canvas", "svg", "video", "audio", "iframe", "object", "embed":
		return "inline"
	case "input", "textarea", "button", "select":
		return "inline-block"
	}
	tracer().Infof("unknown HTML element %s/%d will be set to display: block",
		node.Data, node.Type)
	return "block"
}

// uaDefaults holds the user-agent defaults for all property groups. It is
// the terminal link of every group's parent chain.
var uaDefaults = InitializeDefaultPropertyValues(nil)

// UserAgentDefaults returns the property map holding all user-agent
// default values. Clients must not modify it.
func UserAgentDefaults() *PropertyMap {
	return uaDefaults
}

// InitializeDefaultPropertyValues creates an internal data structure to
// hold all the default values for CSS properties.
// In real-world browsers these are the user-agent CSS values.
func InitializeDefaultPropertyValues(additionalProps []KeyValue) *PropertyMap {
	m := make(map[string]*PropertyGroup, 15)
	root := NewPropertyGroup("Root")

	x := NewPropertyGroup(PGX) // special group for extension properties
	x.Set("-x-fragmentable", "false")
	for _, kv := range additionalProps {
		x.Set(kv.Key, kv.Value)
	}
	m[PGX] = x

	margins := NewPropertyGroup(PGMargins)
	margins.Set("margin-top", "0")
	margins.Set("margin-left", "0")
	margins.Set("margin-right", "0")
	margins.Set("margin-bottom", "0")
	margins.Parent = root
	m[PGMargins] = margins

	padding := NewPropertyGroup(PGPadding)
	padding.Set("padding-top", "0")
	padding.Set("padding-left", "0")
	padding.Set("padding-right", "0")
	padding.Set("padding-bottom", "0")
	padding.Parent = root
	m[PGPadding] = padding

	border := NewPropertyGroup(PGBorder)
	for _, dir := range fourDirs {
		border.Set(p("border", "color", dir), "black")
		border.Set(p("border", "width", dir), "medium")
		border.Set(p("border", "style", dir), "none")
	}
	for _, corner := range fourCorners {
		border.Set(p("border", "radius", corner), "0")
	}
	border.Parent = root
	m[PGBorder] = border

	dimension := NewPropertyGroup(PGDimension)
	dimension.Set("width", "auto")
	dimension.Set("height", "auto")
	dimension.Set("min-width", "none")
	dimension.Set("min-height", "none")
	dimension.Set("max-width", "none")
	dimension.Set("max-height", "none")
	dimension.Parent = root
	m[PGDimension] = dimension

	region := NewPropertyGroup(PGRegion)
	region.Set("flow-from", "")
	region.Set("flow-into", "")
	region.Parent = root
	m[PGRegion] = region

	display := NewPropertyGroup(PGDisplay)
	display.Set("display", "block")
	display.Set("float", "none")
	display.Set("visibility", "visible")
	display.Set("position", "static")
	display.Parent = root
	m[PGDisplay] = display

	color := NewPropertyGroup(PGColor)
	color.Set("color", "default")
	color.Set("background-color", "default")
	color.Parent = root
	m[PGColor] = color

	text := NewPropertyGroup(PGText)
	text.Set("direction", "ltr")
	text.Set("unicode-bidi", "normal")
	text.Set("writing-mode", "horizontal-tb")
	text.Set("white-space", "normal")
	text.Set("word-spacing", "normal")
	text.Set("letter-spacing", "normal")
	text.Set("word-break", "normal")
	text.Set("word-wrap", "normal")
	text.Set("overflow-wrap", "normal")
	text.Set("hyphens", "manual")
	text.Set("line-height", "normal")
	text.Set("text-align", "start")
	text.Parent = root
	m[PGText] = text

	font := NewPropertyGroup(PGFont)
	font.Set("font-size", "12pt")
	font.Set("font-family", "serif")
	font.Set("font-style", "normal")
	font.Set("font-weight", "normal")
	font.Parent = root
	m[PGFont] = font

	list := NewPropertyGroup(PGList)
	list.Set("list-style-type", "disc")
	list.Set("list-style-image", "none")
	list.Set("list-style-position", "outside")
	list.Parent = root
	m[PGList] = list

	table := NewPropertyGroup(PGTable)
	table.Set("caption-side", "top")
	table.Set("empty-cells", "show")
	table.Set("border-collapse", "separate")
	table.Parent = root
	m[PGTable] = table

	multicol := NewPropertyGroup(PGMulticol)
	multicol.Set("column-count", "auto")
	multicol.Set("column-width", "auto")
	multicol.Parent = root
	m[PGMulticol] = multicol

	flex := NewPropertyGroup(PGFlex)
	flex.Set("flex-direction", "row")
	flex.Set("flex-wrap", "nowrap")
	flex.Parent = root
	m[PGFlex] = flex

	content := NewPropertyGroup(PGContent)
	content.Set("content", "normal")
	content.Set("quotes", "auto")
	content.Set("counter-reset", "none")
	content.Set("counter-increment", "none")
	content.Parent = root
	m[PGContent] = content

	return &PropertyMap{m}
}
