package css

import (
	"strings"

	"github.com/npillmayer/boxtree/dom/style"
)

// ListStyleType holds the value of CSS property 'list-style-type'.
type ListStyleType string

// ListStyleTypeOf returns the computed list style type of a style.
func ListStyleTypeOf(pmap *style.PropertyMap) ListStyleType {
	return ListStyleType(strings.TrimSpace(style.GetProperty(pmap, "list-style-type").String()))
}

// IsNone is true for list style type 'none'.
func (lst ListStyleType) IsNone() bool {
	return strings.ToLower(string(lst)) == "none"
}

var staticMarkers = map[string]rune{
	"disc":              '•',
	"circle":            '◦',
	"square":            '▪',
	"disclosure-open":   '▾',
	"disclosure-closed": '‣',
}

// StaticMarker returns the marker character for list style types which do not
// depend on counters.
func (lst ListStyleType) StaticMarker() (rune, bool) {
	r, ok := staticMarkers[strings.ToLower(string(lst))]
	return r, ok
}

// ListStylePositionOf returns true if list markers for a style are placed
// inside the principal box.
func ListStylePositionOf(pmap *style.PropertyMap) (inside bool) {
	return strings.ToLower(style.GetProperty(pmap, "list-style-position").String()) == "inside"
}

// ListStyleImageOf returns the URL of a list marker image, if set.
func ListStyleImageOf(pmap *style.PropertyMap) (string, bool) {
	return parseURL(style.GetProperty(pmap, "list-style-image").String())
}

func parseURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToLower(s), "url(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	u := strings.TrimSpace(s[4 : len(s)-1])
	u = strings.Trim(u, `"'`)
	return u, u != ""
}
