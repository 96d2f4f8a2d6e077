package css

import (
	"strings"

	"github.com/npillmayer/boxtree/dom/style"
)

// FloatT is an enum type for the CSS float property.
type FloatT uint8

// Values for CSS property 'float'.
const (
	FloatNone FloatT = iota
	FloatLeft
	FloatRight
)

func (f FloatT) String() string {
	switch f {
	case FloatLeft:
		return "left"
	case FloatRight:
		return "right"
	}
	return "none"
}

// Float returns the float type for a property string. Unknown values are
// treated as 'none'. The logical values 'inline-start' and 'inline-end' map
// to left and right, respectively.
func Float(p style.Property) FloatT {
	switch strings.ToLower(p.String()) {
	case "left", "inline-start":
		return FloatLeft
	case "right", "inline-end":
		return FloatRight
	}
	return FloatNone
}

// FloatOf returns the computed float of a style.
func FloatOf(pmap *style.PropertyMap) FloatT {
	return Float(style.GetProperty(pmap, "float"))
}
