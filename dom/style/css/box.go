package css

import (
	"strconv"
	"strings"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/tyse/core/dimen"
)

// DimenOf returns the computed value of a dimension property. Unparsable
// values are traced and treated as zero.
func DimenOf(pmap *style.PropertyMap, key string) DimenT {
	d, err := ParseDimen(style.GetProperty(pmap, key))
	if err != nil {
		tracer().Infof("property %s: %v", key, err)
		return JustDimen(0)
	}
	return d
}

// BorderWidthOf returns the computed width of the border on one side
// (one of "top", "right", "bottom", "left"). Borders with style 'none' or
// 'hidden' have a computed width of zero.
func BorderWidthOf(pmap *style.PropertyMap, side string) DimenT {
	switch strings.ToLower(style.GetProperty(pmap, "border-"+side+"-style").String()) {
	case "none", "hidden", "":
		return JustDimen(0)
	}
	return DimenOf(pmap, "border-"+side+"-width")
}

// PaddingOf returns the computed padding on one side.
func PaddingOf(pmap *style.PropertyMap, side string) DimenT {
	return DimenOf(pmap, "padding-"+side)
}

// Sides lists the four box sides in CSS order.
var Sides = [4]string{"top", "right", "bottom", "left"}

// DefaultFontSize is used if no absolute font size is available.
const DefaultFontSize = 12 * dimen.PT

// FontSizeOf returns the computed font size of a style. Font-relative sizes
// are resolved against the default font size.
func FontSizeOf(pmap *style.PropertyMap) dimen.DU {
	p := style.GetProperty(pmap, "font-size")
	switch strings.ToLower(p.String()) {
	case "small":
		return 10 * dimen.PT
	case "medium", "":
		return DefaultFontSize
	case "large":
		return 14 * dimen.PT
	}
	d, err := ParseDimen(p)
	if err != nil {
		return DefaultFontSize
	}
	if fs := d.Resolve(DefaultFontSize); fs > 0 {
		return fs
	}
	return DefaultFontSize
}

// LineHeightOf returns the computed line height of a style, with 'normal'
// being 1.2 times the font size.
func LineHeightOf(pmap *style.PropertyMap) dimen.DU {
	fs := FontSizeOf(pmap)
	p := strings.ToLower(style.GetProperty(pmap, "line-height").String())
	if p == "normal" || p == "" {
		return fs * 6 / 5
	}
	if f, err := strconv.ParseFloat(p, 64); err == nil {
		return dimen.DU(f * float64(fs))
	}
	if strings.HasSuffix(p, "%") {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64); err == nil {
			return dimen.DU(f * float64(fs) / 100)
		}
	}
	d, err := ParseDimen(style.Property(p))
	if err != nil {
		return fs * 6 / 5
	}
	return d.Resolve(fs)
}
