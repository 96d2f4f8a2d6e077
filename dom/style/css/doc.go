/*
Package css gives typed access to the CSS properties box tree construction
decides upon.

Styles are stored as untyped strings in property maps (see package style).
Functions of the form XxxOf(pmap) read a property, cascading where CSS
inherits it, and return a typed value: DisplayMode for 'display',
PositionT for 'position' and its offsets, FloatT for 'float', plus
direction, unicode-bidi, white-space, writing mode, list styles, table
properties, flex direction and multi-column detection. Dimensions such as
padding, border widths and font size are parsed into DimenT. ParseContent
tokenizes the 'content' property of pseudo-elements.

Values which cannot be parsed fall back to the property's initial value.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

// see
// https://developer.mozilla.org/en-US/docs/Web/CSS/Reference

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyse.frame.tree'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.frame.tree")
}
