package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyse.dom'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.dom")
}

// Property is a raw value for a CSS property. For example, with
//
//	color: black
//
// a property value of "black" is set. Typed access to properties is provided
// by package css.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial is true for the CSS-wide keyword "initial".
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit is true for the CSS-wide keyword "inherit".
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty is true for the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- CSS Property Groups ----------------------------------------------

// PropertyGroup is a collection of properties sharing a common topic, e.g.
// all margins of a box. Groups link to the group of the same name of the
// parent node's style, which makes inheritance a walk along the chain of
// parents (see GetCascadedProperty).
//
// The mapping of properties into groups is given by GroupNameFromPropertyKey.
type PropertyGroup struct {
	name      string
	Parent    *PropertyGroup
	propsDict map[string]Property
}

// NewPropertyGroup creates a new empty property group, given its name.
func NewPropertyGroup(groupname string) *PropertyGroup {
	return &PropertyGroup{name: groupname}
}

// Name returns the name of the property group.
func (pg *PropertyGroup) Name() string {
	return pg.name
}

// String lists the properties of a group, sorted by key.
func (pg *PropertyGroup) String() string {
	var b strings.Builder
	b.WriteString("[" + pg.name + "] =\n")
	for _, kv := range pg.Properties() {
		fmt.Fprintf(&b, "  %s = %s\n", kv.Key, kv.Value)
	}
	return b.String()
}

// Properties returns the properties set locally for a group, sorted by key.
func (pg *PropertyGroup) Properties() []KeyValue {
	r := make([]KeyValue, 0, len(pg.propsDict))
	for k, v := range pg.propsDict {
		r = append(r, KeyValue{k, v})
	}
	slices.SortFunc(r, func(a, b KeyValue) int { return strings.Compare(a.Key, b.Key) })
	return r
}

// IsSet is true if a non-empty value is set locally for key.
func (pg *PropertyGroup) IsSet(key string) bool {
	v, ok := pg.propsDict[key]
	return ok && !v.IsEmpty()
}

// Get returns the locally set value for key.
func (pg *PropertyGroup) Get(key string) (Property, bool) {
	p, ok := pg.propsDict[key]
	return p, ok
}

// Set sets a property's value, overwriting an existing value.
//
// Values are converted to lower case, except for properties carrying literal
// text (see PreservesCase).
func (pg *PropertyGroup) Set(key string, p Property) {
	if !PreservesCase(key) {
		p = Property(strings.ToLower(string(p)))
	}
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	pg.propsDict[key] = p
}

// Add sets a property's value unless a value is already set.
func (pg *PropertyGroup) Add(key string, p Property) {
	if _, exists := pg.propsDict[key]; !exists {
		pg.Set(key, p)
	}
}

// GroupNameFromPropertyKey returns the style property group name for a
// style property.
// Example:
//
//	GroupNameFromPropertyKey("margin-top") => "Margins"
//
// Unknown style property keys will return a group name of "X".
func GroupNameFromPropertyKey(key string) string {
	if groupname, found := groupNameFromPropertyKey[key]; found {
		return groupname
	}
	return PGX
}

// Symbolic names for string literals, denoting PropertyGroups.
const (
	PGMargins   = "Margins"
	PGPadding   = "Padding"
	PGBorder    = "Border"
	PGDimension = "Dimension"
	PGDisplay   = "Display"
	PGRegion    = "Region"
	PGColor     = "Color"
	PGText      = "Text"
	PGFont      = "Font"
	PGList      = "List"
	PGTable     = "Table"
	PGMulticol  = "Multicol"
	PGFlex      = "Flex"
	PGContent   = "Content"
	PGX         = "X"
)

var groupNameFromPropertyKey = map[string]string{
	"margin-top":                 PGMargins, // Margins
	"margin-left":                PGMargins,
	"margin-right":               PGMargins,
	"margin-bottom":              PGMargins,
	"padding-top":                PGPadding, // Padding
	"padding-left":               PGPadding,
	"padding-right":              PGPadding,
	"padding-bottom":             PGPadding,
	"border-top-color":           PGBorder, // Border
	"border-left-color":          PGBorder,
	"border-right-color":         PGBorder,
	"border-bottom-color":        PGBorder,
	"border-top-width":           PGBorder,
	"border-left-width":          PGBorder,
	"border-right-width":         PGBorder,
	"border-bottom-width":        PGBorder,
	"border-top-style":           PGBorder,
	"border-left-style":          PGBorder,
	"border-right-style":         PGBorder,
	"border-bottom-style":        PGBorder,
	"border-top-left-radius":     PGBorder,
	"border-top-right-radius":    PGBorder,
	"border-bottom-left-radius":  PGBorder,
	"border-bottom-right-radius": PGBorder,
	"width":                      PGDimension, // Dimension
	"height":                     PGDimension,
	"min-width":                  PGDimension,
	"min-height":                 PGDimension,
	"max-width":                  PGDimension,
	"max-height":                 PGDimension,
	"top":                        PGDimension,
	"right":                      PGDimension,
	"bottom":                     PGDimension,
	"left":                       PGDimension,
	"display":                    PGDisplay, // Display
	"original-display":           PGDisplay,
	"float":                      PGDisplay,
	"clear":                      PGDisplay,
	"visibility":                 PGDisplay,
	"position":                   PGDisplay,
	"z-index":                    PGDisplay,
	"flow-into":                  PGRegion,
	"flow-from":                  PGRegion,
	"color":                      PGColor,
	"background-color":           PGColor,
	"direction":                  PGText,
	"unicode-bidi":               PGText,
	"writing-mode":               PGText,
	"white-space":                PGText,
	"word-spacing":               PGText,
	"letter-spacing":             PGText,
	"word-break":                 PGText,
	"word-wrap":                  PGText,
	"overflow-wrap":              PGText,
	"hyphens":                    PGText,
	"line-height":                PGText,
	"text-align":                 PGText,
	"font-size":                  PGFont,
	"font-family":                PGFont,
	"font-style":                 PGFont,
	"font-weight":                PGFont,
	"list-style-type":            PGList,
	"list-style-image":           PGList,
	"list-style-position":        PGList,
	"caption-side":               PGTable,
	"empty-cells":                PGTable,
	"border-collapse":            PGTable,
	"column-count":               PGMulticol,
	"column-width":               PGMulticol,
	"flex-direction":             PGFlex,
	"flex-wrap":                  PGFlex,
	"content":                    PGContent,
	"quotes":                     PGContent,
	"counter-reset":              PGContent,
	"counter-increment":          PGContent,
}

// PreservesCase is true for properties whose values may contain literal
// strings or URLs.
func PreservesCase(key string) bool {
	switch key {
	case "content", "quotes", "font-family", "list-style-image", "list-style-type":
		return true
	}
	return false
}

// inherited lists the inherited properties which do not share a prefix
// with others (see IsCascading).
var inherited = map[string]bool{
	"color": true, "cursor": true, "direction": true, "writing-mode": true,
	"flow-into": true, "flow-from": true, "visibility": true, "quotes": true,
	"letter-spacing": true, "word-spacing": true, "line-height": true,
	"white-space": true, "word-break": true, "word-wrap": true,
	"overflow-wrap": true, "hyphens": true, "text-align": true,
	"caption-side": true, "empty-cells": true, "border-collapse": true,
	"-x-fragmentable": true,
}

// IsCascading is true for properties which CSS defines as inherited: a
// node not setting the property takes its parent's value.
func IsCascading(key string) bool {
	return inherited[key] || strings.HasPrefix(key, "font-") ||
		strings.HasPrefix(key, "list-style")
}

// SplitCompoundProperty splits up a shorthand property into its individual
// components.
// Example:
//
//	SplitCompoundProperty("padding", "3px 4px")
//
// will return
//
//	padding-top    => 3px
//	padding-right  => 4px
//	padding-bottom => 3px
//	padding-left   => 4px
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	fields := strings.Fields(value.String())
	switch key {
	case "margin", "padding":
		return splitBoxShorthand(key, "", fourDirs, fields)
	case "border-color", "border-width", "border-style":
		return splitBoxShorthand("border", strings.TrimPrefix(key, "border-"), fourDirs, fields)
	case "border-radius":
		return splitBoxShorthand("border", "radius", fourCorners, fields)
	case "border", "border-top", "border-right", "border-bottom", "border-left":
		return splitBorder(key, fields)
	case "list-style":
		return splitListStyle(fields), nil
	case "columns":
		return splitColumns(fields), nil
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// boxValueIndex selects, by number of values given, the value for each of
// the four sides of a box shorthand. Missing values are copied from the
// opposite side.
var boxValueIndex = [5][4]int{
	1: {0, 0, 0, 0},
	2: {0, 1, 0, 1},
	3: {0, 1, 2, 1},
	4: {0, 1, 2, 3},
}

func splitBoxShorthand(pre string, suf string, sides [4]string, fields []string) ([]KeyValue, error) {
	if len(fields) == 0 || len(fields) > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s", p(pre, suf, "*"))
	}
	r := make([]KeyValue, 4)
	for i, side := range sides {
		r[i] = KeyValue{p(pre, suf, side), Property(fields[boxValueIndex[len(fields)][i]])}
	}
	return r, nil
}

// splitBorder distributes a 'border' shorthand to width, style and color.
// Tokens are classified by their form: numbers and width keywords are widths,
// style keywords are styles, everything else is a color.
func splitBorder(key string, fields []string) ([]KeyValue, error) {
	if len(fields) == 0 || len(fields) > 3 {
		return nil, fmt.Errorf("expecting 1-3 values for %s", key)
	}
	dirs := fourDirs[:]
	if key != "border" {
		dirs = []string{strings.TrimPrefix(key, "border-")}
	}
	var r []KeyValue
	for _, f := range fields {
		suffix := "color"
		switch {
		case isBorderStyle(f):
			suffix = "style"
		case f == "thin" || f == "medium" || f == "thick" || (f[0] >= '0' && f[0] <= '9') || f[0] == '.':
			suffix = "width"
		}
		for _, d := range dirs {
			r = append(r, KeyValue{p("border", suffix, d), Property(f)})
		}
	}
	return r, nil
}

func isBorderStyle(s string) bool {
	switch s {
	case "none", "hidden", "dotted", "dashed", "solid", "double", "groove", "ridge", "inset", "outset":
		return true
	}
	return false
}

func splitListStyle(fields []string) []KeyValue {
	var r []KeyValue
	for _, f := range fields {
		switch {
		case f == "inside" || f == "outside":
			r = append(r, KeyValue{"list-style-position", Property(f)})
		case strings.HasPrefix(f, "url("):
			r = append(r, KeyValue{"list-style-image", Property(f)})
		default:
			r = append(r, KeyValue{"list-style-type", Property(f)})
		}
	}
	return r
}

func splitColumns(fields []string) []KeyValue {
	var r []KeyValue
	for _, f := range fields {
		if f == "auto" {
			continue
		}
		if strings.IndexFunc(f, func(c rune) bool { return c < '0' || c > '9' }) < 0 {
			r = append(r, KeyValue{"column-count", Property(f)})
		} else {
			r = append(r, KeyValue{"column-width", Property(f)})
		}
	}
	return r
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func p(prefix string, suffix string, tag string) string {
	if suffix == "" {
		return prefix + "-" + tag
	}
	if prefix == "" {
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}

// --- Property Map -----------------------------------------------------

// PropertyMap holds the CSS properties styling a node, segmented into
// property groups. nil is a legal (empty) property map.
type PropertyMap struct {
	m map[string]*PropertyGroup
}

// NewPropertyMap returns a new empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{}
}

// String lists the groups of a property map, sorted by name.
func (pmap *PropertyMap) String() string {
	if pmap == nil {
		return "Property Map = {}"
	}
	names := make([]string, 0, len(pmap.m))
	for name := range pmap.m {
		names = append(names, name)
	}
	slices.Sort(names)
	var b strings.Builder
	b.WriteString("Property Map = {\n")
	for _, name := range names {
		b.WriteString(pmap.m[name].String())
	}
	b.WriteString("}")
	return b.String()
}

// Group returns the property group for a group name or nil.
func (pmap *PropertyMap) Group(groupname string) *PropertyGroup {
	if pmap == nil {
		return nil
	}
	group := pmap.m[groupname]
	return group
}

// Property returns a style property value, together with an indicator
// wether it has been found in the properties map.
// No cascading is performed
func (pmap *PropertyMap) Property(key string) (Property, bool) {
	groupname := GroupNameFromPropertyKey(key)
	group := pmap.Group(groupname)
	if group == nil {
		return NullStyle, false
	}
	return group.Get(key)
}

// Add sets a property of this property map, creating its group if
// necessary. Existing values are overwritten.
func (pmap *PropertyMap) Add(key string, value Property) {
	if pmap == nil {
		return
	}
	if pmap.m == nil {
		pmap.m = make(map[string]*PropertyGroup)
	}
	groupname := GroupNameFromPropertyKey(key)
	group, found := pmap.m[groupname]
	if !found {
		group = NewPropertyGroup(groupname)
		pmap.m[groupname] = group
	}
	group.Set(key, value)
}
