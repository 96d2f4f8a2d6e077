package style

// Overlays for anonymous boxes. A value of "inherit" copies the parent's
// computed value, even for non-inherited properties. Properties not listed
// are inherited if they cascade and are reset to their initial value
// otherwise.
var anonymousOverlays = map[AnonymousKind][]KeyValue{
	AnonText: {
		{"display", "inline"},
	},
	AnonInputText: {
		{"display", "inline"},
		{"white-space", "pre"},
	},
	AnonLegacyTableWrapper: {
		{"display", "block"},
		{"position", "inherit"},
		{"float", "inherit"},
		{"clear", "inherit"},
		{"z-index", "inherit"},
		{"top", "inherit"},
		{"right", "inherit"},
		{"bottom", "inherit"},
		{"left", "inherit"},
		{"width", "inherit"},
		{"margin-top", "inherit"},
		{"margin-right", "inherit"},
		{"margin-bottom", "inherit"},
		{"margin-left", "inherit"},
	},
	AnonTableWrapper: {
		{"display", "block"},
		{"position", "static"},
	},
	AnonTable: {
		{"display", "table"},
		{"position", "static"},
	},
	AnonTableRow: {
		{"display", "table-row"},
		{"position", "static"},
	},
	AnonTableCell: {
		{"display", "table-cell"},
		{"position", "static"},
	},
	AnonBlock: {
		{"display", "block"},
		{"position", "static"},
	},
	AnonInlineBlockWrapper: {
		{"display", "inline-block"},
		{"position", "static"},
	},
	AnonInlineAbsolute: {
		{"display", "inline"},
		{"position", "static"},
	},
}

// StyleForAnonymous creates the style of an anonymous box of a given kind,
// with parent being the style of the box's reference (parent) box.
func StyleForAnonymous(kind AnonymousKind, parent *PropertyMap) *PropertyMap {
	pmap := InheritFrom(parent)
	for _, kv := range anonymousOverlays[kind] {
		v := kv.Value
		if v.IsInherit() {
			v = GetProperty(parent, kv.Key)
		}
		pmap.Add(kv.Key, v)
	}
	return pmap
}

// StyleForAnonymousChain applies a sequence of overlays, each one using the
// result of its predecessor as parent style.
func StyleForAnonymousChain(parent *PropertyMap, kinds ...AnonymousKind) *PropertyMap {
	pmap := parent
	for _, k := range kinds {
		pmap = StyleForAnonymous(k, pmap)
	}
	return pmap
}
