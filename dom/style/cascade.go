package style

// GetCascadedProperty gets the value of a property. The search cascades to
// parent property groups, if available.
//
// Clients will usually call GetProperty(…) instead as this will respect
// CSS semantics for inherited properties.
//
// Every property group of a styled node links to the corresponding group of
// its parent node, with the user-agent defaults terminating the chain.
// If no group in the chain sets the key, the user-agent default is returned.
func GetCascadedProperty(pmap *PropertyMap, key string) Property {
	groupname := GroupNameFromPropertyKey(key)
	for group := pmap.Group(groupname); group != nil; group = group.Parent {
		if p, ok := group.Get(key); ok && !p.IsEmpty() && !p.IsInherit() {
			if p.IsInitial() {
				return GetUserAgentDefaultProperty(nil, key)
			}
			return p
		}
	}
	return GetUserAgentDefaultProperty(nil, key)
}

// GetProperty gets the value of a property. If the property is not set
// locally on the property map and the property is inheritable, the search
// cascades to parent property groups, if available. Non-inherited
// properties which are not set locally return the user-agent default.
//
// nil is a legal property map and will return user-agent defaults.
func GetProperty(pmap *PropertyMap, key string) Property {
	if IsCascading(key) {
		return GetCascadedProperty(pmap, key)
	}
	p := GetLocalProperty(pmap, key)
	switch {
	case p.IsInherit():
		if group := pmap.Group(GroupNameFromPropertyKey(key)); group != nil && group.Parent != nil {
			parent := &PropertyMap{m: map[string]*PropertyGroup{group.Parent.name: group.Parent}}
			return GetProperty(parent, key)
		}
		return GetUserAgentDefaultProperty(nil, key)
	case p == NullStyle || p.IsInitial():
		return GetUserAgentDefaultProperty(nil, key)
	}
	return p
}

// GetLocalProperty returns a style property value, if it is set locally
// for a styled node's property map. No cascading is performed.
func GetLocalProperty(pmap *PropertyMap, key string) Property {
	groupname := GroupNameFromPropertyKey(key)
	group := pmap.Group(groupname)
	if group == nil {
		return NullStyle
	}
	p, _ := group.Get(key)
	return p
}

// Get is a shortcut for GetProperty(pmap, key).
func (pmap *PropertyMap) Get(key string) Property {
	return GetProperty(pmap, key)
}

// InheritFrom creates a property map for a child of a node styled with
// parent. Every group of the new map is empty and links to the parent's
// group of the same name, making inherited properties visible through
// cascading. A nil parent links to the user-agent defaults.
func InheritFrom(parent *PropertyMap) *PropertyMap {
	if parent == nil {
		parent = uaDefaults
	}
	m := make(map[string]*PropertyGroup, len(parent.m))
	for name, g := range parent.m {
		ng := NewPropertyGroup(name)
		ng.Parent = g
		m[name] = ng
	}
	return &PropertyMap{m: m}
}
