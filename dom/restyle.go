package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/styledtree"
)

// ErrNoStyles is returned if a property is set for a node without styles.
var ErrNoStyles = errors.New("styled node has no property map")

// SetProperty changes a style property of a styled node and records the
// resulting restyle damage for the next box tree construction pass.
//
// Compound properties (e.g. 'padding') are split into their components.
// Descendants inheriting an inherited property are damaged as well; a
// descendant setting the property itself is not affected, nor is its
// subtree. Text nodes and pseudo-elements are covered, as they
// inherit from their element.
func SetProperty(sn *styledtree.StyNode, key string, value style.Property) error {
	if sn == nil {
		return ErrNotAStyledNode
	}
	pmap := sn.Styles()
	if pmap == nil {
		return fmt.Errorf("%w: %s", ErrNoStyles, sn)
	}
	key = strings.ToLower(strings.TrimSpace(key))
	kvs, err := style.SplitCompoundProperty(key, value)
	if err != nil {
		kvs = []style.KeyValue{{Key: key, Value: value}}
	}
	var damage style.RestyleDamage
	for _, kv := range kvs {
		if style.GetLocalProperty(pmap, kv.Key) == kv.Value {
			continue
		}
		pmap.Add(kv.Key, kv.Value)
		if kv.Key == "display" && style.GetLocalProperty(pmap, "original-display") != style.NullStyle {
			// a blockified display is replaced by the new value as is
			pmap.Add("original-display", kv.Value)
		}
		d := style.DamageForPropertyChange(kv.Key)
		damage = damage.Insert(d)
		if style.IsCascading(kv.Key) {
			damageInheritingDescendants(sn, kv.Key, d)
		}
	}
	if damage == style.NoDamage {
		return nil
	}
	tracer().P("node", sn).Debugf("set %s = %s, damage %s", key, value, damage)
	sn.AddRestyleDamage(damage)
	return nil
}

func damageInheritingDescendants(sn *styledtree.StyNode, key string, damage style.RestyleDamage) {
	for _, ch := range sn.StyledChildren() {
		if _, isSet := ch.Styles().Property(key); isSet {
			continue
		}
		ch.AddRestyleDamage(damage)
		damageInheritingDescendants(ch, key, damage)
	}
}

// SetDisplayNone hides a styled node. This is a shortcut for setting
// 'display' to 'none'.
func SetDisplayNone(sn *styledtree.StyNode) error {
	return SetProperty(sn, "display", "none")
}
