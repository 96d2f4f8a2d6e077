package cssom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/boxtree/dom/style"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
)

// CSSOM is a collection of style sheets, compiled for matching against
// HTML nodes.
//
// A CSSOM is read-only after all style sheets have been added and may then be
// used by concurrent stylers.
type CSSOM struct {
	rules []compiledRule
	count int // number of rules added so far, for source order
}

type compiledRule struct {
	selector    cascadia.Sel
	specificity cascadia.Specificity
	order       int
	rule        Rule
}

// NewCSSOM creates an empty CSSOM.
func NewCSSOM() *CSSOM {
	return &CSSOM{}
}

// AddStyleSheet compiles the rules of a style sheet and appends them to the
// CSSOM. Rules with selectors which cannot be parsed are skipped; the
// resulting errors are accumulated and returned.
func (c *CSSOM) AddStyleSheet(sheet StyleSheet) error {
	var errs error
	for _, r := range sheet.Rules() {
		group, err := cascadia.ParseGroupWithPseudoElements(r.Selector())
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("selector %q: %w", r.Selector(), err))
			continue
		}
		for _, sel := range group {
			c.rules = append(c.rules, compiledRule{
				selector:    sel,
				specificity: sel.Specificity(),
				order:       c.count,
				rule:        r,
			})
			c.count++
		}
	}
	return errs
}

// Empty is true if no rules have been added.
func (c *CSSOM) Empty() bool {
	return len(c.rules) == 0
}

// Declarations returns the style declarations matching an HTML element for a
// pseudo-element ("" for the element itself, "before", "after"), in
// cascade order: normal declarations by ascending specificity and source
// order, followed by important declarations. Shorthand properties are
// expanded.
func (c *CSSOM) Declarations(n *html.Node, pseudo string) []style.KeyValue {
	normal, important := c.declarations(n, pseudo)
	return append(normal, important...)
}

func (c *CSSOM) declarations(n *html.Node, pseudo string) (normal, important []style.KeyValue) {
	if n == nil || n.Type != html.ElementNode {
		return nil, nil
	}
	var matching []compiledRule
	for _, r := range c.rules {
		if r.selector.PseudoElement() == pseudo && r.selector.Match(n) {
			matching = append(matching, r)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		si, sj := matching[i].specificity, matching[j].specificity
		if si != sj {
			return si.Less(sj)
		}
		return matching[i].order < matching[j].order
	})
	for _, r := range matching {
		rn, ri := splitImportance(r.rule)
		normal = append(normal, rn...)
		important = append(important, ri...)
	}
	return normal, important
}

// splitImportance expands the declarations of a rule into normal and
// important ones.
func splitImportance(r Rule) (normal, important []style.KeyValue) {
	for _, key := range r.Properties() {
		kvs := expand(key, r.Value(key))
		if r.IsImportant(key) {
			important = append(important, kvs...)
		} else {
			normal = append(normal, kvs...)
		}
	}
	return normal, important
}

// ComputeStyle creates the style for an HTML node (or one of its
// pseudo-elements) given the style of its parent. Declarations are applied
// on top of the user-agent display default in this order: normal rule
// declarations, normal inline declarations, important rule declarations,
// important inline declarations. Inherited properties not declared for the
// node cascade to the parent's style.
//
// Boxes which are floated, absolutely positioned, or the root box have
// their display value blockified. The value before blockification is
// kept as property 'original-display'.
func (c *CSSOM) ComputeStyle(n *html.Node, pseudo string, parent *style.PropertyMap,
	inline Rule) *style.PropertyMap {
	//
	pmap := style.InheritFrom(parent)
	if pseudo == "" {
		pmap.Add("display", style.DisplayPropertyForHTMLNode(n))
	} else {
		pmap.Add("display", "inline")
	}
	normal, important := c.declarations(n, pseudo)
	if inline != nil && pseudo == "" {
		inormal, iimportant := splitImportance(inline)
		normal = append(normal, inormal...)
		important = append(important, iimportant...)
	}
	for _, kv := range append(normal, important...) {
		pmap.Add(kv.Key, kv.Value)
	}
	blockify(pmap, parent == nil)
	return pmap
}

func expand(key string, value style.Property) []style.KeyValue {
	key = strings.ToLower(strings.TrimSpace(key))
	if kvs, err := style.SplitCompoundProperty(key, value); err == nil {
		return kvs
	}
	return []style.KeyValue{{Key: key, Value: value}}
}

var blockified = map[string]string{
	"inline":             "block",
	"inline-block":       "block",
	"inline-table":       "table",
	"inline-flex":        "flex",
	"table-row-group":    "block",
	"table-header-group": "block",
	"table-footer-group": "block",
	"table-row":          "block",
	"table-cell":         "block",
	"table-caption":      "block",
	"table-column":       "block",
	"table-column-group": "block",
}

func blockify(pmap *style.PropertyMap, isRoot bool) {
	display := style.GetLocalProperty(pmap, "display")
	to, ok := blockified[display.String()]
	if !ok {
		return
	}
	pos := style.GetProperty(pmap, "position")
	float := style.GetProperty(pmap, "float")
	if isRoot || pos == "absolute" || pos == "fixed" || (float != "none" && float != "") {
		tracer().Debugf("blockify display %s -> %s", display, to)
		pmap.Add("original-display", display)
		pmap.Add("display", style.Property(to))
	}
}
