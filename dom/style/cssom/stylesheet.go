package cssom

import "github.com/npillmayer/boxtree/dom/style"

// StyleSheet decouples style sheet parsers from the CSSOM. Rules are
// added to a CSSOM in the order the sheet returns them, which is their
// source order for the cascade.
//
// Package douceuradapter wraps douceur style sheets; inline styles from
// style attributes are single rules without a selector.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet, in source order
}

// Rule is a selector together with its declarations.
type Rule interface {
	Selector() string            // selector group, e.g. "p, li::before"
	Properties() []string        // property keys in declaration order, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as !important?
}
