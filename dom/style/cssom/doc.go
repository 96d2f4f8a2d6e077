/*
Package cssom computes the styles of HTML nodes from style sheets.

CSSOM is the "CSS Object Model", similar to the DOM for HTML. Style sheets
enter a CSSOM through the StyleSheet and Rule interfaces, with a concrete
implementation on top of github.com/aymerick/douceur in sub-package
douceuradapter. Selectors are compiled once with
github.com/andybalholm/cascadia, including the pseudo-elements ::before
and ::after.

For a node, ComputeStyle layers

   - the user-agent default 'display' of the HTML element,
   - declarations of matching rules, by specificity and source order,
   - the node's style attribute,
   - important declarations of matching rules,
   - important declarations of the style attribute,

on top of the properties inherited from the parent. Shorthand properties are
split into their components. Floated, absolutely positioned and root boxes
are blockified.

Errors in selectors do not stop styling: the offending rules are skipped,
and the errors are accumulated with go.uber.org/multierr.

A good explanation of styling may be found in

   https://hacks.mozilla.org/2017/08/inside-a-super-fast-css-engine-quantum-css-aka-stylo/

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tyse.frame.tree'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.frame.tree")
}
