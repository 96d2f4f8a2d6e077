package css_test

import (
	"testing"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
)

func TestParseDisplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame.tree")
	defer teardown()
	//
	for input, expected := range map[string]css.DisplayMode{
		"block":              css.DisplayBlock,
		"inline-block":       css.DisplayInlineBlock,
		"table-row":          css.DisplayTableRow,
		"table-header-group": css.DisplayTableHeaderGroup,
		"inline-flex":        css.DisplayInlineFlex,
		"none":               css.DisplayNone,
	} {
		d, err := css.ParseDisplay(input)
		if err != nil {
			t.Errorf("expected %q to be parsed, got error %v", input, err)
		}
		if d != expected {
			t.Errorf("expected display %q to be %s, is %s", input, expected, d)
		}
	}
	if _, err := css.ParseDisplay("ruby-text-container"); err == nil {
		t.Errorf("expected unsupported display value to be flagged")
	}
	if !css.DisplayTableCell.IsTablePart() || css.DisplayTable.IsTablePart() {
		t.Errorf("expected only table-internal modes to be table parts")
	}
}

func TestOriginalDisplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.frame.tree")
	defer teardown()
	//
	pmap := style.InheritFrom(nil)
	pmap.Add("display", "block")
	if d := css.OriginalDisplayOf(pmap); d != css.DisplayBlock {
		t.Errorf("expected original display to default to display, is %s", d)
	}
	pmap.Add("original-display", "inline")
	if d := css.OriginalDisplayOf(pmap); d != css.DisplayInline {
		t.Errorf("expected original display to be inline, is %s", d)
	}
}

func TestParseContent(t *testing.T) {
	items, err := css.ParseContent(`"Chapter " counter(chapter, upper-roman) ": " attr(title) open-quote`)
	if err != nil {
		t.Fatal(err)
	}
	kinds := []css.ContentKind{css.ContentString, css.ContentCounter, css.ContentString,
		css.ContentAttr, css.ContentOpenQuote}
	if len(items) != len(kinds) {
		t.Fatalf("expected %d content items, have %v", len(kinds), items)
	}
	for i, k := range kinds {
		if items[i].Kind != k {
			t.Errorf("expected item #%d to be %s, is %s", i, k, items[i].Kind)
		}
	}
	if items[0].Value != "Chapter " {
		t.Errorf("expected string item to be unquoted, is %q", items[0].Value)
	}
	if items[1].Value != "chapter" || items[1].Style != "upper-roman" {
		t.Errorf("expected counter(chapter, upper-roman), is %+v", items[1])
	}
	if items[3].Value != "title" {
		t.Errorf("expected attr(title), is %+v", items[3])
	}
	if items, _ := css.ParseContent("normal"); len(items) != 0 {
		t.Errorf("expected content:normal to produce no items, have %v", items)
	}
	if _, err := css.ParseContent("bogus"); err == nil {
		t.Errorf("expected unknown identifier to be flagged")
	}
}

func TestTextProperties(t *testing.T) {
	pmap := style.InheritFrom(nil)
	pmap.Add("unicode-bidi", "isolate-override")
	pmap.Add("direction", "rtl")
	pmap.Add("white-space", "pre-line")
	if ub := css.UnicodeBidiOf(pmap); ub != css.BidiIsolateOverride {
		t.Errorf("expected isolate-override, is %s", ub)
	}
	if d := css.DirectionOf(pmap); d != css.RightToLeft {
		t.Errorf("expected rtl, is %s", d)
	}
	ws := css.WhiteSpaceOf(pmap)
	if !ws.PreserveNewlines() || ws.PreserveSpaces() {
		t.Errorf("expected pre-line to preserve newlines only, is %s", ws)
	}
	child := style.InheritFrom(pmap)
	if ub := css.UnicodeBidiOf(child); ub != css.BidiNormal {
		t.Errorf("expected unicode-bidi not to be inherited, is %s", ub)
	}
	if d := css.DirectionOf(child); d != css.RightToLeft {
		t.Errorf("expected direction to be inherited, is %s", d)
	}
}

func TestBoxProperties(t *testing.T) {
	pmap := style.InheritFrom(nil)
	if w := css.BorderWidthOf(pmap, "top"); !w.IsZero() {
		t.Errorf("expected border without style to have zero width, is %v", w)
	}
	pmap.Add("border-top-style", "solid")
	if w := css.BorderWidthOf(pmap, "top"); w.IsZero() {
		t.Errorf("expected solid border of medium width, is %v", w)
	}
	pmap.Add("font-size", "10pt")
	pmap.Add("line-height", "2")
	if lh := css.LineHeightOf(pmap); lh != 20*dimen.PT {
		t.Errorf("expected line height of 20pt, is %v", lh)
	}
	pmap.Add("column-count", "3")
	if !css.IsMulticol(pmap) {
		t.Errorf("expected column-count to establish a multicol container")
	}
}

func TestListStyle(t *testing.T) {
	pmap := style.InheritFrom(nil)
	if r, ok := css.ListStyleTypeOf(pmap).StaticMarker(); !ok || r != '•' {
		t.Errorf("expected default list marker to be a bullet, is %q", r)
	}
	pmap.Add("list-style-type", "decimal")
	if _, ok := css.ListStyleTypeOf(pmap).StaticMarker(); ok {
		t.Errorf("expected decimal list style not to have a static marker")
	}
	pmap.Add("list-style-image", `url("Marker.PNG")`)
	if u, ok := css.ListStyleImageOf(pmap); !ok || u != "Marker.PNG" {
		t.Errorf("expected marker image URL, is %q", u)
	}
}
