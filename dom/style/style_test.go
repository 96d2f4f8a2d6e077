package style

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func TestCascadeInheritedProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.dom")
	defer teardown()
	//
	parent := InheritFrom(nil)
	parent.Add("color", "red")
	parent.Add("padding-top", "5pt")
	child := InheritFrom(parent)
	if c := child.Get("color"); c != "red" {
		t.Errorf("expected color to be inherited as red, is %q", c)
	}
	if p := child.Get("padding-top"); p != "0" {
		t.Errorf("expected padding-top not to be inherited, is %q", p)
	}
	parent.Group(PGColor).Set("color", "blue")
	if c := child.Get("color"); c != "blue" {
		t.Errorf("expected restyled parent color to be visible, is %q", c)
	}
}

func TestExplicitInherit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.dom")
	defer teardown()
	//
	parent := InheritFrom(nil)
	parent.Add("position", "relative")
	child := InheritFrom(parent)
	if p := child.Get("position"); p != "static" {
		t.Errorf("expected position to default to static, is %q", p)
	}
	child.Add("position", "inherit")
	if p := child.Get("position"); p != "relative" {
		t.Errorf("expected explicit inherit to yield relative, is %q", p)
	}
}

func TestAnonymousStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.dom")
	defer teardown()
	//
	table := InheritFrom(nil)
	table.Add("display", "table")
	table.Add("position", "absolute")
	table.Add("color", "green")
	table.Add("padding-left", "3pt")
	wrapper := StyleForAnonymous(AnonLegacyTableWrapper, table)
	if p := wrapper.Get("position"); p != "absolute" {
		t.Errorf("expected table wrapper to take over position, is %q", p)
	}
	if p := wrapper.Get("padding-left"); p != "0" {
		t.Errorf("expected table wrapper to reset padding, is %q", p)
	}
	chained := StyleForAnonymousChain(table, AnonLegacyTableWrapper, AnonTableWrapper)
	if p := chained.Get("position"); p != "static" {
		t.Errorf("expected anonymous table wrapper to be static, is %q", p)
	}
	if c := chained.Get("color"); c != "green" {
		t.Errorf("expected anonymous wrapper to inherit color, is %q", c)
	}
	cell := StyleForAnonymous(AnonTableCell, table)
	if d := cell.Get("display"); d != "table-cell" {
		t.Errorf("expected display of anonymous cell to be table-cell, is %q", d)
	}
}

func TestDamageForPropertyChange(t *testing.T) {
	if d := DamageForPropertyChange("color"); d != Repaint {
		t.Errorf("expected color change to repaint only, is %s", d)
	}
	if d := DamageForPropertyChange("display"); !d.Contains(ReconstructFlow) {
		t.Errorf("expected display change to reconstruct, is %s", d)
	}
	if d := DamageForPropertyChange("padding-top"); d.Contains(ReconstructFlow) || !d.Contains(BubbleISizes) {
		t.Errorf("expected padding change to reflow without reconstruction, is %s", d)
	}
	d := RebuildAll.Remove(ReconstructFlow)
	if d.Contains(ReconstructFlow) || !d.Contains(Repaint) {
		t.Errorf("expected remove to clear only the reconstruct flag, is %s", d)
	}
}

func TestCompoundProperties(t *testing.T) {
	kv, err := SplitCompoundProperty("border", "1px solid red")
	if err != nil {
		t.Fatal(err)
	}
	if len(kv) != 12 {
		t.Fatalf("expected border shorthand to yield 12 properties, is %d", len(kv))
	}
	pmap := NewPropertyMap()
	for _, p := range kv {
		pmap.Add(p.Key, p.Value)
	}
	if w := pmap.Get("border-left-width"); w != "1px" {
		t.Errorf("expected border-left-width = 1px, is %q", w)
	}
	if s := pmap.Get("border-top-style"); s != "solid" {
		t.Errorf("expected border-top-style = solid, is %q", s)
	}
	kv, _ = SplitCompoundProperty("margin", "1pt 2pt")
	if kv[1].Key != "margin-right" || kv[1].Value != "2pt" {
		t.Errorf("expected margin-right = 2pt, is %v", kv[1])
	}
	kv, _ = SplitCompoundProperty("border-radius", "1px 2px 3px")
	if kv[0].Key != "border-top-left-radius" || kv[0].Value != "1px" {
		t.Errorf("expected border-top-left-radius = 1px, is %v", kv[0])
	}
	if kv[3].Key != "border-bottom-left-radius" || kv[3].Value != "2px" {
		t.Errorf("expected border-bottom-left-radius = 2px, is %v", kv[3])
	}
	if _, err = SplitCompoundProperty("padding", "1 2 3 4 5"); err == nil {
		t.Error("expected padding with 5 values to be rejected")
	}
}

func TestDisplayDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.dom")
	defer teardown()
	//
	for tag, display := range map[string]Property{
		"td": "table-cell", "tr": "table-row", "li": "list-item",
		"span": "inline", "div": "block", "head": "none", "tbody": "table-row-group",
	} {
		n := &html.Node{Type: html.ElementNode, Data: tag}
		if d := DisplayPropertyForHTMLNode(n); d != display {
			t.Errorf("expected <%s> to have display %s, is %s", tag, display, d)
		}
	}
}

func TestColor(t *testing.T) {
	for _, c := range []struct {
		p    Property
		want string
	}{
		{"red", "#ff0000"},
		{"PowderBlue", "#b0e0e6"},
		{"#0f0", "#00ff00"},
		{"#123456", "#123456"},
		{"#12345678", "#123456"},
		{"transparent", ""},
		{"#12345", ""},
		{"#xyz", ""},
	} {
		if s := ColorString(c.p.Color()); s != c.want {
			t.Errorf("expected %q to be color %q, is %q", c.p, c.want, s)
		}
	}
}
