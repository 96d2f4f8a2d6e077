package css_test

import (
	"testing"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/tyse/core/dimen"
)

func TestPositionBasic(t *testing.T) {
	a := css.Absolute(nil)
	var o []css.PositionOffset
	switch m := a.Match(); m {
	case m.Absolute(&o):
		t.Logf("offsets = %v", o)
	default:
		t.Errorf("expected Absolute() to be an absolute position, isn't: %#v", a)
	}

	static := css.Static()
	switch m := static.Match(); m {
	case m.IsKind(css.Static()):
		t.Logf("position is static")
	default:
		t.Errorf("expected position to match kind(static), isn't: %#v", static)
	}
}

func TestPositionPattern(t *testing.T) {
	o := []css.PositionOffset{
		{css.JustDimen(10 * dimen.PT), css.Bottom},
	}
	f := css.Fixed(o)
	// now use it
	m := css.PositionPattern[int](f)
	out := m.OneOf(css.PositionPatterns[int]{
		Unset:   10,
		Fixed:   99,
		Default: -1,
	})
	if out != 99 {
		t.Errorf("expected out to be 99, isn't: %#v", out)
	}

	e := css.PositionPattern[[]css.PositionOffset](f)
	off := e.OneOf(css.PositionPatterns[[]css.PositionOffset]{
		Fixed:    e.With(&o).Const(o),
		Relative: css.ZeroOffsets(),
		Default:  css.ZeroOffsets(),
	})
	t.Logf("offsets = %v", off)
	if len(off) != 4 {
		t.Errorf("expected 4 offsets, aren't: %#v", off)
	}
}

func TestPositionAuto(t *testing.T) {
	p := style.Property("absolute")
	pos := css.Position(p)
	m := css.PositionPattern[string](pos)
	x := m.OneOf(css.PositionPatterns[string]{
		Unset:    "NONE",
		Absolute: "ABSOLUTE",
		Default:  "NONE",
	})
	if x != "ABSOLUTE" {
		t.Errorf("expected ABSOLUTE, have %v", x)
	}
}

func TestPositionPredicates(t *testing.T) {
	if !css.Position("absolute").IsAbsolute() {
		t.Errorf("expected position absolute to be absolute")
	}
	if css.Position("").IsAbsolute() {
		t.Errorf("expected unset position not to be absolute")
	}
	if !css.Position("fixed").IsOutOfFlow() || css.Position("relative").IsOutOfFlow() {
		t.Errorf("expected only absolute and fixed positions to be out of flow")
	}
	if sticky := css.Position("Sticky"); !sticky.IsSticky() || sticky.IsStatic() || sticky.IsOutOfFlow() {
		t.Errorf("expected sticky to be positioned in flow, is %v", sticky)
	}
	if !css.Position("inherit").IsStatic() {
		t.Errorf("expected illegal position to count as static")
	}
	pmap := style.InheritFrom(nil)
	pmap.Add("position", "relative")
	pmap.Add("top", "10pt")
	pos := css.PositionOf(pmap)
	var o []css.PositionOffset
	switch m := pos.Match(); m {
	case m.Relative(&o):
		var du dimen.DU
		if o[css.Top].Dim.Match().Just(&du) == nil || du != 10*dimen.PT {
			t.Errorf("expected top offset of 10pt, is %v", o[css.Top].Dim)
		}
	default:
		t.Errorf("expected position to be relative, is %v", pos)
	}
}
