package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/tyse/core/dimen"
	. "github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	// Flags for content dependent dimensions
	DimenContentMax uint32 = 0x0010
	DimenContentMin uint32 = 0x0020
	DimenContentFit uint32 = 0x0030
	contentMask     uint32 = 0x00f0

	dimenEM      uint32 = 0x0100
	dimenEX      uint32 = 0x0200
	dimenCH      uint32 = 0x0300
	dimenREM     uint32 = 0x0400
	dimenVW      uint32 = 0x0500
	dimenVH      uint32 = 0x0600
	dimenVMIN    uint32 = 0x0700
	dimenVMAX    uint32 = 0x0800
	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d       dimen.DU
	percent Percent
	factor  float64 // for font- and viewport-relative units
	flags   uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage Percent
	| ViewRel unit
	| FontRel unit
	| ContentRel Min N
	| ContentRel Max N
*/

func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(n Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// FontRelative creates a CSS dimension relative to the font size, e.g. 1.5em.
func FontRelative(f float64) DimenT {
	return DimenT{factor: f, flags: dimenEM}
}

// IsAuto is true for dimension 'auto'.
func (d DimenT) IsAuto() bool {
	return d.flags&kindMask == dimenAuto
}

// IsAbsolute is true for fixed dimensions.
func (d DimenT) IsAbsolute() bool {
	return d.flags&kindMask == dimenAbsolute
}

// IsZero is true for fixed dimensions of value 0 and for 0%.
func (d DimenT) IsZero() bool {
	switch {
	case d.IsAbsolute():
		return d.d == 0
	case d.flags&relativeMask == dimenPercent:
		return d.percent == FromInt(0)
	case d.flags&relativeMask != 0:
		return d.factor == 0
	}
	return false
}

// Resolve returns the absolute value of a dimension, with font-relative
// units relative to fontSize. Other relative units and keywords resolve
// to zero.
func (d DimenT) Resolve(fontSize dimen.DU) dimen.DU {
	switch {
	case d.IsAbsolute():
		return d.d
	case d.flags&relativeMask == dimenEM, d.flags&relativeMask == dimenREM:
		return dimen.DU(d.factor * float64(fontSize))
	case d.flags&relativeMask == dimenEX, d.flags&relativeMask == dimenCH:
		return dimen.DU(d.factor * float64(fontSize) / 2)
	}
	return 0
}

func (d DimenT) String() string {
	switch {
	case d.IsAuto():
		return "auto"
	case d.IsAbsolute():
		return d.d.String()
	case d.flags&relativeMask == dimenPercent:
		return fmt.Sprintf("%v", d.percent)
	case d.flags&relativeMask != 0:
		return fmt.Sprintf("%grel", d.factor)
	}
	return "none"
}

// ---------------------------------------------------------------------------

var unitFactors = map[string]float64{
	"pt": 1.0,
	"bp": 1.0,
	"px": 0.75,
	"in": 72.0,
	"pc": 12.0,
	"cm": 72.0 / 2.54,
	"mm": 72.0 / 25.4,
	"q":  72.0 / 101.6,
}

var relativeUnits = map[string]uint32{
	"em":   dimenEM,
	"ex":   dimenEX,
	"ch":   dimenCH,
	"rem":  dimenREM,
	"vw":   dimenVW,
	"vh":   dimenVH,
	"vmin": dimenVMIN,
	"vmax": dimenVMAX,
}

// ParseDimen parses a CSS dimension property, e.g. "12pt", "50%", "auto"
// or a border-width keyword.
func ParseDimen(p style.Property) (DimenT, error) {
	s := strings.TrimSpace(strings.ToLower(p.String()))
	switch s {
	case "", "none":
		return DimenT{}, nil
	case "auto":
		return Auto(), nil
	case "inherit":
		return Inherit(), nil
	case "initial":
		return Initial(), nil
	case "thin":
		return JustDimen(dimen.PT / 2), nil
	case "medium":
		return JustDimen(dimen.PT * 3 / 2), nil
	case "thick":
		return JustDimen(dimen.PT * 3), nil
	case "max-content":
		return DimenT{flags: DimenContentMax}, nil
	case "min-content":
		return DimenT{flags: DimenContentMin}, nil
	case "fit-content":
		return DimenT{flags: DimenContentFit}, nil
	}
	i := strings.IndexFunc(s, func(c rune) bool {
		return !(c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+')
	})
	num, unit := s, ""
	if i >= 0 {
		num, unit = s[:i], s[i:]
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return DimenT{}, fmt.Errorf("not a CSS dimension: %q", s)
	}
	switch {
	case unit == "":
		if f != 0 {
			return DimenT{}, fmt.Errorf("CSS dimension without unit: %q", s)
		}
		return JustDimen(0), nil
	case unit == "%":
		return Percentage(FromInt(int(math.Round(f)))), nil
	}
	if factor, ok := unitFactors[unit]; ok {
		return JustDimen(dimen.DU(f * factor * float64(dimen.PT))), nil
	}
	if flag, ok := relativeUnits[unit]; ok {
		return DimenT{factor: f, flags: flag}, nil
	}
	return DimenT{}, fmt.Errorf("unknown unit in CSS dimension: %q", s)
}

// ---------------------------------------------------------------------------

func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

type Matcher struct {
	dimen DimenT
}

func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case (m.dimen.flags & kindMask) == (d.flags & kindMask):
		return m
	case (m.dimen.flags&relativeMask > 0) && (d.flags&relativeMask > 0):
		if (m.dimen.flags&dimenPercent > 0) != (d.flags&dimenPercent > 0) {
			return nil
		}
		return m
	case (m.dimen.flags&contentMask > 0) && (d.flags&contentMask > 0):
		return m
	}
	return nil
}

func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.flags&kindMask == dimenAbsolute {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

func (m *Matcher) Percentage(p *Percent) *Matcher {
	if m.dimen.flags&relativeMask == dimenPercent {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

type DimenPatterns[T any] struct {
	Auto    T
	Inherit T
	Initial T
	Just    T
	Default T
}

func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

type MatchExpr[T any] struct {
	dimen DimenT
}

func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	switch m.dimen.flags & kindMask {
	case dimenAuto:
		return patterns.Auto
	case dimenAbsolute:
		return patterns.Just
	case dimenInitial:
		return patterns.Initial
	case dimenInherit:
		return patterns.Inherit
	}
	return patterns.Default
}

func (m *MatchExpr[T]) With(du *dimen.DU) *MatchExpr[T] {
	*du = m.dimen.d
	return m
}

func (m *MatchExpr[T]) Const(x T) T {
	return x
}
