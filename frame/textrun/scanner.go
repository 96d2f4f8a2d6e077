/*
Package textrun converts unscanned text fragments into scanned text runs.

Consecutive unscanned text fragments of an inline formatting context are
concatenated into a single text run, after collapsing white-space according
to each fragment's 'white-space' property. Every fragment is then replaced by
a scanned text fragment referencing its range of the run. The scanner
resolves bidi embedding levels (golang.org/x/text/unicode/bidi) and computes
intrinsic inline sizes from grapheme clusters and line-break opportunities
(github.com/go-text/typesetting/segmenter).

Shaping is not done here; it is the task of a later layout stage.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package textrun

import (
	"strings"

	"github.com/go-text/typesetting/segmenter"
	"github.com/npillmayer/boxtree/dom/style/css"
	"github.com/npillmayer/boxtree/frame/flow"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/bidi"
)

// tracer traces with key 'tyse.frame'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.frame")
}

// Scanner scans lists of fragments for text runs. A Scanner has no state of
// its own and may be used from more than one goroutine.
type Scanner struct{}

// NewScanner creates a text-run scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// ScanForRuns replaces unscanned text fragments with scanned ones. Other
// fragments are passed through unchanged. Fragments whose text collapses to
// nothing are dropped, with the exception of fragments which have been empty
// from the start (these stand for empty inline boxes with padding or border).
func (sc *Scanner) ScanForRuns(fragments []*flow.Fragment) []*flow.Fragment {
	result := make([]*flow.Fragment, 0, len(fragments))
	var group []*flow.Fragment
	for _, f := range fragments {
		if _, ok := f.Specific.(*flow.UnscannedText); ok {
			group = append(group, f)
			continue
		}
		if len(group) > 0 {
			result = append(result, sc.scanRun(group)...)
			group = nil
		}
		result = append(result, f)
	}
	if len(group) > 0 {
		result = append(result, sc.scanRun(group)...)
	}
	return result
}

// fragment range in the run: bytes and runes
type span struct {
	start, end         int
	runeStart, runeEnd int
	empty              bool // empty before collapsing
}

func (sc *Scanner) scanRun(group []*flow.Fragment) []*flow.Fragment {
	var b strings.Builder
	spans := make([]span, len(group))
	runeCount := 0
	afterSpace := false
	for i, f := range group {
		text := f.Specific.(*flow.UnscannedText).Text
		spans[i].start, spans[i].runeStart = b.Len(), runeCount
		spans[i].empty = text == ""
		ws := css.WhiteSpaceOf(f.Style)
		for _, r := range text {
			if flow.IsBidiControl(r) {
				b.WriteRune(r)
				runeCount++
				continue
			}
			if ws.PreserveSpaces() || !isCollapsible(r, ws) {
				afterSpace = r == '\n'
				b.WriteRune(r)
				runeCount++
				continue
			}
			if !afterSpace {
				b.WriteRune(' ')
				runeCount++
				afterSpace = true
			}
		}
		spans[i].end, spans[i].runeEnd = b.Len(), runeCount
	}
	run := &flow.TextRun{Text: b.String(), RTL: css.DirectionOf(group[0].Style) == css.RightToLeft}
	runes := []rune(run.Text)
	levels := bidiLevels(run.Text, len(runes), run.RTL)
	graphemes, breaks := segment(runes)
	//
	scanned := make([]*flow.Fragment, 0, len(group))
	for i, f := range group {
		sp := spans[i]
		if sp.start == sp.end && !sp.empty {
			continue // collapsed away
		}
		st := &flow.ScannedText{
			Run:   run,
			Start: sp.start,
			End:   sp.end,
		}
		if sp.runeStart < len(levels) {
			st.BidiLevel = levels[sp.runeStart]
		}
		st.MaxISize = graphemes.count(sp.runeStart, sp.runeEnd)
		for _, seg := range breaks {
			from, to := max(seg.start, sp.runeStart), min(trimSpaces(runes, seg), sp.runeEnd)
			if from < to {
				st.MinISize = max(st.MinISize, graphemes.count(from, to))
			}
		}
		c := f.Clone()
		c.Specific = st
		scanned = append(scanned, c)
	}
	run.Count = len(scanned)
	tracer().Debugf("text run %q shared by %d fragments", run.Text, run.Count)
	return scanned
}

// isCollapsible is true if r is white-space which collapses under ws.
func isCollapsible(r rune, ws css.WhiteSpace) bool {
	if r == '\n' {
		return !ws.PreserveNewlines()
	}
	return flow.IsCollapsibleWhitespace(r)
}

// bidiLevels resolves the embedding level for every rune of text.
func bidiLevels(text string, n int, rtl bool) []uint8 {
	levels := make([]uint8, n)
	if text == "" {
		return levels
	}
	var base, ltr uint8 = 0, 0
	opt := bidi.DefaultDirection(bidi.LeftToRight)
	if rtl {
		base, ltr = 1, 2
		opt = bidi.DefaultDirection(bidi.RightToLeft)
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(text, opt); err != nil {
		tracer().Errorf("bidi: %v", err)
		return fill(levels, base)
	}
	ordering, err := p.Order()
	if err != nil {
		tracer().Errorf("bidi: %v", err)
		return fill(levels, base)
	}
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos() // end is inclusive
		level := ltr
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		for j := start; j <= end && j < n; j++ {
			levels[j] = level
		}
	}
	return levels
}

func fill(levels []uint8, l uint8) []uint8 {
	for i := range levels {
		levels[i] = l
	}
	return levels
}

// graphemeStarts marks the runes starting a grapheme cluster.
type graphemeStarts []bool

func (gs graphemeStarts) count(from, to int) int {
	n := 0
	for i := from; i < to && i < len(gs); i++ {
		if gs[i] {
			n++
		}
	}
	return n
}

type lineSegment struct {
	start, end int // runes
}

// segment finds grapheme clusters and line-break opportunities.
func segment(runes []rune) (graphemeStarts, []lineSegment) {
	gs := make(graphemeStarts, len(runes))
	if len(runes) == 0 {
		return gs, nil
	}
	var seg segmenter.Segmenter
	seg.Init(runes)
	giter := seg.GraphemeIterator()
	for giter.Next() {
		g := giter.Grapheme()
		if g.Offset < len(gs) {
			gs[g.Offset] = true
		}
	}
	var breaks []lineSegment
	seg.Init(runes)
	liter := seg.LineIterator()
	for liter.Next() {
		l := liter.Line()
		breaks = append(breaks, lineSegment{start: l.Offset, end: l.Offset + len(l.Text)})
	}
	return gs, breaks
}

// trimSpaces returns the end of a line segment without trailing white-space,
// which hangs at the end of a line.
func trimSpaces(runes []rune, seg lineSegment) int {
	end := seg.end
	for end > seg.start && flow.IsCollapsibleWhitespace(runes[end-1]) {
		end--
	}
	return end
}
