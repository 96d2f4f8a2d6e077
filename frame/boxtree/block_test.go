package boxtree

import (
	"testing"

	"github.com/npillmayer/boxtree/frame/flow"
	"github.com/stretchr/testify/assert"
)

func textFragments(n *testNode, texts ...string) []*flow.Fragment {
	fragments := make([]*flow.Fragment, len(texts))
	for i, t := range texts {
		fragments[i] = textFragment(n, t)
	}
	return fragments
}

func stripBothEnds(fragments []*flow.Fragment) []*flow.Fragment {
	return stripIgnorableWhitespaceFromEnd(stripIgnorableWhitespaceFromStart(fragments))
}

func TestStripIgnorableWhitespace(t *testing.T) {
	span := element("span", "inline")
	for _, c := range []struct {
		in   []string
		want []string
	}{
		{[]string{" ", "\n\t"}, []string{}},
		{[]string{"  ", "\u2067", " abc "}, []string{"\u2067", "abc"}},
		{[]string{"abc", " ", "\u2069", " "}, []string{"abc", "\u2069"}},
		{[]string{" \u2066", "a b", "\u2069 "}, []string{"\u2066", "a b", "\u2069"}},
		{[]string{"\u2066", "\u2069"}, []string{"\u2066", "\u2069"}},
	} {
		stripped := stripBothEnds(textFragments(span, c.in...))
		assert.Equal(t, c.want, unscanned(stripped), "stripping %q", c.in)
		again := stripBothEnds(stripped)
		assert.Equal(t, unscanned(stripped), unscanned(again), "stripping %q twice", c.in)
	}
}

func TestStripKeepsPreservedWhitespace(t *testing.T) {
	pre := element("pre", "block")
	pre.pmap.Add("white-space", "pre")
	stripped := stripBothEnds(textFragments(pre, "  ", "x", "\n"))
	assert.Equal(t, []string{"  ", "x", "\n"}, unscanned(stripped))
}

func TestStripEmptyList(t *testing.T) {
	assert.Empty(t, stripIgnorableWhitespaceFromStart(nil))
	assert.Empty(t, stripIgnorableWhitespaceFromEnd(nil))
}
