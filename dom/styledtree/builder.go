package styledtree

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/cssom"
	"github.com/npillmayer/boxtree/dom/style/cssom/douceuradapter"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoDocumentElement is returned if an HTML parse tree does not contain
// an element to serve as the root of the styled tree.
var ErrNoDocumentElement = errors.New("no document element")

// BuildFromHTML parses an HTML document, collects the style sheets of its
// <style> elements and builds the styled tree. Additional style sheets are
// applied after the document's own sheets.
//
// Style sheets which fail to parse and invalid selectors or inline styles
// do not stop construction. Their errors are accumulated and returned
// together with the styled tree.
func BuildFromHTML(r io.Reader, sheets ...cssom.StyleSheet) (*StyNode, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	c := cssom.NewCSSOM()
	embedded, errs := douceuradapter.ExtractStyleElements(doc)
	for _, s := range embedded {
		errs = multierr.Append(errs, c.AddStyleSheet(s))
	}
	for _, s := range sheets {
		errs = multierr.Append(errs, c.AddStyleSheet(s))
	}
	root, err := Build(doc, c)
	if root == nil {
		return nil, err
	}
	return root, multierr.Append(errs, err)
}

// Build creates a styled tree for an HTML parse tree, styled by a CSSOM.
// doc may be an HTML document node or an element.
//
// Errors from inline styles do not stop construction. They are accumulated
// and returned together with the styled tree. A nil tree is returned only
// if doc has no element to start with.
func Build(doc *html.Node, c *cssom.CSSOM) (*StyNode, error) {
	h := documentElement(doc)
	if h == nil {
		return nil, ErrNoDocumentElement
	}
	if c == nil {
		c = cssom.NewCSSOM()
	}
	b := &builder{cssom: c}
	root := b.element(h, nil)
	tracer().P("root", root.nodeName()).Debugf("styled tree with %d nodes", b.count)
	return root, b.errs
}

func documentElement(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	if doc.Type == html.ElementNode {
		return doc
	}
	for ch := doc.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			return ch
		}
	}
	return nil
}

// builder creates styled nodes top-down: a node's style is computed from its
// parent's style.
type builder struct {
	cssom *cssom.CSSOM
	errs  error
	count int
}

func (b *builder) element(h *html.Node, parent *StyNode) *StyNode {
	sn := NewNodeForHTMLNode(h)
	b.count++
	var parentStyles *style.PropertyMap
	if parent != nil {
		parentStyles = parent.Styles()
	}
	sn.SetStyles(b.cssom.ComputeStyle(h, "", parentStyles, b.inlineStyle(h)))
	sn.addPseudo(b.pseudoElement(h, sn, "before", style.PseudoBefore))
	if h.DataAtom == atom.Details {
		b.detailsChildren(h, sn)
	} else {
		for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
			b.child(ch, sn)
		}
	}
	sn.addPseudo(b.pseudoElement(h, sn, "after", style.PseudoAfter))
	return sn
}

func (b *builder) child(h *html.Node, parent *StyNode) {
	switch h.Type {
	case html.ElementNode:
		parent.AddChild(&b.element(h, parent).Node)
	case html.TextNode:
		sn := NewNodeForHTMLNode(h)
		b.count++
		pmap := style.InheritFrom(parent.Styles())
		pmap.Add("display", "inline")
		sn.SetStyles(pmap)
		parent.AddChild(&sn.Node)
	}
	// comments and doctypes are not styled
}

func (b *builder) inlineStyle(h *html.Node) cssom.Rule {
	for _, a := range h.Attr {
		if a.Key != "style" {
			continue
		}
		rule, err := douceuradapter.ParseInlineStyle(a.Val)
		if err != nil {
			b.errs = multierr.Append(b.errs, err)
			return nil
		}
		return rule
	}
	return nil
}

// pseudoElement creates the node for ::before or ::after, if the element's
// style sheets generate content for it.
func (b *builder) pseudoElement(h *html.Node, elem *StyNode, which string,
	pe style.PseudoElement) *StyNode {
	//
	pmap := b.cssom.ComputeStyle(h, which, elem.Styles(), nil)
	switch style.GetProperty(pmap, "content") {
	case "", "none", "normal":
		return nil
	}
	if style.GetLocalProperty(pmap, "display") == "none" {
		return nil
	}
	sn := newNode(h, pe)
	sn.SetStyles(pmap)
	b.count++
	return sn
}

// detailsChildren wraps the children of a <details> element: the first
// <summary> goes into the details summary, everything else into the details
// content, which is not displayed unless the element is open.
func (b *builder) detailsChildren(h *html.Node, details *StyNode) {
	summary := b.wrapper(details, style.PseudoDetailsSummary, true)
	_, open := details.Attribute("open")
	content := b.wrapper(details, style.PseudoDetailsContent, open)
	hasSummary := false
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if !hasSummary && ch.DataAtom == atom.Summary {
			b.child(ch, summary)
			hasSummary = true
			continue
		}
		b.child(ch, content)
	}
	details.AddChild(&summary.Node)
	details.AddChild(&content.Node)
}

func (b *builder) wrapper(details *StyNode, pe style.PseudoElement, displayed bool) *StyNode {
	pmap := style.InheritFrom(details.Styles())
	if displayed {
		pmap.Add("display", "block")
	} else {
		pmap.Add("display", "none")
	}
	sn := newNode(details.htmlNode, pe)
	sn.SetStyles(pmap)
	b.count++
	return sn
}

func (sn *StyNode) addPseudo(pseudo *StyNode) {
	if pseudo != nil {
		sn.AddChild(&pseudo.Node)
	}
}
