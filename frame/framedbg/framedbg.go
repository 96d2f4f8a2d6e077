/*
Package framedbg implements helpers to debug box trees.

A box tree may be printed as an indented text tree (using treeprint) or
written as a GraphViz (DOT) diagram.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package framedbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/frame/flow"
	"github.com/npillmayer/schuko/tracing"
	tp "github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// tracer traces with key 'tyse.frame'.
func tracer() tracing.Trace {
	return tracing.Select("tyse.frame")
}

// --- Tree print ---------------------------------------------------------

// Print creates a text tree for a box tree. Every flow is printed with the
// node it originates from; inline flows list their fragments.
func Print(root *flow.Flow) tp.Tree {
	p := tp.New()
	if root == nil {
		p.SetValue("<empty>")
		return p
	}
	p.SetValue(FlowLabel(root))
	ppf(p, root)
	return p
}

// String returns the text tree for a box tree.
func String(root *flow.Flow) string {
	return Print(root).String()
}

func ppf(p tp.Tree, fl *flow.Flow) {
	for _, m := range fl.Markers {
		p.AddMetaNode("marker", FragmentLabel(m))
	}
	for _, c := range fl.Columns {
		p.AddMetaNode("column", FragmentLabel(c))
	}
	for _, f := range fl.Content {
		if w := flow.WrappedFlow(f.Specific); w != nil {
			continue // listed with the children
		}
		p.AddNode(FragmentLabel(f))
	}
	for _, ch := range fl.Children() {
		if ch.ChildCount() == 0 && len(ch.Content) == 0 && len(ch.Markers) == 0 && len(ch.Columns) == 0 {
			p.AddNode(FlowLabel(ch))
			continue
		}
		ppf(p.AddBranch(FlowLabel(ch)), ch)
	}
	for _, abs := range fl.AbsDescendants {
		p.AddMetaNode("abs", abs.Flow.String())
	}
}

// FlowLabel is a short description of a flow, e.g. "Block#12 <div> [root]".
func FlowLabel(fl *flow.Flow) string {
	var b strings.Builder
	b.WriteString(fl.String())
	if fl.Fragment != nil {
		b.WriteString(" ")
		b.WriteString(NodeName(fl.Fragment.Node, fl.Fragment.Pseudo))
	}
	if fl.Flags != 0 {
		fmt.Fprintf(&b, " [%s]", fl.Flags)
	}
	return b.String()
}

// FragmentLabel is a short description of a fragment.
func FragmentLabel(f *flow.Fragment) string {
	return fmt.Sprintf("%s %s", f.Specific, NodeName(f.Node, f.Pseudo))
}

// NodeName names the document node a box originates from.
func NodeName(n flow.OpaqueNode, pseudo style.PseudoElement) string {
	h, ok := n.(*html.Node)
	if !ok || h == nil {
		return "<?>"
	}
	name := h.Data
	if h.Type == html.TextNode {
		name = "#text"
	}
	if pseudo != style.PseudoNormal {
		name += pseudo.String()
	}
	return "<" + name + ">"
}

// --- GraphViz -----------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname     string
	FlowTmpl     *template.Template
	FragmentTmpl *template.Template
	EdgeTmpl     *template.Template
	AbsEdgeTmpl  *template.Template
}

// ToGraphViz outputs a diagram for a box tree. The diagram is in
// GraphViz (DOT) format. Flows are drawn as boxes, fragments of inline
// flows as records. Dashed edges lead from a containing block to its
// absolutely positioned descendants.
func ToGraphViz(root *flow.Flow, w io.Writer) error {
	head, err := template.New("boxtree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	funcs := template.FuncMap{"label": FlowLabel, "fraglabel": FragmentLabel, "fill": fillColor}
	gparams.FlowTmpl = template.Must(template.New("flow").Funcs(funcs).Parse(flowTmpl))
	gparams.FragmentTmpl = template.Must(template.New("fragment").Funcs(funcs).Parse(fragmentTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	gparams.AbsEdgeTmpl = template.Must(template.New("absedge").Parse(absEdgeTmpl))
	if err = head.Execute(w, gparams); err != nil {
		return err
	}
	if root != nil {
		if err = flows(root, w, &gparams); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func flows(fl *flow.Flow, w io.Writer, gparams *graphParamsType) error {
	if err := gparams.FlowTmpl.Execute(w, fl); err != nil {
		return err
	}
	for _, f := range fl.Content {
		if err := gparams.FragmentTmpl.Execute(w, f); err != nil {
			return err
		}
		if err := gparams.EdgeTmpl.Execute(w, edge{fmt.Sprintf("fl%d", fl.ID()), fmt.Sprintf("fr%d", f.ID())}); err != nil {
			return err
		}
	}
	for _, ch := range fl.Children() {
		if err := flows(ch, w, gparams); err != nil {
			return err
		}
		if err := gparams.EdgeTmpl.Execute(w, edge{fmt.Sprintf("fl%d", fl.ID()), fmt.Sprintf("fl%d", ch.ID())}); err != nil {
			return err
		}
	}
	for _, abs := range fl.AbsDescendants {
		if err := gparams.AbsEdgeTmpl.Execute(w, edge{fmt.Sprintf("fl%d", fl.ID()), fmt.Sprintf("fl%d", abs.Flow.ID())}); err != nil {
			return err
		}
	}
	return nil
}

type edge struct {
	From, To string
}

// fillColor is the background color of a flow's main fragment, if set.
func fillColor(fl *flow.Flow) string {
	if c := style.GetLocalProperty(fl.Style(), "background-color").Color(); c != nil {
		return style.ColorString(c)
	}
	if fl.Kind == flow.Inline {
		return "lightyellow"
	}
	return "lightblue3"
}

// Dotty is a helper for testing. Given the root of a box tree and a
// testing.T, it will create a GraphViz image of the box tree and write it
// to a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty(root *flow.Flow, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "boxtree.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing box tree digraph to %s\n", tmpfile.Name())
	if err = ToGraphViz(root, tmpfile); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	tracer().Debugf("calling dot for %s", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "TB"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const flowTmpl = `{{ printf "fl%d" .ID }}	[ label={{ label . | printf "%q" }} shape=box style=filled fillcolor={{ fill . | printf "%q" }} ] ;
`

const fragmentTmpl = `{{ printf "fr%d" .ID }}	[ label={{ fraglabel . | printf "%q" }} shape=box style="rounded,filled" fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
`

const edgeTmpl = `{{ .From }} -> {{ .To }} [weight=1] ;
`

const absEdgeTmpl = `{{ .From }} -> {{ .To }} [dir=none weight=1 style="dashed"] ;
`
