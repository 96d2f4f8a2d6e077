package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/npillmayer/boxtree/dom"
	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/dom/style/cssom"
	"github.com/npillmayer/boxtree/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/boxtree/dom/styledtree"
	"github.com/npillmayer/boxtree/frame/boxtree"
	"github.com/npillmayer/boxtree/frame/flow"
	"github.com/npillmayer/boxtree/frame/framedbg"
)

var errMalformedRestyle = errors.New("malformed restyle, expected SELECTOR=PROPERTY:VALUE")

// restyle is a property change for all elements matching a selector.
type restyle struct {
	selector cascadia.Sel
	key      string
	value    style.Property
}

func parseRestyle(s string) (restyle, error) {
	sel, decl, ok := strings.Cut(s, "=")
	if !ok {
		return restyle{}, fmt.Errorf("%w: %q", errMalformedRestyle, s)
	}
	key, value, ok := strings.Cut(decl, ":")
	if !ok || strings.TrimSpace(key) == "" {
		return restyle{}, fmt.Errorf("%w: %q", errMalformedRestyle, s)
	}
	compiled, err := cascadia.Parse(strings.TrimSpace(sel))
	if err != nil {
		return restyle{}, fmt.Errorf("restyle selector %q: %w", sel, err)
	}
	return restyle{
		selector: compiled,
		key:      strings.TrimSpace(key),
		value:    style.Property(strings.TrimSpace(value)),
	}, nil
}

// apply sets the property for every matching element of the styled tree and
// returns the number of elements changed.
func (r restyle) apply(root *styledtree.StyNode) (int, error) {
	count := 0
	var err error
	var walk func(sn *styledtree.StyNode)
	walk = func(sn *styledtree.StyNode) {
		if err != nil {
			return
		}
		if sn.Pseudo() == style.PseudoNormal && sn.Type() == boxtree.ElementNode &&
			r.selector.Match(sn.HTMLNode()) {
			if err = dom.SetProperty(sn, r.key, r.value); err != nil {
				return
			}
			count++
		}
		for _, ch := range sn.StyledChildren() {
			walk(ch)
		}
	}
	walk(root)
	return count, err
}

func loadStyleSheets(files []string) ([]cssom.StyleSheet, error) {
	var sheets []cssom.StyleSheet
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("unable to read style sheet: %w", err)
		}
		sheet, err := douceuradapter.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("style sheet %s: %w", f, err)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func openInput(cmd *cli.Command) (io.ReadCloser, string, error) {
	name := cmd.Args().Get(0)
	if name == "" || name == "-" {
		return io.NopCloser(os.Stdin), "STDIN", nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, name, fmt.Errorf("unable to open document: %w", err)
	}
	return f, name, nil
}

func runTree(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	var restyles []restyle
	for _, s := range cmd.StringSlice("set") {
		r, err := parseRestyle(s)
		if err != nil {
			return err
		}
		restyles = append(restyles, r)
	}
	sheets, err := loadStyleSheets(cmd.StringSlice("css"))
	if err != nil {
		return err
	}
	in, name, err := openInput(cmd)
	if err != nil {
		return err
	}
	defer in.Close()
	root, err := styledtree.BuildFromHTML(in, sheets...)
	if root == nil {
		return fmt.Errorf("unable to style %s: %w", name, err)
	}
	if err != nil {
		e.log.Warn("Document has style errors", zap.String("document", name), zap.Error(err))
	}
	opts := boxtree.OptionsFromConfig(e.cfg)
	if cmd.IsSet("workers") {
		opts.Workers = int(cmd.Int("workers"))
	}
	c := boxtree.NewConstructor(opts)
	fl, err := c.BuildBoxTree(ctx, root)
	if err != nil {
		return fmt.Errorf("box tree construction for %s: %w", name, err)
	}
	fmt.Println(framedbg.String(fl))
	for i, r := range restyles {
		n, err := r.apply(root)
		if err != nil {
			return err
		}
		e.log.Info("Restyled elements", zap.String("restyle", cmd.StringSlice("set")[i]), zap.Int("count", n))
		prev := fl
		if fl, err = c.BuildBoxTree(ctx, root); err != nil {
			return fmt.Errorf("incremental box tree construction for %s: %w", name, err)
		}
		e.log.Info("Re-built box tree", zap.Bool("root reused", prev == fl))
		fmt.Println(framedbg.String(fl))
	}
	if dot := cmd.String("dot"); dot != "" {
		return writeDot(fl, dot)
	}
	return nil
}

func writeDot(fl *flow.Flow, fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("unable to create diagram file '%s': %w", fname, err)
	}
	defer f.Close()
	return framedbg.ToGraphViz(fl, f)
}
