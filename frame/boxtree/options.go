package boxtree

import (
	"github.com/npillmayer/boxtree/dom/style"
	"github.com/npillmayer/boxtree/frame/flow"
	"github.com/npillmayer/boxtree/frame/textrun"
)

// AnonymousStyler derives the style of an anonymous box from the style of its
// reference box.
type AnonymousStyler func(kind style.AnonymousKind, parent *style.PropertyMap) *style.PropertyMap

// TextRunScanner turns unscanned text fragments into scanned ones. It is
// called once for every inline flow created.
type TextRunScanner interface {
	ScanForRuns(fragments []*flow.Fragment) []*flow.Fragment
}

// Options control box tree construction.
type Options struct {
	Workers     int  // maximum number of concurrent workers; 0 selects a default
	Incremental bool // skip and repair undamaged subtrees on later passes
	Scanner     TextRunScanner
	Styler      AnonymousStyler
}

// DefaultOptions returns options for incremental construction with a default
// number of workers.
func DefaultOptions() Options {
	return Options{
		Incremental: true,
		Scanner:     textrun.NewScanner(),
		Styler:      style.StyleForAnonymous,
	}
}

// Config is the subset of a key/value configuration the constructor reads
// its options from. It is satisfied by schuko configurations.
type Config interface {
	IsSet(key string) bool
	GetInt(key string) int
	GetBool(key string) bool
}

// Configuration keys.
const (
	ConfWorkers     = "boxtree.workers"
	ConfIncremental = "boxtree.incremental"
)

// OptionsFromConfig reads options from a configuration. Keys not present
// keep their default value.
func OptionsFromConfig(conf Config) Options {
	opts := DefaultOptions()
	if conf == nil {
		return opts
	}
	if conf.IsSet(ConfWorkers) {
		opts.Workers = conf.GetInt(ConfWorkers)
		if opts.Workers < 0 {
			opts.Workers = 0
		}
	}
	if conf.IsSet(ConfIncremental) {
		opts.Incremental = conf.GetBool(ConfIncremental)
	}
	tracer().P("workers", opts.Workers).Debugf("box tree options, incremental=%v", opts.Incremental)
	return opts
}

func (opts Options) withDefaults() Options {
	if opts.Scanner == nil {
		opts.Scanner = textrun.NewScanner()
	}
	if opts.Styler == nil {
		opts.Styler = style.StyleForAnonymous
	}
	return opts
}
