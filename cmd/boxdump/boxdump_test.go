package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/boxtree/dom/styledtree"
	"github.com/npillmayer/boxtree/frame/boxtree"
	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeConfig(t *testing.T, content string) string {
	fname := filepath.Join(t.TempDir(), "boxdump.yaml")
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))
	return fname
}

func TestDefaultConfiguration(t *testing.T) {
	cfg, err := LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, "normal", cfg.Logging.Level)
	opts := boxtree.OptionsFromConfig(cfg)
	assert.True(t, opts.Incremental)
	assert.Equal(t, 0, opts.Workers)
	assert.Equal(t, tracing.LevelError, cfg.TraceLevel("tyse.frame"))
}

func TestConfigurationOverlay(t *testing.T) {
	fname := writeConfig(t, `
version: 1
boxtree:
  workers: 3
tracing:
  keys:
    tyse.frame: debug
`)
	cfg, err := LoadConfiguration(fname)
	require.NoError(t, err)
	assert.True(t, cfg.IsSet(boxtree.ConfWorkers))
	assert.Equal(t, 3, cfg.GetInt(boxtree.ConfWorkers))
	assert.True(t, cfg.GetBool(boxtree.ConfIncremental), "default survives the overlay")
	assert.Equal(t, tracing.LevelDebug, cfg.TraceLevel("tyse.frame"))
	assert.Equal(t, tracing.LevelError, cfg.TraceLevel("tyse.dom"))
	data, err := Dump(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workers: 3")
}

func TestConfigurationRejectsUnknownFields(t *testing.T) {
	_, err := LoadConfiguration(writeConfig(t, "version: 1\nboxtree:\n  threads: 2\n"))
	assert.Error(t, err)
	_, err = LoadConfiguration(writeConfig(t, "version: 2\n"))
	assert.ErrorIs(t, err, errVersion)
	_, err = LoadConfiguration(writeConfig(t, "version: 1\nlogging:\n  level: loud\n"))
	assert.Error(t, err)
}

func TestZapTracer(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg, err := LoadConfiguration("")
	require.NoError(t, err)
	cfg.Tracing.Keys = map[string]string{"tyse.frame": "info"}
	sel := newTraceSelector(zap.New(core), cfg)
	tr := sel.Select("tyse.frame")
	assert.Same(t, tr, sel.Select("tyse.frame"), "one tracer per key")
	tr.Debugf("hidden")
	tr.P("node", "div").Infof("shown %d", 1)
	tr.SetTraceLevel(tracing.LevelDebug)
	tr.Debugf("now shown")
	sel.Select("tyse.dom").Infof("hidden, level is error")
	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "shown 1", entries[0].Message)
	assert.Equal(t, "tyse.frame", entries[0].LoggerName)
	assert.Equal(t, "div", entries[0].ContextMap()["node"])
	assert.Equal(t, "now shown", entries[1].Message)
}

func TestLoggingPrepare(t *testing.T) {
	var buf strings.Builder
	log, err := (&LoggingConfig{Level: "normal"}).prepare(&buf)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.NotContains(t, buf.String(), "hidden")
	_, err = (&LoggingConfig{Level: "verbose"}).prepare(&buf)
	assert.Error(t, err)
}

func TestRestyle(t *testing.T) {
	root, err := styledtree.BuildFromHTML(strings.NewReader(
		`<html><body><p class="x">a</p><p>b</p><div class="x">c</div></body></html>`))
	require.NoError(t, err)
	c := boxtree.NewConstructor(boxtree.DefaultOptions())
	first, err := c.BuildBoxTree(context.Background(), root)
	require.NoError(t, err)
	//
	r, err := parseRestyle("p.x = display: none")
	require.NoError(t, err)
	assert.Equal(t, "display", r.key)
	n, err := r.apply(root)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	second, err := c.BuildBoxTree(context.Background(), root)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	//
	_, err = parseRestyle("p.x")
	assert.ErrorIs(t, err, errMalformedRestyle)
	_, err = parseRestyle("p[=color:red")
	assert.Error(t, err)
}
