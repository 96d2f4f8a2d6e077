package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/schuko/tracing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Prepare returns the program's logger: a console logger writing to stderr,
// filtered by the configured level.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	return conf.prepare(os.Stderr)
}

func (conf *LoggingConfig) prepare(w io.Writer) (*zap.Logger, error) {
	var level zapcore.Level
	switch conf.Level {
	case "none":
		return zap.NewNop(), nil
	case "normal":
		level = zapcore.InfoLevel
	case "debug":
		level = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown logging level %q", conf.Level)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core), nil
}

// --- Tracing ---------------------------------------------------------------

// traceSelector hands out tracers for the library's trace keys. Tracers log
// through a named child of the program's logger.
type traceSelector struct {
	mx      sync.Mutex
	log     *zap.Logger
	cfg     *Config
	tracers map[string]*zapTrace
}

var _ tracing.TraceSelector = (*traceSelector)(nil)

func newTraceSelector(log *zap.Logger, cfg *Config) *traceSelector {
	return &traceSelector{log: log, cfg: cfg, tracers: make(map[string]*zapTrace)}
}

// Select is part of tracing.TraceSelector. Every key gets a single tracer,
// so that trace levels set by clients stick.
func (sel *traceSelector) Select(key string) tracing.Trace {
	sel.mx.Lock()
	defer sel.mx.Unlock()
	if t, ok := sel.tracers[key]; ok {
		return t
	}
	t := &zapTrace{log: sel.log.Named(key).Sugar(), level: new(atomic.Uint32)}
	t.SetTraceLevel(sel.cfg.TraceLevel(key))
	sel.tracers[key] = t
	return t
}

// zapTrace implements tracing.Trace on top of a zap logger.
type zapTrace struct {
	log   *zap.SugaredLogger
	level *atomic.Uint32 // shared with tracers derived by P
}

var _ tracing.Trace = (*zapTrace)(nil)

func (t *zapTrace) Errorf(msg string, args ...interface{}) {
	t.log.Errorf(msg, args...)
}

func (t *zapTrace) Infof(msg string, args ...interface{}) {
	if t.GetTraceLevel() >= tracing.LevelInfo {
		t.log.Infof(msg, args...)
	}
}

func (t *zapTrace) Debugf(msg string, args ...interface{}) {
	if t.GetTraceLevel() >= tracing.LevelDebug {
		t.log.Debugf(msg, args...)
	}
}

// P adds a field to the tracer's output.
func (t *zapTrace) P(key string, val interface{}) tracing.Trace {
	return &zapTrace{log: t.log.With(key, val), level: t.level}
}

func (t *zapTrace) SetTraceLevel(l tracing.TraceLevel) {
	t.level.Store(uint32(l))
}

func (t *zapTrace) GetTraceLevel() tracing.TraceLevel {
	return tracing.TraceLevel(t.level.Load())
}

// SetOutput routes the tracer's output to w, bypassing the program's log
// level.
func (t *zapTrace) SetOutput(w io.Writer) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = zapcore.OmitKey
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel)
	t.log = zap.New(core).Sugar()
}
