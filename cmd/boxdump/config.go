package main

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/boxtree/frame/boxtree"
	"github.com/npillmayer/schuko/tracing"
	yaml "gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

type (
	// BoxTreeConfig holds the options of box tree construction. Fields are
	// pointers to tell unset values from zero values.
	BoxTreeConfig struct {
		Workers     *int  `yaml:"workers,omitempty"`
		Incremental *bool `yaml:"incremental,omitempty"`
	}

	LoggingConfig struct {
		Level string `yaml:"level"` // none, normal or debug
	}

	// TracingConfig sets the trace levels of the library's tracers. Keys
	// not listed use the default level.
	TracingConfig struct {
		Level string            `yaml:"level"`
		Keys  map[string]string `yaml:"keys"`
	}

	Config struct {
		Version int           `yaml:"version"`
		BoxTree BoxTreeConfig `yaml:"boxtree"`
		Logging LoggingConfig `yaml:"logging"`
		Tracing TracingConfig `yaml:"tracing"`
	}
)

var _ boxtree.Config = (*Config)(nil)

var errVersion = errors.New("unsupported configuration version")

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// only fields we know of are accepted
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("%w: %d", errVersion, cfg.Version)
	}
	switch cfg.Logging.Level {
	case "none", "normal", "debug":
	default:
		return nil, fmt.Errorf("unknown logging level %q", cfg.Logging.Level)
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at path and
// superimposes its values on top of the default configuration. An empty path
// selects the defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg, err := unmarshalConfig(defaultConfig, &Config{})
	if err != nil {
		return nil, fmt.Errorf("default configuration: %w", err)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration: %w", err)
	}
	return unmarshalConfig(data, cfg)
}

// Dump returns the configuration as YAML.
func Dump(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IsSet is part of boxtree.Config.
func (cfg *Config) IsSet(key string) bool {
	switch key {
	case boxtree.ConfWorkers:
		return cfg.BoxTree.Workers != nil
	case boxtree.ConfIncremental:
		return cfg.BoxTree.Incremental != nil
	}
	return false
}

// GetInt is part of boxtree.Config.
func (cfg *Config) GetInt(key string) int {
	if key == boxtree.ConfWorkers && cfg.BoxTree.Workers != nil {
		return *cfg.BoxTree.Workers
	}
	return 0
}

// GetBool is part of boxtree.Config.
func (cfg *Config) GetBool(key string) bool {
	if key == boxtree.ConfIncremental && cfg.BoxTree.Incremental != nil {
		return *cfg.BoxTree.Incremental
	}
	return false
}

// TraceLevel returns the configured level for a tracer key.
func (cfg *Config) TraceLevel(key string) tracing.TraceLevel {
	if l, ok := cfg.Tracing.Keys[key]; ok {
		return tracing.TraceLevelFromString(l)
	}
	return tracing.TraceLevelFromString(cfg.Tracing.Level)
}
