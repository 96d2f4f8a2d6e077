package boxtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapConfig map[string]interface{}

func (c mapConfig) IsSet(key string) bool { _, ok := c[key]; return ok }
func (c mapConfig) GetInt(key string) int {
	i, _ := c[key].(int)
	return i
}
func (c mapConfig) GetBool(key string) bool {
	b, _ := c[key].(bool)
	return b
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(mapConfig{ConfWorkers: 4, ConfIncremental: false})
	assert.Equal(t, 4, opts.Workers)
	assert.False(t, opts.Incremental)
	assert.NotNil(t, opts.Scanner)
	opts = OptionsFromConfig(mapConfig{ConfWorkers: -2})
	assert.Equal(t, 0, opts.Workers)
	assert.True(t, opts.Incremental, "default is incremental")
	assert.True(t, OptionsFromConfig(nil).Incremental)
}
