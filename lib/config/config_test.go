package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyToolConfig(t *testing.T) {
	cfg := DefaultKeyToolConfig()
	assert.NotEmpty(t, cfg.BaseDir)
	assert.True(t, strings.HasPrefix(cfg.KeyDir, cfg.BaseDir))
	assert.Equal(t, 2048, cfg.DefaultBits)
	assert.Equal(t, "default", cfg.DefaultKeyName)
}

func TestNewKeyToolConfigFromViperDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()
	cfg := NewKeyToolConfigFromViper()
	assert.Equal(t, DefaultKeyToolConfig(), cfg)
}

func TestViperOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()
	viper.Set("key_dir", "/tmp/keys")
	viper.Set("default_bits", 1024)

	cfg := NewKeyToolConfigFromViper()
	assert.Equal(t, "/tmp/keys", cfg.KeyDir)
	assert.Equal(t, 1024, cfg.DefaultBits)
	assert.Equal(t, DefaultKeyToolConfig().DefaultKeyName, cfg.DefaultKeyName)
}
