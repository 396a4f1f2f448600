package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, 0.0, cfg.AbsThreshold)
	assert.False(t, cfg.AllowNonFinite)
	assert.Equal(t, 80, cfg.PrinterWidth)
	assert.Equal(t, 9, cfg.PrintLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	require.NoError(t, cfg.Validate())
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"LDL_ABS_THRESHOLD", "abs_threshold"},
		{"LDL_ALLOW_NON_FINITE", "allow_non_finite"},
		{"LDL_PRINT_LIMIT", "print_limit"},
		{"LDL_LOG_LEVEL", "log.level"},
		{"LDL_LOG_FORMAT", "log.format"},
		{"LDL_CONFIG", ""},
		{"LDL_UNKNOWN", ""},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, envTransformFunc(tt.env))
		})
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("LDL_ABS_THRESHOLD", "1e-9")
	t.Setenv("LDL_ANNOTATE", "2")
	t.Setenv("LDL_LOG_LEVEL", "debug")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)

	t.Setenv(ConfigPathEnvVar, "")
	cfg, err = loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 1e-9, cfg.AbsThreshold)
	assert.Equal(t, 2, cfg.Annotate)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 80, cfg.PrinterWidth)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ldl.yaml")
	content := `
abs_threshold: 1.0e-12
print_limit: 3
lower: true
log:
  level: warn
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-12, cfg.AbsThreshold)
	assert.Equal(t, 3, cfg.PrintLimit)
	assert.True(t, cfg.Lower)
	assert.False(t, cfg.AllowNonFinite)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	// environment wins over the file
	t.Setenv("LDL_PRINT_LIMIT", "5")
	t.Setenv(ConfigPathEnvVar, path)
	cfg, err = loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.PrintLimit)
	assert.True(t, cfg.Lower)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative threshold", func(c *Config) { c.AbsThreshold = -1 }},
		{"annotate too large", func(c *Config) { c.Annotate = 3 }},
		{"zero printer width", func(c *Config) { c.PrinterWidth = 0 }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("annotate: 7\n"), 0o644))
	_, err := loadConfig(path)
	assert.Error(t, err)
}
