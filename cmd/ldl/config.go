package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "LDL_CONFIG"

var DefaultConfigPaths = []string{
	"ldl.yaml",
	"ldl.yml",
}

type Config struct {
	AbsThreshold   float64   `koanf:"abs_threshold"`
	AllowNonFinite bool      `koanf:"allow_non_finite"`
	Annotate       int       `koanf:"annotate"`
	PrinterWidth   int       `koanf:"printer_width"`
	PrintLimit     int       `koanf:"print_limit"`
	SolutionOnly   bool      `koanf:"solution_only"`
	Lower          bool      `koanf:"lower"`
	Log            LogConfig `koanf:"log"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		AbsThreshold:   0.0,
		AllowNonFinite: false,
		Annotate:       0,
		PrinterWidth:   80,
		PrintLimit:     9,
		SolutionOnly:   false,
		Lower:          false,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// loadConfig layers defaults, the optional YAML file and LDL_* environment
// variables, in that order of increasing priority.
func loadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("LDL_", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps LDL_ABS_THRESHOLD to abs_threshold and LDL_LOG_LEVEL
// to log.level. Unknown variables are dropped.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "LDL_"))

	envMappings := map[string]string{
		"abs_threshold":    "abs_threshold",
		"allow_non_finite": "allow_non_finite",
		"annotate":         "annotate",
		"printer_width":    "printer_width",
		"print_limit":      "print_limit",
		"solution_only":    "solution_only",
		"lower":            "lower",
		"log_level":        "log.level",
		"log_format":       "log.format",
	}
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

func (c *Config) Validate() error {
	if c.AbsThreshold < 0 {
		return fmt.Errorf("abs_threshold must be non-negative, got %g", c.AbsThreshold)
	}
	if c.Annotate < 0 || c.Annotate > 2 {
		return fmt.Errorf("annotate must be 0, 1 or 2, got %d", c.Annotate)
	}
	if c.PrinterWidth <= 0 {
		return fmt.Errorf("printer_width must be positive, got %d", c.PrinterWidth)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
