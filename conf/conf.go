package conf

// conf.go holds the YAML configuration for the streamkit CLI. Flags override
// whatever the file provides; the file overrides the defaults.

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	// Verbosity: 0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace.
	Verbosity int    `yaml:"verbosity"`
	Format    string `yaml:"format"` // text or json
}

type SentryConfig struct {
	DSN string `yaml:"dsn"`
}

type MeterConfig struct {
	WindowSeconds int `yaml:"window_seconds"`
}

type Config struct {
	Log    LogConfig    `yaml:"log"`
	Sentry SentryConfig `yaml:"sentry"`
	Meter  MeterConfig  `yaml:"meter"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Verbosity: 3,
			Format:    "text",
		},
		Meter: MeterConfig{
			WindowSeconds: 10,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
