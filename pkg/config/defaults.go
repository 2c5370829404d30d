package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Default values for configuration.
const (
	DefaultRecencyWindow  = 7 * 24 * time.Hour
	DefaultWebhookTimeout = 10 * time.Second
	DefaultLogLevel       = "info"
	DefaultExtension      = ".log"
)

// EnvPrefix is prepended to every environment variable read by logsift.
const EnvPrefix = "LOGSIFT_"

// envOverrides mirrors the config keys that may be set from the environment.
// Zero values mean "not set".
type envOverrides struct {
	BaseDirectory    string        `env:"BASE_DIRECTORY"`
	Extensions       []string      `env:"EXTENSIONS" envSeparator:","`
	RecencyWindow    time.Duration `env:"RECENCY_WINDOW"`
	StrictTimestamps bool          `env:"STRICT_TIMESTAMPS"`
	LogLevel         string        `env:"LOG_LEVEL"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Extensions:    []string{DefaultExtension},
		RecencyWindow: DefaultRecencyWindow,
		LogLevel:      DefaultLogLevel,
	}
}

// applyEnvironmentOverrides applies LOGSIFT_* environment variables to the config.
func (c *Config) applyEnvironmentOverrides() error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	if o.BaseDirectory != "" {
		c.BaseDirectory = o.BaseDirectory
	}
	if len(o.Extensions) > 0 {
		c.Extensions = o.Extensions
	}
	if o.RecencyWindow > 0 {
		c.RecencyWindow = o.RecencyWindow
	}
	if o.StrictTimestamps {
		c.StrictTimestamps = true
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}

	return nil
}
