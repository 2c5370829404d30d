// Package config provides configuration loading and validation for logsift.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// BaseDirectory is the root of the tree searched for log files.
	BaseDirectory string `yaml:"base_directory"`

	// Extensions are the filename suffixes to match, compared case-insensitively.
	Extensions []string `yaml:"extensions"`

	// RecencyWindow limits scanning to files modified within this duration.
	RecencyWindow time.Duration `yaml:"recency_window,omitempty"`

	// TimestampLayouts are Go time layouts tried in order on each line prefix.
	// See https://pkg.go.dev/time#pkg-constants for format.
	TimestampLayouts []string `yaml:"timestamp_layouts,omitempty"`

	// StrictTimestamps aborts the analysis on the first unparsable timestamp
	// instead of skipping the line.
	StrictTimestamps bool `yaml:"strict_timestamps,omitempty"`

	// LogLevel is the tool's own log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnErrors fires only when error entries were found (default).
	WebhookTriggerOnErrors WebhookTrigger = "on_errors"
	// WebhookTriggerAlways fires after every analysis.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending analysis reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	// ${VAR} and $VAR are expanded from the environment.
	Token string `yaml:"token,omitempty"`

	// Trigger defaults to "on_errors" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
