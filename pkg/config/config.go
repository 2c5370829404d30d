package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads a configuration file, applies environment overrides and validates it.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Read reads a configuration file and applies environment overrides without
// validating, so callers can layer command-line flags on top first.
func Read(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := loadEnvironment(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault builds an unvalidated configuration from defaults and the environment.
func LoadDefault(_ context.Context) (*Config, error) {
	cfg := DefaultConfig()
	if err := loadEnvironment(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvironment(cfg *Config) error {
	// A .env file is optional; only its absence is ignored.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return cfg.applyEnvironmentOverrides()
}

// Validate checks a configuration for errors and fills in defaults.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.BaseDirectory) == "" {
		return errors.New("base_directory: is required")
	}

	if !hasExtension(cfg.Extensions) {
		return errors.New("extensions: at least one extension is required")
	}

	if cfg.RecencyWindow < 0 {
		return fmt.Errorf("recency_window: must be positive, got %s", cfg.RecencyWindow)
	}
	if cfg.RecencyWindow == 0 {
		cfg.RecencyWindow = DefaultRecencyWindow
	}

	for i, layout := range cfg.TimestampLayouts {
		if strings.TrimSpace(layout) == "" {
			return fmt.Errorf("timestamp_layouts[%d]: layout is empty", i)
		}
	}

	if err := validateLogLevel(cfg); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func hasExtension(exts []string) bool {
	for _, ext := range exts {
		if strings.TrimSpace(ext) != "" {
			return true
		}
	}
	return false
}

func validateLogLevel(cfg *Config) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
		return nil
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("invalid level %q (must be debug, info, warn, or error)", cfg.LogLevel)
	}
}

// ParseWebhookTrigger converts s to a WebhookTrigger. An empty string means
// WebhookTriggerOnErrors.
func ParseWebhookTrigger(s string) (WebhookTrigger, error) {
	switch t := WebhookTrigger(s); t {
	case "":
		return WebhookTriggerOnErrors, nil
	case WebhookTriggerOnErrors, WebhookTriggerAlways, WebhookTriggerNever:
		return t, nil
	default:
		return "", fmt.Errorf("invalid trigger %q (must be on_errors, always, or never)", s)
	}
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	trigger, err := ParseWebhookTrigger(string(wh.Trigger))
	if err != nil {
		return err
	}
	wh.Trigger = trigger

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands a token given as ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") && len(s) > 1 {
		return os.Getenv(s[1:])
	}
	return s
}
