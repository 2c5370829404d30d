package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
base_directory: /var/log/openiz
extensions:
  - .log
  - .txt
recency_window: 48h
timestamp_layouts:
  - "2006-01-02 15:04:05"
strict_timestamps: true
log_level: debug
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseDirectory != "/var/log/openiz" {
		t.Errorf("BaseDirectory = %q, want %q", cfg.BaseDirectory, "/var/log/openiz")
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{".log", ".txt"}) {
		t.Errorf("Extensions = %v, want [.log .txt]", cfg.Extensions)
	}
	if cfg.RecencyWindow != 48*time.Hour {
		t.Errorf("RecencyWindow = %v, want 48h", cfg.RecencyWindow)
	}
	if len(cfg.TimestampLayouts) != 1 {
		t.Errorf("TimestampLayouts = %v, want 1 layout", cfg.TimestampLayouts)
	}
	if !cfg.StrictTimestamps {
		t.Error("StrictTimestamps = false, want true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoad_DefaultsFillOmittedKeys(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "base_directory: /srv/logs\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(cfg.Extensions, []string{DefaultExtension}) {
		t.Errorf("Extensions = %v, want [%s]", cfg.Extensions, DefaultExtension)
	}
	if cfg.RecencyWindow != DefaultRecencyWindow {
		t.Errorf("RecencyWindow = %v, want %v", cfg.RecencyWindow, DefaultRecencyWindow)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `invalid: yaml: content: [`
	path := writeTempFile(t, "invalid.yaml", content)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_MissingBaseDirectory(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "extensions: [.log]\n")
	_, err := Load(context.Background(), path)
	if err == nil || !strings.Contains(err.Error(), "base_directory") {
		t.Errorf("Load() error = %v, want base_directory error", err)
	}
}

func TestRead_DoesNotValidate(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "extensions: [.txt]\n")
	cfg, err := Read(context.Background(), path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.BaseDirectory != "" {
		t.Errorf("BaseDirectory = %q, want empty", cfg.BaseDirectory)
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{".txt"}) {
		t.Errorf("Extensions = %v, want [.txt]", cfg.Extensions)
	}
}

func TestLoadDefault(t *testing.T) {
	cfg, err := LoadDefault(context.Background())
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadDefault() = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("LOGSIFT_BASE_DIRECTORY", "/from/env")
	t.Setenv("LOGSIFT_EXTENSIONS", ".txt,.dll")
	t.Setenv("LOGSIFT_RECENCY_WINDOW", "36h")
	t.Setenv("LOGSIFT_STRICT_TIMESTAMPS", "true")
	t.Setenv("LOGSIFT_LOG_LEVEL", "error")

	path := writeTempFile(t, "config.yaml", "base_directory: /from/file\nlog_level: debug\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseDirectory != "/from/env" {
		t.Errorf("BaseDirectory = %q, want %q", cfg.BaseDirectory, "/from/env")
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{".txt", ".dll"}) {
		t.Errorf("Extensions = %v, want [.txt .dll]", cfg.Extensions)
	}
	if cfg.RecencyWindow != 36*time.Hour {
		t.Errorf("RecencyWindow = %v, want 36h", cfg.RecencyWindow)
	}
	if !cfg.StrictTimestamps {
		t.Error("StrictTimestamps = false, want true")
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "error")
	}
}

func TestEnvironmentOverrides_InvalidDuration(t *testing.T) {
	t.Setenv("LOGSIFT_RECENCY_WINDOW", "soon")

	if _, err := LoadDefault(context.Background()); err == nil {
		t.Error("LoadDefault() expected error for invalid LOGSIFT_RECENCY_WINDOW")
	}
}

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.BaseDirectory = "/var/log"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing base directory", func(c *Config) { c.BaseDirectory = "  " }, "base_directory"},
		{"no extensions", func(c *Config) { c.Extensions = nil }, "extensions"},
		{"blank extensions", func(c *Config) { c.Extensions = []string{"", " "} }, "extensions"},
		{"negative window", func(c *Config) { c.RecencyWindow = -time.Hour }, "recency_window"},
		{"empty layout", func(c *Config) { c.TimestampLayouts = []string{"2006", ""} }, "timestamp_layouts[1]"},
		{"invalid log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"warning log level", func(c *Config) { c.LogLevel = "WARNING" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := &Config{
		BaseDirectory: "/var/log",
		Extensions:    []string{".log"},
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.RecencyWindow != DefaultRecencyWindow {
		t.Errorf("RecencyWindow = %v, want %v", cfg.RecencyWindow, DefaultRecencyWindow)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}
	if cfg.BaseDirectory != "" {
		t.Errorf("DefaultConfig() BaseDirectory = %q, want empty", cfg.BaseDirectory)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".log" {
		t.Errorf("DefaultConfig() Extensions = %v, want [.log]", cfg.Extensions)
	}
	if cfg.RecencyWindow != 7*24*time.Hour {
		t.Errorf("DefaultConfig() RecencyWindow = %v, want 168h", cfg.RecencyWindow)
	}
}

func TestValidate_Webhook(t *testing.T) {
	tests := []struct {
		name    string
		webhook WebhookConfig
		wantErr bool
	}{
		{"https", WebhookConfig{Name: "ops", URL: "https://example.com/webhook", Trigger: WebhookTriggerOnErrors}, false},
		{"http", WebhookConfig{URL: "http://localhost:8080/webhook"}, false},
		{"missing url", WebhookConfig{Name: "no-url"}, true},
		{"invalid scheme", WebhookConfig{URL: "ftp://example.com/webhook"}, true},
		{"missing host", WebhookConfig{URL: "https:///webhook"}, true},
		{"invalid trigger", WebhookConfig{URL: "https://example.com", Trigger: "sometimes"}, true},
		{"trigger always", WebhookConfig{URL: "https://example.com", Trigger: WebhookTriggerAlways}, false},
		{"trigger never", WebhookConfig{URL: "https://example.com", Trigger: WebhookTriggerNever}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Webhooks = []WebhookConfig{tt.webhook}

			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Webhook_Defaults(t *testing.T) {
	cfg := validConfig()
	cfg.Webhooks = []WebhookConfig{{URL: "https://example.com/webhook"}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Webhooks[0].Trigger != WebhookTriggerOnErrors {
		t.Errorf("Default trigger = %v, want %v", cfg.Webhooks[0].Trigger, WebhookTriggerOnErrors)
	}
	if cfg.Webhooks[0].Timeout != DefaultWebhookTimeout {
		t.Errorf("Default timeout = %v, want %v", cfg.Webhooks[0].Timeout, DefaultWebhookTimeout)
	}
}

func TestValidate_Webhook_TokenExpansion(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "secret-value")

	cfg := validConfig()
	cfg.Webhooks = []WebhookConfig{{URL: "https://example.com", Token: "${TEST_WEBHOOK_TOKEN}"}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Webhooks[0].Token != "secret-value" {
		t.Errorf("Token = %q, want %q", cfg.Webhooks[0].Token, "secret-value")
	}
}

func TestParseWebhookTrigger(t *testing.T) {
	tests := []struct {
		in      string
		want    WebhookTrigger
		wantErr bool
	}{
		{"", WebhookTriggerOnErrors, false},
		{"on_errors", WebhookTriggerOnErrors, false},
		{"always", WebhookTriggerAlways, false},
		{"never", WebhookTriggerNever, false},
		{"sometimes", "", true},
		{"Always", "", true},
		{" never", "", true},
	}

	for _, tt := range tests {
		got, err := ParseWebhookTrigger(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWebhookTrigger(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWebhookTrigger(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "secret-value")

	tests := []struct {
		input string
		want  string
	}{
		{"${TEST_WEBHOOK_TOKEN}", "secret-value"},
		{"$TEST_WEBHOOK_TOKEN", "secret-value"},
		{"plain-value", "plain-value"},
		{"", ""},
		{"$", "$"},
		{"${NONEXISTENT_VAR}", ""},
	}

	for _, tt := range tests {
		got := expandEnvVar(tt.input)
		if got != tt.want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoad_WithWebhooks(t *testing.T) {
	content := `
base_directory: /var/log
webhooks:
  - name: test-webhook
    url: "https://example.com/webhook"
    trigger: on_errors
    timeout: 30s
  - url: "https://backup.example.com/webhook"
    trigger: always
`
	path := writeTempFile(t, "config-with-webhooks.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Webhooks) != 2 {
		t.Fatalf("Webhooks = %d, want 2", len(cfg.Webhooks))
	}
	if cfg.Webhooks[0].Name != "test-webhook" {
		t.Errorf("Webhook[0].Name = %q, want %q", cfg.Webhooks[0].Name, "test-webhook")
	}
	if cfg.Webhooks[0].Timeout != 30*time.Second {
		t.Errorf("Webhook[0].Timeout = %v, want 30s", cfg.Webhooks[0].Timeout)
	}
	if cfg.Webhooks[1].Trigger != WebhookTriggerAlways {
		t.Errorf("Webhook[1].Trigger = %v, want %v", cfg.Webhooks[1].Trigger, WebhookTriggerAlways)
	}
	if cfg.Webhooks[1].Timeout != DefaultWebhookTimeout {
		t.Errorf("Webhook[1].Timeout = %v, want %v", cfg.Webhooks[1].Timeout, DefaultWebhookTimeout)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
