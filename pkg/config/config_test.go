package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
locale: de
default_category: Sonstiges
categories:
  - name: Werkstatt
    keywords: [regal, brett]
  - name: Einkauf
    keywords: [kaufen]
connections:
  window: 2
  preview_length: 20
output:
  format: json
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DefaultCategory != "Sonstiges" {
		t.Errorf("DefaultCategory = %q, want %q", cfg.DefaultCategory, "Sonstiges")
	}
	if len(cfg.Categories) != 2 {
		t.Fatalf("Categories = %d, want 2", len(cfg.Categories))
	}
	if cfg.Categories[0].Name != "Werkstatt" {
		t.Errorf("Categories[0].Name = %q, want %q", cfg.Categories[0].Name, "Werkstatt")
	}
	if cfg.Connections.Window != 2 {
		t.Errorf("Window = %d, want 2", cfg.Connections.Window)
	}
	if cfg.Connections.MinTokenLength != DefaultMinTokenLength {
		t.Errorf("MinTokenLength = %d, want default %d", cfg.Connections.MinTokenLength, DefaultMinTokenLength)
	}
	if cfg.Connections.PreviewLength != 20 {
		t.Errorf("PreviewLength = %d, want 20", cfg.Connections.PreviewLength)
	}
	if cfg.Output.Format != OutputFormatJSON {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, OutputFormatJSON)
	}
	if cfg.Language() != language.German {
		t.Errorf("Language() = %v, want %v", cfg.Language(), language.German)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Categories) != 5 {
		t.Errorf("Categories = %d, want 5", len(cfg.Categories))
	}
	if cfg.DefaultCategory != DefaultCategory {
		t.Errorf("DefaultCategory = %q, want %q", cfg.DefaultCategory, DefaultCategory)
	}
	if cfg.Connections.Window != DefaultWindow {
		t.Errorf("Window = %d, want %d", cfg.Connections.Window, DefaultWindow)
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

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvDefaultCategory, "Misc")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvServerAddr, "127.0.0.1:9999")

	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DefaultCategory != "Misc" {
		t.Errorf("DefaultCategory = %q, want %q", cfg.DefaultCategory, "Misc")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:9999")
	}
}

func TestValidate_DefaultConfig(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"invalid locale", func(c *Config) { c.Locale = "not a locale!" }},
		{"empty default category", func(c *Config) { c.DefaultCategory = "  " }},
		{"category without name", func(c *Config) {
			c.Categories = []CategoryConfig{{Keywords: []string{"x"}}}
		}},
		{"category without keywords", func(c *Config) {
			c.Categories = []CategoryConfig{{Name: "Empty", Keywords: []string{" ", ""}}}
		}},
		{"duplicate category", func(c *Config) {
			c.Categories = append(c.Categories, CategoryConfig{Name: "Tech", Keywords: []string{"phone"}})
		}},
		{"negative window", func(c *Config) { c.Connections.Window = -1 }},
		{"negative min token length", func(c *Config) { c.Connections.MinTokenLength = -2 }},
		{"negative preview length", func(c *Config) { c.Connections.PreviewLength = -5 }},
		{"unknown output format", func(c *Config) { c.Output.Format = "pdf" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"webhook without url", func(c *Config) { c.Webhooks = []WebhookConfig{{Name: "x"}} }},
		{"webhook bad scheme", func(c *Config) { c.Webhooks = []WebhookConfig{{URL: "ftp://example.com"}} }},
		{"webhook no host", func(c *Config) { c.Webhooks = []WebhookConfig{{URL: "http://"}} }},
		{"webhook bad trigger", func(c *Config) {
			c.Webhooks = []WebhookConfig{{URL: "https://example.com", Trigger: "sometimes"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := Validate(cfg); err == nil {
				t.Errorf("Validate() expected error for %s", tt.name)
			}
		})
	}
}

func TestValidate_TrimsKeywords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Categories = []CategoryConfig{{Name: " Garden ", Keywords: []string{" hose ", "", "rake"}}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	got := cfg.Categories[0]
	if got.Name != "Garden" {
		t.Errorf("Name = %q, want %q", got.Name, "Garden")
	}
	if len(got.Keywords) != 2 || got.Keywords[0] != "hose" || got.Keywords[1] != "rake" {
		t.Errorf("Keywords = %q, want [hose rake]", got.Keywords)
	}
}

func TestValidate_EmptyCategoriesAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Categories = nil

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_WebhookDefaults(t *testing.T) {
	t.Setenv("NOTEMAP_TEST_TOKEN", "secret")

	cfg := DefaultConfig()
	cfg.Webhooks = []WebhookConfig{{URL: "https://example.com/hook", Token: "${NOTEMAP_TEST_TOKEN}"}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	wh := cfg.Webhooks[0]
	if wh.Trigger != WebhookTriggerAlways {
		t.Errorf("Trigger = %q, want %q", wh.Trigger, WebhookTriggerAlways)
	}
	if wh.Timeout != DefaultWebhookTimeout {
		t.Errorf("Timeout = %v, want %v", wh.Timeout, DefaultWebhookTimeout)
	}
	if wh.Token != "secret" {
		t.Errorf("Token = %q, want %q", wh.Token, "secret")
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("NOTEMAP_TEST_VAR", "value")

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"literal", "literal"},
		{"${NOTEMAP_TEST_VAR}", "value"},
		{"$NOTEMAP_TEST_VAR", "value"},
		{"${NOTEMAP_UNSET_VAR}", ""},
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
webhooks:
  - name: docs
    url: "https://example.com/webhook"
    trigger: on_uncategorized
    timeout: 30s
  - url: "https://backup.example.com/webhook"
`
	path := writeTempFile(t, "config-with-webhooks.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Webhooks) != 2 {
		t.Fatalf("Webhooks = %d, want 2", len(cfg.Webhooks))
	}
	if cfg.Webhooks[0].Trigger != WebhookTriggerOnUncategorized {
		t.Errorf("Webhook[0].Trigger = %v, want %v", cfg.Webhooks[0].Trigger, WebhookTriggerOnUncategorized)
	}
	if cfg.Webhooks[0].Timeout != 30*time.Second {
		t.Errorf("Webhook[0].Timeout = %v, want 30s", cfg.Webhooks[0].Timeout)
	}
	if cfg.Webhooks[1].Trigger != WebhookTriggerAlways {
		t.Errorf("Webhook[1].Trigger = %v, want %v", cfg.Webhooks[1].Trigger, WebhookTriggerAlways)
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
