package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
// An empty path yields the default configuration with environment overrides.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills in derived state.
func Validate(cfg *Config) error {
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return fmt.Errorf("locale: invalid tag %q: %w", cfg.Locale, err)
	}
	cfg.language = tag

	if strings.TrimSpace(cfg.DefaultCategory) == "" {
		return errors.New("default_category: must not be empty")
	}

	seen := make(map[string]bool, len(cfg.Categories))
	for i := range cfg.Categories {
		if err := validateCategory(&cfg.Categories[i]); err != nil {
			return fmt.Errorf("categories[%d] (%s): %w", i, cfg.Categories[i].Name, err)
		}
		name := cfg.Categories[i].Name
		if seen[name] {
			return fmt.Errorf("categories[%d]: duplicate category %q", i, name)
		}
		seen[name] = true
	}

	if err := validateConnections(&cfg.Connections); err != nil {
		return fmt.Errorf("connections: %w", err)
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}
	if !IsOutputFormat(string(cfg.Output.Format)) {
		return fmt.Errorf("output.format: unknown format %q", cfg.Output.Format)
	}

	if err := validateLogging(&cfg.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
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

// IsOutputFormat reports whether name is a supported output format.
func IsOutputFormat(name string) bool {
	for _, f := range OutputFormats() {
		if string(f) == name {
			return true
		}
	}
	return false
}

func validateCategory(c *CategoryConfig) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return errors.New("name is required")
	}

	keywords := make([]string, 0, len(c.Keywords))
	for _, kw := range c.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return errors.New("at least one keyword is required")
	}
	c.Keywords = keywords

	return nil
}

func validateConnections(c *ConnectionConfig) error {
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
	if c.Window < 1 {
		return fmt.Errorf("window must be >= 1, got %d", c.Window)
	}

	if c.MinTokenLength == 0 {
		c.MinTokenLength = DefaultMinTokenLength
	}
	if c.MinTokenLength < 1 {
		return fmt.Errorf("min_token_length must be >= 1, got %d", c.MinTokenLength)
	}

	if c.PreviewLength == 0 {
		c.PreviewLength = DefaultPreviewLength
	}
	if c.PreviewLength < 1 {
		return fmt.Errorf("preview_length must be >= 1, got %d", c.PreviewLength)
	}

	return nil
}

func validateLogging(l *LoggingConfig) error {
	if l.Level == "" {
		l.Level = DefaultLogLevel
	}
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level %q (must be debug, info, warn, or error)", l.Level)
	}

	if l.Format == "" {
		l.Format = DefaultLogFormat
	}
	switch l.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid format %q (must be console or json)", l.Format)
	}

	return nil
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

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerAlways, WebhookTriggerNever, WebhookTriggerOnUncategorized:
		default:
			return fmt.Errorf("invalid trigger %q (must be always, never, or on_uncategorized)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerAlways
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}
