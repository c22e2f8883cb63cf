package config

import (
	"os"
	"time"

	"golang.org/x/text/language"
)

// Default values for configuration.
const (
	DefaultLocale         = "en"
	DefaultCategory       = "General"
	DefaultWindow         = 3
	DefaultMinTokenLength = 4
	DefaultPreviewLength  = 50
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultServerAddr     = ":8080"
	DefaultMaxBodyBytes   = 1 << 20
	DefaultWebhookTimeout = 10 * time.Second
	DefaultOutputFormat   = OutputFormatMarkdown
)

// Environment variable names.
const (
	EnvLocale          = "NOTEMAP_LOCALE"
	EnvDefaultCategory = "NOTEMAP_DEFAULT_CATEGORY"
	EnvLogLevel        = "NOTEMAP_LOG_LEVEL"
	EnvServerAddr      = "NOTEMAP_SERVER_ADDR"
)

// DefaultCategories returns the built-in rule table in priority order.
func DefaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{Name: "DIY Projects", Keywords: []string{"shelf", "board"}},
		{Name: "Furniture", Keywords: []string{"books", "cabinet"}},
		{Name: "Tech", Keywords: []string{"laptop", "computer"}},
		{Name: "Tasks", Keywords: []string{"buy", "check"}},
		{Name: "Repairs", Keywords: []string{"fix", "finish"}},
	}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Locale:          DefaultLocale,
		DefaultCategory: DefaultCategory,
		Categories:      DefaultCategories(),
		Connections: ConnectionConfig{
			Window:         DefaultWindow,
			MinTokenLength: DefaultMinTokenLength,
			PreviewLength:  DefaultPreviewLength,
		},
		Output: OutputConfig{Format: DefaultOutputFormat},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Server: ServerConfig{
			Addr:         DefaultServerAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		language: language.English,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if locale := os.Getenv(EnvLocale); locale != "" {
		c.Locale = locale
	}
	if category := os.Getenv(EnvDefaultCategory); category != "" {
		c.DefaultCategory = category
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if addr := os.Getenv(EnvServerAddr); addr != "" {
		c.Server.Addr = addr
	}
}
