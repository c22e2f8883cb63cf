// Package config provides configuration loading and validation for NoteMap.
package config

import (
	"time"

	"golang.org/x/text/language"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Locale is a BCP 47 tag used when lower-casing note content for
	// keyword matching (e.g. "en", "de", "tr").
	Locale string `yaml:"locale"`

	// DefaultCategory is assigned to lines that match no category rule.
	DefaultCategory string `yaml:"default_category"`

	// Categories is the ordered rule table. The first matching rule wins.
	Categories []CategoryConfig `yaml:"categories"`

	Connections ConnectionConfig `yaml:"connections"`
	Output      OutputConfig     `yaml:"output"`
	Logging     LoggingConfig    `yaml:"logging"`
	Server      ServerConfig     `yaml:"server"`
	Webhooks    []WebhookConfig  `yaml:"webhooks,omitempty"`

	// language is the parsed Locale (populated during validation).
	language language.Tag
}

// Language returns the parsed locale tag.
// Before validation it falls back to language.Und.
func (c *Config) Language() language.Tag {
	return c.language
}

// CategoryConfig defines a single keyword rule.
type CategoryConfig struct {
	// Name is the category label emitted for matching lines.
	Name string `yaml:"name"`

	// Keywords are case-insensitive substrings; any match triggers the rule.
	Keywords []string `yaml:"keywords"`

	Description string `yaml:"description,omitempty"`
}

// ConnectionConfig tunes the shared-token connection heuristic.
type ConnectionConfig struct {
	// Window is how many preceding lines are checked for each line.
	Window int `yaml:"window"`

	// MinTokenLength is the shortest token considered for overlap.
	MinTokenLength int `yaml:"min_token_length"`

	// PreviewLength is how many characters of a related line are kept.
	PreviewLength int `yaml:"preview_length"`
}

// OutputFormat names a report formatter.
type OutputFormat string

const (
	OutputFormatMarkdown OutputFormat = "markdown"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatHTML     OutputFormat = "html"
	OutputFormatTable    OutputFormat = "table"
	OutputFormatPretty   OutputFormat = "pretty"
)

// OutputFormats lists every supported output format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{
		OutputFormatMarkdown,
		OutputFormatJSON,
		OutputFormatHTML,
		OutputFormatTable,
		OutputFormatPretty,
	}
}

// OutputConfig controls default rendering.
type OutputConfig struct {
	Format OutputFormat `yaml:"format"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is console or json.
	Format string `yaml:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerAlways fires after every analysis (default).
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
	// WebhookTriggerOnUncategorized fires only when some lines fell into
	// the default category.
	WebhookTriggerOnUncategorized WebhookTrigger = "on_uncategorized"
)

// WebhookConfig defines an endpoint that receives analysis reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger defaults to "always" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
