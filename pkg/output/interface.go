package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/notemap/pkg/config"
)

// Formatter renders analysis reports in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (markdown, json, ...).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds summary details to the output.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool
}

// NewFormatter returns the formatter registered for format.
func NewFormatter(format config.OutputFormat, opts FormatOptions) (Formatter, error) {
	switch format {
	case config.OutputFormatMarkdown, "":
		return NewMarkdownFormatter(opts), nil
	case config.OutputFormatJSON:
		return NewJSONFormatter(opts), nil
	case config.OutputFormatHTML:
		return NewHTMLFormatter(opts), nil
	case config.OutputFormatTable:
		return NewTableFormatter(opts), nil
	case config.OutputFormatPretty:
		return NewPrettyFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use markdown, json, html, table, or pretty)", format)
	}
}
