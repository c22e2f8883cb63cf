package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ccollicutt/notemap/pkg/analyzer"
)

// Outline grammar.
const (
	IndentUnit       = "  "
	RuleSeparator    = "---"
	ConnectionsLabel = "Connections"

	maxIndent       = 3
	maxHeadingDepth = 6
)

// Render groups notes by category and renders the outline.
//
// Each category opens with a "# <category>" heading. Level 0 lines become
// headings of depth min(level+2, 6); deeper lines become "-" bullets indented
// by min(level, 3) indent units. Connections follow their line as an italic
// annotation. Every entry is followed by a blank line and every group by a
// "---" rule.
func Render(notes []analyzer.ClassifiedLine) string {
	var b strings.Builder

	for _, g := range GroupByCategory(notes) {
		fmt.Fprintf(&b, "# %s\n\n", g.Category)

		for _, n := range g.Notes {
			indent := strings.Repeat(IndentUnit, min(n.Level, maxIndent))

			if n.Level == 0 {
				heading := strings.Repeat("#", min(n.Level+2, maxHeadingDepth))
				fmt.Fprintf(&b, "%s %s\n", heading, n.Content)
			} else {
				fmt.Fprintf(&b, "%s- %s\n", indent, n.Content)
			}

			if n.HasConnections() {
				fmt.Fprintf(&b, "%s  *%s: %s*\n", indent, ConnectionsLabel, strings.Join(n.Connections, ", "))
			}

			b.WriteString("\n")
		}

		b.WriteString(RuleSeparator + "\n\n")
	}

	return b.String()
}

// MarkdownFormatter writes the rendered outline.
type MarkdownFormatter struct {
	opts FormatOptions
}

// NewMarkdownFormatter creates a new markdown formatter with the given options.
func NewMarkdownFormatter(opts FormatOptions) *MarkdownFormatter {
	return &MarkdownFormatter{opts: opts}
}

// Name returns the format name.
func (f *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format renders the report as markdown.
func (f *MarkdownFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		_, err := fmt.Fprintln(w, report.SummaryLine())
		return err
	}

	if _, err := io.WriteString(w, report.Result.RenderedOutput); err != nil {
		return err
	}

	if f.opts.Verbose {
		_, err := fmt.Fprintf(w, "<!-- %s (run %s) -->\n", report.SummaryLine(), report.Metadata.RunID)
		return err
	}

	return nil
}
