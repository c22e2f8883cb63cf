package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// badgeColors cycle across category groups
	badgeColors = []lipgloss.Color{"160", "42", "81", "220", "141", "208"}

	// headingStyle for level 0 lines
	headingStyle = lipgloss.NewStyle().Bold(true)

	// bulletStyle for the bullet marker of nested lines
	bulletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// connectionStyle for related-line annotations
	connectionStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("240"))

	// summaryBoxStyle for the verbose summary
	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// PrettyFormatter renders the outline for a terminal, with category badges.
type PrettyFormatter struct {
	opts FormatOptions
}

// NewPrettyFormatter creates a new terminal formatter with the given options.
func NewPrettyFormatter(opts FormatOptions) *PrettyFormatter {
	return &PrettyFormatter{opts: opts}
}

// Name returns the format name.
func (f *PrettyFormatter) Name() string {
	return "pretty"
}

// Format renders the report with lipgloss styles.
func (f *PrettyFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		_, err := fmt.Fprintln(w, report.SummaryLine())
		return err
	}

	for i, g := range GroupByCategory(report.Result.StructuredNotes) {
		fmt.Fprintln(w, badge(string(g.Category), i))

		for _, n := range g.Notes {
			indent := strings.Repeat(IndentUnit, min(n.Level, maxIndent))
			if n.Level == 0 {
				fmt.Fprintf(w, "%s%s\n", IndentUnit, headingStyle.Render(n.Content))
			} else {
				fmt.Fprintf(w, "%s%s%s %s\n", IndentUnit, indent, bulletStyle.Render("•"), n.Content)
			}
			if n.HasConnections() {
				fmt.Fprintf(w, "%s%s  %s\n", IndentUnit, indent,
					connectionStyle.Render("↳ "+strings.Join(n.Connections, ", ")))
			}
		}
		fmt.Fprintln(w)
	}

	if f.opts.Verbose {
		fmt.Fprintln(w, summaryBoxStyle.Render(report.SummaryLine()))
	}

	return nil
}

func badge(label string, i int) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")).
		Background(badgeColors[i%len(badgeColors)]).
		Padding(0, 1).
		Render(label)
}
