package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/notemap/pkg/analyzer"
)

// ExplainOptions holds command-line options for the explain command.
type ExplainOptions struct {
	Output string
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(g *GlobalOptions) *cobra.Command {
	opts := &ExplainOptions{}

	cmd := &cobra.Command{
		Use:   "explain [notes-file...]",
		Short: "Show why each line got its category and connections",
		Long: `Explain the classification of every note line.

For each line, shows the category, the rule keyword that matched (or
"(default)" when no rule matched), and each connection with the line it
points to and the words the two lines share.

Example:
  notemap explain notes.txt
  cat notes.txt | notemap explain -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, args, g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "table", "Output format (table|json)")

	return cmd
}

func runExplain(cmd *cobra.Command, args []string, g *GlobalOptions, opts *ExplainOptions) error {
	if opts.Output != "table" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (use table or json)", opts.Output)
	}

	cfg, err := g.loadConfig(commandContext(cmd))
	if err != nil {
		return err
	}

	raw, _, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	a, err := analyzer.NewAnalyzer(cfg)
	if err != nil {
		return fmt.Errorf("creating analyzer: %w", err)
	}

	traces, err := a.Trace(raw)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if opts.Output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(traces)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Line", "Level", "Category", "Matched", "Content", "Connections"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for _, t := range traces {
		matched := t.Keyword
		if matched == "" {
			matched = "(default)"
		}
		table.Append([]string{
			strconv.Itoa(t.Line.LineNum),
			strconv.Itoa(t.Line.Level),
			string(t.Line.Category),
			matched,
			t.Line.Content,
			describeLinks(t.Links),
		})
	}
	table.Render()

	return nil
}

func describeLinks(links []analyzer.Link) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, fmt.Sprintf("line %d [%s]", l.LineNum, strings.Join(l.Shared, ", ")))
	}
	return strings.Join(parts, "; ")
}
