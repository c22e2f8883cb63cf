package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/notemap/pkg/analyzer"
	"github.com/ccollicutt/notemap/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand(g *GlobalOptions) *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <notes-file>",
		Short: "Profile the indentation and category coverage of a notes file",
		Long: `Sample a notes file and report how it is structured.

Reports:
  - Indentation style (none, spaces, tabs, mixed) and inferred indent unit
  - Histogram of indentation levels
  - Lines per category under the current rules
  - Frequent words among uncategorized lines, as keyword suggestions

Optionally generates a starter config file with --write-config. Existing
files are never overwritten.

Example:
  notemap detect notes.txt
  notemap detect --sample 500 journal.txt
  notemap detect -w notemap.yaml notes.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 200, "Number of lines to sample")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, g *GlobalOptions, opts *DetectOptions) error {
	notesFile := args[0]
	ctx := commandContext(cmd)

	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	if _, err := os.Stat(notesFile); os.IsNotExist(err) {
		return fmt.Errorf("notes file not found: %s", notesFile)
	}

	cfg, err := g.loadConfig(ctx)
	if err != nil {
		return err
	}

	d := detector.New(
		detector.WithSampleSize(opts.SampleSize),
		detector.WithRules(analyzer.RulesFromConfig(cfg)),
	)

	profile, err := d.ProfileFile(ctx, notesFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if opts.WriteConfig != "" {
		if err := profile.WriteStarterConfig(opts.WriteConfig, notesFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote starter config to: %s\n", opts.WriteConfig)
	}

	if opts.Output == "json" {
		return outputDetectJSON(cmd.OutOrStdout(), profile, notesFile)
	}
	outputDetectText(cmd.OutOrStdout(), profile, notesFile)
	return nil
}

func outputDetectText(w io.Writer, p *detector.Profile, notesFile string) {
	fmt.Fprintln(w, "=== Notes Profile ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", notesFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", p.SampledLines)

	if p.SampledLines == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No non-blank lines found.")
		return
	}

	fmt.Fprintf(w, "Indentation: %s", p.Style)
	if p.IndentUnit > 0 {
		fmt.Fprintf(w, " (unit %d)", p.IndentUnit)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Max level: %d\n", p.MaxLevel)
	if p.Style == detector.IndentMixed {
		fmt.Fprintln(w, "WARNING: tabs and spaces are mixed; each counts as one level.")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Levels ---")
	for _, l := range p.Levels {
		fmt.Fprintf(w, "  %3d  %s %d\n", l.Level, strings.Repeat("#", min(l.Count, 40)), l.Count)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Categories ---")
	for _, h := range p.Categories {
		fmt.Fprintf(w, "  %-20s %d\n", h.Category, h.Count)
	}
	fmt.Fprintln(w)

	if len(p.Suggestions) > 0 {
		fmt.Fprintf(w, "--- Keyword suggestions (%d uncategorized lines) ---\n", p.Uncategorized())
		for _, s := range p.Suggestions {
			fmt.Fprintf(w, "  %-20s %d\n", s.Token, s.Count)
		}
		fmt.Fprintln(w)
	}
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File string `json:"file"`
	*detector.Profile
}

func outputDetectJSON(w io.Writer, p *detector.Profile, notesFile string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(JSONOutput{File: notesFile, Profile: p})
}
