package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/notemap/pkg/analyzer"
	"github.com/ccollicutt/notemap/pkg/output"
)

// RenderOptions holds command-line options for the render command.
type RenderOptions struct {
	Output string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <notes.json>",
		Short: "Render previously classified notes as an outline",
		Long: `Render classified notes without re-analyzing them.

The input is JSON: either the output of "notemap analyze -o json", an object
with a "notes" array, or a bare array of notes. Each note has "level",
"content", "category" and optional "connections". Use "-" to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "markdown", "Output format (markdown|html)")

	return cmd
}

func runRender(cmd *cobra.Command, path string, opts *RenderOptions) error {
	if opts.Output != "markdown" && opts.Output != "html" {
		return fmt.Errorf("unknown output format %q (use markdown or html)", opts.Output)
	}

	raw, _, err := readInput(cmd, []string{path})
	if err != nil {
		return err
	}

	notes, err := decodeNotes([]byte(raw))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	rendered := output.Render(notes)
	if opts.Output == "html" {
		rendered, err = output.NewHTMLFormatter(output.FormatOptions{}).Convert(rendered)
		if err != nil {
			return err
		}
	}

	_, err = io.WriteString(cmd.OutOrStdout(), rendered)
	return err
}

// decodeNotes accepts an analysis result, a {"notes": [...]} object or a
// bare array.
func decodeNotes(data []byte) ([]analyzer.ClassifiedLine, error) {
	data = bytes.TrimSpace(data)

	var notes []analyzer.ClassifiedLine
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &notes); err != nil {
			return nil, err
		}
	} else {
		var doc struct {
			StructuredNotes []analyzer.ClassifiedLine `json:"structuredNotes"`
			Notes           []analyzer.ClassifiedLine `json:"notes"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		notes = doc.StructuredNotes
		if len(notes) == 0 {
			notes = doc.Notes
		}
	}

	for i, n := range notes {
		if n.Content == "" {
			return nil, fmt.Errorf("note %d: content must not be empty", i)
		}
		if n.Level < 0 {
			return nil, fmt.Errorf("note %d: level must be >= 0", i)
		}
	}

	return notes, nil
}
