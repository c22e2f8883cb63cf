package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a NoteMap configuration file without running analysis.

Checks:
  - YAML syntax
  - Locale tag
  - Category names and keywords
  - Connection settings
  - Output, logging and webhook settings`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	g := &GlobalOptions{ConfigPath: configPath}
	cfg, err := g.loadConfig(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Locale:           %s\n", cfg.Language())
	fmt.Fprintf(out, "  Default category: %s\n", cfg.DefaultCategory)
	fmt.Fprintf(out, "  Window:           %d lines\n", cfg.Connections.Window)
	fmt.Fprintf(out, "  Output format:    %s\n", cfg.Output.Format)
	fmt.Fprintf(out, "  Webhooks:         %d\n", len(cfg.Webhooks))

	fmt.Fprintf(out, "\nCategories:\n")
	for i, c := range cfg.Categories {
		fmt.Fprintf(out, "  %d. %s [%s]\n", i+1, c.Name, strings.Join(c.Keywords, ", "))
		if c.Description != "" {
			fmt.Fprintf(out, "     %s\n", c.Description)
		}
	}

	return nil
}
