// Package cli provides the command-line interface for NoteMap.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/notemap/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing the error itself.
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	g := &commands.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "notemap",
		Short: "Organize freeform notes into a categorized outline",
		Long: `NoteMap turns an unstructured, indented list of notes into an outline
you can paste into a document editor.

It:
  - Reads indentation as hierarchy levels
  - Assigns each line a category by keyword
  - Links lines that share words with one of the three lines before them
  - Renders the result grouped by category

Categories and keywords come from a YAML config file (--config) or the
built-in table; see 'notemap rules'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&g.ConfigPath, "config", "c", "", "Configuration file (YAML); built-in defaults when empty")
	rootCmd.PersistentFlags().StringVar(&g.LogLevel, "log-level", "", "Log level (debug|info|warn|error); overrides logging.level")

	rootCmd.AddCommand(commands.NewAnalyzeCommand(g))
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewExplainCommand(g))
	rootCmd.AddCommand(commands.NewDetectCommand(g))
	rootCmd.AddCommand(commands.NewRulesCommand(g))
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewServeCommand(g))
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
