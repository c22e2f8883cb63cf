// Package commands implements the notemap subcommands.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/notemap/internal/logging"
	"github.com/ccollicutt/notemap/pkg/config"
	"github.com/ccollicutt/notemap/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// GlobalOptions holds the persistent root flags shared by all commands.
type GlobalOptions struct {
	// ConfigPath is the optional YAML configuration file.
	ConfigPath string

	// LogLevel overrides logging.level from the configuration.
	LogLevel string
}

// loadConfig loads the configuration file, or the defaults when none is set.
func (g *GlobalOptions) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, g.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Logging.Level = g.LogLevel
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger. Diagnostics never go to stdout.
func (g *GlobalOptions) newLogger(cfg *config.Config, w io.Writer) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Logging, w)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// commandContext returns the command's context, or a background one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openSources expands the file arguments into sources. No arguments, or "-",
// reads standard input.
func openSources(cmd *cobra.Command, args []string) ([]parser.Source, []string, error) {
	if len(args) == 0 {
		args = []string{parser.StdinName}
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return nil, nil, fmt.Errorf("expanding inputs: %w", err)
	}

	sources := make([]parser.Source, 0, len(files))
	for _, f := range files {
		if f == parser.StdinName {
			sources = append(sources, parser.NewReaderSource(parser.StdinName, cmd.InOrStdin()))
			continue
		}
		sources = append(sources, parser.NewFileSource(f))
	}

	return sources, files, nil
}

// readInput reads and joins every input named by args.
func readInput(cmd *cobra.Command, args []string) (string, []string, error) {
	sources, names, err := openSources(cmd, args)
	if err != nil {
		return "", nil, err
	}

	raw, err := parser.ReadSources(commandContext(cmd), sources...)
	if err != nil {
		return "", nil, fmt.Errorf("reading notes: %w", err)
	}
	return raw, names, nil
}
