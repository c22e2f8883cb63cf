package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/notemap/pkg/analyzer"
	"github.com/ccollicutt/notemap/pkg/config"
	"github.com/ccollicutt/notemap/pkg/output"
	"github.com/ccollicutt/notemap/pkg/webhook"
)

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	Output  string
	Verbose bool
	Quiet   bool
	Strict  bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(g *GlobalOptions) *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [notes-file...]",
		Short: "Categorize notes into a structured outline",
		Long: `Analyze freeform, indented notes and render them as an outline grouped by category.

Each non-empty line is assigned to the first category whose keywords it
contains, or to the default category. Lines that share a word with one of the
three preceding lines are annotated with a connection.

Notes are read from the given files (globs allowed), or from stdin when no file
or "-" is given. Multiple files are concatenated in order.

Exit codes:
  0 - Success
  1 - Uncategorized lines found (with --strict)
  2 - Configuration or runtime error, including empty input`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (markdown|json|html|table|pretty); defaults to output.format from config")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include summary and run metadata")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no outline")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit with code 1 when any line is uncategorized")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerAlways), "When to fire webhook (always|on_uncategorized|never)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, g *GlobalOptions, opts *AnalyzeOptions) error {
	ctx := commandContext(cmd)

	cfg, err := g.loadConfig(ctx)
	if err != nil {
		return err
	}

	logger, err := g.newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	formatter, err := createFormatter(cfg, opts)
	if err != nil {
		return err
	}

	hooks, err := collectWebhooks(cfg, opts)
	if err != nil {
		return err
	}

	start := time.Now()

	raw, names, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	logger.Debug("read notes", zap.Strings("sources", names), zap.Int("bytes", len(raw)))

	a, err := analyzer.NewAnalyzer(cfg)
	if err != nil {
		return fmt.Errorf("creating analyzer: %w", err)
	}

	analysis, err := a.Analyze(raw)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := output.NewReport(analysis, output.Metadata{
		Sources:    names,
		AnalyzedAt: start,
		Duration:   time.Since(start),
	})
	logger.Debug("analysis complete",
		zap.String("run_id", report.Metadata.RunID),
		zap.Int("lines", report.Summary.Lines),
		zap.Int("categories", report.Summary.Categories),
		zap.Int("uncategorized", report.Summary.Uncategorized))

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Webhook failures are logged but don't fail the analysis.
	if len(hooks) > 0 {
		webhook.NewDispatcher(nil, logger).Dispatch(ctx, report, hooks)
	}

	if opts.Strict && report.HasUncategorized() {
		ExitCode = 1
	}

	return nil
}

func createFormatter(cfg *config.Config, opts *AnalyzeOptions) (output.Formatter, error) {
	format := config.OutputFormat(opts.Output)
	if format == "" {
		format = cfg.Output.Format
	}

	return output.NewFormatter(format, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
}

// collectWebhooks merges config file webhooks with the CLI webhook.
// The CLI webhook is validated like a configured one.
func collectWebhooks(cfg *config.Config, opts *AnalyzeOptions) ([]config.WebhookConfig, error) {
	hooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	hooks = append(hooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		cli := config.DefaultConfig()
		cli.Webhooks = []config.WebhookConfig{{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: config.WebhookTrigger(opts.WebhookTrigger),
		}}
		if err := config.Validate(cli); err != nil {
			return nil, fmt.Errorf("invalid webhook flags: %w", err)
		}
		hooks = append(hooks, cli.Webhooks...)
	}

	return hooks, nil
}
