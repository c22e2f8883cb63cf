package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/notemap/internal/server"
	"github.com/ccollicutt/notemap/pkg/analyzer"
)

// NewServeCommand creates the serve command.
func NewServeCommand(g *GlobalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis HTTP API",
		Long: `Serve note analysis over HTTP.

Endpoints:
  GET  /health        Liveness check
  POST /api/analyze   Analyze text/plain or {"text": "..."}; ?format=markdown|html
  POST /api/render    Render {"notes": [...]} as markdown
  GET  /api/rules     List the category rules
  GET  /metrics       Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := g.loadConfig(ctx)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger, err := g.newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			a, err := analyzer.NewAnalyzer(cfg)
			if err != nil {
				return fmt.Errorf("creating analyzer: %w", err)
			}

			return server.NewServer(a, cfg.Server, logger, nil).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}
