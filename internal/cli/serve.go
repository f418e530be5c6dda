package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/QtravelPL/duckling/internal/logging"
	"github.com/QtravelPL/duckling/internal/pipeline"
	"github.com/QtravelPL/duckling/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parse API over HTTP",
	Long: `Serve starts an HTTP server exposing the parser:
- POST /parse accepts form or JSON bodies (text, dims, locale,
  reftime, latent) and responds with the entity array
- GET /healthz reports liveness

Requests are rate limited per client address.

Example:
  duckling serve
  duckling serve --addr :9000
  curl -XPOST localhost:8000/parse -d 'text=see you on March 3'`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build configuration
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Listening: %s\n", cfg.Server.Addr)
		fmt.Fprintf(os.Stderr, "Locale: %s\n", cfg.Engine.Locale)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintf(os.Stderr, "Rate limit: %.0f req/s (burst %d)\n", cfg.Server.RatePerSecond, cfg.Server.RateBurst)
		fmt.Fprintln(os.Stderr)
	}

	// Create pipeline
	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	p.SetLogger(logging.L())

	srv := server.New(p, cfg.Server)
	srv.SetLogger(logging.L())
	defer logging.Sync()

	return srv.ListenAndServe(ctx)
}
