// ABOUTME: Serve command starts the HTTP API
// ABOUTME: Exposes /v1/route, /v1/targets, /healthz and /metrics until interrupted
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/harper/agentrouter/internal/server"
)

var (
	serveAddr string
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Endpoints:
  POST /v1/route    {"query": "...", "handler": "", "service": "", "parameters": {}}
  GET  /v1/targets  registered handlers and services
  GET  /healthz     liveness
  GET  /metrics     Prometheus metrics

Error envelopes are returned with HTTP 200; only malformed JSON gets 400.`,
		Example: `  # Listen on HTTP_ADDR (default :8000)
  agentrouter serve

  # Listen on a different address
  agentrouter serve --addr 127.0.0.1:9000`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides HTTP_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	if verbose {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := a.Config.HTTPAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := server.NewEngine(a.Router, a.Metrics, a.Logger)
	if err := server.Serve(ctx, addr, engine, a.Logger); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
