// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes the router and every target as tools over stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/agentrouter/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the router as an MCP (Model Context Protocol) server, giving
LLM agents the route tool plus one tool per handler and service
via stdio. Logs go to stderr.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  agentrouter mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "agentrouter": {
  #       "command": "agentrouter",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	server := mcpserver.NewMCPServer("Agent Router", versionInfo.Version)
	mcp.RegisterTools(server, a.Router, a.Logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Logger.Info("MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		a.Logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			a.Logger.Error("MCP server stopped", zap.Error(err))
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
