// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Builds the wired app from config and formats output
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/harper/agentrouter/internal/app"
	"github.com/harper/agentrouter/internal/config"
	"github.com/harper/agentrouter/internal/logging"
)

// newApp builds the router process; tests replace it
var newApp = loadApp

func loadApp() (*app.App, error) {
	cfg, err := config.LoadWithDotenv()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyLogFlags(cfg)

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing router: %w", err)
	}
	return a, nil
}

// applyLogFlags lets --verbose and --quiet override LOG_LEVEL
func applyLogFlags(cfg *config.Config) {
	switch {
	case verbose:
		cfg.LogLevel = "debug"
	case quiet:
		cfg.LogLevel = "error"
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
