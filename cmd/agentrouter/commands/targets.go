// ABOUTME: CLI command to list registered targets
// ABOUTME: Shows id, kind, label and capabilities of every handler and service
package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewTargetsCmd creates the targets command
func NewTargetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List handlers and services",
		Long: `List the registered handlers and services.

Examples:
  agentrouter targets
  agentrouter targets --format json`,
		Args: cobra.NoArgs,
		RunE: runTargets,
	}

	return cmd
}

func runTargets(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	targets := a.Router.Targets()
	if outputFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), targets)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tKIND\tLABEL\tCAPABILITIES\n")
	fmt.Fprintf(w, "--\t----\t-----\t------------\n")
	for _, t := range targets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Kind, t.Label, truncate(strings.Join(t.Capabilities, ", "), 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d target(s)\n", len(targets))
	}
	return nil
}
