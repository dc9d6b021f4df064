// ABOUTME: CLI command to route a single request
// ABOUTME: Prints the envelope text, or the full envelope with --format json
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/agentrouter/internal/models"
)

var (
	routeHandler    string
	routeService    string
	routeTonality   string
	routeLanguage   string
	routeMaxResults int
	routeURL        string
	routeContext    string
	routeDetailed   bool
	routeNews       bool
)

// NewRouteCmd creates the route command
func NewRouteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route <query...>",
		Short: "Route a request and print the answer",
		Long: `Route a request and print the answer.

Without --handler or --service the query is classified by keywords.
An explicit handler wins over an explicit service.

Examples:
  agentrouter route "Korrigiere: Das ist ein Fehler"
  agentrouter route --handler optimizer --tonality professional "Mach hin"
  agentrouter route --service search --max-results 10 --news Bundestagswahl
  agentrouter route --format json "Suche nach Quantencomputern und fasse sie zusammen"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRoute,
	}

	cmd.Flags().StringVar(&routeHandler, "handler", "", "Force a handler (lektor, sentiment, optimizer, query_ref)")
	cmd.Flags().StringVar(&routeService, "service", "", "Force a service (search, web, time)")
	cmd.Flags().StringVar(&routeTonality, "tonality", "", "Optimizer tonality (default friendly)")
	cmd.Flags().StringVar(&routeLanguage, "language", "", "Sentiment language (default de)")
	cmd.Flags().IntVar(&routeMaxResults, "max-results", 5, "Maximum search results")
	cmd.Flags().StringVar(&routeURL, "url", "", "Page URL for the web service (defaults to the query)")
	cmd.Flags().StringVar(&routeContext, "context", "", "Extra context for query refinement")
	cmd.Flags().BoolVar(&routeDetailed, "detailed", false, "Include emotions in sentiment results")
	cmd.Flags().BoolVar(&routeNews, "news", false, "Search news instead of web pages")

	return cmd
}

func runRoute(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("max-results") {
		if err := validatePositiveInt(routeMaxResults, "max-results"); err != nil {
			return err
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	resp := a.Router.Route(cmd.Context(), models.RouteRequest{
		Query:      strings.Join(args, " "),
		Handler:    routeHandler,
		Service:    routeService,
		Parameters: routeParams(cmd),
	})

	if outputFormat == "json" {
		if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s (request %s)\n", resp.TargetUsed, resp.Status, resp.RequestID)
		}
	}

	if !resp.OK() {
		return errors.New(resp.Message)
	}
	return nil
}

// routeParams collects only the flags the user actually set, so adaptation defaults apply otherwise
func routeParams(cmd *cobra.Command) models.Parameters {
	params := models.Parameters{}
	flags := cmd.Flags()
	if flags.Changed("tonality") {
		params[models.ParamTonality] = routeTonality
	}
	if flags.Changed("language") {
		params[models.ParamLanguage] = routeLanguage
	}
	if flags.Changed("max-results") {
		params[models.ParamMaxResults] = routeMaxResults
	}
	if flags.Changed("url") {
		params[models.ParamURL] = routeURL
	}
	if flags.Changed("context") {
		params[models.ParamContext] = routeContext
	}
	if flags.Changed("detailed") {
		params[models.ParamDetailed] = routeDetailed
	}
	if routeNews {
		params[models.ParamMode] = "news"
	}
	return params
}
