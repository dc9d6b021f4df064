// ABOUTME: MCP tool handler implementations for the agent router
// ABOUTME: Every tool call goes through the router and returns its envelope as JSON
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/agentrouter/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// Router is the part of core.Router the tools need
type Router interface {
	Route(ctx context.Context, req models.RouteRequest) models.RoutedResponse
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	router Router
	logger *zap.Logger
}

// Route handles the route tool
func (h *Handlers) Route(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	var params models.Parameters
	if raw, ok := request.GetArguments()["parameters"].(map[string]any); ok {
		params = models.Parameters(raw)
	}

	return h.send(ctx, "route", models.RouteRequest{
		Query:      query,
		Handler:    request.GetString("handler", ""),
		Service:    request.GetString("service", ""),
		Parameters: params,
	})
}

// CorrectGrammar handles the correct_grammar tool
func (h *Handlers) CorrectGrammar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	return h.send(ctx, "correct_grammar", models.RouteRequest{Query: text, Handler: models.HandlerGrammar})
}

// AnalyzeSentiment handles the analyze_sentiment tool
func (h *Handlers) AnalyzeSentiment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	return h.send(ctx, "analyze_sentiment", models.RouteRequest{
		Query:   text,
		Handler: models.HandlerSentiment,
		Parameters: models.Parameters{
			models.ParamLanguage: request.GetString("language", "de"),
			models.ParamDetailed: request.GetBool("detailed", false),
		},
	})
}

// OptimizeText handles the optimize_text tool
func (h *Handlers) OptimizeText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	params := models.Parameters{}
	if tonality := request.GetString("tonality", ""); tonality != "" {
		params[models.ParamTonality] = tonality
	}
	return h.send(ctx, "optimize_text", models.RouteRequest{Query: text, Handler: models.HandlerOptimizer, Parameters: params})
}

// RefineQuery handles the refine_query tool
func (h *Handlers) RefineQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	return h.send(ctx, "refine_query", models.RouteRequest{
		Query:      text,
		Handler:    models.HandlerQueryRef,
		Parameters: models.Parameters{models.ParamContext: request.GetString("context", "")},
	})
}

// WebSearch handles the web_search tool
func (h *Handlers) WebSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	params := models.Parameters{models.ParamMaxResults: request.GetInt("max_results", 5)}
	if request.GetBool("news", false) {
		params[models.ParamMode] = "news"
	}
	return h.send(ctx, "web_search", models.RouteRequest{Query: query, Service: models.ServiceSearch, Parameters: params})
}

// ExtractPage handles the extract_page tool
func (h *Handlers) ExtractPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url argument is required and must be a string"), nil
	}
	return h.send(ctx, "extract_page", models.RouteRequest{
		Query:      url,
		Service:    models.ServiceWeb,
		Parameters: models.Parameters{models.ParamURL: url},
	})
}

// CurrentTime handles the current_time tool
func (h *Handlers) CurrentTime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.send(ctx, "current_time", models.RouteRequest{Query: "Uhrzeit", Service: models.ServiceTime})
}

// send routes the request and wraps the envelope; error envelopes are flagged IsError
func (h *Handlers) send(ctx context.Context, tool string, req models.RouteRequest) (*mcp.CallToolResult, error) {
	resp := h.router.Route(ctx, req)
	h.logger.Debug("tool call", zap.String("tool", tool), zap.String("target", resp.TargetUsed), zap.String("status", string(resp.Status)))

	responseJSON, err := json.Marshal(resp)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	result := mcp.NewToolResultText(string(responseJSON))
	result.IsError = !resp.OK()
	return result, nil
}
