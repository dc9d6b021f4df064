// ABOUTME: MCP tool definitions and registration for the agent router
// ABOUTME: Exposes the generic route tool plus one tool per handler and service
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, router Router, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	handlers := &Handlers{router: router, logger: logger.Named("mcp")}

	// 1. route - classify a free-text request and dispatch it
	server.AddTool(mcp.Tool{
		Name:        "route",
		Description: "Route a free-text request to the matching handler, service or the search-and-summarize pipeline. Explicit handler wins over explicit service; without either the request is classified by keywords.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The request text (German keywords drive classification)",
				},
				"handler": map[string]interface{}{
					"type":        "string",
					"description": "Force a handler: lektor, sentiment, optimizer, query_ref",
				},
				"service": map[string]interface{}{
					"type":        "string",
					"description": "Force a service: search, web, time",
				},
				"parameters": map[string]interface{}{
					"type":        "object",
					"description": "Optional target parameters (tonality, language, max_results, url, context, detailed, mode)",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.Route)

	// 2. correct_grammar - lektor handler
	server.AddTool(mcp.Tool{
		Name:        "correct_grammar",
		Description: "Correct spelling, grammar and punctuation of a text.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to correct",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.CorrectGrammar)

	// 3. analyze_sentiment - sentiment handler
	server.AddTool(mcp.Tool{
		Name:        "analyze_sentiment",
		Description: "Classify the sentiment of a text as positive, negative or neutral with confidence and score.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to analyze",
				},
				"language": map[string]interface{}{
					"type":        "string",
					"description": "Language code of the text (default: de)",
					"default":     "de",
				},
				"detailed": map[string]interface{}{
					"type":        "boolean",
					"description": "Include detected emotions (default: false)",
					"default":     false,
				},
			},
			Required: []string{"text"},
		},
	}, handlers.AnalyzeSentiment)

	// 4. optimize_text - optimizer handler
	server.AddTool(mcp.Tool{
		Name:        "optimize_text",
		Description: "Rewrite a text in the requested tonality.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to rewrite",
				},
				"tonality": map[string]interface{}{
					"type":        "string",
					"description": "friendly, casual, direct, neutral, professional or enthusiastic (default: friendly)",
					"default":     "friendly",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.OptimizeText)

	// 5. refine_query - query_ref handler
	server.AddTool(mcp.Tool{
		Name:        "refine_query",
		Description: "Turn a short search query into a more specific one.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Query to refine",
				},
				"context": map[string]interface{}{
					"type":        "string",
					"description": "Optional context appended to the refined query",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.RefineQuery)

	// 6. web_search - search service
	server.AddTool(mcp.Tool{
		Name:        "web_search",
		Description: "Search the web (DuckDuckGo) and return titles, URLs and snippets.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5, max: 30)",
					"default":     5,
				},
				"news": map[string]interface{}{
					"type":        "boolean",
					"description": "Search news instead of web pages",
					"default":     false,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.WebSearch)

	// 7. extract_page - web service
	server.AddTool(mcp.Tool{
		Name:        "extract_page",
		Description: "Fetch a web page and return its title and readable text.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Page URL; https:// is assumed when no scheme is given",
				},
			},
			Required: []string{"url"},
		},
	}, handlers.ExtractPage)

	// 8. current_time - time service
	server.AddTool(mcp.Tool{
		Name:        "current_time",
		Description: "Current date and time from NTP, falling back to the local clock.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.CurrentTime)

	return handlers
}
