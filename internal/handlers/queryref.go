// ABOUTME: Query refinement handler expanding short questions into detailed ones
// ABOUTME: Rule-based: a fixed enhancement table first, then general rules by query shape
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/agentrouter/internal/models"
	"go.uber.org/zap"
)

type enhancement struct {
	match    string
	enhanced string
}

// Ordered; the first case-insensitive substring match wins.
var enhancementRules = []enhancement{
	{"Erkläre KI", "Erkläre mir ausführlich die Grundlagen der Künstlichen Intelligenz, einschließlich ihrer wichtigsten Anwendungsbereiche und aktuellen Entwicklungen."},
	{"Was ist KI", "Was ist Künstliche Intelligenz? Bitte erkläre die Definition, Geschichte und verschiedene Arten von KI-Systemen."},
	{"KI", "Künstliche Intelligenz: Bitte gib mir eine umfassende Erklärung zu Definition, Funktionsweise und praktischen Anwendungen."},
	{"maschinelles Lernen", "Erkläre mir maschinelles Lernen detailliert, einschließlich der verschiedenen Algorithmen, Anwendungsfälle und wie es sich von traditioneller Programmierung unterscheidet."},
	{"Machine Learning", "Erkläre mir maschinelles Lernen detailliert, einschließlich der verschiedenen Algorithmen, Anwendungsfälle und wie es sich von traditioneller Programmierung unterscheidet."},
	{"Deep Learning", "Was ist Deep Learning? Erkläre mir die Konzepte neuronaler Netzwerke, deren Architektur und praktische Anwendungen."},
	{"Python", "Erkläre mir die Programmiersprache Python, ihre Syntax, wichtigsten Features und Anwendungsbereiche."},
	{"JavaScript", "Was ist JavaScript? Erkläre mir die Grundlagen, Syntax und wie es in der Webentwicklung verwendet wird."},
}

// QueryRef turns terse queries into detailed ones
type QueryRef struct {
	logger *zap.Logger
}

// NewQueryRef creates the query refinement handler
func NewQueryRef(logger *zap.Logger) *QueryRef {
	return &QueryRef{logger: logger.Named("query_ref")}
}

// Capabilities lists what the handler offers
func (q *QueryRef) Capabilities() []string {
	return []string{"query_refinement", "query_enhancement", "search_optimization", "intent_clarification", "question_improvement"}
}

// Handle refines the "text" field; a non-empty "context" is appended to the result
func (q *QueryRef) Handle(ctx context.Context, req models.Request) models.Result {
	text, ok := textOf(req)
	if !ok {
		return models.Failure("No text provided for query refinement")
	}
	extra := strings.TrimSpace(req.Data.String(models.ParamContext, ""))

	refined := RefineQuery(text)
	if extra != "" {
		refined = fmt.Sprintf("%s (Kontext: %s)", refined, extra)
	}

	q.logger.Debug("refined query", zap.String("text", preview(text)), zap.String("refined", preview(refined)))

	return models.Success(
		models.QueryRefResult{RefinedQuery: refined, OriginalText: text, Context: extra},
		"Query enhanced successfully",
	)
}

// Shutdown releases nothing
func (q *QueryRef) Shutdown(ctx context.Context) error {
	return nil
}

// RefineQuery expands the query part of text (everything after the first ':' if present)
func RefineQuery(text string) string {
	query := strings.TrimSpace(text)
	if _, after, found := strings.Cut(query, ":"); found {
		query = strings.TrimSpace(after)
	}

	lower := strings.ToLower(query)
	for _, rule := range enhancementRules {
		if strings.Contains(lower, strings.ToLower(rule.match)) {
			return rule.enhanced
		}
	}

	switch {
	case len(strings.Fields(query)) < 3:
		return fmt.Sprintf("Bitte erkläre mir ausführlich das Thema '%s' mit praktischen Beispielen und Hintergrundinformationen.", query)
	case !strings.HasSuffix(query, "?"):
		return query + "? Bitte gib mir eine detaillierte Antwort mit Beispielen."
	default:
		return query + " Bitte strukturiere deine Antwort mit klaren Abschnitten und praktischen Beispielen."
	}
}
