// ABOUTME: Search-then-synthesize pipeline
// ABOUTME: Strictly sequential stages; any failure discards partial output
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/agentrouter/internal/llm"
	"github.com/harper/agentrouter/internal/models"
	"github.com/harper/agentrouter/internal/services"
	"go.uber.org/zap"
)

// Pipeline stages, reported in composite failure messages
const (
	StageSearch     = "search"
	StageGuard      = "guard"
	StageSynthesize = "synthesize"
)

const (
	// DefaultSearchTerm is used when extraction leaves nothing
	DefaultSearchTerm = "aktuelle nachrichten"

	emptyResultText = "Keine Suchergebnisse gefunden für die Analyse."
)

var (
	fillerPhrases  = []string{"suche nach", "finde", "informationen über", "nachrichten über", "berichte über"}
	summaryPhrases = []string{"und fass", "zusammenfass", "essay", "bericht", "analyse"}
)

// ExtractSearchTerm derives the search term from a composite request: filler
// phrases are removed, then the text is cut at the first summary phrase found
// (checked in list order). The result is lowercase.
func ExtractSearchTerm(query string) string {
	q := strings.ToLower(query)

	for _, phrase := range fillerPhrases {
		if strings.Contains(q, phrase) {
			q = strings.TrimSpace(strings.ReplaceAll(q, phrase, ""))
		}
	}

	for _, phrase := range summaryPhrases {
		if before, _, found := strings.Cut(q, phrase); found {
			q = before
			break
		}
	}

	if term := strings.TrimSpace(q); term != "" {
		return term
	}
	return DefaultSearchTerm
}

// AssembleContent formats every hit as a numbered article block
func AssembleContent(hits []models.SearchHit) string {
	var sb strings.Builder
	for i, hit := range hits {
		fmt.Fprintf(&sb, "\nARTIKEL %d:\nTitel: %s\nInhalt: %s\nQuelle: %s\n\n",
			i+1,
			orDefault(hit.Title, "Unbekannter Titel"),
			orDefault(hit.Snippet, "Keine Beschreibung"),
			orDefault(hit.URL, "Keine URL"))
	}
	return sb.String()
}

// SynthesisPrompt asks for a three-part German summary of the assembled results
func SynthesisPrompt(term, content, query string) string {
	return fmt.Sprintf(`Basierend auf den folgenden Suchergebnissen zum Thema "%s", erstelle eine zusammenfassende Analyse:

%s

Benutzeranfrage: %s

Erstelle eine strukturierte Zusammenfassung mit:
1. Überblick über die wichtigsten Trends und Entwicklungen
2. Konkrete Beispiele aus den Suchergebnissen
3. Fazit und Einschätzung

Antworte auf Deutsch und strukturiert.`, term, content, query)
}

// CompositeText lays out header, summary and the first three sources
func CompositeText(term string, hits []models.SearchHit, analysis string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SUCHERGEBNISSE UND ANALYSE\n\nSuchbegriff: %s\nGefundene Artikel: %d\n\n", term, len(hits))
	fmt.Fprintf(&sb, "=== ZUSAMMENFASSUNG ===\n\n%s\n\n=== QUELLENANGABEN ===\n", analysis)
	for i, hit := range topHits(hits, sourcesInSummary) {
		fmt.Fprintf(&sb, "%d. %s\n   %s\n", i+1, orDefault(hit.Title, "Unbekannter Titel"), orDefault(hit.URL, "Keine URL"))
	}
	return sb.String()
}

func compositeFailureText(stage string, err error) string {
	return fmt.Sprintf("Fehler bei der Suche und Analyse (%s): %v", stage, err)
}

// composite runs the pipeline. It returns an error envelope for the first failing stage.
func (r *Router) composite(ctx context.Context, query string, params models.Parameters, logger *zap.Logger) models.RoutedResponse {
	fail := func(rerr *RouteError, text string) models.RoutedResponse {
		return r.failure(logger, models.LabelComposite, rerr, text, text)
	}

	term := ExtractSearchTerm(query)
	logger.Debug("composite search term", zap.String("term", term))

	entry, ok := r.registry.ResolveKind(models.TargetService, models.ServiceSearch)
	if !ok {
		err := fmt.Errorf("search service %q is not registered", models.ServiceSearch)
		return fail(routeErr(models.ErrTargetNotFound, StageSearch, err), compositeFailureText(StageSearch, err))
	}

	searchParams := models.Parameters{
		models.ParamQuery:      term,
		models.ParamMaxResults: params.Int(models.ParamMaxResults, services.DefaultMaxResults),
	}
	res, err := safeHandle(ctx, entry.Instance, models.NewRequest(searchParams))
	if err != nil {
		return fail(routeErr(models.ErrUpstreamFailure, StageSearch, err), compositeFailureText(StageSearch, err))
	}
	if !res.OK() {
		text := "Suche fehlgeschlagen: " + res.Message
		return fail(routeErr(models.ErrUpstreamFailure, StageSearch, errors.New(res.Message)), text)
	}

	found, ok := res.Data.(models.SearchResults)
	if !ok {
		err := fmt.Errorf("unexpected search payload %T", res.Data)
		return fail(routeErr(models.ErrUpstreamFailure, StageSearch, err), compositeFailureText(StageSearch, err))
	}

	if len(found.Results) == 0 {
		return fail(routeErr(models.ErrEmptyResult, StageGuard, errors.New("no search results")), emptyResultText)
	}

	content := AssembleContent(found.Results)

	resp, err := safeGenerate(ctx, r.gen, llm.Prompt{Model: r.model, User: SynthesisPrompt(term, content, query)})
	if err == nil && resp.Text() == "" {
		err = errors.New("model returned no text")
	}
	if err != nil {
		return fail(routeErr(models.ErrUpstreamFailure, StageSynthesize, err), compositeFailureText(StageSynthesize, err))
	}
	analysis := resp.Text()

	return models.RoutedResponse{
		Text:       CompositeText(term, found.Results, analysis),
		TargetUsed: models.LabelComposite,
		Status:     models.StatusSuccess,
		Message:    "Search and analysis completed",
		Data: models.CompositeResult{
			SearchResults: found.Results,
			AnalysisText:  analysis,
			SearchQuery:   term,
			Composite:     true,
		},
	}
}
