// ABOUTME: Summary text for routed responses
// ABOUTME: Reads only the display fields of each payload; unknown payloads fall back to the message
package core

import (
	"fmt"
	"strings"

	"github.com/harper/agentrouter/internal/models"
)

const (
	sourcesInSummary = 3
	pagePreviewRunes = 200
	unresolvedText   = "Ich konnte nicht bestimmen, welcher Agent oder Service für diese Anfrage geeignet ist."
)

// SummaryText renders the human-readable text for a successful result
func SummaryText(res models.Result, query string) string {
	switch d := res.Data.(type) {
	case models.GrammarResult:
		return "Korrigierter Text: " + orDefault(d.CorrectedText, query)

	case models.SentimentResult:
		return fmt.Sprintf("Sentiment: %s (Confidence: %.2f)", orDefault(d.Sentiment.Label, "unknown"), d.Sentiment.Confidence)

	case models.OptimizeResult:
		return "Optimierter Text: " + orDefault(d.OptimizedText, query)

	case models.QueryRefResult:
		return "Verbesserte Suchanfrage: " + orDefault(d.RefinedQuery, query)

	case models.SearchResults:
		if len(d.Results) == 0 {
			return "Suchergebnisse:\nKeine Ergebnisse gefunden."
		}
		lines := make([]string, 0, sourcesInSummary)
		for _, hit := range topHits(d.Results, sourcesInSummary) {
			lines = append(lines, fmt.Sprintf("- %s: %s", orDefault(hit.Title, "No title"), orDefault(hit.URL, "No URL")))
		}
		return "Suchergebnisse:\n" + strings.Join(lines, "\n")

	case models.PageContent:
		return fmt.Sprintf("Website-Inhalt extrahiert: %s...", firstRunes(orDefault(d.Content, "Kein Inhalt"), pagePreviewRunes))

	case models.TimeInfo:
		return "Zeitinformation: " + orDefault(d.FormattedTime, "Keine Zeitinformation verfügbar")
	}

	if res.Message != "" {
		return res.Message
	}
	return "Anfrage verarbeitet."
}

// FailureText renders the text for a target that reported an error
func FailureText(label, message string) string {
	return fmt.Sprintf("Fehler bei %s: %s", label, orDefault(message, "Unbekannter Fehler"))
}

func topHits(hits []models.SearchHit, n int) []models.SearchHit {
	if len(hits) > n {
		return hits[:n]
	}
	return hits
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
