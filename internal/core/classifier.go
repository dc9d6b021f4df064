// ABOUTME: Deterministic keyword classifier mapping free text to a routing target
// ABOUTME: Composite check first, then handler groups, then service groups, then the default handler
package core

import (
	"strings"

	"github.com/harper/agentrouter/internal/models"
)

type keywordGroup struct {
	target   string
	keywords []string
}

var (
	searchTriggers = []string{"suche", "finde", "google", "web", "internet", "nachrichten"}

	// "und fass" covers "... und fasse ... zusammen", where the stem is split
	analysisTriggers = []string{"zusammenfass", "essay", "analysier", "bewert", "erkläre", "bericht", "und fass"}

	// Priority order matters: the first group with a hit wins.
	handlerGroups = []keywordGroup{
		{models.HandlerGrammar, []string{"korrigier", "grammatik", "rechtschreib", "fehler", "überprüf"}},
		{models.HandlerSentiment, []string{"sentiment", "stimmung", "emotion", "gefühl", "positiv", "negativ"}},
		{models.HandlerOptimizer, []string{"optimier", "tonalität", "stil", "umformulier", "verbessern"}},
		{models.HandlerQueryRef, []string{"suchanfrage", "query", "suche verbessern", "suchbegriff"}},
	}

	serviceGroups = []keywordGroup{
		{models.ServiceSearch, []string{"suche", "finde", "google", "web", "internet"}},
		{models.ServiceWeb, []string{"website", "url", "webseite", "extrahier", "inhalt"}},
		{models.ServiceTime, []string{"zeit", "datum", "uhrzeit", "wann"}},
	}
)

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func firstMatch(s string, groups []keywordGroup) (string, bool) {
	for _, g := range groups {
		if containsAny(s, g.keywords) {
			return g.target, true
		}
	}
	return "", false
}

// Classify maps a query to a target by case-insensitive substring matching.
// It never returns KindUnresolved: unmatched queries go to the default handler.
func Classify(query string) models.Classification {
	q := strings.ToLower(query)

	if containsAny(q, searchTriggers) && containsAny(q, analysisTriggers) {
		return models.Classification{Kind: models.KindComposite}
	}
	if id, ok := firstMatch(q, handlerGroups); ok {
		return models.HandlerTarget(id)
	}
	if id, ok := firstMatch(q, serviceGroups); ok {
		return models.ServiceTarget(id)
	}
	return models.HandlerTarget(models.DefaultHandler)
}
