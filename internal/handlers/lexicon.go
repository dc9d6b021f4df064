// ABOUTME: Deterministic word-stem lexicon used when the model's sentiment output cannot be parsed
// ABOUTME: Counts known positive and negative stems; ties and zero hits are neutral
package handlers

import (
	"math"
	"strings"

	"github.com/harper/agentrouter/internal/models"
)

var (
	positiveStems = []string{"gut", "toll", "super", "fantastisch", "großartig", "wunderbar", "perfekt", "ausgezeichnet"}
	negativeStems = []string{"schlecht", "schrecklich", "furchtbar", "katastrophal", "schlimm", "ärgerlich", "enttäuschend"}
)

func countStems(text string, stems []string) int {
	n := 0
	for _, s := range stems {
		if strings.Contains(text, s) {
			n++
		}
	}
	return n
}

// LexiconSentiment scores text by counting lexicon stems it contains
func LexiconSentiment(text string) models.SentimentResult {
	lower := strings.ToLower(text)
	pos := float64(countStems(lower, positiveStems))
	neg := float64(countStems(lower, negativeStems))

	r := models.SentimentResult{OriginalText: text, Method: "lexicon", Emotions: []models.Emotion{}}
	switch {
	case pos > neg:
		r.Sentiment = models.SentimentScore{
			Label:      LabelPositive,
			Confidence: math.Min(0.8, 0.5+pos*0.1),
			Score:      math.Min(1.0, pos*0.3),
		}
		r.Emotions = []models.Emotion{{Emotion: "freude", Intensity: math.Min(1.0, pos*0.3)}}
	case neg > pos:
		r.Sentiment = models.SentimentScore{
			Label:      LabelNegative,
			Confidence: math.Min(0.8, 0.5+neg*0.1),
			Score:      math.Max(-1.0, -neg*0.3),
		}
		r.Emotions = []models.Emotion{{Emotion: "ärger", Intensity: math.Min(1.0, neg*0.3)}}
	default:
		r.Sentiment = models.SentimentScore{Label: LabelNeutral, Confidence: 0.6, Score: 0.0}
	}
	return r
}
