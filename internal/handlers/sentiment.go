// ABOUTME: Sentiment analysis handler with structured model output and a lexicon fallback
// ABOUTME: Unparseable model output is recovered locally and never surfaces as an error
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/agentrouter/internal/llm"
	"github.com/harper/agentrouter/internal/models"
	"go.uber.org/zap"
)

const sentimentInstructions = `Du bist ein Experte für Sentiment-Analyse.
AUFGABE: Analysiere das Sentiment des gegebenen Textes.
Gib das Ergebnis in folgendem JSON-Format zurück:
{"label": "positive|negative|neutral", "confidence": 0.0-1.0, "score": -1.0 bis 1.0, "emotions": [{"emotion": "name", "intensity": 0.0-1.0}]}
REGELN: label: positive (>0.1), negative (<-0.1), neutral (-0.1 bis 0.1)`

// Sentiment labels
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Sentiment scores polarity and emotions of a text
type Sentiment struct {
	gen    llm.Generator
	model  string
	logger *zap.Logger
}

// NewSentiment creates the sentiment handler
func NewSentiment(gen llm.Generator, model string, logger *zap.Logger) *Sentiment {
	return &Sentiment{gen: gen, model: model, logger: logger.Named("sentiment")}
}

// Capabilities lists what the handler offers
func (s *Sentiment) Capabilities() []string {
	return []string{"sentiment_analysis", "emotion_detection", "text_polarity_analysis", "confidence_scoring", "german_sentiment_processing"}
}

// Handle analyzes the "text" field. "language" defaults to "de"; emotions are
// included only when "detailed" is true.
func (s *Sentiment) Handle(ctx context.Context, req models.Request) models.Result {
	text, ok := textOf(req)
	if !ok {
		return models.Failure("No text provided for sentiment analysis")
	}
	language := req.Data.String(models.ParamLanguage, "de")
	detailed := req.Data.Bool(models.ParamDetailed, false)

	s.logger.Debug("analyzing sentiment", zap.String("text", preview(text)), zap.String("language", language))

	raw, err := generateText(ctx, s.gen, llm.Prompt{
		Model:  s.model,
		System: sentimentInstructions,
		User:   fmt.Sprintf("Sprache: %s\nText: %s", language, text),
	})
	if isEmptyOutput(err) {
		s.logger.Debug("model returned nothing, using lexicon", zap.Error(err))
		err, raw = nil, ""
	}
	if err != nil {
		s.logger.Warn("sentiment analysis failed", zap.Error(err))
		return models.Degraded(
			models.SentimentResult{
				Sentiment:    models.SentimentScore{Label: LabelNeutral},
				Emotions:     []models.Emotion{},
				OriginalText: text,
			},
			fmt.Sprintf("Analysis failed: %v", err),
		)
	}

	result, err := ParseSentiment(raw)
	if err != nil {
		s.logger.Debug("model output not parseable, using lexicon", zap.Error(err))
		result = LexiconSentiment(text)
	}
	result.OriginalText = text
	if !detailed {
		result.Emotions = []models.Emotion{}
	}

	return models.Success(result, "Sentiment analysis completed")
}

// Shutdown releases nothing
func (s *Sentiment) Shutdown(ctx context.Context) error {
	return nil
}

type sentimentWire struct {
	Label      *string          `json:"label"`
	Confidence *float64         `json:"confidence"`
	Score      *float64         `json:"score"`
	Emotions   []map[string]any `json:"emotions"`
}

// ParseSentiment decodes the model's JSON answer. A surrounding markdown code fence
// or prose around the object is tolerated. Missing fields take the defaults
// neutral / 0.5 / 0.0; an unknown label is a parse failure.
func ParseSentiment(raw string) (models.SentimentResult, error) {
	payload := extractJSONObject(raw)
	if payload == "" {
		return models.SentimentResult{}, fmt.Errorf("%w: no JSON object in sentiment output", models.ErrParseFailure)
	}

	var w sentimentWire
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		return models.SentimentResult{}, fmt.Errorf("%w: %v", models.ErrParseFailure, err)
	}

	score := models.SentimentScore{Label: LabelNeutral, Confidence: 0.5}
	if w.Label != nil {
		score.Label = strings.ToLower(strings.TrimSpace(*w.Label))
	}
	switch score.Label {
	case LabelPositive, LabelNegative, LabelNeutral:
	default:
		return models.SentimentResult{}, fmt.Errorf("%w: unknown label %q", models.ErrParseFailure, score.Label)
	}
	if w.Confidence != nil {
		score.Confidence = clamp(*w.Confidence, 0, 1)
	}
	if w.Score != nil {
		score.Score = clamp(*w.Score, -1, 1)
	}

	emotions := make([]models.Emotion, 0, len(w.Emotions))
	for _, e := range w.Emotions {
		name, _ := e["emotion"].(string)
		intensity, ok := e["intensity"].(float64)
		if name == "" || !ok {
			continue
		}
		emotions = append(emotions, models.Emotion{Emotion: name, Intensity: clamp(intensity, 0, 1)})
	}

	return models.SentimentResult{Sentiment: score, Emotions: emotions, Method: "llm"}, nil
}

func extractJSONObject(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
