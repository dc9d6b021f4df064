package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/agentrouter/internal/llm/llmtest"
	"github.com/harper/agentrouter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSentiment_ParsesModelJSON(t *testing.T) {
	gen := llmtest.Text("```json\n{\"label\": \"positive\", \"confidence\": 0.9, \"score\": 0.7, \"emotions\": [{\"emotion\": \"freude\", \"intensity\": 0.8}]}\n```")
	h := NewSentiment(gen, "m", zap.NewNop())

	res := h.Handle(context.Background(), req(models.Parameters{"text": "Ich freue mich", "detailed": true}))
	require.True(t, res.OK(), res.Message)

	data := res.Data.(models.SentimentResult)
	assert.Equal(t, "positive", data.Sentiment.Label)
	assert.InDelta(t, 0.9, data.Sentiment.Confidence, 1e-9)
	assert.Equal(t, "llm", data.Method)
	assert.Equal(t, []models.Emotion{{Emotion: "freude", Intensity: 0.8}}, data.Emotions)
	assert.Equal(t, "Ich freue mich", data.OriginalText)
}

func TestSentiment_EmotionsOnlyWhenDetailed(t *testing.T) {
	gen := llmtest.Text(`{"label":"negative","confidence":0.7,"score":-0.5,"emotions":[{"emotion":"ärger","intensity":0.6}]}`)
	h := NewSentiment(gen, "m", zap.NewNop())

	res := h.Handle(context.Background(), req(models.Parameters{"text": "Ärgerlich"}))
	require.True(t, res.OK())
	assert.Empty(t, res.Data.(models.SentimentResult).Emotions)
}

func TestSentiment_ParseFailureFallsBackToLexicon(t *testing.T) {
	h := NewSentiment(llmtest.Text("Der Text ist eher positiv."), "m", zap.NewNop())

	res := h.Handle(context.Background(), req(models.Parameters{"text": "Das Essen war super und toll"}))
	require.True(t, res.OK(), "parse failures are recovered locally")

	data := res.Data.(models.SentimentResult)
	assert.Equal(t, "lexicon", data.Method)
	assert.Equal(t, "positive", data.Sentiment.Label)
	assert.InDelta(t, 0.7, data.Sentiment.Confidence, 1e-9)
	assert.InDelta(t, 0.6, data.Sentiment.Score, 1e-9)
}

func TestSentiment_GeneratorFailureIsDegraded(t *testing.T) {
	h := NewSentiment(llmtest.Failing(errors.New("timeout")), "m", zap.NewNop())

	res := h.Handle(context.Background(), req(models.Parameters{"text": "egal"}))
	assert.Equal(t, models.StatusError, res.Status)
	data := res.Data.(models.SentimentResult)
	assert.Equal(t, "neutral", data.Sentiment.Label)
	assert.Equal(t, "egal", data.OriginalText)
}

func TestSentiment_LanguageInPrompt(t *testing.T) {
	gen := llmtest.Text(`{"label":"neutral"}`)
	h := NewSentiment(gen, "m", zap.NewNop())

	h.Handle(context.Background(), req(models.Parameters{"text": "hello", "language": "en"}))
	require.Len(t, gen.Prompts(), 1)
	assert.Contains(t, gen.Prompts()[0].User, "Sprache: en")

}

func TestParseSentiment(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantLabel string
		wantConf  float64
		wantErr   bool
	}{
		{"plain", `{"label":"negative","confidence":0.8,"score":-0.6}`, "negative", 0.8, false},
		{"defaults", `{}`, "neutral", 0.5, false},
		{"prose around", `Ergebnis: {"label":"Positive","confidence":1.4} fertig`, "positive", 1.0, false},
		{"unknown label", `{"label":"happy"}`, "", 0, true},
		{"not json", `positiv`, "", 0, true},
		{"broken json", `{"label": }`, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSentiment(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrParseFailure)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, got.Sentiment.Label)
			assert.InDelta(t, tt.wantConf, got.Sentiment.Confidence, 1e-9)
		})
	}
}

func TestLexiconSentiment(t *testing.T) {
	tests := []struct {
		text      string
		wantLabel string
		wantConf  float64
		wantScore float64
		emotion   string
	}{
		{"Das war gut", "positive", 0.6, 0.3, "freude"},
		{"Toll, super, fantastisch, perfekt!", "positive", 0.8, 1.0, "freude"},
		{"Schlecht und schrecklich", "negative", 0.7, -0.6, "ärger"},
		{"Gut aber schlecht", "neutral", 0.6, 0.0, ""},
		{"Ich bin sehr glücklich!", "neutral", 0.6, 0.0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := LexiconSentiment(tt.text)
			assert.Equal(t, tt.wantLabel, got.Sentiment.Label)
			assert.InDelta(t, tt.wantConf, got.Sentiment.Confidence, 1e-9)
			assert.InDelta(t, tt.wantScore, got.Sentiment.Score, 1e-9)
			if tt.emotion == "" {
				assert.Empty(t, got.Emotions)
			} else {
				require.Len(t, got.Emotions, 1)
				assert.Equal(t, tt.emotion, got.Emotions[0].Emotion)
			}
		})
	}
}
