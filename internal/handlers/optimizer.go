// ABOUTME: Tone optimization handler with few-shot examples per tonality
// ABOUTME: English tonality names are accepted and mapped to their German counterparts
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/agentrouter/internal/llm"
	"github.com/harper/agentrouter/internal/models"
	"go.uber.org/zap"
)

// DefaultTonality is used when the request names none
const DefaultTonality = "friendly"

const optimizerInstructions = `Du bist ein Experte für Textoptimierung. Optimiere Texte basierend auf der gewünschten Tonalität.

AUFGABE: Optimiere den gegebenen Text entsprechend der angegebenen Tonalität.

FEW-SHOT BEISPIELE:

Beispiel 1 - Tonalität: locker
Input: 'Sehr geehrte Damen und Herren, hiermit teile ich Ihnen mit, dass Ihr Antrag abgelehnt wurde.'
Output: 'Hey! Leider konnten wir deinen Antrag diesmal nicht genehmigen. 😊'

Beispiel 2 - Tonalität: freundlich
Input: 'Sehr geehrte Damen und Herren, Ihr Antrag wurde abgelehnt.'
Output: 'Vielen Dank für Ihre Anfrage. Leider können wir Ihrem Antrag diesmal nicht entsprechen. Gerne stehen wir Ihnen für Rückfragen zur Verfügung.'

Beispiel 3 - Tonalität: freundlich
Input: 'Das war Schrott und furchtbar schlecht gemacht.'
Output: 'Das entspricht noch nicht ganz unseren Vorstellungen und könnte deutlich verbessert werden.'

Beispiel 4 - Tonalität: direkt
Input: 'Vielen Dank für Ihre Anfrage. Leider müssen wir Ihnen mitteilen, dass dies unmöglich ist.'
Output: 'Das ist nicht umsetzbar.'

Beispiel 5 - Tonalität: sachlich
Input: 'Sehr geehrte Damen und Herren, Ihr Antrag wurde abgelehnt.'
Output: 'Nach Prüfung der Unterlagen wurde der Antrag nicht genehmigt.'

Beispiel 6 - Tonalität: professionell
Input: 'Das war Schrott und furchtbar schlecht gemacht.'
Output: 'Die Qualität entspricht nicht den geforderten Standards und bedarf einer umfassenden Überarbeitung.'

Beispiel 7 - Tonalität: begeistert
Input: 'Ihr Projekt wurde genehmigt.'
Output: 'Das ist eine fantastische Nachricht: Ihr Projekt wurde genehmigt! 🌟'

REGELN:
- Ersetze negative Begriffe durch positive Alternativen
- WICHTIG: Behalte die richtige Anrede bei:
  * 'locker': Verwende 'du' statt 'Sie', casual Sprache
  * 'freundlich': Behalte 'Sie', höflich und respektvoll
  * 'direkt': Kurz und sachlich
  * 'sachlich': Neutral und objektiv, ohne Emotion
  * 'professionell': Formal und geschäftsmäßig
  * 'begeistert': Enthusiastisch mit Verstärkern

Antworte NUR mit dem optimierten Text, ohne zusätzliche Erklärungen.`

// GermanTonality maps a requested tonality onto the names used in the few-shot examples.
// Unknown tonalities are passed through lowercased.
func GermanTonality(tonality string) string {
	t := strings.ToLower(strings.TrimSpace(tonality))
	switch t {
	case "", "friendly":
		return "freundlich"
	case "casual":
		return "locker"
	case "direct":
		return "direkt"
	case "neutral", "objective":
		return "sachlich"
	case "professional", "formal":
		return "professionell"
	case "enthusiastic":
		return "begeistert"
	}
	return t
}

// Optimizer rewrites text in a requested tonality
type Optimizer struct {
	gen    llm.Generator
	model  string
	logger *zap.Logger
}

// NewOptimizer creates the optimizer handler
func NewOptimizer(gen llm.Generator, model string, logger *zap.Logger) *Optimizer {
	return &Optimizer{gen: gen, model: model, logger: logger.Named("optimizer")}
}

// Capabilities lists what the handler offers
func (o *Optimizer) Capabilities() []string {
	return []string{"text_optimization", "tonality_adjustment", "sentiment_improvement", "business_communication", "few_shot_prompting"}
}

// Handle rewrites the "text" field in "tonality" (default friendly).
// On model failure the original text comes back as the optimized text.
func (o *Optimizer) Handle(ctx context.Context, req models.Request) models.Result {
	text, ok := textOf(req)
	if !ok {
		return models.Failure("No text provided for optimization")
	}
	tonality := req.Data.String(models.ParamTonality, DefaultTonality)

	o.logger.Debug("optimizing text", zap.String("tonality", tonality), zap.String("text", preview(text)))

	prompt := fmt.Sprintf("Tonalität: %s\nText: %s\n\nOptimiere den Text entsprechend der angegebenen Tonalität basierend auf den Few-Shot-Beispielen.",
		GermanTonality(tonality), text)

	optimized, err := generateText(ctx, o.gen, llm.Prompt{Model: o.model, System: optimizerInstructions, User: prompt})
	if err != nil {
		o.logger.Warn("optimization failed", zap.Error(err))
		return models.Degraded(
			models.OptimizeResult{OptimizedText: text, OriginalText: text, Tonality: tonality},
			fmt.Sprintf("Optimization failed: %v", err),
		)
	}

	return models.Success(
		models.OptimizeResult{OptimizedText: optimized, OriginalText: text, Tonality: tonality},
		"Text optimized successfully",
	)
}

// Shutdown releases nothing
func (o *Optimizer) Shutdown(ctx context.Context) error {
	return nil
}
