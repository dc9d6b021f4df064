// ABOUTME: Grammar correction handler ("lektor")
// ABOUTME: Asks the model for a corrected German text, returns the input unchanged on failure
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/agentrouter/internal/llm"
	"github.com/harper/agentrouter/internal/models"
	"go.uber.org/zap"
)

const grammarInstructions = `Du bist ein professioneller deutscher Lektor.
AUFGABE: Korrigiere ALLE Grammatik-, Rechtschreib- und Satzbaufehler im gegebenen Text.
Gib NUR den korrigierten Text zurück, KEINE Erklärungen oder Kommentare.`

// Grammar corrects spelling, grammar and sentence structure
type Grammar struct {
	gen    llm.Generator
	model  string
	logger *zap.Logger
}

// NewGrammar creates the grammar handler
func NewGrammar(gen llm.Generator, model string, logger *zap.Logger) *Grammar {
	return &Grammar{gen: gen, model: model, logger: logger.Named("lektor")}
}

// Capabilities lists what the handler offers
func (g *Grammar) Capabilities() []string {
	return []string{"grammar_correction", "spelling_correction", "german_language_processing", "text_correction"}
}

// Handle corrects the "text" field. "language" defaults to "de".
func (g *Grammar) Handle(ctx context.Context, req models.Request) models.Result {
	text, ok := textOf(req)
	if !ok {
		return models.Failure("No text provided for correction")
	}
	language := req.Data.String(models.ParamLanguage, "de")

	g.logger.Debug("correcting text", zap.String("text", preview(text)), zap.String("language", language))

	system := grammarInstructions
	if !strings.EqualFold(language, "de") {
		system += fmt.Sprintf("\nDer Text ist in der Sprache %q verfasst; antworte in derselben Sprache.", language)
	}

	corrected, err := generateText(ctx, g.gen, llm.Prompt{Model: g.model, System: system, User: text})
	if err != nil {
		g.logger.Warn("correction failed", zap.Error(err))
		return models.Degraded(
			models.GrammarResult{CorrectedText: text, OriginalText: text},
			fmt.Sprintf("Correction failed: %v", err),
		)
	}

	return models.Success(
		models.GrammarResult{CorrectedText: corrected, OriginalText: text},
		"Text corrected successfully",
	)
}

// Shutdown releases nothing; the handler is stateless
func (g *Grammar) Shutdown(ctx context.Context) error {
	g.logger.Debug("shutdown completed")
	return nil
}
