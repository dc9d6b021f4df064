// ABOUTME: Shared plumbing for the text-processing handlers
// ABOUTME: Input extraction and the generative call that treats empty output as a failure
package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/harper/agentrouter/internal/llm"
	"github.com/harper/agentrouter/internal/models"
)

var errEmptyOutput = errors.New("model returned no text")

// textOf returns the request's text field and whether it holds anything but whitespace
func textOf(req models.Request) (string, bool) {
	text := req.Data.String(models.ParamText, "")
	return text, strings.TrimSpace(text) != ""
}

func generateText(ctx context.Context, gen llm.Generator, p llm.Prompt) (string, error) {
	resp, err := gen.Generate(ctx, p)
	if err != nil {
		return "", err
	}
	out := resp.Text()
	if out == "" {
		return "", errEmptyOutput
	}
	return out, nil
}

// isEmptyOutput reports whether the model answered but said nothing
func isEmptyOutput(err error) bool {
	return errors.Is(err, errEmptyOutput) || errors.Is(err, llm.ErrEmptyCompletion)
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > 100 {
		return string(r[:100]) + "..."
	}
	return s
}
