// ABOUTME: Generative-text capability contract and output text extraction
// ABOUTME: Response holds the possible output shapes; Text picks the first non-empty one
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt is one generation request
type Prompt struct {
	Model  string
	System string
	User   string
}

// Generator produces text for a prompt. Implementations may fail (timeout,
// malformed response); callers must tolerate the error.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (Response, error)
}

// Response carries whatever shapes the backend produced.
// Data is a structured payload, Content the plain message text, Raw the untouched backend value.
type Response struct {
	Data    any
	Content string
	Raw     any
}

// Text extracts plain text in order of preference: Data, then Content, then Raw.
func (r Response) Text() string {
	if s := stringify(r.Data); s != "" {
		return s
	}
	if s := strings.TrimSpace(r.Content); s != "" {
		return s
	}
	return stringify(r.Raw)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	case map[string]any, []any:
		if len(asCollection(t)) == 0 {
			return ""
		}
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return strings.TrimSpace(fmt.Sprint(t))
		}
		s := strings.TrimSpace(string(b))
		if s == "null" || s == "{}" || s == `""` {
			return ""
		}
		return s
	}
}

func asCollection(v any) []any {
	switch t := v.(type) {
	case map[string]any:
		out := make([]any, 0, len(t))
		for _, x := range t {
			out = append(out, x)
		}
		return out
	case []any:
		return t
	}
	return nil
}
