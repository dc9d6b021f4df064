// ABOUTME: Scriptable Generator fake for tests of handlers and the router
// ABOUTME: Records every prompt and replays queued responses or errors
package llmtest

import (
	"context"
	"sync"

	"github.com/harper/agentrouter/internal/llm"
)

// Reply is one scripted outcome
type Reply struct {
	Response llm.Response
	Err      error
	// Panic makes Generate panic with this value
	Panic any
}

// Generator replays Replies in order; the last one repeats once the queue is drained.
type Generator struct {
	mu      sync.Mutex
	replies []Reply
	prompts []llm.Prompt
}

// New returns a fake that answers with the given replies
func New(replies ...Reply) *Generator {
	return &Generator{replies: replies}
}

// Text returns a fake that always answers with content s
func Text(s string) *Generator {
	return New(Reply{Response: llm.Response{Content: s}})
}

// Failing returns a fake that always fails with err
func Failing(err error) *Generator {
	return New(Reply{Err: err})
}

// Generate implements llm.Generator
func (g *Generator) Generate(ctx context.Context, p llm.Prompt) (llm.Response, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, p)
	var r Reply
	switch {
	case len(g.replies) > 1:
		r, g.replies = g.replies[0], g.replies[1:]
	case len(g.replies) == 1:
		r = g.replies[0]
	}
	g.mu.Unlock()

	if r.Panic != nil {
		panic(r.Panic)
	}
	if err := ctx.Err(); err != nil {
		return llm.Response{}, err
	}
	return r.Response, r.Err
}

// Prompts returns every prompt received so far
func (g *Generator) Prompts() []llm.Prompt {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]llm.Prompt(nil), g.prompts...)
}

// Calls returns the number of Generate calls
func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}
