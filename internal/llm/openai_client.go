// ABOUTME: OpenAI-compatible chat client implementing the generative-text capability
// ABOUTME: Talks to Ollama or OpenAI through go-openai with a per-call deadline and opt-in retries
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/agentrouter/internal/config"
	"github.com/harper/agentrouter/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// ClientConfig holds configuration for the OpenAI-compatible client
type ClientConfig struct {
	APIKey      string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
}

// ConfigFrom derives client settings from the process configuration
func ConfigFrom(cfg *config.Config) *ClientConfig {
	return &ClientConfig{
		APIKey:      cfg.EffectiveAPIKey(),
		BaseURL:     cfg.BaseURL,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.LLMTimeout,
		MaxRetries:  cfg.MaxRetries,
		RetryDelay:  cfg.RetryDelay,
	}
}

// chatCompleter is the subset of *openai.Client used here
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient wraps the go-openai client
type OpenAIClient struct {
	client      chatCompleter
	temperature float32
	maxTokens   int
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
}

// NewOpenAIClient creates a client for the configured OpenAI-compatible endpoint
func NewOpenAIClient(cfg *ClientConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	oaiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oaiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return newWithCompleter(openai.NewClientWithConfig(oaiCfg), cfg), nil
}

func newWithCompleter(client chatCompleter, cfg *ClientConfig) *OpenAIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		client:      client,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
	}
}

// ErrEmptyCompletion is returned when the model answered without content or tool arguments
var ErrEmptyCompletion = errors.New("completion has no content")

// Generate sends the prompt as a system+user chat completion.
// Each attempt gets its own deadline; a timeout is returned as an ordinary error.
func (c *OpenAIClient) Generate(ctx context.Context, p Prompt) (Response, error) {
	if p.Model == "" {
		return Response{}, fmt.Errorf("model is required")
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if p.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: p.User,
	})

	req := openai.ChatCompletionRequest{
		Model:       p.Model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var out Response
	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateChatCompletion(attemptCtx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no completion choices returned")
		}

		out = responseFrom(resp)
		if out.Text() == "" {
			return ErrEmptyCompletion
		}
		return nil
	})
	if err != nil {
		return Response{}, fmt.Errorf("chat completion (%s): %w", p.Model, err)
	}
	return out, nil
}

// responseFrom maps a completion onto the Response shapes: tool-call arguments are
// structured data and message content is content. Raw stays unset so that an empty
// reply never turns into a dump of the completion envelope.
func responseFrom(resp openai.ChatCompletionResponse) Response {
	msg := resp.Choices[0].Message
	out := Response{Content: msg.Content}

	var args string
	if len(msg.ToolCalls) > 0 {
		args = msg.ToolCalls[0].Function.Arguments
	} else if msg.FunctionCall != nil {
		args = msg.FunctionCall.Arguments
	}
	if args != "" {
		var data any
		if err := json.Unmarshal([]byte(args), &data); err == nil {
			out.Data = data
		} else {
			out.Data = args
		}
	}
	return out
}
