// ABOUTME: Centralized configuration for the agent router
// ABOUTME: Loads from environment variables (optionally seeded by .env) with validation and defaults
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DummyAPIKey is sent to OpenAI-compatible endpoints that ignore authentication.
const DummyAPIKey = "sk-dummy"

// Config holds all configuration for the router process
type Config struct {
	// LLM settings (any OpenAI-compatible endpoint, Ollama by default)
	APIKey         string        `envconfig:"API_KEY" default:"ollama"`
	BaseURL        string        `envconfig:"BASE_URL" default:"http://localhost:11434/v1"`
	DefaultModel   string        `envconfig:"DEFAULT_MODEL" default:"qwen2.5:latest"`
	GrammarModel   string        `envconfig:"GRAMMAR_MODEL"`
	SentimentModel string        `envconfig:"SENTIMENT_MODEL"`
	OptimizerModel string        `envconfig:"OPTIMIZER_MODEL"`
	InterfaceModel string        `envconfig:"INTERFACE_MODEL"`
	Temperature    float32       `envconfig:"LLM_TEMPERATURE" default:"0.7"`
	MaxTokens      int           `envconfig:"LLM_MAX_TOKENS" default:"2048"`
	LLMTimeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
	MaxRetries     int           `envconfig:"LLM_MAX_RETRIES" default:"0"`
	RetryDelay     time.Duration `envconfig:"LLM_RETRY_DELAY" default:"2s"`

	// Search service
	SearchTimeout    time.Duration `envconfig:"SEARCH_TIMEOUT" default:"30s"`
	SearchRegion     string        `envconfig:"SEARCH_REGION" default:"de-de"`
	SearchRatePerSec float64       `envconfig:"SEARCH_RATE_PER_SEC" default:"1"`
	SearchBaseURL    string        `envconfig:"SEARCH_BASE_URL" default:"https://html.duckduckgo.com/html/"`

	// Page extraction service
	WebTimeout         time.Duration `envconfig:"WEB_TIMEOUT" default:"30s"`
	WebBrowserFallback bool          `envconfig:"WEB_BROWSER_FALLBACK" default:"false"`
	WebMaxContent      int           `envconfig:"WEB_MAX_CONTENT" default:"50000"`

	// Time service
	NTPServer  string        `envconfig:"NTP_SERVER" default:"de.pool.ntp.org"`
	NTPTimeout time.Duration `envconfig:"NTP_TIMEOUT" default:"5s"`

	// HTTP surface
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8000"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, cfg.Validate()
}

// LoadWithDotenv loads .env files (missing files are ignored) before reading the environment.
// Variables already set in the process environment win over .env values.
func LoadWithDotenv(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)
	return Load()
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("BASE_URL must not be empty")
	}
	if strings.TrimSpace(c.DefaultModel) == "" {
		return fmt.Errorf("DEFAULT_MODEL must not be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("LLM_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.LLMTimeout <= 0 || c.SearchTimeout <= 0 || c.WebTimeout <= 0 || c.NTPTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.SearchRatePerSec <= 0 {
		return fmt.Errorf("SEARCH_RATE_PER_SEC must be positive, got %f", c.SearchRatePerSec)
	}
	if c.WebMaxContent <= 0 {
		return fmt.Errorf("WEB_MAX_CONTENT must be positive, got %d", c.WebMaxContent)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// EffectiveAPIKey maps the "ollama" placeholder to a dummy key accepted by OpenAI clients.
func (c *Config) EffectiveAPIKey() string {
	if c.APIKey == "" || c.APIKey == "ollama" {
		return DummyAPIKey
	}
	return c.APIKey
}

// ModelFor returns the model configured for a target, falling back to DefaultModel.
func (c *Config) ModelFor(target string) string {
	var m string
	switch target {
	case "lektor":
		m = c.GrammarModel
	case "sentiment":
		m = c.SentimentModel
	case "optimizer":
		m = c.OptimizerModel
	case "interface":
		m = c.InterfaceModel
	}
	if m == "" {
		return c.DefaultModel
	}
	return m
}
