// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing, model fallback and validation
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		BaseURL:          "http://localhost:11434/v1",
		DefaultModel:     "qwen2.5:latest",
		Temperature:      0.7,
		MaxTokens:        2048,
		LLMTimeout:       time.Minute,
		SearchTimeout:    30 * time.Second,
		SearchRatePerSec: 1,
		WebTimeout:       30 * time.Second,
		WebMaxContent:    50000,
		NTPTimeout:       5 * time.Second,
		LogLevel:         "info",
		LogFormat:        "console",
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIKey != "ollama" {
		t.Errorf("APIKey = %s, want ollama", cfg.APIKey)
	}
	if cfg.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("BaseURL = %s, want http://localhost:11434/v1", cfg.BaseURL)
	}
	if cfg.DefaultModel != "qwen2.5:latest" {
		t.Errorf("DefaultModel = %s, want qwen2.5:latest", cfg.DefaultModel)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Errorf("LLMTimeout = %v, want 60s", cfg.LLMTimeout)
	}
	if cfg.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0", cfg.MaxRetries)
	}
	if cfg.SearchRegion != "de-de" {
		t.Errorf("SearchRegion = %s, want de-de", cfg.SearchRegion)
	}
	if cfg.NTPServer != "de.pool.ntp.org" {
		t.Errorf("NTPServer = %s, want de.pool.ntp.org", cfg.NTPServer)
	}
	if cfg.WebBrowserFallback {
		t.Error("WebBrowserFallback = true, want false")
	}
	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %s, want :8000", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	t.Setenv("API_KEY", "test-key")
	t.Setenv("BASE_URL", "https://api.openai.com/v1")
	t.Setenv("DEFAULT_MODEL", "gpt-4o-mini")
	t.Setenv("SENTIMENT_MODEL", "gpt-4o")
	t.Setenv("LLM_TIMEOUT", "10s")
	t.Setenv("LLM_MAX_RETRIES", "2")
	t.Setenv("SEARCH_RATE_PER_SEC", "0.5")
	t.Setenv("WEB_BROWSER_FALLBACK", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.EffectiveAPIKey() != "test-key" {
		t.Errorf("EffectiveAPIKey() = %s, want test-key", cfg.EffectiveAPIKey())
	}
	if cfg.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %s", cfg.BaseURL)
	}
	if cfg.LLMTimeout != 10*time.Second {
		t.Errorf("LLMTimeout = %v, want 10s", cfg.LLMTimeout)
	}
	if cfg.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", cfg.MaxRetries)
	}
	if cfg.SearchRatePerSec != 0.5 {
		t.Errorf("SearchRatePerSec = %f, want 0.5", cfg.SearchRatePerSec)
	}
	if !cfg.WebBrowserFallback {
		t.Error("WebBrowserFallback = false, want true")
	}
	if got := cfg.ModelFor("sentiment"); got != "gpt-4o" {
		t.Errorf("ModelFor(sentiment) = %s, want gpt-4o", got)
	}
	if got := cfg.ModelFor("lektor"); got != "gpt-4o-mini" {
		t.Errorf("ModelFor(lektor) = %s, want default gpt-4o-mini", got)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	os.Clearenv()
	t.Setenv("LLM_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for unparsable duration")
	}
}

func TestLoadWithDotenv(t *testing.T) {
	os.Clearenv()
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("DEFAULT_MODEL=llama3\nNTP_SERVER=ptbtime1.ptb.de\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("NTP_SERVER", "pool.ntp.org")

	cfg, err := LoadWithDotenv(envFile)
	if err != nil {
		t.Fatalf("LoadWithDotenv() failed: %v", err)
	}
	if cfg.DefaultModel != "llama3" {
		t.Errorf("DefaultModel = %s, want llama3", cfg.DefaultModel)
	}
	// process environment wins over .env
	if cfg.NTPServer != "pool.ntp.org" {
		t.Errorf("NTPServer = %s, want pool.ntp.org", cfg.NTPServer)
	}
}

func TestLoadWithDotenv_MissingFile(t *testing.T) {
	os.Clearenv()

	if _, err := LoadWithDotenv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadWithDotenv() should ignore a missing file, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty base url", func(c *Config) { c.BaseURL = " " }},
		{"empty default model", func(c *Config) { c.DefaultModel = "" }},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }},
		{"too many retries", func(c *Config) { c.MaxRetries = 15 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"zero llm timeout", func(c *Config) { c.LLMTimeout = 0 }},
		{"zero search rate", func(c *Config) { c.SearchRatePerSec = 0 }},
		{"zero web max content", func(c *Config) { c.WebMaxContent = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
	}

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() on valid config failed: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestEffectiveAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", DummyAPIKey},
		{"ollama", DummyAPIKey},
		{"sk-real", "sk-real"},
	}

	for _, tt := range tests {
		cfg := &Config{APIKey: tt.key}
		if got := cfg.EffectiveAPIKey(); got != tt.want {
			t.Errorf("EffectiveAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
