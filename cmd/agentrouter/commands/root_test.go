// ABOUTME: Tests for root CLI command and global flags
// ABOUTME: Verifies command structure, subcommands, and flag handling

package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/harper/agentrouter/internal/app"
	"github.com/harper/agentrouter/internal/config"
	"github.com/harper/agentrouter/internal/llm/llmtest"
	"go.uber.org/zap"
)

// useFakeApp swaps the app builder for one backed by a scripted generator
func useFakeApp(t *testing.T, gen *llmtest.Generator) {
	t.Helper()
	orig := newApp
	t.Cleanup(func() { newApp = orig })

	newApp = func() (*app.App, error) {
		cfg := &config.Config{
			BaseURL:          "http://localhost:11434/v1",
			DefaultModel:     "qwen2.5:latest",
			LLMTimeout:       time.Minute,
			SearchTimeout:    time.Second,
			SearchRatePerSec: 1,
			SearchBaseURL:    "http://127.0.0.1:1/html/",
			WebTimeout:       time.Second,
			WebMaxContent:    1000,
			NTPServer:        "127.0.0.1",
			NTPTimeout:       time.Second,
			HTTPAddr:         "127.0.0.1:0",
		}
		return app.NewWithGenerator(cfg, zap.NewNop(), gen)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.Use != "agentrouter" {
		t.Errorf("Use = %q, want %q", cmd.Use, "agentrouter")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if !strings.Contains(cmd.Long, "███") {
		t.Error("Long description should contain ASCII banner")
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	cmd := NewRootCmd()

	tests := []struct {
		flagName  string
		shorthand string
		defValue  string
	}{
		{"verbose", "v", "false"},
		{"quiet", "q", "false"},
		{"format", "", "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := cmd.PersistentFlags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("--%s flag not found", tt.flagName)
			}

			if tt.shorthand != "" && flag.Shorthand != tt.shorthand {
				t.Errorf("--%s shorthand = %q, want %q", tt.flagName, flag.Shorthand, tt.shorthand)
			}

			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.flagName, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestRootCmd_FlagValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{"verbose only", []string{"--verbose", "version"}, false},
		{"quiet only", []string{"--quiet", "version"}, false},
		{"verbose and quiet", []string{"--verbose", "--quiet", "version"}, true},
		{"json format", []string{"--format", "json", "version"}, false},
		{"unknown format", []string{"--format", "xml", "version"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)

			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, subCmdName := range []string{"route", "serve", "mcp", "targets", "version"} {
		t.Run(subCmdName, func(t *testing.T) {
			found := false
			for _, sub := range cmd.Commands() {
				if sub.Use == subCmdName || strings.HasPrefix(sub.Use, subCmdName+" ") {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Subcommand %q not found", subCmdName)
			}
		})
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	out, _ := execute(t, "--help")

	for _, want := range []string{"Usage:", "Available Commands:", "Flags:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Help output should contain %q", want)
		}
	}
}

func TestRootCmd_SilenceUsage(t *testing.T) {
	if !NewRootCmd().SilenceUsage {
		t.Error("SilenceUsage should be true to prevent usage on errors")
	}
}
