// ABOUTME: Tests for the targets command
// ABOUTME: Verifies table and JSON listings of the registry

package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/harper/agentrouter/internal/llm/llmtest"
)

func TestTargetsCmd_Table(t *testing.T) {
	useFakeApp(t, llmtest.Text("unused"))

	out, err := execute(t, "targets")
	if err != nil {
		t.Fatalf("targets failed: %v", err)
	}

	for _, want := range []string{"ID", "lektorAgent", "query_refAgent", "searchService", "timeService", "7 target(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestTargetsCmd_JSON(t *testing.T) {
	useFakeApp(t, llmtest.Text("unused"))

	out, err := execute(t, "--format", "json", "targets")
	if err != nil {
		t.Fatalf("targets failed: %v", err)
	}

	var targets []struct {
		ID    string `json:"id"`
		Kind  string `json:"kind"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal([]byte(out), &targets); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(targets) != 7 {
		t.Errorf("got %d targets, want 7", len(targets))
	}
}
