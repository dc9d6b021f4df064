// ABOUTME: Tests for Result and RoutedResponse envelopes
// ABOUTME: Verifies constructors and JSON field names consumed by clients

package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestResultConstructors(t *testing.T) {
	ok := Success(&GrammarResult{CorrectedText: "x"}, "done")
	if !ok.OK() || ok.Message != "done" || ok.Data == nil {
		t.Errorf("Success() = %+v", ok)
	}

	fail := Failure("no text")
	if fail.OK() || fail.Data != nil {
		t.Errorf("Failure() = %+v", fail)
	}

	degraded := Degraded(&GrammarResult{CorrectedText: "orig"}, "llm down")
	if degraded.OK() || degraded.Data == nil {
		t.Errorf("Degraded() = %+v", degraded)
	}
}

func TestRoutedResponse_ErrorOmitsData(t *testing.T) {
	resp := RoutedResponse{
		Text:          "Fehler",
		TargetUsed:    LabelRouter,
		OriginalQuery: "",
		Status:        StatusError,
		Message:       "No query provided",
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if strings.Contains(string(raw), `"data"`) {
		t.Errorf("error envelope should omit data, got %s", raw)
	}
	for _, field := range []string{`"text"`, `"target_used"`, `"original_query"`, `"status":"error"`, `"message"`} {
		if !strings.Contains(string(raw), field) {
			t.Errorf("missing %s in %s", field, raw)
		}
	}
}
