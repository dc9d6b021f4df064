package handlers

import (
	"context"
	"testing"

	"github.com/harper/agentrouter/internal/models"
	"go.uber.org/zap"
)

func TestRefineQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"table match after colon", "Verbessere diese Suchanfrage: Was ist KI", enhancementRules[1].enhanced},
		{"first rule wins", "erkläre ki bitte", enhancementRules[0].enhanced},
		{"case insensitive", "python lernen", enhancementRules[6].enhanced},
		{"short query", "Suchbegriff: Rust", "Bitte erkläre mir ausführlich das Thema 'Rust' mit praktischen Beispielen und Hintergrundinformationen."},
		{"statement", "Wie funktioniert ein Verbrennungsmotor genau", "Wie funktioniert ein Verbrennungsmotor genau? Bitte gib mir eine detaillierte Antwort mit Beispielen."},
		{"question", "Wie funktioniert ein Verbrennungsmotor?", "Wie funktioniert ein Verbrennungsmotor? Bitte strukturiere deine Antwort mit klaren Abschnitten und praktischen Beispielen."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RefineQuery(tt.in); got != tt.want {
				t.Errorf("RefineQuery(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestQueryRef_Handle(t *testing.T) {
	h := NewQueryRef(zap.NewNop())

	res := h.Handle(context.Background(), req(models.Parameters{"text": "Rust", "context": "Systemprogrammierung"}))
	if !res.OK() {
		t.Fatalf("Status = %s", res.Status)
	}
	data := res.Data.(models.QueryRefResult)
	want := "Bitte erkläre mir ausführlich das Thema 'Rust' mit praktischen Beispielen und Hintergrundinformationen. (Kontext: Systemprogrammierung)"
	if data.RefinedQuery != want {
		t.Errorf("RefinedQuery = %q, want %q", data.RefinedQuery, want)
	}
	if data.Context != "Systemprogrammierung" || data.OriginalText != "Rust" {
		t.Errorf("Data = %+v", data)
	}

	res = h.Handle(context.Background(), req(models.Parameters{"text": " "}))
	if res.Status != models.StatusError {
		t.Errorf("empty text Status = %s, want error", res.Status)
	}
}
