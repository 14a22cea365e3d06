package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/NoahOriano/see-your-future/internal/model"
)

func TestRepairFutureResult(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantDesc  string
		wantScore float64
		wantLabel string
	}{
		{
			name:      "well formed",
			raw:       `{"description":"A bright decade ahead.","qualityScore":82,"qualityLabel":"Strong Outlook"}`,
			wantDesc:  "A bright decade ahead.",
			wantScore: 82,
			wantLabel: "Strong Outlook",
		},
		{
			name:      "missing label",
			raw:       `{"description":"Steady years.","qualityScore":60}`,
			wantDesc:  "Steady years.",
			wantScore: 60,
			wantLabel: model.QualityLabelInferred,
		},
		{
			name:      "score out of range",
			raw:       `{"description":"Odd scoring.","qualityScore":250,"qualityLabel":"Weird"}`,
			wantDesc:  "Odd scoring.",
			wantScore: 75,
			wantLabel: "Weird",
		},
		{
			name:      "numeric string score is coerced",
			raw:       `{"description":"Solid path.","qualityScore":"88","qualityLabel":"Strong"}`,
			wantDesc:  "Solid path.",
			wantScore: 88,
			wantLabel: "Strong",
		},
		{
			name:      "numeric string score out of range",
			raw:       `{"description":"Too generous.","qualityScore":"250","qualityLabel":"Odd"}`,
			wantDesc:  "Too generous.",
			wantScore: 75,
			wantLabel: "Odd",
		},
		{
			name:      "score not a number",
			raw:       `{"description":"Text score.","qualityScore":"high","qualityLabel":"Odd"}`,
			wantDesc:  "Text score.",
			wantScore: 75,
			wantLabel: "Odd",
		},
		{
			name:      "missing score",
			raw:       `{"description":"No score here.","qualityLabel":"Partial"}`,
			wantDesc:  "No score here.",
			wantScore: 75,
			wantLabel: "Partial",
		},
		{
			name:      "empty description keeps raw",
			raw:       `{"description":"","qualityScore":50}`,
			wantDesc:  `{"description":"","qualityScore":50}`,
			wantScore: 50,
			wantLabel: model.QualityLabelInferred,
		},
		{
			name:      "no object at all",
			raw:       "The future looks bleak, plain and simple.",
			wantDesc:  "The future looks bleak, plain and simple.",
			wantScore: 75,
			wantLabel: model.QualityLabelUnstructured,
		},
		{
			name:      "zero score is valid",
			raw:       `{"description":"Rough road.","qualityScore":0,"qualityLabel":"Challenging"}`,
			wantDesc:  "Rough road.",
			wantScore: 0,
			wantLabel: "Challenging",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repairFutureResult(tt.raw)
			if got.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", got.Description, tt.wantDesc)
			}
			if got.QualityScore != tt.wantScore {
				t.Errorf("qualityScore = %v, want %v", got.QualityScore, tt.wantScore)
			}
			if got.QualityLabel != tt.wantLabel {
				t.Errorf("qualityLabel = %q, want %q", got.QualityLabel, tt.wantLabel)
			}
		})
	}
}

func TestGenerateFutureProviderFailure(t *testing.T) {
	svc := NewFutureService(disabledAIClient(), "test-model", zap.NewNop())

	result := svc.GenerateFuture(context.Background(), previousRoundsWithAnswer("x"), nil)
	if result == nil {
		t.Fatal("expected a result even without a provider")
	}
	if result.QualityScore != fallbackQualityScore {
		t.Errorf("qualityScore = %v, want %v", result.QualityScore, fallbackQualityScore)
	}
	if result.QualityLabel != model.QualityLabelFallback {
		t.Errorf("qualityLabel = %q, want %q", result.QualityLabel, model.QualityLabelFallback)
	}
	if result.Description == "" {
		t.Error("fallback result has empty description")
	}
}

func TestGenerateFutureSendsSystemInstruction(t *testing.T) {
	var got struct {
		SystemInstruction *struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"systemInstruction"`
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": `{"description":"d","qualityScore":50}`}},
				}},
			},
		})
	}))
	defer srv.Close()

	svc := NewFutureService(testAIClient(srv.URL, "test-key"), "test-model", zap.NewNop())
	svc.GenerateFuture(context.Background(), previousRoundsWithAnswer("answer text"), nil)

	if got.SystemInstruction == nil || len(got.SystemInstruction.Parts) == 0 {
		t.Fatal("no system instruction sent")
	}
	if !strings.Contains(got.SystemInstruction.Parts[0].Text, "respond ONLY in JSON") {
		t.Errorf("unexpected system instruction: %q", got.SystemInstruction.Parts[0].Text)
	}
	if len(got.Contents) == 0 || !strings.Contains(got.Contents[0].Parts[0].Text, "answer text") {
		t.Error("transcript missing from the user turn")
	}
}

func TestGenerateFutureWithModel(t *testing.T) {
	srv := fakeGemini(t, `{"description":"You will ship many services.","qualityScore":88,"qualityLabel":"Strong Outlook"}`)
	defer srv.Close()

	svc := NewFutureService(testAIClient(srv.URL, "test-key"), "test-model", zap.NewNop())
	result := svc.GenerateFuture(context.Background(), previousRoundsWithAnswer("write Go"), nil)

	if result.Description != "You will ship many services." {
		t.Errorf("description = %q", result.Description)
	}
	if result.QualityScore != 88 || result.QualityLabel != "Strong Outlook" {
		t.Errorf("score/label = %v/%q", result.QualityScore, result.QualityLabel)
	}
}
