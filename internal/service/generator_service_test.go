package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/NoahOriano/see-your-future/internal/config"
	"github.com/NoahOriano/see-your-future/internal/genai"
	"github.com/NoahOriano/see-your-future/internal/model"
)

// fakeGemini wraps a canned text payload in the generateContent response
// envelope and serves it from a test server.
func fakeGemini(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": text}},
				}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func testAIClient(baseURL, apiKey string) *genai.Client {
	return genai.NewClient(&config.AIConfig{
		APIKey:    apiKey,
		BaseURL:   baseURL,
		Models:    config.GeminiModels{Questions: "test-model"},
		TimeoutMS: 2000,
	})
}

func disabledAIClient() *genai.Client {
	return testAIClient("http://localhost:0", "")
}

func previousRoundsWithAnswer(answer string) []model.QuestionRound {
	return []model.QuestionRound{
		{
			RoundNumber: 1,
			Label:       "Round 1: Foundations",
			Source:      model.SourceStandard,
			Questions: []model.Question{
				{ID: "goals", Prompt: "Goals?", Answer: answer},
			},
		},
	}
}

func TestGenerateRoundWithModel(t *testing.T) {
	payload := `[{"id":"deep_habits","prompt":"How often do you exercise?","type":"text","category":"health"},
		{"prompt":"Pick one","type":"select","options":["A","B"]},
		{"id":"blank","prompt":"  "}]`
	srv := fakeGemini(t, payload)
	defer srv.Close()

	g := NewGeneratorService(testAIClient(srv.URL, "test-key"), "test-model", 4, zap.NewNop())
	round := g.GenerateRound(context.Background(), previousRoundsWithAnswer("learn Go"), 3)

	if round.RoundNumber != 3 || round.Source != model.SourceGenerated {
		t.Fatalf("round header wrong: %+v", round)
	}
	if len(round.Questions) != 2 {
		t.Fatalf("expected 2 usable questions, got %d", len(round.Questions))
	}

	if round.Questions[0].ID != "deep_habits" {
		t.Errorf("expected model-supplied id, got %s", round.Questions[0].ID)
	}
	if round.Questions[1].ID != "g_3_1" {
		t.Errorf("expected synthesized id g_3_1, got %s", round.Questions[1].ID)
	}
	if round.Questions[1].Type != model.QuestionTypeSelect || len(round.Questions[1].Options) != 2 {
		t.Errorf("select question not preserved: %+v", round.Questions[1])
	}
	for _, q := range round.Questions {
		if q.RoundNumber != 3 {
			t.Errorf("question %s carries roundNumber %d", q.ID, q.RoundNumber)
		}
	}
}

func TestGenerateRoundFallbackWithoutCredential(t *testing.T) {
	g := NewGeneratorService(disabledAIClient(), "test-model", 4, zap.NewNop())

	round := g.GenerateRound(context.Background(), previousRoundsWithAnswer("start a business"), 3)
	if len(round.Questions) != 4 {
		t.Fatalf("expected 4 fallback questions, got %d", len(round.Questions))
	}
	for _, q := range round.Questions {
		if q.Prompt == "" {
			t.Errorf("question %s has empty prompt", q.ID)
		}
		if q.RoundNumber != 3 {
			t.Errorf("question %s carries roundNumber %d", q.ID, q.RoundNumber)
		}
	}
}

func TestGenerateRoundFallbackRotates(t *testing.T) {
	g := NewGeneratorService(disabledAIClient(), "test-model", 2, zap.NewNop())
	rounds := previousRoundsWithAnswer("travel more")

	round3 := g.GenerateRound(context.Background(), rounds, 3)
	round4 := g.GenerateRound(context.Background(), rounds, 4)

	// IDs are template name + round number; strip the round suffix so the
	// comparison is about which template was picked.
	kind := func(q model.Question) string {
		return strings.TrimRight(q.ID, "0123456789_")
	}
	if kind(round3.Questions[0]) == kind(round4.Questions[0]) {
		t.Errorf("template rotation did not shift between rounds: %s", round3.Questions[0].ID)
	}
}

func TestGenerateRoundFallbackOnMalformedResponse(t *testing.T) {
	srv := fakeGemini(t, "I refuse to answer in JSON today.")
	defer srv.Close()

	g := NewGeneratorService(testAIClient(srv.URL, "test-key"), "test-model", 4, zap.NewNop())
	round := g.GenerateRound(context.Background(), previousRoundsWithAnswer("x"), 3)

	if len(round.Questions) == 0 {
		t.Fatal("malformed model output should still produce questions")
	}
	if round.Questions[0].ID == "" {
		t.Error("fallback question missing id")
	}
}

func TestLastAnswerSnippetTruncates(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	rounds := previousRoundsWithAnswer(string(long))

	snippet := lastAnswerSnippet(rounds, snippetMaxLen)
	if len(snippet) != snippetMaxLen {
		t.Errorf("snippet length = %d, want %d", len(snippet), snippetMaxLen)
	}

	if got := lastAnswerSnippet(nil, snippetMaxLen); got != "" {
		t.Errorf("expected empty snippet for no rounds, got %q", got)
	}
}

func TestLastAnswerSnippetMultiByte(t *testing.T) {
	rounds := previousRoundsWithAnswer(strings.Repeat("健康第一", 100))

	snippet := lastAnswerSnippet(rounds, snippetMaxLen)
	if utf8.RuneCountInString(snippet) != snippetMaxLen {
		t.Errorf("rune count = %d, want %d", utf8.RuneCountInString(snippet), snippetMaxLen)
	}
	if !utf8.ValidString(snippet) {
		t.Error("snippet is not valid UTF-8")
	}
}

func TestStaticQuestionsShape(t *testing.T) {
	questions := staticQuestions(nil, 5)
	if len(questions) != 2 {
		t.Fatalf("expected 2 static questions, got %d", len(questions))
	}
	if questions[0].ID != "future_doubts" || questions[1].ID != "support_network" {
		t.Errorf("unexpected static ids: %s, %s", questions[0].ID, questions[1].ID)
	}
	if questions[1].Type != model.QuestionTypeSelect || len(questions[1].Options) != 3 {
		t.Errorf("support_network should be a 3-option select: %+v", questions[1])
	}
}
