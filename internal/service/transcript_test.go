package service

import (
	"strings"
	"testing"

	"github.com/NoahOriano/see-your-future/internal/model"
)

func TestBuildTranscript(t *testing.T) {
	rounds := []model.QuestionRound{
		{
			RoundNumber: 1,
			Label:       "Round 1: Foundations",
			Source:      model.SourceStandard,
			Questions: []model.Question{
				{ID: "age", Prompt: "How old are you?", Answer: "29"},
				{ID: "habits", Prompt: "Describe your habits.", Answer: "  "},
			},
		},
		{
			RoundNumber: 2,
			Label:       "Round 2: Tailored Questions",
			Source:      model.SourcePrebuilt,
			Questions: []model.Question{
				{ID: "career_direction", Prompt: "Where is your career going?", Answer: "Up, I hope"},
			},
		},
	}

	got := BuildTranscript(rounds)

	want := "Round 1 (standard - Round 1: Foundations)\n" +
		"  Q1: How old are you?\n" +
		"  A1: 29\n" +
		"  Q2: Describe your habits.\n" +
		"  A2: (no answer)\n" +
		"\n" +
		"Round 2 (prebuilt - Round 2: Tailored Questions)\n" +
		"  Q1: Where is your career going?\n" +
		"  A1: Up, I hope"

	if got != want {
		t.Errorf("transcript mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildTranscriptEmpty(t *testing.T) {
	if got := BuildTranscript(nil); got != "" {
		t.Errorf("expected empty transcript, got %q", got)
	}
}

func TestBuildTranscriptDeterministic(t *testing.T) {
	rounds := []model.QuestionRound{
		{
			RoundNumber: 1,
			Label:       "Round 1: Foundations",
			Source:      model.SourceStandard,
			Questions: []model.Question{
				{ID: "goals", Prompt: "Goals?", Answer: "run a marathon"},
			},
		},
	}

	first := BuildTranscript(rounds)
	second := BuildTranscript(rounds)
	if first != second {
		t.Error("identical rounds produced different transcripts")
	}
	if !strings.Contains(first, "run a marathon") {
		t.Errorf("answer missing from transcript: %q", first)
	}
}
