package service

import (
	"testing"

	"github.com/NoahOriano/see-your-future/internal/model"
)

func round1With(age string, interests map[string]string) *model.QuestionRound {
	questions := []model.Question{
		{ID: "age", Type: model.QuestionTypeText, Answer: age},
	}
	for category, value := range map[string]string{
		model.CategoryCareer:        interests[model.CategoryCareer],
		model.CategoryHealth:        interests[model.CategoryHealth],
		model.CategoryRelationships: interests[model.CategoryRelationships],
		model.CategoryFinance:       interests[model.CategoryFinance],
		model.CategoryPersonal:      interests[model.CategoryPersonal],
	} {
		questions = append(questions, model.Question{
			ID:       "interest_" + category,
			Type:     model.QuestionTypeSlider,
			Category: category,
			Answer:   value,
		})
	}
	return &model.QuestionRound{RoundNumber: 1, Source: model.SourceStandard, Questions: questions}
}

func TestSelectRound2ScoresByInterest(t *testing.T) {
	selector := NewSelectorService()

	candidates := []model.PrebuiltQuestionConfig{
		{ID: "career_q", CategoryRatings: map[string]float64{model.CategoryCareer: 10}},
		{ID: "health_q", CategoryRatings: map[string]float64{model.CategoryHealth: 2}},
	}
	round1 := round1With("30", map[string]string{
		model.CategoryCareer: "5",
		model.CategoryHealth: "2",
	})

	got := selector.SelectRound2(round1, candidates)
	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
	// career: 10*5=50 beats health: 2*2=4
	if got[0].ID != "career_q" {
		t.Errorf("expected career_q first, got %s", got[0].ID)
	}
	if got[0].RoundNumber != 2 {
		t.Errorf("expected roundNumber 2, got %d", got[0].RoundNumber)
	}
}

func TestSelectRound2AgeDisqualification(t *testing.T) {
	selector := NewSelectorService()

	candidates := []model.PrebuiltQuestionConfig{
		{ID: "retirement", AgeMin: 30, CategoryRatings: map[string]float64{model.CategoryFinance: 10}},
		{ID: "student_loans", AgeMax: 25, CategoryRatings: map[string]float64{model.CategoryFinance: 10}},
		{ID: "general", CategoryRatings: map[string]float64{model.CategoryFinance: 1}},
	}
	round1 := round1With("22", map[string]string{model.CategoryFinance: "5"})

	got := selector.SelectRound2(round1, candidates)
	for _, q := range got {
		if q.ID == "retirement" {
			t.Error("age-disqualified candidate was selected")
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 qualifying questions, got %d", len(got))
	}
	if got[0].ID != "student_loans" {
		t.Errorf("expected student_loans first, got %s", got[0].ID)
	}
}

func TestSelectRound2NoAgeDisablesGating(t *testing.T) {
	selector := NewSelectorService()

	candidates := []model.PrebuiltQuestionConfig{
		{ID: "retirement", AgeMin: 30, CategoryRatings: map[string]float64{model.CategoryFinance: 10}},
	}

	for _, age := range []string{"", "not a number", "0", "-5"} {
		round1 := round1With(age, map[string]string{model.CategoryFinance: "5"})
		got := selector.SelectRound2(round1, candidates)
		if len(got) != 1 {
			t.Errorf("age %q: expected age gating disabled, got %d questions", age, len(got))
		}
	}
}

func TestSelectRound2CapsAtTen(t *testing.T) {
	selector := NewSelectorService()

	var candidates []model.PrebuiltQuestionConfig
	for i := 0; i < 15; i++ {
		candidates = append(candidates, model.PrebuiltQuestionConfig{
			ID:              string(rune('a' + i)),
			CategoryRatings: map[string]float64{model.CategoryPersonal: float64(i)},
		})
	}
	round1 := round1With("40", map[string]string{model.CategoryPersonal: "3"})

	got := selector.SelectRound2(round1, candidates)
	if len(got) != MaxPrebuiltQuestions {
		t.Errorf("expected %d questions, got %d", MaxPrebuiltQuestions, len(got))
	}
}

func TestSelectRound2StableTieBreak(t *testing.T) {
	selector := NewSelectorService()

	candidates := []model.PrebuiltQuestionConfig{
		{ID: "first", CategoryRatings: map[string]float64{model.CategoryHealth: 3}},
		{ID: "second", CategoryRatings: map[string]float64{model.CategoryHealth: 3}},
		{ID: "third", CategoryRatings: map[string]float64{model.CategoryHealth: 3}},
	}
	round1 := round1With("30", map[string]string{model.CategoryHealth: "4"})

	for i := 0; i < 5; i++ {
		got := selector.SelectRound2(round1, candidates)
		if got[0].ID != "first" || got[1].ID != "second" || got[2].ID != "third" {
			t.Fatalf("tie break not stable on run %d: %s %s %s", i, got[0].ID, got[1].ID, got[2].ID)
		}
	}
}

func TestExtractInterestsClamped(t *testing.T) {
	round1 := &model.QuestionRound{Questions: []model.Question{
		{ID: "a", Type: model.QuestionTypeSlider, Category: model.CategoryCareer, Answer: "9"},
		{ID: "b", Type: model.QuestionTypeSlider, Category: model.CategoryHealth, Answer: "-2"},
		{ID: "c", Type: model.QuestionTypeSlider, Category: model.CategoryFinance, Answer: "junk"},
	}}

	interests := extractInterests(round1)
	if interests[model.CategoryCareer] != 5 {
		t.Errorf("career = %v, want clamped to 5", interests[model.CategoryCareer])
	}
	if interests[model.CategoryHealth] != 0 {
		t.Errorf("health = %v, want clamped to 0", interests[model.CategoryHealth])
	}
	if interests[model.CategoryFinance] != 0 {
		t.Errorf("finance = %v, want 0 for non-numeric", interests[model.CategoryFinance])
	}
}
