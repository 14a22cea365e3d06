// Package bank holds the static question catalogs: the standard round-1
// set and the builtin prebuilt bank used for round-2 selection when the
// database has not been seeded.
package bank

import "github.com/NoahOriano/see-your-future/internal/model"

// AgeQuestionID is the round-1 question the selector derives the user's
// age from.
const AgeQuestionID = "age"

// StandardRound1 returns the fixed round-1 question set: demographics,
// per-category interest sliders, and the freeform baseline intake.
func StandardRound1() []model.Question {
	return []model.Question{
		{
			ID:     AgeQuestionID,
			Prompt: "How old are you?",
			Type:   model.QuestionTypeText,
		},
		{
			ID:         "interest_career",
			Prompt:     "How much do you care about your career right now? (0-5)",
			Type:       model.QuestionTypeSlider,
			Category:   model.CategoryCareer,
			SliderMin:  0,
			SliderMax:  5,
			SliderStep: 1,
		},
		{
			ID:         "interest_health",
			Prompt:     "How much do you care about your health right now? (0-5)",
			Type:       model.QuestionTypeSlider,
			Category:   model.CategoryHealth,
			SliderMin:  0,
			SliderMax:  5,
			SliderStep: 1,
		},
		{
			ID:         "interest_relationships",
			Prompt:     "How much do you care about your relationships right now? (0-5)",
			Type:       model.QuestionTypeSlider,
			Category:   model.CategoryRelationships,
			SliderMin:  0,
			SliderMax:  5,
			SliderStep: 1,
		},
		{
			ID:         "interest_finance",
			Prompt:     "How much do you care about your finances right now? (0-5)",
			Type:       model.QuestionTypeSlider,
			Category:   model.CategoryFinance,
			SliderMin:  0,
			SliderMax:  5,
			SliderStep: 1,
		},
		{
			ID:         "interest_personal",
			Prompt:     "How much do you care about personal growth right now? (0-5)",
			Type:       model.QuestionTypeSlider,
			Category:   model.CategoryPersonal,
			SliderMin:  0,
			SliderMax:  5,
			SliderStep: 1,
		},
		{
			ID:       "habits",
			Prompt:   "Describe your typical daily habits.",
			Type:     model.QuestionTypeFreeform,
			Category: model.CategoryPersonal,
		},
		{
			ID:       "goals",
			Prompt:   "What are your main goals for the next few years?",
			Type:     model.QuestionTypeFreeform,
			Category: model.CategoryPersonal,
		},
		{
			ID:       "routines",
			Prompt:   "Walk through a normal weekday, morning to night.",
			Type:     model.QuestionTypeFreeform,
			Category: model.CategoryPersonal,
		},
		{
			ID:       "lifestyle",
			Prompt:   "How would you describe your current lifestyle?",
			Type:     model.QuestionTypeFreeform,
			Category: model.CategoryPersonal,
		},
	}
}

// Builtin returns the builtin prebuilt question bank. Order matters: the
// selector's tie-break preserves bank order.
func Builtin() []model.PrebuiltQuestionConfig {
	return []model.PrebuiltQuestionConfig{
		{
			ID:              "career_direction",
			Prompt:          "Where do you want your career to be in five years?",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryCareer,
			CategoryRatings: map[string]float64{model.CategoryCareer: 10},
		},
		{
			ID:              "career_switch",
			Prompt:          "Have you seriously considered changing fields? What holds you back?",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryCareer,
			AgeMin:          22,
			CategoryRatings: map[string]float64{model.CategoryCareer: 8, model.CategoryPersonal: 2},
		},
		{
			ID:       "career_study",
			Prompt:   "What are you studying or training for, and why?",
			Type:     model.QuestionTypeText,
			Category: model.CategoryCareer,
			AgeMax:   29,
			CategoryRatings: map[string]float64{
				model.CategoryCareer:   7,
				model.CategoryPersonal: 3,
			},
		},
		{
			ID:              "health_exercise",
			Prompt:          "How many days a week do you actually exercise?",
			Type:            model.QuestionTypeSelect,
			Category:        model.CategoryHealth,
			Options:         []string{"0", "1-2", "3-4", "5+"},
			CategoryRatings: map[string]float64{model.CategoryHealth: 10},
		},
		{
			ID:              "health_diet",
			Prompt:          "Describe what you ate yesterday.",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryHealth,
			CategoryRatings: map[string]float64{model.CategoryHealth: 8},
		},
		{
			ID:              "health_sleep",
			Prompt:          "How many hours of sleep do you get on a normal night?",
			Type:            model.QuestionTypeSelect,
			Category:        model.CategoryHealth,
			Options:         []string{"Under 5", "5-6", "7-8", "9+"},
			CategoryRatings: map[string]float64{model.CategoryHealth: 6, model.CategoryPersonal: 2},
		},
		{
			ID:              "health_checkup",
			Prompt:          "When did you last have a full medical checkup?",
			Type:            model.QuestionTypeSelect,
			Category:        model.CategoryHealth,
			Options:         []string{"This year", "1-2 years ago", "Longer", "Never"},
			AgeMin:          30,
			CategoryRatings: map[string]float64{model.CategoryHealth: 7},
		},
		{
			ID:              "rel_close_friends",
			Prompt:          "How many people could you call at 2am in a crisis?",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryRelationships,
			CategoryRatings: map[string]float64{model.CategoryRelationships: 10},
		},
		{
			ID:              "rel_family",
			Prompt:          "How often do you talk to your family, and how does it usually go?",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryRelationships,
			CategoryRatings: map[string]float64{model.CategoryRelationships: 7, model.CategoryPersonal: 2},
		},
		{
			ID:              "rel_partner_plans",
			Prompt:          "What role does a long-term partnership play in your plans?",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryRelationships,
			AgeMin:          20,
			CategoryRatings: map[string]float64{model.CategoryRelationships: 8},
		},
		{
			ID:              "fin_savings",
			Prompt:          "If your income stopped today, how long could you cover your expenses?",
			Type:            model.QuestionTypeSelect,
			Category:        model.CategoryFinance,
			Options:         []string{"Under a month", "1-3 months", "3-12 months", "Over a year"},
			CategoryRatings: map[string]float64{model.CategoryFinance: 10},
		},
		{
			ID:              "fin_budget",
			Prompt:          "Do you track your spending? How?",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryFinance,
			CategoryRatings: map[string]float64{model.CategoryFinance: 7},
		},
		{
			ID:              "fin_retirement",
			Prompt:          "What does your retirement planning look like so far?",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryFinance,
			AgeMin:          30,
			CategoryRatings: map[string]float64{model.CategoryFinance: 9},
		},
		{
			ID:              "fin_debt",
			Prompt:          "What debts are you carrying, and what is the plan for them?",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryFinance,
			AgeMin:          18,
			CategoryRatings: map[string]float64{model.CategoryFinance: 8, model.CategoryPersonal: 1},
		},
		{
			ID:              "personal_learning",
			Prompt:          "What was the last thing you taught yourself, and why?",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryPersonal,
			CategoryRatings: map[string]float64{model.CategoryPersonal: 9},
		},
		{
			ID:              "personal_time",
			Prompt:          "Where do your free evenings actually go?",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryPersonal,
			CategoryRatings: map[string]float64{model.CategoryPersonal: 7, model.CategoryHealth: 2},
		},
		{
			ID:              "personal_stress",
			Prompt:          "What do you do when you're stressed? Be honest.",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryPersonal,
			CategoryRatings: map[string]float64{model.CategoryPersonal: 6, model.CategoryHealth: 4},
		},
		{
			ID:              "personal_move",
			Prompt:          "Would you relocate for a better opportunity? What would it take?",
			Type:            model.QuestionTypeText,
			Category:        model.CategoryPersonal,
			AgeMax:          45,
			CategoryRatings: map[string]float64{model.CategoryPersonal: 5, model.CategoryCareer: 5},
		},
	}
}
