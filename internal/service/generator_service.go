package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/NoahOriano/see-your-future/internal/genai"
	"github.com/NoahOriano/see-your-future/internal/model"
)

// snippetMaxLen bounds the answer snippet embedded in fallback templates.
const snippetMaxLen = 120

// GeneratorService produces questions for round 3 and later. Strategies are
// tried in order: the text provider, then the local template generator, then
// a static last-resort pair. The last two are total, so GenerateRound always
// returns a non-empty round and never returns an error.
type GeneratorService struct {
	ai     *genai.Client
	model  string
	count  int
	logger *zap.Logger
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(ai *genai.Client, modelName string, fallbackCount int, logger *zap.Logger) *GeneratorService {
	if fallbackCount <= 0 {
		fallbackCount = 4
	}
	return &GeneratorService{
		ai:     ai,
		model:  modelName,
		count:  fallbackCount,
		logger: logger,
	}
}

// GenerateRound returns the generated round for the requested number.
func (s *GeneratorService) GenerateRound(ctx context.Context, previousRounds []model.QuestionRound, requestedRoundNumber int) *model.QuestionRound {
	questions := s.generateQuestions(ctx, previousRounds, requestedRoundNumber)
	return &model.QuestionRound{
		RoundNumber: requestedRoundNumber,
		Label:       model.RoundLabel(requestedRoundNumber),
		Source:      model.SourceGenerated,
		Questions:   questions,
	}
}

func (s *GeneratorService) generateQuestions(ctx context.Context, previousRounds []model.QuestionRound, requestedRoundNumber int) []model.Question {
	if s.ai.IsEnabled() {
		questions, err := s.generateWithModel(ctx, previousRounds, requestedRoundNumber)
		if err == nil && len(questions) > 0 {
			return questions
		}
		if err != nil {
			s.logger.Warn("model question generation failed, using fallback",
				zap.Int("round", requestedRoundNumber), zap.Error(err))
		}
	}

	if questions := s.fallbackQuestions(previousRounds, requestedRoundNumber); len(questions) > 0 {
		return questions
	}

	return staticQuestions(previousRounds, requestedRoundNumber)
}

// generateWithModel asks the text provider for a JSON array of questions and
// normalizes each entry.
func (s *GeneratorService) generateWithModel(ctx context.Context, previousRounds []model.QuestionRound, requestedRoundNumber int) ([]model.Question, error) {
	transcript := BuildTranscript(previousRounds)
	prompt := buildRoundQuestionsPrompt(transcript, requestedRoundNumber, s.count)

	raw, err := s.ai.GenerateText(ctx, genai.TextRequest{
		Model:    s.model,
		Messages: []genai.Message{{Role: "user", Text: prompt}},
		WantJSON: true,
	})
	if err != nil {
		return nil, err
	}

	var entries []struct {
		ID       string   `json:"id"`
		Prompt   string   `json:"prompt"`
		Text     string   `json:"text"`
		Type     string   `json:"type"`
		Category string   `json:"category"`
		Options  []string `json:"options"`
	}
	if !ExtractJSONArray(raw, &entries) || len(entries) == 0 {
		return nil, fmt.Errorf("model did not return a question array")
	}

	questions := make([]model.Question, 0, len(entries))
	for i, e := range entries {
		prompt := e.Prompt
		if prompt == "" {
			prompt = e.Text
		}
		if strings.TrimSpace(prompt) == "" {
			continue
		}

		id := e.ID
		if id == "" {
			id = fmt.Sprintf("g_%d_%d", requestedRoundNumber, i)
		}
		qType := model.QuestionType(e.Type)
		if qType == "" {
			qType = model.QuestionTypeText
		}

		questions = append(questions, model.Question{
			ID:          id,
			RoundNumber: requestedRoundNumber,
			Prompt:      prompt,
			Type:        qType,
			Category:    e.Category,
			Options:     e.Options,
		})
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("model returned no usable questions")
	}
	return questions, nil
}

type fallbackTemplate struct {
	id       string
	prompt   func(snippet string) string
	qType    model.QuestionType
	category string
	options  []string
}

// fallbackQuestions deterministically synthesizes questions from local
// templates, parameterized by a snippet of the last round's first answer.
// Template choice rotates with the round number so repeated rounds do not
// always surface the same subset. Never calls the network.
func (s *GeneratorService) fallbackQuestions(previousRounds []model.QuestionRound, requestedRoundNumber int) []model.Question {
	snippet := lastAnswerSnippet(previousRounds, snippetMaxLen)

	templates := []fallbackTemplate{
		{
			id: fmt.Sprintf("concern_%d", requestedRoundNumber),
			prompt: func(s string) string {
				return fmt.Sprintf("What concerns or obstacles do you foresee in pursuing %q?", orDefault(s, "this direction"))
			},
			qType:    model.QuestionTypeText,
			category: model.CategoryPersonal,
		},
		{
			id: fmt.Sprintf("next_step_%d", requestedRoundNumber),
			prompt: func(s string) string {
				return fmt.Sprintf("What is one small, concrete step you could take next month toward %q?", orDefault(s, "this goal"))
			},
			qType:    model.QuestionTypeText,
			category: model.CategoryPersonal,
		},
		{
			id: fmt.Sprintf("confidence_%d", requestedRoundNumber),
			prompt: func(string) string {
				return "How confident are you about moving forward on this (Low / Medium / High)?"
			},
			qType:    model.QuestionTypeSelect,
			category: model.CategoryPersonal,
			options:  []string{"Low", "Medium", "High"},
		},
		{
			id: fmt.Sprintf("resources_%d", requestedRoundNumber),
			prompt: func(s string) string {
				return fmt.Sprintf("What resources, people, or skills would help you make progress toward %q?", orDefault(s, "this"))
			},
			qType:    model.QuestionTypeText,
			category: model.CategoryPersonal,
		},
		{
			id: fmt.Sprintf("time_horizon_%d", requestedRoundNumber),
			prompt: func(string) string {
				return "What is a reasonable time horizon for seeing meaningful progress (months / 1-2 years / 3-5 years)?"
			},
			qType:    model.QuestionTypeSelect,
			category: model.CategoryPersonal,
			options:  []string{"Months", "1-2 years", "3-5 years"},
		},
	}

	n := s.count
	if n > len(templates) {
		n = len(templates)
	}

	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		t := templates[(i+requestedRoundNumber%len(templates))%len(templates)]
		questions = append(questions, model.Question{
			ID:          t.id,
			RoundNumber: requestedRoundNumber,
			Prompt:      t.prompt(snippet),
			Type:        t.qType,
			Category:    t.category,
			Options:     t.options,
		})
	}
	return questions
}

// staticQuestions is the last resort: two fixed questions that cannot fail.
func staticQuestions(previousRounds []model.QuestionRound, requestedRoundNumber int) []model.Question {
	snippet := lastAnswerSnippet(previousRounds, 40)
	return []model.Question{
		{
			ID:          "future_doubts",
			RoundNumber: requestedRoundNumber,
			Prompt:      fmt.Sprintf("What concerns do you have about moving toward %q?", orDefault(snippet, "your plans")),
			Type:        model.QuestionTypeText,
			Category:    model.CategoryPersonal,
		},
		{
			ID:          "support_network",
			RoundNumber: requestedRoundNumber,
			Prompt:      "How strong is your current support network (friends, family, mentors)?",
			Type:        model.QuestionTypeSelect,
			Category:    model.CategoryRelationships,
			Options:     []string{"Weak", "Average", "Strong"},
		},
	}
}

// lastAnswerSnippet takes the first answer of the most recent round,
// truncated to maxLen.
func lastAnswerSnippet(rounds []model.QuestionRound, maxLen int) string {
	if len(rounds) == 0 {
		return ""
	}
	last := rounds[len(rounds)-1]
	if len(last.Questions) == 0 {
		return ""
	}
	snippet := strings.TrimSpace(last.Questions[0].Answer)
	return strings.TrimSpace(truncateRunes(snippet, maxLen))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
