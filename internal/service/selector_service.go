package service

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/NoahOriano/see-your-future/internal/bank"
	"github.com/NoahOriano/see-your-future/internal/model"
)

const (
	// MaxPrebuiltQuestions caps how many bank entries round 2 carries.
	MaxPrebuiltQuestions = 10

	// Interest sliders are clamped to this range; absent or non-numeric
	// answers count as zero interest.
	interestMin = 0
	interestMax = 5
)

// SelectorService chooses the round-2 question set from the prebuilt bank.
// Pure given bank + round-1 state: identical inputs yield the identical
// ordered selection.
type SelectorService struct{}

// NewSelectorService creates a new selector service
func NewSelectorService() *SelectorService {
	return &SelectorService{}
}

// SelectRound2 scores every bank candidate against the round-1 answers and
// materializes the top ten qualifiers into round-2 questions. Candidates
// disqualified by an age bound are excluded entirely, even if the pool ends
// up smaller than ten.
func (s *SelectorService) SelectRound2(round1 *model.QuestionRound, candidates []model.PrebuiltQuestionConfig) []model.Question {
	age := parseAge(round1)
	interests := extractInterests(round1)

	type scored struct {
		config model.PrebuiltQuestionConfig
		score  float64
	}

	valid := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		score := scoreCandidate(c, age, interests)
		if math.IsInf(score, -1) {
			continue
		}
		valid = append(valid, scored{config: c, score: score})
	}

	// Stable sort: equal scores keep original bank order, so selection is
	// deterministic.
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].score > valid[j].score
	})

	if len(valid) > MaxPrebuiltQuestions {
		valid = valid[:MaxPrebuiltQuestions]
	}

	questions := make([]model.Question, 0, len(valid))
	for _, v := range valid {
		questions = append(questions, v.config.Materialize(2))
	}
	return questions
}

// scoreCandidate returns -Inf for an age-disqualified candidate, otherwise
// the sum of rating x interest over the candidate's declared categories.
func scoreCandidate(c model.PrebuiltQuestionConfig, age int, interests map[string]float64) float64 {
	if age > 0 {
		if c.AgeMin > 0 && age < c.AgeMin {
			return math.Inf(-1)
		}
		if c.AgeMax > 0 && age > c.AgeMax {
			return math.Inf(-1)
		}
	}

	score := 0.0
	for category, rating := range c.CategoryRatings {
		score += rating * interests[category]
	}
	return score
}

// parseAge derives the user's age from the designated round-1 question.
// Returns 0 (no age, age gating disabled) for missing or unusable answers.
func parseAge(round1 *model.QuestionRound) int {
	if round1 == nil {
		return 0
	}
	for _, q := range round1.Questions {
		if q.ID != bank.AgeQuestionID {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(q.Answer))
		if err != nil || n <= 0 {
			return 0
		}
		return n
	}
	return 0
}

// extractInterests maps category to interest from round-1 slider answers,
// clamped to [0,5].
func extractInterests(round1 *model.QuestionRound) map[string]float64 {
	interests := make(map[string]float64)
	if round1 == nil {
		return interests
	}
	for _, q := range round1.Questions {
		if q.Type != model.QuestionTypeSlider || q.Category == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(q.Answer), 64)
		if err != nil || math.IsNaN(v) {
			v = 0
		}
		if v < interestMin {
			v = interestMin
		}
		if v > interestMax {
			v = interestMax
		}
		interests[q.Category] = v
	}
	return interests
}
