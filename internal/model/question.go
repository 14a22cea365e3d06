package model

// QuestionType defines the input type of a question
type QuestionType string

const (
	QuestionTypeText     QuestionType = "text"     // Single-line free text
	QuestionTypeSelect   QuestionType = "select"   // One of a fixed option list
	QuestionTypeSlider   QuestionType = "slider"   // Numeric scale, used for interest ratings
	QuestionTypeFreeform QuestionType = "freeform" // Multi-line free text
)

// QuestionCategory is an open set; these are the ones the standard set
// and the prebuilt bank use.
type QuestionCategory = string

const (
	CategoryCareer        QuestionCategory = "career"
	CategoryHealth        QuestionCategory = "health"
	CategoryRelationships QuestionCategory = "relationships"
	CategoryFinance       QuestionCategory = "finance"
	CategoryPersonal      QuestionCategory = "personal"
)

// Question is a runtime question instance inside a round. Identity is ID;
// the only mutation after creation is recording an answer.
type Question struct {
	ID          string       `json:"id" bson:"id"`
	RoundNumber int          `json:"roundNumber" bson:"roundNumber"`
	Prompt      string       `json:"prompt" bson:"prompt"`
	Type        QuestionType `json:"type" bson:"type"`
	Category    string       `json:"category,omitempty" bson:"category,omitempty"`
	Options     []string     `json:"options,omitempty" bson:"options,omitempty"`
	Answer      string       `json:"answer,omitempty" bson:"answer,omitempty"`

	SliderMin  int `json:"sliderMin,omitempty" bson:"sliderMin,omitempty"`
	SliderMax  int `json:"sliderMax,omitempty" bson:"sliderMax,omitempty"`
	SliderStep int `json:"sliderStep,omitempty" bson:"sliderStep,omitempty"`

	AgeMin int `json:"ageMin,omitempty" bson:"ageMin,omitempty"`
	AgeMax int `json:"ageMax,omitempty" bson:"ageMax,omitempty"`

	// CategoryRatings is only meaningful on prebuilt questions, where the
	// selector uses it for scoring. Missing categories count as zero.
	CategoryRatings map[string]float64 `json:"categoryRatings,omitempty" bson:"categoryRatings,omitempty"`
}

// PrebuiltQuestionConfig is the unattached template for a prebuilt question:
// the Question shape minus roundNumber/answer. The bank is read-only at
// runtime.
type PrebuiltQuestionConfig struct {
	ID       string       `json:"id" bson:"id"`
	Prompt   string       `json:"prompt" bson:"prompt"`
	Type     QuestionType `json:"type" bson:"type"`
	Category string       `json:"category,omitempty" bson:"category,omitempty"`
	Options  []string     `json:"options,omitempty" bson:"options,omitempty"`

	// Zero means "no bound".
	AgeMin int `json:"ageMin,omitempty" bson:"ageMin,omitempty"`
	AgeMax int `json:"ageMax,omitempty" bson:"ageMax,omitempty"`

	CategoryRatings map[string]float64 `json:"categoryRatings,omitempty" bson:"categoryRatings,omitempty"`
}

// Materialize attaches a bank entry to a round, producing a runtime Question.
func (c PrebuiltQuestionConfig) Materialize(roundNumber int) Question {
	return Question{
		ID:              c.ID,
		RoundNumber:     roundNumber,
		Prompt:          c.Prompt,
		Type:            c.Type,
		Category:        c.Category,
		Options:         c.Options,
		AgeMin:          c.AgeMin,
		AgeMax:          c.AgeMax,
		CategoryRatings: c.CategoryRatings,
	}
}
