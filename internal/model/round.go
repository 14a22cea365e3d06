package model

import "fmt"

// RoundSource identifies where a round's questions came from. It is fully
// determined by the round number: 1=standard, 2=prebuilt, 3+=generated.
type RoundSource string

const (
	SourceStandard  RoundSource = "standard"
	SourcePrebuilt  RoundSource = "prebuilt"
	SourceGenerated RoundSource = "generated"
)

// SourceForRound returns the source a round number must carry.
func SourceForRound(roundNumber int) RoundSource {
	switch {
	case roundNumber <= 1:
		return SourceStandard
	case roundNumber == 2:
		return SourcePrebuilt
	default:
		return SourceGenerated
	}
}

// QuestionRound is one batch of questions answered together. Immutable once
// appended to a session, except for answer updates on its questions.
type QuestionRound struct {
	RoundNumber int         `json:"roundNumber" bson:"roundNumber"`
	Label       string      `json:"label" bson:"label"`
	Source      RoundSource `json:"source" bson:"source"`
	Questions   []Question  `json:"questions" bson:"questions"`
}

// RoundLabel returns the display label for a round number.
func RoundLabel(roundNumber int) string {
	switch {
	case roundNumber <= 1:
		return "Round 1: Foundations"
	case roundNumber == 2:
		return "Round 2: Tailored Questions"
	default:
		return fmt.Sprintf("Round %d: Generated Questions", roundNumber)
	}
}
