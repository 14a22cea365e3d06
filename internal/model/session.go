package model

import "time"

// SessionStatus tracks what the session is currently doing. A session with
// an in-flight advance or generation rejects concurrent submissions.
type SessionStatus string

const (
	SessionAnswering  SessionStatus = "answering"
	SessionAdvancing  SessionStatus = "advancing"
	SessionGenerating SessionStatus = "generating"
	SessionComplete   SessionStatus = "complete"
)

// AttachedImage is an optional subject photo uploaded by the user, plus the
// textual description produced by the vision model.
type AttachedImage struct {
	Base64      string `json:"imageBase64" bson:"imageBase64"`
	MimeType    string `json:"mimeType" bson:"mimeType"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Session holds one user's questionnaire run: the accumulated rounds, the
// current-round cursor, the optional attached image, and at most one result.
// Round numbers are contiguous starting at 1.
type Session struct {
	ID           string          `json:"id" bson:"_id,omitempty"`
	Status       SessionStatus   `json:"status" bson:"status"`
	Rounds       []QuestionRound `json:"rounds" bson:"rounds"`
	CurrentRound int             `json:"currentRound" bson:"currentRound"` // index into Rounds
	Image        *AttachedImage  `json:"image,omitempty" bson:"image,omitempty"`
	Result       *FutureResult   `json:"result,omitempty" bson:"result,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt    time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// LastRound returns the most recently appended round, or nil for an
// uninitialized session.
func (s *Session) LastRound() *QuestionRound {
	if len(s.Rounds) == 0 {
		return nil
	}
	return &s.Rounds[len(s.Rounds)-1]
}

// FindQuestion locates a question by ID across all rounds.
func (s *Session) FindQuestion(questionID string) *Question {
	for ri := range s.Rounds {
		for qi := range s.Rounds[ri].Questions {
			if s.Rounds[ri].Questions[qi].ID == questionID {
				return &s.Rounds[ri].Questions[qi]
			}
		}
	}
	return nil
}
