package model

// Quality labels the synthesizer assigns when the model did not provide one.
const (
	QualityLabelInferred     = "Inferred"              // structured object without a usable label
	QualityLabelUnstructured = "Unstructured Response" // no structured object could be extracted
	QualityLabelFallback     = "Unknown (Fallback)"    // provider could not be reached at all
)

// FutureResult is the terminal output of a session: the generated narrative
// plus a 0-100 quality score and a short label. Regenerating replaces it.
type FutureResult struct {
	Description  string  `json:"description" bson:"description"`
	QualityScore float64 `json:"qualityScore" bson:"qualityScore"`
	QualityLabel string  `json:"qualityLabel,omitempty" bson:"qualityLabel,omitempty"`
}

// RecordAnswerRequest is the request body for recording an answer
type RecordAnswerRequest struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// AdvanceRoundResponse carries the next round, or terminal=true when the
// engine has no further round and the result should be generated.
type AdvanceRoundResponse struct {
	Round    *QuestionRound `json:"round,omitempty"`
	Terminal bool           `json:"terminal"`
}

// AttachImageRequest is the request body for attaching a subject image
type AttachImageRequest struct {
	ImageBase64 string `json:"imageBase64"`
	MimeType    string `json:"mimeType"`
}

// NarrationRequest optionally overrides the configured voice
type NarrationRequest struct {
	VoiceID string `json:"voiceId,omitempty"`
}

// NarrationResponse carries the synthesized speech as base64 audio
type NarrationResponse struct {
	AudioBase64 string `json:"audioBase64"`
}

// ImageResponse carries the generated illustration: either a pass-through
// URL or a data: URI.
type ImageResponse struct {
	URL string `json:"url"`
}
