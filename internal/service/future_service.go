package service

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/NoahOriano/see-your-future/internal/genai"
	"github.com/NoahOriano/see-your-future/internal/model"
)

const (
	defaultQualityScore  = 75
	fallbackQualityScore = 70
)

// fallbackFutureDescription is returned when the text provider is unavailable
// or fails outright.
const fallbackFutureDescription = "Based on your answers, your future holds a mix of steady progress and " +
	"open questions. The habits you described today will compound over the coming years, shaping your " +
	"career, health, and relationships more than any single decision. Staying honest about the gap " +
	"between your intentions and your daily actions will be the deciding factor in how fulfilling " +
	"the next decade turns out."

// FutureService synthesizes the final narrative and quality score from the
// full session transcript. The model's output is repaired rather than
// rejected: a malformed response still yields a usable result.
type FutureService struct {
	ai     *genai.Client
	model  string
	logger *zap.Logger
}

// NewFutureService creates a new future service
func NewFutureService(ai *genai.Client, modelName string, logger *zap.Logger) *FutureService {
	return &FutureService{
		ai:     ai,
		model:  modelName,
		logger: logger,
	}
}

// GenerateFuture produces the narrative result for the given rounds. The
// attached image description, when present, is folded into the prompt so the
// narrative can reference the person. Never returns an error: provider
// failure degrades to a static fallback result.
func (s *FutureService) GenerateFuture(ctx context.Context, rounds []model.QuestionRound, image *model.AttachedImage) *model.FutureResult {
	transcript := BuildTranscript(rounds)

	req := genai.TextRequest{
		Model:    s.model,
		System:   futureSystemInstruction,
		Messages: []genai.Message{{Role: "user", Text: buildFutureUserPrompt(transcript)}},
		WantJSON: true,
	}
	if image != nil {
		if image.Description != "" {
			req.Messages[0].Text += "\n\nDescription of the person (from their photo):\n" + image.Description
		}
		if image.Base64 != "" {
			req.Image = &genai.InlineData{MimeType: image.MimeType, Data: image.Base64}
		}
	}

	raw, err := s.ai.GenerateText(ctx, req)
	if err != nil {
		s.logger.Warn("future generation failed, using static fallback", zap.Error(err))
		return &model.FutureResult{
			Description:  fallbackFutureDescription,
			QualityScore: fallbackQualityScore,
			QualityLabel: model.QualityLabelFallback,
		}
	}

	return repairFutureResult(raw)
}

// repairFutureResult turns raw model output into a well-formed result.
// Unparseable output becomes an unstructured result carrying the raw text;
// a parsed object has each field defaulted independently.
func repairFutureResult(raw string) *model.FutureResult {
	var parsed struct {
		Description  json.RawMessage `json:"description"`
		QualityScore json.RawMessage `json:"qualityScore"`
		QualityLabel string          `json:"qualityLabel"`
	}
	if !ExtractJSONObject(raw, &parsed) {
		return &model.FutureResult{
			Description:  raw,
			QualityScore: defaultQualityScore,
			QualityLabel: model.QualityLabelUnstructured,
		}
	}

	description := raw
	var asString string
	if err := json.Unmarshal(parsed.Description, &asString); err == nil && strings.TrimSpace(asString) != "" {
		description = asString
	}

	// A missing, non-coercible, or out-of-range score falls back to the
	// neutral default rather than failing the whole result.
	score := float64(defaultQualityScore)
	if v, ok := coerceScore(parsed.QualityScore); ok && v >= 0 && v <= 100 {
		score = v
	}

	label := strings.TrimSpace(parsed.QualityLabel)
	if label == "" {
		label = model.QualityLabelInferred
	}

	return &model.FutureResult{
		Description:  description,
		QualityScore: score,
		QualityLabel: label,
	}
}

// coerceScore accepts a JSON number or a numeric string for qualityScore.
// Returns false for anything else, including non-finite values.
func coerceScore(raw json.RawMessage) (float64, bool) {
	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err != nil {
		var asString string
		if err := json.Unmarshal(raw, &asString); err != nil {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(asString), 64)
		if err != nil {
			return 0, false
		}
		asNumber = v
	}
	if math.IsNaN(asNumber) || math.IsInf(asNumber, 0) {
		return 0, false
	}
	return asNumber, true
}
