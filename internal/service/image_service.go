package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NoahOriano/see-your-future/internal/config"
	"github.com/NoahOriano/see-your-future/internal/genai"
	"github.com/NoahOriano/see-your-future/internal/model"
)

// imagePromptMaxLen caps the prompt sent to the image backend; both backends
// degrade badly on very long prompts.
const imagePromptMaxLen = 900

var (
	// ErrImageNotConfigured means no image backend credential is set.
	ErrImageNotConfigured = errors.New("image provider not configured")

	// ErrNoImageData means the backend answered but returned no image.
	ErrNoImageData = errors.New("image provider returned no image data")
)

// ImageService renders a portrait of the user inside their generated future.
// The narrative is first compressed into a short visual prompt by the text
// provider, then dispatched to the configured image backend.
type ImageService struct {
	ai     *genai.Client
	models config.GeminiModels
	cfg    *config.ImageConfig
	client *http.Client
	logger *zap.Logger
}

// NewImageService creates a new image service
func NewImageService(ai *genai.Client, models config.GeminiModels, cfg *config.ImageConfig, logger *zap.Logger) *ImageService {
	return &ImageService{
		ai:     ai,
		models: models,
		cfg:    cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// DescribeImage returns a short description of the attached photo, used to
// keep the generated scene depicting the same person.
func (s *ImageService) DescribeImage(ctx context.Context, image *model.AttachedImage) (string, error) {
	if image == nil || image.Base64 == "" {
		return "", errors.New("no image attached")
	}

	text, err := s.ai.GenerateText(ctx, genai.TextRequest{
		Model:    s.models.Vision,
		Messages: []genai.Message{{Role: "user", Text: describeImagePrompt}},
		Image:    &genai.InlineData{MimeType: image.MimeType, Data: image.Base64},
	})
	if err != nil {
		return "", fmt.Errorf("describe image: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// GenerateFutureImage builds the scene prompt from the narrative and the
// optional reference photo, then renders it with the configured backend.
// The result is a URL or data: URI ready for the client.
func (s *ImageService) GenerateFutureImage(ctx context.Context, narrative string, image *model.AttachedImage) (string, error) {
	if s.cfg.Provider == config.ImageProviderGoogle && !s.ai.IsEnabled() {
		return "", ErrImageNotConfigured
	}
	if s.cfg.Provider == config.ImageProviderOpenAI && s.cfg.APIKey == "" {
		return "", ErrImageNotConfigured
	}

	description := ""
	if image != nil {
		description = image.Description
	}
	scenario := buildSubjectScenario(narrative, description)
	prompt := truncateRunes(s.compressPrompt(ctx, scenario), imagePromptMaxLen)

	switch s.cfg.Provider {
	case config.ImageProviderOpenAI:
		return s.generateOpenAI(ctx, prompt)
	default:
		return s.generateGoogle(ctx, prompt, image)
	}
}

// compressPrompt asks the text provider to reduce the scenario into a short
// visual prompt. On failure the raw instruction is used as-is.
func (s *ImageService) compressPrompt(ctx context.Context, scenario string) string {
	instruction := buildImagePromptInstruction(scenario)

	compressed, err := s.ai.GenerateText(ctx, genai.TextRequest{
		Model:    s.models.ImagePrompt,
		Messages: []genai.Message{{Role: "user", Text: instruction}},
	})
	if err != nil || strings.TrimSpace(compressed) == "" {
		if err != nil {
			s.logger.Warn("image prompt compression failed, using raw instruction", zap.Error(err))
		}
		return instruction
	}
	return strings.TrimSpace(compressed)
}

// generateGoogle renders through the Gemini multimodal endpoint, passing the
// reference photo inline so the subject carries over.
func (s *ImageService) generateGoogle(ctx context.Context, prompt string, image *model.AttachedImage) (string, error) {
	req := genai.TextRequest{
		Model:    s.models.Vision,
		Messages: []genai.Message{{Role: "user", Text: prompt}},
	}
	if image != nil && image.Base64 != "" {
		req.Image = &genai.InlineData{MimeType: image.MimeType, Data: image.Base64}
	}

	result, err := s.ai.GenerateImage(ctx, req)
	if err != nil {
		if errors.Is(err, genai.ErrEmptyResponse) {
			return "", ErrNoImageData
		}
		return "", fmt.Errorf("google image generation: %w", err)
	}

	return fmt.Sprintf("data:%s;base64,%s", result.MimeType, result.Data), nil
}

type openAIImageRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type openAIImageResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// generateOpenAI renders through the OpenAI images endpoint. The reference
// photo cannot be carried here, so likeness relies on the prompt alone.
func (s *ImageService) generateOpenAI(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(openAIImageRequest{
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.OpenAIURL, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai image generation: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai image API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed openAIImageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Data) == 0 {
		return "", ErrNoImageData
	}

	if parsed.Data[0].URL != "" {
		return parsed.Data[0].URL, nil
	}
	if parsed.Data[0].B64JSON != "" {
		return "data:image/png;base64," + parsed.Data[0].B64JSON, nil
	}
	return "", ErrNoImageData
}
