package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/NoahOriano/see-your-future/internal/config"
)

// ErrTTSNotConfigured means no speech-synthesis credential is set.
var ErrTTSNotConfigured = errors.New("speech synthesis not configured")

// TTSService narrates the future description through the ElevenLabs API.
type TTSService struct {
	cfg    *config.TTSConfig
	client *http.Client
	logger *zap.Logger
}

// NewTTSService creates a new TTS service
func NewTTSService(cfg *config.TTSConfig, logger *zap.Logger) *TTSService {
	return &TTSService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// IsEnabled reports whether the provider credential is configured
func (s *TTSService) IsEnabled() bool {
	return s.cfg.IsEnabled()
}

type ttsRequest struct {
	Text          string      `json:"text"`
	ModelID       string      `json:"model_id"`
	VoiceSettings ttsSettings `json:"voice_settings"`
}

type ttsSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to speech and returns base64-encoded MP3 audio.
// An empty voiceID uses the configured default voice.
func (s *TTSService) Synthesize(ctx context.Context, text, voiceID string) (string, error) {
	if !s.cfg.IsEnabled() {
		return "", ErrTTSNotConfigured
	}
	if text == "" {
		return "", errors.New("no text to synthesize")
	}
	if voiceID == "" {
		voiceID = s.cfg.VoiceID
	}

	body, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: s.cfg.ModelID,
		VoiceSettings: ttsSettings{
			Stability:       0.4,
			SimilarityBoost: 0.8,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", s.cfg.BaseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.cfg.APIKey)
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech synthesis request: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech synthesis API error (status %d): %s", resp.StatusCode, string(audio))
	}
	if len(audio) == 0 {
		return "", errors.New("speech synthesis returned no audio")
	}

	return base64.StdEncoding.EncodeToString(audio), nil
}
