package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/NoahOriano/see-your-future/internal/config"
	"github.com/NoahOriano/see-your-future/internal/model"
)

func openAIImageService(t *testing.T, handler http.HandlerFunc) (*ImageService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	svc := NewImageService(
		disabledAIClient(),
		config.GeminiModels{Vision: "test-vision", ImagePrompt: "test-prompt"},
		&config.ImageConfig{
			Provider:  config.ImageProviderOpenAI,
			APIKey:    "test-key",
			OpenAIURL: srv.URL,
			TimeoutMS: 2000,
		},
		zap.NewNop(),
	)
	return svc, srv
}

func TestGenerateFutureImageOpenAIURL(t *testing.T) {
	var gotPrompt string
	svc, srv := openAIImageService(t, func(w http.ResponseWriter, r *http.Request) {
		var req openAIImageRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Prompt
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"url": "https://img.example/out.png"}},
		})
	})
	defer srv.Close()

	url, err := svc.GenerateFutureImage(context.Background(), "a long and prosperous life", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://img.example/out.png" {
		t.Errorf("url = %q", url)
	}
	if gotPrompt == "" {
		t.Error("no prompt reached the image backend")
	}
	if len(gotPrompt) > imagePromptMaxLen {
		t.Errorf("prompt length %d exceeds cap %d", len(gotPrompt), imagePromptMaxLen)
	}
}

func TestGenerateFutureImageOpenAIBase64(t *testing.T) {
	svc, srv := openAIImageService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"b64_json": "aGVsbG8="}},
		})
	})
	defer srv.Close()

	url, err := svc.GenerateFutureImage(context.Background(), "narrative", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("expected data URI, got %q", url)
	}
}

func TestGenerateFutureImageOpenAIEmpty(t *testing.T) {
	svc, srv := openAIImageService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []map[string]string{}})
	})
	defer srv.Close()

	_, err := svc.GenerateFutureImage(context.Background(), "narrative", nil)
	if !errors.Is(err, ErrNoImageData) {
		t.Errorf("expected ErrNoImageData, got %v", err)
	}
}

func TestGenerateFutureImageNotConfigured(t *testing.T) {
	svc := NewImageService(
		disabledAIClient(),
		config.GeminiModels{Vision: "test-vision", ImagePrompt: "test-prompt"},
		&config.ImageConfig{Provider: config.ImageProviderGoogle, TimeoutMS: 2000},
		zap.NewNop(),
	)

	_, err := svc.GenerateFutureImage(context.Background(), "narrative", nil)
	if !errors.Is(err, ErrImageNotConfigured) {
		t.Errorf("expected ErrImageNotConfigured, got %v", err)
	}
}

func TestGenerateFutureImagePromptTruncated(t *testing.T) {
	narrative := strings.Repeat("a future of great length ", 200)

	var gotPrompt string
	svc, srv := openAIImageService(t, func(w http.ResponseWriter, r *http.Request) {
		var req openAIImageRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Prompt
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"url": "https://img.example/out.png"}},
		})
	})
	defer srv.Close()

	if _, err := svc.GenerateFutureImage(context.Background(), narrative, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotPrompt) != imagePromptMaxLen {
		t.Errorf("prompt length = %d, want truncated to %d", len(gotPrompt), imagePromptMaxLen)
	}
}

func TestDescribeImageRequiresAttachment(t *testing.T) {
	svc := NewImageService(
		disabledAIClient(),
		config.GeminiModels{Vision: "test-vision"},
		&config.ImageConfig{Provider: config.ImageProviderGoogle, TimeoutMS: 2000},
		zap.NewNop(),
	)

	if _, err := svc.DescribeImage(context.Background(), nil); err == nil {
		t.Error("expected error for missing image")
	}
	if _, err := svc.DescribeImage(context.Background(), &model.AttachedImage{}); err == nil {
		t.Error("expected error for empty image payload")
	}
}
