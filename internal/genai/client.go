// Package genai is a thin client for the Gemini generateContent REST API.
// Every call carries its own full input; the client keeps no conversation
// history between calls.
package genai

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

	"github.com/NoahOriano/see-your-future/internal/config"
)

var (
	// ErrNotConfigured means no API key is set; callers treat this as
	// "provider unavailable" and take their fallback path.
	ErrNotConfigured = errors.New("gemini API key not configured")

	// ErrEmptyResponse means the provider answered but returned no usable
	// candidate content.
	ErrEmptyResponse = errors.New("empty response from Gemini")
)

// InlineData is a binary part (base64 payload + media type) attached to a
// request, or returned inside a response.
type InlineData struct {
	MimeType string
	Data     string // base64, no data: prefix
}

// Message is one role-tagged turn of input. Role is "user" or "model".
type Message struct {
	Role string
	Text string
}

// TextRequest is a single text-generation call.
type TextRequest struct {
	Model    string
	System   string    // optional system instruction
	Messages []Message // role-tagged input; at least one entry
	Image    *InlineData
	WantJSON bool // ask for application/json response mime type
}

// Client calls the Gemini REST API
type Client struct {
	config *config.AIConfig
	client *http.Client
}

// NewClient creates a Gemini client from config
func NewClient(cfg *config.AIConfig) *Client {
	return &Client{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// IsEnabled reports whether the provider credential is configured
func (c *Client) IsEnabled() bool {
	return c.config.IsEnabled()
}

// wire structures for generateContent

type wirePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *wireInlineData `json:"inline_data,omitempty"`
}

type wireInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wireRequest struct {
	Contents          []wireContent  `json:"contents"`
	SystemInstruction *wireContent   `json:"systemInstruction,omitempty"`
	GenerationConfig  *wireGenConfig `json:"generationConfig,omitempty"`
}

type wireGenConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type wireResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text       string `json:"text"`
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText runs one text-generation call and returns the first
// candidate's text.
func (c *Client) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	resp, err := c.generate(ctx, req, "")
	if err != nil {
		return "", err
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}

	return "", ErrEmptyResponse
}

// GenerateImage runs one multimodal call expecting an image part back.
func (c *Client) GenerateImage(ctx context.Context, req TextRequest) (*InlineData, error) {
	resp, err := c.generate(ctx, req, "image/jpeg")
	if err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && strings.HasPrefix(part.InlineData.MimeType, "image") && part.InlineData.Data != "" {
				mime := part.InlineData.MimeType
				if mime == "" {
					mime = "image/jpeg"
				}
				return &InlineData{MimeType: mime, Data: part.InlineData.Data}, nil
			}
		}
	}

	return nil, ErrEmptyResponse
}

func (c *Client) generate(ctx context.Context, req TextRequest, responseMime string) (*wireResponse, error) {
	if !c.config.IsEnabled() {
		return nil, ErrNotConfigured
	}

	var contents []wireContent
	for i, msg := range req.Messages {
		content := wireContent{
			Role:  msg.Role,
			Parts: []wirePart{{Text: msg.Text}},
		}
		// The reference image rides along with the final user turn.
		if req.Image != nil && i == len(req.Messages)-1 {
			data := req.Image.Data
			// Tolerate full data: URIs from upload paths.
			if idx := strings.Index(data, ","); idx != -1 && strings.HasPrefix(data, "data:") {
				data = data[idx+1:]
			}
			content.Parts = append(content.Parts, wirePart{
				InlineData: &wireInlineData{MimeType: req.Image.MimeType, Data: data},
			})
		}
		contents = append(contents, content)
	}

	body := wireRequest{Contents: contents}
	if req.System != "" {
		body.SystemInstruction = &wireContent{Parts: []wirePart{{Text: req.System}}}
	}
	if req.WantJSON {
		body.GenerationConfig = &wireGenConfig{ResponseMimeType: "application/json"}
	}
	if responseMime != "" {
		body.GenerationConfig = &wireGenConfig{ResponseMimeType: responseMime}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s?key=%s", c.config.ModelEndpoint(req.Model), c.config.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp wireResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}

	return &resp, nil
}
