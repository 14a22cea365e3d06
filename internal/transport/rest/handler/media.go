package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NoahOriano/see-your-future/internal/model"
	"github.com/NoahOriano/see-your-future/internal/service"
)

// MediaHandler handles the image and narration endpoints
type MediaHandler struct {
	sessionSvc *service.SessionService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(sessionSvc *service.SessionService) *MediaHandler {
	return &MediaHandler{sessionSvc: sessionSvc}
}

// AttachImage handles PUT /v1/sessions/{id}/image
func (h *MediaHandler) AttachImage(w http.ResponseWriter, r *http.Request) {
	var req model.AttachImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ImageBase64 == "" {
		writeError(w, http.StatusBadRequest, "imageBase64 is required")
		return
	}

	session, err := h.sessionSvc.AttachImage(r.Context(), mux.Vars(r)["id"], req.ImageBase64, req.MimeType)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// DescribeImage handles POST /v1/sessions/{id}/image/describe
func (h *MediaHandler) DescribeImage(w http.ResponseWriter, r *http.Request) {
	description, err := h.sessionSvc.DescribeImage(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"description": description})
}

// GenerateImage handles POST /v1/sessions/{id}/image
func (h *MediaHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	url, err := h.sessionSvc.GenerateImage(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, service.ErrImageNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "image generation not configured")
			return
		}
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &model.ImageResponse{URL: url})
}

// Narrate handles POST /v1/sessions/{id}/narration
func (h *MediaHandler) Narrate(w http.ResponseWriter, r *http.Request) {
	var req model.NarrationRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	audio, err := h.sessionSvc.Narrate(r.Context(), mux.Vars(r)["id"], req.VoiceID)
	if err != nil {
		if errors.Is(err, service.ErrTTSNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "narration not configured")
			return
		}
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &model.NarrationResponse{AudioBase64: audio})
}
