package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NoahOriano/see-your-future/internal/model"
	"github.com/NoahOriano/see-your-future/internal/repository"
	"github.com/NoahOriano/see-your-future/internal/service"
)

// SessionHandler handles the session lifecycle endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
	authSvc    *service.AuthService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, authSvc *service.AuthService) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
		authSvc:    authSvc,
	}
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.CreateSession(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	token, err := h.authSvc.GenerateSessionToken(session.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusCreated, &model.CreateSessionResponse{
		Token:   token,
		Session: session,
	})
}

// Get handles GET /v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// RecordAnswer handles PUT /v1/sessions/{id}/answers
func (h *SessionHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	var req model.RecordAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}

	session, err := h.sessionSvc.RecordAnswer(r.Context(), mux.Vars(r)["id"], req.QuestionID, req.Value)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Advance handles POST /v1/sessions/{id}/advance
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.sessionSvc.AdvanceRound(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GenerateResult handles POST /v1/sessions/{id}/result
func (h *SessionHandler) GenerateResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionSvc.GenerateResult(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Reset handles POST /v1/sessions/{id}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Reset(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// writeSessionError maps service errors onto HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrSessionBusy):
		writeError(w, http.StatusConflict, "session is busy")
	case errors.Is(err, service.ErrQuestionNotFound):
		writeError(w, http.StatusBadRequest, "question not found in session")
	case errors.Is(err, service.ErrNoResult):
		writeError(w, http.StatusConflict, "generate a result first")
	case errors.Is(err, service.ErrNoImage):
		writeError(w, http.StatusBadRequest, "no image attached")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
