package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the JWT payload for a session-scoped bearer token
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// CreateSessionResponse is returned when a new session is initialized
type CreateSessionResponse struct {
	Token   string   `json:"token"`
	Session *Session `json:"session"`
}
