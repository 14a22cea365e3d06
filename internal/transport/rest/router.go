package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/NoahOriano/see-your-future/internal/service"
	"github.com/NoahOriano/see-your-future/internal/transport/rest/handler"
	"github.com/NoahOriano/see-your-future/internal/transport/rest/middleware"
	"github.com/NoahOriano/see-your-future/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	SessionService *service.SessionService
	WSHub          *ws.Hub
	Logger         *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.AuthService)
	mediaHandler := handler.NewMediaHandler(c.SessionService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws/sessions/{id}", wsHandler.SessionWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Session routes (require session auth)
	sessionRoutes := v1.NewRoute().Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{id}/answers", sessionHandler.RecordAnswer).Methods("PUT", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{id}/advance", sessionHandler.Advance).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{id}/result", sessionHandler.GenerateResult).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{id}/reset", sessionHandler.Reset).Methods("POST", "OPTIONS")

	sessionRoutes.HandleFunc("/sessions/{id}/image", mediaHandler.AttachImage).Methods("PUT", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{id}/image", mediaHandler.GenerateImage).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{id}/image/describe", mediaHandler.DescribeImage).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{id}/narration", mediaHandler.Narrate).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
