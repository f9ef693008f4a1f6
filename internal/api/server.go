// Package api provides the REST surface for the NeuroBlog AI agent:
// authentication plus the moderation operations over suggestions.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/neuroblog/neuroblog/internal/agent"
	"github.com/neuroblog/neuroblog/internal/user"
)

// Server holds the dependencies for the API.
type Server struct {
	userStore *user.Store
	agent     *agent.Agent
	jwtSecret []byte
	logger    *slog.Logger
}

// NewServer creates a new API Server instance.
func NewServer(uStore *user.Store, ag *agent.Agent, jwtSecret string) *Server {
	return &Server{
		userStore: uStore,
		agent:     ag,
		jwtSecret: []byte(jwtSecret),
		logger:    slog.Default(),
	}
}

// Routes returns the configured http.Handler for the API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Auth routes (public)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister())
	mux.HandleFunc("POST /api/auth/login", s.handleLogin())

	// AI agent moderation routes (admin only)
	admin := func(h http.HandlerFunc) http.Handler { return s.requireAdmin(h) }
	mux.Handle("GET /api/ai-agent/suggestions", admin(s.handleListSuggestions()))
	mux.Handle("POST /api/ai-agent/generate-suggestions", admin(s.handleGenerate()))
	mux.Handle("POST /api/ai-agent/suggestions/{id}/approve", admin(s.handleApprove()))
	mux.Handle("POST /api/ai-agent/suggestions/{id}/publish", admin(s.handlePublish()))
	mux.Handle("POST /api/ai-agent/suggestions/{id}/reject", admin(s.handleReject()))
	mux.Handle("DELETE /api/ai-agent/suggestions/{id}", admin(s.handleDelete()))
	mux.Handle("POST /api/ai-agent/start-auto-generation", admin(s.handleStartAuto()))
	mux.Handle("POST /api/ai-agent/stop-auto-generation", admin(s.handleStopAuto()))

	return mux
}

// --- Helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
