package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/neuroblog/neuroblog/internal/agent/gen"
	"github.com/neuroblog/neuroblog/internal/blog"
)

func suggestionID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid suggestion id")
	}
	return id, nil
}

// respondAgentError maps lifecycle errors onto HTTP statuses.
func (s *Server) respondAgentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, blog.ErrNotFound):
		respondError(w, http.StatusNotFound, "suggestion not found")
	case errors.Is(err, blog.ErrStateConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, gen.ErrUpstreamUnavailable):
		respondError(w, http.StatusBadGateway, "AI service temporarily unavailable")
	default:
		s.logger.Error("agent operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleListSuggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suggestions, err := s.agent.ListPending(r.Context())
		if err != nil {
			s.respondAgentError(w, err)
			return
		}
		if suggestions == nil {
			suggestions = []blog.Suggestion{}
		}
		respondJSON(w, http.StatusOK, suggestions)
	}
}

func (s *Server) handleGenerate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suggestions, err := s.agent.Generate(r.Context(), s.agent.OnDemandOptions())
		if err != nil && len(suggestions) == 0 {
			s.respondAgentError(w, err)
			return
		}

		msg := fmt.Sprintf("Generated %d blog suggestions from trending topics", len(suggestions))
		if err != nil {
			// Partial cycle: the retry budget ran out after some
			// suggestions were already persisted.
			msg = fmt.Sprintf("Generated %d suggestions before the AI service became unavailable", len(suggestions))
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":     msg,
			"suggestions": suggestions,
		})
	}
}

type moderationRequest struct {
	AdminNotes    string `json:"adminNotes"`
	ShouldPublish *bool  `json:"shouldPublish"`
}

// decodeModeration reads the optional moderation body. An empty body is
// fine; anything present must be valid JSON.
func decodeModeration(r *http.Request) (moderationRequest, error) {
	var req moderationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return req, fmt.Errorf("invalid request body")
	}
	return req, nil
}

func (s *Server) handleApprove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := suggestionID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		req, err := decodeModeration(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		publish := true
		if req.ShouldPublish != nil {
			publish = *req.ShouldPublish
		}

		sug, post, err := s.agent.Approve(r.Context(), id, req.AdminNotes, publish)
		if err != nil {
			s.respondAgentError(w, err)
			return
		}

		msg := "Suggestion approved"
		if publish {
			msg = "Suggestion approved and published"
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":    msg,
			"suggestion": sug,
			"post":       post,
		})
	}
}

func (s *Server) handlePublish() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := suggestionID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		sug, post, err := s.agent.Publish(r.Context(), id)
		if err != nil {
			s.respondAgentError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "Post published successfully",
			"suggestion": sug,
			"post":       post,
		})
	}
}

func (s *Server) handleReject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := suggestionID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		req, err := decodeModeration(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		sug, err := s.agent.Reject(r.Context(), id, req.AdminNotes)
		if err != nil {
			s.respondAgentError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "Suggestion rejected",
			"suggestion": sug,
		})
	}
}

func (s *Server) handleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := suggestionID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := s.agent.Delete(r.Context(), id); err != nil {
			s.respondAgentError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Suggestion deleted"})
	}
}

func (s *Server) handleStartAuto() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.agent.StartAutoGeneration()
		respondJSON(w, http.StatusOK, map[string]string{"message": "Auto-generation started"})
	}
}

func (s *Server) handleStopAuto() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.agent.StopAutoGeneration()
		respondJSON(w, http.StatusOK, map[string]string{"message": "Auto-generation stopped"})
	}
}
