package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
)

type submitResultsRequest struct {
	Outcomes []models.ItemOutcome `json:"outcomes"`
}

func (s *Server) handleComposeSession(w http.ResponseWriter, r *http.Request) {
	userID, err := int64Param(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var cfg models.SessionConfig
	if err := decodeJSON(w, r, &cfg); err != nil {
		handleError(w, r, err)
		return
	}

	comp, err := s.SessionService.Compose(r.Context(), userID, cfg)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, comp)
}

func (s *Server) handleSubmitResults(w http.ResponseWriter, r *http.Request) {
	userID, err := int64Param(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	var req submitResultsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log := logger.FromContext(r.Context()).WithFields(map[string]any{
		"user_id":    userID,
		"session_id": sessionID,
	})
	log.Debug("submitting %d outcomes", len(req.Outcomes))

	summary, err := s.ReviewService.SubmitResults(r.Context(), userID, sessionID, req.Outcomes)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}
