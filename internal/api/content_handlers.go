package api

import (
	"net/http"
	"strings"

	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
)

type contentResponse struct {
	Topics []models.Topic       `json:"topics"`
	Items  []models.ContentItem `json:"items"`
}

// handleContent lists the catalog. Supported filters: topic (comma separated),
// pillar, min_difficulty, max_difficulty and limit.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	q := r.URL.Query()

	var filter models.ContentFilter
	if raw := q.Get("topic"); raw != "" {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				filter.TopicSlugs = append(filter.TopicSlugs, slug)
			}
		}
	}
	filter.Pillar = q.Get("pillar")

	var err error
	if filter.MinDifficulty, err = intQuery(r, "min_difficulty", 0); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.MaxDifficulty, err = intQuery(r, "max_difficulty", 0); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.Limit, err = intQuery(r, "limit", 0); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("listing content: topics=%v, pillar=%s", filter.TopicSlugs, filter.Pillar)

	topics, err := s.ContentService.Topics(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	items, err := s.ContentService.Items(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, contentResponse{Topics: topics, Items: items})
}
