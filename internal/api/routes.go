package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 15 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Get("/content", s.handleContent)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Post("/sessions", s.handleComposeSession)
			r.Post("/sessions/{sessionID}/results", s.handleSubmitResults)
			r.Get("/proficiency", s.handleProficiency)
			r.Get("/weaknesses", s.handleWeaknesses)
			r.Get("/readiness", s.handleReadiness)
			r.Get("/gamification", s.handleGamification)
			r.Post("/activity", s.handleRecordActivity)
			r.Get("/items/{itemID}/mastery-estimate", s.handleMasteryEstimate)
		})
	})
	return r
}
