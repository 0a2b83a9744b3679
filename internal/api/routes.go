package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: errorDetail{Code: "NOT_FOUND", Message: "no such route"}})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: errorDetail{Code: "BAD_REQUEST", Message: "method not allowed"}})
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/cards", func(r chi.Router) {
		r.Get("/due", s.handleDueCards)
		r.Get("/new", s.handleNewCards)
		r.Get("/{id}", s.handleCard)
		r.Post("/{id}/init", s.handleInitCard)
		r.Post("/{id}/review", s.handleReviewCard)
	})

	r.Get("/stats", s.handleStats)
	r.Get("/stats/categories", s.handleCategoryStats)
	r.Get("/settings/category", s.handleGetCategory)
	r.Put("/settings/category", s.handleSetCategory)
	r.Post("/ledger/reset", s.handleReset)

	r.Route("/session", func(r chi.Router) {
		r.Post("/", s.handleStartSession)
		r.Get("/current", s.handleCurrentSession)
		r.Post("/review", s.handleSessionReview)
		r.Post("/end", s.handleEndSession)
	})

	r.Route("/rush", func(r chi.Router) {
		r.Post("/", s.handleStartRush)
		r.Get("/", s.handleRushStatus)
		r.Post("/rounds", s.handleRushRound)
		r.Post("/end", s.handleEndRush)
		r.Get("/history", s.handleRushHistory)
	})

	return r
}
