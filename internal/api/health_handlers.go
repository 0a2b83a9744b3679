package api

import (
	"net/http"

	"github.com/vytor/speakflash/internal/errors"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady returns 503 when the database cannot be reached.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			handleError(w, r, &errors.AppError{
				Code:    "UNAVAILABLE",
				Message: "database unavailable",
				Status:  http.StatusServiceUnavailable,
				Err:     err,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
