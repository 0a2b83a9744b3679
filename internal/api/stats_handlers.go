package api

import (
	"net/http"

	"github.com/vytor/speakflash/internal/models"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stat, err := s.Learner.Stats(r.Context(), s.queryFilter(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Learner.CategoryStats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": stats})
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categoryRequest{Category: string(s.Learner.CategoryFilter(r.Context()))})
}

func (s *Server) handleSetCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Learner.SetCategoryFilter(r.Context(), models.CategoryFilter(req.Category)); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.Learner.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
