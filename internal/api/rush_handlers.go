package api

import (
	"net/http"

	"github.com/vytor/speakflash/internal/models"
)

type rushResponse struct {
	Status *models.RushStatus `json:"status"`
	Round  *models.RushRound  `json:"round,omitempty"`
}

func (s *Server) handleStartRush(w http.ResponseWriter, r *http.Request) {
	status, round, err := s.Rush.StartGame(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rushResponse{Status: status, Round: round})
}

func (s *Server) handleRushStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.Rush.Status(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rushResponse{Status: status})
}

func (s *Server) handleRushRound(w http.ResponseWriter, r *http.Request) {
	var req outcomeRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	status, round, err := s.Rush.RecordRoundOutcome(r.Context(), req.parse())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rushResponse{Status: status, Round: round})
}

func (s *Server) handleEndRush(w http.ResponseWriter, r *http.Request) {
	game, err := s.Rush.EndGame(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleRushHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	games, err := s.Rush.History(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	best, err := s.Rush.BestStreak(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games, "best_streak": best})
}
