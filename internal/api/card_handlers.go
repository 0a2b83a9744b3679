package api

import "net/http"

const defaultNewCardLimit = 10

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.Learner.DueCards(r.Context(), s.queryFilter(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": cards, "count": len(cards)})
}

func (s *Server) handleNewCards(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultNewCardLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	cards, err := s.Learner.NewCards(r.Context(), limit, s.queryFilter(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": cards, "count": len(cards)})
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	card, err := s.Learner.Card(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleInitCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	card, err := s.Learner.Initialize(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req outcomeRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	card, err := s.Learner.ReviewCard(r.Context(), id, req.parse())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}
