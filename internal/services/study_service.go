package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/speakflash/internal/errors"
	"github.com/vytor/speakflash/internal/flashcard"
	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/session"
)

// StudyService runs the learner's study session. There is at most one
// session at a time; starting a new one discards the old one.
type StudyService interface {
	StartSession(ctx context.Context, ids []int64) (*models.SessionStatus, error)
	Status(ctx context.Context) (*models.SessionStatus, error)
	ReviewCurrent(ctx context.Context, outcome models.Outcome) (*models.SessionStatus, error)
	EndSession(ctx context.Context) (*models.SessionSummary, error)
}

type studyService struct {
	learner LearnerService
	runner  *session.Runner
	now     func() time.Time

	mu        sync.Mutex
	sessionID string
}

// NewStudyService creates a new StudyService
func NewStudyService(learner LearnerService, ledger *flashcard.Ledger, now func() time.Time) StudyService {
	if now == nil {
		now = time.Now
	}
	return &studyService{
		learner: learner,
		runner:  session.NewRunner(ledger, logger.Default()),
		now:     now,
	}
}

// StartSession begins a session over ids, or over a planned session for the
// selected category filter when ids is empty.
func (s *studyService) StartSession(ctx context.Context, ids []int64) (*models.SessionStatus, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		planned, err := s.learner.Plan(ctx, s.learner.CategoryFilter(ctx))
		if err != nil {
			return nil, err
		}
		ids = planned
	} else {
		seen := make(map[int64]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				return nil, errors.NewValidationError("ids", "duplicate item id in session")
			}
			seen[id] = true
			if _, err := s.learner.Card(ctx, id); err != nil {
				return nil, err
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runner.Start(ids)
	s.sessionID = uuid.NewString()
	log.Info("study session started: id=%s, cards=%d", s.sessionID, len(ids))
	return s.statusLocked(ctx)
}

func (s *studyService) Status(ctx context.Context) (*models.SessionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked(ctx)
}

func (s *studyService) statusLocked(ctx context.Context) (*models.SessionStatus, error) {
	st, ok := s.runner.Session()
	if !ok {
		return nil, errors.NewNotFoundError("session", "current")
	}
	status := &models.SessionStatus{
		SessionID: s.sessionID,
		State:     s.runner.State().String(),
		Session:   st,
	}
	if id, ok := s.runner.Current(); ok {
		card, err := s.learner.Card(ctx, id)
		if err != nil {
			return nil, err
		}
		status.Current = card
	}
	return status, nil
}

func (s *studyService) ReviewCurrent(ctx context.Context, outcome models.Outcome) (*models.SessionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.runner.State() {
	case session.Idle:
		return nil, errors.NewConflictError("no study session in progress")
	case session.Complete:
		return nil, errors.NewConflictError("study session has no cards left")
	}
	card, _ := s.runner.ReviewCurrent(outcome, models.Day(s.now()))
	logger.FromContext(ctx).Debug("session card reviewed: session=%s, id=%d, outcome=%s", s.sessionID, card.ItemID, outcome)
	return s.statusLocked(ctx)
}

func (s *studyService) EndSession(ctx context.Context) (*models.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runner.State() == session.Idle {
		return nil, errors.NewConflictError("no study session in progress")
	}
	summary := s.runner.End()
	logger.FromContext(ctx).Info("study session ended: id=%s, correct=%d, total=%d", s.sessionID, summary.Correct, summary.Total)
	s.sessionID = ""
	return &summary, nil
}
