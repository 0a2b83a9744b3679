package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/speakflash/internal/catalog"
	"github.com/vytor/speakflash/internal/errors"
	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/repository"
	"github.com/vytor/speakflash/internal/rush"
)

const DefaultHistoryLimit = 10

// RushService runs timed speaking games. Rounds do not touch card progress.
type RushService interface {
	StartGame(ctx context.Context) (*models.RushStatus, *models.RushRound, error)
	Status(ctx context.Context) (*models.RushStatus, error)
	RecordRoundOutcome(ctx context.Context, outcome models.Outcome) (*models.RushStatus, *models.RushRound, error)
	EndGame(ctx context.Context) (*models.RushGame, error)
	History(ctx context.Context, limit int) ([]models.RushGame, error)
	BestStreak(ctx context.Context) (int, error)
}

type rushGame struct {
	id         string
	controller *rush.Controller
	rounds     int
	correct    int
	startedAt  time.Time
	seen       map[int64]bool
}

type rushService struct {
	catalog *catalog.Catalog
	repo    repository.RushRepository
	learner LearnerService
	now     func() time.Time

	mu   sync.Mutex
	game *rushGame
}

// NewRushService creates a new RushService
func NewRushService(c *catalog.Catalog, repo repository.RushRepository, learner LearnerService, now func() time.Time) RushService {
	if now == nil {
		now = time.Now
	}
	return &rushService{catalog: c, repo: repo, learner: learner, now: now}
}

func (s *rushService) StartGame(ctx context.Context) (*models.RushStatus, *models.RushRound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game != nil {
		return nil, nil, errors.NewConflictError("a timed game is already running")
	}
	s.game = &rushGame{
		id:         uuid.NewString(),
		controller: rush.NewController(),
		startedAt:  s.now(),
		seen:       make(map[int64]bool),
	}
	logger.FromContext(ctx).Info("timed game started: id=%s", s.game.id)
	round, err := s.nextRoundLocked(ctx)
	if err != nil {
		s.game = nil
		return nil, nil, err
	}
	return s.statusLocked(), round, nil
}

func (s *rushService) Status(ctx context.Context) (*models.RushStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return nil, errors.NewNotFoundError("timed game", "current")
	}
	return s.statusLocked(), nil
}

func (s *rushService) statusLocked() *models.RushStatus {
	g := s.game
	return &models.RushStatus{
		GameID:       g.id,
		State:        g.controller.State(),
		TimerSeconds: g.controller.TimerSeconds(),
		Rounds:       g.rounds,
		Correct:      g.correct,
		StartedAt:    g.startedAt,
	}
}

// RecordRoundOutcome feeds one round into the difficulty controller. A round
// that ran out of time is recorded as Incorrect by the caller.
func (s *rushService) RecordRoundOutcome(ctx context.Context, outcome models.Outcome) (*models.RushStatus, *models.RushRound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return nil, nil, errors.NewConflictError("no timed game in progress")
	}
	g := s.game
	before := g.controller.State().Difficulty
	state := g.controller.Record(outcome)
	g.rounds++
	if outcome == models.Correct {
		g.correct++
	}

	log := logger.FromContext(ctx)
	if state.Difficulty != before {
		log.Debug("timed game difficulty changed: id=%s, %d -> %d", g.id, before, state.Difficulty)
	}

	round, err := s.nextRoundLocked(ctx)
	if err != nil {
		return nil, nil, err
	}
	return s.statusLocked(), round, nil
}

// nextRoundLocked picks the prompt for the next round from the selected
// category, preferring items whose difficulty tag matches the current level
// and items not yet shown in this game.
func (s *rushService) nextRoundLocked(ctx context.Context) (*models.RushRound, error) {
	g := s.game
	difficulty := g.controller.State().Difficulty
	want := difficultyTag(difficulty)
	filter := s.learner.CategoryFilter(ctx)

	var pick, fallback, repeat *models.LearnableItem
	s.catalog.Each(filter, func(item models.LearnableItem) bool {
		it := item
		switch {
		case !g.seen[item.ID] && item.Difficulty == want:
			pick = &it
			return false
		case !g.seen[item.ID] && fallback == nil:
			fallback = &it
		case repeat == nil:
			repeat = &it
		}
		return true
	})
	if pick == nil {
		pick = fallback
	}
	if pick == nil && repeat != nil {
		// Every item has been shown; start over.
		g.seen = make(map[int64]bool)
		pick = repeat
	}
	if pick == nil {
		return nil, errors.NewConflictError("no items available for the selected category")
	}
	g.seen[pick.ID] = true

	return &models.RushRound{
		Number:       g.rounds + 1,
		Item:         *pick,
		TimerSeconds: rush.TimerSeconds(difficulty),
		Difficulty:   difficulty,
	}, nil
}

func difficultyTag(level int) string {
	switch {
	case level <= 3:
		return models.DifficultyEasy
	case level <= 7:
		return models.DifficultyMedium
	default:
		return models.DifficultyHard
	}
}

// EndGame stores the game summary and discards the controller.
func (s *rushService) EndGame(ctx context.Context) (*models.RushGame, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	g := s.game
	s.game = nil
	s.mu.Unlock()

	if g == nil {
		return nil, errors.NewConflictError("no timed game in progress")
	}

	ended := s.now()
	state := g.controller.State()
	summary := models.RushGame{
		GameID:          g.id,
		Rounds:          g.rounds,
		Correct:         g.correct,
		BestStreak:      state.BestStreak,
		FinalDifficulty: state.Difficulty,
		DurationSeconds: ended.Sub(g.startedAt).Seconds(),
		StartedAt:       g.startedAt,
		EndedAt:         ended,
	}
	id, err := s.repo.InsertGame(ctx, summary)
	if err != nil {
		log.Error("failed to store timed game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	summary.ID = id
	log.Info("timed game ended: id=%s, rounds=%d, correct=%d, best_streak=%d", g.id, g.rounds, g.correct, state.BestStreak)
	return &summary, nil
}

func (s *rushService) History(ctx context.Context, limit int) ([]models.RushGame, error) {
	if limit < 0 {
		return nil, errors.NewValidationError("limit", "must not be negative")
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	games, err := s.repo.RecentGames(ctx, limit)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load timed game history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if games == nil {
		games = []models.RushGame{}
	}
	return games, nil
}

func (s *rushService) BestStreak(ctx context.Context) (int, error) {
	best, err := s.repo.BestStreak(ctx)
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	return best, nil
}
