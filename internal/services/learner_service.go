package services

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/speakflash/internal/catalog"
	"github.com/vytor/speakflash/internal/errors"
	"github.com/vytor/speakflash/internal/flashcard"
	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/progress"
	"github.com/vytor/speakflash/internal/repository"
	"github.com/vytor/speakflash/internal/session"
)

// FilterRecorder is told when the selected category filter changes.
type FilterRecorder interface {
	CategoryFilterChanged(filter models.CategoryFilter)
}

// LearnerService is the learner-facing surface of the engine: card progress,
// queues, statistics and the selected category filter.
//
// Card operations only accept ids of items in the catalog and return a
// NOT_FOUND error for anything else, even though the underlying ledger
// answers default progress for any id.
type LearnerService interface {
	Restore(ctx context.Context, snapshot models.Snapshot)
	Card(ctx context.Context, id int64) (*models.StudyCard, error)
	Initialize(ctx context.Context, id int64) (*models.StudyCard, error)
	ReviewCard(ctx context.Context, id int64, outcome models.Outcome) (*models.StudyCard, error)
	DueCards(ctx context.Context, filter models.CategoryFilter) ([]models.StudyCard, error)
	NewCards(ctx context.Context, limit int, filter models.CategoryFilter) ([]models.StudyCard, error)
	Plan(ctx context.Context, filter models.CategoryFilter) ([]int64, error)
	Stats(ctx context.Context, filter models.CategoryFilter) (*models.ProgressStat, error)
	CategoryStats(ctx context.Context) ([]models.CategoryStat, error)
	CategoryFilter(ctx context.Context) models.CategoryFilter
	SetCategoryFilter(ctx context.Context, filter models.CategoryFilter) error
	Reset(ctx context.Context)
}

type learnerService struct {
	catalog  *catalog.Catalog
	ledger   *flashcard.Ledger
	planner  *session.Planner
	queries  *progress.Queries
	recorder FilterRecorder
	now      func() time.Time

	mu     sync.RWMutex
	filter models.CategoryFilter
}

// NewLearnerService creates a new LearnerService. recorder may be nil.
func NewLearnerService(c *catalog.Catalog, ledger *flashcard.Ledger, planner *session.Planner, recorder FilterRecorder, now func() time.Time) LearnerService {
	if now == nil {
		now = time.Now
	}
	return &learnerService{
		catalog:  c,
		ledger:   ledger,
		planner:  planner,
		queries:  progress.NewQueries(c, ledger),
		recorder: recorder,
		now:      now,
	}
}

// LoadSnapshot reads the stored engine state.
func LoadSnapshot(ctx context.Context, progressRepo repository.ProgressRepository, prefs repository.PreferenceRepository) (models.Snapshot, error) {
	log := logger.FromContext(ctx)
	cards, err := progressRepo.LoadAll(ctx)
	if err != nil {
		log.Error("failed to load card progress: %v", err)
		return models.Snapshot{}, errors.NewInternalError(err)
	}
	filter, err := prefs.CategoryFilter(ctx)
	if err != nil {
		log.Error("failed to load category filter: %v", err)
		return models.Snapshot{}, errors.NewInternalError(err)
	}
	return models.Snapshot{CardProgress: cards, CategoryFilter: filter}, nil
}

func (s *learnerService) Restore(ctx context.Context, snapshot models.Snapshot) {
	log := logger.FromContext(ctx)
	s.ledger.Restore(snapshot.CardProgress)

	filter := snapshot.CategoryFilter
	if filter != models.AllCategories && !s.catalog.HasCategory(string(filter)) {
		log.Warn("stored category filter %q is not in the catalog, using all categories", filter)
		filter = models.AllCategories
	}
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()

	log.Info("learner state restored: cards=%d, filter=%q", s.ledger.Len(), filter)
}

func (s *learnerService) today() time.Time {
	return models.Day(s.now())
}

func (s *learnerService) item(id int64) (models.LearnableItem, error) {
	item, ok := s.catalog.Get(id)
	if !ok {
		return models.LearnableItem{}, errors.NewNotFoundError("item", id)
	}
	return item, nil
}

func (s *learnerService) Card(ctx context.Context, id int64) (*models.StudyCard, error) {
	item, err := s.item(id)
	if err != nil {
		return nil, err
	}
	return &models.StudyCard{Item: item, Progress: s.ledger.Progress(id)}, nil
}

func (s *learnerService) Initialize(ctx context.Context, id int64) (*models.StudyCard, error) {
	item, err := s.item(id)
	if err != nil {
		return nil, err
	}
	s.ledger.Initialize(id)
	logger.FromContext(ctx).Debug("card initialized: id=%d", id)
	return &models.StudyCard{Item: item, Progress: s.ledger.Progress(id)}, nil
}

func (s *learnerService) ReviewCard(ctx context.Context, id int64, outcome models.Outcome) (*models.StudyCard, error) {
	item, err := s.item(id)
	if err != nil {
		return nil, err
	}
	card := s.ledger.ApplyReview(id, outcome, s.today())
	logger.FromContext(ctx).Info("card reviewed: id=%d, outcome=%s, level=%d", id, outcome, card.Level)
	return &models.StudyCard{Item: item, Progress: card}, nil
}

func (s *learnerService) checkFilter(filter models.CategoryFilter) error {
	if filter == models.AllCategories || s.catalog.HasCategory(string(filter)) {
		return nil
	}
	return errors.NewValidationError("category", "unknown category "+string(filter))
}

func (s *learnerService) cards(ids []int64) []models.StudyCard {
	out := make([]models.StudyCard, 0, len(ids))
	for _, id := range ids {
		item, ok := s.catalog.Get(id)
		if !ok {
			continue
		}
		out = append(out, models.StudyCard{Item: item, Progress: s.ledger.Progress(id)})
	}
	return out
}

func (s *learnerService) DueCards(ctx context.Context, filter models.CategoryFilter) ([]models.StudyCard, error) {
	if err := s.checkFilter(filter); err != nil {
		return nil, err
	}
	return s.cards(s.planner.DueCards(filter, s.today())), nil
}

func (s *learnerService) NewCards(ctx context.Context, limit int, filter models.CategoryFilter) ([]models.StudyCard, error) {
	if limit < 0 {
		return nil, errors.NewValidationError("limit", "must not be negative")
	}
	if err := s.checkFilter(filter); err != nil {
		return nil, err
	}
	return s.cards(s.planner.NewCards(limit, filter)), nil
}

func (s *learnerService) Plan(ctx context.Context, filter models.CategoryFilter) ([]int64, error) {
	if err := s.checkFilter(filter); err != nil {
		return nil, err
	}
	ids := s.planner.Plan(filter, s.today())
	logger.FromContext(ctx).Debug("session planned: filter=%q, cards=%d", filter, len(ids))
	return ids, nil
}

func (s *learnerService) Stats(ctx context.Context, filter models.CategoryFilter) (*models.ProgressStat, error) {
	if err := s.checkFilter(filter); err != nil {
		return nil, err
	}
	stat := s.queries.Summary(filter, s.today())
	return &stat, nil
}

func (s *learnerService) CategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	return s.queries.CategoryStats(s.today()), nil
}

func (s *learnerService) CategoryFilter(ctx context.Context) models.CategoryFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *learnerService) SetCategoryFilter(ctx context.Context, filter models.CategoryFilter) error {
	if err := s.checkFilter(filter); err != nil {
		return err
	}
	s.mu.Lock()
	s.filter = filter
	if s.recorder != nil {
		s.recorder.CategoryFilterChanged(filter)
	}
	s.mu.Unlock()
	logger.FromContext(ctx).Info("category filter set: %q", filter)
	return nil
}

func (s *learnerService) Reset(ctx context.Context) {
	s.ledger.Reset()
	logger.FromContext(ctx).Info("learner progress reset")
}
