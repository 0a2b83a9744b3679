package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/speakflash/internal/catalog"
	"github.com/vytor/speakflash/internal/flashcard"
	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/progress"
	"github.com/vytor/speakflash/internal/session"
)

var today = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

func fixture(t *testing.T) (*progress.Queries, *session.Planner) {
	t.Helper()
	c := catalog.MustNew([]models.LearnableItem{
		{ID: 1, Category: "travel"},
		{ID: 2, Category: "travel"},
		{ID: 3, Category: "dining"},
		{ID: 4, Category: "travel"},
		{ID: 5, Category: "dining"},
		{ID: 6, Category: "work"},
	})
	l := flashcard.NewLedger(flashcard.WithLogger(logger.Discard()))
	l.Restore(map[int64]models.CardProgress{
		1: {Level: 5, EaseFactor: 2.9, CorrectCount: 6, NextReviewDate: today.AddDate(0, 0, -3)},
		2: {Level: 2, EaseFactor: 2.3, CorrectCount: 2, IncorrectCount: 2, NextReviewDate: today},
		3: {Level: 1, EaseFactor: 2.5, CorrectCount: 1, NextReviewDate: today.AddDate(0, 0, 4)},
		5: {Level: 0, EaseFactor: 2.5, NextReviewDate: today},
	})
	return progress.NewQueries(c, l), session.NewPlanner(c, l, session.WithPlannerLogger(logger.Discard()))
}

func TestQueries_Counts(t *testing.T) {
	q, _ := fixture(t)

	assert.Equal(t, 1, q.MasteredCount(models.AllCategories))
	assert.Equal(t, 2, q.LearningCount(models.AllCategories))
	assert.Equal(t, 2, q.ReviewCount(models.AllCategories, today), "items 2 and 5 are due; mastered 1 is excluded")
	assert.Equal(t, 1, q.ReviewCount("travel", today))
	assert.Equal(t, 0, q.MasteredCount("dining"))
}

func TestQueries_ReviewCountMatchesPlanner(t *testing.T) {
	q, p := fixture(t)
	for _, f := range []models.CategoryFilter{models.AllCategories, "travel", "dining", "work"} {
		assert.Equal(t, len(p.DueCards(f, today)), q.ReviewCount(f, today), "filter=%q", f)
	}
}

func TestQueries_CategoryStats(t *testing.T) {
	q, _ := fixture(t)

	stats := q.CategoryStats(today)

	require.Len(t, stats, 3)
	assert.Equal(t, models.CategoryStat{Category: "travel", TotalItems: 3, NewCards: 1, LearningCards: 1, MasteredCards: 1, DueCards: 1}, stats[0])
	assert.Equal(t, models.CategoryStat{Category: "dining", TotalItems: 2, NewCards: 1, LearningCards: 1, DueCards: 1}, stats[1])
	assert.Equal(t, models.CategoryStat{Category: "work", TotalItems: 1, NewCards: 1}, stats[2])
}

func TestQueries_Summary(t *testing.T) {
	q, _ := fixture(t)

	s := q.Summary(models.AllCategories, today)

	assert.Equal(t, 6, s.TotalItems)
	assert.Equal(t, 4, s.StartedCards)
	assert.Equal(t, 3, s.NewCards, "never exposed 4 and 6 plus initialized 5")
	assert.Equal(t, 2, s.LearningCards)
	assert.Equal(t, 1, s.MasteredCards)
	assert.Equal(t, 2, s.DueCards)
	assert.Equal(t, 11, s.TotalReviews)
	assert.InDelta(t, 81.8, s.Accuracy, 1e-9)
	assert.InDelta(t, 2.55, s.AvgEaseFactor, 1e-9)
}

func TestQueries_EmptyLedger(t *testing.T) {
	c := catalog.MustNew([]models.LearnableItem{{ID: 1, Category: "a"}})
	q := progress.NewQueries(c, flashcard.NewLedger(flashcard.WithLogger(logger.Discard())))

	s := q.Summary(models.AllCategories, today)
	assert.Equal(t, models.ProgressStat{TotalItems: 1, NewCards: 1}, s)
}
