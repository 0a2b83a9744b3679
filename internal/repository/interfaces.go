package repository

import (
	"context"

	"github.com/vytor/speakflash/internal/models"
)

// ProgressRepository stores the card-progress half of the snapshot.
type ProgressRepository interface {
	LoadAll(ctx context.Context) (map[int64]models.CardProgress, error)
	// UpsertBatch writes every card in one transaction. A later write for the
	// same item id replaces the stored row.
	UpsertBatch(ctx context.Context, cards []models.CardProgress) error
	DeleteAll(ctx context.Context) error
}

// PreferenceRepository stores learner preferences.
type PreferenceRepository interface {
	CategoryFilter(ctx context.Context) (models.CategoryFilter, error)
	SetCategoryFilter(ctx context.Context, filter models.CategoryFilter) error
}

// RushRepository stores finished timed-game summaries.
type RushRepository interface {
	InsertGame(ctx context.Context, game models.RushGame) (int64, error)
	RecentGames(ctx context.Context, limit int) ([]models.RushGame, error)
	BestStreak(ctx context.Context) (int, error)
}
