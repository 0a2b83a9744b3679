package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/speakflash/internal/catalog"
	"github.com/vytor/speakflash/internal/db"
	"github.com/vytor/speakflash/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	database, err := db.Open(context.Background(), db.MemoryPath)
	require.NoError(t, err)
	return database.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Clock returns a clock stuck at t.
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NewCatalog builds a catalog of n items with ids 1..n. category picks the
// category of item i (1-based).
func NewCatalog(t *testing.T, n int, category func(i int) string) *catalog.Catalog {
	items := make([]models.LearnableItem, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, models.LearnableItem{
			ID:         int64(i),
			PromptText: "prompt",
			TargetText: "target",
			Category:   category(i),
			Difficulty: models.DifficultyMedium,
		})
	}
	c, err := catalog.New(items)
	require.NoError(t, err)
	return c
}
