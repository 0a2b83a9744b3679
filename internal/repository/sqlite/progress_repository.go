package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) LoadAll(ctx context.Context) (map[int64]models.CardProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	query, args, err := sqlBuilder.Select(
		"item_id", "level", "next_review_date", "correct_count",
		"incorrect_count", "last_reviewed", "ease_factor",
	).From("card_progress").OrderBy("item_id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query card progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	cards := make(map[int64]models.CardProgress)
	for rows.Next() {
		var (
			c            models.CardProgress
			level        int
			nextReview   string
			lastReviewed sql.NullString
		)
		if err := rows.Scan(&c.ItemID, &level, &nextReview, &c.CorrectCount, &c.IncorrectCount, &lastReviewed, &c.EaseFactor); err != nil {
			log.Error("failed to scan card progress: %v", err)
			return nil, err
		}
		c.Level = models.Level(level)
		if c.NextReviewDate, err = parseDate(nextReview); err != nil {
			return nil, fmt.Errorf("item %d: next_review_date: %w", c.ItemID, err)
		}
		if lastReviewed.Valid {
			t, err := parseDate(lastReviewed.String)
			if err != nil {
				return nil, fmt.Errorf("item %d: last_reviewed: %w", c.ItemID, err)
			}
			c.LastReviewed = &t
		}
		cards[c.ItemID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debug("loaded %d card progress rows", len(cards))
	return cards, nil
}

func (r *progressRepository) UpsertBatch(ctx context.Context, cards []models.CardProgress) error {
	if len(cards) == 0 {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting %d card progress rows", len(cards))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, c := range cards {
			var lastReviewed any
			if c.LastReviewed != nil {
				lastReviewed = formatDate(*c.LastReviewed)
			}
			query, args, err := sqlBuilder.Insert("card_progress").
				Columns("item_id", "level", "next_review_date", "correct_count",
					"incorrect_count", "last_reviewed", "ease_factor").
				Values(c.ItemID, int(c.Level), formatDate(c.NextReviewDate), c.CorrectCount,
					c.IncorrectCount, lastReviewed, c.EaseFactor).
				Suffix(`ON CONFLICT(item_id) DO UPDATE SET
    level = excluded.level,
    next_review_date = excluded.next_review_date,
    correct_count = excluded.correct_count,
    incorrect_count = excluded.incorrect_count,
    last_reviewed = excluded.last_reviewed,
    ease_factor = excluded.ease_factor,
    updated_at = CURRENT_TIMESTAMP`).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				log.Error("failed to upsert item %d: %v", c.ItemID, err)
				return err
			}
		}
		return nil
	})
}

func (r *progressRepository) DeleteAll(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	res, err := r.db.ExecContext(ctx, `DELETE FROM card_progress`)
	if err != nil {
		log.Error("failed to delete card progress: %v", err)
		return err
	}
	n, _ := res.RowsAffected()
	log.Info("deleted %d card progress rows", n)
	return nil
}
