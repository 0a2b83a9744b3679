package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/repository"
)

const categoryFilterKey = "category_filter"

type preferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new PreferenceRepository implementation
func NewPreferenceRepository(db *sql.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) CategoryFilter(ctx context.Context) (models.CategoryFilter, error) {
	query, args, err := sqlBuilder.Select("value").From("preferences").
		Where(squirrel.Eq{"key": categoryFilterKey}).ToSql()
	if err != nil {
		return models.AllCategories, err
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AllCategories, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("preference_repo").Error("failed to read category filter: %v", err)
		return models.AllCategories, err
	}
	return models.CategoryFilter(value), nil
}

func (r *preferenceRepository) SetCategoryFilter(ctx context.Context, filter models.CategoryFilter) error {
	log := logger.FromContext(ctx).WithPrefix("preference_repo")
	log.Debug("storing category filter: %q", filter)

	query, args, err := sqlBuilder.Insert("preferences").
		Columns("key", "value").
		Values(categoryFilterKey, string(filter)).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to store category filter: %v", err)
		return err
	}
	return nil
}
