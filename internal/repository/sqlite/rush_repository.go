package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/repository"
)

type rushRepository struct {
	db *sql.DB
}

// NewRushRepository creates a new RushRepository implementation
func NewRushRepository(db *sql.DB) repository.RushRepository {
	return &rushRepository{db: db}
}

func (r *rushRepository) InsertGame(ctx context.Context, g models.RushGame) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("rush_repo")
	log.Debug("inserting rush game: game_id=%s, rounds=%d", g.GameID, g.Rounds)

	query, args, err := sqlBuilder.Insert("rush_games").
		Columns("game_id", "rounds", "correct", "best_streak", "final_difficulty",
			"duration_seconds", "started_at", "ended_at").
		Values(g.GameID, g.Rounds, g.Correct, g.BestStreak, g.FinalDifficulty,
			g.DurationSeconds, g.StartedAt.UTC(), g.EndedAt.UTC()).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert rush game: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get rush game id: %v", err)
		return 0, err
	}
	log.Debug("rush game inserted: id=%d", id)
	return id, nil
}

func (r *rushRepository) RecentGames(ctx context.Context, limit int) ([]models.RushGame, error) {
	log := logger.FromContext(ctx).WithPrefix("rush_repo")

	q := sqlBuilder.Select(
		"id", "game_id", "rounds", "correct", "best_streak", "final_difficulty",
		"duration_seconds", "started_at", "ended_at",
	).From("rush_games").OrderBy("ended_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query rush games: %v", err)
		return nil, err
	}
	defer rows.Close()

	var games []models.RushGame
	for rows.Next() {
		var g models.RushGame
		if err := rows.Scan(&g.ID, &g.GameID, &g.Rounds, &g.Correct, &g.BestStreak,
			&g.FinalDifficulty, &g.DurationSeconds, &g.StartedAt, &g.EndedAt); err != nil {
			log.Error("failed to scan rush game: %v", err)
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *rushRepository) BestStreak(ctx context.Context) (int, error) {
	query, args, err := sqlBuilder.Select("COALESCE(MAX(best_streak), 0)").From("rush_games").ToSql()
	if err != nil {
		return 0, err
	}
	var best int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&best); err != nil {
		logger.FromContext(ctx).WithPrefix("rush_repo").Error("failed to read best streak: %v", err)
		return 0, err
	}
	return best, nil
}
