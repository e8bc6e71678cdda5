package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRatingStore persists ratings and their statistics in Postgres.
type PostgresRatingStore struct {
	pool *pgxpool.Pool
}

// NewPostgresRatingStore creates a store backed by Postgres.
func NewPostgresRatingStore(pool *pgxpool.Pool) *PostgresRatingStore {
	return &PostgresRatingStore{pool: pool}
}

const ratingColumns = `id, resource_id, user_id, difficulty, quality, detail, created_at, updated_at`

// recomputeStatsSQL rebuilds one statistics row from the live rating
// rows. Over an empty set the SELECT produces NULL averages and count
// zero, so the row is written rather than deleted.
const recomputeStatsSQL = `
INSERT INTO resource_stats (resource_id, avg_difficulty, avg_quality, avg_detail, rating_count)
SELECT $1, AVG(difficulty), AVG(quality), AVG(detail), COUNT(*)::int
FROM ratings
WHERE resource_id = $1
ON CONFLICT (resource_id) DO UPDATE SET
  avg_difficulty = EXCLUDED.avg_difficulty,
  avg_quality    = EXCLUDED.avg_quality,
  avg_detail     = EXCLUDED.avg_detail,
  rating_count   = EXCLUDED.rating_count,
  updated_at     = now()`

func (s *PostgresRatingStore) Upsert(ctx context.Context, resourceID, userID string, difficulty, quality, detail int) (Rating, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Rating{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const q = `INSERT INTO ratings (resource_id, user_id, difficulty, quality, detail)
	           VALUES ($1, $2, $3, $4, $5)
	           ON CONFLICT (resource_id, user_id) DO UPDATE SET
	             difficulty = EXCLUDED.difficulty,
	             quality    = EXCLUDED.quality,
	             detail     = EXCLUDED.detail,
	             updated_at = now()
	           RETURNING ` + ratingColumns
	var out Rating
	err = tx.QueryRow(ctx, q, resourceID, userID, difficulty, quality, detail).Scan(
		&out.ID, &out.ResourceID, &out.UserID,
		&out.Difficulty, &out.Quality, &out.Detail,
		&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return Rating{}, err
	}

	if _, err := tx.Exec(ctx, recomputeStatsSQL, resourceID); err != nil {
		return Rating{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Rating{}, err
	}
	return out, nil
}

func (s *PostgresRatingStore) Get(ctx context.Context, resourceID, userID string) (Rating, bool, error) {
	const q = `SELECT ` + ratingColumns + ` FROM ratings WHERE resource_id = $1 AND user_id = $2`
	var out Rating
	err := s.pool.QueryRow(ctx, q, resourceID, userID).Scan(
		&out.ID, &out.ResourceID, &out.UserID,
		&out.Difficulty, &out.Quality, &out.Detail,
		&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Rating{}, false, nil
		}
		return Rating{}, false, err
	}
	return out, true, nil
}

func (s *PostgresRatingStore) Delete(ctx context.Context, resourceID, userID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM ratings WHERE resource_id = $1 AND user_id = $2`,
		resourceID, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, recomputeStatsSQL, resourceID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresRatingStore) Summary(ctx context.Context, resourceID string) (ResourceStats, error) {
	const q = `SELECT resource_id, avg_difficulty, avg_quality, avg_detail, rating_count
	           FROM resource_stats WHERE resource_id = $1`
	var out ResourceStats
	err := s.pool.QueryRow(ctx, q, resourceID).Scan(
		&out.ResourceID, &out.AvgDifficulty, &out.AvgQuality, &out.AvgDetail, &out.RatingCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ResourceStats{ResourceID: resourceID}, nil
		}
		return ResourceStats{}, err
	}
	return out, nil
}

func (s *PostgresRatingStore) RecomputeStats(ctx context.Context, resourceID string) error {
	_, err := s.pool.Exec(ctx, recomputeStatsSQL, resourceID)
	return err
}

func (s *PostgresRatingStore) ReconcileAll(ctx context.Context) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rebuilt, err := tx.Exec(ctx, `
INSERT INTO resource_stats (resource_id, avg_difficulty, avg_quality, avg_detail, rating_count)
SELECT resource_id, AVG(difficulty), AVG(quality), AVG(detail), COUNT(*)::int
FROM ratings
GROUP BY resource_id
ON CONFLICT (resource_id) DO UPDATE SET
  avg_difficulty = EXCLUDED.avg_difficulty,
  avg_quality    = EXCLUDED.avg_quality,
  avg_detail     = EXCLUDED.avg_detail,
  rating_count   = EXCLUDED.rating_count,
  updated_at     = now()`)
	if err != nil {
		return 0, err
	}

	// Rows whose last rating disappeared keep a zero-count row.
	zeroed, err := tx.Exec(ctx, `
UPDATE resource_stats SET
  avg_difficulty = NULL, avg_quality = NULL, avg_detail = NULL, rating_count = 0, updated_at = now()
WHERE rating_count <> 0
  AND NOT EXISTS (SELECT 1 FROM ratings WHERE ratings.resource_id = resource_stats.resource_id)`)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(rebuilt.RowsAffected() + zeroed.RowsAffected()), nil
}
