package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLikeStore persists likes in Postgres.
type PostgresLikeStore struct {
	pool *pgxpool.Pool
}

// NewPostgresLikeStore creates a store backed by Postgres.
func NewPostgresLikeStore(pool *pgxpool.Pool) *PostgresLikeStore {
	return &PostgresLikeStore{pool: pool}
}

func (s *PostgresLikeStore) Toggle(ctx context.Context, resourceID, userID string) (LikeStatus, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return LikeStatus{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`DELETE FROM likes WHERE resource_id = $1 AND user_id = $2`,
		resourceID, userID)
	if err != nil {
		return LikeStatus{}, err
	}

	liked := false
	if tag.RowsAffected() == 0 {
		// Nothing to remove, so this toggle is a like.
		if _, err := tx.Exec(ctx,
			`INSERT INTO likes (resource_id, user_id) VALUES ($1, $2)
			 ON CONFLICT (resource_id, user_id) DO NOTHING`,
			resourceID, userID); err != nil {
			return LikeStatus{}, err
		}
		liked = true
	}

	var count int64
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE resource_id = $1`,
		resourceID).Scan(&count); err != nil {
		return LikeStatus{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return LikeStatus{}, err
	}
	return LikeStatus{IsLiked: liked, LikeCount: count}, nil
}

func (s *PostgresLikeStore) Status(ctx context.Context, resourceID, userID string) (LikeStatus, error) {
	const q = `SELECT COUNT(*),
	                  COALESCE(bool_or(user_id = $2), false)
	           FROM likes WHERE resource_id = $1`
	var out LikeStatus
	if err := s.pool.QueryRow(ctx, q, resourceID, userID).Scan(&out.LikeCount, &out.IsLiked); err != nil {
		return LikeStatus{}, err
	}
	return out, nil
}
