package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCommentStore persists comments in Postgres.
type PostgresCommentStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCommentStore creates a store backed by Postgres.
func NewPostgresCommentStore(pool *pgxpool.Pool) *PostgresCommentStore {
	return &PostgresCommentStore{pool: pool}
}

const commentColumns = `id, resource_id, user_id, content, created_at`

func (s *PostgresCommentStore) Create(ctx context.Context, c Comment) (Comment, error) {
	const q = `INSERT INTO comments (resource_id, user_id, content)
	           VALUES ($1, $2, $3)
	           RETURNING ` + commentColumns
	var out Comment
	err := s.pool.QueryRow(ctx, q, c.ResourceID, c.UserID, c.Content).Scan(
		&out.ID, &out.ResourceID, &out.UserID, &out.Content, &out.CreatedAt)
	return out, err
}

func (s *PostgresCommentStore) ListByResource(ctx context.Context, resourceID string, page, perPage int) ([]Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE resource_id = $1`,
		resourceID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT ` + commentColumns + `
	           FROM comments
	           WHERE resource_id = $1
	           ORDER BY created_at DESC, id DESC
	           LIMIT $2 OFFSET $3`
	rows, err := s.pool.Query(ctx, q, resourceID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Comment, 0, perPage)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ResourceID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (s *PostgresCommentStore) Get(ctx context.Context, commentID string) (Comment, bool, error) {
	const q = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	var out Comment
	err := s.pool.QueryRow(ctx, q, commentID).Scan(
		&out.ID, &out.ResourceID, &out.UserID, &out.Content, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Comment{}, false, nil
		}
		return Comment{}, false, err
	}
	return out, true, nil
}

func (s *PostgresCommentStore) DeleteAuthorized(ctx context.Context, commentID, requesterID string, isAdmin bool) (DeleteOutcome, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return OutcomeNotFound, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the row so the ownership decision and the delete see the
	// same author.
	var authorID string
	err = tx.QueryRow(ctx,
		`SELECT user_id FROM comments WHERE id = $1 FOR UPDATE`,
		commentID).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return OutcomeNotFound, nil
		}
		return OutcomeNotFound, err
	}

	if !authorizedToDelete(authorID, requesterID, isAdmin) {
		return OutcomeForbidden, nil
	}

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID); err != nil {
		return OutcomeNotFound, err
	}
	if err := tx.Commit(ctx); err != nil {
		return OutcomeNotFound, err
	}
	return OutcomeDeleted, nil
}
