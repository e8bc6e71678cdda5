// Package store persists engagement records: per-user ratings, likes,
// comments, and the denormalized per-resource statistics row. Every
// mutation that touches ratings recomputes the statistics row in the
// same transactional unit, so readers never observe a rating change
// without its aggregate update.
package store

import (
	"context"
	"time"
)

// Score bounds for every rating axis.
const (
	MinScore = 1
	MaxScore = 10
)

// Rating is one user's rating of one resource. At most one row exists
// per (resource_id, user_id); resubmitting replaces the axis values in
// place, preserving id and created_at.
type Rating struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resourceId"`
	UserID     string    `json:"userId"`
	Difficulty int       `json:"difficulty"`
	Quality    int       `json:"quality"`
	Detail     int       `json:"detail"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ResourceStats is the denormalized statistics row for a resource.
// Averages are nil when no ratings exist; the row itself is written
// (not deleted) at count zero so lookups always succeed.
type ResourceStats struct {
	ResourceID    string   `json:"resourceId"`
	AvgDifficulty *float64 `json:"avgDifficulty"`
	AvgQuality    *float64 `json:"avgQuality"`
	AvgDetail     *float64 `json:"avgDetail"`
	RatingCount   int      `json:"ratingCount"`
}

// RatingStore is the rating half of the engagement store. Upsert and
// Delete leave the statistics row consistent with the rating rows
// before they return (invariant: aggregate consistency).
type RatingStore interface {
	// Upsert creates the user's rating for the resource or replaces its
	// axis values in place, then recomputes the statistics row within
	// the same transaction.
	Upsert(ctx context.Context, resourceID, userID string, difficulty, quality, detail int) (Rating, error)

	// Get returns the user's rating and whether one exists. Absence is
	// not an error.
	Get(ctx context.Context, resourceID, userID string) (Rating, bool, error)

	// Delete removes the user's rating if present (no-op otherwise) and
	// recomputes the statistics row within the same transaction.
	Delete(ctx context.Context, resourceID, userID string) error

	// Summary returns the statistics row, or a zero-count view with nil
	// averages when the resource has never been rated.
	Summary(ctx context.Context, resourceID string) (ResourceStats, error)

	// RecomputeStats rebuilds the statistics row from the current
	// rating rows. Deterministic and idempotent; safe to re-run from a
	// maintenance pass.
	RecomputeStats(ctx context.Context, resourceID string) error

	// ReconcileAll recomputes statistics for every resource, zeroing
	// rows whose ratings are all gone. Returns the number of rows
	// touched.
	ReconcileAll(ctx context.Context) (int, error)
}
