// Package service holds the engagement operations: rating submission
// with aggregate recomputation, like toggling, and comment creation and
// owner-or-admin deletion. Transport concerns stay in handlers; storage
// invariants stay in store.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/studyshare/internal/platform/cache"
	"github.com/example/studyshare/internal/platform/events"
	"github.com/example/studyshare/services/engagement/internal/store"
)

// Ratings implements submit/get/delete/summary over a rating store.
// The statistics cache and the event publisher are optional; both are
// nil-safe.
type Ratings struct {
	store  store.RatingStore
	cache  *cache.Cache
	events *events.Publisher
	log    *zap.Logger
}

func NewRatings(st store.RatingStore, c *cache.Cache, ev *events.Publisher, log *zap.Logger) *Ratings {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ratings{store: st, cache: c, events: ev, log: log}
}

func statsCacheKey(resourceID string) string {
	return "engagement:stats:" + resourceID
}

// Submit validates every axis before touching storage, then upserts the
// rating; the store recomputes the statistics row in the same
// transactional unit, so either both are visible or neither is.
func (s *Ratings) Submit(ctx context.Context, resourceID, userID string, difficulty, quality, detail int) (store.Rating, error) {
	if err := validateScore("difficulty", difficulty); err != nil {
		return store.Rating{}, err
	}
	if err := validateScore("quality", quality); err != nil {
		return store.Rating{}, err
	}
	if err := validateScore("detail", detail); err != nil {
		return store.Rating{}, err
	}

	rating, err := s.store.Upsert(ctx, resourceID, userID, difficulty, quality, detail)
	if err != nil {
		return store.Rating{}, err
	}

	s.invalidateSummary(ctx, resourceID)
	s.events.Publish(events.SubjectRatingSubmitted, "rating_submitted", userID, resourceID, map[string]any{
		"difficulty": difficulty,
		"quality":    quality,
		"detail":     detail,
	})
	return rating, nil
}

// Get returns the user's rating for the resource; absence is reported
// through ok=false, never as an error.
func (s *Ratings) Get(ctx context.Context, resourceID, userID string) (store.Rating, bool, error) {
	return s.store.Get(ctx, resourceID, userID)
}

// Delete removes the user's rating. Deleting a rating that does not
// exist is a successful no-op.
func (s *Ratings) Delete(ctx context.Context, resourceID, userID string) error {
	if err := s.store.Delete(ctx, resourceID, userID); err != nil {
		return err
	}
	s.invalidateSummary(ctx, resourceID)
	s.events.Publish(events.SubjectRatingDeleted, "rating_deleted", userID, resourceID, nil)
	return nil
}

// Summary returns the statistics view for a resource, serving from the
// cache when possible. The store remains the source of truth; cache
// failures degrade to a direct read.
func (s *Ratings) Summary(ctx context.Context, resourceID string) (store.ResourceStats, error) {
	key := statsCacheKey(resourceID)

	var cached store.ResourceStats
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("stats cache read failed", zap.String("resource_id", resourceID), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	stats, err := s.store.Summary(ctx, resourceID)
	if err != nil {
		return store.ResourceStats{}, err
	}
	if err := s.cache.Set(ctx, key, stats); err != nil {
		s.log.Warn("stats cache write failed", zap.String("resource_id", resourceID), zap.Error(err))
	}
	return stats, nil
}

func (s *Ratings) invalidateSummary(ctx context.Context, resourceID string) {
	if err := s.cache.Delete(ctx, statsCacheKey(resourceID)); err != nil {
		s.log.Warn("stats cache invalidation failed", zap.String("resource_id", resourceID), zap.Error(err))
	}
}
