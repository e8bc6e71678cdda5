package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRatingStore mirrors the Postgres semantics for tests and
// development: mutations recompute the statistics entry before the lock
// is released, so callers observe the same aggregate-consistency
// guarantee.
type InMemoryRatingStore struct {
	mu      sync.RWMutex
	ratings map[string]map[string]Rating // resource_id -> user_id -> rating
	stats   map[string]ResourceStats     // resource_id -> statistics row
}

func NewInMemoryRatingStore() *InMemoryRatingStore {
	return &InMemoryRatingStore{
		ratings: make(map[string]map[string]Rating),
		stats:   make(map[string]ResourceStats),
	}
}

func (s *InMemoryRatingStore) Upsert(_ context.Context, resourceID, userID string, difficulty, quality, detail int) (Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ratings[resourceID] == nil {
		s.ratings[resourceID] = make(map[string]Rating)
	}

	now := time.Now().UTC()
	r, ok := s.ratings[resourceID][userID]
	if !ok {
		r = Rating{
			ID:         uuid.NewString(),
			ResourceID: resourceID,
			UserID:     userID,
			CreatedAt:  now,
		}
	}
	r.Difficulty = difficulty
	r.Quality = quality
	r.Detail = detail
	r.UpdatedAt = now
	s.ratings[resourceID][userID] = r

	s.recomputeLocked(resourceID)
	return r, nil
}

func (s *InMemoryRatingStore) Get(_ context.Context, resourceID, userID string) (Rating, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ratings[resourceID][userID]
	return r, ok, nil
}

func (s *InMemoryRatingStore) Delete(_ context.Context, resourceID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ratings[resourceID][userID]; !ok {
		return nil
	}
	delete(s.ratings[resourceID], userID)
	s.recomputeLocked(resourceID)
	return nil
}

func (s *InMemoryRatingStore) Summary(_ context.Context, resourceID string) (ResourceStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.stats[resourceID]; ok {
		return st, nil
	}
	return ResourceStats{ResourceID: resourceID}, nil
}

func (s *InMemoryRatingStore) RecomputeStats(_ context.Context, resourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeLocked(resourceID)
	return nil
}

func (s *InMemoryRatingStore) ReconcileAll(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	touched := 0
	for resourceID := range s.ratings {
		s.recomputeLocked(resourceID)
		touched++
	}
	for resourceID := range s.stats {
		if len(s.ratings[resourceID]) == 0 && s.stats[resourceID].RatingCount != 0 {
			s.recomputeLocked(resourceID)
			touched++
		}
	}
	return touched, nil
}

func (s *InMemoryRatingStore) recomputeLocked(resourceID string) {
	rows := s.ratings[resourceID]
	st := ResourceStats{ResourceID: resourceID}
	if len(rows) > 0 {
		var sumD, sumQ, sumT int
		for _, r := range rows {
			sumD += r.Difficulty
			sumQ += r.Quality
			sumT += r.Detail
		}
		n := float64(len(rows))
		avgD, avgQ, avgT := float64(sumD)/n, float64(sumQ)/n, float64(sumT)/n
		st.AvgDifficulty = &avgD
		st.AvgQuality = &avgQ
		st.AvgDetail = &avgT
		st.RatingCount = len(rows)
	}
	s.stats[resourceID] = st
}
