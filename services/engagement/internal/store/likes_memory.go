package store

import (
	"context"
	"sync"
	"time"
)

// InMemoryLikeStore is a development and test implementation.
type InMemoryLikeStore struct {
	mu    sync.RWMutex
	likes map[string]map[string]Like // resource_id -> user_id -> like
}

func NewInMemoryLikeStore() *InMemoryLikeStore {
	return &InMemoryLikeStore{likes: make(map[string]map[string]Like)}
}

func (s *InMemoryLikeStore) Toggle(_ context.Context, resourceID, userID string) (LikeStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.likes[resourceID] == nil {
		s.likes[resourceID] = make(map[string]Like)
	}

	liked := false
	if _, ok := s.likes[resourceID][userID]; ok {
		delete(s.likes[resourceID], userID)
	} else {
		s.likes[resourceID][userID] = Like{
			ResourceID: resourceID,
			UserID:     userID,
			CreatedAt:  time.Now().UTC(),
		}
		liked = true
	}
	return LikeStatus{IsLiked: liked, LikeCount: int64(len(s.likes[resourceID]))}, nil
}

func (s *InMemoryLikeStore) Status(_ context.Context, resourceID, userID string) (LikeStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, liked := s.likes[resourceID][userID]
	return LikeStatus{IsLiked: liked, LikeCount: int64(len(s.likes[resourceID]))}, nil
}
