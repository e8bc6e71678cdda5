package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryCommentStore is a development and test implementation.
type InMemoryCommentStore struct {
	mu       sync.RWMutex
	comments map[string]Comment // id -> comment
}

func NewInMemoryCommentStore() *InMemoryCommentStore {
	return &InMemoryCommentStore{comments: make(map[string]Comment)}
}

func (s *InMemoryCommentStore) Create(_ context.Context, c Comment) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	s.comments[c.ID] = c
	return c, nil
}

func (s *InMemoryCommentStore) ListByResource(_ context.Context, resourceID string, page, perPage int) ([]Comment, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var all []Comment
	for _, c := range s.comments {
		if c.ResourceID == resourceID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := int64(len(all))
	start := (page - 1) * perPage
	if start >= len(all) {
		return []Comment{}, total, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *InMemoryCommentStore) Get(_ context.Context, commentID string) (Comment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[commentID]
	return c, ok, nil
}

func (s *InMemoryCommentStore) DeleteAuthorized(_ context.Context, commentID, requesterID string, isAdmin bool) (DeleteOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[commentID]
	if !ok {
		return OutcomeNotFound, nil
	}
	if !authorizedToDelete(c.UserID, requesterID, isAdmin) {
		return OutcomeForbidden, nil
	}
	delete(s.comments, commentID)
	return OutcomeDeleted, nil
}
