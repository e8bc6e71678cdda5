package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/studyshare/internal/platform/events"
	"github.com/example/studyshare/services/engagement/internal/store"
)

// Likes implements the like toggle and status views.
type Likes struct {
	store  store.LikeStore
	events *events.Publisher
	log    *zap.Logger
}

func NewLikes(st store.LikeStore, ev *events.Publisher, log *zap.Logger) *Likes {
	if log == nil {
		log = zap.NewNop()
	}
	return &Likes{store: st, events: ev, log: log}
}

func (s *Likes) Toggle(ctx context.Context, resourceID, userID string) (store.LikeStatus, error) {
	status, err := s.store.Toggle(ctx, resourceID, userID)
	if err != nil {
		return store.LikeStatus{}, err
	}
	s.events.Publish(events.SubjectLikeToggled, "like_toggled", userID, resourceID, map[string]any{
		"is_liked": status.IsLiked,
	})
	return status, nil
}

func (s *Likes) Status(ctx context.Context, resourceID, userID string) (store.LikeStatus, error) {
	return s.store.Status(ctx, resourceID, userID)
}
