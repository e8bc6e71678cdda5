package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/example/studyshare/internal/platform/events"
	"github.com/example/studyshare/services/engagement/internal/store"
)

const maxCommentLength = 2000

// Comments implements comment creation, listing, and the owner-or-admin
// deletion rule. Forbidden and NotFound are outcomes, not errors: a
// refused delete is an expected answer, and it must never mutate the row.
type Comments struct {
	store  store.CommentStore
	events *events.Publisher
	log    *zap.Logger
}

func NewComments(st store.CommentStore, ev *events.Publisher, log *zap.Logger) *Comments {
	if log == nil {
		log = zap.NewNop()
	}
	return &Comments{store: st, events: ev, log: log}
}

func (s *Comments) Create(ctx context.Context, resourceID, userID, content string) (store.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return store.Comment{}, ErrEmptyContent
	}
	if len(content) > maxCommentLength {
		return store.Comment{}, ErrContentTooLong
	}

	created, err := s.store.Create(ctx, store.Comment{
		ResourceID: resourceID,
		UserID:     userID,
		Content:    content,
	})
	if err != nil {
		return store.Comment{}, err
	}

	s.events.Publish(events.SubjectCommentCreated, "comment_created", userID, resourceID, map[string]any{
		"comment_id": created.ID,
	})
	return created, nil
}

func (s *Comments) List(ctx context.Context, resourceID string, page, perPage int) ([]store.Comment, int64, error) {
	return s.store.ListByResource(ctx, resourceID, page, perPage)
}

// Delete removes a comment when the requester authored it or is an
// administrator. The ownership check runs inside the store's delete
// transaction against the row being removed.
func (s *Comments) Delete(ctx context.Context, commentID string, requesterID string, isAdmin bool) (store.DeleteOutcome, error) {
	outcome, err := s.store.DeleteAuthorized(ctx, commentID, requesterID, isAdmin)
	if err != nil {
		return outcome, err
	}
	if outcome == store.OutcomeDeleted {
		s.events.Publish(events.SubjectCommentDeleted, "comment_deleted", requesterID, "", map[string]any{
			"comment_id": commentID,
			"as_admin":   isAdmin,
		})
	}
	return outcome, nil
}
