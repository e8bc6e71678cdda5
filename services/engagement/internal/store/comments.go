package store

import (
	"context"
	"time"
)

// Comment is a user comment on a resource. Ownership is the user that
// created it; deletable by its author or an administrator.
type Comment struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resourceId"`
	UserID     string    `json:"userId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DeleteOutcome reports how an authorized delete resolved. Forbidden
// and NotFound are ordinary outcomes, not errors.
type DeleteOutcome int

const (
	OutcomeDeleted DeleteOutcome = iota
	OutcomeForbidden
	OutcomeNotFound
)

// CommentStore is the comment half of the engagement store.
type CommentStore interface {
	Create(ctx context.Context, c Comment) (Comment, error)

	// ListByResource returns a page of comments, newest first, plus the
	// total count for the resource.
	ListByResource(ctx context.Context, resourceID string, page, perPage int) ([]Comment, int64, error)

	Get(ctx context.Context, commentID string) (Comment, bool, error)

	// DeleteAuthorized deletes the comment when the requester is its
	// author or an administrator. Ownership is evaluated against the
	// row observed inside the delete transaction, never a cached read.
	DeleteAuthorized(ctx context.Context, commentID, requesterID string, isAdmin bool) (DeleteOutcome, error)
}

// authorizedToDelete is the owner-or-admin predicate shared by every
// implementation.
func authorizedToDelete(authorID, requesterID string, isAdmin bool) bool {
	return isAdmin || authorID == requesterID
}
