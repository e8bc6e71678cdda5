package store

import (
	"context"
	"time"
)

// Like marks that a user liked a resource. Presence of the row means
// "liked"; there is no soft-delete state.
type Like struct {
	ResourceID string    `json:"resourceId"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LikeStatus is the like view for one resource, optionally scoped to a
// requesting user.
type LikeStatus struct {
	IsLiked   bool  `json:"isLiked"`
	LikeCount int64 `json:"likeCount"`
}

// LikeStore is the like half of the engagement store.
type LikeStore interface {
	// Toggle flips the user's like for the resource and returns the
	// resulting status. The flip is atomic per (resource_id, user_id).
	Toggle(ctx context.Context, resourceID, userID string) (LikeStatus, error)

	// Status returns the like count and, when userID is non-empty,
	// whether that user currently likes the resource.
	Status(ctx context.Context, resourceID, userID string) (LikeStatus, error)
}
