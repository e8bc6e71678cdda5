package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/studyshare/services/engagement/internal/store"
)

func newRatings() (*Ratings, *store.InMemoryRatingStore) {
	st := store.NewInMemoryRatingStore()
	return NewRatings(st, nil, nil, nil), st
}

func TestRatings_SubmitAndGet(t *testing.T) {
	svc, _ := newRatings()
	ctx := context.Background()

	r, err := svc.Submit(ctx, "res-1", "user-a", 8, 6, 7)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if r.Difficulty != 8 || r.Quality != 6 || r.Detail != 7 {
		t.Fatalf("view does not reflect submitted values: %+v", r)
	}

	got, ok, err := svc.Get(ctx, "res-1", "user-a")
	if err != nil || !ok {
		t.Fatalf("get after submit (ok=%v, err=%v)", ok, err)
	}
	if got.ID != r.ID {
		t.Fatalf("expected same rating row, got %q vs %q", got.ID, r.ID)
	}
}

func TestRatings_SubmitOutOfRange(t *testing.T) {
	svc, st := newRatings()
	ctx := context.Background()

	cases := []struct{ d, q, det int }{
		{0, 5, 5},
		{11, 5, 5},
		{5, 0, 5},
		{5, 11, 5},
		{5, 5, 0},
		{5, 5, 11},
	}
	for _, c := range cases {
		if _, err := svc.Submit(ctx, "res-1", "user-a", c.d, c.q, c.det); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("submit(%d,%d,%d): expected ErrOutOfRange, got %v", c.d, c.q, c.det, err)
		}
	}

	// No row and no statistics change happened.
	if _, ok, _ := st.Get(ctx, "res-1", "user-a"); ok {
		t.Fatal("rejected submit must not store a row")
	}
	stats, _ := st.Summary(ctx, "res-1")
	if stats.RatingCount != 0 {
		t.Fatalf("rejected submit must not touch statistics: %+v", stats)
	}
}

func TestRatings_BoundaryValuesAccepted(t *testing.T) {
	svc, _ := newRatings()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "res-1", "user-a", 1, 1, 1); err != nil {
		t.Fatalf("submit minimum: %v", err)
	}
	if _, err := svc.Submit(ctx, "res-1", "user-b", 10, 10, 10); err != nil {
		t.Fatalf("submit maximum: %v", err)
	}
}

func TestRatings_GetAbsent(t *testing.T) {
	svc, _ := newRatings()
	_, ok, err := svc.Get(context.Background(), "res-1", "nobody")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected absence")
	}
}

func TestRatings_DeleteThenSummary(t *testing.T) {
	svc, _ := newRatings()
	ctx := context.Background()

	_, _ = svc.Submit(ctx, "res-1", "user-a", 8, 6, 7)
	_, _ = svc.Submit(ctx, "res-1", "user-b", 4, 4, 5)

	if err := svc.Delete(ctx, "res-1", "user-a"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	stats, err := svc.Summary(ctx, "res-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if stats.RatingCount != 1 {
		t.Fatalf("expected count 1, got %d", stats.RatingCount)
	}
	if stats.AvgQuality == nil || *stats.AvgQuality != 4.0 {
		t.Fatalf("expected avg quality 4.0, got %v", stats.AvgQuality)
	}
}

func TestRatings_DeleteAbsentIsNoop(t *testing.T) {
	svc, _ := newRatings()
	if err := svc.Delete(context.Background(), "res-1", "user-a"); err != nil {
		t.Fatalf("expected no-op delete to succeed: %v", err)
	}
}

func TestRatings_SummaryNeverRated(t *testing.T) {
	svc, _ := newRatings()
	stats, err := svc.Summary(context.Background(), "res-zzz")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if stats.RatingCount != 0 || stats.AvgDifficulty != nil {
		t.Fatalf("expected zero-count view, got %+v", stats)
	}
}

func newComments() (*Comments, *store.InMemoryCommentStore) {
	st := store.NewInMemoryCommentStore()
	return NewComments(st, nil, nil), st
}

func TestComments_CreateValidation(t *testing.T) {
	svc, _ := newComments()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "res-1", "user-a", "   "); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if _, err := svc.Create(ctx, "res-1", "user-a", strings.Repeat("x", maxCommentLength+1)); !errors.Is(err, ErrContentTooLong) {
		t.Fatalf("expected ErrContentTooLong, got %v", err)
	}

	c, err := svc.Create(ctx, "res-1", "user-a", "  solid notes  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Content != "solid notes" {
		t.Fatalf("expected trimmed content, got %q", c.Content)
	}
}

func TestComments_DeleteAuthorizationMatrix(t *testing.T) {
	svc, st := newComments()
	ctx := context.Background()

	c, _ := svc.Create(ctx, "res-1", "author", "hello")

	outcome, err := svc.Delete(ctx, c.ID, "stranger", false)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if outcome != store.OutcomeForbidden {
		t.Fatalf("expected Forbidden for stranger, got %v", outcome)
	}
	if _, ok, _ := st.Get(ctx, c.ID); !ok {
		t.Fatal("comment must survive a forbidden delete")
	}

	outcome, _ = svc.Delete(ctx, c.ID, "moderator", true)
	if outcome != store.OutcomeDeleted {
		t.Fatalf("expected Deleted for admin, got %v", outcome)
	}

	outcome, _ = svc.Delete(ctx, c.ID, "author", false)
	if outcome != store.OutcomeNotFound {
		t.Fatalf("expected NotFound after deletion, got %v", outcome)
	}
}

func TestComments_DeleteByAuthor(t *testing.T) {
	svc, _ := newComments()
	ctx := context.Background()

	c, _ := svc.Create(ctx, "res-1", "author", "hello")
	outcome, err := svc.Delete(ctx, c.ID, "author", false)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if outcome != store.OutcomeDeleted {
		t.Fatalf("expected Deleted for author, got %v", outcome)
	}
}

func TestLikes_ToggleAndStatus(t *testing.T) {
	svc := NewLikes(store.NewInMemoryLikeStore(), nil, nil)
	ctx := context.Background()

	st, err := svc.Toggle(ctx, "res-1", "user-a")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !st.IsLiked || st.LikeCount != 1 {
		t.Fatalf("expected liked count 1, got %+v", st)
	}

	status, _ := svc.Status(ctx, "res-1", "user-b")
	if status.IsLiked {
		t.Fatal("user-b has not liked")
	}
	if status.LikeCount != 1 {
		t.Fatalf("expected count 1, got %d", status.LikeCount)
	}
}
