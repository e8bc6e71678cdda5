package store

import (
	"context"
	"testing"
)

func TestInMemoryLikeStore_Toggle(t *testing.T) {
	s := NewInMemoryLikeStore()
	ctx := context.Background()

	st, err := s.Toggle(ctx, "res-1", "user-a")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !st.IsLiked || st.LikeCount != 1 {
		t.Fatalf("expected liked with count 1, got %+v", st)
	}

	st, _ = s.Toggle(ctx, "res-1", "user-a")
	if st.IsLiked || st.LikeCount != 0 {
		t.Fatalf("expected unliked with count 0, got %+v", st)
	}
}

func TestInMemoryLikeStore_CountAcrossUsers(t *testing.T) {
	s := NewInMemoryLikeStore()
	ctx := context.Background()

	_, _ = s.Toggle(ctx, "res-1", "user-a")
	st, _ := s.Toggle(ctx, "res-1", "user-b")
	if st.LikeCount != 2 {
		t.Fatalf("expected count 2, got %d", st.LikeCount)
	}

	status, err := s.Status(ctx, "res-1", "user-a")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.IsLiked || status.LikeCount != 2 {
		t.Fatalf("expected user-a liked with count 2, got %+v", status)
	}
}

func TestInMemoryLikeStore_StatusAnonymous(t *testing.T) {
	s := NewInMemoryLikeStore()
	ctx := context.Background()

	_, _ = s.Toggle(ctx, "res-1", "user-a")
	status, _ := s.Status(ctx, "res-1", "")
	if status.IsLiked {
		t.Fatal("anonymous status must not report liked")
	}
	if status.LikeCount != 1 {
		t.Fatalf("expected count 1, got %d", status.LikeCount)
	}
}

func TestLikeStoreInterface(t *testing.T) {
	var _ LikeStore = (*InMemoryLikeStore)(nil)
	var _ LikeStore = (*PostgresLikeStore)(nil)
}
