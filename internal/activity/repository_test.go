package activity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryRepositoryListRecentNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for i, kind := range []string{KindSignIn, KindWithdrawalRequested, KindSignOut} {
		err := repo.Record(ctx, Event{
			ID:        uuid.NewString(),
			SessionID: "sess-1",
			Kind:      kind,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	events, err := repo.ListRecent(ctx, "sess-1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != KindSignOut || events[1].Kind != KindWithdrawalRequested {
		t.Fatalf("unexpected ordering: %s, %s", events[0].Kind, events[1].Kind)
	}
}

func TestMemoryRepositoryScopesBySession(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Record(ctx, Event{ID: uuid.NewString(), SessionID: "sess-1", Kind: KindSignIn}); err != nil {
		t.Fatalf("record: %v", err)
	}
	events, err := repo.ListRecent(ctx, "sess-2", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events for other session, got %d", len(events))
	}
}
