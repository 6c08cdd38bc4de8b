package notify

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisNotifierPushDrain(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	n := NewRedisNotifier(cache)
	ctx := context.Background()

	if err := n.Push(ctx, "sess-1", Message{Kind: KindError, Text: "Account not found."}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := n.Push(ctx, "sess-1", Message{Kind: KindInfo, Text: "Withdrawal submitted."}); err != nil {
		t.Fatalf("push: %v", err)
	}

	messages, err := n.Drain(ctx, "sess-1")
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Text != "Account not found." || messages[1].Kind != KindInfo {
		t.Fatalf("unexpected messages: %+v", messages)
	}

	// Drained queue is empty.
	messages, err = n.Drain(ctx, "sess-1")
	if err != nil {
		t.Fatalf("second drain: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected drained queue, got %d messages", len(messages))
	}
}

func TestRedisNotifierScopesBySession(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	n := NewRedisNotifier(cache)
	ctx := context.Background()

	if err := n.Push(ctx, "sess-1", Message{Kind: KindError, Text: "x"}); err != nil {
		t.Fatalf("push: %v", err)
	}
	messages, err := n.Drain(ctx, "sess-2")
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no cross-session messages, got %d", len(messages))
	}
}
