package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message kinds understood by the dashboard toast renderer.
const (
	KindError = "error"
	KindInfo  = "info"
)

// Message is one toast-style notification queued for a session.
type Message struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Notifier queues user-facing notifications per session. Suppression is the
// caller's job: a suppressed error code must never be pushed here.
type Notifier interface {
	Push(ctx context.Context, sessionID string, msg Message) error
	Drain(ctx context.Context, sessionID string) ([]Message, error)
}

const (
	toastPrefix = "toast:v1:"
	toastTTL    = 10 * time.Minute
)

// RedisNotifier queues toasts in a per-session redis list so they survive
// page reloads until the SPA drains them.
type RedisNotifier struct {
	cache *redis.Client
}

// NewRedisNotifier builds a redis-backed notifier.
func NewRedisNotifier(cache *redis.Client) *RedisNotifier {
	return &RedisNotifier{cache: cache}
}

func toastKey(sessionID string) string {
	return toastPrefix + sessionID
}

// Push appends the message to the session's toast queue.
func (n *RedisNotifier) Push(ctx context.Context, sessionID string, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := toastKey(sessionID)
	if err := n.cache.RPush(ctx, key, payload).Err(); err != nil {
		return err
	}
	return n.cache.Expire(ctx, key, toastTTL).Err()
}

// Drain returns all queued messages in push order and empties the queue.
func (n *RedisNotifier) Drain(ctx context.Context, sessionID string) ([]Message, error) {
	key := toastKey(sessionID)
	raw, err := n.cache.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if err := n.cache.Del(ctx, key).Err(); err != nil {
		return nil, err
	}
	messages := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// LoggerNotifier is a stub that writes notifications to the logger. Used when
// redis is unavailable in development.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Push writes the message to the structured logger.
func (n *LoggerNotifier) Push(_ context.Context, sessionID string, msg Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("toast", "session_id", sessionID, "kind", msg.Kind, "text", msg.Text)
	return nil
}

// Drain returns nothing; logged toasts are not replayable.
func (n *LoggerNotifier) Drain(context.Context, string) ([]Message, error) {
	return nil, nil
}
