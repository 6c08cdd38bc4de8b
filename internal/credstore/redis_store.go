package credstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces all session keys in redis.
const keyPrefix = "session:v1:"

// RedisStore persists credential fields in redis, scoped to one session
// identifier. State survives process restarts for as long as the TTL allows.
type RedisStore struct {
	cache     *redis.Client
	sessionID string
	ttl       time.Duration
}

// NewRedisStore binds a store to the given session identifier.
func NewRedisStore(cache *redis.Client, sessionID string, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, sessionID: sessionID, ttl: ttl}
}

func (s *RedisStore) key(field Field) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, s.sessionID, field)
}

// Persist writes each non-empty trimmed field. Absent or blank fields leave
// existing values untouched.
func (s *RedisStore) Persist(ctx context.Context, cred *Credential) error {
	if cred == nil || s.cache == nil {
		return nil
	}
	for field, value := range fields(cred) {
		if value == "" {
			continue
		}
		if err := s.cache.Set(ctx, s.key(field), value, s.ttl).Err(); err != nil {
			return fmt.Errorf("persist %s: %w", field, err)
		}
	}
	return nil
}

// Read returns the stored field value. Misses and storage failures both read
// as "" so callers see "no credential" instead of an error.
func (s *RedisStore) Read(ctx context.Context, field Field) string {
	if s.cache == nil {
		return ""
	}
	value, err := s.cache.Get(ctx, s.key(field)).Result()
	if err != nil {
		return ""
	}
	return value
}

// Clear removes all credential fields for the session.
func (s *RedisStore) Clear(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	keys := make([]string, 0, len(allFields))
	for _, field := range allFields {
		keys = append(keys, s.key(field))
	}
	return s.cache.Del(ctx, keys...).Err()
}
