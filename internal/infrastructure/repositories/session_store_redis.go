package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mrozdorothy3-debug/swed/domain"
)

// RedisSessionStore implements domain.SessionStore against a Redis key.
// Used when the client runs on shared terminals and the session blob must
// survive the local process.
type RedisSessionStore struct {
	client *redis.Client
	key    string
}

// NewRedisSessionStore creates a Redis-backed session store under the given
// storage key.
func NewRedisSessionStore(client *redis.Client, key string) *RedisSessionStore {
	return &RedisSessionStore{client: client, key: key}
}

// Load implements domain.SessionStore
func (s *RedisSessionStore) Load() (*domain.Session, error) {
	data, err := s.client.Get(context.Background(), s.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, domain.ErrSessionCorrupted
	}
	return &session, nil
}

// Save implements domain.SessionStore
func (s *RedisSessionStore) Save(session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.client.Set(context.Background(), s.key, data, 0).Err()
}

var _ domain.SessionStore = (*RedisSessionStore)(nil)
