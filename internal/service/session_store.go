package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore records which session ids are live. A signed cookie alone cannot be revoked,
// so every request checks the store too.
type SessionStore interface {
	Save(ctx context.Context, userID uint, sessionID string, ttl time.Duration) error
	Exists(ctx context.Context, userID uint, sessionID string) (bool, error)
	Delete(ctx context.Context, userID uint, sessionID string) error
	DeleteAll(ctx context.Context, userID uint) error
}

func sessionKey(userID uint, sessionID string) string {
	return fmt.Sprintf("%s%d:%s", sessionKeyPrefix, userID, sessionID)
}

type redisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Save(ctx context.Context, userID uint, sessionID string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(userID, sessionID), "valid", ttl).Err()
}

func (s *redisSessionStore) Exists(ctx context.Context, userID uint, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(userID, sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, userID uint, sessionID string) error {
	return s.client.Del(ctx, sessionKey(userID, sessionID)).Err()
}

func (s *redisSessionStore) DeleteAll(ctx context.Context, userID uint) error {
	pattern := fmt.Sprintf("%s%d:*", sessionKeyPrefix, userID)

	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// memorySessionStore keeps sessions in process; sessions do not survive a restart
// and are not shared between instances.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (s *memorySessionStore) Save(_ context.Context, userID uint, sessionID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey(userID, sessionID)] = s.now().Add(ttl)
	return nil
}

func (s *memorySessionStore) Exists(_ context.Context, userID uint, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(userID, sessionID)
	expiresAt, ok := s.sessions[key]
	if !ok {
		return false, nil
	}
	if s.now().After(expiresAt) {
		delete(s.sessions, key)
		return false, nil
	}
	return true, nil
}

func (s *memorySessionStore) Delete(_ context.Context, userID uint, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey(userID, sessionID))
	return nil
}

func (s *memorySessionStore) DeleteAll(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := fmt.Sprintf("%s%d:", sessionKeyPrefix, userID)
	for key := range s.sessions {
		if strings.HasPrefix(key, prefix) {
			delete(s.sessions, key)
		}
	}
	return nil
}
