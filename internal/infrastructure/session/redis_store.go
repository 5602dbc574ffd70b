// Package session provides Redis-backed bearer-session storage.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

type sessionData struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// RedisStore stores sessions under opaque random IDs with a per-session
// TTL. Redis expiry is the only logout mechanism besides explicit Revoke.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", domain.Validationf("session requires a user id")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	payload, err := json.Marshal(sessionData{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal session data: %w", err)
	}

	sessionID := uuid.NewString()
	if err := s.client.Set(ctx, s.key(sessionID), payload, ttl).Err(); err != nil {
		return "", domain.WrapError(domain.ErrRemoteService, "save session", err)
	}
	return sessionID, nil
}

func (s *RedisStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return "", domain.WrapError(domain.ErrAuthentication, "lookup session",
			fmt.Errorf("session not found or expired"))
	}
	if err != nil {
		return "", domain.WrapError(domain.ErrRemoteService, "lookup session", err)
	}

	var data sessionData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return "", domain.WrapError(domain.ErrAuthentication, "lookup session", err)
	}
	return data.UserID, nil
}

func (s *RedisStore) Revoke(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return domain.WrapError(domain.ErrRemoteService, "revoke session", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
