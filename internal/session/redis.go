// Package session stores authenticated principals keyed by opaque tokens.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/promedhq/promed/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when a token is unknown or expired.
var ErrNoSession = errors.New("session: no such session")

// RedisStore manages session principals in Redis with per-key TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(host, port string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *RedisStore) Put(ctx context.Context, token string, principal *domain.Principal, ttl time.Duration) error {
	data, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("failed to marshal principal: %w", err)
	}
	return s.client.Set(ctx, sessionKey(token), data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (*domain.Principal, error) {
	result := s.client.Get(ctx, sessionKey(token))
	if errors.Is(result.Err(), redis.Nil) {
		return nil, ErrNoSession
	}
	if result.Err() != nil {
		return nil, result.Err()
	}

	var principal domain.Principal
	if err := json.Unmarshal([]byte(result.Val()), &principal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal principal: %w", err)
	}
	return &principal, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
