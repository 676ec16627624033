package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mboard/internal/domain/entity"
	"mboard/internal/domain/repository"
)

// StateStorageImpl keeps board state in Redis string keys
type StateStorageImpl struct {
	client    *redis.Client
	keyPrefix string
}

var _ repository.StateStorage = (*StateStorageImpl)(nil)

// New connects to Redis and verifies the connection with PING
func New(ctx context.Context, addr, password string, db int, keyPrefix string) (*StateStorageImpl, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping %s: %v", entity.ErrStorageUnavailable, addr, err)
	}

	return NewWithClient(client, keyPrefix), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, keyPrefix string) *StateStorageImpl {
	return &StateStorageImpl{client: client, keyPrefix: keyPrefix}
}

// Close releases the underlying client
func (s *StateStorageImpl) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("redis.StateStorage.Close: %w", err)
	}
	return nil
}

// Get returns the value stored under key
func (s *StateStorageImpl) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis.StateStorage.Get: %w", err)
	}
	return value, true, nil
}

// Set stores value under key without expiry
func (s *StateStorageImpl) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis.StateStorage.Set: %w", err)
	}
	return nil
}
