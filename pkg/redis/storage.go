package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a key/value blob store on top of Redis.
// Every key is namespaced with a prefix.
type Storage struct {
	db     redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// StorageOption configures Storage.
type StorageOption func(*Storage)

// WithKeyPrefix sets the namespace prepended to every key.
func WithKeyPrefix(prefix string) StorageOption {
	return func(s *Storage) {
		s.prefix = prefix
	}
}

// WithTTL sets an expiration for written values. Zero means no expiration.
func WithTTL(ttl time.Duration) StorageOption {
	return func(s *Storage) {
		s.ttl = ttl
	}
}

// NewStorage creates a Redis storage wrapper.
func NewStorage(redisClient redis.UniversalClient, opts ...StorageOption) *Storage {
	s := &Storage{db: redisClient}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStorageWithConfig creates a Redis storage using the key prefix from cfg.
func NewStorageWithConfig(redisClient redis.UniversalClient, cfg Config, opts ...StorageOption) *Storage {
	return NewStorage(redisClient, append([]StorageOption{WithKeyPrefix(cfg.KeyPrefix)}, opts...)...)
}

// Read returns the value stored under key, or (nil, nil) when it is missing.
func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStorageFailed, err)
	}
	return val, nil
}

// Write replaces the value stored under key. SET is atomic, so readers never
// observe a partially written value.
func (s *Storage) Write(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.db.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		return errors.Join(ErrStorageFailed, err)
	}
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.db.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrStorageFailed, err)
	}
	return nil
}

// Ping checks the connection for readiness probes.
func (s *Storage) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

// Close terminates the Redis connection.
func (s *Storage) Close() error {
	return s.db.Close()
}
