// Package seedstore builds a seed.Store from environment configuration.
//
// Supported backends are "file" (default, a single file in SEED_DIR), "s3",
// "redis" and "memory". Binaries share this package so the server, the code
// logger and the enrollment helper always read the same seed.
package seedstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/pki2fa/pkg/file"
	"github.com/dmitrymomot/pki2fa/pkg/redis"
	"github.com/dmitrymomot/pki2fa/pkg/secrets"
	"github.com/dmitrymomot/pki2fa/pkg/seed"
)

const (
	BackendFile   = "file"
	BackendS3     = "s3"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Backend       string `env:"SEED_BACKEND" envDefault:"file"` // Backend is one of file, s3, redis or memory.
	Dir           string `env:"SEED_DIR" envDefault:"/data"`    // Dir holds the seed file for the file backend.
	Key           string `env:"SEED_KEY" envDefault:"seed.txt"` // Key is the file name, object key or redis key of the seed.
	EncryptionKey string `env:"SEED_ENCRYPTION_KEY"`            // EncryptionKey is an optional base64 AES-256 master key for sealing the seed at rest.

	S3    file.S3Config `envPrefix:"SEED_S3_"`
	Redis redis.Config
}

// Backend is an opened seed store together with its lifecycle hooks.
type Backend struct {
	seed.Store

	name  string
	ping  func(ctx context.Context) error
	close func() error
}

// Name returns the configured backend name.
func (b *Backend) Name() string { return b.name }

// Ping checks connectivity of network backends. Local backends always succeed.
func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	if err := b.ping(ctx); err != nil {
		return errors.Join(ErrBackendUnavailable, err)
	}
	return nil
}

// Close releases backend connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open creates the backend described by cfg.
func Open(ctx context.Context, cfg Config) (*Backend, error) {
	storeOpts := []seed.BlobStoreOption{}
	if cfg.Key != "" {
		storeOpts = append(storeOpts, seed.WithKey(cfg.Key))
	}
	if cfg.EncryptionKey != "" {
		key, err := secrets.DecodeKey(cfg.EncryptionKey)
		if err != nil {
			return nil, errors.Join(ErrInvalidEncryptionKey, err)
		}
		storeOpts = append(storeOpts, seed.WithEncryptionKey(key))
	}

	name := strings.ToLower(strings.TrimSpace(cfg.Backend))
	b := &Backend{name: name}

	var blob seed.Blob
	switch name {
	case BackendMemory:
		b.Store = seed.NewMemoryStore()
		return b, nil

	case BackendFile, "":
		b.name = BackendFile
		local, err := file.NewLocalStorage(cfg.Dir)
		if err != nil {
			return nil, err
		}
		blob = local

	case BackendS3:
		s3, err := file.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		blob = s3

	case BackendRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		rs := redis.NewStorageWithConfig(client, cfg.Redis)
		b.ping = rs.Ping
		b.close = rs.Close
		blob = rs

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	store, err := seed.NewBlobStore(blob, storeOpts...)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	b.Store = store

	return b, nil
}
