package seed

import (
	"context"
	"errors"

	"github.com/dmitrymomot/pki2fa/pkg/secrets"
)

// DefaultKey is the object name used when none is configured.
const DefaultKey = "seed.txt"

// sealInfo separates seed sealing keys from any other use of the master key.
const sealInfo = "pki2fa-seed-v1"

// Blob is a single-object key/value backend.
// Read must return (nil, nil) when the object does not exist, and Write must
// replace the whole object so that concurrent readers see either the old or
// the new value.
type Blob interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}

// BlobStore persists the seed's hex text under one key of a Blob backend.
type BlobStore struct {
	blob      Blob
	key       string
	masterKey []byte
}

// BlobStoreOption configures a BlobStore.
type BlobStoreOption func(*BlobStore)

// WithKey sets the object name the seed is stored under.
func WithKey(key string) BlobStoreOption {
	return func(s *BlobStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithEncryptionKey seals the stored value with AES-256-GCM using a key
// derived from masterKey. Without it the object holds the plain hex seed.
func WithEncryptionKey(masterKey []byte) BlobStoreOption {
	return func(s *BlobStore) {
		s.masterKey = masterKey
	}
}

// NewBlobStore creates a Store on top of the given backend.
func NewBlobStore(blob Blob, opts ...BlobStoreOption) (*BlobStore, error) {
	if blob == nil {
		return nil, ErrInvalidConfig
	}
	s := &BlobStore{blob: blob, key: DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	if s.masterKey != nil {
		if err := secrets.ValidateKey(s.masterKey); err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
	}
	return s, nil
}

func (s *BlobStore) Get(ctx context.Context) (Seed, error) {
	data, err := s.blob.Read(ctx, s.key)
	if err != nil {
		return Seed{}, errors.Join(ErrStoreFailed, err)
	}
	if len(data) == 0 {
		return Seed{}, ErrNotFound
	}

	if s.masterKey != nil {
		plain, err := secrets.Decrypt(s.masterKey, sealInfo, data)
		if err != nil {
			return Seed{}, errors.Join(ErrStoreFailed, ErrCorruptSeed)
		}
		data = plain
	}

	sd, err := Parse(string(data))
	if err != nil {
		return Seed{}, errors.Join(ErrStoreFailed, ErrCorruptSeed)
	}
	return sd, nil
}

func (s *BlobStore) Put(ctx context.Context, sd Seed) error {
	if sd.IsZero() {
		return ErrZeroSeed
	}

	data := []byte(sd.String())
	if s.masterKey != nil {
		sealed, err := secrets.Encrypt(s.masterKey, sealInfo, data)
		if err != nil {
			return errors.Join(ErrStoreFailed, err)
		}
		data = sealed
	}

	if err := s.blob.Write(ctx, s.key, data); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
