package twofa_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pki2fa/pkg/seed"
	"github.com/dmitrymomot/pki2fa/pkg/totp"
	"github.com/dmitrymomot/pki2fa/svc/twofa"
)

const testSeedHex = "3132333435363738393031323334353637383930313233343536373839303132"

var (
	keyOnce sync.Once
	testKey *rsa.PrivateKey
)

func privateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKey = k
	})
	return testKey
}

func encryptSeed(t *testing.T, key *rsa.PrivateKey, plaintext string) string {
	t.Helper()
	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, &key.PublicKey, []byte(plaintext), nil)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(ct)
}

type failingStore struct {
	getErr error
	putErr error
	gets   int
}

func (f *failingStore) Get(context.Context) (seed.Seed, error) {
	f.gets++
	return seed.Seed{}, f.getErr
}

func (f *failingStore) Put(context.Context, seed.Seed) error { return f.putErr }

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestNewService(t *testing.T) {
	t.Parallel()

	_, err := twofa.NewService(nil, privateKey(t))
	assert.ErrorIs(t, err, twofa.ErrNilStore)

	_, err = twofa.NewService(seed.NewMemoryStore(), nil)
	assert.ErrorIs(t, err, twofa.ErrNilKey)
}

func TestDecrypt(t *testing.T) {
	t.Parallel()
	key := privateKey(t)

	t.Run("stores valid seed", func(t *testing.T) {
		t.Parallel()
		store := seed.NewMemoryStore()
		svc, err := twofa.NewService(store, key)
		require.NoError(t, err)

		require.NoError(t, svc.Decrypt(context.Background(), encryptSeed(t, key, testSeedHex+"\n")))

		got, err := store.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testSeedHex, got.String())
	})

	tests := []struct {
		name       string
		ciphertext func(t *testing.T) string
	}{
		{"not base64", func(*testing.T) string { return "***" }},
		{"wrong key", func(t *testing.T) string {
			other, err := rsa.GenerateKey(rand.Reader, 2048)
			require.NoError(t, err)
			return encryptSeed(t, other, testSeedHex)
		}},
		{"short seed", func(t *testing.T) string { return encryptSeed(t, key, "abc") }},
		{"uppercase seed", func(t *testing.T) string {
			return encryptSeed(t, key, "3132333435363738393031323334353637383930313233343536373839303AAA")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := seed.NewMemoryStore()
			svc, err := twofa.NewService(store, key)
			require.NoError(t, err)

			err = svc.Decrypt(context.Background(), tt.ciphertext(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, twofa.ErrDecryption)
			assert.Equal(t, twofa.KindCrypto, twofa.Kind(err))

			_, err = store.Get(context.Background())
			assert.ErrorIs(t, err, seed.ErrNotFound, "failed decrypt must not store anything")
		})
	}

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		svc, err := twofa.NewService(&failingStore{putErr: seed.ErrStoreFailed}, key)
		require.NoError(t, err)

		err = svc.Decrypt(context.Background(), encryptSeed(t, key, testSeedHex))
		assert.ErrorIs(t, err, twofa.ErrStore)
		assert.NotErrorIs(t, err, twofa.ErrDecryption)
		assert.Equal(t, twofa.KindInternal, twofa.Kind(err))
	})
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	key := privateKey(t)
	now := time.Unix(59, 0).UTC()

	t.Run("no seed", func(t *testing.T) {
		t.Parallel()
		svc, err := twofa.NewService(seed.NewMemoryStore(), key)
		require.NoError(t, err)

		_, err = svc.Generate(context.Background())
		assert.ErrorIs(t, err, seed.ErrNotFound)
		assert.Equal(t, twofa.KindSeedState, twofa.Kind(err))
	})

	t.Run("code for current period", func(t *testing.T) {
		t.Parallel()
		store := seed.NewMemoryStore()
		sd, err := seed.Parse(testSeedHex)
		require.NoError(t, err)
		require.NoError(t, store.Put(context.Background(), sd))

		svc, err := twofa.NewService(store, key, twofa.WithClock(fixedClock(now)))
		require.NoError(t, err)

		code, err := svc.Generate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "599872", code.Code)
		assert.Equal(t, 1, code.ValidFor)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		svc, err := twofa.NewService(&failingStore{getErr: errors.New("connection refused")}, key)
		require.NoError(t, err)

		_, err = svc.Generate(context.Background())
		assert.ErrorIs(t, err, twofa.ErrStore)
		assert.Equal(t, twofa.KindInternal, twofa.Kind(err))
	})

	t.Run("pre-epoch clock", func(t *testing.T) {
		t.Parallel()
		store := seed.NewMemoryStore()
		sd, err := seed.Parse(testSeedHex)
		require.NoError(t, err)
		require.NoError(t, store.Put(context.Background(), sd))

		svc, err := twofa.NewService(store, key, twofa.WithClock(fixedClock(time.Unix(-100, 0))))
		require.NoError(t, err)

		_, err = svc.Generate(context.Background())
		assert.ErrorIs(t, err, twofa.ErrGeneration)
		assert.Equal(t, twofa.KindInternal, twofa.Kind(err))
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()
	key := privateKey(t)
	now := time.Unix(1_700_000_000, 0).UTC()

	sd, err := seed.Parse(testSeedHex)
	require.NoError(t, err)
	store := seed.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), sd))

	current, err := totp.Generate(sd, now)
	require.NoError(t, err)
	previous, err := totp.Generate(sd, now.Add(-30*time.Second))
	require.NoError(t, err)
	tooOld, err := totp.Generate(sd, now.Add(-90*time.Second))
	require.NoError(t, err)

	svc, err := twofa.NewService(store, key, twofa.WithClock(fixedClock(now)))
	require.NoError(t, err)

	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{"current", current, true},
		{"padded", "  " + current + " ", true},
		{"previous period", previous, true},
		{"outside window", tooOld, false},
		{"letters", "abcdef", false},
		{"too short", "12345", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := svc.Verify(context.Background(), tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, ok)
		})
	}

	t.Run("zero window", func(t *testing.T) {
		t.Parallel()
		strict, err := twofa.NewService(store, key, twofa.WithClock(fixedClock(now)), twofa.WithWindow(0))
		require.NoError(t, err)

		ok, err := strict.Verify(context.Background(), current)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestVerifyMissingCodeSkipsStore(t *testing.T) {
	t.Parallel()
	store := &failingStore{getErr: seed.ErrNotFound}
	svc, err := twofa.NewService(store, privateKey(t))
	require.NoError(t, err)

	for _, code := range []string{"", "   ", "\t\n"} {
		_, err := svc.Verify(context.Background(), code)
		assert.ErrorIs(t, err, twofa.ErrMissingCode)
		assert.Equal(t, twofa.KindInput, twofa.Kind(err))
	}
	assert.Zero(t, store.gets)

	_, err = svc.Verify(context.Background(), "123456")
	assert.ErrorIs(t, err, seed.ErrNotFound)
	assert.Equal(t, 1, store.gets)
}

func TestProbe(t *testing.T) {
	t.Parallel()
	key := privateKey(t)

	svc, err := twofa.NewService(seed.NewMemoryStore(), key)
	require.NoError(t, err)
	assert.NoError(t, svc.Probe(context.Background()), "empty store is healthy")

	svc, err = twofa.NewService(&failingStore{getErr: errors.New("down")}, key)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Probe(context.Background()), twofa.ErrStore)
}

func TestKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "none", twofa.Kind(nil).String())
	assert.Equal(t, "input", twofa.KindInput.String())
	assert.Equal(t, "seed_state", twofa.KindSeedState.String())
	assert.Equal(t, "crypto", twofa.KindCrypto.String())
	assert.Equal(t, "internal", twofa.KindInternal.String())
}
