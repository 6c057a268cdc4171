package totp_test

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp"
	pqtotp "github.com/pquerna/otp/totp"

	"github.com/dmitrymomot/pki2fa/pkg/seed"
	"github.com/dmitrymomot/pki2fa/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSeed(t *testing.T, s string) seed.Seed {
	t.Helper()
	sd, err := seed.Parse(s)
	require.NoError(t, err)
	return sd
}

func randomSeed(t *testing.T) seed.Seed {
	t.Helper()
	raw := make([]byte, 32)
	_, err := rand.Read(raw)
	require.NoError(t, err)
	return mustSeed(t, hex.EncodeToString(raw))
}

func TestGenerateHOTP_RFC4226Vectors(t *testing.T) {
	t.Parallel()
	key := []byte("12345678901234567890")
	want := []int{755224, 287082, 359152, 969429, 338314, 254676, 287922, 162583, 399871, 520489}

	for counter, code := range want {
		assert.Equal(t, code, totp.GenerateHOTP(key, uint64(counter), 6), "counter %d", counter)
	}
	assert.Equal(t, 94287082, totp.GenerateHOTP(key, 1, 8))
}

func TestGenerate_KnownValues(t *testing.T) {
	t.Parallel()
	zeros := mustSeed(t, strings.Repeat("0", 64))
	pattern := mustSeed(t, strings.Repeat("0123456789abcdef", 4))

	tests := []struct {
		unix    int64
		zeros   string
		pattern string
	}{
		{0, "328482", "149823"},
		{59, "812658", "997502"},
		{1111111109, "743009", "035694"},
		{1234567890, "712049", "982452"},
		{2000000000, "543824", "849788"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("t=%d", tt.unix), func(t *testing.T) {
			t.Parallel()
			at := time.Unix(tt.unix, 0)

			got, err := totp.Generate(zeros, at)
			require.NoError(t, err)
			assert.Equal(t, tt.zeros, got)

			got, err = totp.Generate(pattern, at)
			require.NoError(t, err)
			assert.Equal(t, tt.pattern, got)
			assert.Len(t, got, 6)
		})
	}
}

func TestGenerate_MatchesIndependentImplementation(t *testing.T) {
	t.Parallel()
	s := randomSeed(t)
	secret := base32.StdEncoding.EncodeToString(s.Bytes())

	for _, unix := range []int64{30, 1_700_000_000, 1_700_000_029, 1_700_000_030, 4_102_444_800} {
		at := time.Unix(unix, 0).UTC()
		want, err := pqtotp.GenerateCodeCustom(secret, at, pqtotp.ValidateOpts{
			Period:    30,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		})
		require.NoError(t, err)

		got, err := totp.Generate(s, at)
		require.NoError(t, err)
		assert.Equal(t, want, got, "unix %d", unix)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()
	s := randomSeed(t)
	at := time.Unix(1_700_000_123, 0)

	a, err := totp.Generate(s, at)
	require.NoError(t, err)
	b, err := totp.Generate(s, at)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_Periodicity(t *testing.T) {
	t.Parallel()
	s := randomSeed(t)
	windowStart := int64(1_700_000_010) // multiple of 30

	first, err := totp.Generate(s, time.Unix(windowStart, 0))
	require.NoError(t, err)
	for offset := int64(1); offset < 30; offset++ {
		got, err := totp.Generate(s, time.Unix(windowStart+offset, 0))
		require.NoError(t, err)
		assert.Equal(t, first, got, "offset %d", offset)
	}

	// across windows the codes should not all collide
	seen := map[string]struct{}{}
	for w := range int64(10) {
		got, err := totp.Generate(s, time.Unix(windowStart+w*30, 0))
		require.NoError(t, err)
		seen[got] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()
	_, err := totp.Generate(seed.Seed{}, time.Now())
	assert.ErrorIs(t, err, totp.ErrInvalidSeed)

	_, err = totp.Generate(randomSeed(t), time.Unix(-1, 0))
	assert.ErrorIs(t, err, totp.ErrInvalidTime)
}

func TestVerify_WindowTolerance(t *testing.T) {
	t.Parallel()
	s := randomSeed(t)
	now := time.Unix(1_700_000_015, 0)

	code := func(at time.Time) string {
		c, err := totp.Generate(s, at)
		require.NoError(t, err)
		return c
	}

	tests := []struct {
		name   string
		code   string
		window int
		want   bool
	}{
		{"current", code(now), 1, true},
		{"previous step", code(now.Add(-30 * time.Second)), 1, true},
		{"next step", code(now.Add(30 * time.Second)), 1, true},
		{"two steps back", code(now.Add(-60 * time.Second)), 1, false},
		{"two steps ahead", code(now.Add(60 * time.Second)), 1, false},
		{"two steps back with window 2", code(now.Add(-60 * time.Second)), 2, true},
		{"previous step with window 0", code(now.Add(-30 * time.Second)), 0, false},
		{"current with window 0", code(now), 0, true},
		{"surrounding whitespace", " " + code(now) + "\n", 1, true},
		{"too short", code(now)[:5], 1, false},
		{"too long", code(now) + "0", 1, false},
		{"letters", "abcdef", 1, false},
		{"empty", "", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := totp.Verify(s, tt.code, tt.window, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestVerify_NearEpoch(t *testing.T) {
	t.Parallel()
	s := randomSeed(t)
	at := time.Unix(5, 0)

	c, err := totp.Generate(s, at)
	require.NoError(t, err)

	ok, err := totp.Verify(s, c, 3, at)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_Errors(t *testing.T) {
	t.Parallel()
	s := randomSeed(t)

	_, err := totp.Verify(seed.Seed{}, "123456", 1, time.Now())
	assert.ErrorIs(t, err, totp.ErrInvalidSeed)

	_, err = totp.Verify(s, "123456", -1, time.Now())
	assert.ErrorIs(t, err, totp.ErrInvalidWindow)

	_, err = totp.Verify(s, "123456", 1, time.Unix(-100, 0))
	assert.ErrorIs(t, err, totp.ErrInvalidTime)
}

func TestSecondsRemaining(t *testing.T) {
	t.Parallel()
	tests := []struct {
		unix int64
		want int
	}{
		{1_700_000_010, 30}, // mod 30 == 0
		{1_700_000_015, 25}, // mod 30 == 5
		{1_700_000_039, 1},  // mod 30 == 29
		{0, 30},
		{-1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, totp.SecondsRemaining(time.Unix(tt.unix, 0)), "unix %d", tt.unix)
	}
}

func TestCounter(t *testing.T) {
	t.Parallel()
	c, err := totp.Counter(time.Unix(59, 999))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c)

	c, err = totp.Counter(time.Unix(60, 0))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c)
}

func TestGetTOTPURI(t *testing.T) {
	t.Parallel()
	s := mustSeed(t, strings.Repeat("0", 64))
	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(make([]byte, 32))

	tests := []struct {
		name    string
		params  totp.TOTPParams
		want    string
		wantErr error
	}{
		{
			name: "Basic URI",
			params: totp.TOTPParams{
				Seed:        s,
				AccountName: "test@example.com",
				Issuer:      "TestApp",
			},
			want: "otpauth://totp/TestApp:test@example.com?algorithm=SHA1&digits=6&issuer=TestApp&period=30&secret=" + secret,
		},
		{
			name: "URI with special characters",
			params: totp.TOTPParams{
				Seed:        s,
				AccountName: "test+user@example.com",
				Issuer:      "Test & App",
			},
			want: "otpauth://totp/Test%20&%20App:test+user@example.com?algorithm=SHA1&digits=6&issuer=Test+%26+App&period=30&secret=" + secret,
		},
		{
			name:    "Missing seed",
			params:  totp.TOTPParams{AccountName: "a", Issuer: "b"},
			wantErr: totp.ErrInvalidSeed,
		},
		{
			name:    "Missing account",
			params:  totp.TOTPParams{Seed: s, Issuer: "b"},
			wantErr: totp.ErrMissingAccountName,
		},
		{
			name:    "Missing issuer",
			params:  totp.TOTPParams{Seed: s, AccountName: "a"},
			wantErr: totp.ErrMissingIssuer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := totp.GetTOTPURI(tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
