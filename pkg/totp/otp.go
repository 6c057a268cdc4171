package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/pki2fa/pkg/seed"
)

const (
	DefaultDigits    = 6      // Standard 6-digit TOTP codes
	DefaultPeriod    = 30     // 30-second validity window (RFC 6238 standard)
	DefaultAlgorithm = "SHA1" // HMAC-SHA1 algorithm (RFC 6238 standard)
	DefaultWindow    = 1      // Accept the previous and next step as well
)

// TOTPParams contains the parameters for TOTP URI generation
type TOTPParams struct {
	Seed        seed.Seed // Shared secret (required)
	AccountName string    // User identifier like email (required)
	Issuer      string    // Service name displayed in authenticator apps (required)
}

// Validate ensures all required TOTP parameters are present and valid
func (p TOTPParams) Validate() error {
	if p.Seed.IsZero() {
		return ErrInvalidSeed
	}
	if p.AccountName == "" {
		return ErrMissingAccountName
	}
	if p.Issuer == "" {
		return ErrMissingIssuer
	}
	return nil
}

// GetTOTPURI creates a properly encoded TOTP URI for use with authenticator apps.
// The seed bytes are re-encoded as unpadded Base32 as the Key Uri Format expects:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func GetTOTPURI(params TOTPParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	key := params.Seed.Bytes()
	defer clear(key)

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(params.Issuer),
		url.PathEscape(params.AccountName),
	)

	query := url.Values{}
	query.Set("secret", base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(key))
	query.Set("issuer", params.Issuer)
	query.Set("algorithm", DefaultAlgorithm)
	query.Set("digits", fmt.Sprintf("%d", DefaultDigits))
	query.Set("period", fmt.Sprintf("%d", DefaultPeriod))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// Counter returns the RFC 6238 time step for t: floor(unix / 30).
func Counter(t time.Time) (uint64, error) {
	unix := t.Unix()
	if unix < 0 {
		return 0, ErrInvalidTime
	}
	return uint64(unix) / DefaultPeriod, nil
}

// Generate returns the 6-digit code for the 30-second window containing t.
func Generate(s seed.Seed, t time.Time) (string, error) {
	if s.IsZero() {
		return "", ErrInvalidSeed
	}
	counter, err := Counter(t)
	if err != nil {
		return "", err
	}

	key := s.Bytes()
	defer clear(key)

	return formatCode(GenerateHOTP(key, counter, DefaultDigits)), nil
}

// Verify reports whether code matches any step in [counter(t)-window, counter(t)+window].
// Every candidate is compared in constant time and the loop never exits
// early, so neither timing nor the result reveals which step matched.
// Codes that are not exactly six ASCII digits never match.
func Verify(s seed.Seed, code string, window int, t time.Time) (bool, error) {
	if s.IsZero() {
		return false, ErrInvalidSeed
	}
	if window < 0 {
		return false, ErrInvalidWindow
	}
	counter, err := Counter(t)
	if err != nil {
		return false, err
	}

	code = strings.TrimSpace(code)
	wellFormed := isDigits(code, DefaultDigits)

	key := s.Bytes()
	defer clear(key)

	// Pad malformed input to the candidate length so the comparison work is
	// the same; wellFormed gates the result.
	given := []byte(code)
	if !wellFormed {
		given = make([]byte, DefaultDigits)
	}

	match := 0
	for i := -int64(window); i <= int64(window); i++ {
		step := int64(counter) + i
		if step < 0 {
			continue
		}
		candidate := formatCode(GenerateHOTP(key, uint64(step), DefaultDigits))
		match |= subtle.ConstantTimeCompare([]byte(candidate), given)
	}

	return wellFormed && match == 1, nil
}

// SecondsRemaining returns how long the code for t stays current, in [1,30].
func SecondsRemaining(t time.Time) int {
	rem := t.Unix() % DefaultPeriod
	if rem < 0 {
		rem += DefaultPeriod
	}
	return DefaultPeriod - int(rem)
}

// GenerateHOTP implements RFC 4226 HMAC-based One-Time Password algorithm.
// The algorithm converts a counter value into a numeric code using HMAC-SHA1.
func GenerateHOTP(key []byte, counter uint64, digits int) int {
	// Counter as 8-byte big-endian (RFC 4226 requirement)
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	hash := mac.Sum(nil)

	// Dynamic truncation (RFC 4226): use last 4 bits as offset into hash
	offset := hash[len(hash)-1] & 0x0f
	// Extract 31-bit value (clear MSB to ensure positive number)
	code := binary.BigEndian.Uint32(hash[offset:offset+4]) & 0x7fffffff

	return int(uint64(code) % uint64(math.Pow10(digits)))
}

func formatCode(code int) string {
	return fmt.Sprintf("%0*d", DefaultDigits, code)
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
