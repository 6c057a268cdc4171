package seed

import (
	"encoding/hex"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// HexLength is the length of a canonical seed: 32 bytes, hex encoded.
const HexLength = 64

// Seed is a validated shared secret in its canonical form.
// The zero value is not a valid seed; use Validate or Parse to obtain one.
type Seed struct {
	hex string
}

// Validate turns decrypted plaintext into a Seed.
// The plaintext must be UTF-8, and after trimming surrounding whitespace
// exactly 64 characters from [0-9a-f].
func Validate(plaintext []byte) (Seed, error) {
	if !utf8.Valid(plaintext) {
		return Seed{}, ErrInvalidEncoding
	}
	return Parse(string(plaintext))
}

// Parse validates a textual seed, e.g. one read back from storage.
// Length is counted in characters, so a non-hex rune in an otherwise
// well-sized seed reports ErrInvalidFormat.
func Parse(s string) (Seed, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) != HexLength {
		return Seed{}, ErrInvalidLength
	}
	for i := 0; i < len(s); i++ {
		if !isLowerHex(s[i]) {
			return Seed{}, ErrInvalidFormat
		}
	}
	return Seed{hex: s}, nil
}

func isLowerHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// String returns the 64-character hex form.
func (s Seed) String() string { return s.hex }

// IsZero reports whether s was not produced by Validate or Parse.
func (s Seed) IsZero() bool { return s.hex == "" }

// Bytes returns the 32 raw bytes of the seed. A fresh slice is returned on
// every call so callers may wipe it after use.
func (s Seed) Bytes() []byte {
	if s.IsZero() {
		return nil
	}
	b, err := hex.DecodeString(s.hex)
	if err != nil {
		// unreachable: the hex form was validated on construction
		return nil
	}
	return b
}

// Equal reports whether two seeds hold the same value.
func (s Seed) Equal(other Seed) bool { return s.hex == other.hex }

// GoString keeps the secret out of %#v output.
func (s Seed) GoString() string { return "seed.Seed{...}" }

// LogValue implements slog.LogValuer so a seed passed to a logger is redacted.
func (s Seed) LogValue() slog.Value { return slog.StringValue("[redacted]") }
