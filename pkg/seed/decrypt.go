package seed

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"unicode"
)

// Decrypt decodes a base64 ciphertext and decrypts it with RSA-OAEP
// (SHA-256, MGF1-SHA-256, empty label).
//
// Every failure after base64 decoding is reported as ErrDecryptionFailed,
// whatever the cause: wrong key, corrupt ciphertext, bad padding or a length
// that does not match the modulus.
func Decrypt(ciphertext string, key *rsa.PrivateKey) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(stripSpace(ciphertext))
	if err != nil {
		return nil, ErrInvalidBase64
	}
	if key == nil || len(raw) == 0 {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, key, raw, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// DecryptAndValidate runs Decrypt followed by Validate.
// The intermediate plaintext is wiped before returning.
func DecryptAndValidate(ciphertext string, key *rsa.PrivateKey) (Seed, error) {
	plaintext, err := Decrypt(ciphertext, key)
	if err != nil {
		return Seed{}, err
	}
	defer clear(plaintext)
	return Validate(plaintext)
}

// stripSpace drops whitespace anywhere in s, so ciphertext copied from a
// wrapped file or with a trailing newline still decodes.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
