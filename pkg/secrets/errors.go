package secrets

import "errors"

var (
	ErrInvalidKey          = errors.New("secrets: master key must be 32 bytes")
	ErrEncryptionFailed    = errors.New("secrets: seal failed")
	ErrDecryptionFailed    = errors.New("secrets: open failed")
	ErrInvalidCiphertext   = errors.New("secrets: sealed value too short")
	ErrKeyDerivationFailed = errors.New("secrets: hkdf failed")
)
