package seed

import "errors"

var (
	// Decrypt and validate failures. Callers facing the network must not
	// forward which one occurred.
	ErrInvalidBase64    = errors.New("encrypted seed is not valid base64")
	ErrDecryptionFailed = errors.New("seed decryption failed")
	ErrInvalidEncoding  = errors.New("seed is not valid UTF-8 text")
	ErrInvalidLength    = errors.New("seed has invalid length")
	ErrInvalidFormat    = errors.New("seed must contain only lowercase hex characters")

	// Store state and failures.
	ErrNotFound      = errors.New("seed not decrypted yet")
	ErrStoreFailed   = errors.New("seed store operation failed")
	ErrCorruptSeed   = errors.New("stored seed is corrupt")
	ErrZeroSeed      = errors.New("refusing to store an empty seed")
	ErrInvalidConfig = errors.New("invalid seed store configuration")
)

// IsCryptoError reports whether err comes from decrypting or validating a seed.
func IsCryptoError(err error) bool {
	return errors.Is(err, ErrInvalidBase64) ||
		errors.Is(err, ErrDecryptionFailed) ||
		errors.Is(err, ErrInvalidEncoding) ||
		errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrInvalidFormat)
}
