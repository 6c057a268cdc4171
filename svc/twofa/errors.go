package twofa

import (
	"errors"

	"github.com/dmitrymomot/pki2fa/pkg/seed"
)

var (
	ErrMissingCode  = errors.New("missing code")
	ErrDecryption   = errors.New("decryption failed")
	ErrStore        = errors.New("seed store failure")
	ErrGeneration   = errors.New("TOTP generation failed")
	ErrVerification = errors.New("verification failed")
	ErrNilStore     = errors.New("seed store is required")
	ErrNilKey       = errors.New("private key is required")
)

// ErrorKind groups service errors for the transport layer.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInput
	KindSeedState
	KindCrypto
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInput:
		return "input"
	case KindSeedState:
		return "seed_state"
	case KindCrypto:
		return "crypto"
	default:
		return "internal"
	}
}

// Kind classifies err. Unknown errors are internal.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingCode):
		return KindInput
	case errors.Is(err, seed.ErrNotFound):
		return KindSeedState
	case errors.Is(err, ErrDecryption), seed.IsCryptoError(err):
		return KindCrypto
	default:
		return KindInternal
	}
}
