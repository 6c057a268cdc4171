package keypair

import "errors"

var (
	ErrFailedToReadKey     = errors.New("failed to read key file")
	ErrFailedToWriteKey    = errors.New("failed to write key file")
	ErrNoPEMBlock          = errors.New("no PEM block found")
	ErrFailedToParseKey    = errors.New("failed to parse key")
	ErrNotRSAKey           = errors.New("key is not an RSA key")
	ErrFailedToGenerateKey = errors.New("failed to generate RSA key")
	ErrKeyTooSmall         = errors.New("RSA key size is too small")
)
