package totp

import "errors"

var (
	ErrInvalidSeed        = errors.New("invalid TOTP seed")
	ErrInvalidTime        = errors.New("time is before the Unix epoch")
	ErrInvalidWindow      = errors.New("verification window must not be negative")
	ErrMissingAccountName = errors.New("missing account name")
	ErrMissingIssuer      = errors.New("missing issuer")
)
