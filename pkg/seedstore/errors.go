package seedstore

import "errors"

var (
	ErrUnknownBackend       = errors.New("unknown seed store backend")
	ErrInvalidEncryptionKey = errors.New("invalid seed encryption key")
	ErrBackendUnavailable   = errors.New("seed store backend unavailable")
)
