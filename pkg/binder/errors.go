package binder

import "errors"

// Every error returned by JSON wraps exactly one of these.
var (
	ErrUnsupportedMediaType = errors.New("binder: content type is not JSON")
	ErrFailedToParseJSON    = errors.New("binder: malformed JSON body")
	ErrBodyTooLarge         = errors.New("binder: body exceeds size limit")
	ErrEmptyBody            = errors.New("binder: empty body")
)
