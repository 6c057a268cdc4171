package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

type options struct {
	maxSize int64
	strict  bool
}

// Option configures JSON decoding.
type Option func(*options)

// WithMaxSize overrides DefaultMaxJSONSize.
func WithMaxSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// WithStrictFields rejects unknown object fields.
func WithStrictFields() Option {
	return func(o *options) { o.strict = true }
}

// JSON decodes the request body into v.
func JSON(r *http.Request, v any, opts ...Option) error {
	o := options{maxSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&o)
	}

	if err := r.Context().Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || !isJSONMediaType(mediaType) {
			return fmt.Errorf("%w: got %q, expected application/json", ErrUnsupportedMediaType, ct)
		}
	}

	if r.Body == nil {
		return ErrEmptyBody
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, o.maxSize+1))
	if err != nil {
		return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if int64(len(body)) > o.maxSize {
		return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, o.maxSize)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	if o.strict {
		decoder.DisallowUnknownFields()
	}

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
	}

	return nil
}

func isJSONMediaType(mt string) bool {
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
