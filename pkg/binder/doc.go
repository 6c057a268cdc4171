// Package binder decodes HTTP request bodies into Go values.
//
// JSON accepts bodies sent as application/json (or any +json media type) and
// bodies without a Content-Type header. Bodies are capped at
// DefaultMaxJSONSize unless WithMaxSize is given, unknown fields are ignored
// and trailing data after the first JSON value is rejected:
//
//	var req struct {
//		Code string `json:"code"`
//	}
//	if err := binder.JSON(r, &req); err != nil {
//		// errors.Is(err, binder.ErrFailedToParseJSON) etc.
//	}
//
// String values are decoded verbatim. Callers that need trimming or
// validation do it themselves, because base64 and hex payloads must reach the
// decoder untouched.
package binder
