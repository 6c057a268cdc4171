package provision

import "errors"

var (
	ErrInvalidURL       = errors.New("invalid seed API URL")
	ErrInvalidRequest   = errors.New("invalid seed request")
	ErrRequestFailed    = errors.New("seed API request failed")
	ErrUnexpectedStatus = errors.New("seed API returned unexpected status")
	ErrInvalidResponse  = errors.New("invalid seed API response")
	ErrFailedToSave     = errors.New("failed to save encrypted seed")
)
