package httpserver

import "errors"

var (
	ErrStart          = errors.New("http server failed")
	ErrShutdown       = errors.New("http server shutdown did not complete")
	ErrAlreadyRunning = errors.New("http server already running")
)
