package httpserver

import (
	"log/slog"
	"time"
)

// Option configures Server. Zero or negative durations keep the default.
type Option func(*settings)

func WithAddr(addr string) Option {
	return func(s *settings) {
		if addr != "" {
			s.addr = addr
		}
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.readTimeout = d
		}
	}
}

func WithReadHeaderTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.readHeaderTimeout = d
		}
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

func WithIdleTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.idleTimeout = d
		}
	}
}

// WithShutdownTimeout bounds how long in-flight requests may take to finish.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithLogger sets the lifecycle logger. Nil keeps the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}
