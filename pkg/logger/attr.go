package logger

import (
	"log/slog"
	"time"
)

// Error returns an "error" attribute, or an empty one for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

func Component(name string) slog.Attr { return slog.String("component", name) }

func Operation(name string) slog.Attr { return slog.String("operation", name) }

func Handler(name string) slog.Attr { return slog.String("handler", name) }

// Backend names the seed storage backend.
func Backend(name string) slog.Attr { return slog.String("backend", name) }

func StatusCode(code int) slog.Attr { return slog.Int("status_code", code) }

// Valid records a verification outcome without the verified value.
func Valid(ok bool) slog.Attr { return slog.Bool("valid", ok) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }
