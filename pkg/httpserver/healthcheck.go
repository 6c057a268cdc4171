package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/pki2fa/pkg/logger"
)

// Check is a named readiness probe.
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// DefaultHealthTimeout bounds all readiness probes of a single request.
const DefaultHealthTimeout = 2 * time.Second

// HealthCheckHandler returns a handler for liveness and readiness probes.
//
// Without checks it answers 200 "ALIVE". With checks every probe runs under
// the request context bounded by DefaultHealthTimeout; the handler answers
// 200 "READY" when all pass and 500 "NOT_READY" otherwise. Probe errors are
// logged, never written to the response.
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), DefaultHealthTimeout)
		defer cancel()

		for _, c := range checks {
			if c.Probe == nil {
				continue
			}
			if err := c.Probe(ctx); err != nil {
				log.ErrorContext(ctx, "Readiness check failed",
					logger.Component(c.Name),
					logger.Error(err),
				)
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
