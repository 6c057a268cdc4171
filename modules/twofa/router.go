// Package twofa exposes the 2FA service over HTTP.
//
//	svc, _ := twofasvc.NewService(store, key)
//	r := twofa.Router(twofa.RouterOptions{
//		API:    twofa.NewHandler(svc),
//		Health: httpserver.HealthCheckHandler(log, checks...),
//	})
package twofa

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/pki2fa/pkg/requestid"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures what the root router serves.
// Nil entries are skipped.
type RouterOptions struct {
	API    Mountable
	Health http.Handler
}

// Router builds the root router with request ids and panic recovery.
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(chimw.Recoverer)

	if opts.Health != nil {
		r.Method(http.MethodGet, "/health", opts.Health)
	}
	if opts.API != nil {
		r.Mount("/", opts.API.Handle())
	}

	return r
}
