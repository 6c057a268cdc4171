// Package httpserver runs an http.Handler with timeouts taken from
// environment configuration and drains it when the context is cancelled.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	err := srv.Run(ctx, router)
//
// Run returns nil after a clean shutdown. Listen and serve failures carry
// ErrStart; a drain that exceeds the shutdown timeout carries ErrShutdown and
// remaining connections are closed.
//
// HealthCheckHandler answers readiness probes from a list of named checks.
package httpserver
