// Package requestid attaches a correlation identifier to every HTTP request.
//
// Middleware reuses a well-formed X-Request-ID header sent by the client or
// generates a time-ordered UUID (version 7). The identifier is stored in the
// request context, echoed in the response header and can be injected into
// slog records through LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
