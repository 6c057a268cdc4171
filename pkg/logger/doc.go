// Package logger builds slog loggers for the service binaries.
//
// Every logger redacts attributes named in DefaultRedactedKeys, so a seed,
// TOTP code, ciphertext or key passed by mistake is printed as "[redacted]".
// Context extractors add request-scoped attributes such as the request id:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "pki2fa"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "seed stored", logger.Component("twofa"))
package logger
