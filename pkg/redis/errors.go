package redis

import "errors"

var (
	ErrEmptyConnectionURL           = errors.New("redis: connection URL is empty")
	ErrFailedToParseRedisConnString = errors.New("redis: invalid connection URL")
	ErrRedisNotReady                = errors.New("redis: server not reachable")
	ErrHealthcheckFailed            = errors.New("redis: ping failed")
	ErrEmptyKey                     = errors.New("redis: empty key")
	ErrStorageFailed                = errors.New("redis: storage operation failed")
)
