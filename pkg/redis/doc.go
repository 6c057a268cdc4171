// Package redis provides helpers for connecting to a Redis server and using
// it as a seed store backend.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied configuration.
//   - Storage, a namespaced key/value wrapper with Read and Write methods that
//     satisfy the blob contract used by the seed store.
//   - Storage.Ping, for readiness probes.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := redis.NewStorageWithConfig(client, cfg)
//	if err := store.Write(ctx, "seed.txt", data); err != nil {
//	    return err
//	}
//
// Read returns (nil, nil) for a missing key so callers can tell "not yet
// written" apart from a connection failure.
//
// # Errors
//
// The package defines sentinel errors (ErrRedisNotReady, ErrStorageFailed and
// others) joined with the underlying go-redis errors using errors.Join.
package redis
