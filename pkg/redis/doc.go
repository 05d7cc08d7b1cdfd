// Package redis connects to the Redis server used as a session store.
//
// It wraps the go-redis client with:
//
//   - Connect, which parses a redis:// URL and retries the initial ping
//   - Healthcheck, a readiness probe suitable for httpserver.HealthCheckHandler
//
// Configuration is described by Config whose fields are populated from environment
// variables (REDIS_URL, REDIS_RETRY_ATTEMPTS, ...) through pkg/config.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client)
//
// # Errors
//
// Sentinel errors (ErrRedisNotReady, ErrFailedToParseRedisConnString, ...) are joined
// with the underlying go-redis error; use errors.Is to match them.
package redis
