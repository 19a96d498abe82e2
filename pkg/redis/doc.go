// Package redis connects to Redis and exposes it as a cache.Backend so that
// session records can be shared between every process of a deployment.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which pings the server and retries using the supplied Config.
//   - Storage, a cache.Backend whose entry lifetime is enforced by Redis itself.
//   - Healthcheck, a closure suitable for readiness probes.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // redis is unreachable, probably terminate the application
//	}
//	defer client.Close()
//
//	registry.Register(cache.DefaultInstance, redis.NewStorageFromConfig(client, cfg),
//	    cache.WithDuration(30*time.Minute))
//
// Configuration is described by Config whose fields are populated from
// environment variables via github.com/caarlos0/env.
//
// # Errors
//
// Sentinel errors (ErrNotReady, ErrHealthcheckFailed, ...) wrap the
// underlying go-redis errors with errors.Join. A missing key is reported as
// cache.ErrNotFound.
package redis
