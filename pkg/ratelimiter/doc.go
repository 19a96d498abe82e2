// Package ratelimiter throttles requests per client with a token bucket.
//
// sessiond puts it in front of the session routes so a client that keeps
// arriving without a usable cookie cannot mint sessions faster than the
// configured rate:
//
//	store := ratelimiter.NewMemoryStore()
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	r.Use(ratelimiter.Middleware(bucket, ratelimiter.ByClientAddress(), log))
package ratelimiter
