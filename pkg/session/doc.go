// Package session keeps per-client state on the server, in an expiring cache,
// and identifies clients with an encrypted cookie bound to a fingerprint.
//
// # Lifecycle
//
// Manager.Start runs once per request. It reads the token from the Transport
// (a cookie by default), decrypts it to a session id and loads the record
// stored under KeyPrefix+id in the configured cache instance. The record is
// accepted only if its fingerprint equals hash(id, client address, secret,
// user agent, host) computed for the current request. Otherwise:
//
//   - an undecryptable token is treated as no token (StateAbsent);
//   - a missing record or a fingerprint mismatch (StateInvalid) destroys the
//     old id: its record is deleted and the cookie is expired.
//
// In both cases a new id is minted and sent to the client. Start then saves
// the session unconditionally so the cache entry's expiry is refreshed on
// every request. Session.Validation reports which path was taken.
//
// # Persistence
//
// With SaveWriteThrough (the default) Set and Delete save immediately and
// return the save error. With SaveDeferred they only mark the session dirty
// and Middleware calls Flush after the handler. Destroy deletes the record,
// expires the cookie and wipes the id; later saves fail with ErrEmptySessionID.
//
// Concurrent requests for the same id each load their own copy; the last save wins.
//
// # Usage
//
//	registry := cache.NewRegistry()
//	registry.Register(cache.DefaultInstance, cache.NewMemoryBackend(10000, time.Minute),
//	    cache.WithDuration(30*time.Minute))
//
//	manager := session.NewFromConfig(cfg, session.WithCache(registry), session.WithLogger(log))
//
//	r := chi.NewRouter()
//	r.Use(fingerprint.Middleware())
//	r.Use(manager.Middleware)
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//	    _ = session.Set(r.Context(), "seen", true)
//	    v, err := session.Get(r.Context(), "seen")
//	    ...
//	})
//
// # Configuration
//
// Config is populated from SESSION_* environment variables via github.com/caarlos0/env.
// Blank CookieName and CacheInstance fall back to their defaults.
//
// # Error Handling
//
// Validation never fails a request: cache and cipher errors only cause a new
// session to be minted. Save failures are returned to the caller and wrap
// ErrSaveFailed; a failed keep-alive is logged and visible via Persisted.
package session
