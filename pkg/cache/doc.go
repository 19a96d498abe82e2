// Package cache defines the key/value contract session state is persisted
// through, and an in-process implementation of it.
//
// A Backend stores opaque byte values with a per-entry time to live. Backends
// for Redis, PostgreSQL and MongoDB live in their own packages; MemoryBackend
// ships here and is built on a generic, thread-safe LRUCache whose entries
// expire.
//
// A Registry maps instance names (for example "default") to a backend together
// with an entry lifetime and a key prefix. Callers address data with
// (key, instance) pairs and never see the backend directly:
//
//	reg := cache.NewRegistry()
//	reg.Register(cache.DefaultInstance,
//	    cache.NewMemoryBackend(10000, time.Minute),
//	    cache.WithDuration(30*time.Minute),
//	    cache.WithPrefix("app:"),
//	)
//
//	_ = reg.Set(ctx, "Session.abc", payload, cache.DefaultInstance)
//	data, err := reg.Get(ctx, "Session.abc", cache.DefaultInstance)
//	if errors.Is(err, cache.ErrNotFound) {
//	    // miss or expired
//	}
//
// Every Set refreshes the lifetime of the entry; writing the same value again
// is how a caller keeps an entry alive.
//
// # Errors
//
//   - ErrNotFound        – key absent or expired
//   - ErrUnknownInstance – no instance registered under that name
//   - ErrEmptyKey        – empty key passed to a backend
//   - ErrUnknownEngine   – Config.Engine is not recognised
package cache
