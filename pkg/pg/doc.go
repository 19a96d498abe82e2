// Package pg stores cache entries in PostgreSQL using the pgx/v5 driver.
//
// It is meant for deployments that already run PostgreSQL and prefer not to
// operate a dedicated cache server. The package exposes:
//
//   - Config – populated from environment variables via github.com/caarlos0/env.
//   - Connect – opens a *pgxpool.Pool, retrying with a growing delay.
//   - Migrate – applies the embedded goose migrations creating cache_entries.
//   - Storage – a cache.Backend over cache_entries with per-row expiry.
//   - Healthcheck – a readiness probe.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    return err
//	}
//
//	store := pg.NewStorage(pool)
//	go store.RunCleanup(ctx, cfg.CleanupInterval, slog.Default())
//	registry.Register(cache.DefaultInstance, store, cache.WithDuration(30*time.Minute))
//
// Rows past their expires_at are never returned by Get even before the
// cleanup sweep deletes them.
package pg
