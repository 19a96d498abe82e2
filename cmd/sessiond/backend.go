package main

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/sesskit/pkg/cache"
	"github.com/dmitrymomot/sesskit/pkg/config"
	"github.com/dmitrymomot/sesskit/pkg/httpserver"
	"github.com/dmitrymomot/sesskit/pkg/logger"
	"github.com/dmitrymomot/sesskit/pkg/mongo"
	"github.com/dmitrymomot/sesskit/pkg/pg"
	"github.com/dmitrymomot/sesskit/pkg/redis"
)

type cacheEngine struct {
	backend cache.Backend
	ping    httpserver.Check
	close   func()
}

// openBackend connects the engine selected by cfg. Engine settings are read
// from the environment only for the selected engine.
func openBackend(ctx context.Context, cfg cache.Config, log *slog.Logger) (cacheEngine, error) {
	log = log.With(logger.Engine(string(cfg.Engine)))

	switch cfg.Engine {
	case cache.EngineRedis:
		var rc redis.Config
		if err := config.Load(&rc); err != nil {
			return cacheEngine{}, err
		}
		client, err := redis.Connect(ctx, rc)
		if err != nil {
			return cacheEngine{}, err
		}
		return cacheEngine{
			backend: redis.NewStorageFromConfig(client, rc),
			ping:    redis.Healthcheck(client),
			close:   func() { _ = client.Close() },
		}, nil

	case cache.EnginePostgres:
		var pc pg.Config
		if err := config.Load(&pc); err != nil {
			return cacheEngine{}, err
		}
		pool, err := pg.Connect(ctx, pc)
		if err != nil {
			return cacheEngine{}, err
		}
		if err := pg.Migrate(ctx, pool, pc, log); err != nil {
			pool.Close()
			return cacheEngine{}, err
		}
		storage := pg.NewStorage(pool)
		go storage.RunCleanup(ctx, pc.CleanupInterval, log)
		return cacheEngine{
			backend: storage,
			ping:    pg.Healthcheck(pool),
			close:   pool.Close,
		}, nil

	case cache.EngineMongo:
		var mc mongo.Config
		if err := config.Load(&mc); err != nil {
			return cacheEngine{}, err
		}
		storage, client, err := mongo.NewStorageFromConfig(ctx, mc)
		if err != nil {
			return cacheEngine{}, err
		}
		return cacheEngine{
			backend: storage,
			ping:    mongo.Healthcheck(client),
			close:   func() { _ = client.Disconnect(context.WithoutCancel(ctx)) },
		}, nil

	default:
		mem := cache.NewMemoryBackend(cfg.MemoryCapacity, cfg.CleanupInterval)
		return cacheEngine{
			backend: mem,
			ping:    func(context.Context) error { return nil },
			close:   func() { _ = mem.Close() },
		}, nil
	}
}
