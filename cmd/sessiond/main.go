// Command sessiond serves the session facade over HTTP for manual testing
// and as a reference wiring of the cache engines.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/sesskit/pkg/cache"
	"github.com/dmitrymomot/sesskit/pkg/config"
	"github.com/dmitrymomot/sesskit/pkg/httpserver"
	"github.com/dmitrymomot/sesskit/pkg/logger"
	"github.com/dmitrymomot/sesskit/pkg/ratelimiter"
	"github.com/dmitrymomot/sesskit/pkg/requestid"
	"github.com/dmitrymomot/sesskit/pkg/session"
)

func main() {
	config.MustLoadEnv()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg, logger.WithContextExtractors(requestid.LoggerExtractor()))
	logger.SetAsDefault(log)

	if err := run(context.Background(), log); err != nil {
		log.Error("sessiond stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var (
		appCfg     Config
		cacheCfg   cache.Config
		sessionCfg session.Config
		serverCfg  httpserver.Config
		limitCfg   ratelimiter.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&cacheCfg) },
		func() error { return config.Load(&sessionCfg) },
		func() error { return config.Load(&serverCfg) },
		func() error { return config.Load(&limitCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}
	if err := cacheCfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	engine, err := openBackend(ctx, cacheCfg, log)
	if err != nil {
		return err
	}
	defer engine.close()

	registry := cache.NewRegistry()
	registry.Register(sessionCfg.CacheInstance, engine.backend, cacheCfg.InstanceOptions()...)

	manager := session.NewFromConfig(sessionCfg,
		session.WithCache(registry),
		session.WithLogger(log),
		session.WithTrustedProxyHeaders(appCfg.TrustedProxyHeaders...),
	)

	log.InfoContext(ctx, "Session store ready",
		logger.Engine(string(cacheCfg.Engine)),
		logger.CacheInstance(sessionCfg.CacheInstance),
		slog.String("save_mode", string(manager.Config().SaveMode)),
	)

	var limiter *ratelimiter.Bucket
	if limitCfg.Enabled() {
		store := ratelimiter.NewMemoryStore()
		defer func() { _ = store.Close() }()
		if limiter, err = ratelimiter.NewBucket(store, limitCfg); err != nil {
			return err
		}
	}

	router := newRouter(manager, routerConfig{
		log:              log,
		trustedHeaders:   appCfg.TrustedProxyHeaders,
		readinessTimeout: serverCfg.ReadinessTimeout,
		checks:           []httpserver.Check{engine.ping},
		limiter:          limiter,
	})

	srv := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log.With(logger.Component("http"))))
	return srv.Run(ctx, router)
}
