// Package httpserver runs an http.Handler with graceful shutdown and
// provides liveness and readiness handlers.
//
// Run binds the listener first, runs the start hooks, then serves until the
// context is cancelled, SIGINT or SIGTERM arrives, or Shutdown is called.
// Shutdown is bounded by the configured timeout and runs the stop hooks once.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	r := chi.NewRouter()
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, cfg.ReadinessTimeout, storage.Ping))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Listen failures are joined with ErrStart and shutdown failures with
// ErrShutdown.
package httpserver
