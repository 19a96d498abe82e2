// Package logger builds *slog.Logger instances for sesskit services.
//
// New picks a text or JSON handler and wraps it with ContextHandler,
// which runs the registered ContextExtractor callbacks on every record so
// values such as the request id follow the context into the log line.
// NewFromConfig reads APP_ENV, APP_NAME, LOG_LEVEL and LOG_FORMAT and applies
// the environment defaults: text at debug level in development, JSON at info
// level elsewhere.
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg, logger.WithContextExtractors(requestid.LoggerExtractor()))
//	log.InfoContext(ctx, "Session started", logger.SessionID(s.ID()))
//
// The attribute helpers in attr.go keep key names consistent across packages.
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
