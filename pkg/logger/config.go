package logger

import "log/slog"

// Config holds logger settings read from the environment.
// Level and Format override the environment defaults when set.
type Config struct {
	AppEnv  string     `env:"APP_ENV" envDefault:"development"`
	Service string     `env:"APP_NAME" envDefault:"sesskit"`
	Level   slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	Format  Format     `env:"LOG_FORMAT"`
}

// NewFromConfig creates a logger with environment defaults and the configured overrides.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	configOpts := []Option{WithEnvironment(cfg.AppEnv, cfg.Service)}
	if cfg.Level != slog.LevelInfo {
		configOpts = append(configOpts, WithLevel(cfg.Level))
	}
	if cfg.Format != "" {
		configOpts = append(configOpts, WithFormat(cfg.Format))
	}
	return New(append(configOpts, opts...)...)
}
