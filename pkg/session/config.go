package session

import (
	"fmt"

	"github.com/dmitrymomot/sesskit/pkg/cache"
)

const (
	DefaultCookieName = "sesskit_sess"
	DefaultKeyPrefix  = "Session."
)

// SaveMode controls when mutations reach the cache.
type SaveMode string

const (
	// SaveWriteThrough persists on every Set and Delete.
	SaveWriteThrough SaveMode = "write_through"
	// SaveDeferred marks the session dirty and persists on Flush, which Middleware calls after the handler.
	SaveDeferred SaveMode = "deferred"
)

// Config holds session configuration
type Config struct {
	// CacheInstance names the cache.Registry instance holding session records.
	CacheInstance string `env:"SESSION_CACHE_INSTANCE" envDefault:"default"`

	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sesskit_sess"`

	// Secret keys the cookie cipher, the id hash and the fingerprint.
	Secret string `env:"SESSION_SECRET"`

	// SecuritySalt separates key derivation between deployments sharing a secret.
	SecuritySalt string `env:"SESSION_SECURITY_SALT"`

	// SecureCookies enables the Secure flag on session cookies (recommended for production)
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	KeyPrefix string   `env:"SESSION_KEY_PREFIX" envDefault:"Session."`
	SaveMode  SaveMode `env:"SESSION_SAVE_MODE" envDefault:"write_through"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CacheInstance: cache.DefaultInstance,
		CookieName:    DefaultCookieName,
		KeyPrefix:     DefaultKeyPrefix,
		SaveMode:      SaveWriteThrough,
	}
}

// Validate reports configuration values the manager cannot work with.
func (c Config) Validate() error {
	switch c.SaveMode {
	case "", SaveWriteThrough, SaveDeferred:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSaveMode, c.SaveMode)
	}
}

// normalize fills blank fields that must never be empty at runtime.
func (c Config) normalize() Config {
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.CacheInstance == "" {
		c.CacheInstance = cache.DefaultInstance
	}
	if c.SaveMode == "" {
		c.SaveMode = SaveWriteThrough
	}
	return c
}

// NewFromConfig creates a new Manager from the provided Config.
// A cache is required via WithCache; the cipher is derived from Secret and
// SecuritySalt unless WithCipher is given.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
