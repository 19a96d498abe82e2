package session

import (
	"log/slog"

	"github.com/dmitrymomot/sesskit/pkg/cookie"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithCacheInstance selects the cache instance holding session records.
func WithCacheInstance(name string) Option {
	return func(m *Manager) {
		m.config.CacheInstance = name
	}
}

// WithSaveMode sets when mutations are persisted.
func WithSaveMode(mode SaveMode) Option {
	return func(m *Manager) {
		m.config.SaveMode = mode
	}
}

// WithCache sets the session record storage, usually a *cache.Registry.
func WithCache(c Cache) Option {
	return func(m *Manager) {
		m.cache = c
	}
}

// WithCipher sets the token cipher and id hasher, usually a *secrets.Cipher.
func WithCipher(c Cipher) Option {
	return func(m *Manager) {
		m.cipher = c
	}
}

// WithTransport sets a custom session transport
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithCookieManager sets the cookie manager for the default cookie transport
func WithCookieManager(cookieMgr *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieManager = cookieMgr
		m.cookieOptions = opts
	}
}

// WithLogger sets the logger. Invalidation reasons are logged at debug, cache failures at warn.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTrustedProxyHeaders lists proxy headers used to resolve the client address
// when the fingerprint middleware did not run.
func WithTrustedProxyHeaders(headers ...string) Option {
	return func(m *Manager) {
		m.trustedHeaders = headers
	}
}
