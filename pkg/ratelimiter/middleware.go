package ratelimiter

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/sesskit/pkg/fingerprint"
	"github.com/dmitrymomot/sesskit/pkg/logger"
)

// KeyFunc extracts the limiting key from a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// ByClientAddress keys on the address captured by fingerprint.Middleware,
// falling back to the request's own address.
func ByClientAddress(trustedHeaders ...string) KeyFunc {
	return func(r *http.Request) string {
		c, ok := fingerprint.ClientFromContext(r.Context())
		if !ok {
			c = fingerprint.FromRequest(r, trustedHeaders...)
		}
		return c.Address
	}
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	onLimited func(w http.ResponseWriter, r *http.Request)
}

// WithOnLimited registers a callback that runs before a denied request is answered with 429,
// e.g. to undo work done earlier in the chain.
func WithOnLimited(fn func(w http.ResponseWriter, r *http.Request)) MiddlewareOption {
	return func(c *middlewareConfig) { c.onLimited = fn }
}

// Middleware answers 429 once the bucket for the request's key is empty.
// Store errors fail open and are logged.
func Middleware(b *Bucket, keyFunc KeyFunc, log *slog.Logger, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	var cfg middlewareConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := b.Allow(r.Context(), key)
			if err != nil {
				log.WarnContext(r.Context(), "Rate limit check failed", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				if cfg.onLimited != nil {
					cfg.onLimited(w, r)
				}
				if s := int(res.RetryAfter().Seconds()); s > 0 {
					h.Set("Retry-After", strconv.Itoa(s))
				}
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
