package ratelimiter

import "time"

// Result describes the bucket after a request was counted.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // negative when the request was denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the request fit in the bucket.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next request, 0 if allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Config defines the token bucket. Zero Capacity disables limiting in cmd wiring.
type Config struct {
	Capacity       int           `env:"RATELIMIT_CAPACITY" envDefault:"60"`
	RefillRate     int           `env:"RATELIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATELIMIT_REFILL_INTERVAL" envDefault:"1s"`
}

// Enabled reports whether the config asks for limiting at all.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}
