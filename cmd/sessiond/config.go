package main

// Config holds settings specific to the sessiond binary.
type Config struct {
	// TrustedProxyHeaders lists headers consulted for the client address,
	// e.g. "X-Forwarded-For". Empty means RemoteAddr only.
	TrustedProxyHeaders []string `env:"TRUSTED_PROXY_HEADERS" envSeparator:","`
}
