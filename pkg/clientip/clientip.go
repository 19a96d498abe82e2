package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultProxyHeaders lists headers set by common reverse proxies, in priority order:
// Cloudflare, DigitalOcean App Platform, the standard forwarded header and Nginx.
var DefaultProxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// RemoteIP returns the host part of r.RemoteAddr exactly as the server saw it.
// Headers are never consulted, so the value cannot be forged by the client.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, e.g. set by a test or a unix socket listener
		return r.RemoteAddr
	}
	return host
}

// GetIP resolves the client address honouring the given trusted proxy headers first.
// X-Forwarded-For style values are scanned left to right for the first valid IP.
// With no headers it is equivalent to RemoteIP. Only pass headers your edge proxy
// overwrites; otherwise the client controls the result.
func GetIP(r *http.Request, trustedHeaders ...string) string {
	for _, name := range trustedHeaders {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := validIP(candidate); ip != "" {
				return ip
			}
		}
	}

	return RemoteIP(r)
}

// validIP trims s and returns it unchanged if it parses as an IP, empty string otherwise.
func validIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || net.ParseIP(s) == nil {
		return ""
	}
	return s
}
