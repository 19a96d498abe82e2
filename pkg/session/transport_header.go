package session

import (
	"net/http"
	"strings"
)

// HeaderTransport implements Transport using HTTP headers, for API clients without a cookie jar.
type HeaderTransport struct {
	headerName string
	prefix     string
}

// NewHeaderTransport creates a new header-based transport
func NewHeaderTransport(headerName string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{
		headerName: headerName,
		prefix:     "Bearer ",
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// HeaderOption is a functional option for HeaderTransport
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix sets a custom prefix for the header value
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

// GetToken extracts the session token from the header
func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := r.Header.Get(t.headerName)
	if value == "" {
		return "", ErrTokenNotFound
	}

	if t.prefix != "" {
		value = strings.TrimPrefix(value, t.prefix)
	}
	if value == "" {
		return "", ErrTokenNotFound
	}

	return value, nil
}

// SetToken sends the session token in the response header
func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string) error {
	w.Header().Set(t.headerName, t.prefix+token)
	return nil
}

// ClearToken removes the session header from the response
func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.headerName)
	return nil
}
