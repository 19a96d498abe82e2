package session

import (
	"net/http"

	"github.com/dmitrymomot/sesskit/pkg/cookie"
)

// CookieTransport implements Transport using a single named cookie.
// The cookie carries no Max-Age, so it lives for the browser session; the
// server-side record expires on its own through the cache TTL.
type CookieTransport struct {
	cookieMgr     *cookie.Manager
	cookieName    string
	options       []cookie.Option
	secureCookies bool
}

// NewCookieTransport creates a new cookie-based transport
func NewCookieTransport(cookieMgr *cookie.Manager, cookieName string, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{
		cookieMgr:  cookieMgr,
		cookieName: cookieName,
		options:    opts,
	}
}

// NewCookieTransportWithSecurity creates a new cookie-based transport with security settings
func NewCookieTransportWithSecurity(cookieMgr *cookie.Manager, cookieName string, secureCookies bool, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{
		cookieMgr:     cookieMgr,
		cookieName:    cookieName,
		options:       opts,
		secureCookies: secureCookies,
	}
}

// GetToken extracts the session token from the cookie
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookieMgr.Get(r, t.cookieName)
	if err != nil || token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// SetToken stores the session token in a host-only cookie on path "/".
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string) error {
	opts := []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode), // CSRF protection
	}

	if t.secureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}

	opts = append(opts, t.options...)

	return t.cookieMgr.Set(w, t.cookieName, token, opts...)
}

// ClearToken expires the session cookie immediately.
func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookieMgr.Delete(w, t.cookieName)
	return nil
}
