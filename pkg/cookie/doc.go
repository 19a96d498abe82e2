// Package cookie is a small HTTP cookie manager with shared default attributes.
//
// The Manager wraps net/http cookies with Set, Get and Delete helpers. It is a
// transport only: values are written as given, so anything sensitive must be
// encoded by the caller first (the session package stores hex ciphertext).
//
// Defaults are host-only (no Domain), Path "/", HttpOnly and SameSite=Lax with
// no Max-Age, which makes a browser-session cookie.
//
// # Usage
//
//	man := cookie.New(cookie.WithSecure(true))
//
//	_ = man.Set(w, "sesskit_sess", value)
//	value, err := man.Get(r, "sesskit_sess")
//	man.Delete(w, "sesskit_sess")
//
// # Configuration
//
// Config is populated from COOKIE_* environment variables via github.com/caarlos0/env.
// Only non-zero fields are applied by NewFromConfig.
//
// # Error Handling
//
// Get returns ErrCookieNotFound when the request carries no cookie with that name.
package cookie
