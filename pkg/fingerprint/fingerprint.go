package fingerprint

import (
	"crypto/subtle"
	"net"
	"net/http"

	"github.com/dmitrymomot/sesskit/pkg/clientip"
)

// Hasher is a deterministic keyed digest, e.g. *secrets.Cipher.
type Hasher interface {
	Hash(s string) string
}

// Client holds the request attributes a session is bound to.
type Client struct {
	Address   string
	UserAgent string
	Host      string
}

// FromRequest extracts the client attributes of r.
// The address is the transport peer unless trustedHeaders name proxy headers to honour.
// Values are taken verbatim: no case folding or whitespace trimming.
func FromRequest(r *http.Request, trustedHeaders ...string) Client {
	return Client{
		Address:   clientip.GetIP(r, trustedHeaders...),
		UserAgent: r.UserAgent(),
		Host:      hostname(r.Host),
	}
}

// Compute binds a session id to the client: hash(id ‖ address ‖ secret ‖ user agent ‖ host).
// Any change in one of the bound attributes yields a different fingerprint.
func Compute(h Hasher, id, secret string, c Client) string {
	return h.Hash(id + c.Address + secret + c.UserAgent + c.Host)
}

// Equal reports whether two fingerprints are identical, in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// hostname strips the port from a Host header value.
func hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
