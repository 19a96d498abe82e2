package session

import "net/http"

// Transport defines how session tokens are transmitted between client and server.
// Tokens are opaque to the transport; the Manager encrypts and hex-encodes them.
type Transport interface {
	// GetToken extracts the session token from the request
	GetToken(r *http.Request) (string, error)

	// SetToken sends the session token in the response
	SetToken(w http.ResponseWriter, token string) error

	// ClearToken instructs the client to drop the session token
	ClearToken(w http.ResponseWriter) error
}
