// Package fingerprint binds a session identifier to the environment of the
// client that owns it.
//
// A fingerprint is the keyed hash of the session id concatenated with the
// client address, the application secret, the User-Agent header and the
// request host. It is recomputed on every request and compared with the value
// stored alongside the session: a stolen cookie replayed from another address,
// browser or virtual host does not match and the session is discarded.
//
// Inputs are deliberately not normalised. A browser upgrade that changes the
// User-Agent string, or a client moving to another network, invalidates the
// session. This is the intended anti-hijacking behaviour.
//
// # Usage
//
//	c := fingerprint.FromRequest(r)
//	fp := fingerprint.Compute(cipher, sessionID, secret, c)
//	if !fingerprint.Equal(fp, stored) {
//	    // treat the session as compromised
//	}
//
// Middleware resolves Client once per request and stores it in the context
// where ClientFromContext can pick it up.
package fingerprint
