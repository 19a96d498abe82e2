// Package secrets provides the symmetric encryption and keyed hashing used to
// protect session identifiers.
//
// A Cipher is built from an application secret and an optional salt. Two
// independent 32-byte keys are derived from them with HKDF-SHA-256 using
// distinct info labels: one drives AES-256 in GCM mode, the other keys an
// HMAC-SHA-256 digest.
//
// Encryption prepends a random nonce to the sealed payload, so encrypting the
// same value twice produces different ciphertexts. Hash is deterministic and is
// used both to mint session identifiers and to compute client fingerprints.
//
// # Usage
//
//	import "github.com/dmitrymomot/sesskit/pkg/secrets"
//
//	c, err := secrets.New(os.Getenv("SESSION_SECRET"), os.Getenv("SESSION_SECURITY_SALT"))
//	if err != nil {
//	    // handle error
//	}
//
//	token, _ := c.EncryptString("session-id") // hex-encoded, cookie safe
//	id, err := c.DecryptString(token)
//
//	digest := c.Hash("some input") // 64 hex chars
//
// # Error Handling
//
// Decryption of tampered, truncated or foreign ciphertext returns an error
// wrapping ErrDecryptionFailed or ErrInvalidCiphertext. Use errors.Is to match.
package secrets
