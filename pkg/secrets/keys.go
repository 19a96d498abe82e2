package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the size of derived keys (AES-256 and HMAC-SHA256).
	KeySize = 32

	// Domain separation labels for HKDF so the encryption and hashing keys never coincide.
	encryptionInfo = "sesskit-secrets-enc-v1"
	hashInfo       = "sesskit-secrets-mac-v1"
)

// deriveKey expands a secret and salt into a KeySize key bound to info.
// The caller is responsible for clearing the returned key with clearBytes.
func deriveKey(secret, salt []byte, info string) ([]byte, error) {
	hkdfReader := hkdf.New(sha256.New, secret, salt, []byte(info))

	derivedKey := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdfReader, derivedKey); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return derivedKey, nil
}

// clearBytes zeros out a byte slice holding key material.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GenerateKey creates a new random 32-byte key, suitable as a session secret or salt.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
