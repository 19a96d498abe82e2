package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
)

// Cipher encrypts, decrypts and hashes with keys derived from a secret and a salt.
// A Cipher is immutable and safe for concurrent use.
type Cipher struct {
	aead    cipher.AEAD
	hashKey []byte
}

// New derives the encryption and hashing keys from secret and salt.
// An empty secret is accepted: the cipher still works, but its keys are
// only as unpredictable as the salt.
func New(secret, salt string) (*Cipher, error) {
	encKey, err := deriveKey([]byte(secret), []byte(salt), encryptionInfo)
	if err != nil {
		return nil, err
	}
	defer clearBytes(encKey)

	hashKey, err := deriveKey([]byte(secret), []byte(salt), hashInfo)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return &Cipher{aead: aesGCM, hashKey: hashKey}, nil
}

// MustNew is like New but panics on error.
func MustNew(secret, salt string) *Cipher {
	c, err := New(secret, salt)
	if err != nil {
		panic("secrets: " + err.Error())
	}
	return c
}

// Encrypt seals plaintext with AES-256-GCM.
// Returns ciphertext in format: nonce + encrypted data + tag.
// Every call uses a fresh random nonce, so equal plaintexts encrypt differently.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens ciphertext produced by Encrypt.
// Tampered input or a cipher built from another secret yields ErrDecryptionFailed.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(ciphertext) < nonceSize+c.aead.Overhead() {
		return nil, ErrInvalidCiphertext
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	return plaintext, nil
}

// Hash returns the hex-encoded HMAC-SHA256 of s under the cipher's hashing key.
// It is deterministic for a given secret and salt.
func (c *Cipher) Hash(s string) string {
	mac := hmac.New(sha256.New, c.hashKey)
	mac.Write([]byte(s))
	return hex.EncodeToString(mac.Sum(nil))
}

// EncryptString encrypts s and returns the ciphertext hex-encoded.
func (c *Cipher) EncryptString(s string) (string, error) {
	ciphertext, err := c.Encrypt([]byte(s))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(ciphertext), nil
}

// DecryptString reverses EncryptString.
func (c *Cipher) DecryptString(encoded string) (string, error) {
	ciphertext, err := hex.DecodeString(encoded)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}

	plaintext, err := c.Decrypt(ciphertext)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
