package session

import (
	"context"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sesskit/pkg/cache"
	"github.com/dmitrymomot/sesskit/pkg/cookie"
	"github.com/dmitrymomot/sesskit/pkg/fingerprint"
	"github.com/dmitrymomot/sesskit/pkg/logger"
	"github.com/dmitrymomot/sesskit/pkg/secrets"
)

// Cache stores encoded session records; *cache.Registry implements it.
type Cache interface {
	Get(ctx context.Context, key, instance string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, instance string) error
	Delete(ctx context.Context, key, instance string) error
}

// Cipher encrypts the token and derives ids and fingerprints; *secrets.Cipher implements it.
type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
	Hash(s string) string
}

// Manager starts sessions for requests. It is immutable after New and safe for concurrent use.
type Manager struct {
	config         Config
	cache          Cache
	cipher         Cipher
	transport      Transport
	cookieManager  *cookie.Manager
	cookieOptions  []cookie.Option
	logger         *slog.Logger
	trustedHeaders []string
	now            func() time.Time
}

// New creates a new session manager with the given options.
// It panics when no cache is configured or the configuration is invalid.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if err := m.config.Validate(); err != nil {
		panic("session: " + err.Error())
	}
	m.config = m.config.normalize()

	// Fail fast on misconfiguration to prevent silently dropping sessions at runtime
	if m.cache == nil {
		panic("session: cache is required")
	}

	if m.cipher == nil {
		m.cipher = secrets.MustNew(m.config.Secret, m.config.SecuritySalt)
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			m.cookieManager = cookie.New(cookie.WithSecure(m.config.SecureCookies))
		}
		m.transport = NewCookieTransportWithSecurity(m.cookieManager, m.config.CookieName, m.config.SecureCookies, m.cookieOptions...)
	}

	m.logger = m.logger.With(logger.Component("session"))

	return m
}

// Config returns the normalized configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Start resumes the session the request's token points to, or mints a new one.
//
// A token that cannot be decrypted is treated as no token. A decrypted id whose
// record is missing or bound to a different client is destroyed before a new
// session is minted. The session is saved before Start returns so its expiry is
// refreshed; a failed save is logged and reported by Persisted. A minted session
// whose token could not be sent is not saved.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, r *http.Request) *Session {
	client, ok := fingerprint.ClientFromContext(ctx)
	if !ok {
		client = fingerprint.FromRequest(r, m.trustedHeaders...)
	}

	s := &Session{manager: m, w: w, client: client}

	id, rec, state, reason := m.validate(ctx, r, client)
	s.state, s.reason = state, reason

	var err error
	switch state {
	case StateValid:
		s.id = id
		s.fingerprint = rec.Fingerprint
		s.since = time.Unix(rec.Since, 0)
		s.values = rec.Values
	case StateInvalid:
		m.logger.DebugContext(ctx, "Session invalidated", logger.SessionID(id), logger.Reason(reason))
		if derr := m.destroy(ctx, w, id); derr != nil {
			m.logger.WarnContext(ctx, "Failed to destroy invalid session", logger.Error(derr))
		}
		err = m.mint(ctx, s)
	default:
		if reason != nil {
			m.logger.DebugContext(ctx, "Session token ignored", logger.Reason(reason))
		}
		err = m.mint(ctx, s)
	}

	// A session whose token never reached the client is not stored.
	if err != nil {
		return s
	}

	// Keep-alive: every request refreshes the record's expiry.
	if err := s.Save(ctx); err != nil {
		m.logger.WarnContext(ctx, "Session keep-alive failed", logger.SessionID(s.id), logger.Error(err))
	}

	return s
}

// validate classifies the request's token. The returned id is the decrypted
// candidate even when the session is invalid, so the caller can destroy it.
func (m *Manager) validate(ctx context.Context, r *http.Request, client fingerprint.Client) (string, Record, State, error) {
	token, err := m.transport.GetToken(r)
	if err != nil || token == "" {
		return "", Record{}, StateAbsent, nil
	}

	id, err := m.decryptToken(token)
	if err != nil {
		return "", Record{}, StateAbsent, errors.Join(ErrCookieUndecryptable, err)
	}
	if isBlank(id) {
		return id, Record{}, StateInvalid, ErrEmptySessionID
	}

	rec, err := m.load(ctx, id)
	if err != nil {
		return id, Record{}, StateInvalid, err
	}

	expected := fingerprint.Compute(m.cipher, id, m.config.Secret, client)
	if !fingerprint.Equal(rec.Fingerprint, expected) {
		return id, Record{}, StateInvalid, ErrFingerprintMismatch
	}

	return id, rec, StateValid, nil
}

// load never distinguishes a miss from a backend or decoding failure: all of them mean "no data".
func (m *Manager) load(ctx context.Context, id string) (Record, error) {
	data, err := m.cache.Get(ctx, m.key(id), m.config.CacheInstance)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			m.logger.WarnContext(ctx, "Failed to load session",
				logger.SessionID(id),
				logger.CacheInstance(m.config.CacheInstance),
				logger.Error(err),
			)
		}
		return Record{}, ErrRecordNotFound
	}

	rec, err := decodeRecord(data)
	if err != nil || rec.empty() {
		return Record{}, ErrRecordNotFound
	}
	return rec, nil
}

// mint gives s a fresh identity and sends its token to the client.
// An error means the client has no token for the new id.
func (m *Manager) mint(ctx context.Context, s *Session) error {
	now := m.now()
	s.id = m.newID(now)
	s.fingerprint = fingerprint.Compute(m.cipher, s.id, m.config.Secret, s.client)
	s.since = time.Unix(now.Unix(), 0)
	s.values = map[string]any{}

	token, err := m.encryptToken(s.id)
	if err != nil {
		m.logger.ErrorContext(ctx, "Failed to encrypt session token", logger.Error(err))
		return err
	}
	if err := m.transport.SetToken(s.w, token); err != nil {
		m.logger.WarnContext(ctx, "Failed to send session token", logger.Error(err))
		return err
	}
	return nil
}

func (m *Manager) destroy(ctx context.Context, w http.ResponseWriter, id string) error {
	var err error
	if !isBlank(id) {
		if derr := m.cache.Delete(ctx, m.key(id), m.config.CacheInstance); derr != nil {
			err = errors.Join(ErrDestroyFailed, derr)
		}
	}
	if cerr := m.transport.ClearToken(w); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

// newID hashes the current time, a random uuid and the secret.
func (m *Manager) newID(now time.Time) string {
	return m.cipher.Hash(strconv.FormatInt(now.UnixNano(), 10) + uuid.NewString() + m.config.Secret)
}

func (m *Manager) key(id string) string {
	return m.config.KeyPrefix + id
}

func (m *Manager) encryptToken(id string) (string, error) {
	ct, err := m.cipher.Encrypt([]byte(id))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(ct), nil
}

func (m *Manager) decryptToken(token string) (string, error) {
	ct, err := hex.DecodeString(token)
	if err != nil {
		return "", err
	}
	plain, err := m.cipher.Decrypt(ct)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
