package session

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/sesskit/pkg/fingerprint"
	"github.com/dmitrymomot/sesskit/pkg/logger"
)

// State is the outcome of validating the incoming request's session.
type State int

const (
	// StateAbsent means the request carried no usable token.
	StateAbsent State = iota
	// StateValid means the stored session was resumed.
	StateValid
	// StateInvalid means a token was present but its session could not be resumed.
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return "absent"
	}
}

// Session is the server-side state of one client, scoped to a single request.
// It is not safe for concurrent use.
type Session struct {
	manager *Manager
	w       http.ResponseWriter
	client  fingerprint.Client

	id          string
	since       time.Time
	fingerprint string
	values      map[string]any

	state     State
	reason    error
	dirty     bool
	persisted bool
	destroyed bool
}

// ID returns the session id, empty after Destroy.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Since returns the creation time with second precision.
func (s *Session) Since() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.since
}

// Fingerprint returns the client binding stored with the session.
func (s *Session) Fingerprint() string {
	if s == nil {
		return ""
	}
	return s.fingerprint
}

// Validation reports how the incoming request was classified by Start and why.
// The reason is nil for a resumed session and for a request without a token.
func (s *Session) Validation() (State, error) {
	if s == nil {
		return StateAbsent, nil
	}
	return s.state, s.reason
}

// Resumed reports whether Start continued an existing session instead of minting one.
func (s *Session) Resumed() bool {
	return s != nil && s.state == StateValid
}

// Persisted reports whether the last save reached the cache.
func (s *Session) Persisted() bool {
	return s != nil && s.persisted
}

// Get retrieves a value from session data
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.values == nil {
		return nil, false
	}
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string value from session data
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from session data.
// Numbers loaded from the cache arrive as float64.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from session data
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Values returns a copy of all session values.
func (s *Session) Values() map[string]any {
	if s == nil {
		return map[string]any{}
	}
	return cloneValues(s.values)
}

// Set stores a value. In write-through mode it is persisted before Set returns.
func (s *Session) Set(ctx context.Context, key string, value any) error {
	if s == nil || isBlank(s.id) {
		return ErrEmptySessionID
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[key] = value
	return s.changed(ctx)
}

// Delete removes a value. Removing a missing key still counts as a change.
func (s *Session) Delete(ctx context.Context, key string) error {
	if s == nil || isBlank(s.id) {
		return ErrEmptySessionID
	}
	delete(s.values, key)
	return s.changed(ctx)
}

func (s *Session) changed(ctx context.Context) error {
	if s.manager.config.SaveMode == SaveDeferred {
		s.dirty = true
		return nil
	}
	return s.Save(ctx)
}

// Save writes the session record to the cache, refreshing its expiry.
func (s *Session) Save(ctx context.Context) error {
	if s == nil || isBlank(s.id) {
		return ErrEmptySessionID
	}

	data, err := encodeRecord(s.record())
	if err != nil {
		s.persisted = false
		return errors.Join(ErrSaveFailed, err)
	}

	m := s.manager
	if err := m.cache.Set(ctx, m.key(s.id), data, m.config.CacheInstance); err != nil {
		s.persisted = false
		m.logger.WarnContext(ctx, "Failed to save session",
			logger.SessionID(s.id),
			logger.CacheInstance(m.config.CacheInstance),
			logger.Error(err),
		)
		return errors.Join(ErrSaveFailed, err)
	}

	s.dirty = false
	s.persisted = true
	return nil
}

// Flush saves pending changes made in deferred mode. It is a no-op when nothing changed.
func (s *Session) Flush(ctx context.Context) error {
	if s == nil || !s.dirty || s.destroyed {
		return nil
	}
	return s.Save(ctx)
}

// Destroy deletes the stored record, expires the cookie and wipes the id and values.
// Calling it again is a no-op.
func (s *Session) Destroy(ctx context.Context) error {
	if s == nil || s.destroyed {
		return nil
	}
	err := s.manager.destroy(ctx, s.w, s.id)

	s.id = ""
	s.fingerprint = ""
	s.values = map[string]any{}
	s.since = time.Time{}
	s.dirty = false
	s.persisted = false
	s.destroyed = true

	return err
}

func (s *Session) record() Record {
	return Record{
		SessionID:   s.id,
		Since:       s.since.Unix(),
		Fingerprint: s.fingerprint,
		Values:      maps.Clone(s.values),
	}
}

func isBlank(id string) bool {
	return strings.TrimSpace(id) == ""
}
