package session

import "errors"

var (
	// ErrEmptySessionID is returned when persisting a session without an id, e.g. after Destroy.
	ErrEmptySessionID = errors.New("session.empty_id")

	// ErrSaveFailed wraps cache or encoding failures while persisting a session.
	ErrSaveFailed = errors.New("session.save_failed")

	// ErrDestroyFailed wraps cache failures while deleting a session record.
	ErrDestroyFailed = errors.New("session.destroy_failed")

	// ErrValueNotFound indicates the key is not set in the session.
	ErrValueNotFound = errors.New("session.value_not_found")

	// ErrNoSession indicates the context carries no session.
	ErrNoSession = errors.New("session.not_in_context")

	// ErrTokenNotFound indicates the request carries no session token.
	ErrTokenNotFound = errors.New("session.token_not_found")

	// ErrCookieUndecryptable indicates the token could not be decoded or decrypted.
	ErrCookieUndecryptable = errors.New("session.cookie_undecryptable")

	// ErrRecordNotFound indicates no usable record is stored for the session id.
	ErrRecordNotFound = errors.New("session.record_not_found")

	// ErrFingerprintMismatch indicates the request does not match the client the session is bound to.
	ErrFingerprintMismatch = errors.New("session.fingerprint_mismatch")

	// ErrInvalidSaveMode indicates an unknown SESSION_SAVE_MODE value.
	ErrInvalidSaveMode = errors.New("session.invalid_save_mode")
)
