package session

import "context"

type sessionContextKey struct{}

// WithSession adds a session to the context
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// FromContext retrieves a session from the context
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok && session != nil
}

// MustFromContext retrieves a session from the context or panics
func MustFromContext(ctx context.Context) *Session {
	session, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return session
}

// Get returns the value stored under key in the request's session.
func Get(ctx context.Context, key string) (any, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}
	v, ok := s.Get(key)
	if !ok {
		return nil, ErrValueNotFound
	}
	return v, nil
}

// Set stores a value in the request's session.
func Set(ctx context.Context, key string, value any) error {
	s, ok := FromContext(ctx)
	if !ok {
		return ErrNoSession
	}
	return s.Set(ctx, key, value)
}

// Delete removes a value from the request's session.
func Delete(ctx context.Context, key string) error {
	s, ok := FromContext(ctx)
	if !ok {
		return ErrNoSession
	}
	return s.Delete(ctx, key)
}

// Destroy ends the request's session. Without a session it does nothing.
func Destroy(ctx context.Context) error {
	s, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	return s.Destroy(ctx)
}

// CurrentID returns the request's session id, or "" when there is none.
func CurrentID(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.ID()
}
