package session

import (
	"net/http"

	"github.com/dmitrymomot/sesskit/pkg/logger"
)

// Middleware starts a session for every request and stores it in the request context.
// Changes pending in deferred mode are flushed after the handler returns.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := m.Start(r.Context(), w, r)
		ctx := WithSession(r.Context(), session)

		next.ServeHTTP(w, r.WithContext(ctx))

		if err := session.Flush(ctx); err != nil {
			m.logger.WarnContext(ctx, "Failed to flush session", logger.SessionID(session.ID()), logger.Error(err))
		}
	})
}
