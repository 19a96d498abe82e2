package fingerprint

import "net/http"

// Middleware resolves the client attributes once per request and stores them in the context.
func Middleware(trustedHeaders ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithClient(r.Context(), FromRequest(r, trustedHeaders...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
