package fingerprint

import "context"

type clientContextKey struct{}

// WithClient stores client attributes in the context.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientContextKey{}, c)
}

// ClientFromContext returns client attributes stored by WithClient or Middleware.
func ClientFromContext(ctx context.Context) (Client, bool) {
	c, ok := ctx.Value(clientContextKey{}).(Client)
	return c, ok
}
