package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/cache"
	"github.com/dmitrymomot/sesskit/pkg/secrets"
	"github.com/dmitrymomot/sesskit/pkg/session"
)

const (
	testSecret     = "test-session-secret"
	testSalt       = "test-security-salt"
	testCookieName = "test_sess"
	testUserAgent  = "Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0"
)

type testEnv struct {
	manager  *session.Manager
	registry *cache.Registry
	cipher   *secrets.Cipher
}

func setupManager(t testing.TB, opts ...session.Option) testEnv {
	t.Helper()

	backend := cache.NewMemoryBackend(1000, 0)
	t.Cleanup(func() { _ = backend.Close() })

	registry := cache.NewRegistry()
	registry.Register(cache.DefaultInstance, backend, cache.WithDuration(30*time.Minute))

	cipher := secrets.MustNew(testSecret, testSalt)

	cfg := session.DefaultConfig()
	cfg.CookieName = testCookieName
	cfg.Secret = testSecret
	cfg.SecuritySalt = testSalt

	base := []session.Option{
		session.WithConfig(cfg),
		session.WithCache(registry),
		session.WithCipher(cipher),
	}

	return testEnv{
		manager:  session.New(append(base, opts...)...),
		registry: registry,
		cipher:   cipher,
	}
}

func newRequest(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	r.RemoteAddr = "192.0.2.10:51234"
	r.Header.Set("User-Agent", testUserAgent)
	for _, c := range cookies {
		if c != nil {
			r.AddCookie(c)
		}
	}
	return r
}

// lastCookie returns the final Set-Cookie for name; browsers apply them in order.
func lastCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

func cookiesNamed(w *httptest.ResponseRecorder, name string) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// startFresh mints a session and returns it with the cookie the client would replay.
func startFresh(t *testing.T, env testEnv) (*session.Session, *http.Cookie) {
	t.Helper()
	w := httptest.NewRecorder()
	s := env.manager.Start(context.Background(), w, newRequest())
	c := lastCookie(w, testCookieName)
	require.NotNil(t, c)
	return s, c
}

func storedRecord(t *testing.T, env testEnv, id string) (session.Record, error) {
	t.Helper()
	data, err := env.registry.Get(context.Background(), session.DefaultKeyPrefix+id, cache.DefaultInstance)
	if err != nil {
		return session.Record{}, err
	}
	var rec session.Record
	require.NoError(t, json.Unmarshal(data, &rec))
	return rec, nil
}

// countingCache records writes and can be switched to fail.
type countingCache struct {
	mu      sync.Mutex
	next    session.Cache
	sets    int
	deletes int
	failSet bool
	failGet bool
}

var errBackendDown = errors.New("backend down")

func (c *countingCache) Get(ctx context.Context, key, instance string) ([]byte, error) {
	c.mu.Lock()
	fail := c.failGet
	c.mu.Unlock()
	if fail {
		return nil, errBackendDown
	}
	return c.next.Get(ctx, key, instance)
}

func (c *countingCache) Set(ctx context.Context, key string, value []byte, instance string) error {
	c.mu.Lock()
	c.sets++
	fail := c.failSet
	c.mu.Unlock()
	if fail {
		return errBackendDown
	}
	return c.next.Set(ctx, key, value, instance)
}

func (c *countingCache) Delete(ctx context.Context, key, instance string) error {
	c.mu.Lock()
	c.deletes++
	c.mu.Unlock()
	return c.next.Delete(ctx, key, instance)
}

func (c *countingCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}
