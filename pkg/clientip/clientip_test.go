package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sesskit/pkg/clientip"
)

func TestRemoteIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		remoteAddr string
		expected   string
	}{
		{"ipv4 with port", "192.0.2.10:54321", "192.0.2.10"},
		{"ipv6 with port", "[2001:db8::1]:443", "2001:db8::1"},
		{"no port", "192.0.2.10", "192.0.2.10"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			assert.Equal(t, tt.expected, clientip.RemoteIP(r))
		})
	}
}

func TestRemoteIPIgnoresHeaders(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("X-Forwarded-For", "203.0.113.7")

	assert.Equal(t, "10.0.0.1", clientip.RemoteIP(r))
}

func TestGetIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		headers    map[string]string
		trusted    []string
		remoteAddr string
		expected   string
	}{
		{
			name: "CF-Connecting-IP has priority",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"X-Forwarded-For":  "192.168.1.1",
			},
			trusted:    clientip.DefaultProxyHeaders,
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name:       "first valid entry of X-Forwarded-For",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip, 198.51.100.4, 10.0.0.1"},
			trusted:    clientip.DefaultProxyHeaders,
			remoteAddr: "172.16.0.1:54321",
			expected:   "198.51.100.4",
		},
		{
			name:       "invalid header falls through to next header",
			headers:    map[string]string{"CF-Connecting-IP": "garbage", "X-Real-IP": "10.1.1.1"},
			trusted:    clientip.DefaultProxyHeaders,
			remoteAddr: "172.16.0.1:54321",
			expected:   "10.1.1.1",
		},
		{
			name:       "untrusted header ignored",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9"},
			trusted:    []string{"X-Real-IP"},
			remoteAddr: "172.16.0.1:54321",
			expected:   "172.16.0.1",
		},
		{
			name:       "no trusted headers",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9"},
			remoteAddr: "172.16.0.1:54321",
			expected:   "172.16.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientip.GetIP(r, tt.trusted...))
		})
	}
}
