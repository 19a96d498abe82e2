package session

import (
	"errors"
	"net/http"
)

// CompositeTransport reads the token from the first transport that carries one
// and writes or clears it on all of them, e.g. a cookie for browsers plus a
// header for API clients.
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport ignores nil transports.
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	t := &CompositeTransport{}
	for _, tr := range transports {
		if tr != nil {
			t.transports = append(t.transports, tr)
		}
	}
	return t
}

func (t *CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, tr := range t.transports {
		if token, err := tr.GetToken(r); err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrTokenNotFound
}

// SetToken writes through every transport and joins their errors.
func (t *CompositeTransport) SetToken(w http.ResponseWriter, token string) error {
	var errs []error
	for _, tr := range t.transports {
		errs = append(errs, tr.SetToken(w, token))
	}
	return errors.Join(errs...)
}

// ClearToken clears every transport and joins their errors.
func (t *CompositeTransport) ClearToken(w http.ResponseWriter) error {
	var errs []error
	for _, tr := range t.transports {
		errs = append(errs, tr.ClearToken(w))
	}
	return errors.Join(errs...)
}
