package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sesskit/pkg/fingerprint"
	"github.com/dmitrymomot/sesskit/pkg/httpserver"
	"github.com/dmitrymomot/sesskit/pkg/logger"
	"github.com/dmitrymomot/sesskit/pkg/ratelimiter"
	"github.com/dmitrymomot/sesskit/pkg/requestid"
	"github.com/dmitrymomot/sesskit/pkg/session"
)

const maxBodySize = 64 << 10

type routerConfig struct {
	log              *slog.Logger
	trustedHeaders   []string
	readinessTimeout time.Duration
	checks           []httpserver.Check
	limiter          *ratelimiter.Bucket // nil disables limiting
}

type sessionView struct {
	ID      string         `json:"id"`
	Since   int64          `json:"since"`
	State   string         `json:"state"`
	Resumed bool           `json:"resumed"`
	Values  map[string]any `json:"values"`
}

type errorView struct {
	Error string `json:"error"`
}

func newRouter(manager *session.Manager, cfg routerConfig) http.Handler {
	if cfg.log == nil {
		cfg.log = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(cfg.log, cfg.readinessTimeout, cfg.checks...))

	h := handlers{log: cfg.log}
	r.Group(func(r chi.Router) {
		r.Use(fingerprint.Middleware(cfg.trustedHeaders...))
		r.Use(manager.Middleware)
		if cfg.limiter != nil {
			r.Use(ratelimiter.Middleware(cfg.limiter, mintKey(cfg.trustedHeaders...), cfg.log,
				ratelimiter.WithOnLimited(discardMinted(cfg.log))))
		}

		r.Get("/session", h.show)
		r.Delete("/session", h.destroy)
		r.Get("/session/{key}", h.getValue)
		r.Put("/session/{key}", h.setValue)
		r.Delete("/session/{key}", h.deleteValue)
	})

	return r
}

// mintKey charges the client's bucket only when the request minted a session.
// Resumed sessions are never limited.
func mintKey(trustedHeaders ...string) ratelimiter.KeyFunc {
	byAddress := ratelimiter.ByClientAddress(trustedHeaders...)
	return func(r *http.Request) string {
		if s, ok := session.FromContext(r.Context()); ok && s.Resumed() {
			return ""
		}
		return byAddress(r)
	}
}

// discardMinted destroys a session minted by a request that was then limited,
// so neither its record nor its cookie outlives the 429.
func discardMinted(log *slog.Logger) func(http.ResponseWriter, *http.Request) {
	return func(_ http.ResponseWriter, r *http.Request) {
		if err := session.Destroy(r.Context()); err != nil {
			log.WarnContext(r.Context(), "Failed to discard throttled session", logger.Error(err))
		}
	}
}

type handlers struct {
	log *slog.Logger
}

func (h handlers) show(w http.ResponseWriter, r *http.Request) {
	s := session.MustFromContext(r.Context())
	state, _ := s.Validation()
	writeJSON(w, http.StatusOK, sessionView{
		ID:      s.ID(),
		Since:   s.Since().Unix(),
		State:   state.String(),
		Resumed: s.Resumed(),
		Values:  s.Values(),
	})
}

func (h handlers) destroy(w http.ResponseWriter, r *http.Request) {
	if err := session.Destroy(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handlers) getValue(w http.ResponseWriter, r *http.Request) {
	v, err := session.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h handlers) setValue(w http.ResponseWriter, r *http.Request) {
	var v any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorView{Error: "invalid JSON body"})
		return
	}
	if err := session.Set(r.Context(), chi.URLParam(r, "key"), v); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h handlers) deleteValue(w http.ResponseWriter, r *http.Request) {
	if err := session.Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrValueNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrEmptySessionID):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "Session operation failed", logger.Error(err))
	}
	writeJSON(w, status, errorView{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
