// AngelaMos | 2026
// manager.go

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/carterperez-dev/balansai/internal/config"
	"github.com/carterperez-dev/balansai/internal/core"
)

type contextKey string

const sessionContextKey contextKey = "session"

const sessionIDBytes = 32

type Manager struct {
	store      Store
	codec      *Codec
	cookieName string
	ttl        time.Duration
	secure     bool
	logger     *slog.Logger
}

func NewManager(store Store, cfg config.SessionConfig, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		store:      store,
		codec:      NewCodec(cfg.SecretKey),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
		logger:     logger,
	}
}

// Middleware attaches the caller's *Session to the request context.
// Missing, tampered or expired cookies yield a fresh anonymous session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.load(r, w)
		ctx := context.WithValue(r.Context(), sessionContextKey, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) load(r *http.Request, w http.ResponseWriter) *Session {
	fresh := &Session{
		manager: m,
		w:       w,
		data:    Data{Principal: Anonymous()},
	}

	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return fresh
	}

	id, err := m.codec.Decode(cookie.Value)
	if err != nil {
		m.logger.Debug("discarding session cookie", "error", err)
		return fresh
	}

	data, err := m.store.Load(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			m.logger.Warn("session store unavailable", "error", err)
		}
		return fresh
	}

	fresh.id = id
	fresh.data = *data
	return fresh
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) error {
	value, err := m.codec.Encode(id)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromContext returns the request's session. Outside the middleware it
// returns a detached anonymous session whose writes are no-ops.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionContextKey).(*Session); ok {
		return s
	}
	return &Session{data: Data{Principal: Anonymous()}}
}

// Session is the typed, per-request view of server-side session state.
// Every mutation is written through to the store immediately so it
// happens before the handler writes its response.
type Session struct {
	manager *Manager
	w       http.ResponseWriter
	id      string
	data    Data
}

func (s *Session) Principal() Principal {
	return s.data.Principal
}

// Login stores p under a newly issued session id, keeping pending flashes.
func (s *Session) Login(ctx context.Context, p Principal) error {
	if err := s.rotate(ctx); err != nil {
		return err
	}
	s.data.Principal = p
	return s.save(ctx)
}

// Demote drops the principal back to anonymous and keeps everything else.
func (s *Session) Demote(ctx context.Context) error {
	s.data.Principal = Anonymous()
	return s.save(ctx)
}

// Clear removes all session state.
func (s *Session) Clear(ctx context.Context) error {
	if s.manager == nil {
		s.data = Data{Principal: Anonymous()}
		return nil
	}

	if s.id != "" {
		if err := s.manager.store.Delete(ctx, s.id); err != nil {
			return err
		}
	}

	s.id = ""
	s.data = Data{Principal: Anonymous()}
	s.manager.clearCookie(s.w)
	return nil
}

func (s *Session) AddFlash(ctx context.Context, category, message string) error {
	s.data.Flashes = append(s.data.Flashes, Flash{Category: category, Message: message})
	return s.save(ctx)
}

// Flashes returns pending notices and removes them from the session.
func (s *Session) Flashes(ctx context.Context) ([]Flash, error) {
	if len(s.data.Flashes) == 0 {
		return nil, nil
	}

	flashes := s.data.Flashes
	s.data.Flashes = nil

	if err := s.save(ctx); err != nil {
		return flashes, err
	}

	return flashes, nil
}

func (s *Session) rotate(ctx context.Context) error {
	if s.manager == nil {
		return nil
	}

	if s.id != "" {
		if err := s.manager.store.Delete(ctx, s.id); err != nil {
			return err
		}
	}

	id, err := core.GenerateSecureToken(sessionIDBytes)
	if err != nil {
		return fmt.Errorf("new session id: %w", err)
	}

	s.id = id
	return s.manager.setCookie(s.w, id)
}

func (s *Session) save(ctx context.Context) error {
	if s.manager == nil {
		return nil
	}

	if s.id == "" {
		if s.data.empty() {
			return nil
		}
		if err := s.rotate(ctx); err != nil {
			return err
		}
	}

	return s.manager.store.Save(ctx, s.id, &s.data, s.manager.ttl)
}
