package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Manager handles session lifecycle and the cookie round trip. The cookie
// carries only the opaque token; all state lives in the Store.
type Manager struct {
	store  Store
	config Config
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore overrides the default in-memory store.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// New creates a session manager.
func New(cfg Config, opts ...Option) *Manager {
	m := &Manager{config: cfg}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMemoryStore(cfg.CleanupInterval)
	}
	return m
}

// Get retrieves the session bound to the request cookie.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.config.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrSessionNotFound
	}

	session, err := m.store.Get(ctx, cookie.Value)
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Authenticate binds the request to userID under a fresh token. Any existing
// session is discarded so login always rotates the cookie value.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*Session, error) {
	if cookie, err := r.Cookie(m.config.CookieName); err == nil && cookie.Value != "" {
		_ = m.store.Delete(ctx, cookie.Value)
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	idle, max := m.config.timeouts(true)
	now := time.Now()
	session := newSession(token, &userID, expiry(now, now, idle, max))

	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}

	m.setCookie(w, token, idle)
	return session, nil
}

// Destroy deletes the session and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(m.config.CookieName); err == nil && cookie.Value != "" {
		_ = m.store.Delete(ctx, cookie.Value)
	}

	m.clearCookie(w)
	return nil
}

// DestroyAll deletes every session belonging to the user, ending logins on
// other devices too.
func (m *Manager) DestroyAll(ctx context.Context, userID uuid.UUID) error {
	return m.store.DeleteByUserID(ctx, userID.String())
}

// touchActivity records activity when the threshold has passed. Store errors
// are ignored; activity tracking is best effort.
func (m *Manager) touchActivity(ctx context.Context, session *Session) {
	if time.Since(session.LastActivityAt) < m.config.ActivityUpdateThreshold {
		return
	}
	_ = m.store.UpdateActivity(ctx, session.Token, time.Now())
}

func (m *Manager) setCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// expiry returns the sooner of idle and max lifetime deadlines.
func expiry(createdAt, now time.Time, idle, max time.Duration) time.Time {
	idleExpiry := now.Add(idle)
	maxExpiry := createdAt.Add(max)
	if maxExpiry.Before(idleExpiry) {
		return maxExpiry
	}
	return idleExpiry
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
