package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side session bound to a browser via an opaque cookie
// token. Anonymous sessions carry a nil UserID until login upgrades them.
type Session struct {
	ID             uuid.UUID  `json:"id"`
	Token          string     `json:"token"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	ExpiresAt      time.Time  `json:"expires_at"`
	LastActivityAt time.Time  `json:"last_activity_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

func newSession(token string, userID *uuid.UUID, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		UserID:         userID,
		ExpiresAt:      expiresAt,
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// IsAuthenticated reports whether the session belongs to a logged-in user.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != nil
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Touch updates the last activity time.
func (s *Session) Touch() {
	if s != nil {
		s.LastActivityAt = time.Now()
	}
}
