package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory with a periodic janitor for
// expired entries. Suitable for development and tests; production uses redis.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ticker   *time.Ticker
	done     chan struct{}
}

// NewMemoryStore creates an in-memory session store. A positive
// cleanupInterval starts the janitor.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

func (m *MemoryStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copy := *session
	m.sessions[session.Token] = &copy
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	m.mu.RLock()
	session, exists := m.sessions[token]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, ErrSessionExpired
	}

	copy := *session
	return &copy, nil
}

func (m *MemoryStore) UpdateActivity(ctx context.Context, token string, lastActivity time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[token]
	if !exists {
		return ErrSessionNotFound
	}

	session.LastActivityAt = lastActivity
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}

func (m *MemoryStore) DeleteByUserID(ctx context.Context, userID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for token, session := range m.sessions {
		if session.UserID != nil && *session.UserID == uid {
			delete(m.sessions, token)
		}
	}

	return nil
}

// Close stops the janitor.
func (m *MemoryStore) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
		close(m.done)
	}
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.deleteExpired()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryStore) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for token, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, token)
		}
	}
}
