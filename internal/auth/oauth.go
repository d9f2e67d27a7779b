package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/acmedash/acmedash/pkg/sanitizer"
)

// ProviderAdapter hides provider-specific OAuth protocol details behind the
// two primitives the coordinator needs.
type ProviderAdapter interface {
	// ProviderID returns a stable identifier used for storage and logging.
	ProviderID() string

	// AuthURL builds the provider authorization URL for the given state token.
	AuthURL(state string) (string, error)

	// ResolveProfile exchanges an authorization code for a normalized profile.
	// Invalid or expired codes come back as ErrInvalidCode.
	ResolveProfile(ctx context.Context, code string) (ProviderProfile, error)
}

// ProviderProfile is the normalized identity returned by a provider.
type ProviderProfile struct {
	ProviderUserID string
	Email          string
	EmailVerified  bool
	Name           string
	AvatarURL      string
}

// OAuthStorage defines the storage operations required for the OAuth flow.
type OAuthStorage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// StoreState persists a state token for CSRF protection.
	StoreState(ctx context.Context, state string, expiresAt time.Time) error
	// ConsumeState atomically removes a stored state, returning
	// ErrStateNotFound if it does not exist or was already consumed.
	ConsumeState(ctx context.Context, state string) error
}

// OAuthService coordinates the redirect handshake with a single provider.
// Each sign-in attempt is a fresh redirect; there are no retries.
type OAuthService struct {
	storage      OAuthStorage
	adapter      ProviderAdapter
	logger       *slog.Logger
	stateTTL     time.Duration
	verifiedOnly bool
}

// OAuthOption configures an OAuthService.
type OAuthOption func(*OAuthService)

func WithOAuthLogger(log *slog.Logger) OAuthOption {
	return func(s *OAuthService) { s.logger = log }
}

func WithStateTTL(ttl time.Duration) OAuthOption {
	return func(s *OAuthService) { s.stateTTL = ttl }
}

// WithVerifiedOnly controls whether unverified provider emails are rejected.
func WithVerifiedOnly(verifiedOnly bool) OAuthOption {
	return func(s *OAuthService) { s.verifiedOnly = verifiedOnly }
}

// NewOAuthService constructs the coordinator. Defaults: verified-only, state
// tokens valid for 10 minutes.
func NewOAuthService(storage OAuthStorage, adapter ProviderAdapter, opts ...OAuthOption) *OAuthService {
	s := &OAuthService{
		storage:      storage,
		adapter:      adapter,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		stateTTL:     10 * time.Minute,
		verifiedOnly: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAuthURL generates the provider redirect URL with a stored one-time
// state token.
func (s *OAuthService) GetAuthURL(ctx context.Context) (string, error) {
	state, err := generateState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	if err := s.storage.StoreState(ctx, state, time.Now().Add(s.stateTTL)); err != nil {
		return "", fmt.Errorf("failed to store state: %w", err)
	}

	url, err := s.adapter.AuthURL(state)
	if err != nil {
		return "", fmt.Errorf("failed to build auth url: %w", err)
	}
	return url, nil
}

// Auth handles the provider callback: consumes the state, exchanges the code
// and finds or creates the local user.
func (s *OAuthService) Auth(ctx context.Context, code, state string) (*User, error) {
	if err := s.storage.ConsumeState(ctx, state); err != nil {
		if errors.Is(err, ErrStateNotFound) {
			return nil, ErrInvalidState
		}
		return nil, fmt.Errorf("failed to validate state: %w", err)
	}

	profile, err := s.adapter.ResolveProfile(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("failed to resolve provider profile: %w", err)
	}

	if profile.Email == "" {
		return nil, ErrNoPrimaryEmail
	}
	profile.Email = sanitizer.NormalizeEmail(profile.Email)

	if s.verifiedOnly && !profile.EmailVerified {
		return nil, ErrUnverifiedEmail
	}

	user, err := s.storage.GetUserByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user = &User{
		ID:         uuid.New(),
		Email:      profile.Email,
		Name:       profile.Name,
		AuthMethod: "oauth_" + s.adapter.ProviderID(),
		IsVerified: true,
		CreatedAt:  time.Now(),
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
