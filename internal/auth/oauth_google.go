package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuthProviderGoogle is the Google provider identifier.
const OAuthProviderGoogle = "google"

// GoogleOAuthConfig holds configuration for the Google provider.
type GoogleOAuthConfig struct {
	ClientID     string        `env:"GOOGLE_OAUTH_CLIENT_ID"`
	ClientSecret string        `env:"GOOGLE_OAUTH_CLIENT_SECRET"`
	RedirectURL  string        `env:"GOOGLE_OAUTH_REDIRECT_URL" envDefault:"http://localhost:8080/auth/google/callback"`
	Scopes       []string      `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," envDefault:"https://www.googleapis.com/auth/userinfo.email"`
	StateTTL     time.Duration `env:"GOOGLE_OAUTH_STATE_TTL" envDefault:"10m"`
	VerifiedOnly bool          `env:"GOOGLE_OAUTH_VERIFIED_ONLY" envDefault:"true"`
}

// Enabled reports whether Google sign-in is configured.
func (c GoogleOAuthConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type googleAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewGoogleAdapter creates the Google OAuth provider adapter.
func NewGoogleAdapter(cfg GoogleOAuthConfig) ProviderAdapter {
	return &googleAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *googleAdapter) ProviderID() string {
	return OAuthProviderGoogle
}

func (a *googleAdapter) AuthURL(state string) (string, error) {
	return a.conf.AuthCodeURL(state), nil
}

func (a *googleAdapter) ResolveProfile(ctx context.Context, code string) (ProviderProfile, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		// Exchange failures are indistinguishable from expired codes here.
		return ProviderProfile{}, ErrInvalidCode
	}

	u, err := a.fetchUserinfo(ctx, tok.AccessToken)
	if err != nil {
		return ProviderProfile{}, fmt.Errorf("fetch google userinfo: %w", err)
	}
	if u.Email == "" {
		return ProviderProfile{}, ErrNoPrimaryEmail
	}

	return ProviderProfile{
		ProviderUserID: u.ID,
		Email:          u.Email,
		EmailVerified:  u.VerifiedEmail,
		Name:           u.Name,
		AvatarURL:      u.Picture,
	}, nil
}

type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (a *googleAdapter) fetchUserinfo(ctx context.Context, accessToken string) (*googleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned status %d", resp.StatusCode)
	}

	var user googleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ ProviderAdapter = (*googleAdapter)(nil)
