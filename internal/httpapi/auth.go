package httpapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/acmedash/acmedash/internal/auth"
	"github.com/acmedash/acmedash/internal/session"
	"github.com/acmedash/acmedash/pkg/logger"
	"github.com/acmedash/acmedash/pkg/sanitizer"
	"github.com/acmedash/acmedash/pkg/validator"
)

const genericLoginError = "Invalid email or password."

// AuthHandler serves the credential, email-token and OAuth flows.
type AuthHandler struct {
	password auth.PasswordAuthenticator
	verifier *auth.TokenVerifier
	oauth    *auth.OAuthService
	sessions *session.Manager
	logger   *slog.Logger
}

// NewAuthHandler creates the auth handler. oauth may be nil when no provider
// is configured; the routes are simply not registered.
func NewAuthHandler(
	password auth.PasswordAuthenticator,
	verifier *auth.TokenVerifier,
	oauth *auth.OAuthService,
	sessions *session.Manager,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &AuthHandler{
		password: password,
		verifier: verifier,
		oauth:    oauth,
		sessions: sessions,
		logger:   log,
	}
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	sanitizer.TrimSpace(&email)

	if err := validator.Apply(
		validator.WithMessage(
			validator.ValidEmail("email", email),
			"Please enter a valid email address.",
		),
		validator.Required("password", password),
	); err != nil {
		respondValidation(w, validator.Extract(err))
		return
	}

	user, err := h.password.Authenticate(r.Context(), email, password)
	if err != nil {
		// Every authentication failure looks the same to the client.
		respondError(w, http.StatusUnauthorized, genericLoginError)
		return
	}

	if _, err := h.sessions.Authenticate(r.Context(), w, r, user.ID); err != nil {
		h.logger.Error("failed to establish session",
			logger.UserID(user.ID.String()),
			logger.Error(err),
			logger.Component("httpapi.auth"),
		)
		respondError(w, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}

	respondRedirect(w, r, "/dashboard")
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	passwordConfirm := r.PostFormValue("passwordConfirm")
	sanitizer.TrimSpace(&email)

	if err := validator.Apply(
		validator.WithMessage(
			validator.ValidEmail("email", email),
			"Please enter a valid email address.",
		),
		validator.WithMessage(
			validator.MinLen("password", password, auth.MinPasswordLength),
			"Password must contain at least 6 characters",
		),
		validator.Matches("passwordConfirm", password, passwordConfirm, "Passwords do not match."),
	); err != nil {
		respondValidation(w, validator.Extract(err))
		return
	}

	if _, err := h.password.Register(r.Context(), email, password); err != nil {
		if errors.Is(err, auth.ErrEmailAlreadyExists) {
			respondError(w, http.StatusConflict, "Email already in use")
			return
		}
		h.logger.Error("registration failed",
			logger.Error(err),
			logger.Component("httpapi.auth"),
		)
		respondError(w, http.StatusInternalServerError, "Registration failed. Please try again.")
		return
	}

	respondRedirect(w, r, "/register/confirmation")
}

// ForgotPassword handles POST /forgot-password. The confirmation redirect is
// identical whether or not the account exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	sanitizer.TrimSpace(&email)

	if err := validator.Apply(
		validator.WithMessage(
			validator.ValidEmail("email", email),
			"Please enter a valid email address.",
		),
	); err != nil {
		respondValidation(w, validator.Extract(err))
		return
	}

	if _, err := h.password.ForgotPassword(r.Context(), email); err != nil {
		h.logger.Info("password reset requested for unknown account",
			logger.Error(err),
			logger.Component("httpapi.auth"),
		)
	}

	respondRedirect(w, r, "/forgot-password/confirmation")
}

// ResetPassword handles POST /reset-password. A successful reset logs the
// user in, mirroring the recovery-link flow.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PostFormValue("token")
	password := r.PostFormValue("password")
	passwordConfirm := r.PostFormValue("passwordConfirm")

	if err := validator.Apply(
		validator.WithMessage(
			validator.MinLen("password", password, auth.MinPasswordLength),
			"Password must contain at least 6 characters",
		),
		validator.Matches("passwordConfirm", password, passwordConfirm, "Passwords do not match."),
	); err != nil {
		respondValidation(w, validator.Extract(err))
		return
	}

	user, err := h.password.ResetPassword(r.Context(), token, password)
	if err != nil {
		h.logger.Info("password reset rejected",
			logger.Error(err),
			logger.Component("httpapi.auth"),
		)
		respondError(w, http.StatusUnauthorized, "Invalid or expired reset link.")
		return
	}

	if _, err := h.sessions.Authenticate(r.Context(), w, r, user.ID); err != nil {
		h.logger.Error("failed to establish session after reset",
			logger.UserID(user.ID.String()),
			logger.Error(err),
			logger.Component("httpapi.auth"),
		)
	}

	respondRedirect(w, r, "/dashboard")
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		h.logger.Error("failed to destroy session",
			logger.Error(err),
			logger.Component("httpapi.auth"),
		)
	}
	respondRedirect(w, r, "/login")
}

// Confirm handles GET /auth/confirm?token_hash=&type=&next=. Recovery links
// bounce to the reset form carrying the still-valid token; every other valid
// type lands on next (default /dashboard). Any failure ends on /error.
func (h *AuthHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	tokenHash := r.URL.Query().Get("token_hash")
	typ := r.URL.Query().Get("type")
	next := r.URL.Query().Get("next")
	if next == "" {
		next = "/dashboard"
	}

	if tokenHash == "" || typ == "" {
		http.Redirect(w, r, "/error", http.StatusSeeOther)
		return
	}

	user, err := h.verifier.Verify(r.Context(), tokenHash, typ)
	if err != nil {
		h.logger.Info("token verification failed",
			slog.String("type", typ),
			logger.Error(err),
			logger.Component("httpapi.auth"),
		)
		http.Redirect(w, r, "/error", http.StatusSeeOther)
		return
	}

	if typ == auth.TokenTypeRecovery {
		http.Redirect(w, r,
			"/forgot-password/reset-password?token="+url.QueryEscape(tokenHash),
			http.StatusSeeOther,
		)
		return
	}

	h.logger.Info("email confirmed",
		logger.UserID(user.ID.String()),
		slog.String("type", typ),
		logger.Component("httpapi.auth"),
	)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// GoogleSignIn handles GET /auth/google.
func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.oauth.GetAuthURL(r.Context())
	if err != nil {
		h.logger.Error("failed to start oauth flow",
			logger.Error(err),
			logger.Component("httpapi.auth"),
		)
		http.Redirect(w, r, "/error", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, authURL, http.StatusSeeOther)
}

// GoogleCallback handles GET /auth/google/callback.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	user, err := h.oauth.Auth(r.Context(), code, state)
	if err != nil {
		h.logger.Info("oauth callback failed",
			logger.Error(err),
			logger.Component("httpapi.auth"),
		)
		http.Redirect(w, r, "/error", http.StatusSeeOther)
		return
	}

	if _, err := h.sessions.Authenticate(r.Context(), w, r, user.ID); err != nil {
		h.logger.Error("failed to establish session",
			logger.UserID(user.ID.String()),
			logger.Error(err),
			logger.Component("httpapi.auth"),
		)
		http.Redirect(w, r, "/error", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
