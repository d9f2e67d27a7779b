package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/acmedash/acmedash/pkg/logger"
	"github.com/acmedash/acmedash/pkg/sanitizer"
	"github.com/acmedash/acmedash/pkg/token"
	"github.com/acmedash/acmedash/pkg/validator"
)

// MinPasswordLength is the minimum accepted password length, matching the
// registration and reset form schemas.
const MinPasswordLength = 6

// PasswordAuthenticator defines password-based authentication operations.
type PasswordAuthenticator interface {
	Authenticate(ctx context.Context, email, password string) (*User, error)
	Register(ctx context.Context, email, password string) (*User, error)
	ForgotPassword(ctx context.Context, email string) (*PasswordResetRequest, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) (*User, error)
}

// PasswordStorage defines the credential-store operations required for
// password authentication.
type PasswordStorage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	StorePasswordHash(ctx context.Context, userID uuid.UUID, hash []byte) error
	GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// TokenConsumer marks one-time token keys as used. Consume must be atomic:
// the second call with the same key returns ErrTokenAlreadyUsed.
type TokenConsumer interface {
	Consume(ctx context.Context, key string, expiresAt time.Time) error
}

// PasswordResetRequest carries a generated recovery token back to the caller.
type PasswordResetRequest struct {
	Email     string
	Token     string
	ExpiresAt time.Time
}

type passwordService struct {
	storage     PasswordStorage
	consumer    TokenConsumer
	mailer      *Mailer
	tokenSecret string
	bcryptCost  int
	logger      *slog.Logger

	resetTokenTTL  time.Duration
	signupTokenTTL time.Duration
}

// PasswordOption configures the password service.
type PasswordOption func(*passwordService)

func WithPasswordLogger(log *slog.Logger) PasswordOption {
	return func(s *passwordService) { s.logger = log }
}

func WithBcryptCost(cost int) PasswordOption {
	return func(s *passwordService) { s.bcryptCost = cost }
}

func WithResetTokenTTL(ttl time.Duration) PasswordOption {
	return func(s *passwordService) { s.resetTokenTTL = ttl }
}

func WithSignupTokenTTL(ttl time.Duration) PasswordOption {
	return func(s *passwordService) { s.signupTokenTTL = ttl }
}

// WithMailer enables confirmation and reset emails. Without it the service
// still works; the links are only logged, which is what tests want.
func WithMailer(m *Mailer) PasswordOption {
	return func(s *passwordService) { s.mailer = m }
}

// NewPasswordService creates a password authentication service.
func NewPasswordService(storage PasswordStorage, consumer TokenConsumer, tokenSecret string, opts ...PasswordOption) PasswordAuthenticator {
	s := &passwordService{
		storage:        storage,
		consumer:       consumer,
		tokenSecret:    tokenSecret,
		bcryptCost:     bcrypt.DefaultCost,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		resetTokenTTL:  1 * time.Hour,
		signupTokenTTL: 24 * time.Hour,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Authenticate verifies email and password. Input-shape problems come back
// as field-keyed validation errors without touching the store; every other
// failure collapses into ErrInvalidCredentials so callers cannot tell an
// unknown email from a wrong password.
func (s *passwordService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.Required("password", password),
	); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	hash, err := s.storage.GetPasswordHash(ctx, user.ID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Register creates an unverified user and emails a signup confirmation link.
func (s *passwordService) Register(ctx context.Context, email, password string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.MinLen("password", password, MinPasswordLength),
	); err != nil {
		return nil, err
	}

	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:         uuid.New(),
		Email:      email,
		AuthMethod: MethodPassword,
		IsVerified: false,
		CreatedAt:  time.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.storage.StorePasswordHash(ctx, user.ID, hash); err != nil {
		// Remove the half-created account so the email is not burned.
		if deleteErr := s.storage.DeleteUser(ctx, user.ID); deleteErr != nil {
			s.logger.Error("failed to clean up user after password save failure",
				logger.UserID(user.ID.String()),
				logger.Error(deleteErr),
				logger.Component("auth.password"),
			)
		}
		return nil, fmt.Errorf("failed to save password: %w", err)
	}

	confirmToken, expiresAt, err := s.issueToken(user.Email, TokenTypeSignup, s.signupTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendSignupConfirmation(ctx, user.Email, confirmToken); err != nil {
			s.logger.Error("failed to send signup confirmation email",
				logger.UserID(user.ID.String()),
				logger.Error(err),
				logger.Component("auth.password"),
			)
		}
	} else {
		s.logger.Info("signup confirmation token issued",
			slog.String("email", user.Email),
			slog.Time("expires_at", expiresAt),
			logger.Component("auth.password"),
		)
	}

	return user, nil
}

// ForgotPassword generates a recovery token for the given email and mails the
// reset link. Handlers report success regardless of account existence; the
// error return is for logging only.
func (s *passwordService) ForgotPassword(ctx context.Context, email string) (*PasswordResetRequest, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(validator.ValidEmail("email", email)); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	resetToken, expiresAt, err := s.issueToken(user.Email, TokenTypeRecovery, s.resetTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(ctx, user.Email, resetToken); err != nil {
			return nil, fmt.Errorf("failed to send reset email: %w", err)
		}
	}

	return &PasswordResetRequest{
		Email:     email,
		Token:     resetToken,
		ExpiresAt: expiresAt,
	}, nil
}

// ResetPassword sets a new password using a recovery token. The mutating step
// is itself single-use: a consumed reset key rejects replays even though the
// token already passed link verification.
func (s *passwordService) ResetPassword(ctx context.Context, resetToken, newPassword string) (*User, error) {
	if err := validator.Apply(
		validator.MinLen("password", newPassword, MinPasswordLength),
	); err != nil {
		return nil, err
	}

	payload, err := token.Parse[TokenPayload](resetToken, s.tokenSecret)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if payload.Subject != TokenTypeRecovery {
		return nil, ErrTokenInvalid
	}
	if payload.Expired(time.Now()) {
		return nil, ErrTokenExpired
	}

	if err := s.consumer.Consume(ctx, "reset:"+payload.ID, time.Unix(payload.ExpireAt, 0)); err != nil {
		if errors.Is(err, ErrTokenAlreadyUsed) {
			return nil, ErrTokenAlreadyUsed
		}
		return nil, fmt.Errorf("failed to consume reset token: %w", err)
	}

	user, err := s.storage.GetUserByEmail(ctx, payload.Email)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.storage.StorePasswordHash(ctx, user.ID, hash); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	return user, nil
}

func (s *passwordService) issueToken(email, subject string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	tok, err := token.Generate(TokenPayload{
		ID:       uuid.New().String(),
		Email:    email,
		Subject:  subject,
		ExpireAt: expiresAt.Unix(),
	}, s.tokenSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, expiresAt, nil
}
