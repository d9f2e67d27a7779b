package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/acmedash/acmedash/pkg/logger"
	"github.com/acmedash/acmedash/pkg/token"
)

// VerifierStorage defines the storage operations required for one-time token
// verification.
type VerifierStorage interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUserVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

// TokenVerifier validates one-time tokens delivered through email links.
type TokenVerifier struct {
	storage     VerifierStorage
	consumer    TokenConsumer
	tokenSecret string
	logger      *slog.Logger
}

// VerifierOption configures a TokenVerifier.
type VerifierOption func(*TokenVerifier)

func WithVerifierLogger(log *slog.Logger) VerifierOption {
	return func(v *TokenVerifier) { v.logger = log }
}

// NewTokenVerifier creates the verification service backing the email
// confirmation callback.
func NewTokenVerifier(storage VerifierStorage, consumer TokenConsumer, tokenSecret string, opts ...VerifierOption) *TokenVerifier {
	v := &TokenVerifier{
		storage:     storage,
		consumer:    consumer,
		tokenSecret: tokenSecret,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks a one-time token of the given type and consumes it. The
// token is single-use: a second call with the same token returns
// ErrTokenAlreadyUsed. Verifying a signup token marks the account verified.
func (v *TokenVerifier) Verify(ctx context.Context, tokenHash, typ string) (*User, error) {
	if !KnownTokenType(typ) {
		return nil, ErrUnknownTokenType
	}

	payload, err := token.Parse[TokenPayload](tokenHash, v.tokenSecret)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if payload.Subject != typ {
		return nil, ErrTokenInvalid
	}
	if payload.Expired(time.Now()) {
		return nil, ErrTokenExpired
	}

	if err := v.consumer.Consume(ctx, "verify:"+payload.ID, time.Unix(payload.ExpireAt, 0)); err != nil {
		if errors.Is(err, ErrTokenAlreadyUsed) {
			return nil, ErrTokenAlreadyUsed
		}
		return nil, fmt.Errorf("failed to consume token: %w", err)
	}

	user, err := v.storage.GetUserByEmail(ctx, payload.Email)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if typ == TokenTypeSignup && !user.IsVerified {
		if err := v.storage.UpdateUserVerified(ctx, user.ID, true); err != nil {
			// The token was already consumed; log and carry on rather than
			// stranding the user on the error page.
			v.logger.Error("failed to mark user verified",
				logger.UserID(user.ID.String()),
				logger.Error(err),
				logger.Component("auth.verify"),
			)
		}
		user.IsVerified = true
	}

	return user, nil
}
