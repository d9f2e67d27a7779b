package auth

import "errors"

// General authentication errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// One-time token errors.
var (
	ErrTokenInvalid     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenAlreadyUsed = errors.New("token already used")
	ErrUnknownTokenType = errors.New("unknown token type")
)

// OAuth errors.
var (
	ErrInvalidState    = errors.New("invalid oauth state")
	ErrStateNotFound   = errors.New("oauth state not found or expired")
	ErrInvalidCode     = errors.New("invalid oauth code")
	ErrUnverifiedEmail = errors.New("email not verified by provider")
	ErrNoPrimaryEmail  = errors.New("no primary email from provider")
)
