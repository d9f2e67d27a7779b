package session

import "errors"

var (
	// ErrSessionNotFound indicates no session exists for the presented token.
	ErrSessionNotFound = errors.New("session: not found")

	// ErrSessionExpired indicates the session is past its expiry.
	ErrSessionExpired = errors.New("session: expired")

	// ErrInvalidSession indicates a malformed or empty session.
	ErrInvalidSession = errors.New("session: invalid")

	// ErrTokenGeneration indicates the random token source failed.
	ErrTokenGeneration = errors.New("session: token generation failed")
)
