package auth

import (
	"time"

	"github.com/google/uuid"
)

// Authentication method identifiers recorded on the user account.
const (
	MethodPassword    = "password"
	MethodOAuthGoogle = "oauth_google"
)

// User represents an account in the credential store. The password hash is
// kept out of this struct on purpose; it is only reachable through the
// storage interface used by the password service.
type User struct {
	ID         uuid.UUID
	Email      string
	Name       string
	AuthMethod string
	IsVerified bool
	CreatedAt  time.Time
}
