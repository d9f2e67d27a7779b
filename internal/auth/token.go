package auth

import "time"

// One-time token types, mirroring the link types delivered by email.
const (
	TokenTypeSignup      = "signup"
	TokenTypeRecovery    = "recovery"
	TokenTypeEmailChange = "email_change"
)

// KnownTokenType reports whether typ is a member of the closed token enum.
func KnownTokenType(typ string) bool {
	switch typ {
	case TokenTypeSignup, TokenTypeRecovery, TokenTypeEmailChange:
		return true
	}
	return false
}

// TokenPayload is the signed content of every one-time token. The ID makes
// the token single-use: it is consumed in the token store on the first
// successful verification.
type TokenPayload struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Subject  string `json:"sub"`
	ExpireAt int64  `json:"exp"`
}

// Expired reports whether the payload's deadline has passed.
func (p TokenPayload) Expired(now time.Time) bool {
	return now.Unix() > p.ExpireAt
}
