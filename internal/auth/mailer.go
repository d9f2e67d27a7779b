package auth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/acmedash/acmedash/pkg/email"
)

// Mailer composes and sends the authentication emails. Links point at the
// verification callback with the token and type as query parameters.
type Mailer struct {
	sender  email.Sender
	baseURL string
}

// NewMailer creates a Mailer. baseURL is the externally reachable origin of
// this application, without a trailing slash.
func NewMailer(sender email.Sender, baseURL string) *Mailer {
	return &Mailer{sender: sender, baseURL: baseURL}
}

// SendSignupConfirmation emails the account confirmation link.
func (m *Mailer) SendSignupConfirmation(ctx context.Context, to, tok string) error {
	link := m.confirmLink(tok, TokenTypeSignup, "/dashboard")
	return m.sender.Send(ctx, email.Message{
		To:      to,
		Subject: "Confirm your Acme account",
		Tag:     "signup-confirmation",
		BodyHTML: fmt.Sprintf(
			`<p>Welcome to Acme.</p><p><a href="%s">Confirm your email address</a> to activate your account.</p>`,
			link,
		),
	})
}

// SendPasswordReset emails the password recovery link.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, tok string) error {
	link := m.confirmLink(tok, TokenTypeRecovery, "")
	return m.sender.Send(ctx, email.Message{
		To:      to,
		Subject: "Reset your Acme password",
		Tag:     "password-reset",
		BodyHTML: fmt.Sprintf(
			`<p>We received a request to reset your password.</p><p><a href="%s">Choose a new password</a>. The link expires in one hour.</p><p>If you did not request this, you can ignore this email.</p>`,
			link,
		),
	})
}

func (m *Mailer) confirmLink(tok, typ, next string) string {
	q := url.Values{}
	q.Set("token_hash", tok)
	q.Set("type", typ)
	if next != "" {
		q.Set("next", next)
	}
	return m.baseURL + "/auth/confirm?" + q.Encode()
}
