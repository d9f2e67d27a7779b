// Package email delivers transactional mail. Production uses Postmark;
// development writes messages to disk so flows can be exercised without an
// email provider account.
package email

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrFailedToSend  = errors.New("email: failed to send")
	ErrInvalidConfig = errors.New("email: invalid configuration")
	ErrInvalidParams = errors.New("email: invalid send parameters")
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Sender sends a single transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound transactional email.
type Message struct {
	To       string
	Subject  string
	BodyHTML string
	Tag      string
}

// Validate checks the message is deliverable before handing it to a provider.
func (m Message) Validate() error {
	if !emailRegex.MatchString(m.To) {
		return fmt.Errorf("%w: recipient %q is not a valid address", ErrInvalidParams, m.To)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if m.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}

// Config holds email delivery configuration. Postmark tokens are optional so
// development environments can run with the file-based sender instead.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@acme.localhost"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@acme.localhost"`
	DevOutputDir         string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}
