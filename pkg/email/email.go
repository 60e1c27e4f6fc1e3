package email

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by a provider whose credentials are missing.
// It surfaces on the first send attempt rather than at startup.
var ErrNotConfigured = errors.New("email provider is not configured")

// Message is a single transactional email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Sender delivers a message and returns the provider-assigned message id.
// Implementations make exactly one attempt per call.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ProviderError carries the provider's own error detail for operator logs.
type ProviderError struct {
	Provider   string
	StatusCode int
	Name       string
	Detail     string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Provider, e.Name, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Detail)
}

func (m Message) validate() error {
	if m.From == "" {
		return errors.New("email: missing sender")
	}
	if len(m.To) == 0 {
		return errors.New("email: missing recipient")
	}
	if m.Subject == "" {
		return errors.New("email: missing subject")
	}
	return nil
}
