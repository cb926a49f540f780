package mailer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/resend/resend-go/v2"
)

// ErrMissingAPIKey is returned when a send is attempted without a Resend
// API key configured. It surfaces on first use, not at construction, so
// binaries that never send email don't need the credential.
var ErrMissingAPIKey = errors.New("missing Resend API key (set RESEND_API_KEY)")

// DefaultFrom is used when no from-address is configured.
const DefaultFrom = "Balance Conference <tickets@balanceconference.ba>"

type ResendConfig struct {
	APIKey string
	From   string
}

// Resend sends email through the Resend HTTP API. The underlying client is
// built lazily on the first Send.
type Resend struct {
	cfg    ResendConfig
	once   sync.Once
	client *resend.Client
}

func NewResend(cfg ResendConfig) *Resend {
	if cfg.From == "" {
		cfg.From = DefaultFrom
	}
	return &Resend{cfg: cfg}
}

func (s *Resend) Send(ctx context.Context, email Email) (string, error) {
	if s.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	s.once.Do(func() {
		s.client = resend.NewClient(s.cfg.APIKey)
	})

	from := email.From
	if from == "" {
		from = s.cfg.From
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}

	return sent.Id, nil
}
