package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestResend_Send(t *testing.T) {
	t.Run("fails fast without an API key", func(t *testing.T) {
		s := NewResend(ResendConfig{})

		_, err := s.Send(context.Background(), Email{
			To:      "amina@example.com",
			Subject: "Potvrda narudžbe BC-1001",
			HTML:    "<html></html>",
		})
		if err == nil {
			t.Fatal("expected an error without an API key")
		}
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("expected ErrMissingAPIKey, got %v", err)
		}
		if !strings.Contains(err.Error(), "RESEND_API_KEY") {
			t.Errorf("expected the error to name the missing variable, got %q", err.Error())
		}
	})

	t.Run("defaults the from address", func(t *testing.T) {
		s := NewResend(ResendConfig{APIKey: "re_test"})
		if s.cfg.From != DefaultFrom {
			t.Errorf("expected default from address, got %q", s.cfg.From)
		}
	})
}
