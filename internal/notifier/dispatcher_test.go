package notifier

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/ahmedkucuk23/balance-notifications/internal/domain"
	"github.com/ahmedkucuk23/balance-notifications/internal/mailer"
)

type fakeSender struct {
	mu        sync.Mutex
	sent      []mailer.Email
	messageID string
	err       error
}

func (s *fakeSender) Send(_ context.Context, email mailer.Email) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, email)
	if s.err != nil {
		return "", s.err
	}
	return s.messageID, nil
}

type fakeDates struct {
	label string
	err   error
}

func (d *fakeDates) ActiveEventDate(context.Context) (string, error) {
	return d.label, d.err
}

// recordingHandler captures slog records so tests can assert on level,
// message and attributes.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) attrsOf(i int) map[string]string {
	attrs := make(map[string]string)
	h.records[i].Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	return attrs
}

func order() domain.Order {
	return domain.Order{
		ID:          "7c7a54fe-5c3f-4f9e-9f0a-2d8f4f1f1a10",
		OrderNumber: "BC-1001",
		BuyerName:   "Amina Test",
		BuyerEmail:  "amina@example.com",
		TicketName:  "Early Bird Pass",
		Quantity:    2,
		Subtotal:    100.00,
		Tax:         17.00,
		TotalPrice:  117.00,
		Currency:    "BAM",
	}
}

func TestDispatcher_SendPaymentSuccess(t *testing.T) {
	t.Run("sends rendered email and logs one info line", func(t *testing.T) {
		sender := &fakeSender{messageID: "msg-123"}
		logs := &recordingHandler{}
		d := New(sender, "Balance Conference <tickets@balanceconference.ba>", nil, slog.New(logs))

		d.SendPaymentSuccess(context.Background(), order())

		if len(sender.sent) != 1 {
			t.Fatalf("expected exactly one send attempt, got %d", len(sender.sent))
		}

		email := sender.sent[0]
		if email.To != "amina@example.com" {
			t.Errorf("unexpected recipient %q", email.To)
		}
		if !strings.Contains(email.Subject, "BC-1001") {
			t.Errorf("expected subject to embed the order number, got %q", email.Subject)
		}
		if !strings.Contains(email.HTML, "Amina Test") || !strings.Contains(email.HTML, "117.00 BAM") {
			t.Error("expected rendered order details in email body")
		}

		if len(logs.records) != 1 {
			t.Fatalf("expected exactly one log line, got %d", len(logs.records))
		}
		if logs.records[0].Level != slog.LevelInfo {
			t.Errorf("expected info level, got %s", logs.records[0].Level)
		}

		attrs := logs.attrsOf(0)
		if attrs["order_id"] != order().ID {
			t.Errorf("expected order_id attr, got %q", attrs["order_id"])
		}
		if attrs["order_number"] != "BC-1001" {
			t.Errorf("expected order_number attr, got %q", attrs["order_number"])
		}
		if attrs["to"] != "amina@example.com" {
			t.Errorf("expected to attr, got %q", attrs["to"])
		}
		if attrs["message_id"] != "msg-123" {
			t.Errorf("expected message_id attr, got %q", attrs["message_id"])
		}
	})

	t.Run("swallows transport failure and logs one error line", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("provider rejected recipient")}
		logs := &recordingHandler{}
		d := New(sender, "", nil, slog.New(logs))

		// Must not panic or propagate anything.
		d.SendPaymentSuccess(context.Background(), order())

		if len(sender.sent) != 1 {
			t.Fatalf("expected exactly one send attempt, got %d", len(sender.sent))
		}
		if len(logs.records) != 1 {
			t.Fatalf("expected exactly one log line, got %d", len(logs.records))
		}
		if logs.records[0].Level != slog.LevelError {
			t.Errorf("expected error level, got %s", logs.records[0].Level)
		}

		attrs := logs.attrsOf(0)
		if attrs["order_id"] != order().ID {
			t.Errorf("expected order_id attr, got %q", attrs["order_id"])
		}
		if attrs["order_number"] != "BC-1001" {
			t.Errorf("expected order_number attr, got %q", attrs["order_number"])
		}
		if !strings.Contains(attrs["error"], "provider rejected recipient") {
			t.Errorf("expected error message in attrs, got %q", attrs["error"])
		}
	})

	t.Run("uses placeholder event date without a source", func(t *testing.T) {
		sender := &fakeSender{}
		d := New(sender, "", nil, slog.New(&recordingHandler{}))

		d.SendPaymentSuccess(context.Background(), order())

		if !strings.Contains(sender.sent[0].HTML, PlaceholderEventDate) {
			t.Error("expected placeholder event date in email body")
		}
	})

	t.Run("uses the active conference date when available", func(t *testing.T) {
		sender := &fakeSender{}
		dates := &fakeDates{label: "14-15. juni 2025, Sarajevo"}
		d := New(sender, "", dates, slog.New(&recordingHandler{}))

		d.SendPaymentSuccess(context.Background(), order())

		if !strings.Contains(sender.sent[0].HTML, "14-15. juni 2025, Sarajevo") {
			t.Error("expected conference date in email body")
		}
	})

	t.Run("falls back to placeholder when the date lookup fails", func(t *testing.T) {
		sender := &fakeSender{}
		dates := &fakeDates{err: errors.New("db down")}
		logs := &recordingHandler{}
		d := New(sender, "", dates, slog.New(logs))

		d.SendPaymentSuccess(context.Background(), order())

		if !strings.Contains(sender.sent[0].HTML, PlaceholderEventDate) {
			t.Error("expected placeholder event date in email body")
		}
		// The lookup failure must not add a second log line.
		if len(logs.records) != 1 {
			t.Errorf("expected exactly one log line, got %d", len(logs.records))
		}
	})
}
