package worker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ahmedkucuk23/balance-notifications/internal/domain"
)

type fakeDispatcher struct {
	mu     sync.Mutex
	orders []domain.Order
}

func (d *fakeDispatcher) SendPaymentSuccess(_ context.Context, order domain.Order) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orders = append(d.orders, order)
}

func TestPaymentSuccessHandler_Handle(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("dispatches the order from a valid event", func(t *testing.T) {
		dispatcher := &fakeDispatcher{}
		h := NewPaymentSuccessHandler(dispatcher, logger)

		event := domain.PaymentSucceededEvent{
			Order: domain.Order{
				ID:          "order-1",
				OrderNumber: "BC-1001",
				BuyerEmail:  "amina@example.com",
			},
			Timestamp: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			t.Fatalf("failed to marshal event: %v", err)
		}

		if err := h.Handle(context.Background(), payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(dispatcher.orders) != 1 {
			t.Fatalf("expected one dispatched order, got %d", len(dispatcher.orders))
		}
		if dispatcher.orders[0].OrderNumber != "BC-1001" {
			t.Errorf("unexpected order number %q", dispatcher.orders[0].OrderNumber)
		}
	})

	t.Run("drops malformed payloads without dispatching", func(t *testing.T) {
		dispatcher := &fakeDispatcher{}
		h := NewPaymentSuccessHandler(dispatcher, logger)

		if err := h.Handle(context.Background(), []byte("not json")); err == nil {
			t.Fatal("expected an error for a malformed payload")
		}

		if len(dispatcher.orders) != 0 {
			t.Errorf("expected no dispatched orders, got %d", len(dispatcher.orders))
		}
	})
}
