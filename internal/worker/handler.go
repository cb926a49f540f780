// Package worker consumes payment.succeeded events and hands each order to
// the notification dispatcher.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ahmedkucuk23/balance-notifications/internal/domain"
)

// Dispatcher sends the confirmation email for one order. It never fails;
// delivery problems are its own concern.
type Dispatcher interface {
	SendPaymentSuccess(ctx context.Context, order domain.Order)
}

type PaymentSuccessHandler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewPaymentSuccessHandler(dispatcher Dispatcher, logger *slog.Logger) *PaymentSuccessHandler {
	return &PaymentSuccessHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle decodes one payment.succeeded event and dispatches the email. A
// payload that doesn't decode is dropped; the consumer runs in ack-always
// mode, so the returned error only marks the span.
func (h *PaymentSuccessHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.PaymentSucceededEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Error("dropping malformed payment.succeeded event", "error", err)
		return fmt.Errorf("unmarshal payment succeeded event: %w", err)
	}

	h.logger.Info("processing payment.succeeded event",
		"order_id", event.Order.ID,
		"order_number", event.Order.OrderNumber)

	h.dispatcher.SendPaymentSuccess(ctx, event.Order)
	return nil
}
