// Package notifier sends the order-confirmation email for a completed ticket
// purchase. Delivery is best-effort: the purchase is already confirmed by the
// time this runs, so a failed email is logged and dropped, never propagated.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ahmedkucuk23/balance-notifications/internal/domain"
	"github.com/ahmedkucuk23/balance-notifications/internal/mailer"
	"github.com/ahmedkucuk23/balance-notifications/internal/mailtemplate"
)

// PlaceholderEventDate is shown when no active conference is configured.
const PlaceholderEventDate = "Uskoro / To be announced"

// EventDateSource resolves the display label for the conference date, e.g.
// a lookup against the conferences table. An empty label means unknown.
type EventDateSource interface {
	ActiveEventDate(ctx context.Context) (string, error)
}

type Dispatcher struct {
	sender mailer.Sender
	from   string
	dates  EventDateSource
	logger *slog.Logger
	sends  metric.Int64Counter
}

// New builds a Dispatcher. dates may be nil, in which case the placeholder
// event date is used for every email.
func New(sender mailer.Sender, from string, dates EventDateSource, logger *slog.Logger) *Dispatcher {
	sends, err := otel.Meter("notifier").Int64Counter("notifier.emails.sent",
		metric.WithDescription("Order-confirmation email send attempts by outcome"))
	if err != nil {
		logger.Error("failed to create email counter", "error", err)
	}

	return &Dispatcher{
		sender: sender,
		from:   from,
		dates:  dates,
		logger: logger,
		sends:  sends,
	}
}

// SendPaymentSuccess renders and sends the confirmation email for one order.
// It never returns an error: exactly one send attempt and exactly one log
// line (info on success, error on failure) per call, no retries.
func (d *Dispatcher) SendPaymentSuccess(ctx context.Context, order domain.Order) {
	confirmation := d.confirmation(ctx, order)
	body := mailtemplate.RenderOrderConfirmation(confirmation)

	messageID, err := d.sender.Send(ctx, mailer.Email{
		From:    d.from,
		To:      order.BuyerEmail,
		Subject: fmt.Sprintf("Potvrda narudžbe %s - Balance Conference", order.OrderNumber),
		HTML:    body,
	})
	if err != nil {
		d.count(ctx, "failed")
		d.logger.Error("failed to send order confirmation",
			"order_id", order.ID,
			"order_number", order.OrderNumber,
			"error", err)
		return
	}

	d.count(ctx, "sent")
	d.logger.Info("order confirmation sent",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"to", order.BuyerEmail,
		"message_id", messageID)
}

// confirmation maps the order onto the template's view model. The event date
// is cosmetic, so a failed or empty lookup silently falls back to the
// placeholder rather than adding a second log line or failing the send.
func (d *Dispatcher) confirmation(ctx context.Context, order domain.Order) domain.OrderConfirmation {
	eventDate := PlaceholderEventDate
	if d.dates != nil {
		if label, err := d.dates.ActiveEventDate(ctx); err == nil && label != "" {
			eventDate = label
		}
	}

	return domain.OrderConfirmation{
		OrderNumber:       order.OrderNumber,
		BuyerName:         order.BuyerName,
		BuyerEmail:        order.BuyerEmail,
		TicketName:        order.TicketName,
		TicketDescription: order.TicketDescription,
		Quantity:          order.Quantity,
		Subtotal:          order.Subtotal,
		Discount:          order.Discount,
		Tax:               order.Tax,
		TotalPrice:        order.TotalPrice,
		Currency:          order.Currency,
		EventDate:         eventDate,
	}
}

func (d *Dispatcher) count(ctx context.Context, status string) {
	if d.sends == nil {
		return
	}
	d.sends.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
