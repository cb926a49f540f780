// Package notifyapi is the HTTP boundary the ticket shop calls after a
// completed purchase. The endpoint is fire-and-forget from the shop's point
// of view: it always answers 202 once the order record is readable, whether
// the email goes out via Kafka, inline, or not at all.
package notifyapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ahmedkucuk23/balance-notifications/internal/domain"
)

type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Dispatcher interface {
	SendPaymentSuccess(ctx context.Context, order domain.Order)
}

type Handler struct {
	producer   Publisher
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewHandler wires the endpoint. producer may be nil (no Kafka configured),
// in which case every order is dispatched inline.
func NewHandler(producer Publisher, dispatcher Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{
		producer:   producer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *Handler) HandlePaymentSuccess(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if order.OrderNumber == "" {
		h.writeError(w, http.StatusBadRequest, "missing order_number")
		return
	}
	if order.BuyerEmail == "" {
		h.writeError(w, http.StatusBadRequest, "missing buyer_email")
		return
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	if h.producer != nil {
		event := domain.PaymentSucceededEvent{
			Order:     order,
			Timestamp: time.Now().UTC(),
		}
		if err := h.producer.Publish(r.Context(), order.ID, event); err != nil {
			// Broker trouble must not lose the email; fall back to inline.
			h.logger.Error("failed to publish payment.succeeded event",
				"error", err, "order_id", order.ID, "order_number", order.OrderNumber)
			h.dispatcher.SendPaymentSuccess(r.Context(), order)
		}
	} else {
		h.dispatcher.SendPaymentSuccess(r.Context(), order)
	}

	h.logger.Info("payment success notification accepted",
		"order_id", order.ID, "order_number", order.OrderNumber)

	h.writeJSON(w, http.StatusAccepted, map[string]string{
		"status":       "accepted",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
