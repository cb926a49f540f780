package domain

import "time"

// PaymentSucceededEvent is published on the payment.succeeded topic once the
// shop has confirmed a purchase. The event is keyed by the order id.
type PaymentSucceededEvent struct {
	Order     Order     `json:"order"`
	Timestamp time.Time `json:"timestamp"`
}
