package domain

// Order is the record the ticket shop posts after a completed purchase.
// Monetary amounts are carried as-is and formatted with two decimals for
// display; the service never recomputes them, so total_price is trusted to
// already equal subtotal - discount + tax.
type Order struct {
	ID                string  `json:"id"`
	OrderNumber       string  `json:"order_number"`
	BuyerName         string  `json:"buyer_name"`
	BuyerEmail        string  `json:"buyer_email"`
	TicketName        string  `json:"ticket_name"`
	TicketDescription string  `json:"ticket_description,omitempty"`
	Quantity          int     `json:"quantity"`
	Subtotal          float64 `json:"subtotal"`
	Discount          float64 `json:"discount"`
	Tax               float64 `json:"tax"`
	TotalPrice        float64 `json:"total_price"`
	Currency          string  `json:"currency"`
}

// OrderConfirmation is the view model the email template renders. It is the
// Order narrowed to display fields plus the resolved event-date label.
type OrderConfirmation struct {
	OrderNumber       string
	BuyerName         string
	BuyerEmail        string
	TicketName        string
	TicketDescription string
	Quantity          int
	Subtotal          float64
	Discount          float64
	Tax               float64
	TotalPrice        float64
	Currency          string
	EventDate         string
}
