// Package mailer abstracts outbound transactional email behind a small
// Sender interface so the delivery provider can be swapped (or faked in
// tests) without touching the notification logic.
package mailer

import "context"

// Email is a fully prepared message. HTML is the complete document body;
// there is no templating at this layer.
type Email struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers an email and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
}
