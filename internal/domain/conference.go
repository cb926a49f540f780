package domain

import "time"

// Conference holds the notification-side configuration for an edition of the
// conference. EventDateLabel is a free-text display string ("14-15. juni
// 2025, Sarajevo"), not a parsed date.
type Conference struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	EventDateLabel string    `json:"event_date_label"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}
