package models

import "time"

// PaymentProfile is a reusable payment identity (PayPal email), optionally
// linked from AccountInfo. Emails are unique.
type PaymentProfile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
