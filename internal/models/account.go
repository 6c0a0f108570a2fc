package models

import "time"

// Account status constants (held in AccountInfo.Status)
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPaused   = "paused"
	StatusBanned   = "banned"
)

// ValidStatus reports whether s is one of the enumerated account statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusPaused, StatusBanned:
		return true
	}
	return false
}

// Account is a provisioned identity tracked under one VPS.
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	VPSID     int64     `json:"vps_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountInfo is the 1:1 mutable metadata record for an Account.
// Every account has exactly one after creation; reads self-heal a missing row.
type AccountInfo struct {
	ID               int64     `json:"id"`
	AccountID        int64     `json:"account_id"`
	Gmail            string    `json:"gmail"`
	IPLogin          string    `json:"ip_login"`
	Status           string    `json:"status"`
	LastPayment      string    `json:"last_payment"`
	PaymentProfileID *int64    `json:"payment_profile_id"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AccountInfoUpdate carries a partial update for an AccountInfo row.
// Nil fields are left untouched. ClearPaymentProfile wins over
// PaymentProfileID and resets the link to none.
type AccountInfoUpdate struct {
	Gmail               *string
	IPLogin             *string
	LastPayment         *string
	Status              *string
	PaymentProfileID    *int64
	ClearPaymentProfile bool
}
