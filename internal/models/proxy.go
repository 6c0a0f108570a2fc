package models

import "time"

// Proxy is a network endpoint string owned by one Account.
type Proxy struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
