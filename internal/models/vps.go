package models

import "time"

// VPS is the top-level grouping for accounts. Names are unique.
type VPS struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
