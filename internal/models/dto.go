package models

// ==================== VPS DTOs ====================

// CreateVPSRequest is the request for POST /api/v1/vps
type CreateVPSRequest struct {
	Name string `json:"name" binding:"required"`
}

// ==================== Account DTOs ====================

// CreateAccountRequest is the request for POST /api/v1/vps/:id/accounts
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// PartitionedAccountsResponse is returned by GET /api/v1/vps/:id/accounts.
// Accounts whose info status is "banned" land in Banned, everything else in Active.
type PartitionedAccountsResponse struct {
	Active []*Account `json:"active"`
	Banned []*Account `json:"banned"`
}

// ==================== AccountInfo DTOs ====================

// UpdateAccountInfoRequest is the request for PATCH /api/v1/accounts/:id/info.
// Absent fields are left unchanged; clear_payment_profile resets the payment
// link and takes precedence over payment_profile_id.
type UpdateAccountInfoRequest struct {
	Gmail               *string `json:"gmail"`
	IPLogin             *string `json:"ip_login"`
	LastPayment         *string `json:"last_payment"`
	Status              *string `json:"status"`
	PaymentProfileID    *int64  `json:"payment_profile_id"`
	ClearPaymentProfile bool    `json:"clear_payment_profile"`
}

// ==================== PaymentProfile DTOs ====================

// CreatePaymentProfileRequest is the request for POST /api/v1/payment-profiles
type CreatePaymentProfileRequest struct {
	Email string `json:"email" binding:"required"`
}

// ==================== Proxy DTOs ====================

// AddProxiesRequest is the request for POST /api/v1/accounts/:id/proxies.
// Proxies holds raw multi-line text, one endpoint per line; blank lines are
// dropped and the rest trimmed.
type AddProxiesRequest struct {
	Proxies string `json:"proxies"`
}

// AddProxiesResponse is returned by POST /api/v1/accounts/:id/proxies
type AddProxiesResponse struct {
	Inserted int `json:"inserted"`
}
