package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vpsfleet/inventory-service/internal/models"
	"github.com/vpsfleet/inventory-service/internal/service"
)

// Inventory is what the handlers need from the domain layer.
type Inventory interface {
	CreateVPS(ctx context.Context, name string) (*models.VPS, error)
	ListVPS(ctx context.Context) ([]*models.VPS, error)
	CreateAccount(ctx context.Context, vpsID int64, name string) (*models.Account, error)
	ListAccountsPartitioned(ctx context.Context, vpsID int64) (active, banned []*models.Account, err error)
	DeleteAccount(ctx context.Context, accountID int64) error
	GetOrCreateAccountInfo(ctx context.Context, accountID int64) (*models.AccountInfo, error)
	UpdateAccountInfo(ctx context.Context, accountID int64, upd models.AccountInfoUpdate) (*models.AccountInfo, error)
	CreatePaymentProfile(ctx context.Context, email string) (*models.PaymentProfile, error)
	ListPaymentProfiles(ctx context.Context) ([]*models.PaymentProfile, error)
	AddProxies(ctx context.Context, accountID int64, rawText string) (int, error)
	ListProxies(ctx context.Context, accountID int64) ([]*models.Proxy, error)
	DeleteProxy(ctx context.Context, proxyID int64) error
}

type Handler struct {
	inventory Inventory
}

func NewHandler(inventory Inventory) *Handler {
	return &Handler{inventory: inventory}
}

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// ==================== VPS Handlers ====================

// CreateVPS handles POST /api/v1/vps
func (h *Handler) CreateVPS(c *gin.Context) {
	var req models.CreateVPSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.inventory.CreateVPS(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, v)
}

// ListVPS handles GET /api/v1/vps
func (h *Handler) ListVPS(c *gin.Context) {
	list, err := h.inventory.ListVPS(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if list == nil {
		list = []*models.VPS{}
	}

	c.JSON(http.StatusOK, gin.H{"vps": list})
}

// ==================== Account Handlers ====================

// CreateAccount handles POST /api/v1/vps/:id/accounts
func (h *Handler) CreateAccount(c *gin.Context) {
	vpsID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.inventory.CreateAccount(c.Request.Context(), vpsID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

// ListAccounts handles GET /api/v1/vps/:id/accounts; banned accounts are
// partitioned out of the active list.
func (h *Handler) ListAccounts(c *gin.Context) {
	vpsID, ok := pathID(c, "id")
	if !ok {
		return
	}

	active, banned, err := h.inventory.ListAccountsPartitioned(c.Request.Context(), vpsID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.PartitionedAccountsResponse{Active: active, Banned: banned}
	if resp.Active == nil {
		resp.Active = []*models.Account{}
	}
	if resp.Banned == nil {
		resp.Banned = []*models.Account{}
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteAccount handles DELETE /api/v1/accounts/:id. Safe to repeat.
func (h *Handler) DeleteAccount(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.inventory.DeleteAccount(c.Request.Context(), accountID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ==================== AccountInfo Handlers ====================

// GetAccountInfo handles GET /api/v1/accounts/:id/info
func (h *Handler) GetAccountInfo(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.inventory.GetOrCreateAccountInfo(c.Request.Context(), accountID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// UpdateAccountInfo handles PATCH /api/v1/accounts/:id/info
func (h *Handler) UpdateAccountInfo(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateAccountInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := h.inventory.UpdateAccountInfo(c.Request.Context(), accountID, models.AccountInfoUpdate{
		Gmail:               req.Gmail,
		IPLogin:             req.IPLogin,
		LastPayment:         req.LastPayment,
		Status:              req.Status,
		PaymentProfileID:    req.PaymentProfileID,
		ClearPaymentProfile: req.ClearPaymentProfile,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// ==================== PaymentProfile Handlers ====================

// CreatePaymentProfile handles POST /api/v1/payment-profiles
func (h *Handler) CreatePaymentProfile(c *gin.Context) {
	var req models.CreatePaymentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.inventory.CreatePaymentProfile(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListPaymentProfiles handles GET /api/v1/payment-profiles
func (h *Handler) ListPaymentProfiles(c *gin.Context) {
	list, err := h.inventory.ListPaymentProfiles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if list == nil {
		list = []*models.PaymentProfile{}
	}

	c.JSON(http.StatusOK, gin.H{"payment_profiles": list})
}

// ==================== Proxy Handlers ====================

// AddProxies handles POST /api/v1/accounts/:id/proxies. The body carries raw
// multi-line text; blank lines are dropped.
func (h *Handler) AddProxies(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.AddProxiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inserted, err := h.inventory.AddProxies(c.Request.Context(), accountID, req.Proxies)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.AddProxiesResponse{Inserted: inserted})
}

// ListProxies handles GET /api/v1/accounts/:id/proxies
func (h *Handler) ListProxies(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.inventory.ListProxies(c.Request.Context(), accountID)
	if err != nil {
		writeError(c, err)
		return
	}
	if list == nil {
		list = []*models.Proxy{}
	}

	c.JSON(http.StatusOK, gin.H{"proxies": list})
}

// DeleteProxy handles DELETE /api/v1/proxies/:id. Safe to repeat.
func (h *Handler) DeleteProxy(c *gin.Context) {
	proxyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.inventory.DeleteProxy(c.Request.Context(), proxyID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
