package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpsfleet/inventory-service/internal/config"
	"github.com/vpsfleet/inventory-service/internal/models"
	"github.com/vpsfleet/inventory-service/internal/service"
)

// stubInventory implements Inventory with overridable function fields.
type stubInventory struct {
	createVPS               func(ctx context.Context, name string) (*models.VPS, error)
	listVPS                 func(ctx context.Context) ([]*models.VPS, error)
	createAccount           func(ctx context.Context, vpsID int64, name string) (*models.Account, error)
	listAccountsPartitioned func(ctx context.Context, vpsID int64) ([]*models.Account, []*models.Account, error)
	deleteAccount           func(ctx context.Context, accountID int64) error
	getOrCreateAccountInfo  func(ctx context.Context, accountID int64) (*models.AccountInfo, error)
	updateAccountInfo       func(ctx context.Context, accountID int64, upd models.AccountInfoUpdate) (*models.AccountInfo, error)
	createPaymentProfile    func(ctx context.Context, email string) (*models.PaymentProfile, error)
	listPaymentProfiles     func(ctx context.Context) ([]*models.PaymentProfile, error)
	addProxies              func(ctx context.Context, accountID int64, rawText string) (int, error)
	listProxies             func(ctx context.Context, accountID int64) ([]*models.Proxy, error)
	deleteProxy             func(ctx context.Context, proxyID int64) error
}

func (s *stubInventory) CreateVPS(ctx context.Context, name string) (*models.VPS, error) {
	return s.createVPS(ctx, name)
}
func (s *stubInventory) ListVPS(ctx context.Context) ([]*models.VPS, error) {
	return s.listVPS(ctx)
}
func (s *stubInventory) CreateAccount(ctx context.Context, vpsID int64, name string) (*models.Account, error) {
	return s.createAccount(ctx, vpsID, name)
}
func (s *stubInventory) ListAccountsPartitioned(ctx context.Context, vpsID int64) ([]*models.Account, []*models.Account, error) {
	return s.listAccountsPartitioned(ctx, vpsID)
}
func (s *stubInventory) DeleteAccount(ctx context.Context, accountID int64) error {
	return s.deleteAccount(ctx, accountID)
}
func (s *stubInventory) GetOrCreateAccountInfo(ctx context.Context, accountID int64) (*models.AccountInfo, error) {
	return s.getOrCreateAccountInfo(ctx, accountID)
}
func (s *stubInventory) UpdateAccountInfo(ctx context.Context, accountID int64, upd models.AccountInfoUpdate) (*models.AccountInfo, error) {
	return s.updateAccountInfo(ctx, accountID, upd)
}
func (s *stubInventory) CreatePaymentProfile(ctx context.Context, email string) (*models.PaymentProfile, error) {
	return s.createPaymentProfile(ctx, email)
}
func (s *stubInventory) ListPaymentProfiles(ctx context.Context) ([]*models.PaymentProfile, error) {
	return s.listPaymentProfiles(ctx)
}
func (s *stubInventory) AddProxies(ctx context.Context, accountID int64, rawText string) (int, error) {
	return s.addProxies(ctx, accountID, rawText)
}
func (s *stubInventory) ListProxies(ctx context.Context, accountID int64) ([]*models.Proxy, error) {
	return s.listProxies(ctx, accountID)
}
func (s *stubInventory) DeleteProxy(ctx context.Context, proxyID int64) error {
	return s.deleteProxy(ctx, proxyID)
}

func newTestServer(inv Inventory) *Server {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", Mode: "test"},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewServer(cfg, nil, inv, logger)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubInventory{})
	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateVPSHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		srv := newTestServer(&stubInventory{
			createVPS: func(_ context.Context, name string) (*models.VPS, error) {
				return &models.VPS{ID: 1, Name: name}, nil
			},
		})

		w := doJSON(t, srv, http.MethodPost, "/api/v1/vps", models.CreateVPSRequest{Name: "vps1"})
		require.Equal(t, http.StatusCreated, w.Code)

		var v models.VPS
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
		assert.Equal(t, int64(1), v.ID)
		assert.Equal(t, "vps1", v.Name)
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		srv := newTestServer(&stubInventory{
			createVPS: func(_ context.Context, _ string) (*models.VPS, error) {
				return nil, service.ErrConflict
			},
		})

		w := doJSON(t, srv, http.MethodPost, "/api/v1/vps", models.CreateVPSRequest{Name: "vps1"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing name fails binding", func(t *testing.T) {
		srv := newTestServer(&stubInventory{})
		w := doJSON(t, srv, http.MethodPost, "/api/v1/vps", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListAccountsHandler(t *testing.T) {
	t.Run("partitions are never null", func(t *testing.T) {
		srv := newTestServer(&stubInventory{
			listAccountsPartitioned: func(_ context.Context, _ int64) ([]*models.Account, []*models.Account, error) {
				return nil, nil, nil
			},
		})

		w := doJSON(t, srv, http.MethodGet, "/api/v1/vps/1/accounts", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"active":[],"banned":[]}`, w.Body.String())
	})

	t.Run("unknown vps maps to 404", func(t *testing.T) {
		srv := newTestServer(&stubInventory{
			listAccountsPartitioned: func(_ context.Context, _ int64) ([]*models.Account, []*models.Account, error) {
				return nil, nil, service.ErrNotFound
			},
		})

		w := doJSON(t, srv, http.MethodGet, "/api/v1/vps/42/accounts", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id rejected", func(t *testing.T) {
		srv := newTestServer(&stubInventory{})
		w := doJSON(t, srv, http.MethodGet, "/api/v1/vps/abc/accounts", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateAccountInfoHandler(t *testing.T) {
	t.Run("forwards partial fields", func(t *testing.T) {
		var got models.AccountInfoUpdate
		srv := newTestServer(&stubInventory{
			updateAccountInfo: func(_ context.Context, accountID int64, upd models.AccountInfoUpdate) (*models.AccountInfo, error) {
				got = upd
				return &models.AccountInfo{AccountID: accountID, Status: models.StatusBanned}, nil
			},
		})

		status := models.StatusBanned
		w := doJSON(t, srv, http.MethodPatch, "/api/v1/accounts/7/info", models.UpdateAccountInfoRequest{Status: &status})
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got.Status)
		assert.Equal(t, models.StatusBanned, *got.Status)
		assert.Nil(t, got.Gmail)
		assert.False(t, got.ClearPaymentProfile)
	})

	t.Run("invalid argument maps to 400", func(t *testing.T) {
		srv := newTestServer(&stubInventory{
			updateAccountInfo: func(_ context.Context, _ int64, _ models.AccountInfoUpdate) (*models.AccountInfo, error) {
				return nil, service.ErrInvalidArgument
			},
		})

		status := "frozen"
		w := doJSON(t, srv, http.MethodPatch, "/api/v1/accounts/7/info", models.UpdateAccountInfoRequest{Status: &status})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteHandlersAreIdempotent(t *testing.T) {
	srv := newTestServer(&stubInventory{
		deleteAccount: func(_ context.Context, _ int64) error { return nil },
		deleteProxy:   func(_ context.Context, _ int64) error { return nil },
	})

	w := doJSON(t, srv, http.MethodDelete, "/api/v1/accounts/99999", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/v1/proxies/99999", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddProxiesHandler(t *testing.T) {
	srv := newTestServer(&stubInventory{
		addProxies: func(_ context.Context, accountID int64, rawText string) (int, error) {
			assert.Equal(t, int64(3), accountID)
			assert.Equal(t, "a\nb", rawText)
			return 2, nil
		},
	})

	w := doJSON(t, srv, http.MethodPost, "/api/v1/accounts/3/proxies", models.AddProxiesRequest{Proxies: "a\nb"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.AddProxiesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Inserted)
}

func TestAdminRoutesHiddenWithoutKey(t *testing.T) {
	srv := newTestServer(&stubInventory{})
	w := doJSON(t, srv, http.MethodGet, "/api/admin/db/tables", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
