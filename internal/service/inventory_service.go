package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/vpsfleet/inventory-service/internal/models"
	"github.com/vpsfleet/inventory-service/internal/repository"
)

// InventoryService owns the inventory invariants: uniqueness of VPS names and
// payment emails, the 1:1 account/info pair, the status lifecycle, and the
// cascade rules. Every multi-row mutation runs in a single transaction on the
// injected pool.
type InventoryService struct {
	pool     *pgxpool.Pool
	logger   *logrus.Logger
	vps      *repository.VPSRepository
	accounts *repository.AccountRepository
	infos    *repository.AccountInfoRepository
	payments *repository.PaymentProfileRepository
	proxies  *repository.ProxyRepository
}

func NewInventoryService(pool *pgxpool.Pool, logger *logrus.Logger) *InventoryService {
	return &InventoryService{
		pool:     pool,
		logger:   logger,
		vps:      repository.NewVPSRepository(pool),
		accounts: repository.NewAccountRepository(pool),
		infos:    repository.NewAccountInfoRepository(pool),
		payments: repository.NewPaymentProfileRepository(pool),
		proxies:  repository.NewProxyRepository(pool),
	}
}

// ==================== VPS ====================

// CreateVPS registers a new VPS. The name is trimmed; blank names are
// rejected and duplicates fail with ErrConflict.
func (s *InventoryService) CreateVPS(ctx context.Context, name string) (*models.VPS, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: vps name is empty", ErrInvalidArgument)
	}

	v, err := s.vps.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"vps_id": v.ID, "name": v.Name}).Info("vps created")
	return v, nil
}

// ListVPS returns all VPS rows in insertion order.
func (s *InventoryService) ListVPS(ctx context.Context) ([]*models.VPS, error) {
	return s.vps.List(ctx)
}

// ==================== Accounts ====================

// CreateAccount creates an account under a VPS together with its default
// info row (status active), as one transaction. Fails with ErrNotFound when
// the VPS does not exist.
func (s *InventoryService) CreateAccount(ctx context.Context, vpsID int64, name string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is empty", ErrInvalidArgument)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := s.vps.WithTx(tx).GetByID(ctx, vpsID); err != nil {
		return nil, err
	}

	a, err := s.accounts.WithTx(tx).Create(ctx, vpsID, name)
	if err != nil {
		return nil, err
	}

	if _, err := s.infos.WithTx(tx).Upsert(ctx, a.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"account_id": a.ID, "vps_id": vpsID, "name": a.Name}).Info("account created")
	return a, nil
}

// ListAccountsPartitioned splits the accounts of a VPS into non-banned and
// banned, by info status. Accounts missing their info row get one backfilled
// (status active) before classification, all inside one transaction.
func (s *InventoryService) ListAccountsPartitioned(ctx context.Context, vpsID int64) (active, banned []*models.Account, err error) {
	if _, err := s.vps.GetByID(ctx, vpsID); err != nil {
		return nil, nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	accounts, err := s.accounts.WithTx(tx).ListByVPS(ctx, vpsID)
	if err != nil {
		return nil, nil, err
	}

	infos := s.infos.WithTx(tx)
	for _, a := range accounts {
		info, err := infos.Upsert(ctx, a.ID)
		if err != nil {
			return nil, nil, err
		}
		if info.Status == models.StatusBanned {
			banned = append(banned, a)
		} else {
			active = append(active, a)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit: %w", err)
	}

	return active, banned, nil
}

// DeleteAccount removes an account together with its proxies and info row in
// one transaction. Deleting an account that no longer exists is a silent
// no-op: the caller re-queries after the commit either way.
func (s *InventoryService) DeleteAccount(ctx context.Context, accountID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.proxies.WithTx(tx).DeleteByAccount(ctx, accountID); err != nil {
		return err
	}
	if err := s.infos.WithTx(tx).DeleteByAccountID(ctx, accountID); err != nil {
		return err
	}
	deleted, err := s.accounts.WithTx(tx).Delete(ctx, accountID)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if deleted {
		s.logger.WithField("account_id", accountID).Info("account deleted")
	}
	return nil
}

// ==================== Account info ====================

// GetOrCreateAccountInfo returns the info row of an account, creating a
// default one (status active) if it is missing. Idempotent; the upsert is
// keyed on the unique account_id column.
func (s *InventoryService) GetOrCreateAccountInfo(ctx context.Context, accountID int64) (*models.AccountInfo, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.infos.Upsert(ctx, accountID)
}

// UpdateAccountInfo applies a partial update to an account's info row. This
// is the sole mutation path for status, including banning and un-banning.
// A status outside the enumerated set or a dangling payment profile
// reference is rejected before anything is written.
func (s *InventoryService) UpdateAccountInfo(ctx context.Context, accountID int64, upd models.AccountInfoUpdate) (*models.AccountInfo, error) {
	if upd.Status != nil && !models.ValidStatus(*upd.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, *upd.Status)
	}

	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	if upd.PaymentProfileID != nil && !upd.ClearPaymentProfile {
		if _, err := s.payments.GetByID(ctx, *upd.PaymentProfileID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: payment profile %d does not exist", ErrInvalidArgument, *upd.PaymentProfileID)
			}
			return nil, err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	infos := s.infos.WithTx(tx)
	if _, err := infos.Upsert(ctx, accountID); err != nil {
		return nil, err
	}

	info, err := infos.Update(ctx, accountID, upd)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"account_id": accountID, "status": info.Status}).Debug("account info updated")
	return info, nil
}

// ==================== Payment profiles ====================

// CreatePaymentProfile registers a new payment profile. The email is
// trimmed; blanks are rejected and duplicates fail with ErrConflict.
func (s *InventoryService) CreatePaymentProfile(ctx context.Context, email string) (*models.PaymentProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: payment profile email is empty", ErrInvalidArgument)
	}

	p, err := s.payments.Create(ctx, email)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"payment_profile_id": p.ID, "email": p.Email}).Info("payment profile created")
	return p, nil
}

// ListPaymentProfiles returns all payment profiles in insertion order.
func (s *InventoryService) ListPaymentProfiles(ctx context.Context) ([]*models.PaymentProfile, error) {
	return s.payments.List(ctx)
}

// ==================== Proxies ====================

// AddProxies splits rawText into lines, trims each, drops blanks and inserts
// one proxy row per surviving line, in insertion order within a single
// transaction. An input with no usable lines is a no-op, not an error.
func (s *InventoryService) AddProxies(ctx context.Context, accountID int64, rawText string) (int, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return 0, err
	}

	values := SplitProxyLines(rawText)
	if len(values) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	proxies := s.proxies.WithTx(tx)
	for _, v := range values {
		if _, err := proxies.Create(ctx, accountID, v); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"account_id": accountID, "count": len(values)}).Info("proxies added")
	return len(values), nil
}

// ListProxies returns the proxies of an account in insertion order. A
// missing account yields an empty list.
func (s *InventoryService) ListProxies(ctx context.Context, accountID int64) ([]*models.Proxy, error) {
	return s.proxies.ListByAccount(ctx, accountID)
}

// DeleteProxy removes a single proxy row. Missing ids are a silent no-op.
func (s *InventoryService) DeleteProxy(ctx context.Context, proxyID int64) error {
	deleted, err := s.proxies.Delete(ctx, proxyID)
	if err != nil {
		return err
	}
	if deleted {
		s.logger.WithField("proxy_id", proxyID).Debug("proxy deleted")
	}
	return nil
}

// SplitProxyLines normalizes raw multi-line proxy input: split on line
// breaks, trim, drop empty results.
func SplitProxyLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
