package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vpsfleet/inventory-service/internal/models"
)

type AccountInfoRepository struct {
	db Querier
}

func NewAccountInfoRepository(db Querier) *AccountInfoRepository {
	return &AccountInfoRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *AccountInfoRepository) WithTx(tx pgx.Tx) *AccountInfoRepository {
	return &AccountInfoRepository{db: tx}
}

const accountInfoColumns = `id, account_id, gmail, ip_login, status, last_payment, payment_profile_id, updated_at`

// GetByAccountID retrieves the info row for an account.
func (r *AccountInfoRepository) GetByAccountID(ctx context.Context, accountID int64) (*models.AccountInfo, error) {
	query := `SELECT ` + accountInfoColumns + ` FROM account_info WHERE account_id = $1`
	return r.scanInfo(r.db.QueryRow(ctx, query, accountID))
}

// Upsert inserts a default info row (status active) for the account unless one
// already exists, then returns the current row. Keyed on the unique account_id
// column, so two concurrent calls can never produce two rows.
func (r *AccountInfoRepository) Upsert(ctx context.Context, accountID int64) (*models.AccountInfo, error) {
	insert := `
		INSERT INTO account_info (account_id, status)
		VALUES ($1, $2)
		ON CONFLICT (account_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, insert, accountID, models.StatusActive); err != nil {
		err = translateErr(err)
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("upsert account info: %w", err)
	}

	return r.GetByAccountID(ctx, accountID)
}

// Update applies a partial update to the info row of an account.
// Returns ErrNotFound when no info row exists for the account.
func (r *AccountInfoRepository) Update(ctx context.Context, accountID int64, upd models.AccountInfoUpdate) (*models.AccountInfo, error) {
	query := `
		UPDATE account_info SET
			gmail = COALESCE($1, gmail),
			ip_login = COALESCE($2, ip_login),
			last_payment = COALESCE($3, last_payment),
			status = COALESCE($4, status),
			payment_profile_id = CASE WHEN $5 THEN NULL ELSE COALESCE($6, payment_profile_id) END,
			updated_at = now()
		WHERE account_id = $7
		RETURNING ` + accountInfoColumns

	row := r.db.QueryRow(ctx, query,
		upd.Gmail, upd.IPLogin, upd.LastPayment, upd.Status,
		upd.ClearPaymentProfile, upd.PaymentProfileID, accountID,
	)
	return r.scanInfo(row)
}

// DeleteByAccountID removes the info row for an account.
func (r *AccountInfoRepository) DeleteByAccountID(ctx context.Context, accountID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM account_info WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("delete account info: %w", err)
	}
	return nil
}

func (r *AccountInfoRepository) scanInfo(row pgx.Row) (*models.AccountInfo, error) {
	info := &models.AccountInfo{}
	err := row.Scan(
		&info.ID, &info.AccountID, &info.Gmail, &info.IPLogin,
		&info.Status, &info.LastPayment, &info.PaymentProfileID, &info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		err = translateErr(err)
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan account info: %w", err)
	}
	return info, nil
}
