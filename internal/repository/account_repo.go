package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vpsfleet/inventory-service/internal/models"
)

type AccountRepository struct {
	db Querier
}

func NewAccountRepository(db Querier) *AccountRepository {
	return &AccountRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *AccountRepository) WithTx(tx pgx.Tx) *AccountRepository {
	return &AccountRepository{db: tx}
}

// Create inserts a new account under the given VPS.
// Returns ErrNotFound when the VPS does not exist (FK violation).
func (r *AccountRepository) Create(ctx context.Context, vpsID int64, name string) (*models.Account, error) {
	query := `
		INSERT INTO accounts (name, vps_id)
		VALUES ($1, $2)
		RETURNING id, name, vps_id, created_at
	`

	a := &models.Account{}
	err := r.db.QueryRow(ctx, query, name, vpsID).Scan(&a.ID, &a.Name, &a.VPSID, &a.CreatedAt)
	if err != nil {
		err = translateErr(err)
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	return a, nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT id, name, vps_id, created_at FROM accounts WHERE id = $1`

	a := &models.Account{}
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.VPSID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	return a, nil
}

// ListByVPS returns all accounts under a VPS in insertion order.
func (r *AccountRepository) ListByVPS(ctx context.Context, vpsID int64) ([]*models.Account, error) {
	query := `SELECT id, name, vps_id, created_at FROM accounts WHERE vps_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, vpsID)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var list []*models.Account
	for rows.Next() {
		a := &models.Account{}
		if err := rows.Scan(&a.ID, &a.Name, &a.VPSID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Delete removes the account row. Dependent rows must already be gone;
// callers delete proxies and account_info first, in the same transaction.
func (r *AccountRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
