package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vpsfleet/inventory-service/internal/models"
)

type ProxyRepository struct {
	db Querier
}

func NewProxyRepository(db Querier) *ProxyRepository {
	return &ProxyRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ProxyRepository) WithTx(tx pgx.Tx) *ProxyRepository {
	return &ProxyRepository{db: tx}
}

// Create inserts a single proxy row for an account.
func (r *ProxyRepository) Create(ctx context.Context, accountID int64, value string) (*models.Proxy, error) {
	query := `
		INSERT INTO proxies (account_id, value)
		VALUES ($1, $2)
		RETURNING id, account_id, value, created_at
	`

	p := &models.Proxy{}
	err := r.db.QueryRow(ctx, query, accountID, value).Scan(&p.ID, &p.AccountID, &p.Value, &p.CreatedAt)
	if err != nil {
		err = translateErr(err)
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert proxy: %w", err)
	}

	return p, nil
}

// ListByAccount returns all proxies of an account in insertion order.
func (r *ProxyRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.Proxy, error) {
	query := `SELECT id, account_id, value, created_at FROM proxies WHERE account_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("query proxies: %w", err)
	}
	defer rows.Close()

	var list []*models.Proxy
	for rows.Next() {
		p := &models.Proxy{}
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Value, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan proxy row: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete removes a single proxy row. Reports whether a row was deleted.
func (r *ProxyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM proxies WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete proxy: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByAccount removes every proxy of an account.
func (r *ProxyRepository) DeleteByAccount(ctx context.Context, accountID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM proxies WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("delete account proxies: %w", err)
	}
	return nil
}
