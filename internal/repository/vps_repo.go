package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vpsfleet/inventory-service/internal/models"
)

type VPSRepository struct {
	db Querier
}

func NewVPSRepository(db Querier) *VPSRepository {
	return &VPSRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *VPSRepository) WithTx(tx pgx.Tx) *VPSRepository {
	return &VPSRepository{db: tx}
}

// Create inserts a new VPS and returns the stored row.
// Returns ErrConflict when the name is already taken.
func (r *VPSRepository) Create(ctx context.Context, name string) (*models.VPS, error) {
	query := `
		INSERT INTO vps (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`

	v := &models.VPS{}
	err := r.db.QueryRow(ctx, query, name).Scan(&v.ID, &v.Name, &v.CreatedAt)
	if err != nil {
		err = translateErr(err)
		if errors.Is(err, ErrConflict) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("insert vps: %w", err)
	}

	return v, nil
}

// GetByID retrieves a VPS by ID.
func (r *VPSRepository) GetByID(ctx context.Context, id int64) (*models.VPS, error) {
	query := `SELECT id, name, created_at FROM vps WHERE id = $1`

	v := &models.VPS{}
	err := r.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan vps: %w", err)
	}

	return v, nil
}

// List returns all VPS rows in insertion order.
func (r *VPSRepository) List(ctx context.Context) ([]*models.VPS, error) {
	query := `SELECT id, name, created_at FROM vps ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query vps: %w", err)
	}
	defer rows.Close()

	var list []*models.VPS
	for rows.Next() {
		v := &models.VPS{}
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vps row: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
