package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vpsfleet/inventory-service/internal/models"
)

type PaymentProfileRepository struct {
	db Querier
}

func NewPaymentProfileRepository(db Querier) *PaymentProfileRepository {
	return &PaymentProfileRepository{db: db}
}

// Create inserts a new payment profile.
// Returns ErrConflict when the email is already registered.
func (r *PaymentProfileRepository) Create(ctx context.Context, email string) (*models.PaymentProfile, error) {
	query := `
		INSERT INTO payment_profiles (email)
		VALUES ($1)
		RETURNING id, email, created_at
	`

	p := &models.PaymentProfile{}
	err := r.db.QueryRow(ctx, query, email).Scan(&p.ID, &p.Email, &p.CreatedAt)
	if err != nil {
		err = translateErr(err)
		if errors.Is(err, ErrConflict) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("insert payment profile: %w", err)
	}

	return p, nil
}

// GetByID retrieves a payment profile by ID.
func (r *PaymentProfileRepository) GetByID(ctx context.Context, id int64) (*models.PaymentProfile, error) {
	query := `SELECT id, email, created_at FROM payment_profiles WHERE id = $1`

	p := &models.PaymentProfile{}
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Email, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan payment profile: %w", err)
	}

	return p, nil
}

// List returns all payment profiles in insertion order.
func (r *PaymentProfileRepository) List(ctx context.Context) ([]*models.PaymentProfile, error) {
	query := `SELECT id, email, created_at FROM payment_profiles ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query payment profiles: %w", err)
	}
	defer rows.Close()

	var list []*models.PaymentProfile
	for rows.Next() {
		p := &models.PaymentProfile{}
		if err := rows.Scan(&p.ID, &p.Email, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment profile row: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
