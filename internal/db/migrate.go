package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied on every startup; all statements are idempotent.
// Uniqueness of vps.name and payment_profiles.email is enforced here as the
// storage-level backstop for the domain layer's conflict checks.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS vps (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL,
		vps_id BIGINT NOT NULL REFERENCES vps(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS payment_profiles (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS account_info (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		account_id BIGINT NOT NULL UNIQUE REFERENCES accounts(id),
		gmail TEXT NOT NULL DEFAULT '',
		ip_login TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		last_payment TEXT NOT NULL DEFAULT '',
		payment_profile_id BIGINT REFERENCES payment_profiles(id),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS proxies (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		account_id BIGINT NOT NULL REFERENCES accounts(id),
		value TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_vps_id ON accounts(vps_id)`,
	`CREATE INDEX IF NOT EXISTS idx_proxies_account_id ON proxies(account_id)`,
}

// Migrate creates the inventory tables if they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
