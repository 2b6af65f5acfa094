package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements create the tables on first start. Statements are idempotent
// so repeated boots are safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		phone         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL DEFAULT 'Anonymous User',
		org_name      TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'user',
		password_hash TEXT NOT NULL,
		refresh_token TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS role_upgrade_requests (
		id             BIGSERIAL PRIMARY KEY,
		user_id        BIGINT NOT NULL REFERENCES users(id),
		requested_role TEXT NOT NULL,
		internal_role  TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'pending'
	)`,
	`CREATE TABLE IF NOT EXISTS cart_submissions (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id),
		status     TEXT NOT NULL DEFAULT 'pending',
		cart_items JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_role_upgrade_requests_status ON role_upgrade_requests (status)`,
	`CREATE INDEX IF NOT EXISTS idx_cart_submissions_status ON cart_submissions (status)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
