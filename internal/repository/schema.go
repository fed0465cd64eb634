package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS variance_audit (
	id                  UUID PRIMARY KEY,
	order_id            TEXT NOT NULL,
	item_id             TEXT NOT NULL,
	requested_quantity  NUMERIC NOT NULL,
	actual_weight       NUMERIC NOT NULL,
	variance_percentage DOUBLE PRECISION,
	predicted           TEXT NOT NULL CHECK (predicted IN ('auto_approved','needs_approval')),
	server              TEXT NOT NULL CHECK (server IN ('auto_approved','needs_approval')),
	threshold           INT NOT NULL,
	auto_approve        BOOLEAN NOT NULL,
	overages_only       BOOLEAN NOT NULL,
	submitted_at        TIMESTAMPTZ NOT NULL,
	decision            TEXT CHECK (decision IN ('approved','rejected')),
	decision_reason     TEXT,
	decided_at          TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_variance_audit_item ON variance_audit(order_id, item_id, submitted_at DESC);
CREATE INDEX IF NOT EXISTS idx_variance_audit_submitted ON variance_audit(submitted_at);
`

// EnsureSchema creates the tables the service writes to if they are missing.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
