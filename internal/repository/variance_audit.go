package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/domain"
)

// VarianceAuditRepo stores weight submissions next to their local preview.
type VarianceAuditRepo struct {
	db *pgxpool.Pool
}

// NewVarianceAuditRepo creates a new VarianceAuditRepo.
func NewVarianceAuditRepo(db *pgxpool.Pool) *VarianceAuditRepo {
	return &VarianceAuditRepo{db: db}
}

// RecordSubmission inserts one audit row. An empty ID gets a fresh UUID.
func (r *VarianceAuditRepo) RecordSubmission(ctx context.Context, rec domain.VarianceAudit) error {
	id := uuid.New()
	if rec.ID != "" {
		parsed, err := uuid.Parse(rec.ID)
		if err != nil {
			return fmt.Errorf("%w: audit id %q", apperr.ErrInvalid, rec.ID)
		}
		id = parsed
	}

	_, err := r.db.Exec(ctx, `
        INSERT INTO variance_audit (
            id, order_id, item_id, requested_quantity, actual_weight, variance_percentage,
            predicted, server, threshold, auto_approve, overages_only, submitted_at
        )
        VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, $9, $10, $11, $12)
    `,
		id, rec.OrderID, rec.ItemID,
		rec.RequestedQuantity.String(), rec.ActualWeight.String(), rec.VariancePercentage,
		string(rec.Predicted), string(rec.Server),
		rec.Threshold, rec.AutoApprove, rec.OveragesOnly, rec.SubmittedAt,
	)
	if err != nil {
		switch {
		case IsDuplicate(err):
			return fmt.Errorf("%w: audit %s already recorded", apperr.ErrConflict, id)
		case IsCheckViolation(err):
			return fmt.Errorf("%w: audit outcome: %v", apperr.ErrInvalid, err)
		}
		return fmt.Errorf("insert variance audit: %w", err)
	}
	return nil
}

// RecordDecision attaches a customer decision to the latest submission of the item.
// It reports false when no submission exists or a newer decision is already stored,
// which makes redelivered events harmless.
func (r *VarianceAuditRepo) RecordDecision(ctx context.Context, d domain.VarianceDecision) (bool, error) {
	decision := "rejected"
	if d.Approved {
		decision = "approved"
	}
	ct, err := r.db.Exec(ctx, `
        UPDATE variance_audit
        SET decision = $3, decision_reason = NULLIF($4, ''), decided_at = $5
        WHERE id = (
            SELECT id FROM variance_audit
            WHERE order_id = $1 AND item_id = $2
            ORDER BY submitted_at DESC
            LIMIT 1
        )
          AND (decided_at IS NULL OR decided_at <= $5)
    `, d.OrderID, d.ItemID, decision, d.Reason, d.DecidedAt)
	if err != nil {
		return false, fmt.Errorf("record variance decision for %s/%s: %w", d.OrderID, d.ItemID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// DriftSummary counts submissions since the given time by predicted and backend outcome.
func (r *VarianceAuditRepo) DriftSummary(ctx context.Context, since time.Time) ([]domain.DriftRow, error) {
	rows, err := r.db.Query(ctx, `
        SELECT predicted, server, COUNT(*)
        FROM variance_audit
        WHERE submitted_at >= $1
        GROUP BY predicted, server
        ORDER BY predicted, server
    `, since)
	if err != nil {
		return nil, fmt.Errorf("drift summary: %w", err)
	}
	defer rows.Close()

	var out []domain.DriftRow
	for rows.Next() {
		var (
			row               domain.DriftRow
			predicted, server string
		)
		if err := rows.Scan(&predicted, &server, &row.Count); err != nil {
			return nil, fmt.Errorf("scan drift row: %w", err)
		}
		row.Predicted = domain.Outcome(predicted)
		row.Server = domain.Outcome(server)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("drift summary rows: %w", err)
	}
	return out, nil
}

// Decisions returns the decision counts of submissions since the given time,
// keyed by predicted outcome and then by decision.
func (r *VarianceAuditRepo) Decisions(ctx context.Context, since time.Time) (map[domain.Outcome]map[string]int64, error) {
	rows, err := r.db.Query(ctx, `
        SELECT predicted, decision, COUNT(*)
        FROM variance_audit
        WHERE submitted_at >= $1 AND decision IS NOT NULL
        GROUP BY predicted, decision
    `, since)
	if err != nil {
		return nil, fmt.Errorf("decision summary: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.Outcome]map[string]int64)
	for rows.Next() {
		var (
			predicted, decision string
			n                   int64
		)
		if err := rows.Scan(&predicted, &decision, &n); err != nil {
			return nil, fmt.Errorf("scan decision row: %w", err)
		}
		k := domain.Outcome(predicted)
		if out[k] == nil {
			out[k] = make(map[string]int64)
		}
		out[k][decision] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("decision summary rows: %w", err)
	}
	return out, nil
}
