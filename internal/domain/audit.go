package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VarianceAudit pairs the locally predicted outcome of a weight submission
// with the decision the marketplace returned for it.
type VarianceAudit struct {
	ID                 string
	OrderID            string
	ItemID             string
	RequestedQuantity  decimal.Decimal
	ActualWeight       decimal.Decimal
	VariancePercentage *float64
	Predicted          Outcome
	Server             Outcome
	Threshold          int
	AutoApprove        bool
	OveragesOnly       bool
	SubmittedAt        time.Time
}

// Mismatch reports whether the preview disagreed with the backend.
func (a VarianceAudit) Mismatch() bool {
	return a.Predicted != a.Server
}

// ServerOutcome maps the backend flag onto an Outcome.
func ServerOutcome(needsApproval bool) Outcome {
	if needsApproval {
		return OutcomeNeedsApproval
	}
	return OutcomeAutoApproved
}

// VarianceDecision is a later customer or timeout decision on a pending variance.
type VarianceDecision struct {
	OrderID   string
	ItemID    string
	Approved  bool
	Reason    string
	DecidedAt time.Time
}

// DriftRow is one cell of the preview vs. backend outcome matrix.
type DriftRow struct {
	Predicted Outcome
	Server    Outcome
	Count     int64
}
