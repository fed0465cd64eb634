//go:generate mockgen -source=contracts.go -destination=decisions_mocks_test.go -package=decisions_test

package decisions

import (
	"context"

	"grocery-shopper/internal/domain"
)

// Recorder attaches a customer decision to the audited weight submission.
type Recorder interface {
	RecordDecision(ctx context.Context, d domain.VarianceDecision) (bool, error)
}
