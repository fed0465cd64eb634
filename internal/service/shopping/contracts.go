//go:generate mockgen -source=contracts.go -destination=shopping_mocks_test.go -package=shopping

package shopping

import (
	"context"

	"github.com/shopspring/decimal"

	"grocery-shopper/internal/domain"
)

type orderGateway interface {
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	SubmitActualWeight(ctx context.Context, orderID, itemID string, weight decimal.Decimal, note string) (domain.WeightSubmission, error)
	UpdateFoundQuantity(ctx context.Context, itemID string, found decimal.Decimal, notes string) error
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

type preferenceSource interface {
	Committed(ctx context.Context, userID string) (domain.Preferences, error)
}

// AuditSink records each weight submission next to its local preview.
type AuditSink interface {
	RecordSubmission(ctx context.Context, rec domain.VarianceAudit) error
}

type previewObserver interface {
	ObservePreview(outcome string)
	ObserveMismatch()
}
