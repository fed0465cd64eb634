package progress

import (
	"fmt"

	"github.com/shopspring/decimal"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/domain"
)

// State is the resolution state of a single order item.
type State string

// Unit-based item states
const (
	StateUnresolved     State = "unresolved"
	StatePartiallyFound State = "partially_found"
	StateFullyFound     State = "fully_found"
	StateNotFound       State = "not_found"
)

// Weight-based item states
const (
	StateUnweighed              State = "unweighed"
	StateWeighedPendingApproval State = "weighed_pending_approval"
	StateWeighedResolved        State = "weighed_resolved"
	StateWeighedRejected        State = "weighed_rejected"
)

// ItemState derives the workflow state of item.
func ItemState(item domain.OrderItem) State {
	if item.IsWeightBased {
		return weighedState(item)
	}
	switch {
	case item.FoundQuantity == nil:
		return StateUnresolved
	case item.FoundQuantity.IsZero():
		return StateNotFound
	case item.FoundQuantity.LessThan(item.RequestedQuantity):
		return StatePartiallyFound
	default:
		return StateFullyFound
	}
}

func weighedState(item domain.OrderItem) State {
	if !item.Weighed() {
		return StateUnweighed
	}
	wi := item.WeightInfo
	switch {
	case wi.VarianceApproved == domain.ApprovalApproved || !wi.NeedsApproval:
		return StateWeighedResolved
	case wi.VarianceApproved == domain.ApprovalRejected:
		return StateWeighedRejected
	default:
		return StateWeighedPendingApproval
	}
}

// IsResolved reports whether the item's outcome is final and may proceed to checkout.
// A weighed item waiting for customer approval is not resolved.
func IsResolved(item domain.OrderItem) bool {
	if !item.IsWeightBased {
		return item.FoundQuantity != nil
	}
	return ItemState(item) == StateWeighedResolved
}

// CanEditItems reports whether drivers may change item decisions in status.
func CanEditItems(status domain.OrderStatus) bool {
	return status == domain.OrderShopping
}

// ValidateFoundQuantity checks a driver-entered count for a unit-based item.
func ValidateFoundQuantity(item domain.OrderItem, found decimal.Decimal) error {
	if item.IsWeightBased {
		return fmt.Errorf("%w: item %s is sold by weight", apperr.ErrInvalid, item.ID)
	}
	if found.IsNegative() || !found.Equal(found.Truncate(0)) {
		return fmt.Errorf("%w: found quantity must be a whole number", apperr.ErrInvalid)
	}
	if found.GreaterThan(item.RequestedQuantity) {
		return fmt.Errorf("%w: found quantity above requested %s", apperr.ErrInvalid, item.RequestedQuantity)
	}
	return nil
}
