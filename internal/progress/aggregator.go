// Package progress derives item resolution states and the checkout gate of an order.
package progress

import (
	"fmt"

	"grocery-shopper/internal/domain"
)

// Progress summarizes how far shopping has come.
type Progress struct {
	Resolved int
	Total    int
	// Pending holds IDs of items that are not resolved, in order.
	Pending []string
	// AwaitingApproval is the subset of Pending blocked on a variance decision.
	AwaitingApproval []string
	CanCheckout      bool
	Message          string
}

// Summarize counts resolved items and decides whether checkout may proceed.
func Summarize(items []domain.OrderItem) Progress {
	p := Progress{Total: len(items)}
	for _, it := range items {
		if IsResolved(it) {
			p.Resolved++
			continue
		}
		p.Pending = append(p.Pending, it.ID)
		if ItemState(it) == StateWeighedPendingApproval {
			p.AwaitingApproval = append(p.AwaitingApproval, it.ID)
		}
	}

	switch {
	case p.Total == 0:
		p.Message = "order has no items"
	case p.Resolved == p.Total:
		p.CanCheckout = true
	case len(p.AwaitingApproval) > 0:
		p.Message = fmt.Sprintf("%d of %d items resolved, %d waiting for customer approval",
			p.Resolved, p.Total, len(p.AwaitingApproval))
	default:
		p.Message = fmt.Sprintf("%d of %d items resolved", p.Resolved, p.Total)
	}
	return p
}
