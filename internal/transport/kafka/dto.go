package kafka

import (
	"fmt"
	"strings"
	"time"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/domain"
)

// Decision values carried by DecisionEventDTO.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// DecisionEventDTO is the wire form of a customer's variance decision.
type DecisionEventDTO struct {
	OrderID   string    `json:"order_id"`
	ItemID    string    `json:"item_id"`
	Decision  string    `json:"decision"`
	Reason    string    `json:"reason,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
}

// ToDomain converts DecisionEventDTO to domain.VarianceDecision
func ToDomain(dto DecisionEventDTO) (domain.VarianceDecision, error) {
	out := domain.VarianceDecision{
		OrderID:   strings.TrimSpace(dto.OrderID),
		ItemID:    strings.TrimSpace(dto.ItemID),
		Reason:    strings.TrimSpace(dto.Reason),
		DecidedAt: dto.DecidedAt.UTC(),
	}
	switch {
	case out.OrderID == "":
		return domain.VarianceDecision{}, fmt.Errorf("%w: empty order_id", apperr.ErrInvalid)
	case out.ItemID == "":
		return domain.VarianceDecision{}, fmt.Errorf("%w: empty item_id", apperr.ErrInvalid)
	case dto.DecidedAt.IsZero():
		return domain.VarianceDecision{}, fmt.Errorf("%w: missing decided_at", apperr.ErrInvalid)
	}

	switch strings.ToLower(strings.TrimSpace(dto.Decision)) {
	case DecisionApproved:
		out.Approved = true
	case DecisionRejected:
		out.Approved = false
	default:
		return domain.VarianceDecision{}, fmt.Errorf("%w: unknown decision %q", apperr.ErrInvalid, dto.Decision)
	}
	return out, nil
}
