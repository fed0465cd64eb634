package app

import (
	"context"
	"errors"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/domain"
	"grocery-shopper/internal/transport/kafka"
)

type decisionProcessor interface {
	Handle(ctx context.Context, d domain.VarianceDecision) error
}

// makeDecisionHandler marks invalid decisions as permanent so the consumer skips them.
func makeDecisionHandler(p decisionProcessor) kafka.HandleFunc {
	return func(ctx context.Context, d domain.VarianceDecision) error {
		err := p.Handle(ctx, d)
		if errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}
