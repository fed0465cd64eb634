// Package decisions applies customer variance decisions to the submission audit.
package decisions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/domain"
	"grocery-shopper/internal/logx"
	"grocery-shopper/internal/repository"
)

const defaultTimeout = 3 * time.Second

// Processor processes variance decision events
type Processor struct {
	recorder Recorder
	logger   logx.Logger
	timeout  time.Duration
}

// NewProcessorWithDeps creates a Processor from interfaces (handy for tests).
func NewProcessorWithDeps(rec Recorder, logger logx.Logger, timeout time.Duration) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Processor{recorder: rec, logger: logger, timeout: timeout}
}

// NewProcessor creates a new decisions.Processor
func NewProcessor(repo *repository.VarianceAuditRepo, logger logx.Logger) *Processor {
	return NewProcessorWithDeps(repo, logger, defaultTimeout)
}

// Handle records a single decision. A decision without a matching submission, or one older than
// the stored decision, is a no-op.
func (p *Processor) Handle(ctx context.Context, d domain.VarianceDecision) error {
	d.OrderID = strings.TrimSpace(d.OrderID)
	d.ItemID = strings.TrimSpace(d.ItemID)
	switch {
	case d.OrderID == "":
		return fmt.Errorf("%w: empty order id", apperr.ErrInvalid)
	case d.ItemID == "":
		return fmt.Errorf("%w: empty item id", apperr.ErrInvalid)
	case d.DecidedAt.IsZero():
		return fmt.Errorf("%w: empty decided_at", apperr.ErrInvalid)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	applied, err := p.recorder.RecordDecision(ctx, d)
	if err != nil {
		return err
	}
	fields := []logx.Field{
		logx.String("order_id", d.OrderID),
		logx.String("item_id", d.ItemID),
		logx.Bool("approved", d.Approved),
	}
	if !applied {
		p.logger.Debug("variance decision ignored", fields...)
		return nil
	}
	if !d.Approved && d.Reason != "" {
		fields = append(fields, logx.String("reason", d.Reason))
	}
	p.logger.Info("variance decision recorded", fields...)
	return nil
}
