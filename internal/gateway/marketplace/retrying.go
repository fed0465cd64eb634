package marketplace

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"grocery-shopper/internal/domain"
	"grocery-shopper/internal/logx"
)

type gateway interface {
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	SubmitActualWeight(ctx context.Context, orderID, itemID string, weight decimal.Decimal, note string) (domain.WeightSubmission, error)
	UpdateFoundQuantity(ctx context.Context, itemID string, found decimal.Decimal, notes string) error
	GetUserPreferences(ctx context.Context, userID string) (domain.Preferences, error)
	UpdateUserPreferences(ctx context.Context, userID string, prefs domain.Preferences) (domain.Preferences, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

type counter interface {
	Inc()
}

// RetryConfig описывает поведение RetryingGateway
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries idempotent marketplace calls on transient failures.
// SubmitActualWeight is a POST and always goes through exactly once.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(context.Context, time.Duration) bool
}

// NewRetryingGateway конструктор который проверяет, что next не nil и возвращает RetryingGateway
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg, sleep: sleepWithContext}
}

// GetOrder реализует поведение RetryingGateway
func (g *RetryingGateway) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	return retry(ctx, g, "GetOrder", func(ctx context.Context) (domain.Order, error) {
		return g.next.GetOrder(ctx, orderID)
	})
}

// SubmitActualWeight passes the call through without retries.
func (g *RetryingGateway) SubmitActualWeight(ctx context.Context, orderID, itemID string, weight decimal.Decimal, note string) (domain.WeightSubmission, error) {
	return g.next.SubmitActualWeight(ctx, orderID, itemID, weight, note)
}

// UpdateFoundQuantity реализует поведение RetryingGateway
func (g *RetryingGateway) UpdateFoundQuantity(ctx context.Context, itemID string, found decimal.Decimal, notes string) error {
	_, err := retry(ctx, g, "UpdateFoundQuantity", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.next.UpdateFoundQuantity(ctx, itemID, found, notes)
	})
	return err
}

// GetUserPreferences реализует поведение RetryingGateway
func (g *RetryingGateway) GetUserPreferences(ctx context.Context, userID string) (domain.Preferences, error) {
	return retry(ctx, g, "GetUserPreferences", func(ctx context.Context) (domain.Preferences, error) {
		return g.next.GetUserPreferences(ctx, userID)
	})
}

// UpdateUserPreferences реализует поведение RetryingGateway
func (g *RetryingGateway) UpdateUserPreferences(ctx context.Context, userID string, prefs domain.Preferences) (domain.Preferences, error) {
	return retry(ctx, g, "UpdateUserPreferences", func(ctx context.Context) (domain.Preferences, error) {
		return g.next.UpdateUserPreferences(ctx, userID, prefs)
	})
}

// UpdateOrderStatus реализует поведение RetryingGateway
func (g *RetryingGateway) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	_, err := retry(ctx, g, "UpdateOrderStatus", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.next.UpdateOrderStatus(ctx, orderID, status)
	})
	return err
}

func retry[T any](ctx context.Context, g *RetryingGateway, method string, call func(context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	// цикл по повторам
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		out, err := call(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		// проверяем условия повтора
		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}
		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("marketplace gateway retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !g.sleep(ctx, delay) {
			break
		}
	}
	return zero, lastErr
}

// isRetryable определяет, является ли ошибка повторяемой
func isRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// backoff вычисляет задержку повтора
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base
	for i := 1; i < attempt; i++ {
		if d >= max {
			break
		}
		d *= 2
	}
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

var (
	_ gateway = (*Client)(nil)
	_ gateway = (*RetryingGateway)(nil)
)
