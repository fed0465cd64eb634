package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"grocery-shopper/internal/domain"
	"grocery-shopper/internal/progress"
	"grocery-shopper/internal/repository"
	"grocery-shopper/internal/service/preferences"
	"grocery-shopper/internal/service/shopping"
	"grocery-shopper/internal/variance"
)

type orderSession interface {
	Snapshot() shopping.Snapshot
	PreviewWeight(itemID string, weight float64) (variance.Evaluation, error)
	SubmitWeight(ctx context.Context, itemID string, weight float64, note string) (shopping.WeightResult, error)
	SetFoundQuantity(ctx context.Context, itemID string, found decimal.Decimal, notes string) (domain.OrderItem, progress.Progress, error)
	Refresh(ctx context.Context) (shopping.Snapshot, error)
	ProceedToCheckout(ctx context.Context) (shopping.Snapshot, error)
}

type sessionRegistry interface {
	Open(ctx context.Context, orderID string) (orderSession, error)
	Close(orderID string) bool
}

type registryAdapter struct{ r *shopping.Registry }

func (a registryAdapter) Open(ctx context.Context, orderID string) (orderSession, error) {
	s, err := a.r.Open(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (a registryAdapter) Close(orderID string) bool { return a.r.Close(orderID) }

// NewSessionRegistry wires a shopping.Registry into a sessionRegistry.
func NewSessionRegistry(r *shopping.Registry) sessionRegistry {
	return registryAdapter{r: r}
}

type preferenceStore interface {
	Get(ctx context.Context, userID string) (domain.PreferenceState, error)
	Set(ctx context.Context, userID, key, value string) (domain.PreferenceState, error)
	Commit(ctx context.Context, userID string) (domain.Preferences, error)
	Discard(ctx context.Context, userID string) error
}

// NewPreferenceStore wires a preferences.Store into a preferenceStore.
func NewPreferenceStore(s *preferences.Store) preferenceStore {
	return s
}

type driftReader interface {
	DriftSummary(ctx context.Context, since time.Time) ([]domain.DriftRow, error)
	Decisions(ctx context.Context, since time.Time) (map[domain.Outcome]map[string]int64, error)
}

// NewDriftReader wires the variance audit repository into a driftReader.
func NewDriftReader(r *repository.VarianceAuditRepo) driftReader {
	return r
}
