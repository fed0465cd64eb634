package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/domain"
	"grocery-shopper/internal/gateway/marketplace"
	"grocery-shopper/internal/progress"
	"grocery-shopper/internal/service/shopping"
	"grocery-shopper/internal/variance"
)

type stubSession struct {
	snapshotFn func() shopping.Snapshot
	previewFn  func(string, float64) (variance.Evaluation, error)
	submitFn   func(context.Context, string, float64, string) (shopping.WeightResult, error)
	foundFn    func(context.Context, string, decimal.Decimal, string) (domain.OrderItem, progress.Progress, error)
	refreshFn  func(context.Context) (shopping.Snapshot, error)
	checkoutFn func(context.Context) (shopping.Snapshot, error)
}

func (s *stubSession) Snapshot() shopping.Snapshot { return s.snapshotFn() }

func (s *stubSession) PreviewWeight(id string, w float64) (variance.Evaluation, error) {
	return s.previewFn(id, w)
}

func (s *stubSession) SubmitWeight(ctx context.Context, id string, w float64, note string) (shopping.WeightResult, error) {
	return s.submitFn(ctx, id, w, note)
}

func (s *stubSession) SetFoundQuantity(ctx context.Context, id string, q decimal.Decimal, notes string) (domain.OrderItem, progress.Progress, error) {
	return s.foundFn(ctx, id, q, notes)
}

func (s *stubSession) Refresh(ctx context.Context) (shopping.Snapshot, error) {
	return s.refreshFn(ctx)
}

func (s *stubSession) ProceedToCheckout(ctx context.Context) (shopping.Snapshot, error) {
	return s.checkoutFn(ctx)
}

type stubRegistry struct {
	openFn  func(context.Context, string) (orderSession, error)
	closeFn func(string) bool
}

func (r *stubRegistry) Open(ctx context.Context, id string) (orderSession, error) {
	return r.openFn(ctx, id)
}

func (r *stubRegistry) Close(id string) bool { return r.closeFn(id) }

func registryOf(t *testing.T, wantOrder string, s orderSession) *stubRegistry {
	return &stubRegistry{
		openFn: func(_ context.Context, id string) (orderSession, error) {
			require.Equal(t, wantOrder, id)
			return s, nil
		},
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func bananas() domain.OrderItem {
	pct := 10.0
	return domain.OrderItem{
		ID:                "bananas",
		Name:              "Bananas",
		RequestedQuantity: d("2"),
		IsWeightBased:     true,
		WeightUnit:        domain.UnitPound,
		PricePerUnit:      d("4"),
		MinWeight:         dp("1.5"),
		MaxWeight:         dp("2.5"),
		WeightInfo: &domain.WeightInfo{
			EstimatedWeight:    d("2"),
			ActualWeight:       dp("2.2"),
			EstimatedPrice:     d("8"),
			ActualPrice:        d("8.8"),
			VariancePercentage: &pct,
			VarianceApproved:   domain.ApprovalApproved,
		},
		Status: domain.ItemWeighed,
	}
}

func snapshot() shopping.Snapshot {
	items := []domain.OrderItem{bananas()}
	return shopping.Snapshot{
		Order: domain.Order{
			ID: "o-1", CustomerID: "c-1", Status: domain.OrderShopping, Items: items,
		},
		Progress:    progress.Summarize(items),
		Preferences: domain.DefaultPreferences(),
	}
}

func TestOrderHandler_Get_OK(t *testing.T) {
	t.Parallel()

	s := &stubSession{snapshotFn: snapshot}
	h := NewOrderHandler(testLogger(), registryOf(t, "o-1", s))

	rr := serve(t, h.Get, http.MethodGet, "/orders/{orderID}", "/orders/o-1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	got := decodeBody[snapshotDTO](t, rr)
	require.Equal(t, "o-1", got.OrderID)
	require.Equal(t, "shopping", got.Status)
	require.Len(t, got.Items, 1)
	item := got.Items[0]
	require.Equal(t, string(progress.StateWeighedResolved), item.State)
	require.NotNil(t, item.WeightInfo)
	require.NotNil(t, item.WeightInfo.VarianceApproved)
	require.True(t, *item.WeightInfo.VarianceApproved)
	require.True(t, item.WeightInfo.ActualWeight.Equal(d("2.2")))
	require.True(t, got.Progress.CanCheckout)
	require.Equal(t, []string{}, got.InFlight)
	require.Equal(t, 15, got.Preferences.MaxAutoVariancePercentage)
}

func TestOrderHandler_Get_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("open session: %w", apperr.ErrNotFound), http.StatusNotFound},
		{"invalid", fmt.Errorf("%w: empty order id", apperr.ErrInvalid), http.StatusBadRequest},
		{"closed", shopping.ErrSessionClosed, http.StatusNotFound},
		{"backend 5xx", fmt.Errorf("open session: %w", &marketplace.StatusError{Code: http.StatusServiceUnavailable}), http.StatusBadGateway},
		{"backend unreachable", fmt.Errorf("open session: %w: connection refused", apperr.ErrUpstream), http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewOrderHandler(testLogger(), &stubRegistry{
				openFn: func(context.Context, string) (orderSession, error) { return nil, tt.err },
			})
			rr := serve(t, h.Get, http.MethodGet, "/orders/{orderID}", "/orders/o-1", "")
			require.Equal(t, tt.code, rr.Code)
		})
	}
}

func TestOrderHandler_PreviewWeight(t *testing.T) {
	t.Parallel()

	pct := 15.0
	s := &stubSession{
		previewFn: func(id string, w float64) (variance.Evaluation, error) {
			require.Equal(t, "bananas", id)
			require.InDelta(t, 2.3, w, 1e-9)
			return variance.Evaluation{
				CandidateWeight:    d("2.3"),
				EstimatedPrice:     d("8"),
				ActualPrice:        d("9.2"),
				VarianceAmount:     d("0.3"),
				VariancePercentage: &pct,
				PredictedOutcome:   domain.OutcomeAutoApproved,
			}, nil
		},
	}
	h := NewOrderHandler(testLogger(), registryOf(t, "o-1", s))

	rr := serve(t, h.PreviewWeight, http.MethodPost,
		"/orders/{orderID}/items/{itemID}/weight/preview", "/orders/o-1/items/bananas/weight/preview",
		`{"weight":2.3}`)
	require.Equal(t, http.StatusOK, rr.Code)

	got := decodeBody[previewDTO](t, rr)
	require.Equal(t, "auto_approved", got.PredictedOutcome)
	require.True(t, got.ActualPrice.Equal(d("9.2")))
	require.NotNil(t, got.VariancePercentage)
	require.InDelta(t, 15.0, *got.VariancePercentage, 1e-9)
}

func TestOrderHandler_PreviewWeight_Invalid(t *testing.T) {
	t.Parallel()

	s := &stubSession{
		previewFn: func(string, float64) (variance.Evaluation, error) {
			return variance.Evaluation{}, apperr.ErrWeightAboveMaximum
		},
	}
	h := NewOrderHandler(testLogger(), registryOf(t, "o-1", s))

	rr := serve(t, h.PreviewWeight, http.MethodPost,
		"/orders/{orderID}/items/{itemID}/weight/preview", "/orders/o-1/items/bananas/weight/preview",
		`{"weight":9}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, apperr.ErrWeightAboveMaximum.Error(), decodeBody[ErrorResponse](t, rr).Error)
}

func TestOrderHandler_PreviewWeight_BadJSONSkipsSession(t *testing.T) {
	t.Parallel()

	h := NewOrderHandler(testLogger(), &stubRegistry{
		openFn: func(context.Context, string) (orderSession, error) {
			t.Error("session must not be opened for a bad body")
			return nil, nil
		},
	})
	rr := serve(t, h.PreviewWeight, http.MethodPost,
		"/orders/{orderID}/items/{itemID}/weight/preview", "/orders/o-1/items/bananas/weight/preview",
		`{"weight":"heavy"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOrderHandler_SubmitWeight_OK(t *testing.T) {
	t.Parallel()

	item := bananas()
	item.WeightInfo.NeedsApproval = true
	item.WeightInfo.VarianceApproved = domain.ApprovalUndetermined
	s := &stubSession{
		submitFn: func(_ context.Context, id string, w float64, note string) (shopping.WeightResult, error) {
			require.Equal(t, "bananas", id)
			require.Equal(t, "ripe", note)
			return shopping.WeightResult{
				Item:          item,
				Preview:       variance.Evaluation{PredictedOutcome: domain.OutcomeAutoApproved},
				NeedsApproval: true,
				Progress:      progress.Summarize([]domain.OrderItem{item}),
			}, nil
		},
	}
	h := NewOrderHandler(testLogger(), registryOf(t, "o-1", s))

	rr := serve(t, h.SubmitWeight, http.MethodPost,
		"/orders/{orderID}/items/{itemID}/weight", "/orders/o-1/items/bananas/weight",
		`{"weight":2.2,"note":"ripe"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	got := decodeBody[weightResultDTO](t, rr)
	require.True(t, got.NeedsApproval)
	require.Equal(t, "auto_approved", got.Preview.PredictedOutcome)
	require.Equal(t, string(progress.StateWeighedPendingApproval), got.Item.State)
	require.Nil(t, got.Item.WeightInfo.VarianceApproved)
	require.Equal(t, []string{"bananas"}, got.Progress.AwaitingApproval)
	require.False(t, got.Progress.CanCheckout)
}

func TestOrderHandler_SubmitWeight_ErrorMapping(t *testing.T) {
	t.Parallel()

	upstream404 := fmt.Errorf("%w: %w", apperr.ErrSubmissionFailed, fmt.Errorf("backend: %w", apperr.ErrNotFound))
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"below min", apperr.ErrWeightBelowMinimum, http.StatusBadRequest, apperr.ErrWeightBelowMinimum.Error()},
		{"in flight", apperr.ErrSubmissionInFlight, http.StatusConflict, apperr.ErrSubmissionInFlight.Error()},
		{"not shopping", fmt.Errorf("%w: order is checkout", apperr.ErrConflict), http.StatusConflict, "conflict: order is checkout"},
		{"upstream", upstream404, http.StatusBadGateway, "submission failed"},
		{"unknown item", fmt.Errorf("%w: item x", apperr.ErrNotFound), http.StatusNotFound, "not found: item x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &stubSession{
				submitFn: func(context.Context, string, float64, string) (shopping.WeightResult, error) {
					return shopping.WeightResult{}, tt.err
				},
			}
			h := NewOrderHandler(testLogger(), registryOf(t, "o-1", s))
			rr := serve(t, h.SubmitWeight, http.MethodPost,
				"/orders/{orderID}/items/{itemID}/weight", "/orders/o-1/items/bananas/weight",
				`{"weight":2.2}`)
			require.Equal(t, tt.code, rr.Code)
			require.Equal(t, tt.msg, decodeBody[ErrorResponse](t, rr).Error)
		})
	}
}

func TestOrderHandler_SetFoundQuantity(t *testing.T) {
	t.Parallel()

	milk := domain.OrderItem{
		ID: "milk", Name: "Milk", RequestedQuantity: d("3"), FoundQuantity: dp("2"),
		PricePerUnit: d("1.99"), Status: domain.ItemPartiallyFound,
	}
	s := &stubSession{
		foundFn: func(_ context.Context, id string, q decimal.Decimal, notes string) (domain.OrderItem, progress.Progress, error) {
			require.Equal(t, "milk", id)
			require.True(t, q.Equal(d("2")))
			require.Equal(t, "one missing", notes)
			return milk, progress.Summarize([]domain.OrderItem{milk}), nil
		},
	}
	h := NewOrderHandler(testLogger(), registryOf(t, "o-1", s))

	rr := serve(t, h.SetFoundQuantity, http.MethodPut,
		"/orders/{orderID}/items/{itemID}/found-quantity", "/orders/o-1/items/milk/found-quantity",
		`{"found_quantity":2,"notes":"one missing"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	got := decodeBody[itemResultDTO](t, rr)
	require.Equal(t, string(progress.StatePartiallyFound), got.Item.State)
	require.Equal(t, 1, got.Progress.Resolved)
	require.True(t, got.Progress.CanCheckout)
}

func TestOrderHandler_Refresh(t *testing.T) {
	t.Parallel()

	calls := 0
	s := &stubSession{
		refreshFn: func(context.Context) (shopping.Snapshot, error) {
			calls++
			return snapshot(), nil
		},
	}
	h := NewOrderHandler(testLogger(), registryOf(t, "o-1", s))

	rr := serve(t, h.Refresh, http.MethodPost, "/orders/{orderID}/refresh", "/orders/o-1/refresh", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, calls)
}

func TestOrderHandler_Refresh_BackendDown(t *testing.T) {
	t.Parallel()

	s := &stubSession{
		refreshFn: func(context.Context) (shopping.Snapshot, error) {
			return shopping.Snapshot{}, fmt.Errorf("refresh order: %w", &marketplace.StatusError{Code: http.StatusBadGateway})
		},
	}
	h := NewOrderHandler(testLogger(), registryOf(t, "o-1", s))

	rr := serve(t, h.Refresh, http.MethodPost, "/orders/{orderID}/refresh", "/orders/o-1/refresh", "")
	require.Equal(t, http.StatusBadGateway, rr.Code)
	require.Equal(t, apperr.ErrUpstream.Error(), decodeBody[ErrorResponse](t, rr).Error)
}

func TestOrderHandler_Checkout(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		s := &stubSession{
			checkoutFn: func(context.Context) (shopping.Snapshot, error) {
				snap := snapshot()
				snap.Order.Status = domain.OrderCheckout
				return snap, nil
			},
		}
		h := NewOrderHandler(testLogger(), registryOf(t, "o-1", s))
		rr := serve(t, h.Checkout, http.MethodPost, "/orders/{orderID}/checkout", "/orders/o-1/checkout", "")
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "checkout", decodeBody[snapshotDTO](t, rr).Status)
	})

	t.Run("blocked", func(t *testing.T) {
		s := &stubSession{
			checkoutFn: func(context.Context) (shopping.Snapshot, error) {
				return shopping.Snapshot{}, fmt.Errorf("%w: %s", apperr.ErrCheckoutBlocked, "1 item still pending")
			},
		}
		h := NewOrderHandler(testLogger(), registryOf(t, "o-1", s))
		rr := serve(t, h.Checkout, http.MethodPost, "/orders/{orderID}/checkout", "/orders/o-1/checkout", "")
		require.Equal(t, http.StatusConflict, rr.Code)
		require.Contains(t, decodeBody[ErrorResponse](t, rr).Error, "1 item still pending")
	})
}

func TestOrderHandler_CloseSession(t *testing.T) {
	t.Parallel()

	open := map[string]bool{"o-1": true}
	h := NewOrderHandler(testLogger(), &stubRegistry{
		closeFn: func(id string) bool {
			ok := open[id]
			delete(open, id)
			return ok
		},
	})

	rr := serve(t, h.CloseSession, http.MethodDelete, "/orders/{orderID}/session", "/orders/o-1/session", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(t, h.CloseSession, http.MethodDelete, "/orders/{orderID}/session", "/orders/o-1/session", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestItemToResponse_UnitItem(t *testing.T) {
	t.Parallel()

	got := itemToResponse(domain.OrderItem{
		ID: "milk", RequestedQuantity: d("3"), Status: domain.ItemPending,
		UpdatedAt: time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
	})
	require.Nil(t, got.WeightInfo)
	require.Nil(t, got.FoundQuantity)
	require.Equal(t, string(progress.StateUnresolved), got.State)
	require.Empty(t, got.WeightUnit)
}
