// Package shopping holds the driver's working copy of an order while it is being shopped.
//
// A Session owns the items of one order. Every mutation goes through its methods: weight and
// quantity submissions are validated locally, sent to the marketplace one at a time per item
// and applied from the backend's answer. Refresh merges authoritative state by item version.
package shopping

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/domain"
	"grocery-shopper/internal/logx"
	"grocery-shopper/internal/progress"
	"grocery-shopper/internal/variance"
)

// ErrSessionClosed is returned by a session after Close.
var ErrSessionClosed = fmt.Errorf("%w: shopping session closed", apperr.ErrNotFound)

// Deps are the collaborators of a session.
type Deps struct {
	Gateway          orderGateway
	Preferences      preferenceSource
	Audit            AuditSink
	Metrics          previewObserver
	Logger           logx.Logger
	OperationTimeout time.Duration
	Now              func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = logx.Nop()
	}
	if d.OperationTimeout <= 0 {
		d.OperationTimeout = 3 * time.Second
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	return d
}

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	Order       domain.Order
	Progress    progress.Progress
	Preferences domain.Preferences
	// DefaultPreferences is set when the customer's preferences could not be fetched.
	DefaultPreferences bool
	InFlight           []string
}

// WeightResult is the outcome of a weight submission.
type WeightResult struct {
	Item          domain.OrderItem
	Preview       variance.Evaluation
	NeedsApproval bool
	AutoApproved  bool
	Progress      progress.Progress
}

// Session is the working copy of one order.
type Session struct {
	d       Deps
	orderID string
	logger  logx.Logger

	mu          sync.Mutex
	order       domain.Order
	prefs       domain.Preferences
	prefsFailed bool
	inFlight    map[string]struct{}
	held        map[string]time.Time
	checkingOut bool
	closed      bool
}

// Open fetches the order and the customer's committed preferences.
// Previews fall back to default preferences when the latter cannot be fetched.
func Open(ctx context.Context, orderID string, d Deps) (*Session, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, fmt.Errorf("%w: empty order id", apperr.ErrInvalid)
	}
	d = d.withDefaults()
	s := &Session{
		d:        d,
		orderID:  orderID,
		logger:   d.Logger.With(logx.String("order_id", orderID)),
		inFlight: make(map[string]struct{}),
		held:     make(map[string]time.Time),
	}

	callCtx, cancel := s.withTimeout(ctx)
	ord, err := d.Gateway.GetOrder(callCtx, orderID)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	s.order = ord

	s.prefs = domain.DefaultPreferences()
	if d.Preferences == nil || ord.CustomerID == "" {
		s.prefsFailed = true
	} else {
		p, err := d.Preferences.Committed(ctx, ord.CustomerID)
		if err != nil {
			s.prefsFailed = true
			s.logger.Warn("customer preferences unavailable, previews use defaults",
				logx.String("customer_id", ord.CustomerID),
				logx.Err(err),
			)
		} else {
			s.prefs = p
		}
	}

	s.logger.Info("shopping session opened",
		logx.String("status", string(ord.Status)),
		logx.Int("items", len(ord.Items)),
	)
	return s, nil
}

func (s *Session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.d.OperationTimeout)
}

// OrderID returns the ID of the shopped order.
func (s *Session) OrderID() string {
	return s.orderID
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Order:              s.order.Clone(),
		Progress:           progress.Summarize(s.order.Items),
		Preferences:        s.prefs,
		DefaultPreferences: s.prefsFailed,
	}
	for _, it := range s.order.Items {
		if _, ok := s.inFlight[it.ID]; ok {
			snap.InFlight = append(snap.InFlight, it.ID)
		}
	}
	return snap
}

// PreviewWeight evaluates a candidate weight against the customer's committed preferences.
func (s *Session) PreviewWeight(itemID string, weight float64) (variance.Evaluation, error) {
	s.mu.Lock()
	item, err := s.itemLocked(itemID)
	prefs := s.prefs
	s.mu.Unlock()
	if err != nil {
		return variance.Evaluation{}, err
	}

	ev, err := variance.Evaluate(item, weight, prefs)
	if err != nil {
		return variance.Evaluation{}, err
	}
	if s.d.Metrics != nil {
		s.d.Metrics.ObservePreview(string(ev.PredictedOutcome))
	}
	return ev, nil
}

// SubmitWeight sends the weighed amount of a weight-based item.
// Validation failures never reach the network. The backend decision replaces any preview.
func (s *Session) SubmitWeight(ctx context.Context, itemID string, weight float64, note string) (WeightResult, error) {
	s.mu.Lock()
	item, err := s.itemLocked(itemID)
	if err != nil {
		s.mu.Unlock()
		return WeightResult{}, err
	}
	preview, err := variance.Evaluate(item, weight, s.prefs)
	if err != nil {
		s.mu.Unlock()
		return WeightResult{}, err
	}
	if err := s.beginLocked(item.ID); err != nil {
		s.mu.Unlock()
		return WeightResult{}, err
	}
	prefs := s.prefs
	s.mu.Unlock()

	callCtx, cancel := s.withTimeout(ctx)
	sub, err := s.d.Gateway.SubmitActualWeight(callCtx, s.orderID, item.ID, preview.CandidateWeight, note)
	cancel()

	s.mu.Lock()
	delete(s.inFlight, item.ID)
	if s.closed {
		s.mu.Unlock()
		return WeightResult{}, ErrSessionClosed
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("weight submission failed",
			logx.String("item_id", item.ID),
			logx.Err(err),
		)
		return WeightResult{}, fmt.Errorf("%w: %w", apperr.ErrSubmissionFailed, err)
	}

	version := sub.UpdatedAt
	if version.IsZero() {
		version = s.d.Now()
	}
	updated := applySubmission(item, sub, version)
	if i := s.order.Item(item.ID); i >= 0 {
		updated = applySubmission(s.order.Items[i], sub, version)
		s.order.Items[i] = updated
		s.held[item.ID] = version
	}
	res := WeightResult{
		Item:          updated.Clone(),
		Preview:       preview,
		NeedsApproval: sub.NeedsApproval,
		AutoApproved:  sub.AutoApproved,
		Progress:      progress.Summarize(s.order.Items),
	}
	s.mu.Unlock()

	s.audit(ctx, item, preview, sub, prefs)

	s.logger.Info("weight submitted",
		logx.String("event", "weight_submitted"),
		logx.String("item_id", item.ID),
		logx.String("weight", preview.CandidateWeight.String()),
		logx.String("predicted", string(preview.PredictedOutcome)),
		logx.Bool("needs_approval", sub.NeedsApproval),
		logx.Bool("auto_approved", sub.AutoApproved),
	)
	return res, nil
}

// SetFoundQuantity records how many units of a unit-based item were found.
func (s *Session) SetFoundQuantity(ctx context.Context, itemID string, found decimal.Decimal, notes string) (domain.OrderItem, progress.Progress, error) {
	s.mu.Lock()
	item, err := s.itemLocked(itemID)
	if err != nil {
		s.mu.Unlock()
		return domain.OrderItem{}, progress.Progress{}, err
	}
	if err := progress.ValidateFoundQuantity(item, found); err != nil {
		s.mu.Unlock()
		return domain.OrderItem{}, progress.Progress{}, err
	}
	if err := s.beginLocked(item.ID); err != nil {
		s.mu.Unlock()
		return domain.OrderItem{}, progress.Progress{}, err
	}
	s.mu.Unlock()

	callCtx, cancel := s.withTimeout(ctx)
	err = s.d.Gateway.UpdateFoundQuantity(callCtx, item.ID, found, notes)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, item.ID)
	if s.closed {
		return domain.OrderItem{}, progress.Progress{}, ErrSessionClosed
	}
	if err != nil {
		s.logger.Warn("found quantity update failed",
			logx.String("item_id", item.ID),
			logx.Err(err),
		)
		return domain.OrderItem{}, progress.Progress{}, fmt.Errorf("%w: %w", apperr.ErrSubmissionFailed, err)
	}

	version := s.d.Now()
	i := s.order.Item(item.ID)
	if i < 0 {
		return domain.OrderItem{}, progress.Progress{}, fmt.Errorf("%w: item %s", apperr.ErrNotFound, item.ID)
	}
	updated := s.order.Items[i].Clone()
	q := found
	updated.FoundQuantity = &q
	updated.Status = foundStatus(found, updated.RequestedQuantity)
	updated.UpdatedAt = version
	s.order.Items[i] = updated
	s.held[item.ID] = version

	return updated.Clone(), progress.Summarize(s.order.Items), nil
}

func foundStatus(found, requested decimal.Decimal) domain.ItemStatus {
	switch {
	case found.IsZero():
		return domain.ItemNotFound
	case found.GreaterThanOrEqual(requested):
		return domain.ItemFound
	default:
		return domain.ItemPartiallyFound
	}
}

// Refresh fetches the order and merges it into the local copy.
func (s *Session) Refresh(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return Snapshot{}, ErrSessionClosed
	}

	callCtx, cancel := s.withTimeout(ctx)
	ord, err := s.d.Gateway.GetOrder(callCtx, s.orderID)
	cancel()
	if err != nil {
		return Snapshot{}, fmt.Errorf("refresh order: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, ErrSessionClosed
	}
	merged, kept := mergeOrder(s.order, ord, s.held)
	s.order = merged
	if len(kept) > 0 {
		s.logger.Debug("kept newer local items over fetched copy",
			logx.Any("items", kept),
		)
	}
	return s.snapshotLocked(), nil
}

// ProceedToCheckout moves the order to checkout once every item is resolved.
func (s *Session) ProceedToCheckout(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, ErrSessionClosed
	}
	p := progress.Summarize(s.order.Items)
	if !p.CanCheckout {
		s.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: %s", apperr.ErrCheckoutBlocked, p.Message)
	}
	if !progress.CanEditItems(s.order.Status) {
		status := s.order.Status
		s.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: order is %s", apperr.ErrConflict, status)
	}
	if len(s.inFlight) > 0 {
		s.mu.Unlock()
		return Snapshot{}, apperr.ErrSubmissionInFlight
	}
	if s.checkingOut {
		s.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: checkout already in progress", apperr.ErrConflict)
	}
	// Item changes are refused until the backend answers.
	s.checkingOut = true
	s.mu.Unlock()

	callCtx, cancel := s.withTimeout(ctx)
	err := s.d.Gateway.UpdateOrderStatus(callCtx, s.orderID, domain.OrderCheckout)
	cancel()

	s.mu.Lock()
	s.checkingOut = false
	if err != nil {
		s.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: %w", apperr.ErrSubmissionFailed, err)
	}
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, ErrSessionClosed
	}
	s.order.Status = domain.OrderCheckout
	s.mu.Unlock()
	s.logger.Info("order moved to checkout", logx.String("event", "checkout"))

	snap, err := s.Refresh(ctx)
	if err != nil {
		s.logger.Warn("refresh after checkout failed", logx.Err(err))
		return s.Snapshot(), nil
	}
	return snap, nil
}

// Close ends the session. Responses arriving later are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.logger.Info("shopping session closed")
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) itemLocked(itemID string) (domain.OrderItem, error) {
	if s.closed {
		return domain.OrderItem{}, ErrSessionClosed
	}
	i := s.order.Item(strings.TrimSpace(itemID))
	if i < 0 {
		return domain.OrderItem{}, fmt.Errorf("%w: item %s", apperr.ErrNotFound, itemID)
	}
	return s.order.Items[i].Clone(), nil
}

// beginLocked checks that the item may be changed now and marks it in flight.
func (s *Session) beginLocked(itemID string) error {
	if !progress.CanEditItems(s.order.Status) {
		return fmt.Errorf("%w: order is %s", apperr.ErrConflict, s.order.Status)
	}
	if s.checkingOut {
		return fmt.Errorf("%w: checkout in progress", apperr.ErrConflict)
	}
	if _, busy := s.inFlight[itemID]; busy {
		return apperr.ErrSubmissionInFlight
	}
	s.inFlight[itemID] = struct{}{}
	return nil
}

func (s *Session) audit(ctx context.Context, item domain.OrderItem, preview variance.Evaluation, sub domain.WeightSubmission, prefs domain.Preferences) {
	rec := domain.VarianceAudit{
		ID:                 uuid.NewString(),
		OrderID:            s.orderID,
		ItemID:             item.ID,
		RequestedQuantity:  item.RequestedQuantity,
		ActualWeight:       preview.CandidateWeight,
		VariancePercentage: preview.VariancePercentage,
		Predicted:          preview.PredictedOutcome,
		Server:             domain.ServerOutcome(sub.NeedsApproval),
		Threshold:          prefs.MaxAutoVariancePercentage,
		AutoApprove:        prefs.AutoApproveVariances,
		OveragesOnly:       prefs.AutoApproveOveragesOnly,
		SubmittedAt:        s.d.Now(),
	}
	if rec.Mismatch() {
		if s.d.Metrics != nil {
			s.d.Metrics.ObserveMismatch()
		}
		s.logger.Warn("variance preview disagreed with backend",
			logx.String("item_id", item.ID),
			logx.String("predicted", string(rec.Predicted)),
			logx.String("server", string(rec.Server)),
		)
	}
	if s.d.Audit == nil {
		return
	}
	auditCtx, cancel := s.withTimeout(context.WithoutCancel(ctx))
	defer cancel()
	if err := s.d.Audit.RecordSubmission(auditCtx, rec); err != nil {
		s.logger.Error("variance audit write failed",
			logx.String("item_id", item.ID),
			logx.Err(err),
		)
	}
}
