package shopping

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"grocery-shopper/internal/logx"
)

const refreshConcurrency = 4

// Registry keeps one session per order.
type Registry struct {
	d      Deps
	logger logx.Logger
	group  singleflight.Group

	mu       sync.RWMutex
	sessions map[string]*Session
	// opening marks orders with an open in flight; true once Close was called for it.
	opening map[string]bool
}

// NewRegistry creates an empty registry; sessions it opens share d.
func NewRegistry(d Deps) *Registry {
	d = d.withDefaults()
	return &Registry{
		d:        d,
		logger:   d.Logger,
		sessions: make(map[string]*Session),
		opening:  make(map[string]bool),
	}
}

// Get returns the open session of orderID.
func (r *Registry) Get(orderID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[strings.TrimSpace(orderID)]
	return s, ok
}

// Open returns the session of orderID, opening it on first use.
// Concurrent callers for the same order share one open; each waits only as long as its own ctx.
func (r *Registry) Open(ctx context.Context, orderID string) (*Session, error) {
	orderID = strings.TrimSpace(orderID)
	if s, ok := r.Get(orderID); ok {
		return s, nil
	}
	ch := r.group.DoChan(orderID, func() (any, error) {
		return r.open(context.WithoutCancel(ctx), orderID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Session), nil
	}
}

func (r *Registry) open(ctx context.Context, orderID string) (*Session, error) {
	r.mu.Lock()
	if s, ok := r.sessions[orderID]; ok {
		r.mu.Unlock()
		return s, nil
	}
	r.opening[orderID] = false
	r.mu.Unlock()

	// GetOrder and the preference fetch each get one operation timeout.
	ctx, cancel := context.WithTimeout(ctx, 2*r.d.OperationTimeout)
	defer cancel()
	s, err := Open(ctx, orderID, r.d)

	r.mu.Lock()
	closed := r.opening[orderID]
	delete(r.opening, orderID)
	if err == nil && !closed {
		r.sessions[orderID] = s
	}
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if closed {
		s.Close()
		return nil, ErrSessionClosed
	}
	return s, nil
}

// Close closes and forgets the session of orderID.
// An open still in flight for orderID is closed as soon as it completes.
func (r *Registry) Close(orderID string) bool {
	orderID = strings.TrimSpace(orderID)
	r.mu.Lock()
	s, ok := r.sessions[orderID]
	delete(r.sessions, orderID)
	_, opening := r.opening[orderID]
	if opening {
		r.opening[orderID] = true
	}
	r.mu.Unlock()
	if ok {
		s.Close()
	}
	return ok || opening
}

// CloseAll closes every session.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	for id := range r.opening {
		r.opening[id] = true
	}
	r.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// RefreshAwaitingApproval refreshes sessions that have items waiting for a customer decision.
// The approval happens on the backend, so polling is the only way to observe it.
func (r *Registry) RefreshAwaitingApproval(ctx context.Context) (int, error) {
	r.mu.RLock()
	var due []*Session
	for _, s := range r.sessions {
		if len(s.Snapshot().Progress.AwaitingApproval) > 0 {
			due = append(due, s)
		}
	}
	r.mu.RUnlock()
	if len(due) == 0 {
		return 0, nil
	}

	var (
		mu       sync.Mutex
		failures []error
		done     int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)
	for _, s := range due {
		g.Go(func() error {
			_, err := s.Refresh(gctx)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				done++
			case errors.Is(err, ErrSessionClosed):
			default:
				failures = append(failures, err)
				r.logger.Warn("awaiting approval refresh failed",
					logx.String("order_id", s.OrderID()),
					logx.Err(err),
				)
			}
			return nil
		})
	}
	_ = g.Wait()
	return done, errors.Join(failures...)
}
