// Package preferences keeps an editable copy of each user's variance
// preferences. Edits stay local until Commit sends them to the marketplace.
package preferences

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/domain"
	"grocery-shopper/internal/logx"
)

// ErrNotLoaded is returned when editing preferences that were never fetched.
var ErrNotLoaded = fmt.Errorf("%w: preferences not loaded", apperr.ErrNotFound)

// Store is the per-user preference editor.
type Store struct {
	gw               preferencesGateway
	cache            DraftCache
	operationTimeout time.Duration
	logger           logx.Logger

	// serializes read-modify-write of cached state
	mu sync.Mutex
}

// NewStore creates a preference store.
func NewStore(gw preferencesGateway, cache DraftCache, timeout time.Duration, logger logx.Logger) *Store {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Store{gw: gw, cache: cache, operationTimeout: timeout, logger: logger}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Get returns the user's state, fetching committed values once if nothing is cached.
func (s *Store) Get(ctx context.Context, userID string) (domain.PreferenceState, error) {
	userID, err := validateUserID(userID)
	if err != nil {
		return domain.PreferenceState{}, err
	}
	return s.loadOrFetch(ctx, userID)
}

// Committed returns the values the backend last confirmed.
func (s *Store) Committed(ctx context.Context, userID string) (domain.Preferences, error) {
	st, err := s.Get(ctx, userID)
	if err != nil {
		return domain.Preferences{}, err
	}
	return st.Committed, nil
}

// Set changes one key in the draft. It never calls the backend.
func (s *Store) Set(ctx context.Context, userID, key, value string) (domain.PreferenceState, error) {
	userID, err := validateUserID(userID)
	if err != nil {
		return domain.PreferenceState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok, err := s.cache.Load(ctx, userID)
	if err != nil {
		return domain.PreferenceState{}, err
	}
	if !ok {
		return domain.PreferenceState{}, ErrNotLoaded
	}

	draft, err := Apply(st.Draft, key, value)
	if err != nil {
		return domain.PreferenceState{}, err
	}
	st.Draft = draft
	if err := s.cache.Save(ctx, userID, st); err != nil {
		return domain.PreferenceState{}, err
	}
	return st, nil
}

// Commit sends the draft in a single update call.
// On success the committed values become the echo. The draft becomes the echo too, unless it
// changed during the call. On failure the draft is kept as is.
func (s *Store) Commit(ctx context.Context, userID string) (domain.Preferences, error) {
	userID, err := validateUserID(userID)
	if err != nil {
		return domain.Preferences{}, err
	}

	st, ok, err := s.cache.Load(ctx, userID)
	if err != nil {
		return domain.Preferences{}, err
	}
	if !ok {
		return domain.Preferences{}, ErrNotLoaded
	}

	callCtx, cancel := s.withTimeout(ctx)
	echo, err := s.gw.UpdateUserPreferences(callCtx, userID, st.Draft)
	cancel()
	if err != nil {
		s.logger.Warn("preferences commit failed",
			logx.String("user_id", userID),
			logx.Err(err),
		)
		return domain.Preferences{}, fmt.Errorf("%w: %w", apperr.ErrPreferenceCommitFailed, err)
	}

	s.mu.Lock()
	next := domain.NewPreferenceState(echo)
	// edits made while the update was in flight stay as unsaved changes
	if cur, ok, err := s.cache.Load(ctx, userID); err == nil && ok && cur.Draft != st.Draft {
		next.Draft = cur.Draft
	}
	saveErr := s.cache.Save(ctx, userID, next)
	s.mu.Unlock()
	if saveErr != nil {
		// the backend already holds the values
		s.logger.Error("preferences cache save failed",
			logx.String("user_id", userID),
			logx.Err(saveErr),
		)
	}

	s.logger.Info("preferences committed",
		logx.String("event", "preferences_committed"),
		logx.String("user_id", userID),
		logx.Int("max_auto_variance_percentage", echo.MaxAutoVariancePercentage),
		logx.Bool("auto_approve_variances", echo.AutoApproveVariances),
	)
	return echo, nil
}

// Discard drops unsaved changes and keeps the committed values.
func (s *Store) Discard(ctx context.Context, userID string) error {
	userID, err := validateUserID(userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok, err := s.cache.Load(ctx, userID)
	if err != nil || !ok {
		return err
	}
	if !st.Dirty() {
		return nil
	}
	return s.cache.Save(ctx, userID, domain.NewPreferenceState(st.Committed))
}

func (s *Store) loadOrFetch(ctx context.Context, userID string) (domain.PreferenceState, error) {
	st, ok, err := s.cache.Load(ctx, userID)
	if err != nil {
		return domain.PreferenceState{}, err
	}
	if ok {
		return st, nil
	}

	callCtx, cancel := s.withTimeout(ctx)
	p, err := s.gw.GetUserPreferences(callCtx, userID)
	cancel()
	if err != nil {
		return domain.PreferenceState{}, fmt.Errorf("fetch preferences: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// another request may have seeded a draft meanwhile; keep its edits
	if cur, ok, err := s.cache.Load(ctx, userID); err == nil && ok {
		return cur, nil
	}
	st = domain.NewPreferenceState(p)
	if err := s.cache.Save(ctx, userID, st); err != nil {
		return domain.PreferenceState{}, err
	}
	return st, nil
}

func validateUserID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: empty user id", apperr.ErrInvalid)
	}
	return id, nil
}
