package drafts

import (
	"context"
	"sync"
	"time"

	"grocery-shopper/internal/domain"
)

type memEntry struct {
	state   domain.PreferenceState
	expires time.Time
}

// Memory keeps preference drafts in process memory.
type Memory struct {
	mu    sync.Mutex
	items map[string]memEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemory creates an in-memory draft cache. ttl <= 0 disables expiry.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		items: make(map[string]memEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Load returns the state stored for userID.
func (m *Memory) Load(_ context.Context, userID string) (domain.PreferenceState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[userID]
	if !ok {
		return domain.PreferenceState{}, false, nil
	}
	if m.ttl > 0 && !m.now().Before(e.expires) {
		delete(m.items, userID)
		return domain.PreferenceState{}, false, nil
	}
	return e.state, true, nil
}

// Save stores state for userID and refreshes its expiry.
func (m *Memory) Save(_ context.Context, userID string, state domain.PreferenceState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[userID] = memEntry{state: state, expires: m.now().Add(m.ttl)}
	return nil
}

// Delete drops the state of userID.
func (m *Memory) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, userID)
	return nil
}
