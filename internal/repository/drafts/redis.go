package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"grocery-shopper/internal/domain"
)

const keyPrefix = "preferences:draft:"

// Redis keeps preference drafts in Redis as TTL'd JSON values,
// so every service replica sees the same draft.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

// Connect parses redisURL, connects and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

type prefsJSON struct {
	AutoApproveVariances       bool   `json:"auto_approve_variances"`
	MaxAutoVariancePercentage  int    `json:"max_auto_variance_percentage"`
	AutoApproveOveragesOnly    bool   `json:"auto_approve_overages_only"`
	VarianceNotificationMethod string `json:"variance_notification_method"`
	ApprovalTimeoutMinutes     int    `json:"approval_timeout_minutes"`
}

type stateJSON struct {
	Committed prefsJSON `json:"committed"`
	Draft     prefsJSON `json:"draft"`
}

func toJSON(p domain.Preferences) prefsJSON {
	return prefsJSON{
		AutoApproveVariances:       p.AutoApproveVariances,
		MaxAutoVariancePercentage:  p.MaxAutoVariancePercentage,
		AutoApproveOveragesOnly:    p.AutoApproveOveragesOnly,
		VarianceNotificationMethod: string(p.VarianceNotificationMethod),
		ApprovalTimeoutMinutes:     p.ApprovalTimeoutMinutes,
	}
}

func fromJSON(p prefsJSON) domain.Preferences {
	return domain.Preferences{
		AutoApproveVariances:       p.AutoApproveVariances,
		MaxAutoVariancePercentage:  p.MaxAutoVariancePercentage,
		AutoApproveOveragesOnly:    p.AutoApproveOveragesOnly,
		VarianceNotificationMethod: domain.NotificationMethod(p.VarianceNotificationMethod),
		ApprovalTimeoutMinutes:     p.ApprovalTimeoutMinutes,
	}
}

// Load returns the state stored for userID.
func (r *Redis) Load(ctx context.Context, userID string) (domain.PreferenceState, bool, error) {
	raw, err := r.rdb.Get(ctx, keyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PreferenceState{}, false, nil
	}
	if err != nil {
		return domain.PreferenceState{}, false, fmt.Errorf("get draft: %w", err)
	}

	var s stateJSON
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.PreferenceState{}, false, fmt.Errorf("decode draft: %w", err)
	}
	state := domain.PreferenceState{Committed: fromJSON(s.Committed), Draft: fromJSON(s.Draft)}
	// a value written by an incompatible version is treated as missing
	if !state.Committed.Valid() || !state.Draft.Valid() {
		return domain.PreferenceState{}, false, nil
	}
	return state, true, nil
}

// Save stores state for userID and refreshes its TTL.
func (r *Redis) Save(ctx context.Context, userID string, state domain.PreferenceState) error {
	raw, err := json.Marshal(stateJSON{Committed: toJSON(state.Committed), Draft: toJSON(state.Draft)})
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := r.rdb.Set(ctx, keyPrefix+userID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("set draft: %w", err)
	}
	return nil
}

// Delete drops the state of userID.
func (r *Redis) Delete(ctx context.Context, userID string) error {
	if err := r.rdb.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
