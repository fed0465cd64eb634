//go:generate mockgen -source=contracts.go -destination=preferences_mocks_test.go -package=preferences

package preferences

import (
	"context"

	"grocery-shopper/internal/domain"
)

type preferencesGateway interface {
	GetUserPreferences(ctx context.Context, userID string) (domain.Preferences, error)
	UpdateUserPreferences(ctx context.Context, userID string, prefs domain.Preferences) (domain.Preferences, error)
}

// DraftCache stores the editable preference state per user.
type DraftCache interface {
	Load(ctx context.Context, userID string) (domain.PreferenceState, bool, error)
	Save(ctx context.Context, userID string, state domain.PreferenceState) error
	Delete(ctx context.Context, userID string) error
}
