package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/domain"
)

// Editable preference keys.
const (
	KeyAutoApproveVariances       = "auto_approve_variances"
	KeyMaxAutoVariancePercentage  = "max_auto_variance_percentage"
	KeyAutoApproveOveragesOnly    = "auto_approve_overages_only"
	KeyVarianceNotificationMethod = "variance_notification_method"
	KeyApprovalTimeoutMinutes     = "approval_timeout_minutes"
)

// Keys lists every editable key.
var Keys = []string{
	KeyAutoApproveVariances,
	KeyMaxAutoVariancePercentage,
	KeyAutoApproveOveragesOnly,
	KeyVarianceNotificationMethod,
	KeyApprovalTimeoutMinutes,
}

// Apply returns p with key set to the parsed value.
// Values outside the option sets are rejected with apperr.ErrInvalid.
func Apply(p domain.Preferences, key, value string) (domain.Preferences, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case KeyAutoApproveVariances:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return p, fmt.Errorf("%w: %s must be a boolean", apperr.ErrInvalid, key)
		}
		p.AutoApproveVariances = b
	case KeyMaxAutoVariancePercentage:
		n, err := strconv.Atoi(value)
		if err != nil || !domain.ValidVariancePercentage(n) {
			return p, fmt.Errorf("%w: %s must be one of %v", apperr.ErrInvalid, key, domain.VariancePercentageOptions)
		}
		p.MaxAutoVariancePercentage = n
	case KeyAutoApproveOveragesOnly:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return p, fmt.Errorf("%w: %s must be a boolean", apperr.ErrInvalid, key)
		}
		p.AutoApproveOveragesOnly = b
	case KeyVarianceNotificationMethod:
		m := domain.NotificationMethod(strings.ToLower(value))
		if !m.Valid() {
			return p, fmt.Errorf("%w: %s must be push or sms", apperr.ErrInvalid, key)
		}
		p.VarianceNotificationMethod = m
	case KeyApprovalTimeoutMinutes:
		n, err := strconv.Atoi(value)
		if err != nil || !domain.ValidApprovalTimeout(n) {
			return p, fmt.Errorf("%w: %s must be one of %v", apperr.ErrInvalid, key, domain.ApprovalTimeoutOptions)
		}
		p.ApprovalTimeoutMinutes = n
	default:
		return p, fmt.Errorf("%w: unknown preference %q", apperr.ErrInvalid, key)
	}
	return p, nil
}
