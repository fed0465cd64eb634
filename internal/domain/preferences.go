package domain

// Preferences is how a customer wants weight variances handled.
type Preferences struct {
	AutoApproveVariances       bool
	MaxAutoVariancePercentage  int
	AutoApproveOveragesOnly    bool
	VarianceNotificationMethod NotificationMethod
	ApprovalTimeoutMinutes     int
}

// VariancePercentageOptions lists the selectable auto-approval thresholds.
var VariancePercentageOptions = [...]int{5, 10, 15, 20, 25, 30}

// ApprovalTimeoutOptions lists the selectable approval timeouts in minutes.
var ApprovalTimeoutOptions = [...]int{5, 10, 15, 20, 30}

// DefaultPreferences returns the values a new customer starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		AutoApproveVariances:       true,
		MaxAutoVariancePercentage:  15,
		AutoApproveOveragesOnly:    false,
		VarianceNotificationMethod: NotifyPush,
		ApprovalTimeoutMinutes:     10,
	}
}

// ValidVariancePercentage checks v against VariancePercentageOptions.
func ValidVariancePercentage(v int) bool {
	for _, o := range VariancePercentageOptions {
		if o == v {
			return true
		}
	}
	return false
}

// ValidApprovalTimeout checks v against ApprovalTimeoutOptions.
func ValidApprovalTimeout(v int) bool {
	for _, o := range ApprovalTimeoutOptions {
		if o == v {
			return true
		}
	}
	return false
}

// Valid reports whether every field holds an allowed value.
func (p Preferences) Valid() bool {
	return ValidVariancePercentage(p.MaxAutoVariancePercentage) &&
		ValidApprovalTimeout(p.ApprovalTimeoutMinutes) &&
		p.VarianceNotificationMethod.Valid()
}

// PreferenceState is the editable copy of a user's preferences.
// Committed is what the backend last confirmed; Draft is what the user is editing.
type PreferenceState struct {
	Committed Preferences
	Draft     Preferences
}

// Dirty reports whether the draft has unsaved changes.
func (s PreferenceState) Dirty() bool {
	return s.Draft != s.Committed
}

// NewPreferenceState seeds a clean state from committed values.
func NewPreferenceState(p Preferences) PreferenceState {
	return PreferenceState{Committed: p, Draft: p}
}
