package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Weight validation failures. They are reported before any network call.
var (
	ErrInvalidWeight      = fmt.Errorf("%w: weight must be a positive finite number", ErrInvalid)
	ErrWeightBelowMinimum = fmt.Errorf("%w: weight below minimum", ErrInvalid)
	ErrWeightAboveMaximum = fmt.Errorf("%w: weight above maximum", ErrInvalid)
	ErrNotWeightBased     = fmt.Errorf("%w: item is not weight based", ErrInvalid)
)

// ErrSubmissionFailed means the backend rejected or never received a weight or quantity update.
var ErrSubmissionFailed = errors.New("submission failed")

// ErrUpstream means the marketplace was unreachable or answered with a server error.
var ErrUpstream = errors.New("marketplace unavailable")

// ErrPreferenceCommitFailed means saving preferences failed; the unsaved draft is kept.
var ErrPreferenceCommitFailed = errors.New("preference commit failed")

// ErrSubmissionInFlight is returned while a previous update for the same item is pending.
var ErrSubmissionInFlight = fmt.Errorf("%w: submission already in flight", ErrConflict)

// ErrCheckoutBlocked is returned when items are still unresolved.
var ErrCheckoutBlocked = fmt.Errorf("%w: checkout blocked", ErrConflict)
