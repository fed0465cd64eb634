package marketplace

import (
	"errors"
	"fmt"
	"net/http"

	"grocery-shopper/internal/apperr"
)

// ErrMalformedResponse is returned when a 2xx body fails boundary validation.
var ErrMalformedResponse = errors.New("malformed marketplace response")

// StatusError is a non-2xx answer from the marketplace API.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("marketplace: %s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("marketplace: %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Message)
}

// Unwrap maps the status code onto the application error categories.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusNotFound:
		return apperr.ErrNotFound
	case http.StatusConflict:
		return apperr.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperr.ErrInvalid
	case http.StatusTooManyRequests:
		return apperr.ErrUpstream
	default:
		if e.Code >= http.StatusInternalServerError {
			return apperr.ErrUpstream
		}
		return nil
	}
}

func malformed(what string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(what, args...))
}
