package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain error taxonomy. Business-rule outcomes (quota exhausted,
// missing match) travel as typed sentinels so handlers can map them to
// the right HTTP shape without string matching.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrQuotaExhausted     = errors.New("no likes remaining")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMatchNotFound      = errors.New("match not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

var sentinels = []error{
	ErrUnauthenticated,
	ErrUserNotFound,
	ErrProfileNotFound,
	ErrQuotaExhausted,
	ErrDuplicateEmail,
	ErrInvalidCredentials,
	ErrMatchNotFound,
	ErrStoreUnavailable,
}

// Map normalizes errors bubbling out of repositories into the domain
// taxonomy. Typed sentinels pass through untouched; anything else is a
// storage-layer failure and gets wrapped so the original message
// survives for logging.
func Map(err error) error {
	if err == nil {
		return nil
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// HTTPStatus maps a domain error to a response status code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrProfileNotFound),
		errors.Is(err, ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrQuotaExhausted):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
