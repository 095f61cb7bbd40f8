package api

import (
	"errors"
	"net/http"

	"github.com/lexvault/srs-api/internal/domain/srs"
	"github.com/lexvault/srs-api/internal/service/items"
	"github.com/lexvault/srs-api/internal/service/review"
	"github.com/lexvault/srs-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, review.ErrItemNotFound),
		errors.Is(err, items.ErrItemNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, review.ErrConflict),
		errors.Is(err, store.ErrConflict),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, review.ErrInvalidMode),
		errors.Is(err, items.ErrInvalidItem),
		errors.Is(err, srs.ErrInvalidDays),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for an error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, review.ErrItemNotFound),
		errors.Is(err, items.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, review.ErrConflict), errors.Is(err, store.ErrConflict):
		return "The item was modified concurrently; please retry"

	case errors.Is(err, store.ErrDuplicate):
		return "The entity already exists"

	case errors.Is(err, review.ErrInvalidRating):
		return "Invalid rating; must be one of: again, hard, good, easy"

	case errors.Is(err, review.ErrInvalidMode):
		return "Invalid study mode; must be one of: scheduled, cram"

	case errors.Is(err, srs.ErrInvalidDays):
		return "Postpone days must be at least 1"

	case errors.Is(err, items.ErrInvalidItem),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}
