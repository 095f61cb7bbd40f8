package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexvault/srs-api/internal/domain/srs"
	"github.com/lexvault/srs-api/internal/service/items"
	"github.com/lexvault/srs-api/internal/service/review"
	"github.com/lexvault/srs-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "review item not found", err: review.ErrItemNotFound, want: http.StatusNotFound},
		{name: "items item not found", err: items.ErrItemNotFound, want: http.StatusNotFound},
		{name: "store not found", err: store.ErrMemoryStateNotFound, want: http.StatusNotFound},
		{name: "review conflict", err: review.ErrConflict, want: http.StatusConflict},
		{name: "store conflict", err: store.ErrConflict, want: http.StatusConflict},
		{name: "duplicate", err: store.ErrDuplicate, want: http.StatusConflict},
		{name: "invalid rating", err: review.ErrInvalidRating, want: http.StatusBadRequest},
		{name: "invalid mode", err: review.ErrInvalidMode, want: http.StatusBadRequest},
		{name: "invalid item", err: items.ErrInvalidItem, want: http.StatusBadRequest},
		{name: "invalid postpone days", err: srs.ErrInvalidDays, want: http.StatusBadRequest},
		{name: "invalid entity", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{
			name: "wrapped service error",
			err:  review.NewSubmitReviewError("could not commit review", review.ErrConflict),
			want: http.StatusConflict,
		},
		{
			name: "deeply wrapped not found",
			err:  fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", store.ErrItemNotFound)),
			want: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Item not found", GetSafeErrorMessage(review.ErrItemNotFound))

	// Internal details must never surface.
	internal := errors.New("pq: connection to postgres://app:secret@db failed")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(internal))
}
