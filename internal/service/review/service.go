// Package review implements the review coordinator: it owns the
// submit-review write path (engine call plus atomic persistence of the
// updated memory state and the log record), the due-item query, and the
// postpone operation.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
)

// SubmitResult is the outcome of a successful review submission.
type SubmitResult struct {
	// State is the committed post-review memory state. In Cram mode it is
	// the unchanged stored state.
	State *domain.MemoryState

	// Record is the review log entry for this submission. In Cram mode it
	// is only persisted when cram logging is enabled, but it is always
	// returned so the caller can show the computed retrievability.
	Record *domain.ReviewRecord
}

// ReviewService coordinates review submissions against the memory model.
type ReviewService interface {
	// SubmitReview processes one review of an item: it reads the stored
	// memory state, runs the scheduling engine, and atomically commits the
	// updated state together with a review log record. Concurrent submits
	// for the same item are serialized in-process; a submit that loses a
	// cross-process race returns ErrConflict and commits nothing.
	//
	// Returns ErrItemNotFound when no memory state exists for the item,
	// ErrInvalidRating / ErrInvalidMode on bad input.
	SubmitReview(
		ctx context.Context,
		itemID uuid.UUID,
		rating domain.Rating,
		mode domain.StudyMode,
	) (*SubmitResult, error)

	// FetchDue returns items eligible for study right now, in review order.
	// Scheduled mode returns items whose due date has passed, most overdue
	// first; Cram mode returns all items, weakest memory first. An empty
	// queue is an empty slice, not an error.
	FetchDue(ctx context.Context, mode domain.StudyMode, limit int) ([]domain.QueueEntry, error)

	// PostponeReview pushes an item's due date forward by the given number
	// of days without touching the memory model and without logging a
	// review. Returns the updated state.
	PostponeReview(ctx context.Context, itemID uuid.UUID, days int) (*domain.MemoryState, error)

	// GetHistory returns one page of the item's review log, most recent
	// first, together with the total number of logged reviews for the item.
	GetHistory(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.ReviewRecord, int, error)
}

// Common error types for ReviewService
var (
	// ErrItemNotFound indicates that no memory state exists for the item.
	ErrItemNotFound = errors.New("item not found")

	// ErrConflict indicates the submission lost a concurrent-update race
	// and was not committed. The caller may re-read and resubmit.
	ErrConflict = errors.New("review submission conflicts with a concurrent update")

	// ErrInvalidRating indicates an unknown rating value.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidMode indicates an unknown study mode.
	ErrInvalidMode = errors.New("invalid study mode")
)

// ServiceError wraps errors from the review service with additional context.
// Consumers differentiate failure classes with errors.As instead of string
// matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitReviewError returns a new ServiceError for the submit_review operation.
func NewSubmitReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "submit_review",
		Message:   message,
		Err:       err,
	}
}

// NewFetchDueError returns a new ServiceError for the fetch_due operation.
func NewFetchDueError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "fetch_due",
		Message:   message,
		Err:       err,
	}
}

// NewPostponeError returns a new ServiceError for the postpone_review operation.
func NewPostponeError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "postpone_review",
		Message:   message,
		Err:       err,
	}
}

// NewHistoryError returns a new ServiceError for the get_history operation.
func NewHistoryError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "get_history",
		Message:   message,
		Err:       err,
	}
}
