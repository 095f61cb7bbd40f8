// Package items implements vocabulary item lifecycle: creating an item
// together with its initial memory state, reading it back with the current
// scheduling snapshot, and deleting it with its history.
package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
)

// ItemWithState pairs an item with its current memory state.
type ItemWithState struct {
	Item  *domain.Item        `json:"item"`
	State *domain.MemoryState `json:"state"`
}

// ItemService manages vocabulary items and their attached memory states.
type ItemService interface {
	// CreateItem creates a new item and its initial memory state in one
	// atomic operation. A new item starts in the New lifecycle state and is
	// immediately eligible for study.
	CreateItem(ctx context.Context, term, definition, notes string) (*ItemWithState, error)

	// GetItem retrieves an item together with its memory state.
	// Returns ErrItemNotFound when the item does not exist.
	GetItem(ctx context.Context, id uuid.UUID) (*ItemWithState, error)

	// DeleteItem removes an item. Its memory state and review history go
	// with it. Returns ErrItemNotFound when the item does not exist.
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// Common error types for ItemService
var (
	// ErrItemNotFound indicates that the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItem indicates the item fields failed validation.
	ErrInvalidItem = errors.New("invalid item")
)

// ServiceError wraps errors from the item service with additional context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_item")
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

// NewCreateItemError returns a new ServiceError for the create_item operation.
func NewCreateItemError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "create_item",
		Message:   message,
		Err:       err,
	}
}

// NewGetItemError returns a new ServiceError for the get_item operation.
func NewGetItemError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "get_item",
		Message:   message,
		Err:       err,
	}
}

// NewDeleteItemError returns a new ServiceError for the delete_item operation.
func NewDeleteItemError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "delete_item",
		Message:   message,
		Err:       err,
	}
}
