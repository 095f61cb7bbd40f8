package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
)

// ItemStore defines the interface for vocabulary item persistence.
type ItemStore interface {
	// Create saves a new item. It handles domain validation internally.
	// Returns ErrDuplicate if an item with the same ID already exists.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// Delete removes an item by ID. The item's memory state and review log
	// entries are removed with it (cascade).
	// Returns ErrItemNotFound if the item does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ItemStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ItemStore
}
