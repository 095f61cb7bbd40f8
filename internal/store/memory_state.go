package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
)

// MemoryStateStore defines the interface for memory state persistence.
type MemoryStateStore interface {
	// Create saves the initial memory state for an item.
	// Returns ErrDuplicate if a state already exists for the item.
	Create(ctx context.Context, state *domain.MemoryState) error

	// Get retrieves the memory state for an item.
	// Returns ErrMemoryStateNotFound if no state exists.
	// NOTE: This method does NOT provide any row locking; use GetForUpdate
	// inside a transaction when you plan to update the row.
	Get(ctx context.Context, itemID uuid.UUID) (*domain.MemoryState, error)

	// GetForUpdate retrieves the memory state with a row-level lock using
	// SELECT FOR UPDATE. Must be called within a transaction.
	// Returns ErrMemoryStateNotFound if no state exists.
	GetForUpdate(ctx context.Context, itemID uuid.UUID) (*domain.MemoryState, error)

	// Update replaces the stored state for state.ItemID, but only if the
	// stored row still carries expectedUpdatedAt. Returns ErrConflict when a
	// competing writer committed in between, ErrMemoryStateNotFound when the
	// row is gone.
	Update(ctx context.Context, state *domain.MemoryState, expectedUpdatedAt time.Time) error

	// FetchDue returns references to items eligible for review at the given
	// time, in review order:
	//   - Scheduled mode: items with due <= now, most overdue first.
	//   - Cram mode: all items, weakest memory (lowest stability) first.
	// The result is a fresh snapshot; re-querying re-reads the store.
	FetchDue(ctx context.Context, mode domain.StudyMode, now time.Time, limit int) ([]domain.QueueEntry, error)

	// WithTx returns a new MemoryStateStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) MemoryStateStore
}
