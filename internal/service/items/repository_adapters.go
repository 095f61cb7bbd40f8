package items

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
	"github.com/lexvault/srs-api/internal/store"
)

// ItemRepository defines the interface for repositories that can provide
// item data and support transactions.
type ItemRepository interface {
	// Create saves a new item.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// Delete removes an item by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ItemRepository

	// DB returns the underlying database connection, or nil for
	// repositories without one (in-memory implementations).
	DB() *sql.DB
}

// MemoryStateRepository defines the interface for repositories that manage
// the per-item memory state rows attached to items.
type MemoryStateRepository interface {
	// Create saves the initial memory state for an item.
	Create(ctx context.Context, state *domain.MemoryState) error

	// Get retrieves the memory state for an item.
	Get(ctx context.Context, itemID uuid.UUID) (*domain.MemoryState, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MemoryStateRepository
}

// NewItemRepositoryAdapter creates a new adapter that allows a
// store.ItemStore to be used where an ItemRepository is expected.
func NewItemRepositoryAdapter(itemStore store.ItemStore, db *sql.DB) ItemRepository {
	return &itemRepositoryAdapter{
		itemStore: itemStore,
		db:        db,
	}
}

// itemRepositoryAdapter adapts a store.ItemStore to the ItemRepository interface
type itemRepositoryAdapter struct {
	itemStore store.ItemStore
	db        *sql.DB
}

// Create implements ItemRepository.Create
func (a *itemRepositoryAdapter) Create(ctx context.Context, item *domain.Item) error {
	return a.itemStore.Create(ctx, item)
}

// GetByID implements ItemRepository.GetByID
func (a *itemRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return a.itemStore.GetByID(ctx, id)
}

// Delete implements ItemRepository.Delete
func (a *itemRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return a.itemStore.Delete(ctx, id)
}

// WithTx implements ItemRepository.WithTx
func (a *itemRepositoryAdapter) WithTx(tx *sql.Tx) ItemRepository {
	return &itemRepositoryAdapter{
		itemStore: a.itemStore.WithTx(tx),
		db:        a.db,
	}
}

// DB implements ItemRepository.DB
func (a *itemRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewMemoryStateRepositoryAdapter creates a new adapter that allows a
// store.MemoryStateStore to be used where a MemoryStateRepository is
// expected.
func NewMemoryStateRepositoryAdapter(stateStore store.MemoryStateStore) MemoryStateRepository {
	return &memoryStateRepositoryAdapter{
		stateStore: stateStore,
	}
}

// memoryStateRepositoryAdapter adapts a store.MemoryStateStore to the
// MemoryStateRepository interface
type memoryStateRepositoryAdapter struct {
	stateStore store.MemoryStateStore
}

// Create implements MemoryStateRepository.Create
func (a *memoryStateRepositoryAdapter) Create(ctx context.Context, state *domain.MemoryState) error {
	return a.stateStore.Create(ctx, state)
}

// Get implements MemoryStateRepository.Get
func (a *memoryStateRepositoryAdapter) Get(ctx context.Context, itemID uuid.UUID) (*domain.MemoryState, error) {
	return a.stateStore.Get(ctx, itemID)
}

// WithTx implements MemoryStateRepository.WithTx
func (a *memoryStateRepositoryAdapter) WithTx(tx *sql.Tx) MemoryStateRepository {
	return &memoryStateRepositoryAdapter{
		stateStore: a.stateStore.WithTx(tx),
	}
}
