package review

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
	"github.com/lexvault/srs-api/internal/store"
)

// MemoryStateRepository defines the interface for repositories that can
// provide memory state data and support transactions.
type MemoryStateRepository interface {
	// GetForUpdate retrieves the memory state with a row-level lock.
	GetForUpdate(ctx context.Context, itemID uuid.UUID) (*domain.MemoryState, error)

	// Update replaces the stored state, guarded by the expected updated_at.
	Update(ctx context.Context, state *domain.MemoryState, expectedUpdatedAt time.Time) error

	// FetchDue returns items eligible for review at the given time.
	FetchDue(ctx context.Context, mode domain.StudyMode, now time.Time, limit int) ([]domain.QueueEntry, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MemoryStateRepository

	// DB returns the underlying database connection, or nil for
	// repositories without one (in-memory implementations).
	DB() *sql.DB
}

// ReviewLogRepository defines the interface for repositories that can append
// and read review log records and support transactions.
type ReviewLogRepository interface {
	// Append writes one immutable review record.
	Append(ctx context.Context, record *domain.ReviewRecord) error

	// ListByItem returns the review history for an item, most recent first.
	ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.ReviewRecord, error)

	// CountByItem returns the number of logged reviews for an item.
	CountByItem(ctx context.Context, itemID uuid.UUID) (int, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReviewLogRepository
}

// NewMemoryStateRepositoryAdapter creates a new adapter that allows a
// store.MemoryStateStore to be used where a MemoryStateRepository is
// expected.
func NewMemoryStateRepositoryAdapter(stateStore store.MemoryStateStore, db *sql.DB) MemoryStateRepository {
	return &memoryStateRepositoryAdapter{
		stateStore: stateStore,
		db:         db,
	}
}

// memoryStateRepositoryAdapter adapts a store.MemoryStateStore to the
// MemoryStateRepository interface
type memoryStateRepositoryAdapter struct {
	stateStore store.MemoryStateStore
	db         *sql.DB
}

// GetForUpdate implements MemoryStateRepository.GetForUpdate
func (a *memoryStateRepositoryAdapter) GetForUpdate(ctx context.Context, itemID uuid.UUID) (*domain.MemoryState, error) {
	return a.stateStore.GetForUpdate(ctx, itemID)
}

// Update implements MemoryStateRepository.Update
func (a *memoryStateRepositoryAdapter) Update(ctx context.Context, state *domain.MemoryState, expectedUpdatedAt time.Time) error {
	return a.stateStore.Update(ctx, state, expectedUpdatedAt)
}

// FetchDue implements MemoryStateRepository.FetchDue
func (a *memoryStateRepositoryAdapter) FetchDue(
	ctx context.Context,
	mode domain.StudyMode,
	now time.Time,
	limit int,
) ([]domain.QueueEntry, error) {
	return a.stateStore.FetchDue(ctx, mode, now, limit)
}

// WithTx implements MemoryStateRepository.WithTx
func (a *memoryStateRepositoryAdapter) WithTx(tx *sql.Tx) MemoryStateRepository {
	return &memoryStateRepositoryAdapter{
		stateStore: a.stateStore.WithTx(tx),
		db:         a.db,
	}
}

// DB implements MemoryStateRepository.DB
func (a *memoryStateRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewReviewLogRepositoryAdapter creates a new adapter that allows a
// store.ReviewLogStore to be used where a ReviewLogRepository is expected.
func NewReviewLogRepositoryAdapter(logStore store.ReviewLogStore) ReviewLogRepository {
	return &reviewLogRepositoryAdapter{
		logStore: logStore,
	}
}

// reviewLogRepositoryAdapter adapts a store.ReviewLogStore to the
// ReviewLogRepository interface
type reviewLogRepositoryAdapter struct {
	logStore store.ReviewLogStore
}

// Append implements ReviewLogRepository.Append
func (a *reviewLogRepositoryAdapter) Append(ctx context.Context, record *domain.ReviewRecord) error {
	return a.logStore.Append(ctx, record)
}

// ListByItem implements ReviewLogRepository.ListByItem
func (a *reviewLogRepositoryAdapter) ListByItem(
	ctx context.Context,
	itemID uuid.UUID,
	limit, offset int,
) ([]*domain.ReviewRecord, error) {
	return a.logStore.ListByItem(ctx, itemID, limit, offset)
}

// CountByItem implements ReviewLogRepository.CountByItem
func (a *reviewLogRepositoryAdapter) CountByItem(ctx context.Context, itemID uuid.UUID) (int, error) {
	return a.logStore.CountByItem(ctx, itemID)
}

// WithTx implements ReviewLogRepository.WithTx
func (a *reviewLogRepositoryAdapter) WithTx(tx *sql.Tx) ReviewLogRepository {
	return &reviewLogRepositoryAdapter{
		logStore: a.logStore.WithTx(tx),
	}
}
