package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
)

// ReviewLogStore defines the interface for the append-only review history.
// Records are immutable once written; no update or single-record delete is
// exposed. Entries disappear only when their item is deleted (cascade).
type ReviewLogStore interface {
	// Append writes one review record. It handles domain validation
	// internally. Returns ErrDuplicate on an ID collision.
	Append(ctx context.Context, record *domain.ReviewRecord) error

	// ListByItem returns the review history for an item, most recent first.
	ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.ReviewRecord, error)

	// CountByItem returns the number of logged reviews for an item.
	CountByItem(ctx context.Context, itemID uuid.UUID) (int, error)

	// WithTx returns a new ReviewLogStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ReviewLogStore
}
