package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
	"github.com/lexvault/srs-api/internal/platform/logger"
	"github.com/lexvault/srs-api/internal/store"
)

// PostgresReviewLogStore implements the store.ReviewLogStore interface
// using a PostgreSQL database as the storage backend. The table is
// append-only; no UPDATE or single-row DELETE statement exists here.
type PostgresReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewLogStore creates a new PostgreSQL implementation of the
// ReviewLogStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewLogStore(db store.DBTX, logger *slog.Logger) *PostgresReviewLogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

// Ensure PostgresReviewLogStore implements store.ReviewLogStore interface
var _ store.ReviewLogStore = (*PostgresReviewLogStore)(nil)

const reviewLogColumns = `
	id, item_id, rating, mode, reviewed_at, elapsed_days, scheduled_days,
	stability_before, stability_after, difficulty_before, difficulty_after,
	retrievability_before, retrievability_after, state_before, state_after,
	created_at
`

// Append implements store.ReviewLogStore.Append
func (s *PostgresReviewLogStore) Append(ctx context.Context, record *domain.ReviewRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("review record validation failed",
			slog.String("error", err.Error()),
			slog.String("record_id", record.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_logs (` + reviewLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.ItemID,
		record.Rating,
		record.Mode,
		record.ReviewedAt,
		record.ElapsedDays,
		record.ScheduledDays,
		record.StabilityBefore,
		record.StabilityAfter,
		record.DifficultyBefore,
		record.DifficultyAfter,
		record.RetrievabilityBefore,
		record.RetrievabilityAfter,
		record.StateBefore,
		record.StateAfter,
		record.CreatedAt,
	)

	if err != nil {
		log.Error("failed to append review record",
			slog.String("error", err.Error()),
			slog.String("record_id", record.ID.String()),
			slog.String("item_id", record.ItemID.String()))
		return MapError(err)
	}

	log.Debug("review record appended",
		slog.String("record_id", record.ID.String()),
		slog.String("item_id", record.ItemID.String()),
		slog.String("rating", string(record.Rating)))
	return nil
}

// ListByItem implements store.ReviewLogStore.ListByItem
func (s *PostgresReviewLogStore) ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.ReviewRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return []*domain.ReviewRecord{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + reviewLogColumns + `
		FROM review_logs
		WHERE item_id = $1
		ORDER BY reviewed_at DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, itemID, limit, offset)
	if err != nil {
		log.Error("failed to list review records",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, MapError(err)
	}
	defer rows.Close()

	records := []*domain.ReviewRecord{}
	for rows.Next() {
		var record domain.ReviewRecord
		err := rows.Scan(
			&record.ID,
			&record.ItemID,
			&record.Rating,
			&record.Mode,
			&record.ReviewedAt,
			&record.ElapsedDays,
			&record.ScheduledDays,
			&record.StabilityBefore,
			&record.StabilityAfter,
			&record.DifficultyBefore,
			&record.DifficultyAfter,
			&record.RetrievabilityBefore,
			&record.RetrievabilityAfter,
			&record.StateBefore,
			&record.StateAfter,
			&record.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan review record", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating review records", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return records, nil
}

// CountByItem implements store.ReviewLogStore.CountByItem
func (s *PostgresReviewLogStore) CountByItem(ctx context.Context, itemID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_logs WHERE item_id = $1`,
		itemID,
	).Scan(&count)

	if err != nil {
		log.Error("failed to count review records",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// WithTx implements store.ReviewLogStore.WithTx
func (s *PostgresReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &PostgresReviewLogStore{
		db:     tx,
		logger: s.logger,
	}
}
