package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
	"github.com/lexvault/srs-api/internal/platform/logger"
	"github.com/lexvault/srs-api/internal/store"
)

// PostgresMemoryStateStore implements the store.MemoryStateStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMemoryStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMemoryStateStore creates a new PostgreSQL implementation of the
// MemoryStateStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMemoryStateStore(db store.DBTX, logger *slog.Logger) *PostgresMemoryStateStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMemoryStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "memory_state_store")),
	}
}

// Ensure PostgresMemoryStateStore implements store.MemoryStateStore interface
var _ store.MemoryStateStore = (*PostgresMemoryStateStore)(nil)

const memoryStateColumns = `
	item_id, stability, difficulty, retrievability, due, state,
	last_reviewed_at, review_count, created_at, updated_at
`

// Create implements store.MemoryStateStore.Create
func (s *PostgresMemoryStateStore) Create(ctx context.Context, state *domain.MemoryState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		log.Warn("memory state validation failed during create",
			slog.String("error", err.Error()),
			slog.String("item_id", state.ItemID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO memory_states (` + memoryStateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		state.ItemID,
		state.Stability,
		state.Difficulty,
		state.Retrievability,
		state.Due,
		state.State,
		state.LastReviewedAt,
		state.ReviewCount,
		state.CreatedAt,
		state.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create memory state",
			slog.String("error", err.Error()),
			slog.String("item_id", state.ItemID.String()))
		return MapError(err)
	}

	log.Debug("memory state created",
		slog.String("item_id", state.ItemID.String()),
		slog.String("state", string(state.State)))
	return nil
}

// Get implements store.MemoryStateStore.Get
func (s *PostgresMemoryStateStore) Get(ctx context.Context, itemID uuid.UUID) (*domain.MemoryState, error) {
	query := `
		SELECT ` + memoryStateColumns + `
		FROM memory_states
		WHERE item_id = $1
	`
	return s.queryOne(ctx, query, itemID)
}

// GetForUpdate implements store.MemoryStateStore.GetForUpdate
// The caller is responsible for running this inside a transaction; outside
// one the FOR UPDATE lock is released immediately and provides no protection.
func (s *PostgresMemoryStateStore) GetForUpdate(ctx context.Context, itemID uuid.UUID) (*domain.MemoryState, error) {
	query := `
		SELECT ` + memoryStateColumns + `
		FROM memory_states
		WHERE item_id = $1
		FOR UPDATE
	`
	return s.queryOne(ctx, query, itemID)
}

func (s *PostgresMemoryStateStore) queryOne(ctx context.Context, query string, itemID uuid.UUID) (*domain.MemoryState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var state domain.MemoryState
	var lastReviewedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, query, itemID).Scan(
		&state.ItemID,
		&state.Stability,
		&state.Difficulty,
		&state.Retrievability,
		&state.Due,
		&state.State,
		&lastReviewedAt,
		&state.ReviewCount,
		&state.CreatedAt,
		&state.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("memory state not found", slog.String("item_id", itemID.String()))
			return nil, store.ErrMemoryStateNotFound
		}
		log.Error("failed to get memory state",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, MapError(err)
	}

	if lastReviewedAt.Valid {
		t := lastReviewedAt.Time
		state.LastReviewedAt = &t
	}

	return &state, nil
}

// Update implements store.MemoryStateStore.Update
// It performs an optimistic concurrency check: the row is only updated when
// its updated_at still matches expectedUpdatedAt. A zero-row update where the
// row still exists means a competing writer got there first (ErrConflict).
func (s *PostgresMemoryStateStore) Update(ctx context.Context, state *domain.MemoryState, expectedUpdatedAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		log.Warn("memory state validation failed during update",
			slog.String("error", err.Error()),
			slog.String("item_id", state.ItemID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE memory_states
		SET stability = $2,
			difficulty = $3,
			retrievability = $4,
			due = $5,
			state = $6,
			last_reviewed_at = $7,
			review_count = $8,
			updated_at = $9
		WHERE item_id = $1 AND updated_at = $10
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		state.ItemID,
		state.Stability,
		state.Difficulty,
		state.Retrievability,
		state.Due,
		state.State,
		state.LastReviewedAt,
		state.ReviewCount,
		state.UpdatedAt,
		expectedUpdatedAt,
	)

	if err != nil {
		log.Error("failed to update memory state",
			slog.String("error", err.Error()),
			slog.String("item_id", state.ItemID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("item_id", state.ItemID.String()))
		return MapError(err)
	}

	if rowsAffected == 0 {
		// Distinguish a concurrent modification from a deleted row.
		var exists bool
		checkErr := s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM memory_states WHERE item_id = $1)`,
			state.ItemID,
		).Scan(&exists)
		if checkErr != nil {
			log.Error("failed to check memory state existence",
				slog.String("error", checkErr.Error()),
				slog.String("item_id", state.ItemID.String()))
			return MapError(checkErr)
		}
		if exists {
			log.Warn("memory state update conflict",
				slog.String("item_id", state.ItemID.String()))
			return store.ErrConflict
		}
		log.Debug("memory state not found for update",
			slog.String("item_id", state.ItemID.String()))
		return store.ErrMemoryStateNotFound
	}

	log.Debug("memory state updated",
		slog.String("item_id", state.ItemID.String()),
		slog.String("state", string(state.State)))
	return nil
}

// FetchDue implements store.MemoryStateStore.FetchDue
func (s *PostgresMemoryStateStore) FetchDue(ctx context.Context, mode domain.StudyMode, now time.Time, limit int) ([]domain.QueueEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown study mode %q", store.ErrInvalidEntity, mode)
	}
	if limit <= 0 {
		return []domain.QueueEntry{}, nil
	}

	var query string
	var args []interface{}
	switch mode {
	case domain.StudyModeScheduled:
		query = `
			SELECT item_id, due, stability, state
			FROM memory_states
			WHERE due <= $1
			ORDER BY due ASC
			LIMIT $2
		`
		args = []interface{}{now, limit}
	case domain.StudyModeCram:
		query = `
			SELECT item_id, due, stability, state
			FROM memory_states
			ORDER BY stability ASC
			LIMIT $1
		`
		args = []interface{}{limit}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to fetch due items",
			slog.String("error", err.Error()),
			slog.String("mode", string(mode)))
		return nil, MapError(err)
	}
	defer rows.Close()

	entries := []domain.QueueEntry{}
	for rows.Next() {
		var entry domain.QueueEntry
		if err := rows.Scan(&entry.ItemID, &entry.Due, &entry.Stability, &entry.State); err != nil {
			log.Error("failed to scan queue entry", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating queue entries", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("fetched due items",
		slog.String("mode", string(mode)),
		slog.Int("count", len(entries)))
	return entries, nil
}

// WithTx implements store.MemoryStateStore.WithTx
func (s *PostgresMemoryStateStore) WithTx(tx *sql.Tx) store.MemoryStateStore {
	return &PostgresMemoryStateStore{
		db:     tx,
		logger: s.logger,
	}
}
