package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
	"github.com/lexvault/srs-api/internal/domain/srs"
	"github.com/lexvault/srs-api/internal/platform/logger"
	"github.com/lexvault/srs-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	stateRepo MemoryStateRepository
	logRepo   ReviewLogRepository
	engine    *srs.Engine
	logCram   bool
	logger    *slog.Logger
	now       func() time.Time

	// itemLocks serializes in-flight submissions per item within this
	// process. Cross-process races are caught by the optimistic updated_at
	// check in the store.
	mu        sync.Mutex
	itemLocks map[uuid.UUID]*sync.Mutex
}

// Option configures a ReviewService created by NewReviewService.
type Option func(*reviewServiceImpl)

// WithClock overrides the service's time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *reviewServiceImpl) {
		s.now = now
	}
}

// WithCramLogging controls whether cram-mode reviews are persisted to the
// review log. Logging is on by default; pass false to opt out, for example
// to keep practice sessions out of future weight-tuning input.
func WithCramLogging(enabled bool) Option {
	return func(s *reviewServiceImpl) {
		s.logCram = enabled
	}
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	stateRepo MemoryStateRepository,
	logRepo ReviewLogRepository,
	engine *srs.Engine,
	logger *slog.Logger,
	opts ...Option,
) ReviewService {
	if stateRepo == nil {
		panic("stateRepo cannot be nil")
	}
	if logRepo == nil {
		panic("logRepo cannot be nil")
	}
	if engine == nil {
		panic("engine cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &reviewServiceImpl{
		stateRepo: stateRepo,
		logRepo:   logRepo,
		engine:    engine,
		logCram:   true,
		logger:    logger.With(slog.String("component", "review_service")),
		now:       time.Now,
		itemLocks: make(map[uuid.UUID]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lockItem acquires the in-process lock for an item and returns the unlock
// function. Lock entries are never removed; the map is bounded by the number
// of distinct items reviewed by this process.
func (s *reviewServiceImpl) lockItem(itemID uuid.UUID) func() {
	s.mu.Lock()
	lock, ok := s.itemLocks[itemID]
	if !ok {
		lock = &sync.Mutex{}
		s.itemLocks[itemID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// SubmitReview implements ReviewService.SubmitReview.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	itemID uuid.UUID,
	rating domain.Rating,
	mode domain.StudyMode,
) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review submission",
		slog.String("item_id", itemID.String()),
		slog.String("rating", string(rating)),
		slog.String("mode", string(mode)))

	if !rating.IsValid() {
		log.Warn("invalid rating in submission",
			slog.String("item_id", itemID.String()),
			slog.String("rating", string(rating)))
		return nil, ErrInvalidRating
	}
	if !mode.IsValid() {
		log.Warn("invalid study mode in submission",
			slog.String("item_id", itemID.String()),
			slog.String("mode", string(mode)))
		return nil, ErrInvalidMode
	}

	unlock := s.lockItem(itemID)
	defer unlock()

	now := s.now().UTC()

	var result *SubmitResult
	err := s.runInTransaction(ctx, func(
		ctx context.Context,
		stateRepo MemoryStateRepository,
		logRepo ReviewLogRepository,
	) error {
		state, err := stateRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Debug("no memory state for item",
					slog.String("item_id", itemID.String()))
				return ErrItemNotFound
			}
			return fmt.Errorf("failed to get memory state: %w", err)
		}
		expectedUpdatedAt := state.UpdatedAt

		outcome, err := s.engine.Review(state, rating, now, mode)
		if err != nil {
			return fmt.Errorf("failed to compute review: %w", err)
		}

		record := buildRecord(state, outcome, rating, mode, now)

		if mode == domain.StudyModeScheduled {
			if err := stateRepo.Update(ctx, outcome.State, expectedUpdatedAt); err != nil {
				if errors.Is(err, store.ErrConflict) {
					log.Warn("review submission lost concurrent-update race",
						slog.String("item_id", itemID.String()))
					return ErrConflict
				}
				if errors.Is(err, store.ErrNotFound) {
					return ErrItemNotFound
				}
				return fmt.Errorf("failed to update memory state: %w", err)
			}
		}

		if mode == domain.StudyModeScheduled || s.logCram {
			if err := logRepo.Append(ctx, record); err != nil {
				return fmt.Errorf("failed to append review record: %w", err)
			}
		}

		result = &SubmitResult{State: outcome.State, Record: record}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrConflict) {
			return nil, err
		}

		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, NewSubmitReviewError("could not commit review", err)
	}

	log.Debug("review submission committed",
		slog.String("item_id", itemID.String()),
		slog.String("rating", string(rating)),
		slog.String("mode", string(mode)),
		slog.String("state", string(result.State.State)),
		slog.Float64("stability", result.State.Stability),
		slog.Time("due", result.State.Due))

	return result, nil
}

// FetchDue implements ReviewService.FetchDue.
func (s *reviewServiceImpl) FetchDue(
	ctx context.Context,
	mode domain.StudyMode,
	limit int,
) ([]domain.QueueEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !mode.IsValid() {
		return nil, ErrInvalidMode
	}

	now := s.now().UTC()
	entries, err := s.stateRepo.FetchDue(ctx, mode, now, limit)
	if err != nil {
		log.Error("failed to fetch due items",
			slog.String("error", err.Error()),
			slog.String("mode", string(mode)))
		return nil, NewFetchDueError("could not query due items", err)
	}

	log.Debug("fetched due items",
		slog.String("mode", string(mode)),
		slog.Int("count", len(entries)))
	return entries, nil
}

// PostponeReview implements ReviewService.PostponeReview.
// Postponing is not a review: no record is logged and the memory model is
// left untouched apart from the due date.
func (s *reviewServiceImpl) PostponeReview(
	ctx context.Context,
	itemID uuid.UUID,
	days int,
) (*domain.MemoryState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlock := s.lockItem(itemID)
	defer unlock()

	now := s.now().UTC()

	var updated *domain.MemoryState
	err := s.runInTransaction(ctx, func(
		ctx context.Context,
		stateRepo MemoryStateRepository,
		logRepo ReviewLogRepository,
	) error {
		state, err := stateRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("failed to get memory state: %w", err)
		}
		expectedUpdatedAt := state.UpdatedAt

		next, err := s.engine.Postpone(state, days, now)
		if err != nil {
			return fmt.Errorf("failed to postpone: %w", err)
		}

		if err := stateRepo.Update(ctx, next, expectedUpdatedAt); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrConflict
			}
			if errors.Is(err, store.ErrNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("failed to update memory state: %w", err)
		}

		updated = next
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrConflict) ||
			errors.Is(err, srs.ErrInvalidDays) {
			return nil, err
		}

		log.Error("failed to postpone review",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()),
			slog.Int("days", days))
		return nil, NewPostponeError("could not postpone item", err)
	}

	log.Debug("item postponed",
		slog.String("item_id", itemID.String()),
		slog.Int("days", days),
		slog.Time("due", updated.Due))
	return updated, nil
}

// GetHistory implements ReviewService.GetHistory.
func (s *reviewServiceImpl) GetHistory(
	ctx context.Context,
	itemID uuid.UUID,
	limit, offset int,
) ([]*domain.ReviewRecord, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records, err := s.logRepo.ListByItem(ctx, itemID, limit, offset)
	if err != nil {
		log.Error("failed to list review history",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, 0, NewHistoryError("could not list review history", err)
	}

	total, err := s.logRepo.CountByItem(ctx, itemID)
	if err != nil {
		log.Error("failed to count review history",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, 0, NewHistoryError("could not count review history", err)
	}

	return records, total, nil
}

// runInTransaction runs fn against transaction-bound repositories. When the
// state repository has no database connection (in-memory implementations)
// fn runs directly against the untransacted repositories.
func (s *reviewServiceImpl) runInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, stateRepo MemoryStateRepository, logRepo ReviewLogRepository) error,
) error {
	db := s.stateRepo.DB()
	if db == nil {
		return fn(ctx, s.stateRepo, s.logRepo)
	}

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.stateRepo.WithTx(tx), s.logRepo.WithTx(tx))
	})
}

// buildRecord assembles the immutable log entry for one submission from the
// pre-review state and the engine outcome.
func buildRecord(
	before *domain.MemoryState,
	outcome *srs.Result,
	rating domain.Rating,
	mode domain.StudyMode,
	now time.Time,
) *domain.ReviewRecord {
	return &domain.ReviewRecord{
		ID:                   uuid.New(),
		ItemID:               before.ItemID,
		Rating:               rating,
		Mode:                 mode,
		ReviewedAt:           now,
		ElapsedDays:          outcome.ElapsedDays,
		ScheduledDays:        outcome.ScheduledDays,
		StabilityBefore:      before.Stability,
		StabilityAfter:       outcome.State.Stability,
		DifficultyBefore:     before.Difficulty,
		DifficultyAfter:      outcome.State.Difficulty,
		RetrievabilityBefore: outcome.Retrievability,
		RetrievabilityAfter:  outcome.State.Retrievability,
		StateBefore:          before.State,
		StateAfter:           outcome.State.State,
		CreatedAt:            now,
	}
}
