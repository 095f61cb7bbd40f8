package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
	"github.com/lexvault/srs-api/internal/platform/logger"
	"github.com/lexvault/srs-api/internal/store"
)

// Verify interface compliance at compile time
var _ ItemService = (*itemServiceImpl)(nil)

// itemServiceImpl implements the ItemService interface.
type itemServiceImpl struct {
	itemRepo  ItemRepository
	stateRepo MemoryStateRepository
	logger    *slog.Logger
}

// NewItemService creates a new ItemService implementation.
func NewItemService(
	itemRepo ItemRepository,
	stateRepo MemoryStateRepository,
	logger *slog.Logger,
) ItemService {
	if itemRepo == nil {
		panic("itemRepo cannot be nil")
	}
	if stateRepo == nil {
		panic("stateRepo cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &itemServiceImpl{
		itemRepo:  itemRepo,
		stateRepo: stateRepo,
		logger:    logger.With(slog.String("component", "item_service")),
	}
}

// CreateItem implements ItemService.CreateItem.
// The item and its initial memory state are committed in one transaction;
// an item without a state row cannot exist.
func (s *itemServiceImpl) CreateItem(
	ctx context.Context,
	term, definition, notes string,
) (*ItemWithState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := domain.NewItem(term, definition, notes)
	if err != nil {
		log.Warn("item validation failed",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}

	state, err := domain.NewMemoryState(item.ID)
	if err != nil {
		return nil, NewCreateItemError("could not build initial memory state", err)
	}

	err = s.runInTransaction(ctx, func(
		ctx context.Context,
		itemRepo ItemRepository,
		stateRepo MemoryStateRepository,
	) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
		if err := stateRepo.Create(ctx, state); err != nil {
			return fmt.Errorf("failed to create memory state: %w", err)
		}
		return nil
	})

	if err != nil {
		log.Error("failed to create item",
			slog.String("error", err.Error()),
			slog.String("term", term))
		return nil, NewCreateItemError("could not create item", err)
	}

	log.Info("item created",
		slog.String("item_id", item.ID.String()),
		slog.String("term", item.Term))

	return &ItemWithState{Item: item, State: state}, nil
}

// GetItem implements ItemService.GetItem.
func (s *itemServiceImpl) GetItem(ctx context.Context, id uuid.UUID) (*ItemWithState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		log.Error("failed to get item",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return nil, NewGetItemError("could not load item", err)
	}

	state, err := s.stateRepo.Get(ctx, id)
	if err != nil {
		// A missing state row for an existing item is a data integrity
		// problem; surface it rather than papering over it.
		log.Error("failed to get memory state for item",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return nil, NewGetItemError("could not load memory state", err)
	}

	return &ItemWithState{Item: item, State: state}, nil
}

// DeleteItem implements ItemService.DeleteItem.
// The memory state and review log rows cascade at the schema level, so a
// single delete suffices.
func (s *itemServiceImpl) DeleteItem(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrItemNotFound
		}
		log.Error("failed to delete item",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return NewDeleteItemError("could not delete item", err)
	}

	log.Info("item deleted", slog.String("item_id", id.String()))
	return nil
}

// runInTransaction runs fn against transaction-bound repositories. When the
// item repository has no database connection (in-memory implementations)
// fn runs directly against the untransacted repositories.
func (s *itemServiceImpl) runInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, itemRepo ItemRepository, stateRepo MemoryStateRepository) error,
) error {
	db := s.itemRepo.DB()
	if db == nil {
		return fn(ctx, s.itemRepo, s.stateRepo)
	}

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.itemRepo.WithTx(tx), s.stateRepo.WithTx(tx))
	})
}
