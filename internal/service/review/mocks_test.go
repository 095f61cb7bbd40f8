package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/domain"
	"github.com/lexvault/srs-api/internal/store"
)

var (
	errBoom            = errors.New("boom")
	errConflictForTest = fmt.Errorf("%w: forced by test", store.ErrConflict)
)

// mockStateRepo is an in-memory MemoryStateRepository with the same
// optimistic-concurrency semantics as the real store.
type mockStateRepo struct {
	mu     sync.Mutex
	states map[uuid.UUID]*domain.MemoryState

	// getErr and updateErr force failures when set.
	getErr    error
	updateErr error
}

func newMockStateRepo() *mockStateRepo {
	return &mockStateRepo{states: make(map[uuid.UUID]*domain.MemoryState)}
}

func (m *mockStateRepo) put(state *domain.MemoryState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.ItemID] = state.Clone()
}

func (m *mockStateRepo) get(itemID uuid.UUID) *domain.MemoryState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[itemID]; ok {
		return s.Clone()
	}
	return nil
}

func (m *mockStateRepo) GetForUpdate(ctx context.Context, itemID uuid.UUID) (*domain.MemoryState, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[itemID]
	if !ok {
		return nil, store.ErrMemoryStateNotFound
	}
	return state.Clone(), nil
}

func (m *mockStateRepo) Update(ctx context.Context, state *domain.MemoryState, expectedUpdatedAt time.Time) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.states[state.ItemID]
	if !ok {
		return store.ErrMemoryStateNotFound
	}
	if !stored.UpdatedAt.Equal(expectedUpdatedAt) {
		return store.ErrConflict
	}
	m.states[state.ItemID] = state.Clone()
	return nil
}

func (m *mockStateRepo) FetchDue(
	ctx context.Context,
	mode domain.StudyMode,
	now time.Time,
	limit int,
) ([]domain.QueueEntry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := []domain.QueueEntry{}
	for _, s := range m.states {
		if mode == domain.StudyModeScheduled && s.Due.After(now) {
			continue
		}
		entries = append(entries, domain.QueueEntry{
			ItemID:    s.ItemID,
			Due:       s.Due,
			Stability: s.Stability,
			State:     s.State,
		})
		if len(entries) == limit {
			break
		}
	}
	return entries, nil
}

func (m *mockStateRepo) WithTx(tx *sql.Tx) MemoryStateRepository { return m }
func (m *mockStateRepo) DB() *sql.DB                             { return nil }

// mockLogRepo is an in-memory append-only ReviewLogRepository.
type mockLogRepo struct {
	mu      sync.Mutex
	records []*domain.ReviewRecord

	appendErr error
	listErr   error
}

func newMockLogRepo() *mockLogRepo {
	return &mockLogRepo{}
}

func (m *mockLogRepo) Append(ctx context.Context, record *domain.ReviewRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *mockLogRepo) ListByItem(
	ctx context.Context,
	itemID uuid.UUID,
	limit, offset int,
) ([]*domain.ReviewRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []*domain.ReviewRecord{}
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].ItemID == itemID {
			matched = append(matched, m.records[i])
		}
	}
	if offset >= len(matched) {
		return []*domain.ReviewRecord{}, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *mockLogRepo) CountByItem(ctx context.Context, itemID uuid.UUID) (int, error) {
	if m.listErr != nil {
		return 0, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, r := range m.records {
		if r.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (m *mockLogRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *mockLogRepo) WithTx(tx *sql.Tx) ReviewLogRepository { return m }
