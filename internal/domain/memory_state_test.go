package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryState(t *testing.T) {
	t.Parallel() // Enable parallel execution
	itemID := uuid.New()

	state, err := NewMemoryState(itemID)
	require.NoError(t, err, "Failed to create memory state")

	if state.ItemID != itemID {
		t.Errorf("item ID = %s, want %s", state.ItemID, itemID)
	}
	if state.State != CardStateNew {
		t.Errorf("state = %s, want new", state.State)
	}
	if state.Stability != 0 {
		t.Errorf("stability = %v, want 0", state.Stability)
	}
	if state.Difficulty != DefaultDifficulty {
		t.Errorf("difficulty = %v, want %v", state.Difficulty, DefaultDifficulty)
	}
	if state.Retrievability != DefaultRetrievability {
		t.Errorf("retrievability = %v, want %v", state.Retrievability, DefaultRetrievability)
	}
	if state.LastReviewedAt != nil {
		t.Error("last reviewed at should be nil for a new state")
	}
	if state.Due.After(time.Now().UTC()) {
		t.Error("new state should be due immediately")
	}
}

func TestNewMemoryStateRequiresItemID(t *testing.T) {
	t.Parallel() // Enable parallel execution
	_, err := NewMemoryState(uuid.Nil)
	if !errors.Is(err, ErrEmptyStateItemID) {
		t.Errorf("expected ErrEmptyStateItemID, got %v", err)
	}
}

func TestMemoryStateValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := func() *MemoryState {
		state, err := NewMemoryState(uuid.New())
		require.NoError(t, err)
		return state
	}

	testCases := []struct {
		name    string
		mutate  func(*MemoryState)
		wantErr error
	}{
		{
			name:    "valid state",
			mutate:  func(s *MemoryState) {},
			wantErr: nil,
		},
		{
			name:    "negative stability",
			mutate:  func(s *MemoryState) { s.Stability = -0.5 },
			wantErr: ErrInvalidStability,
		},
		{
			name:    "difficulty below range",
			mutate:  func(s *MemoryState) { s.Difficulty = 0.5 },
			wantErr: ErrInvalidDifficulty,
		},
		{
			name:    "difficulty above range",
			mutate:  func(s *MemoryState) { s.Difficulty = 10.5 },
			wantErr: ErrInvalidDifficulty,
		},
		{
			name:    "retrievability above one",
			mutate:  func(s *MemoryState) { s.Retrievability = 1.2 },
			wantErr: ErrInvalidRetrievability,
		},
		{
			name:    "unknown card state",
			mutate:  func(s *MemoryState) { s.State = CardState("limbo") },
			wantErr: ErrInvalidCardState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state := valid()
			tc.mutate(state)

			err := state.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got error %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestMemoryStateClone(t *testing.T) {
	t.Parallel() // Enable parallel execution

	state, err := NewMemoryState(uuid.New())
	require.NoError(t, err)
	last := time.Now().UTC().Add(-24 * time.Hour)
	state.LastReviewedAt = &last

	clone := state.Clone()
	clone.Stability = 99
	*clone.LastReviewedAt = clone.LastReviewedAt.Add(time.Hour)

	if state.Stability == 99 {
		t.Error("mutating the clone changed the original stability")
	}
	if !state.LastReviewedAt.Equal(last) {
		t.Error("mutating the clone changed the original last-review time")
	}
}

func TestMemoryStateJSONRoundTrip(t *testing.T) {
	t.Parallel() // Enable parallel execution

	state, err := NewMemoryState(uuid.New())
	require.NoError(t, err)
	last := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)
	state.State = CardStateReview
	state.Stability = 12.345678901234
	state.Difficulty = 6.789012345678
	state.Retrievability = 0.87654321
	state.LastReviewedAt = &last

	data, err := json.Marshal(state)
	require.NoError(t, err, "Failed to marshal state")

	var decoded MemoryState
	require.NoError(t, json.Unmarshal(data, &decoded), "Failed to unmarshal state")

	// Floating-point fields must survive the round trip bit-for-bit.
	if decoded.Stability != state.Stability {
		t.Errorf("stability round trip: %v != %v", decoded.Stability, state.Stability)
	}
	if decoded.Difficulty != state.Difficulty {
		t.Errorf("difficulty round trip: %v != %v", decoded.Difficulty, state.Difficulty)
	}
	if decoded.Retrievability != state.Retrievability {
		t.Errorf("retrievability round trip: %v != %v", decoded.Retrievability, state.Retrievability)
	}
	if decoded.State != state.State {
		t.Errorf("card state round trip: %v != %v", decoded.State, state.State)
	}
}
