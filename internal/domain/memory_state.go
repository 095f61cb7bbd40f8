package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// CardState represents the lifecycle stage of an item's memory.
type CardState string

// Lifecycle stages. New items have never been reviewed; Learning items are
// inside the short initial steps; Review items are in the long-term cycle;
// Relearning items were forgotten and are recovering.
const (
	CardStateNew        CardState = "new"
	CardStateLearning   CardState = "learning"
	CardStateReview     CardState = "review"
	CardStateRelearning CardState = "relearning"
)

// IsValid reports whether s is a defined card state.
func (s CardState) IsValid() bool {
	switch s {
	case CardStateNew, CardStateLearning, CardStateReview, CardStateRelearning:
		return true
	default:
		return false
	}
}

// Memory model bounds shared by the domain and the scheduling engine.
const (
	// MinStability is the floor applied to stability after any computation.
	// Stability of exactly zero would divide by zero in the retrievability
	// formula.
	MinStability = 0.001

	// MinDifficulty and MaxDifficulty bound the intrinsic difficulty scalar.
	MinDifficulty = 1.0
	MaxDifficulty = 10.0

	// DefaultDifficulty is the midpoint placeholder assigned at creation,
	// before the first review computes a rating-specific value.
	DefaultDifficulty = 5.5

	// DefaultRetrievability is the placeholder recall probability assigned
	// at creation.
	DefaultRetrievability = 0.9
)

// Common validation errors for MemoryState
var (
	ErrEmptyStateItemID      = errors.New("memory state item ID cannot be empty")
	ErrInvalidStability      = errors.New("stability must be a finite value >= 0")
	ErrInvalidDifficulty     = errors.New("difficulty must be within [1, 10]")
	ErrInvalidRetrievability = errors.New("retrievability must be within [0, 1]")
	ErrInvalidCardState      = errors.New("invalid card state")
)

// MemoryState tracks the scheduling memory model for a single item.
// It is owned 1:1 by an Item, created together with it, and mutated only by
// applying the scheduling engine's output inside the review service.
type MemoryState struct {
	ItemID         uuid.UUID  `json:"item_id"`
	Stability      float64    `json:"stability"`       // S, days for recall to fall from 100% to 90%
	Difficulty     float64    `json:"difficulty"`      // D, intrinsic complexity in [1, 10]
	Retrievability float64    `json:"retrievability"`  // R, last computed recall probability
	Due            time.Time  `json:"due"`             // earliest next review time
	State          CardState  `json:"state"`           // lifecycle stage
	LastReviewedAt *time.Time `json:"last_reviewed_at"` // nil before first review
	ReviewCount    int        `json:"review_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewMemoryState creates the initial memory state for a freshly created item.
// The item is due immediately so it can enter its first review.
func NewMemoryState(itemID uuid.UUID) (*MemoryState, error) {
	now := time.Now().UTC()
	state := &MemoryState{
		ItemID:         itemID,
		Stability:      0,
		Difficulty:     DefaultDifficulty,
		Retrievability: DefaultRetrievability,
		Due:            now,
		State:          CardStateNew,
		LastReviewedAt: nil,
		ReviewCount:    0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}

// Validate checks if the MemoryState has valid data.
// Returns an error if any field is outside its domain.
func (s *MemoryState) Validate() error {
	if s.ItemID == uuid.Nil {
		return ErrEmptyStateItemID
	}

	if s.Stability < 0 || math.IsNaN(s.Stability) || math.IsInf(s.Stability, 0) {
		return ErrInvalidStability
	}

	if s.Difficulty < MinDifficulty || s.Difficulty > MaxDifficulty ||
		math.IsNaN(s.Difficulty) {
		return ErrInvalidDifficulty
	}

	if s.Retrievability < 0 || s.Retrievability > 1 || math.IsNaN(s.Retrievability) {
		return ErrInvalidRetrievability
	}

	if !s.State.IsValid() {
		return ErrInvalidCardState
	}

	return nil
}

// Clone returns a deep copy of the state. Pointer fields are copied by value,
// so mutating the clone never touches the original.
func (s *MemoryState) Clone() *MemoryState {
	out := *s
	if s.LastReviewedAt != nil {
		t := *s.LastReviewedAt
		out.LastReviewedAt = &t
	}
	return &out
}
