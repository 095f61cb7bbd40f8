package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lexvault/srs-api/internal/domain"
)

// reviewState builds a MemoryState in the Review stage with the given
// stability, last reviewed elapsedDays before now.
func reviewState(t *testing.T, now time.Time, stability float64, elapsedDays int) *domain.MemoryState {
	t.Helper()

	state, err := domain.NewMemoryState(uuid.New())
	require.NoError(t, err, "Failed to create memory state")

	last := now.AddDate(0, 0, -elapsedDays)
	state.State = domain.CardStateReview
	state.Stability = stability
	state.Difficulty = 5.0
	state.LastReviewedAt = &last
	state.ReviewCount = 3
	state.Due = now
	return state
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(nil)
	require.NoError(t, err, "Failed to create engine")
	return engine
}

func TestNewEngineRejectsInvalidParams(t *testing.T) {
	t.Parallel() // Enable parallel execution

	params := DefaultParams()
	params.DesiredRetention = 1.5

	_, err := NewEngine(params)
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestReviewNewItem(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	state, err := domain.NewMemoryState(uuid.New())
	require.NoError(t, err)

	result, err := engine.Review(state, domain.RatingGood, now, domain.StudyModeScheduled)
	require.NoError(t, err)

	next := result.State
	if next.State != domain.CardStateLearning {
		t.Errorf("state after first review = %s, want learning", next.State)
	}
	if next.Stability <= 0 {
		t.Errorf("stability after first review = %v, want > 0", next.Stability)
	}
	if next.Due.Before(now) || next.Due.After(now.Add(2*time.Hour)) {
		t.Errorf("due after first review = %v, want within a short horizon of %v", next.Due, now)
	}
	if next.ReviewCount != 1 {
		t.Errorf("review count = %d, want 1", next.ReviewCount)
	}
	if next.LastReviewedAt == nil || !next.LastReviewedAt.Equal(now) {
		t.Error("last reviewed time not set to now")
	}

	// The input state is never mutated.
	if state.State != domain.CardStateNew || state.ReviewCount != 0 {
		t.Error("engine mutated its input state")
	}
}

func TestReviewNewItemAlwaysEntersLearning(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	for _, rating := range []domain.Rating{
		domain.RatingAgain, domain.RatingHard, domain.RatingGood, domain.RatingEasy,
	} {
		state, err := domain.NewMemoryState(uuid.New())
		require.NoError(t, err)

		result, err := engine.Review(state, rating, now, domain.StudyModeScheduled)
		require.NoError(t, err)

		if result.State.State != domain.CardStateLearning {
			t.Errorf("first review with %s = %s, want learning", rating, result.State.State)
		}
	}
}

func TestReviewAgainForcesRelearning(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	state := reviewState(t, now, 100.0, 10)

	result, err := engine.Review(state, domain.RatingAgain, now, domain.StudyModeScheduled)
	require.NoError(t, err)

	next := result.State
	if next.State != domain.CardStateRelearning {
		t.Errorf("state after Again = %s, want relearning", next.State)
	}
	if next.Stability >= 100.0 {
		t.Errorf("stability after Again = %v, want < 100.0", next.Stability)
	}
	if next.Stability < domain.MinStability {
		t.Errorf("stability after Again = %v, want >= floor", next.Stability)
	}
}

func TestReviewEasyGrowsStability(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	state := reviewState(t, now, 10.0, 10)

	result, err := engine.Review(state, domain.RatingEasy, now, domain.StudyModeScheduled)
	require.NoError(t, err)

	if result.State.Stability <= 10.0 {
		t.Errorf("stability after Easy = %v, want > 10.0", result.State.Stability)
	}
	if result.State.State != domain.CardStateReview {
		t.Errorf("state after Easy = %s, want review", result.State.State)
	}
}

func TestReviewSameDayUsesShortTermStability(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	// R(0) = 1 zeroes the recall growth term, so a same-day review must take
	// the short-term stability path rather than leaving stability flat.
	easyResult, err := engine.Review(
		reviewState(t, now, 10.0, 0), domain.RatingEasy, now, domain.StudyModeScheduled)
	require.NoError(t, err)
	if easyResult.State.Stability <= 10.0 {
		t.Errorf("same-day Easy stability = %v, want > 10.0", easyResult.State.Stability)
	}

	goodResult, err := engine.Review(
		reviewState(t, now, 10.0, 0), domain.RatingGood, now, domain.StudyModeScheduled)
	require.NoError(t, err)
	if goodResult.State.Stability < 10.0 {
		t.Errorf("same-day Good stability = %v, want >= 10.0", goodResult.State.Stability)
	}

	againResult, err := engine.Review(
		reviewState(t, now, 10.0, 0), domain.RatingAgain, now, domain.StudyModeScheduled)
	require.NoError(t, err)
	if againResult.State.Stability >= 10.0 {
		t.Errorf("same-day Again stability = %v, want < 10.0", againResult.State.Stability)
	}
	if againResult.State.State != domain.CardStateRelearning {
		t.Errorf("state after same-day Again = %s, want relearning", againResult.State.State)
	}
}

func TestReviewMonotonicRewardOrdering(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	// Identical pre-state: Easy must never schedule earlier than Good.
	goodResult, err := engine.Review(
		reviewState(t, now, 15.0, 12), domain.RatingGood, now, domain.StudyModeScheduled)
	require.NoError(t, err)

	easyResult, err := engine.Review(
		reviewState(t, now, 15.0, 12), domain.RatingEasy, now, domain.StudyModeScheduled)
	require.NoError(t, err)

	if easyResult.State.Due.Before(goodResult.State.Due) {
		t.Errorf("Easy due %v is before Good due %v", easyResult.State.Due, goodResult.State.Due)
	}
	if easyResult.ScheduledDays < goodResult.ScheduledDays {
		t.Errorf("Easy scheduled %d days, Good %d", easyResult.ScheduledDays, goodResult.ScheduledDays)
	}
}

func TestReviewDueNeverBeforeNow(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	states := []*domain.MemoryState{
		reviewState(t, now, 0.5, 1),
		reviewState(t, now, 10.0, 30),
		reviewState(t, now, 500.0, 400),
	}

	for _, state := range states {
		for _, rating := range []domain.Rating{
			domain.RatingAgain, domain.RatingHard, domain.RatingGood, domain.RatingEasy,
		} {
			result, err := engine.Review(state, rating, now, domain.StudyModeScheduled)
			require.NoError(t, err)
			if result.State.Due.Before(now) {
				t.Errorf("due %v before now %v for rating %s", result.State.Due, now, rating)
			}
		}
	}
}

func TestReviewCramLeavesStateUntouched(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	state := reviewState(t, now, 20.0, 5)
	before := state.Clone()

	result, err := engine.Review(state, domain.RatingAgain, now, domain.StudyModeCram)
	require.NoError(t, err)

	next := result.State
	if next.Stability != before.Stability ||
		next.Difficulty != before.Difficulty ||
		!next.Due.Equal(before.Due) ||
		next.State != before.State ||
		next.ReviewCount != before.ReviewCount {
		t.Errorf("cram review altered memory state: before %+v, after %+v", before, next)
	}

	// Cram still reports timing and retrievability for the log.
	if result.ElapsedDays != 5 {
		t.Errorf("cram elapsed days = %v, want 5", result.ElapsedDays)
	}
	if result.Retrievability <= 0 || result.Retrievability > 1 {
		t.Errorf("cram retrievability = %v, want in (0, 1]", result.Retrievability)
	}
}

func TestReviewClockSkewClampsElapsed(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	// Last review 5 days in the future relative to now.
	state := reviewState(t, now, 10.0, -5)

	result, err := engine.Review(state, domain.RatingGood, now, domain.StudyModeScheduled)
	require.NoError(t, err)

	if result.ElapsedDays != 0 {
		t.Errorf("elapsed days under clock skew = %v, want 0", result.ElapsedDays)
	}
	require.NoError(t, result.State.Validate(), "state after skewed review must stay valid")
}

func TestReviewLearningGraduation(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	// A learning item with stability past the graduation threshold moves to
	// Review on a non-Again answer.
	state, err := domain.NewMemoryState(uuid.New())
	require.NoError(t, err)
	last := now.AddDate(0, 0, -1)
	state.State = domain.CardStateLearning
	state.Stability = engine.Params().GraduationThreshold + 1
	state.Difficulty = 5.0
	state.LastReviewedAt = &last
	state.ReviewCount = 1

	result, err := engine.Review(state, domain.RatingGood, now, domain.StudyModeScheduled)
	require.NoError(t, err)

	if result.State.State != domain.CardStateReview {
		t.Errorf("state after graduation = %s, want review", result.State.State)
	}
	if result.ScheduledDays < 1 {
		t.Errorf("scheduled days after graduation = %d, want >= 1", result.ScheduledDays)
	}

	// Again keeps it in Learning regardless of stability.
	failed, err := engine.Review(state, domain.RatingAgain, now, domain.StudyModeScheduled)
	require.NoError(t, err)
	if failed.State.State != domain.CardStateLearning {
		t.Errorf("state after Again in learning = %s, want learning", failed.State.State)
	}
}

func TestReviewRelearningRecovery(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	state, err := domain.NewMemoryState(uuid.New())
	require.NoError(t, err)
	last := now.AddDate(0, 0, -1)
	state.State = domain.CardStateRelearning
	state.Stability = 5.0
	state.Difficulty = 6.0
	state.LastReviewedAt = &last
	state.ReviewCount = 4

	result, err := engine.Review(state, domain.RatingGood, now, domain.StudyModeScheduled)
	require.NoError(t, err)

	if result.State.State != domain.CardStateReview {
		t.Errorf("state after relearning recovery = %s, want review", result.State.State)
	}
}

func TestReviewValidation(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	testCases := []struct {
		name    string
		state   *domain.MemoryState
		rating  domain.Rating
		mode    domain.StudyMode
		wantErr error
	}{
		{
			name:    "nil state",
			state:   nil,
			rating:  domain.RatingGood,
			mode:    domain.StudyModeScheduled,
			wantErr: ErrNilState,
		},
		{
			name:    "invalid rating",
			state:   reviewState(t, now, 10, 1),
			rating:  domain.Rating("meh"),
			mode:    domain.StudyModeScheduled,
			wantErr: ErrInvalidRating,
		},
		{
			name:    "invalid mode",
			state:   reviewState(t, now, 10, 1),
			rating:  domain.RatingGood,
			mode:    domain.StudyMode("exam"),
			wantErr: ErrInvalidMode,
		},
		{
			name: "out-of-domain difficulty",
			state: func() *domain.MemoryState {
				s := reviewState(t, now, 10, 1)
				s.Difficulty = 42
				return s
			}(),
			rating:  domain.RatingGood,
			mode:    domain.StudyModeScheduled,
			wantErr: ErrInvalidState,
		},
		{
			name: "negative stability",
			state: func() *domain.MemoryState {
				s := reviewState(t, now, 10, 1)
				s.Stability = -1
				return s
			}(),
			rating:  domain.RatingGood,
			mode:    domain.StudyModeScheduled,
			wantErr: ErrInvalidState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Review(tc.state, tc.rating, now, tc.mode)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got error %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestPostpone(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	state := reviewState(t, now, 10.0, 2)
	originalDue := state.Due

	next, err := engine.Postpone(state, 3, now)
	require.NoError(t, err)

	if !next.Due.Equal(originalDue.AddDate(0, 0, 3)) {
		t.Errorf("postponed due = %v, want %v", next.Due, originalDue.AddDate(0, 0, 3))
	}
	if next.Stability != state.Stability || next.State != state.State {
		t.Error("postpone must not touch the memory model")
	}

	_, err = engine.Postpone(state, 0, now)
	if !errors.Is(err, ErrInvalidDays) {
		t.Errorf("postpone with 0 days: got %v, want ErrInvalidDays", err)
	}

	_, err = engine.Postpone(nil, 3, now)
	if !errors.Is(err, ErrNilState) {
		t.Errorf("postpone with nil state: got %v, want ErrNilState", err)
	}
}

func TestRetrievabilityDecays(t *testing.T) {
	t.Parallel() // Enable parallel execution
	engine := newEngine(t)
	now := time.Now().UTC()

	state := reviewState(t, now, 10.0, 0)

	atReview := engine.Retrievability(state, now)
	afterTen := engine.Retrievability(state, now.AddDate(0, 0, 10))
	afterYear := engine.Retrievability(state, now.AddDate(1, 0, 0))

	if !(atReview > afterTen && afterTen > afterYear) {
		t.Errorf("retrievability not decaying: %v, %v, %v", atReview, afterTen, afterYear)
	}
}
