// Package srs implements the spaced-repetition scheduling engine: a pure,
// deterministic memory model that maps (state, rating, elapsed time) to a new
// memory state. The engine performs no I/O, reads no clocks and holds no
// mutable state, so it is safely callable from any number of goroutines.
package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/lexvault/srs-api/internal/domain"
	"github.com/lexvault/srs-api/internal/timeutil"
)

// Common errors
var (
	ErrNilState      = errors.New("memory state cannot be nil")
	ErrInvalidRating = errors.New("invalid rating")
	ErrInvalidMode   = errors.New("invalid study mode")
	ErrInvalidState  = errors.New("memory state outside valid domain")
	ErrInvalidParams = errors.New("invalid engine parameters")
	ErrInvalidDays   = errors.New("postpone days must be at least 1")
)

// Result is the immutable output of a review computation. The review service
// applies it to the store; the engine never mutates its input.
type Result struct {
	// State is the post-review memory state. In Cram mode it is an unchanged
	// copy of the input state.
	State *domain.MemoryState

	// ElapsedDays is the calendar-aware number of days since the last
	// review, clamped to zero under clock skew.
	ElapsedDays float64

	// ScheduledDays is the interval scheduled by this review in whole days,
	// or 0 when the next review is a sub-day learning step (or Cram mode).
	ScheduledDays int

	// Retrievability is R(t) at review time, computed before the review was
	// applied. This is what the review log records as the before value.
	Retrievability float64
}

// Engine computes review outcomes from injected parameters. The zero value
// is not usable; construct with NewEngine.
type Engine struct {
	params *Params
	algo   algorithm
}

// NewEngine creates an engine from the given parameters. A nil params uses
// DefaultParams. Invalid parameters return ErrInvalidParams.
func NewEngine(params *Params) (*Engine, error) {
	if params == nil {
		params = DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		params: params,
		algo:   newAlgorithm(params.Weights),
	}, nil
}

// Params returns the engine's parameters.
func (e *Engine) Params() *Params {
	return e.params
}

// Review computes the memory-state transition for one review submission.
//
// Scheduled mode applies the full memory model: stability and difficulty are
// updated, the lifecycle state machine advances, and the due date is solved
// for the desired retention. Cram mode computes elapsed time and
// retrievability for the log but returns the input state unchanged.
//
// The due date produced by a Scheduled review is always strictly after now.
// Input validation failures are caller bugs and are never retried.
func (e *Engine) Review(
	state *domain.MemoryState,
	rating domain.Rating,
	now time.Time,
	mode domain.StudyMode,
) (*Result, error) {
	if state == nil {
		return nil, ErrNilState
	}
	if !rating.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRating, rating)
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	// Defensive: unreachable when invariants hold, but a corrupted row must
	// surface as a typed error rather than NaN arithmetic.
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	elapsed := 0
	if state.LastReviewedAt != nil {
		elapsed = timeutil.ElapsedDays(*state.LastReviewedAt, now)
	}
	t := float64(elapsed)

	retrievability := e.currentRetrievability(state, t)

	if mode == domain.StudyModeCram {
		return &Result{
			State:          state.Clone(),
			ElapsedDays:    t,
			ScheduledDays:  0,
			Retrievability: retrievability,
		}, nil
	}

	next := state.Clone()
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt
	next.ReviewCount++
	next.UpdatedAt = now

	scheduledDays := 0

	switch state.State {
	case domain.CardStateNew:
		// First review: seed the memory model and enter Learning.
		next.Stability = e.algo.initialStability(rating)
		next.Difficulty = e.algo.initialDifficulty(rating)
		next.State = domain.CardStateLearning
		next.Due = now.Add(e.stepFor(rating))

	case domain.CardStateLearning, domain.CardStateRelearning:
		next.Difficulty = e.algo.nextDifficulty(state.Difficulty, rating)
		if elapsed == 0 {
			next.Stability = e.algo.shortTermStability(state.Stability, rating)
		} else {
			next.Stability = e.algo.nextStability(
				state.Difficulty, state.Stability, retrievability, rating)
		}

		switch {
		case rating == domain.RatingAgain:
			next.Due = now.Add(e.params.AgainStep)
		case next.Stability >= e.params.GraduationThreshold:
			next.State = domain.CardStateReview
			scheduledDays = e.algo.nextInterval(
				next.Stability, e.params.DesiredRetention, e.params.MaximumInterval)
			next.Due = now.AddDate(0, 0, scheduledDays)
		default:
			next.Due = now.Add(e.params.LearningStep)
		}

	case domain.CardStateReview:
		next.Difficulty = e.algo.nextDifficulty(state.Difficulty, rating)
		if elapsed == 0 {
			// Same-day review: R(0) = 1 would zero out the recall growth
			// term, so take the short-term path instead.
			next.Stability = e.algo.shortTermStability(state.Stability, rating)
		} else {
			next.Stability = e.algo.nextStability(
				state.Difficulty, state.Stability, retrievability, rating)
		}

		if rating == domain.RatingAgain {
			next.State = domain.CardStateRelearning
			next.Due = now.Add(e.params.LearningStep)
		} else {
			scheduledDays = e.algo.nextInterval(
				next.Stability, e.params.DesiredRetention, e.params.MaximumInterval)
			next.Due = now.AddDate(0, 0, scheduledDays)
		}
	}

	// The item was just (re)studied, so current recall probability is
	// certain; it decays from here according to the new stability.
	next.Retrievability = 1.0

	return &Result{
		State:          next,
		ElapsedDays:    t,
		ScheduledDays:  scheduledDays,
		Retrievability: retrievability,
	}, nil
}

// Retrievability returns the current estimated recall probability for the
// state at the given time. States that have never been reviewed report their
// creation placeholder.
func (e *Engine) Retrievability(state *domain.MemoryState, now time.Time) float64 {
	if state == nil {
		return 0
	}

	elapsed := 0
	if state.LastReviewedAt != nil {
		elapsed = timeutil.ElapsedDays(*state.LastReviewedAt, now)
	}
	return e.currentRetrievability(state, float64(elapsed))
}

// Postpone pushes the due date forward by the given number of days without
// touching the memory model. Returns a new state; the input is not mutated.
func (e *Engine) Postpone(
	state *domain.MemoryState,
	days int,
	now time.Time,
) (*domain.MemoryState, error) {
	if state == nil {
		return nil, ErrNilState
	}
	if days < 1 {
		return nil, ErrInvalidDays
	}

	next := state.Clone()
	next.Due = state.Due.AddDate(0, 0, days)
	next.UpdatedAt = now

	return next, nil
}

// currentRetrievability computes R(t) for a state, falling back to the
// stored placeholder for items with no memory model yet.
func (e *Engine) currentRetrievability(state *domain.MemoryState, elapsedDays float64) float64 {
	if state.State == domain.CardStateNew || state.Stability < domain.MinStability {
		return state.Retrievability
	}
	return e.algo.retrievability(elapsedDays, state.Stability)
}

// stepFor returns the learning-step delay for a first review.
func (e *Engine) stepFor(rating domain.Rating) time.Duration {
	if rating == domain.RatingAgain {
		return e.params.AgainStep
	}
	return e.params.LearningStep
}
