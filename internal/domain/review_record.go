package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for ReviewRecord
var (
	ErrEmptyRecordID     = errors.New("review record ID cannot be empty")
	ErrEmptyRecordItemID = errors.New("review record item ID cannot be empty")
	ErrZeroReviewTime    = errors.New("review record time cannot be zero")
)

// ReviewRecord is an immutable log entry for a single review submission.
// Exactly one record is appended per successful submission, in both study
// modes. The full before/after snapshot makes the log sufficient input for
// future algorithm weight re-tuning without replaying the engine.
type ReviewRecord struct {
	ID     uuid.UUID `json:"id"`
	ItemID uuid.UUID `json:"item_id"`
	Rating Rating    `json:"rating"`
	Mode   StudyMode `json:"mode"`

	ReviewedAt    time.Time `json:"reviewed_at"`
	ElapsedDays   float64   `json:"elapsed_days"`   // calendar days since last review
	ScheduledDays int       `json:"scheduled_days"` // interval scheduled by this review, 0 for sub-day steps

	StabilityBefore      float64   `json:"stability_before"`
	StabilityAfter       float64   `json:"stability_after"`
	DifficultyBefore     float64   `json:"difficulty_before"`
	DifficultyAfter      float64   `json:"difficulty_after"`
	RetrievabilityBefore float64   `json:"retrievability_before"`
	RetrievabilityAfter  float64   `json:"retrievability_after"`
	StateBefore          CardState `json:"state_before"`
	StateAfter           CardState `json:"state_after"`

	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the ReviewRecord has valid data.
func (r *ReviewRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyRecordID
	}

	if r.ItemID == uuid.Nil {
		return ErrEmptyRecordItemID
	}

	if !r.Rating.IsValid() {
		return ErrInvalidRating
	}

	if !r.Mode.IsValid() {
		return ErrInvalidStudyMode
	}

	if r.ReviewedAt.IsZero() {
		return ErrZeroReviewTime
	}

	if !r.StateBefore.IsValid() || !r.StateAfter.IsValid() {
		return ErrInvalidCardState
	}

	return nil
}

// QueueEntry is a lightweight item reference returned by the due-item query.
type QueueEntry struct {
	ItemID    uuid.UUID `json:"item_id"`
	Due       time.Time `json:"due"`
	Stability float64   `json:"stability"`
	State     CardState `json:"state"`
}
