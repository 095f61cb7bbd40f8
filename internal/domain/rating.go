package domain

import "errors"

// Rating represents the user's self-reported recall quality for a review.
type Rating string

// Possible rating values, ordered from complete failure to effortless recall.
const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// ErrInvalidRating indicates a rating outside the again/hard/good/easy set.
var ErrInvalidRating = errors.New("invalid rating")

// IsValid reports whether r is one of the four defined ratings.
func (r Rating) IsValid() bool {
	switch r {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return true
	default:
		return false
	}
}

// Grade returns the numeric grade used by the scheduling formulas,
// 1 (Again) through 4 (Easy). Returns 0 for invalid ratings.
func (r Rating) Grade() int {
	switch r {
	case RatingAgain:
		return 1
	case RatingHard:
		return 2
	case RatingGood:
		return 3
	case RatingEasy:
		return 4
	default:
		return 0
	}
}

// StudyMode selects how a review submission is applied.
type StudyMode string

const (
	// StudyModeScheduled updates the item's memory state and due date.
	StudyModeScheduled StudyMode = "scheduled"

	// StudyModeCram logs the review but leaves the memory state untouched.
	StudyModeCram StudyMode = "cram"
)

// ErrInvalidStudyMode indicates a study mode outside the scheduled/cram set.
var ErrInvalidStudyMode = errors.New("invalid study mode")

// IsValid reports whether m is a defined study mode.
func (m StudyMode) IsValid() bool {
	return m == StudyModeScheduled || m == StudyModeCram
}
