package srs

import (
	"fmt"
	"time"
)

// DefaultWeights is the published FSRS v6 default weight vector. Hosts that
// have run weight optimization against their own review logs supply their
// tuned vector through Params instead.
var DefaultWeights = [21]float64{
	0.212, 1.2931, 2.3065, 8.2956, // w[0..3]  initial stability per rating
	6.4133, 0.8334, 3.0194, 0.001, // w[4..7]  difficulty
	1.8722, 0.1666, 0.796, 1.4835, // w[8..11] recall stability
	0.0614, 0.2629, 1.6483, 0.6014, // w[12..15] forget stability
	1.8729, 0.5425, 0.0912, 0.0658, // w[16..19] easy bonus / short-term
	0.1542, // w[20] decay exponent
}

// weightLowerBounds and weightUpperBounds define the valid range for each
// weight. Vectors outside these bounds are rejected rather than clamped.
var weightLowerBounds = [21]float64{
	0.001, 0.001, 0.001, 0.001,
	1.0, 0.001, 0.001, 0.001,
	0.0, 0.0, 0.001, 0.001,
	0.001, 0.001, 0.0, 0.0,
	1.0, 0.0, 0.0, 0.0,
	0.1,
}

var weightUpperBounds = [21]float64{
	100.0, 100.0, 100.0, 100.0,
	10.0, 4.0, 4.0, 0.75,
	4.5, 0.8, 3.5, 5.0,
	0.25, 0.9, 4.0, 1.0,
	6.0, 2.0, 2.0, 0.8,
	0.8,
}

// Params defines all configurable parameters for the scheduling engine.
// The engine itself hardcodes nothing: weights, target retention and interval
// caps all arrive here, owned and passed explicitly by the caller.
type Params struct {
	// Weights is the 21-element algorithm weight table.
	Weights [21]float64

	// DesiredRetention is the recall probability the scheduler targets when
	// solving for the next interval, in (0, 1].
	DesiredRetention float64

	// MaximumInterval caps the scheduled interval in days.
	MaximumInterval int

	// GraduationThreshold is the stability, in days, an item must reach on a
	// non-Again answer before it leaves the Learning or Relearning stage.
	GraduationThreshold float64

	// LearningStep is the delay before the next review while an item remains
	// in a learning stage, and the delay applied when a Review item lapses
	// into Relearning.
	LearningStep time.Duration

	// AgainStep is the shorter delay applied after an Again answer inside a
	// learning stage.
	AgainStep time.Duration
}

// DefaultParams returns the engine parameters used when the host supplies
// no overrides: FSRS v6 default weights, 90% target retention, a 100-year
// interval cap, and Anki-style learning steps.
func DefaultParams() *Params {
	return &Params{
		Weights:             DefaultWeights,
		DesiredRetention:    0.9,
		MaximumInterval:     36500,
		GraduationThreshold: 1.0,
		LearningStep:        10 * time.Minute,
		AgainStep:           time.Minute,
	}
}

// Validate checks every parameter against its valid domain.
func (p *Params) Validate() error {
	for i := range p.Weights {
		if p.Weights[i] < weightLowerBounds[i] || p.Weights[i] > weightUpperBounds[i] {
			return fmt.Errorf("%w: w[%d] = %v, bounds [%v, %v]",
				ErrInvalidParams, i, p.Weights[i], weightLowerBounds[i], weightUpperBounds[i])
		}
	}

	if p.DesiredRetention <= 0 || p.DesiredRetention > 1 {
		return fmt.Errorf("%w: desired retention %v out of range (0, 1]",
			ErrInvalidParams, p.DesiredRetention)
	}

	if p.MaximumInterval < 1 {
		return fmt.Errorf("%w: maximum interval %d must be at least 1 day",
			ErrInvalidParams, p.MaximumInterval)
	}

	if p.GraduationThreshold <= 0 {
		return fmt.Errorf("%w: graduation threshold %v must be positive",
			ErrInvalidParams, p.GraduationThreshold)
	}

	if p.LearningStep <= 0 || p.AgainStep <= 0 {
		return fmt.Errorf("%w: learning steps must be positive durations",
			ErrInvalidParams)
	}

	return nil
}
