package srs

import (
	"math"

	"github.com/lexvault/srs-api/internal/domain"
)

// algorithm holds the weight table plus constants precomputed from it.
// All methods are pure functions of their arguments.
type algorithm struct {
	w      [21]float64
	decay  float64 // -w[20]
	factor float64 // 0.9^(1/decay) - 1, so R(S, S) = 0.9 by construction
}

func newAlgorithm(w [21]float64) algorithm {
	decay := -w[20]
	return algorithm{
		w:      w,
		decay:  decay,
		factor: math.Pow(0.9, 1.0/decay) - 1.0,
	}
}

// retrievability computes R(t, S) = (1 + factor * t / S) ^ decay, the
// probability of successful recall t days after the last review of an item
// with stability S. Stability is floored to keep the division defined.
func (a *algorithm) retrievability(elapsedDays, stability float64) float64 {
	s := math.Max(stability, domain.MinStability)
	r := math.Pow(1+a.factor*elapsedDays/s, a.decay)
	return math.Min(math.Max(r, 0), 1)
}

// initialStability returns S₀ for the first review of an item, indexed by
// the rating grade.
func (a *algorithm) initialStability(rating domain.Rating) float64 {
	return clampStability(a.w[rating.Grade()-1])
}

// initialDifficulty returns D₀(G) = w[4] - e^(w[5]·(G-1)) + 1, clamped to
// the valid difficulty range.
func (a *algorithm) initialDifficulty(rating domain.Rating) float64 {
	return clampDifficulty(a.rawInitialDifficulty(rating))
}

// rawInitialDifficulty is the unclamped D₀, used as the mean-reversion
// target inside nextDifficulty.
func (a *algorithm) rawInitialDifficulty(rating domain.Rating) float64 {
	return a.w[4] - math.Exp(a.w[5]*float64(rating.Grade()-1)) + 1
}

// nextInterval solves R(t, S) = desiredRetention for t and rounds to whole
// days, clamped to [1, maxInterval].
func (a *algorithm) nextInterval(stability, desiredRetention float64, maxInterval int) int {
	ivl := stability / a.factor * (math.Pow(desiredRetention, 1.0/a.decay) - 1)
	days := int(math.Round(ivl))
	if days < 1 {
		days = 1
	}
	if days > maxInterval {
		days = maxInterval
	}
	return days
}

// nextDifficulty updates difficulty after a review:
// a linear-damped delta ΔD = -w[6]·(G-3) followed by mean reversion toward
// the initial difficulty of an Easy answer. Good (G=3) is the expected
// rating and leaves the delta at zero.
func (a *algorithm) nextDifficulty(difficulty float64, rating domain.Rating) float64 {
	deltaD := -a.w[6] * (float64(rating.Grade()) - 3)
	damped := difficulty + (10-difficulty)*deltaD/9
	reverted := a.w[7]*a.rawInitialDifficulty(domain.RatingEasy) + (1-a.w[7])*damped
	return clampDifficulty(reverted)
}

// nextStability computes post-review stability from difficulty, prior
// stability and the retrievability at review time. Again answers use the
// forget branch; everything else uses the recall branch.
func (a *algorithm) nextStability(difficulty, stability, retrievability float64, rating domain.Rating) float64 {
	if rating == domain.RatingAgain {
		return clampStability(a.forgetStability(difficulty, stability, retrievability))
	}
	return clampStability(a.recallStability(difficulty, stability, retrievability, rating))
}

// recallStability grows stability after a successful recall:
// S' = S · (1 + e^w[8] · (11-D) · S^(-w[9]) · (e^((1-R)·w[10]) - 1) · penalty · bonus)
// Hard answers are damped by w[15] < 1; Easy answers are boosted by w[16] > 1.
// The growth multiplier is always >= 1, so successful recall never shrinks
// stability.
func (a *algorithm) recallStability(d, s, r float64, rating domain.Rating) float64 {
	hardPenalty := 1.0
	if rating == domain.RatingHard {
		hardPenalty = a.w[15]
	}
	easyBonus := 1.0
	if rating == domain.RatingEasy {
		easyBonus = a.w[16]
	}
	return s * (1 + math.Exp(a.w[8])*
		(11-d)*
		math.Pow(s, -a.w[9])*
		(math.Exp((1-r)*a.w[10])-1)*
		hardPenalty*easyBonus)
}

// forgetStability shrinks stability after a lapse:
// S' = min(w[11] · D^(-w[12]) · ((S+1)^w[13] - 1) · e^((1-R)·w[14]),  S / e^(w[17]·w[18]))
// The second operand is strictly below S, so a lapse always loses stability.
func (a *algorithm) forgetStability(d, s, r float64) float64 {
	long := a.w[11] *
		math.Pow(d, -a.w[12]) *
		(math.Pow(s+1, a.w[13]) - 1) *
		math.Exp((1-r)*a.w[14])
	short := s / math.Exp(a.w[17]*a.w[18])
	return math.Min(long, short)
}

// shortTermStability handles same-day reviews, where no meaningful forgetting
// has happened yet: S' = S · e^(w[17]·(G-3+w[18])) · S^(-w[19]), with the
// multiplier floored at 1 for Good and Easy answers.
func (a *algorithm) shortTermStability(stability float64, rating domain.Rating) float64 {
	s := math.Max(stability, domain.MinStability)
	inc := math.Exp(a.w[17]*(float64(rating.Grade())-3+a.w[18])) * math.Pow(s, -a.w[19])
	if rating == domain.RatingGood || rating == domain.RatingEasy {
		inc = math.Max(inc, 1.0)
	}
	return clampStability(s * inc)
}

func clampStability(s float64) float64 {
	return math.Max(s, domain.MinStability)
}

func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, domain.MinDifficulty), domain.MaxDifficulty)
}
