// Package rating implements the numeric scale of the ladder: the
// rank/rating codec, the handicap codec, and the per-game rating
// adjustment used by the ledger.
//
// Everything is driven by an explicit System value so callers (and
// tests) can swap the tuning constants without touching globals.
package rating

import "math"

// System carries the tuning constants of the ladder scale.
type System struct {
	// Step is the number of rating points per rank (handicap stone).
	Step float64

	// DanThreshold is the rating at which 1 kyu turns into 1 dan.
	DanThreshold float64

	MaxKyu int
	MaxDan int

	// K scales the per-game rating adjustment.
	K float64

	// Spread is the logistic divisor for the expected score.
	Spread float64

	// MinRating is the floor a rating can never drop below.
	MinRating float64

	// MaxStones caps the handicap derived from a rating difference.
	MaxStones int

	// EvenThreshold is the rating difference below which a game is
	// played even, with standard komi.
	EvenThreshold float64
}

func NewSystem() System {
	return System{
		Step:          100.0,
		DanThreshold:  2050.0,
		MaxKyu:        30,
		MaxDan:        9,
		K:             32.0,
		Spread:        400.0,
		MinRating:     -900.0,
		MaxStones:     9,
		EvenThreshold: 50.0,
	}
}

// ExpectedScore returns the probability of white winning a game given
// both pre-game ratings and the handicap stones granted to black.
// Each stone shrinks the effective rating gap by one Step.
func (s System) ExpectedScore(white, black float64, stones int) float64 {
	diff := black + float64(stones)*s.Step - white
	return 1.0 / (1.0 + math.Pow(10, diff/s.Spread))
}

// Delta returns the rating change for a single game, actual being 1,
// 0.5 or 0 seen from the same side as expected.
func (s System) Delta(expected, actual float64) float64 {
	return s.K * (actual - expected)
}

// Clamp bounds a rating to the bottom of the scale.
func (s System) Clamp(r float64) float64 {
	return math.Max(r, s.MinRating)
}
