package rating

import (
	"math"
	"testing"
)

func TestExpectedScoreEvenGame(t *testing.T) {
	s := NewSystem()

	if got := s.ExpectedScore(1500.0, 1500.0, 0); got != 0.5 {
		t.Errorf("expected 0.5 for an even game, got %v", got)
	}
}

func TestExpectedScoreFavorsStronger(t *testing.T) {
	s := NewSystem()

	e := s.ExpectedScore(1700.0, 1500.0, 0)
	if e <= 0.5 || e >= 1.0 {
		t.Errorf("expected the stronger white to score above 0.5, got %v", e)
	}

	// Both sides must add up to a full point.
	other := s.ExpectedScore(1500.0, 1700.0, 0)
	if math.Abs(e+other-1.0) > 1e-9 {
		t.Errorf("expectations do not sum to 1: %v + %v", e, other)
	}
}

func TestExpectedScoreHandicapShrinksGap(t *testing.T) {
	s := NewSystem()

	// Two stones compensate exactly 200 points of difference.
	if got := s.ExpectedScore(1700.0, 1500.0, 2); got != 0.5 {
		t.Errorf("expected 0.5 with full compensation, got %v", got)
	}

	with := s.ExpectedScore(1900.0, 1500.0, 2)
	without := s.ExpectedScore(1900.0, 1500.0, 0)
	if with >= without {
		t.Errorf("handicap should lower white's expectation: %v >= %v", with, without)
	}
}

func TestDeltaZeroSum(t *testing.T) {
	s := NewSystem()

	e := s.ExpectedScore(1600.0, 1400.0, 0)
	white := s.Delta(e, 1.0)
	black := s.Delta(1.0-e, 0.0)
	if math.Abs(white+black) > 1e-9 {
		t.Errorf("deltas are not zero-sum: %v + %v", white, black)
	}
	if white <= 0 {
		t.Errorf("winner should gain points, got %v", white)
	}
}

func TestClamp(t *testing.T) {
	s := NewSystem()

	if got := s.Clamp(s.MinRating - 500.0); got != s.MinRating {
		t.Errorf("expected the floor, got %v", got)
	}
	if got := s.Clamp(1500.0); got != 1500.0 {
		t.Errorf("expected 1500 untouched, got %v", got)
	}
}
