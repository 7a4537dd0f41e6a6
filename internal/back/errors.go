package back

import "fmt"

// The errors below are validation outcomes: they reject the whole
// submitted batch and carry enough detail to report to the user.

// OddCountError rejects an auto-pair request with an odd number of
// candidates.
type OddCountError struct {
	Count int
}

func (e OddCountError) Error() string {
	return fmt.Sprintf("cannot pair an odd number of players (%d)", e.Count)
}

// AlreadyPairedError rejects a candidate who already sits in one of
// the round's games.
type AlreadyPairedError struct {
	PlayerName string
}

func (e AlreadyPairedError) Error() string {
	return fmt.Sprintf("%s already has a game in this round", e.PlayerName)
}

// SelfPairingError rejects a custom game where a player would face
// themselves.
type SelfPairingError struct {
	PlayerName string
}

func (e SelfPairingError) Error() string {
	return fmt.Sprintf("%s cannot play against themselves", e.PlayerName)
}

// UnknownResultError rejects a result tag outside the closed set of
// outcomes.
type UnknownResultError struct {
	Tag string
}

func (e UnknownResultError) Error() string {
	return fmt.Sprintf("unknown game result %q", e.Tag)
}
