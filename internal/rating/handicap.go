package rating

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Komi is the closed set of compensation variants a game can be played
// with. The textual forms are the ones used on schedule forms and in
// the database.
type Komi int

const (
	KomiStandard  Komi = iota // even game, 6½ points to white ("w6½")
	KomiNone                  // no compensation for either side ("b0")
	KomiBlackFive             // five points to black ("b5")
)

// Handicap is a number of placement stones plus a komi variant. The
// zero value is an even game with standard komi.
type Handicap struct {
	Stones int
	Komi   Komi
}

// ParseError is returned for text that does not match the handicap
// grammar. Nothing is ever partially accepted.
type ParseError struct {
	Text string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("invalid handicap %q", e.Text)
}

// String renders the canonical text for a handicap.
func (h Handicap) String() string {
	switch h.Komi {
	case KomiStandard:
		return "0w6½"
	case KomiBlackFive:
		return strconv.Itoa(h.Stones) + "b5"
	default:
		return strconv.Itoa(h.Stones) + "b0"
	}
}

// rankGap is the rank difference a handicap compensates for, the
// numeric form the plain-number grammar encodes.
func (h Handicap) rankGap() float64 {
	switch {
	case h.Komi == KomiStandard:
		return 0
	case h.Stones == 0 && h.Komi == KomiNone:
		return 1
	case h.Stones == 0: // KomiBlackFive
		return 1.5
	case h.Komi == KomiBlackFive:
		return float64(h.Stones) + 0.5
	default:
		return float64(h.Stones)
	}
}

// handicapForGap is the inverse of rankGap.
func handicapForGap(gap float64) Handicap {
	switch {
	case gap <= 0:
		return Handicap{}
	case gap < 1:
		return Handicap{Stones: 0, Komi: KomiBlackFive}
	case gap == 1:
		return Handicap{Stones: 0, Komi: KomiNone}
	case gap == 1.5:
		return Handicap{Stones: 0, Komi: KomiBlackFive}
	}

	stones := int(math.Floor(gap))
	if gap > float64(stones) {
		return Handicap{Stones: stones, Komi: KomiBlackFive}
	}

	return Handicap{Stones: stones, Komi: KomiNone}
}

// ParseHandicap parses the textual handicap grammar:
//
//	handicap := integer
//	          | integer "." "5"
//	          | "0w6" ("½" | ".5")
//	          | "0" ("w0" | "b0" | "b5")
//	          | digit29 ("w0" | "b0" | "b5")
//	          | multidigit ("w0" | "b0" | "b5")
func ParseHandicap(text string) (Handicap, error) {
	if text == "0w6½" || text == "0w6.5" {
		return Handicap{}, nil
	}

	if komi, ok := suffixKomi(text); ok {
		stones, err := parseStones(text[:len(text)-2])
		if err != nil {
			return Handicap{}, ParseError{Text: text}
		}

		return Handicap{Stones: stones, Komi: komi}, nil
	}

	gap, err := parseRankGap(text)
	if err != nil {
		return Handicap{}, ParseError{Text: text}
	}

	return handicapForGap(gap), nil
}

func suffixKomi(text string) (Komi, bool) {
	switch {
	case strings.HasSuffix(text, "w0"), strings.HasSuffix(text, "b0"):
		return KomiNone, true
	case strings.HasSuffix(text, "b5"):
		return KomiBlackFive, true
	}

	return 0, false
}

// parseStones accepts the stone counts the suffixed grammar allows:
// zero, or anything from two upwards. A single stone does not exist,
// that gap is expressed as "0b0"/"0b5".
func parseStones(str string) (int, error) {
	n, err := strconv.Atoi(str)
	if err != nil || n < 0 || n == 1 {
		return 0, fmt.Errorf("invalid stone count %q", str)
	}

	return n, nil
}

// parseRankGap accepts a plain non-negative integer with an optional
// ".5" half-rank.
func parseRankGap(text string) (float64, error) {
	half := false
	if strings.HasSuffix(text, ".5") {
		half = true
		text = strings.TrimSuffix(text, ".5")
	}

	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid rank gap %q", text)
	}

	gap := float64(n)
	if half {
		gap += 0.5
	}

	return gap, nil
}

// HandicapFor derives the handicap for a game between two ratings. The
// weaker side takes black and receives the stones.
func (s System) HandicapFor(a, b float64) Handicap {
	diff := math.Abs(a - b)
	if diff < s.EvenThreshold {
		return Handicap{}
	}

	gap := math.Round((0.5+diff/s.Step)*2.0) / 2.0
	h := handicapForGap(gap)
	if h.Stones > s.MaxStones {
		h.Stones = s.MaxStones
	}

	return h
}
