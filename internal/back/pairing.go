package back

import (
	"bytes"
	"sort"

	"github.com/jillest/goladder/internal/rating"
	"github.com/jillest/goladder/internal/util"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// A Pairing is a single game produced by the engine before it is
// persisted.
type Pairing struct {
	White    Player
	Black    Player
	Handicap rating.Handicap
}

// pairPlayers pairs all candidates into balanced games: sorted by
// current rating, neighbors play each other, which minimizes the total
// intra-pair rating gap over all matchings that respect the sorted
// order. The sort ties are broken by name then ID so the same input
// always yields the same games.
//
// Colors: a handicap game puts the weaker player on black. For even
// games the player who had more games as white takes black, ties going
// to the lower ID.
func pairPlayers(
	candidates []Player,
	whiteCounts map[util.UUIDAsBlob]int,
	sys rating.System,
) ([]Pairing, error) {
	if len(candidates)%2 != 0 {
		return nil, OddCountError{Count: len(candidates)}
	}

	players := make([]Player, len(candidates))
	copy(players, candidates)

	collator := collate.New(language.Und)
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].CurrentRating != players[j].CurrentRating {
			return players[i].CurrentRating < players[j].CurrentRating
		}
		if cmp := collator.CompareString(players[i].Name, players[j].Name); cmp != 0 {
			return cmp < 0
		}

		return lowerID(players[i], players[j])
	})

	pairings := make([]Pairing, 0, len(players)/2)
	for i := 0; i < len(players); i += 2 {
		weaker, stronger := players[i], players[i+1]
		handicap := sys.HandicapFor(weaker.CurrentRating, stronger.CurrentRating)

		pairing := Pairing{White: stronger, Black: weaker, Handicap: handicap}
		if handicap == (rating.Handicap{}) {
			pairing.White, pairing.Black = balanceColors(weaker, stronger, whiteCounts)
		}

		pairings = append(pairings, pairing)
	}

	return pairings, nil
}

func balanceColors(a, b Player, whiteCounts map[util.UUIDAsBlob]int) (white, black Player) {
	switch {
	case whiteCounts[a.ID] > whiteCounts[b.ID]:
		return b, a
	case whiteCounts[a.ID] < whiteCounts[b.ID]:
		return a, b
	case lowerID(a, b):
		return b, a
	default:
		return a, b
	}
}

func lowerID(a, b Player) bool {
	aID, bID := a.ID.UUID(), b.ID.UUID()
	return bytes.Compare(aID[:], bID[:]) < 0
}
