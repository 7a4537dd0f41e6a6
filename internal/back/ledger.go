package back

import (
	"fmt"
	"log"

	"github.com/jillest/goladder/internal/rating"
	"github.com/jillest/goladder/internal/util"

	"github.com/jmoiron/sqlx"
)

// recomputeRatings derives every player's current rating from scratch:
// each player starts over at their initial rating and the full log of
// decided games is folded over it in (round date, round, game) order.
//
// Deltas only depend on each game's stored attributes and the ratings
// accumulated so far, so inserting, editing or deleting any game and
// recomputing is always exact. There is deliberately no incremental
// path: callers can never feed the ledger a delta.
func (b *Back) recomputeRatings(tx *sqlx.Tx) error {
	var players []struct {
		ID            util.UUIDAsBlob
		InitialRating float64
		CurrentRating float64
	}
	if err := tx.Select(&players, `SELECT ID, InitialRating, CurrentRating FROM Player`); err != nil {
		return err
	}

	ratings := make(map[util.UUIDAsBlob]float64, len(players))
	for _, v := range players {
		ratings[v.ID] = v.InitialRating
	}

	var games []struct {
		WhiteID  util.UUIDAsBlob
		BlackID  util.UUIDAsBlob
		Handicap string
		Result   NullGameResult
	}
	query := `
        SELECT Game.WhiteID, Game.BlackID, Game.Handicap, Game.Result
        FROM Game INNER JOIN Round ON Game.RoundID = Round.ID
        WHERE Game.Result IS NOT NULL
        ORDER BY Round.Date, Round.ID, Game.ID`
	if err := tx.Select(&games, query); err != nil {
		return err
	}

	for _, game := range games {
		whiteScore, blackScore, played := game.Result.Result.scores()
		if !played && b.ignoreForfeits {
			continue
		}

		handicap, err := rating.ParseHandicap(game.Handicap)
		if err != nil {
			return fmt.Errorf("stored handicap is invalid: %w", err)
		}

		white, black := ratings[game.WhiteID], ratings[game.BlackID]
		expected := b.sys.ExpectedScore(white, black, handicap.Stones)

		ratings[game.WhiteID] = b.sys.Clamp(white + b.sys.Delta(expected, whiteScore))
		ratings[game.BlackID] = b.sys.Clamp(black + b.sys.Delta(1.0-expected, blackScore))
	}

	updated := 0
	for _, v := range players {
		if ratings[v.ID] == v.CurrentRating {
			continue
		}

		if _, err := tx.Exec(
			`UPDATE Player SET CurrentRating = ? WHERE ID = ?`,
			ratings[v.ID], v.ID,
		); err != nil {
			return err
		}
		updated++
	}

	if updated > 0 {
		log.Printf("debug: recomputed ratings over %d decided games, %d players changed", len(games), updated)
	}

	return nil
}
