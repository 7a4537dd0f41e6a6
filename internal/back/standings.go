package back

import (
	"github.com/jillest/goladder/internal/util"

	"github.com/jmoiron/sqlx"
)

// A OneSidedGame is a decided game seen from one of its players, as
// shown in the standings grid.
type OneSidedGame struct {
	GameID        util.UUIDAsBlob
	White         bool // color of this side
	OpponentPlace int  // 1-based standings place of the opponent
	Handicap      string
	Result        string // "+", "-", "=", with "!" for wins by default
}

// A StandingsRow is one player of the standings table.
type StandingsRow struct {
	Player Player
	Place  int
	Rank   string

	// Score is wins plus half a point per jigo.
	Score  float64
	Played int

	// Results holds one slice per round with decided games.
	Results [][]OneSidedGame
}

// Standings is the full season table plus aggregate counters.
type Standings struct {
	Rounds  []Round
	Players []StandingsRow

	Games     int
	WhiteWins int
	BlackWins int
	Jigo      int
	Forfeits  int
}

func seenFrom(result GameResult, white bool) string {
	switch result {
	case GameResultJigo:
		return "="
	case GameResultBothLose:
		return "-!"
	case GameResultWhiteWins:
		if white {
			return "+"
		}
		return "-"
	case GameResultBlackWins:
		if white {
			return "-"
		}
		return "+"
	case GameResultWhiteWinsByDefault:
		if white {
			return "+!"
		}
		return "-!"
	default: // GameResultBlackWinsByDefault
		if white {
			return "-!"
		}
		return "+!"
	}
}

// GetStandings builds the season standings: players strongest first
// with their rank label, score, and per-round decided games.
func (b *Back) GetStandings() (Standings, error) {
	var ret Standings

	if err := b.transaction(func(tx *sqlx.Tx) error {
		players, err := getPlayers(tx)
		if err != nil {
			return err
		}

		places := make(map[util.UUIDAsBlob]int, len(players))
		ret.Players = make([]StandingsRow, len(players))
		for i, v := range players {
			places[v.ID] = i + 1
			ret.Players[i] = StandingsRow{
				Player: v,
				Place:  i + 1,
				Rank:   b.sys.Rank(v.CurrentRating),
			}
		}

		var games []struct {
			RoundID  util.UUIDAsBlob
			GameID   util.UUIDAsBlob
			WhiteID  util.UUIDAsBlob
			BlackID  util.UUIDAsBlob
			Handicap string
			Result   NullGameResult
		}
		query := `
            SELECT Game.RoundID, Game.ID AS GameID, Game.WhiteID,
                   Game.BlackID, Game.Handicap, Game.Result
            FROM Game INNER JOIN Round ON Game.RoundID = Round.ID
            WHERE Game.Result IS NOT NULL
            ORDER BY Round.Date, Round.ID, Game.ID`
		if err := tx.Select(&games, query); err != nil {
			return err
		}

		var lastRound util.UUIDAsBlob
		roundCount := 0
		for _, game := range games {
			if game.RoundID != lastRound {
				lastRound = game.RoundID
				round, err := getRoundByID(tx, game.RoundID)
				if err != nil {
					return err
				}
				ret.Rounds = append(ret.Rounds, round)
				roundCount++
			}

			result := game.Result.Result
			for _, side := range []struct {
				id    util.UUIDAsBlob
				other util.UUIDAsBlob
				white bool
			}{
				{game.WhiteID, game.BlackID, true},
				{game.BlackID, game.WhiteID, false},
			} {
				row := &ret.Players[places[side.id]-1]
				for len(row.Results) < roundCount {
					row.Results = append(row.Results, nil)
				}

				row.Results[roundCount-1] = append(row.Results[roundCount-1], OneSidedGame{
					GameID:        game.GameID,
					White:         side.white,
					OpponentPlace: places[side.other],
					Handicap:      game.Handicap,
					Result:        seenFrom(result, side.white),
				})

				row.Played++
				switch result {
				case GameResultJigo:
					row.Score += 0.5
				case GameResultWhiteWins, GameResultWhiteWinsByDefault:
					if side.white {
						row.Score++
					}
				case GameResultBlackWins, GameResultBlackWinsByDefault:
					if !side.white {
						row.Score++
					}
				}
			}

			ret.Games++
			switch result {
			case GameResultWhiteWins:
				ret.WhiteWins++
			case GameResultBlackWins:
				ret.BlackWins++
			case GameResultJigo:
				ret.Jigo++
			default:
				ret.Forfeits++
			}
		}

		// Pad every row to the full round count for the template.
		for i := range ret.Players {
			for len(ret.Players[i].Results) < roundCount {
				ret.Players[i].Results = append(ret.Players[i].Results, nil)
			}
		}

		return nil
	}); err != nil {
		return Standings{}, err
	}

	return ret, nil
}
