package back

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/jillest/goladder/internal/rating"
	"github.com/jillest/goladder/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

const DefaultBoardSize = 19

// GameResult is the closed set of outcomes a decided game can have.
type GameResult int

const ( // the names below are stored in DB, don't change them
	GameResultWhiteWins GameResult = iota
	GameResultBlackWins
	GameResultJigo
	GameResultWhiteWinsByDefault
	GameResultBlackWinsByDefault
	GameResultBothLose
)

var gameResultNames = map[GameResult]string{
	GameResultWhiteWins:          "WhiteWins",
	GameResultBlackWins:          "BlackWins",
	GameResultJigo:               "Jigo",
	GameResultWhiteWinsByDefault: "WhiteWinsByDefault",
	GameResultBlackWinsByDefault: "BlackWinsByDefault",
	GameResultBothLose:           "BothLose",
}

func (r GameResult) String() string {
	return gameResultNames[r]
}

// ParseGameResult maps a result tag back to its variant and rejects
// anything outside the closed set.
func ParseGameResult(tag string) (GameResult, error) {
	for result, name := range gameResultNames {
		if name == tag {
			return result, nil
		}
	}

	return 0, UnknownResultError{Tag: tag}
}

// scores returns the game points seen from white and black, and
// whether the outcome was an actual played result rather than a
// forfeit-type one.
func (r GameResult) scores() (white, black float64, played bool) {
	switch r {
	case GameResultWhiteWins:
		return 1, 0, true
	case GameResultBlackWins:
		return 0, 1, true
	case GameResultJigo:
		return 0.5, 0.5, true
	case GameResultWhiteWinsByDefault:
		return 1, 0, false
	case GameResultBlackWinsByDefault:
		return 0, 1, false
	default: // GameResultBothLose
		return 0, 0, false
	}
}

// NullGameResult is a nullable GameResult stored as the variant name,
// NULL meaning the game is still pending.
type NullGameResult struct {
	Result GameResult
	Valid  bool
}

func (r NullGameResult) Value() (driver.Value, error) {
	if !r.Valid {
		return nil, nil
	}

	return driver.Value(r.Result.String()), nil
}

func (r *NullGameResult) Scan(src interface{}) error {
	if src == nil {
		*r = NullGameResult{}
		return nil
	}

	var tag string
	switch src := src.(type) {
	case []byte:
		tag = string(src)
	case string:
		tag = src
	default:
		return fmt.Errorf("expected []byte or string, got %T", src)
	}

	result, err := ParseGameResult(tag)
	if err != nil {
		return err
	}

	*r = NullGameResult{Result: result, Valid: true}

	return nil
}

// A Game is a single board between two players of a round. A game with
// no result is pending; setting the result decides it, clearing the
// result or deleting the game reverses it.
type Game struct {
	ID        util.UUIDAsBlob
	RoundID   util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp

	WhiteID util.UUIDAsBlob
	BlackID util.UUIDAsBlob

	// Handicap is the canonical text of the handicap codec.
	Handicap  string
	BoardSize int
	Result    NullGameResult
	Extra     null.String
}

func NewGame(roundID util.UUIDAsBlob, white, black Player, handicap rating.Handicap) Game {
	return Game{
		ID:        util.NewUUIDAsBlob(),
		RoundID:   roundID,
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		WhiteID:   white.ID,
		BlackID:   black.ID,
		Handicap:  handicap.String(),
		BoardSize: DefaultBoardSize,
	}
}

// FormatResult renders a game result the way the round tables show it,
// "?-?" for a pending game, a "!" marking wins by default.
func (g Game) FormatResult() string {
	if !g.Result.Valid {
		return "?-?"
	}

	switch g.Result.Result {
	case GameResultWhiteWins:
		return "1-0"
	case GameResultBlackWins:
		return "0-1"
	case GameResultJigo:
		return "½-½"
	case GameResultWhiteWinsByDefault:
		return "1-0!"
	case GameResultBlackWinsByDefault:
		return "0-1!"
	default: // GameResultBothLose
		return "0-0"
	}
}

func (g *Game) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Game").SetMap(squirrel.Eq{
		"ID":        g.ID,
		"RoundID":   g.RoundID,
		"CreatedAt": g.CreatedAt,
		"WhiteID":   g.WhiteID,
		"BlackID":   g.BlackID,
		"Handicap":  g.Handicap,
		"BoardSize": g.BoardSize,
		"Result":    g.Result,
		"Extra":     g.Extra,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (g *Game) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Game").SetMap(squirrel.Eq{
		"Handicap":  g.Handicap,
		"BoardSize": g.BoardSize,
		"Result":    g.Result,
		"Extra":     g.Extra,
	}).Where("Game.ID = ?", g.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (g *Game) delete(tx *sqlx.Tx) error {
	if _, err := tx.Exec(`DELETE FROM Game WHERE Game.ID = ?`, g.ID); err != nil {
		return err
	}

	return nil
}

func getGamesByRoundID(tx *sqlx.Tx, roundID util.UUIDAsBlob) ([]Game, error) {
	var ret []Game
	query := `SELECT * FROM Game WHERE Game.RoundID = ? ORDER BY Game.ID`
	if err := tx.Select(&ret, query, roundID); err != nil {
		return nil, err
	}

	return ret, nil
}

// getWhiteGameCounts returns how many games each given player has
// played as white over the whole ladder, used to balance colors.
func getWhiteGameCounts(tx *sqlx.Tx, ids []util.UUIDAsBlob) (map[util.UUIDAsBlob]int, error) {
	ret := make(map[util.UUIDAsBlob]int, len(ids))
	if len(ids) == 0 {
		return ret, nil
	}

	query, args, err := sqlx.In(
		`SELECT Game.WhiteID AS ID, COUNT(*) AS Count FROM Game
         WHERE Game.WhiteID IN(?) GROUP BY Game.WhiteID`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	query = tx.Rebind(query)

	var rows []struct {
		ID    util.UUIDAsBlob
		Count int
	}
	if err := tx.Select(&rows, query, args...); err != nil {
		return nil, err
	}

	for _, v := range rows {
		ret[v.ID] = v.Count
	}

	return ret, nil
}
