package back

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jillest/goladder/internal/rating"
	"github.com/jillest/goladder/internal/util"

	"github.com/jmoiron/sqlx"
)

// GameAction is what the schedule form asks for an existing game.
type GameAction int

const (
	GameActionNone GameAction = iota
	GameActionDelete
	GameActionClearResult
	GameActionSetResult
)

// ParseGameAction maps a form tag to an action, a result tag implying
// GameActionSetResult.
func ParseGameAction(tag string) (GameAction, GameResult, error) {
	switch tag {
	case "", "none":
		return GameActionNone, 0, nil
	case "delete":
		return GameActionDelete, 0, nil
	case "clear":
		return GameActionClearResult, 0, nil
	}

	result, err := ParseGameResult(tag)
	if err != nil {
		return 0, 0, err
	}

	return GameActionSetResult, result, nil
}

type GameEdit struct {
	GameID util.UUIDAsBlob
	Action GameAction
	Result GameResult // only read for GameActionSetResult
}

// A CustomGame is an explicit admin pairing that bypasses the engine:
// colors and handicap are taken as given, the handicap text still has
// to satisfy the codec grammar.
type CustomGame struct {
	WhiteID util.UUIDAsBlob
	BlackID util.UUIDAsBlob

	// Handicap is the textual handicap, empty to derive it from the
	// players' ratings.
	Handicap string

	// Result is a result tag, empty to leave the game pending.
	Result string
}

// A RoundUpdate is one submission of the schedule form: per-game
// actions, an optional custom game, and the players to auto-pair. It
// is applied as a whole or not at all.
type RoundUpdate struct {
	RoundID       util.UUIDAsBlob
	Edits         []GameEdit
	Custom        *CustomGame
	PairPlayerIDs []util.UUIDAsBlob
}

// ScheduleRound validates and applies a round update in one
// transaction, then recomputes every affected rating from the game
// log. It returns the pairings the engine created.
func (b *Back) ScheduleRound(update RoundUpdate) ([]Pairing, error) {
	var created []Pairing

	if err := b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getRoundByID(tx, update.RoundID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return util.ErrPublic("this round does not exist")
			}
			return err
		}

		if err := applyGameEdits(tx, update.RoundID, update.Edits); err != nil {
			return err
		}

		if update.Custom != nil {
			if err := insertCustomGame(tx, update.RoundID, *update.Custom, b.sys); err != nil {
				return err
			}
		}

		var err error
		created, err = autoPair(tx, update.RoundID, update.PairPlayerIDs, b.sys)
		if err != nil {
			return err
		}

		return b.recomputeRatings(tx)
	}); err != nil {
		return nil, err
	}

	return created, nil
}

func applyGameEdits(tx *sqlx.Tx, roundID util.UUIDAsBlob, edits []GameEdit) error {
	if len(edits) == 0 {
		return nil
	}

	games, err := getGamesByRoundID(tx, roundID)
	if err != nil {
		return err
	}
	byID := make(map[util.UUIDAsBlob]*Game, len(games))
	for i := range games {
		byID[games[i].ID] = &games[i]
	}

	for _, edit := range edits {
		game, ok := byID[edit.GameID]
		if !ok {
			return util.ErrPublic(fmt.Sprintf("game %s is not part of this round", edit.GameID))
		}

		switch edit.Action {
		case GameActionNone:
		case GameActionDelete:
			if err := game.delete(tx); err != nil {
				return err
			}
		case GameActionClearResult:
			game.Result = NullGameResult{}
			if err := game.update(tx); err != nil {
				return err
			}
		case GameActionSetResult:
			game.Result = NullGameResult{Result: edit.Result, Valid: true}
			if err := game.update(tx); err != nil {
				return err
			}
		}
	}

	return nil
}

func insertCustomGame(tx *sqlx.Tx, roundID util.UUIDAsBlob, custom CustomGame, sys rating.System) error {
	white, err := getPlayerByID(tx, custom.WhiteID)
	if err != nil {
		return fmt.Errorf("unknown white player: %w", err)
	}
	black, err := getPlayerByID(tx, custom.BlackID)
	if err != nil {
		return fmt.Errorf("unknown black player: %w", err)
	}

	if white.ID == black.ID {
		return SelfPairingError{PlayerName: white.Name}
	}

	handicap := sys.HandicapFor(white.CurrentRating, black.CurrentRating)
	if custom.Handicap != "" {
		if handicap, err = rating.ParseHandicap(custom.Handicap); err != nil {
			return err
		}
	}

	game := NewGame(roundID, white, black, handicap)
	if custom.Result != "" {
		result, err := ParseGameResult(custom.Result)
		if err != nil {
			return err
		}
		game.Result = NullGameResult{Result: result, Valid: true}
	}

	return game.insert(tx)
}

func autoPair(
	tx *sqlx.Tx,
	roundID util.UUIDAsBlob,
	playerIDs []util.UUIDAsBlob,
	sys rating.System,
) ([]Pairing, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	candidates, err := getPlayersByIDs(tx, playerIDs)
	if err != nil {
		return nil, err
	}
	if len(candidates) != len(playerIDs) {
		return nil, util.ErrPublic("an unknown player was selected for pairing")
	}

	// Games deleted earlier in the batch are already gone here, so a
	// player can be unpaired and re-paired in one submission.
	games, err := getGamesByRoundID(tx, roundID)
	if err != nil {
		return nil, err
	}
	paired := make(map[util.UUIDAsBlob]struct{}, len(games)*2)
	for _, v := range games {
		paired[v.WhiteID] = struct{}{}
		paired[v.BlackID] = struct{}{}
	}
	for _, v := range candidates {
		if _, ok := paired[v.ID]; ok {
			return nil, AlreadyPairedError{PlayerName: v.Name}
		}
	}

	whiteCounts, err := getWhiteGameCounts(tx, playerIDs)
	if err != nil {
		return nil, err
	}

	pairings, err := pairPlayers(candidates, whiteCounts, sys)
	if err != nil {
		return nil, err
	}

	for _, v := range pairings {
		game := NewGame(roundID, v.White, v.Black, v.Handicap)
		if err := game.insert(tx); err != nil {
			return nil, err
		}
	}

	return pairings, nil
}

// A ScheduledGame is a game of a round hydrated with both players.
type ScheduledGame struct {
	Game  Game
	White Player
	Black Player
}

// RoundSchedule is everything the schedule page shows for one round.
type RoundSchedule struct {
	Round      Round
	Games      []ScheduledGame
	Candidates []Player
}

func (b *Back) GetRoundSchedule(roundID util.UUIDAsBlob) (RoundSchedule, error) {
	var ret RoundSchedule

	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		ret.Round, err = getRoundByID(tx, roundID)
		if err != nil {
			return err
		}

		games, err := getGamesByRoundID(tx, roundID)
		if err != nil {
			return err
		}

		ids := make([]util.UUIDAsBlob, 0, len(games)*2)
		for _, v := range games {
			ids = append(ids, v.WhiteID, v.BlackID)
		}
		players, err := getPlayersByIDs(tx, ids)
		if err != nil {
			return err
		}
		byID := make(map[util.UUIDAsBlob]Player, len(players))
		for _, v := range players {
			byID[v.ID] = v
		}

		ret.Games = make([]ScheduledGame, 0, len(games))
		for _, v := range games {
			ret.Games = append(ret.Games, ScheduledGame{
				Game:  v,
				White: byID[v.WhiteID],
				Black: byID[v.BlackID],
			})
		}

		ret.Candidates, err = getRoundCandidates(tx, roundID)

		return err
	}); err != nil {
		return RoundSchedule{}, err
	}

	return ret, nil
}
