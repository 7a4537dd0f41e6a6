package back

import (
	"time"

	"github.com/jillest/goladder/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Player is a club member on the ladder. CurrentRating is derived
// from InitialRating and the decided games log, it is never edited by
// hand.
type Player struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Name      string

	InitialRating float64
	CurrentRating float64

	// DefaultSchedule is the presence assumed for rounds the player
	// gave no explicit answer for.
	DefaultSchedule bool
}

func NewPlayer(name string, initialRating float64) Player {
	return Player{
		ID:            util.NewUUIDAsBlob(),
		CreatedAt:     util.TimeAsTimestamp(time.Now()),
		Name:          name,
		InitialRating: initialRating,
		CurrentRating: initialRating,
	}
}

func (p *Player) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Player").SetMap(squirrel.Eq{
		"ID":              p.ID,
		"CreatedAt":       p.CreatedAt,
		"Name":            p.Name,
		"InitialRating":   p.InitialRating,
		"CurrentRating":   p.CurrentRating,
		"DefaultSchedule": p.DefaultSchedule,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (p *Player) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Player").SetMap(squirrel.Eq{
		"Name":            p.Name,
		"DefaultSchedule": p.DefaultSchedule,
	}).Where("Player.ID = ?", p.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getPlayerByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func getPlayerByName(tx *sqlx.Tx, name string) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.Name = ? LIMIT 1`
	if err := tx.Get(&ret, query, name); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func getPlayersByIDs(tx *sqlx.Tx, ids []util.UUIDAsBlob) ([]Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM Player WHERE ID IN(?)`, ids)
	if err != nil {
		return nil, err
	}
	query = tx.Rebind(query)

	players := make([]Player, 0, len(ids))
	if err := tx.Select(&players, query, args...); err != nil {
		return nil, err
	}

	return players, nil
}

func getPlayers(tx *sqlx.Tx) ([]Player, error) {
	var ret []Player
	query := `SELECT * FROM Player ORDER BY Player.CurrentRating DESC, Player.ID`
	if err := tx.Select(&ret, query); err != nil {
		return nil, err
	}

	return ret, nil
}

// CreatePlayer registers a new club member. The initial rating is the
// immutable baseline the ledger folds the game log over.
func (b *Back) CreatePlayer(name string, initialRating float64) (Player, error) {
	if len(name) < 1 || len(name) > 64 {
		return Player{}, util.ErrPublic("a player name must be between 1 and 64 characters")
	}

	player := NewPlayer(name, initialRating)
	if err := b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getPlayerByName(tx, name); err == nil {
			return util.ErrPublic("this name is taken already")
		}

		return player.insert(tx)
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

// SetDefaultSchedule changes the presence assumed when a player gave
// no explicit answer for a round.
func (b *Back) SetDefaultSchedule(id util.UUIDAsBlob, scheduled bool) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByID(tx, id)
		if err != nil {
			return err
		}

		player.DefaultSchedule = scheduled

		return player.update(tx)
	})
}

func (b *Back) GetPlayers() ([]Player, error) {
	var ret []Player

	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		ret, err = getPlayers(tx)
		return err
	}); err != nil {
		return nil, err
	}

	return ret, nil
}
