package back

import (
	"encoding/json"
	"time"

	"github.com/jillest/goladder/internal/util"

	"github.com/Masterminds/squirrel"
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// A Round is one evening of play. Rounds are ordered by date, ties
// broken by ID.
type Round struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Date      util.DateAsString

	// Extra is a free-form JSON document (see RoundExtra) edited
	// through merge patches.
	Extra null.String
}

// RoundExtra is the structured part of the free-form extension data.
type RoundExtra struct {
	Description string `json:"description,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
}

func NewRound(date util.DateAsString) Round {
	return Round{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		Date:      date,
	}
}

// ParseExtra decodes the structured extension data, silently returning
// the zero value for absent or garbled documents.
func (r Round) ParseExtra() RoundExtra {
	var ret RoundExtra
	if !r.Extra.Valid {
		return ret
	}

	_ = json.Unmarshal([]byte(r.Extra.String), &ret)

	return ret
}

// PatchExtra applies a JSON merge patch to the extension data.
func (r *Round) PatchExtra(patch []byte) error {
	original := []byte(`{}`)
	if r.Extra.Valid {
		original = []byte(r.Extra.String)
	}

	merged, err := jsonpatch.MergePatch(original, patch)
	if err != nil {
		return err
	}

	r.Extra = null.StringFrom(string(merged))

	return nil
}

func (r *Round) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Round").SetMap(squirrel.Eq{
		"ID":        r.ID,
		"CreatedAt": r.CreatedAt,
		"Date":      r.Date,
		"Extra":     r.Extra,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (r *Round) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Round").SetMap(squirrel.Eq{
		"Date":  r.Date,
		"Extra": r.Extra,
	}).Where("Round.ID = ?", r.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getRoundByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Round, error) {
	var ret Round
	query := `SELECT * FROM Round WHERE Round.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Round{}, err
	}

	return ret, nil
}

func getRounds(tx *sqlx.Tx) ([]Round, error) {
	var ret []Round
	query := `SELECT * FROM Round ORDER BY Round.Date, Round.ID`
	if err := tx.Select(&ret, query); err != nil {
		return nil, err
	}

	return ret, nil
}

func getRoundsFromDate(tx *sqlx.Tx, from util.DateAsString) ([]Round, error) {
	var ret []Round
	query := `SELECT * FROM Round WHERE Round.Date >= ? ORDER BY Round.Date, Round.ID`
	if err := tx.Select(&ret, query, from); err != nil {
		return nil, err
	}

	return ret, nil
}

// CreateRound adds a round at the given "YYYY-MM-DD" date.
func (b *Back) CreateRound(date string) (Round, error) {
	parsed, err := util.ParseDateAsString(date)
	if err != nil {
		return Round{}, util.ErrPublic("the round date must look like 2019-10-06")
	}

	round := NewRound(parsed)
	if err := b.transaction(round.insert); err != nil {
		return Round{}, err
	}

	return round, nil
}

// NextRoundDate suggests a date for a new round: one week after the
// last planned round, or today for an empty calendar.
func (b *Back) NextRoundDate() (string, error) {
	var last string

	if err := b.transaction(func(tx *sqlx.Tx) error {
		return tx.Get(&last, `SELECT COALESCE(MAX(Round.Date), '') FROM Round`)
	}); err != nil {
		return "", err
	}

	if last == "" {
		return util.NewDateAsString(time.Now()).String(), nil
	}

	date, err := util.ParseDateAsString(last)
	if err != nil {
		return "", err
	}

	return util.NewDateAsString(date.Time().AddDate(0, 0, 7)).String(), nil
}

func (b *Back) GetRounds() ([]Round, error) {
	var ret []Round

	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		ret, err = getRounds(tx)
		return err
	}); err != nil {
		return nil, err
	}

	return ret, nil
}

// PatchRoundExtra applies a JSON merge patch to a round's free-form
// extension data.
func (b *Back) PatchRoundExtra(id util.UUIDAsBlob, patch []byte) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		round, err := getRoundByID(tx, id)
		if err != nil {
			return err
		}

		if err := round.PatchExtra(patch); err != nil {
			return util.ErrPublic("the round extra patch is not valid JSON")
		}

		return round.update(tx)
	})
}
