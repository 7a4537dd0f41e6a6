// Package back implements the ladder itself: players, rounds,
// presence, games, the pairing engine, and the rating ledger.
package back

import (
	"fmt"
	"log"

	"github.com/jillest/goladder/internal/rating"
	"github.com/jmoiron/sqlx"
)

type Back struct {
	db  *sqlx.DB
	sys rating.System

	// ignoreForfeits excludes wins by default and double losses from
	// the rating ledger instead of rating them as plain wins/losses.
	ignoreForfeits bool
}

func New(sqlDriver string, sqlDSN string, sys rating.System) (*Back, error) {
	// Why even bother converting names? A single greppable string across all
	// your source code is better than any odd conversion scheme you could ever
	// come up with.
	// HACK: This is global but putting this in init() makes test ugly.
	// As only the Back relies on the DB, this seems like an okay-ish place.
	sqlx.NameMapper = func(v string) string { return v }

	db, err := sqlx.Connect(sqlDriver, sqlDSN)
	if err != nil {
		return nil, err
	}

	return &Back{
		db:  db,
		sys: sys,
	}, nil
}

// SetIgnoreForfeits switches the ledger policy for wins by default and
// double losses.
func (b *Back) SetIgnoreForfeits(ignore bool) {
	b.ignoreForfeits = ignore
}

// RatingSystem returns the scale the ladder is running on.
func (b *Back) RatingSystem() rating.System {
	return b.sys
}

type transactionCallback func(*sqlx.Tx) error

func (b *Back) transaction(cb transactionCallback) error {
	tx, err := b.db.Beginx()
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		if err2 := tx.Rollback(); err2 != nil {
			return fmt.Errorf("rollback error: %s\noriginal error: %s", err2, err)
		}

		return err
	}

	return tx.Commit()
}

// Rerate recomputes every player's current rating from the full game
// log, exactly as done after every round mutation.
func (b *Back) Rerate() error {
	log.Print("info: recomputing all ratings from the game log")

	return b.transaction(func(tx *sqlx.Tx) error {
		return b.recomputeRatings(tx)
	})
}
