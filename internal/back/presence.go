package back

import (
	"time"

	"github.com/jillest/goladder/internal/util"

	"github.com/jmoiron/sqlx"
)

// A Presence is a (player, round) fact recording whether the player
// intends to attend. Absent rows fall back to the player's
// DefaultSchedule. Presence never implies a game exists.
type Presence struct {
	PlayerID  util.UUIDAsBlob
	RoundID   util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Scheduled bool
}

func (p *Presence) upsert(tx *sqlx.Tx) error {
	query := `
        INSERT INTO Presence (PlayerID, RoundID, CreatedAt, Scheduled)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (PlayerID, RoundID) DO UPDATE SET Scheduled = excluded.Scheduled`

	if _, err := tx.Exec(query, p.PlayerID, p.RoundID, p.CreatedAt, p.Scheduled); err != nil {
		return err
	}

	return nil
}

// SetPresence records whether a player plans to attend a round.
func (b *Back) SetPresence(playerID, roundID util.UUIDAsBlob, scheduled bool) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getPlayerByID(tx, playerID); err != nil {
			return err
		}
		if _, err := getRoundByID(tx, roundID); err != nil {
			return err
		}

		presence := Presence{
			PlayerID:  playerID,
			RoundID:   roundID,
			CreatedAt: util.TimeAsTimestamp(time.Now()),
			Scheduled: scheduled,
		}

		return presence.upsert(tx)
	})
}

// getRoundCandidates returns the players expected at a round who do
// not sit in any of its games yet, strongest first.
func getRoundCandidates(tx *sqlx.Tx, roundID util.UUIDAsBlob) ([]Player, error) {
	var ret []Player
	query := `
        SELECT Player.* FROM Player
        LEFT OUTER JOIN Presence
            ON Presence.PlayerID = Player.ID AND Presence.RoundID = ?
        WHERE COALESCE(Presence.Scheduled, Player.DefaultSchedule)
            AND Player.ID NOT IN (
                SELECT Game.WhiteID FROM Game WHERE Game.RoundID = ?
                UNION SELECT Game.BlackID FROM Game WHERE Game.RoundID = ?
            )
        ORDER BY Player.CurrentRating DESC, Player.ID`

	if err := tx.Select(&ret, query, roundID, roundID, roundID); err != nil {
		return nil, err
	}

	return ret, nil
}

// PresenceOverview is the players × future rounds attendance grid.
type PresenceOverview struct {
	Rounds  []Round
	Players []PresenceRow
}

type PresenceRow struct {
	Player Player

	// Presences has one entry per round of the overview, nil when the
	// player gave no answer and the default applies.
	Presences []*bool
}

// GetPresenceOverview builds the attendance grid for rounds at or
// after the given date.
func (b *Back) GetPresenceOverview(from string) (PresenceOverview, error) {
	date, err := util.ParseDateAsString(from)
	if err != nil {
		return PresenceOverview{}, err
	}

	var ret PresenceOverview
	if err := b.transaction(func(tx *sqlx.Tx) error {
		rounds, err := getRoundsFromDate(tx, date)
		if err != nil {
			return err
		}

		players, err := getPlayers(tx)
		if err != nil {
			return err
		}

		roundIndices := make(map[util.UUIDAsBlob]int, len(rounds))
		for i, v := range rounds {
			roundIndices[v.ID] = i
		}
		playerIndices := make(map[util.UUIDAsBlob]int, len(players))

		rows := make([]PresenceRow, len(players))
		for i, v := range players {
			playerIndices[v.ID] = i
			rows[i] = PresenceRow{
				Player:    v,
				Presences: make([]*bool, len(rounds)),
			}
		}

		var presences []Presence
		if err := tx.Select(&presences, `SELECT * FROM Presence`); err != nil {
			return err
		}

		for _, v := range presences {
			roundIndex, ok := roundIndices[v.RoundID]
			if !ok {
				continue // past round
			}
			playerIndex, ok := playerIndices[v.PlayerID]
			if !ok {
				return util.ErrPublic("presence references a missing player")
			}

			scheduled := v.Scheduled
			rows[playerIndex].Presences[roundIndex] = &scheduled
		}

		ret = PresenceOverview{Rounds: rounds, Players: rows}

		return nil
	}); err != nil {
		return PresenceOverview{}, err
	}

	return ret, nil
}
