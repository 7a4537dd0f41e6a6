package main

import (
	"time"

	"github.com/jillest/goladder/internal/back"
	"github.com/jillest/goladder/internal/rating"
	"github.com/jillest/goladder/internal/util"
)

func loadFixtures(dbPath string) error {
	sys := rating.NewSystem()
	b, err := back.New("sqlite3", dbPath, sys)
	if err != nil {
		return err
	}

	players := []struct {
		name string
		rank string
	}{
		{"Anja", "20k"},
		{"Bart", "12k"},
		{"Chris", "7k"},
		{"Diana", "3k"},
		{"Emil", "1d"},
		{"Frank", "4d"},
	}

	ids := make([]util.UUIDAsBlob, 0, len(players))
	for _, v := range players {
		initial, err := sys.ParseRank(v.rank)
		if err != nil {
			return err
		}

		player, err := b.CreatePlayer(v.name, initial)
		if err != nil {
			return err
		}
		if err := b.SetDefaultSchedule(player.ID, true); err != nil {
			return err
		}

		ids = append(ids, player.ID)
	}

	round, err := b.CreateRound(util.NewDateAsString(time.Now()).String())
	if err != nil {
		return err
	}

	_, err = b.ScheduleRound(back.RoundUpdate{
		RoundID:       round.ID,
		PairPlayerIDs: ids,
	})

	return err
}
