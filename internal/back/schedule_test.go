package back

import (
	"errors"
	"testing"

	"github.com/jillest/goladder/internal/rating"
	"github.com/jillest/goladder/internal/util"
)

func TestScheduleRoundAutoPairs(t *testing.T) {
	back := createFixturedTestBack(t)
	round := testGetRounds(t, back)[0]
	ids := testPlayerIDs(t, back, "Anja", "Bart", "Chris", "Diana")

	pairings, err := back.ScheduleRound(RoundUpdate{
		RoundID:       round.ID,
		PairPlayerIDs: ids,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(pairings) != 2 {
		t.Fatalf("expected 2 pairings, got %d", len(pairings))
	}

	schedule, err := back.GetRoundSchedule(round.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(schedule.Games) != 2 {
		t.Fatalf("expected 2 games in the round, got %d", len(schedule.Games))
	}

	for i, v := range schedule.Games {
		if v.Game.Result.Valid {
			t.Errorf("expected game %d to be pending", i)
		}
		if v.Game.BoardSize != DefaultBoardSize {
			t.Errorf("expected a %d×%d board, got %d", DefaultBoardSize, DefaultBoardSize, v.Game.BoardSize)
		}
	}

	// Paired players are no longer candidates for this round.
	for _, candidate := range schedule.Candidates {
		for _, id := range ids {
			if candidate.ID == id {
				t.Errorf("%s is paired but still a candidate", candidate.Name)
			}
		}
	}
}

func TestScheduleRoundRollsBackAsAWhole(t *testing.T) {
	back := createFixturedTestBack(t)
	round := testGetRounds(t, back)[0]
	ids := testPlayerIDs(t, back, "Anja", "Bart", "Chris", "Diana", "Emil")

	// A valid custom game alongside an odd pairing list: neither part
	// may survive the failed submission.
	_, err := back.ScheduleRound(RoundUpdate{
		RoundID: round.ID,
		Custom: &CustomGame{
			WhiteID: ids[4],
			BlackID: ids[3],
		},
		PairPlayerIDs: ids[:3],
	})

	var oddErr OddCountError
	if !errors.As(err, &oddErr) {
		t.Fatalf("expected an OddCountError, got %v", err)
	}

	schedule, err := back.GetRoundSchedule(round.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(schedule.Games) != 0 {
		t.Errorf("expected an untouched round, got %d games", len(schedule.Games))
	}
}

func TestScheduleRoundRejectsPairedPlayers(t *testing.T) {
	back := createFixturedTestBack(t)
	round := testGetRounds(t, back)[0]

	if _, err := back.ScheduleRound(RoundUpdate{
		RoundID:       round.ID,
		PairPlayerIDs: testPlayerIDs(t, back, "Anja", "Bart"),
	}); err != nil {
		t.Fatal(err)
	}

	_, err := back.ScheduleRound(RoundUpdate{
		RoundID:       round.ID,
		PairPlayerIDs: testPlayerIDs(t, back, "Anja", "Chris"),
	})

	var pairedErr AlreadyPairedError
	if !errors.As(err, &pairedErr) {
		t.Fatalf("expected an AlreadyPairedError, got %v", err)
	}
	if pairedErr.PlayerName != "Anja" {
		t.Errorf("expected Anja to be flagged, got %s", pairedErr.PlayerName)
	}
}

func TestScheduleRoundDeleteAndRepairInOneSubmission(t *testing.T) {
	back := createFixturedTestBack(t)
	round := testGetRounds(t, back)[0]

	game := testScheduleGame(t, back, "Anja", "Bart")

	if _, err := back.ScheduleRound(RoundUpdate{
		RoundID:       round.ID,
		Edits:         []GameEdit{{GameID: game.ID, Action: GameActionDelete}},
		PairPlayerIDs: testPlayerIDs(t, back, "Anja", "Chris"),
	}); err != nil {
		t.Fatal(err)
	}

	schedule, err := back.GetRoundSchedule(round.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(schedule.Games) != 1 {
		t.Fatalf("expected 1 game after the repair, got %d", len(schedule.Games))
	}

	names := map[string]struct{}{
		schedule.Games[0].White.Name: {},
		schedule.Games[0].Black.Name: {},
	}
	for _, name := range []string{"Anja", "Chris"} {
		if _, ok := names[name]; !ok {
			t.Errorf("expected %s in the new game", name)
		}
	}
}

func TestScheduleRoundCustomGame(t *testing.T) {
	back := createFixturedTestBack(t)
	round := testGetRounds(t, back)[0]
	ids := testPlayerIDs(t, back, "Frank", "Anja")

	if _, err := back.ScheduleRound(RoundUpdate{
		RoundID: round.ID,
		Custom: &CustomGame{
			WhiteID: ids[0],
			BlackID: ids[1],
			Result:  "WhiteWinsByDefault",
		},
	}); err != nil {
		t.Fatal(err)
	}

	schedule, err := back.GetRoundSchedule(round.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(schedule.Games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(schedule.Games))
	}

	game := schedule.Games[0].Game

	// Frank (1650) gives Anja (1000) seven stones when no handicap is
	// spelled out.
	if game.Handicap != "7b0" {
		t.Errorf(`expected a derived handicap of "7b0", got %q`, game.Handicap)
	}
	if !game.Result.Valid || game.Result.Result != GameResultWhiteWinsByDefault {
		t.Errorf("expected a forfeit win for white, got %v", game.Result)
	}
	if game.FormatResult() != "1-0!" {
		t.Errorf(`expected "1-0!", got %q`, game.FormatResult())
	}
}

func TestScheduleRoundCustomGameErrors(t *testing.T) {
	back := createFixturedTestBack(t)
	round := testGetRounds(t, back)[0]
	ids := testPlayerIDs(t, back, "Anja", "Bart")

	t.Run("self pairing", func(t *testing.T) {
		_, err := back.ScheduleRound(RoundUpdate{
			RoundID: round.ID,
			Custom:  &CustomGame{WhiteID: ids[0], BlackID: ids[0]},
		})

		var selfErr SelfPairingError
		if !errors.As(err, &selfErr) {
			t.Fatalf("expected a SelfPairingError, got %v", err)
		}
		if selfErr.PlayerName != "Anja" {
			t.Errorf("expected Anja to be flagged, got %s", selfErr.PlayerName)
		}
	})

	t.Run("bad handicap text", func(t *testing.T) {
		_, err := back.ScheduleRound(RoundUpdate{
			RoundID: round.ID,
			Custom:  &CustomGame{WhiteID: ids[1], BlackID: ids[0], Handicap: "1b0"},
		})

		var parseErr rating.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected a handicap ParseError, got %v", err)
		}
	})

	t.Run("bad result tag", func(t *testing.T) {
		_, err := back.ScheduleRound(RoundUpdate{
			RoundID: round.ID,
			Custom:  &CustomGame{WhiteID: ids[1], BlackID: ids[0], Result: "WhiteLosesGracefully"},
		})

		var unknownErr UnknownResultError
		if !errors.As(err, &unknownErr) {
			t.Fatalf("expected an UnknownResultError, got %v", err)
		}
	})

	schedule, err := back.GetRoundSchedule(round.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(schedule.Games) != 0 {
		t.Errorf("expected no game to survive, got %d", len(schedule.Games))
	}
}

func TestScheduleRoundUnknownRound(t *testing.T) {
	back := createFixturedTestBack(t)

	_, err := back.ScheduleRound(RoundUpdate{RoundID: util.NewUUIDAsBlob()})

	var pub util.ErrPublic
	if !errors.As(err, &pub) {
		t.Fatalf("expected a public error, got %v", err)
	}
}

func TestScheduleRoundUnknownCandidate(t *testing.T) {
	back := createFixturedTestBack(t)
	round := testGetRounds(t, back)[0]
	ids := testPlayerIDs(t, back, "Anja")

	_, err := back.ScheduleRound(RoundUpdate{
		RoundID:       round.ID,
		PairPlayerIDs: append(ids, util.NewUUIDAsBlob()),
	})

	var pub util.ErrPublic
	if !errors.As(err, &pub) {
		t.Fatalf("expected a public error, got %v", err)
	}
}

func TestParseGameAction(t *testing.T) {
	cases := []struct {
		tag    string
		action GameAction
		result GameResult
	}{
		{"", GameActionNone, 0},
		{"none", GameActionNone, 0},
		{"delete", GameActionDelete, 0},
		{"clear", GameActionClearResult, 0},
		{"WhiteWins", GameActionSetResult, GameResultWhiteWins},
		{"Jigo", GameActionSetResult, GameResultJigo},
	}

	for _, v := range cases {
		action, result, err := ParseGameAction(v.tag)
		if err != nil {
			t.Errorf("%q: %v", v.tag, err)
			continue
		}
		if action != v.action || result != v.result {
			t.Errorf("%q: got (%v, %v)", v.tag, action, result)
		}
	}

	_, _, err := ParseGameAction("resign")
	var unknownErr UnknownResultError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected an UnknownResultError, got %v", err)
	}
	if unknownErr.Tag != "resign" {
		t.Errorf(`expected the "resign" tag, got %q`, unknownErr.Tag)
	}
}
