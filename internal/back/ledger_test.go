package back

import (
	"testing"
)

func TestNoGamesKeepsInitialRating(t *testing.T) {
	back := createFixturedTestBack(t)

	players, err := back.GetPlayers()
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range players {
		if v.CurrentRating != v.InitialRating {
			t.Errorf(
				"expected %s to sit at their initial rating %v, got %v",
				v.Name, v.InitialRating, v.CurrentRating,
			)
		}
	}
}

func testScheduleGame(t *testing.T, back *Back, white, black string) Game {
	t.Helper()

	round := testGetRounds(t, back)[0]
	ids := testPlayerIDs(t, back, white, black)

	if _, err := back.ScheduleRound(RoundUpdate{
		RoundID:       round.ID,
		PairPlayerIDs: ids,
	}); err != nil {
		t.Fatal(err)
	}

	schedule, err := back.GetRoundSchedule(round.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(schedule.Games) != 1 {
		t.Fatalf("expected 1 scheduled game, got %d", len(schedule.Games))
	}

	return schedule.Games[0].Game
}

func testSetResult(t *testing.T, back *Back, game Game, result GameResult) {
	t.Helper()

	if _, err := back.ScheduleRound(RoundUpdate{
		RoundID: game.RoundID,
		Edits: []GameEdit{
			{GameID: game.ID, Action: GameActionSetResult, Result: result},
		},
	}); err != nil {
		t.Fatal(err)
	}
}

func TestResultMovesBothRatings(t *testing.T) {
	back := createFixturedTestBack(t)
	sys := back.RatingSystem()

	// Bart (1200) gives Anja (1000) two stones, the odds are even.
	game := testScheduleGame(t, back, "Anja", "Bart")
	testSetResult(t, back, game, GameResultWhiteWins)

	expected := sys.ExpectedScore(1200.0, 1000.0, 2)
	delta := sys.Delta(expected, 1.0)

	if got := testGetPlayer(t, back, "Bart").CurrentRating; got != 1200.0+delta {
		t.Errorf("expected Bart at %v, got %v", 1200.0+delta, got)
	}
	if got := testGetPlayer(t, back, "Anja").CurrentRating; got != 1000.0-delta {
		t.Errorf("expected Anja at %v, got %v", 1000.0-delta, got)
	}
}

func TestClearedResultRestoresRatings(t *testing.T) {
	back := createFixturedTestBack(t)

	game := testScheduleGame(t, back, "Anja", "Bart")
	testSetResult(t, back, game, GameResultBlackWins)

	if got := testGetPlayer(t, back, "Anja").CurrentRating; got == 1000.0 {
		t.Fatal("expected Anja's rating to have moved")
	}

	if _, err := back.ScheduleRound(RoundUpdate{
		RoundID: game.RoundID,
		Edits:   []GameEdit{{GameID: game.ID, Action: GameActionClearResult}},
	}); err != nil {
		t.Fatal(err)
	}

	if got := testGetPlayer(t, back, "Anja").CurrentRating; got != 1000.0 {
		t.Errorf("expected Anja back at 1000, got %v", got)
	}
	if got := testGetPlayer(t, back, "Bart").CurrentRating; got != 1200.0 {
		t.Errorf("expected Bart back at 1200, got %v", got)
	}
}

func TestDeletedGameRestoresRatings(t *testing.T) {
	back := createFixturedTestBack(t)

	game := testScheduleGame(t, back, "Chris", "Diana")
	testSetResult(t, back, game, GameResultJigo)

	if _, err := back.ScheduleRound(RoundUpdate{
		RoundID: game.RoundID,
		Edits:   []GameEdit{{GameID: game.ID, Action: GameActionDelete}},
	}); err != nil {
		t.Fatal(err)
	}

	if got := testGetPlayer(t, back, "Chris").CurrentRating; got != 1300.0 {
		t.Errorf("expected Chris back at 1300, got %v", got)
	}
	if got := testGetPlayer(t, back, "Diana").CurrentRating; got != 1350.0 {
		t.Errorf("expected Diana back at 1350, got %v", got)
	}
}

func TestRerateIsIdempotent(t *testing.T) {
	back := createFixturedTestBack(t)

	game := testScheduleGame(t, back, "Emil", "Frank")
	testSetResult(t, back, game, GameResultWhiteWins)

	first := testGetPlayer(t, back, "Emil").CurrentRating
	if err := back.Rerate(); err != nil {
		t.Fatal(err)
	}
	if err := back.Rerate(); err != nil {
		t.Fatal(err)
	}

	if got := testGetPlayer(t, back, "Emil").CurrentRating; got != first {
		t.Errorf("expected a stable rating of %v, got %v", first, got)
	}
}

func TestForfeitsScoredByDefault(t *testing.T) {
	back := createFixturedTestBack(t)

	game := testScheduleGame(t, back, "Anja", "Bart")
	testSetResult(t, back, game, GameResultWhiteWinsByDefault)

	if got := testGetPlayer(t, back, "Anja").CurrentRating; got == 1000.0 {
		t.Error("expected the forfeit to move Anja's rating")
	}
}

func TestForfeitsSkippedWhenIgnored(t *testing.T) {
	back := createFixturedTestBack(t)

	game := testScheduleGame(t, back, "Anja", "Bart")
	testSetResult(t, back, game, GameResultWhiteWinsByDefault)

	back.SetIgnoreForfeits(true)
	if err := back.Rerate(); err != nil {
		t.Fatal(err)
	}

	if got := testGetPlayer(t, back, "Anja").CurrentRating; got != 1000.0 {
		t.Errorf("expected Anja untouched at 1000, got %v", got)
	}
	if got := testGetPlayer(t, back, "Bart").CurrentRating; got != 1200.0 {
		t.Errorf("expected Bart untouched at 1200, got %v", got)
	}
}

func TestLaterRoundFoldsOverEarlierRatings(t *testing.T) {
	back := createFixturedTestBack(t)
	sys := back.RatingSystem()
	rounds := testGetRounds(t, back)
	ids := testPlayerIDs(t, back, "Chris", "Diana")

	for _, round := range rounds[:2] {
		if _, err := back.ScheduleRound(RoundUpdate{
			RoundID: round.ID,
			Custom: &CustomGame{
				WhiteID: ids[1],
				BlackID: ids[0],
				Result:  "BlackWins",
			},
		}); err != nil {
			t.Fatal(err)
		}
	}

	// Chris (1300) takes black against Diana (1350) in both rounds, the
	// second game starting from the ratings the first one produced.
	chris, diana := 1300.0, 1350.0
	for i := 0; i < 2; i++ {
		expected := sys.ExpectedScore(diana, chris, 0)
		diana = sys.Clamp(diana + sys.Delta(expected, 0.0))
		chris = sys.Clamp(chris + sys.Delta(1.0-expected, 1.0))
	}

	if got := testGetPlayer(t, back, "Chris").CurrentRating; got != chris {
		t.Errorf("expected Chris at %v, got %v", chris, got)
	}
	if got := testGetPlayer(t, back, "Diana").CurrentRating; got != diana {
		t.Errorf("expected Diana at %v, got %v", diana, got)
	}
}
