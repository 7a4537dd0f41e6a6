package back

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/jillest/goladder/internal/rating"
	"github.com/jillest/goladder/internal/util"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func createFixturedTestBack(t *testing.T) *Back {
	t.Helper()

	f, err := ioutil.TempFile("", "*.db")
	if err != nil {
		t.Fatal(err)
	}
	path := f.Name()
	f.Close()
	t.Cleanup(func() {
		os.Remove(path)
	})

	migrator, err := migrate.New(
		"file://../../resources/migrations",
		"sqlite3://"+path,
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatal(err)
	}
	migrator.Close()

	back, err := New("sqlite3", path, rating.NewSystem())
	if err != nil {
		t.Fatal(err)
	}

	if err := back.transaction(fixtures); err != nil {
		t.Fatal(err)
	}

	return back
}

func fixtures(tx *sqlx.Tx) error {
	players := []struct {
		name   string
		rating float64
	}{
		{"Anja", 1000.0},
		{"Bart", 1200.0},
		{"Chris", 1300.0},
		{"Diana", 1350.0},
		{"Emil", 1500.0},
		{"Frank", 1650.0},
	}

	for _, v := range players {
		player := NewPlayer(v.name, v.rating)
		player.DefaultSchedule = true
		if err := player.insert(tx); err != nil {
			return err
		}
	}

	for _, date := range []string{"2019-10-06", "2019-10-13"} {
		parsed, err := util.ParseDateAsString(date)
		if err != nil {
			return err
		}

		round := NewRound(parsed)
		if err := round.insert(tx); err != nil {
			return err
		}
	}

	return nil
}

func testGetPlayer(t *testing.T, back *Back, name string) Player {
	t.Helper()

	var player Player
	if err := back.transaction(func(tx *sqlx.Tx) (err error) {
		player, err = getPlayerByName(tx, name)
		return err
	}); err != nil {
		t.Fatal(err)
	}

	return player
}

func testGetRounds(t *testing.T, back *Back) []Round {
	t.Helper()

	rounds, err := back.GetRounds()
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) == 0 {
		t.Fatal("expected fixture rounds")
	}

	return rounds
}

func testPlayerIDs(t *testing.T, back *Back, names ...string) []util.UUIDAsBlob {
	t.Helper()

	ids := make([]util.UUIDAsBlob, 0, len(names))
	for _, name := range names {
		ids = append(ids, testGetPlayer(t, back, name).ID)
	}

	return ids
}
