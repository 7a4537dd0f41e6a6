package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jillest/goladder/internal/back"
	"github.com/jillest/goladder/internal/config"
	"github.com/jillest/goladder/internal/rating"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: unable to load .env: %s", err)
	}

	flag.Parse()

	if err := dispatch(flag.Arg(0)); err != nil {
		log.Fatalf("error: %s", err)
	}
}

func dispatch(command string) error {
	switch command {
	case "serve":
		conf, b, err := createBack()
		if err != nil {
			return err
		}
		return serve(conf, b)
	case "migrate":
		conf, err := config.NewFromUserConfigDir()
		if err != nil {
			return err
		}
		return migrateDB(conf.DBPath)
	case "rerate":
		_, b, err := createBack()
		if err != nil {
			return err
		}
		return b.Rerate()
	case "dev:fixtures":
		conf, err := config.NewFromUserConfigDir()
		if err != nil {
			return err
		}
		return loadFixtures(conf.DBPath)
	case "version":
		fmt.Fprintf(os.Stdout, "goladder %s\n", Version)
		return nil
	case "help":
		fmt.Fprint(os.Stdout, help())
		return nil
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
		return nil
	}
}

func createBack() (*config.Config, *back.Back, error) {
	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return nil, nil, err
	}

	b, err := back.New("sqlite3", conf.DBPath, rating.NewSystem())
	if err != nil {
		return nil, nil, err
	}
	b.SetIgnoreForfeits(conf.IgnoreForfeits)

	return conf, b, nil
}

func help() string {
	return fmt.Sprintf(`
goladder runs a go club ladder: presence, pairings, handicaps, ratings.

Usage: %[1]s COMMAND [ARGS…]

COMMANDS
    serve        run the ladder web UI
    migrate      bring the database schema up to date
    rerate       recompute every rating from the full game log
    dev:fixtures create default data for quick testing during development
    help         display this help
    version      display the current version
`,
		os.Args[0],
	)
}
