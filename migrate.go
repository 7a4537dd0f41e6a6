package main

import (
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func migrateDB(dbPath string) error {
	migrator, err := migrate.New(
		"file://resources/migrations",
		"sqlite3://"+dbPath,
	)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Print("info: schema is up to date")
			return nil
		}

		return err
	}

	log.Print("info: schema migrated")

	return nil
}
