package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	var (
		pathFlag string
		downFlag bool
	)
	flag.StringVar(&pathFlag, "path", "migrations", "directory containing migration files")
	flag.BoolVar(&downFlag, "down", false, "roll back one migration instead of migrating up")
	flag.Parse()

	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	m, err := migrate.New("file://"+pathFlag, databaseURL)
	if err != nil {
		exitWithError(fmt.Errorf("open migrations: %w", err))
	}
	defer m.Close()

	if downFlag {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("no schema changes to apply")
			return
		}
		exitWithError(err)
	}
	fmt.Println("migrations applied")
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "migrate:", err)
	os.Exit(1)
}
