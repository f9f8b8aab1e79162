// Command migrate applies or reverts the database schema.
//
//	migrate up          apply every pending migration
//	migrate down [n]    revert n migrations (default 1)
//	migrate version     print the current version
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"marketplace/cmd"
	"marketplace/internal/adapters/out/postgres"

	"github.com/golang-migrate/migrate/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: migrate up | down [n] | version")
	}

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	m, err := postgres.NewMigrator(configs.DatabaseURL())
	if err != nil {
		log.Fatalf("Error creating migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	if err = execute(m, os.Args[1:]); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

func execute(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		return ignoreNoChange(m.Up())
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
			steps = n
		}
		return ignoreNoChange(m.Steps(-steps))
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("no migration applied")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
