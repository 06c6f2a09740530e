package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/vendorconnect/vendorconnect-platform/migrations"
	"github.com/vendorconnect/vendorconnect-platform/pkg/logging"
)

// Usage:
//
//	migrate              apply every pending migration
//	migrate down         roll back one step
//	migrate version      print the applied version
//	migrate force <v>    mark version v as applied after a failed run
func main() {
	_ = godotenv.Load()
	logger := logging.New(os.Getenv("LOG_LEVEL"))

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	m, closeDB, err := newMigrator(databaseURL)
	if err != nil {
		logger.Error("failed to prepare migrator", "error", err)
		os.Exit(1)
	}
	defer closeDB()
	defer func() { _, _ = m.Close() }()

	if err := run(m, os.Args[1:]); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func newMigrator(databaseURL string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	closeDB := func() { _ = db.Close() }

	if err := db.Ping(); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("ping db: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("db driver: %w", err)
	}

	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, closeDB, nil
}

// migrator is the subset of *migrate.Migrate the commands use.
type migrator interface {
	Up() error
	Steps(n int) error
	Force(version int) error
	Version() (uint, bool, error)
}

func run(m migrator, args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate up: %w", err)
		}
		fmt.Println("migrations complete")
	case "down":
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		fmt.Println("rolled back one migration")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version %d (dirty=%t)\n", version, dirty)
	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version: %w", err)
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version: %w", err)
		}
		fmt.Printf("forced version to %d\n", version)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}
