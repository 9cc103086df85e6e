// Command migrate applies the embedded catalog schema migrations.
//
//	migrate [-dsn url] up | down | steps N | version | force N
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/JaimeStill/promptlib/internal/config"
	"github.com/JaimeStill/promptlib/internal/schema"
)

func main() {
	dsn := flag.String("dsn", "", "database URL (defaults to the PROMPTLIB_DB_* configuration)")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [-dsn url] up | down | steps N | version | force N")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(*dsn, flag.Args(), logger); err != nil {
		logger.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(dsn string, args []string, logger *slog.Logger) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("missing command")
	}

	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Store != config.StorePostgres {
			return fmt.Errorf("store %q has no schema to migrate", cfg.Store)
		}
		dsn = cfg.Database.URL()
	}

	m, err := schema.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps", "force":
		if len(rest) != 1 {
			return fmt.Errorf("%s requires a number", cmd)
		}
		n, convErr := strconv.Atoi(rest[0])
		if convErr != nil {
			return fmt.Errorf("%s: %w", cmd, convErr)
		}
		if cmd == "steps" {
			err = m.Steps(n)
		} else {
			err = m.Force(n)
		}
	case "version":
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			return nil
		}
		if verr != nil {
			return fmt.Errorf("version: %w", verr)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("schema already current", "command", cmd)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}

	v, dirty, _ := m.Version()
	logger.Info("migration complete", "command", cmd, "version", v, "dirty", dirty)
	return nil
}
