// Package main is the standalone migration tool for the cashflow database.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"cashflow-api/internal/config"
	"cashflow-api/internal/database"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [up|down|status|seed]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db)

	if err := runner.WaitForDatabase(); err != nil {
		slog.Error("Database never became ready", "error", err)
		os.Exit(1)
	}

	switch command {
	case "up":
		if err := runner.RunMigrations(); err != nil {
			slog.Error("Migration failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Migrations applied")

	case "down":
		if err := runner.RollbackLast(); err != nil {
			slog.Error("Rollback failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Rolled back last migration")

	case "status":
		version, dirty, err := runner.GetMigrationStatus()
		if err != nil {
			slog.Error("Failed to read migration status", "error", err)
			os.Exit(1)
		}
		slog.Info("Migration status", "version", version, "dirty", dirty)

	case "seed":
		if err := runner.LoadSeeds(); err != nil {
			slog.Error("Seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Seeds loaded")

	default:
		flag.Usage()
		os.Exit(2)
	}
}
