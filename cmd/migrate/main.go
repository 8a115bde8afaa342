package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/straye-as/sales-crm-api/internal/config"
	"github.com/straye-as/sales-crm-api/migrations"
)

const usage = `usage: migrate <command> [args]

commands:
  up                   apply all pending migrations
  up-to VERSION        apply migrations up to VERSION
  down                 roll back the latest migration
  down-to VERSION      roll back to VERSION
  redo                 roll back and re-apply the latest migration
  status               show applied and pending migrations
  version              print the current schema version
  create NAME          write a new SQL migration into MIGRATIONS_DIR (default ./migrations)`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) == 0 {
		return fmt.Errorf("%s", usage)
	}
	command, arguments := args[0], args[1:]

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	// create writes to disk; everything else runs from the embedded files
	if command == "create" {
		if len(arguments) == 0 {
			return fmt.Errorf("create requires a migration name")
		}
		dir := os.Getenv("MIGRATIONS_DIR")
		if dir == "" {
			dir = "./migrations"
		}
		goose.SetSequential(true)
		return goose.Create(nil, dir, arguments[0], "sql")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.RunContext(ctx, command, db, ".", arguments...); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}
