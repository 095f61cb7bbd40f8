package main

import (
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/lexvault/srs-api/internal/platform/postgres"
)

// runMigrations executes a goose migration command against the connected
// database using the migrations embedded in the binary.
func (app *application) runMigrations(command string) error {
	goose.SetBaseFS(postgres.MigrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	app.logger.Info("running migrations", slog.String("command", command))

	switch command {
	case "up":
		if err := goose.Up(app.db, "migrations"); err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
	case "down":
		if err := goose.Down(app.db, "migrations"); err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
	case "status":
		if err := goose.Status(app.db, "migrations"); err != nil {
			return fmt.Errorf("migration status failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, or status)", command)
	}

	app.logger.Info("migrations complete", slog.String("command", command))
	return nil
}
