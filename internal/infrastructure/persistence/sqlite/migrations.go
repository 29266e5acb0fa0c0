package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/bnema/pageflip/internal/logging"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// RunMigrations applies all pending embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	log := logging.FromContext(ctx)

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	goose.SetLogger(goose.NopLogger())

	currentVersion, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		log.Debug().Err(err).Msg("could not get current db version (may be new database)")
		currentVersion = 0
	}

	if migrateErr := goose.UpContext(ctx, db, "migrations"); migrateErr != nil {
		return fmt.Errorf("failed to run migrations: %w", migrateErr)
	}

	newVersion, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get db version after migration: %w", err)
	}

	if newVersion > currentVersion {
		log.Info().
			Int64("from_version", currentVersion).
			Int64("to_version", newVersion).
			Msg("database migrations applied")
	} else {
		log.Debug().Int64("version", newVersion).Msg("database schema up to date")
	}

	return nil
}

// GetMigrationStatus returns the current migration version.
func GetMigrationStatus(ctx context.Context, db *sql.DB) (int64, error) {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}
