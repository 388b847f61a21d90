package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/recipebox/backend/internal/database"
	"github.com/recipebox/backend/internal/logger"
)

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	flag.Parse()

	logger.Init("recipebox-migrate", "info", true)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Logger.Fatal().Msg("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if _, err := db.Exec(database.SchemaMigrationsDDL); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create schema_migrations table")
	}

	if *rollback {
		name, err := rollbackLast(db)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Rollback failed")
		}
		logger.Logger.Info().Str("migration", name).Msg("Rolled back migration")
		return
	}

	applied, err := applyPending(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Migration failed")
	}
	logger.Logger.Info().Int("applied", applied).Msg("Migrations complete")
}

// applyPending runs every embedded migration that is not yet recorded
func applyPending(db *sql.DB) (int, error) {
	files, err := database.MigrationFiles()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, file := range files {
		version := database.MigrationVersion(file)

		var exists bool
		if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&exists); err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			continue
		}

		content, err := database.ReadMigration(file)
		if err != nil {
			return applied, err
		}

		err = inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(content); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", file, err)
			}
			_, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", version, file)
			return err
		})
		if err != nil {
			return applied, err
		}

		logger.Logger.Info().Str("migration", file).Msg("Applied migration")
		applied++
	}
	return applied, nil
}

// rollbackLast undoes the most recently applied migration
func rollbackLast(db *sql.DB) (string, error) {
	var version, name string
	err := db.QueryRow(`
		SELECT version, name
		FROM schema_migrations
		ORDER BY applied_at DESC, version DESC
		LIMIT 1
	`).Scan(&version, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("no migrations to rollback")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}

	content, err := database.ReadMigration(database.RollbackFile(name))
	if err != nil {
		return "", err
	}

	err = inTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(content); err != nil {
			return fmt.Errorf("failed to execute rollback: %w", err)
		}
		_, err := tx.Exec("DELETE FROM schema_migrations WHERE version = $1", version)
		return err
	})
	return name, err
}

func inTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
