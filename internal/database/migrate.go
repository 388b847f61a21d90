package database

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/recipebox/backend/internal/logger"
	"github.com/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

// Migrations holds the postgres schema. Files named *_rollback.sql undo the
// migration with the same prefix.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// SchemaMigrationsDDL creates the table that records applied migrations
const SchemaMigrationsDDL = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(32) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

// MigrationFiles returns the forward migration file names in apply order
func MigrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") || IsRollback(name) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// IsRollback reports whether name is a rollback script
func IsRollback(name string) bool {
	return strings.HasSuffix(name, "_rollback.sql")
}

// RollbackFile returns the rollback script name for a migration
func RollbackFile(name string) string {
	return strings.TrimSuffix(name, ".sql") + "_rollback.sql"
}

// MigrationVersion extracts the version prefix of a migration file name
func MigrationVersion(name string) string {
	return strings.SplitN(name, "_", 2)[0]
}

// ReadMigration returns the contents of an embedded migration file
func ReadMigration(name string) (string, error) {
	content, err := Migrations.ReadFile("migrations/" + name)
	if err != nil {
		return "", fmt.Errorf("failed to read migration file %s: %w", name, err)
	}
	return string(content), nil
}

// RunMigrations brings the schema up to date. SQLite uses GORM auto-migration;
// postgres applies the embedded SQL files and records them in schema_migrations.
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		logger.Logger.Debug().Msg("Using GORM auto-migration for SQLite")
		return db.AutoMigrate(models.All()...)
	}

	files, err := MigrationFiles()
	if err != nil {
		return err
	}

	if err := db.Exec(SchemaMigrationsDDL).Error; err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, file := range files {
		version := MigrationVersion(file)

		var count int64
		if err := db.Table("schema_migrations").Where("version = ?", version).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			logger.Logger.Debug().Str("migration", file).Msg("Skipping migration (already applied)")
			continue
		}

		content, err := ReadMigration(file)
		if err != nil {
			return err
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(content).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", file, err)
			}
			if err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", version, file).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", file, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		logger.Logger.Info().Str("migration", file).Msg("Applied migration")
	}

	return nil
}
