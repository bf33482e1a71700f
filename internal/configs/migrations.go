package config

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

var gooseDialects = map[string]string{
	DriverSQLite:   "sqlite3",
	DriverPostgres: "postgres",
}

// Migrate applies every pending migration for the given driver.
func Migrate(ctx context.Context, db *gorm.DB, driver string, log *slog.Logger) error {
	sqlDB, dir, err := prepareGoose(db, driver, log)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// MigrationStatus logs the applied state of every known migration.
func MigrationStatus(ctx context.Context, db *gorm.DB, driver string, log *slog.Logger) error {
	sqlDB, dir, err := prepareGoose(db, driver, log)
	if err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("goose status: %w", err)
	}
	return nil
}

func prepareGoose(db *gorm.DB, driver string, log *slog.Logger) (*sql.DB, string, error) {
	dialect, ok := gooseDialects[driver]
	if !ok {
		return nil, "", fmt.Errorf("unsupported database driver %q", driver)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, "", fmt.Errorf("db handle: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect(dialect); err != nil {
		return nil, "", fmt.Errorf("goose dialect: %w", err)
	}

	return sqlDB, path.Join("migrations", driver), nil
}

type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}
