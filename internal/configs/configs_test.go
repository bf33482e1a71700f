package config

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AppURL() != "127.0.0.1:8080" {
		t.Errorf("expected default app url, got %s", cfg.AppURL())
	}
	if cfg.DatabaseDriver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %s", cfg.DatabaseDriver)
	}
	if cfg.FlashStore != FlashStoreMemory {
		t.Errorf("expected memory flash store, got %s", cfg.FlashStore)
	}
	if cfg.RateLimit != 60 {
		t.Errorf("expected rate limit 60, got %d", cfg.RateLimit)
	}
	if cfg.ShutdownTimeout() != 20*time.Second {
		t.Errorf("expected 20s shutdown timeout, got %s", cfg.ShutdownTimeout())
	}
	if cfg.RedisAddr() != "127.0.0.1:6379" {
		t.Errorf("expected default redis addr, got %s", cfg.RedisAddr())
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_HOST", "0.0.0.0")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "postgres://localhost/tasks")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FLASH_STORE", "redis")
	t.Setenv("FLASH_TTL_SECONDS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AppURL() != "0.0.0.0:9000" {
		t.Errorf("unexpected app url %s", cfg.AppURL())
	}
	if cfg.DatabaseDriver != DriverPostgres {
		t.Errorf("expected driver to be normalised, got %s", cfg.DatabaseDriver)
	}
	if cfg.FlashTTL() != 30*time.Second {
		t.Errorf("unexpected flash ttl %s", cfg.FlashTTL())
	}
	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("expected debug level, got %v (%v)", level, err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "DATABASE_DRIVER", "mysql"},
		{"zero rate limit", "RATE_LIMIT_PER_MINUTE", "0"},
		{"non numeric rate limit", "RATE_LIMIT_PER_MINUTE", "many"},
		{"unknown flash store", "FLASH_STORE", "cookie"},
		{"bad log level", "LOG_LEVEL", "LOUD"},
		{"negative shutdown", "SHUTDOWN_TIMEOUT_SECONDS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := NewDatabase(DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer CloseDatabase(db)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	if err := Migrate(ctx, db, DriverSQLite, log); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	// second run is a no-op
	if err := Migrate(ctx, db, DriverSQLite, log); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	for _, table := range []string{"categories", "tasks"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}

	if err := MigrationStatus(ctx, db, DriverSQLite, log); err != nil {
		t.Errorf("MigrationStatus() error = %v", err)
	}
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	if _, err := NewDatabase("oracle", "dsn"); err == nil {
		t.Error("expected error for unknown driver")
	}
}
