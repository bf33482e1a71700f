package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	FlashStoreMemory = "memory"
	FlashStoreRedis  = "redis"
)

type Config struct {
	AppHost                string `env:"APP_HOST" env-default:"127.0.0.1"`
	AppPort                string `env:"APP_PORT" env-default:"8080"`
	LogLevel               string `env:"LOG_LEVEL" env-default:"INFO"`
	DatabaseDriver         string `env:"DATABASE_DRIVER" env-default:"sqlite"`
	DatabaseDSN            string `env:"DATABASE_DSN" env-default:"tasks.db"`
	RateLimit              int    `env:"RATE_LIMIT_PER_MINUTE" env-default:"60"`
	FlashStore             string `env:"FLASH_STORE" env-default:"memory"`
	RedisHost              string `env:"REDIS_HOST" env-default:"127.0.0.1"`
	RedisPort              string `env:"REDIS_PORT" env-default:"6379"`
	RedisFlashPrefix       string `env:"REDIS_FLASH_PREFIX" env-default:"task_manager:flash:"`
	FlashTTLSeconds        int    `env:"FLASH_TTL_SECONDS" env-default:"300"`
	ShutdownTimeoutSeconds int    `env:"SHUTDOWN_TIMEOUT_SECONDS" env-default:"20"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	cfg.FlashStore = strings.ToLower(strings.TrimSpace(cfg.FlashStore))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT must not be empty (e.g. 8080)")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.DatabaseDriver != DriverSQLite && c.DatabaseDriver != DriverPostgres {
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if c.FlashStore != FlashStoreMemory && c.FlashStore != FlashStoreRedis {
		return fmt.Errorf("FLASH_STORE must be %q or %q, got %q", FlashStoreMemory, FlashStoreRedis, c.FlashStore)
	}
	if c.FlashTTLSeconds <= 0 {
		return fmt.Errorf("FLASH_TTL_SECONDS must be greater than 0")
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func (c Config) AppURL() string {
	return net.JoinHostPort(c.AppHost, c.AppPort)
}

func (c Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

func (c Config) FlashTTL() time.Duration {
	return time.Duration(c.FlashTTLSeconds) * time.Second
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
