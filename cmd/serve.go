package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	config "task-manager.com/task-manager/internal/configs"
	"task-manager.com/task-manager/internal/flash"
	httpapi "task-manager.com/task-manager/internal/http"
	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Applies pending migrations and serves the task manager web interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		database, err := config.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer config.CloseDatabase(database)

		if err := config.Migrate(ctx, database, cfg.DatabaseDriver, logger); err != nil {
			return err
		}

		flashes, closeFlashes, err := newFlashStore(cfg)
		if err != nil {
			return err
		}
		defer closeFlashes()

		store := repository.NewStore(database)
		taskService := services.NewTaskService(store, logger)
		categoryService := services.NewCategoryService(store, logger)

		renderer, err := httpapi.NewRenderer()
		if err != nil {
			return err
		}

		handler := httpapi.NewHandler(taskService, categoryService, flashes, store, logger)
		e := httpapi.NewServer(handler, renderer, logger, cfg.RateLimit)

		serverErr := make(chan error, 1)
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.AppURL(), "driver", cfg.DatabaseDriver, "flash_store", cfg.FlashStore)
			if err := e.Start(cfg.AppURL()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
			close(serverErr)
		}()

		select {
		case <-ctx.Done():
		case err := <-serverErr:
			if err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func newFlashStore(cfg config.Config) (flash.Store, func(), error) {
	if cfg.FlashStore != config.FlashStoreRedis {
		return flash.NewMemoryStore(cfg.FlashTTL()), func() {}, nil
	}

	client, err := config.NewRedisClient(cfg.RedisAddr())
	if err != nil {
		return nil, nil, err
	}
	slog.Info("using redis flash store", "addr", cfg.RedisAddr())

	return flash.NewRedisStore(client, cfg.RedisFlashPrefix, cfg.FlashTTL()), client.Close, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
