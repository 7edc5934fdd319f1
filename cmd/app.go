package main

import (
	"context"
	"customer-directory/internal/batch"
	"customer-directory/internal/config"
	"customer-directory/internal/domain/customer"
	"customer-directory/internal/event"
	"customer-directory/internal/infrastructure/cache/redis"
	"customer-directory/internal/infrastructure/database/postgres"
	"customer-directory/internal/infrastructure/logging"
	"customer-directory/internal/infrastructure/storage"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func initializeApp(configDir string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed(), "store_backend", cfg.Store.Backend)

	return cfg, logger, nil
}

// buildStore returns the configured customer store and a function releasing
// whatever connection backs it.
func buildStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (customer.Store, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case "", config.BackendFile:
		logger.Info("Using file customer store", "path", cfg.Store.File.Path, "atomic_write", cfg.Store.File.AtomicWrite)
		return storage.NewFileStore(afero.NewOsFs(), cfg.Store.File.Path, cfg.Store.File.AtomicWrite, logger), noop, nil

	case config.BackendPostgres:
		logger.Info("Initializing database connection pool...")
		dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("initialize database connection pool: %w", err)
		}
		store := postgres.NewCustomerStore(dbPool, logger)
		if err := store.EnsureSchema(ctx); err != nil {
			dbPool.Close()
			return nil, noop, err
		}
		return store, func() {
			logger.Info("Closing database connection pool...")
			dbPool.Close()
		}, nil

	case config.BackendRedis:
		client, err := redis.NewClient(ctx, cfg.Store.Redis, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("initialize redis client: %w", err)
		}
		return redis.NewCustomerStore(client, cfg.Store.Redis.Key, logger), func() {
			logger.Info("Closing redis client...")
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close redis client", "error", err)
			}
		}, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// buildPublisher falls back to dropping events when the broker is disabled or
// unreachable; event delivery never blocks startup.
func buildPublisher(cfg *config.Config, logger *slog.Logger) (event.EventPublisher, func()) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, customer events will not be published")
		return event.NewNoopPublisher(logger), func() {}
	}

	conn, err := event.NewRabbitMQConnection(cfg.RabbitMQ.URL, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, customer events will not be published", "error", err)
		return event.NewNoopPublisher(logger), func() {}
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to set up RabbitMQ publisher, customer events will not be published", "error", err)
		conn.Close()
		return event.NewNoopPublisher(logger), func() {}
	}

	return publisher, func() {
		logger.Info("Closing RabbitMQ connection...")
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close RabbitMQ connection", "error", err)
		}
	}
}

type storeInitializer interface {
	Init(ctx context.Context, force bool) (bool, error)
}

// seedStore writes an empty collection when the store cannot be loaded, or
// unconditionally with force. It reports whether anything was written.
func seedStore(ctx context.Context, store customer.Store, force bool) (bool, error) {
	if initializer, ok := store.(storeInitializer); ok {
		return initializer.Init(ctx, force)
	}

	if !force {
		if _, err := store.Load(ctx); err == nil {
			return false, nil
		}
	}
	if err := store.Save(ctx, customer.Collection{}); err != nil {
		return false, err
	}
	return true, nil
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) error {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			stopScheduler(cronScheduler, logger)
			return fmt.Errorf("http server: %w", err)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.")
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)
	stopScheduler(cronScheduler, logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	if triggerReason != "server exited" {
		logger.Info("Waiting for server goroutine to confirm exit...")
		select {
		case err := <-serverErrors:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
			} else {
				logger.Info("Server goroutine confirmed exit.")
			}
		case <-time.After(5 * time.Second):
			logger.Warn("Timed out waiting for server goroutine confirmation.")
		}
	}

	logger.Info("Application shutdown process complete.")
	return nil
}

func stopScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, auditJob *batch.StoreAuditJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.StoreAuditSchedule
	if scheduleSpec == "" {
		logger.Info("Store audit schedule empty, audit job disabled")
		c.Start()
		return c
	}

	jobTimeout := cfg.Batch.StoreAuditTimeout
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "StoreAudit")
		jobLogger.Info("Cron triggered: Running store audit job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if _, runErr := auditJob.Run(ctx); runErr != nil {
			jobLogger.Error("Store audit job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule store audit job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled store audit job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
