package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"drefacil/internal/amqp"
	"drefacil/internal/config"
	applog "drefacil/internal/log"
	"drefacil/internal/metrics"
	"drefacil/internal/sheets"
	gsheet "drefacil/internal/sheets/google"
	"drefacil/internal/storage"
	"drefacil/internal/worker"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	logger.SetDefault()

	logger.Info("Starting drefacil-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// The spreadsheet backup is optional: without it the worker only
	// drains the queue without mirroring anything.
	var (
		writer  sheets.EntryWriter
		deleter sheets.EntryDeleter
	)
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		writer, deleter = client, client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var syncWorker *worker.SyncWorker
	if writer != nil {
		syncWorker = worker.NewSyncWorker(repo, writer, deleter, metrics.New(), cfg.SyncBatchSize)

		// Drain entries that accumulated while the worker was down.
		logger.Info("Performing startup sync check...")
		if err := syncWorker.StartupSyncCheck(ctx); err != nil {
			logger.Error("Failed startup sync check", applog.FieldError, err)
			// Keep running, the periodic sweep retries.
		}

		go func() {
			handler := func(msg *amqp.EntrySyncMessage) error {
				return syncWorker.HandleMessage(ctx, msg)
			}
			if err := amqpClient.ConsumeEntrySync(ctx, handler); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.Error("Message consumption failed", applog.FieldError, err)
				}
				cancel()
			}
		}()

		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := syncWorker.ProcessPending(ctx); err != nil {
						logger.Error("Periodic sync failed", applog.FieldError, err)
					}
				}
			}
		}()
	} else {
		logger.Info("Skipping sync operations - no backup target available")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	case <-ctx.Done():
	}

	logger.Info("Worker stopped gracefully")
}
