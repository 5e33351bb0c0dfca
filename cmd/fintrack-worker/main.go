package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/sheets"
	"fintrack/internal/store"
	"fintrack/internal/store/sqlite"
	"fintrack/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting fintrack-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.StoreBackend != "sqlite" {
		logger.Error("Worker requires the sqlite store backend to share state with the server",
			"backend", cfg.StoreBackend)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("Worker requires AMQP_URL to consume dataset changes")
		os.Exit(1)
	}

	st, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer st.Close()

	var exporter *sheets.Exporter
	if cfg.SheetsSpreadsheetID != "" {
		exporter, err = sheets.NewExporter(context.Background(), sheets.Config{
			SpreadsheetID:   cfg.SheetsSpreadsheetID,
			SheetName:       cfg.SheetsName,
			CredentialsJSON: cfg.SheetsCredentialsJSON,
			CredentialsFile: cfg.SheetsCredentialsFile,
		})
		if err != nil {
			logger.Error("Failed to initialize sheets exporter", "error", err)
			os.Exit(1)
		}
		logger.Info("Sheets exporter initialized", "spreadsheet_id", cfg.SheetsSpreadsheetID)
	} else {
		logger.Info("Sheets export disabled - no SHEETS_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	backupWorker := worker.NewBackupWorker(st, exporter, cfg.BackupDir)

	// Catch up on anything missed while the worker was down.
	for _, mode := range []store.Mode{store.ModeDemo, store.ModeReal} {
		if err := backupWorker.Backup(ctx, mode); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			logger.Error("Startup backup failed", "mode", mode, "error", err)
		}
	}

	go func() {
		if err := amqpClient.ConsumeMessages(ctx, backupWorker.HandleDatasetChanged); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", "error", err)
			}
			cancel()
		}
	}()

	// Periodic safety-net backup in case a change event was lost.
	ticker := time.NewTicker(cfg.BackupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Worker stopped gracefully")
			return
		case <-ticker.C:
			for _, mode := range []store.Mode{store.ModeDemo, store.ModeReal} {
				if err := backupWorker.Backup(ctx, mode); err != nil && !errors.Is(err, store.ErrNotFound) {
					logger.Error("Periodic backup failed", "mode", mode, "error", err)
				}
			}
		}
	}
}
