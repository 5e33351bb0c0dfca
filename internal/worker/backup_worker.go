// Package worker consumes dataset-change events and mirrors the
// dataset to durable backups: timestamped JSON snapshots on disk and,
// when configured, a Google Sheets transaction log.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/sheets"
	"fintrack/internal/store"
)

type BackupWorker struct {
	store     store.Store
	exporter  *sheets.Exporter
	backupDir string

	mu           sync.Mutex
	lastRevision map[string]int64
}

// NewBackupWorker creates a worker. exporter may be nil; snapshots are
// then the only backup target.
func NewBackupWorker(st store.Store, exporter *sheets.Exporter, backupDir string) *BackupWorker {
	return &BackupWorker{
		store:        st,
		exporter:     exporter,
		backupDir:    backupDir,
		lastRevision: make(map[string]int64),
	}
}

// HandleDatasetChanged processes one change event. Events older than
// the newest already handled for the mode are skipped, so a delayed
// delivery cannot overwrite a newer backup.
func (w *BackupWorker) HandleDatasetChanged(ctx context.Context, msg *amqp.DatasetChangedMessage) error {
	w.mu.Lock()
	if msg.Revision != 0 && msg.Revision <= w.lastRevision[msg.Mode] {
		w.mu.Unlock()
		slog.InfoContext(ctx, "Skipping stale dataset change",
			"mode", msg.Mode, "revision", msg.Revision)
		return nil
	}
	w.lastRevision[msg.Mode] = msg.Revision
	w.mu.Unlock()

	slog.InfoContext(ctx, "Processing dataset change",
		"mode", msg.Mode, "revision", msg.Revision, "transactions", msg.Transactions)

	return w.Backup(ctx, store.Mode(msg.Mode))
}

// Backup loads the mode's dataset from the store and writes all
// configured backup targets.
func (w *BackupWorker) Backup(ctx context.Context, mode store.Mode) error {
	ds, err := w.store.Load(ctx, mode)
	if err != nil {
		return fmt.Errorf("load dataset for backup: %w", err)
	}

	if err := w.writeSnapshot(ctx, mode, ds); err != nil {
		return err
	}

	if w.exporter != nil {
		if err := w.exporter.Export(ctx, ds); err != nil {
			return fmt.Errorf("export to sheets: %w", err)
		}
		slog.InfoContext(ctx, "Dataset exported to backup sheet",
			"mode", mode, "transactions", len(ds.Transactions))
	}
	return nil
}

func (w *BackupWorker) writeSnapshot(ctx context.Context, mode store.Mode, ds core.Dataset) error {
	if err := os.MkdirAll(w.backupDir, 0755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	// The periodic safety-net pass re-backs-up unchanged datasets;
	// skip the write when nothing moved since the last snapshot.
	latest := filepath.Join(w.backupDir, fmt.Sprintf("%s-latest.json", mode))
	if prev, err := os.ReadFile(latest); err == nil && bytes.Equal(prev, data) {
		return nil
	}

	name := fmt.Sprintf("%s-%s.json", mode, time.Now().UTC().Format("20060102T150405"))
	path := filepath.Join(w.backupDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	// Keep a stable "latest" copy alongside the timestamped history.
	if err := os.WriteFile(latest, data, 0644); err != nil {
		return fmt.Errorf("write latest snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot written", "mode", mode, "path", path, "bytes", len(data))
	return nil
}
