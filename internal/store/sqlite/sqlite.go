// Package sqlite persists mode-keyed dataset blobs in a local SQLite
// database. The schema is managed by embedded golang-migrate files.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the dataset for the mode, or store.ErrNotFound when
// absent or when the stored payload no longer decodes.
func (s *Store) Load(ctx context.Context, mode store.Mode) (core.Dataset, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM datasets WHERE key = ?`, mode.Key(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Dataset{}, store.ErrNotFound
	}
	if err != nil {
		return core.Dataset{}, fmt.Errorf("load dataset: %w", err)
	}

	ds, err := core.DecodeDataset(payload)
	if err != nil {
		slog.WarnContext(ctx, "Stored dataset is malformed, treating as absent",
			"mode", mode, "error", err)
		return core.Dataset{}, store.ErrNotFound
	}
	return ds, nil
}

func (s *Store) Save(ctx context.Context, mode store.Mode, ds core.Dataset) error {
	payload, err := core.EncodeDataset(ds)
	if err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO datasets (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		mode.Key(), payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}

	slog.InfoContext(ctx, "Dataset saved",
		"mode", mode, "bytes", len(payload), "transactions", len(ds.Transactions))
	return nil
}

func (s *Store) Clear(ctx context.Context, mode store.Mode) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM datasets WHERE key = ?`, mode.Key()); err != nil {
		return fmt.Errorf("clear dataset: %w", err)
	}
	return nil
}
