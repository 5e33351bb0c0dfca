// Package memory is the in-memory dataset store, used by tests and as
// the default backend when no database is configured. Payloads are kept
// as encoded blobs so the load path exercises the same decode and
// fallback behavior as the durable stores.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Load returns the dataset for the mode, or store.ErrNotFound when
// absent or malformed.
func (s *Store) Load(ctx context.Context, mode store.Mode) (core.Dataset, error) {
	s.mu.Lock()
	blob, ok := s.blobs[mode.Key()]
	s.mu.Unlock()
	if !ok {
		return core.Dataset{}, store.ErrNotFound
	}
	ds, err := core.DecodeDataset(blob)
	if err != nil {
		slog.WarnContext(ctx, "Stored dataset is malformed, treating as absent",
			"mode", mode, "error", err)
		return core.Dataset{}, store.ErrNotFound
	}
	return ds, nil
}

func (s *Store) Save(_ context.Context, mode store.Mode, ds core.Dataset) error {
	blob, err := core.EncodeDataset(ds)
	if err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	s.mu.Lock()
	s.blobs[mode.Key()] = blob
	s.mu.Unlock()
	return nil
}

func (s *Store) Clear(_ context.Context, mode store.Mode) error {
	s.mu.Lock()
	delete(s.blobs, mode.Key())
	s.mu.Unlock()
	return nil
}
