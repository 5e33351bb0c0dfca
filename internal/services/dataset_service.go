// Package services orchestrates the running session: it owns the
// in-memory dataset, validates and applies mutations, persists after
// every change and publishes change events for the backup worker.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/store"
)

// DatasetService holds the authoritative in-memory dataset for one
// mode. Persistence is best-effort: a failed store write is logged and
// the session continues with memory as the source of truth.
type DatasetService struct {
	mu         sync.Mutex
	mode       store.Mode
	store      store.Store
	amqpClient *amqp.Client
	ds         core.Dataset
	revision   int64
	onChange   func()
}

func NewDatasetService(mode store.Mode, st store.Store, ds core.Dataset, amqpClient *amqp.Client) *DatasetService {
	return &DatasetService{
		mode:       mode,
		store:      st,
		amqpClient: amqpClient,
		ds:         ds.Clone(),
	}
}

// OnChange registers a hook invoked after every successful mutation,
// used for cache invalidation. Must be set before serving traffic.
func (s *DatasetService) OnChange(fn func()) {
	s.onChange = fn
}

// Mode returns the active dataset mode.
func (s *DatasetService) Mode() store.Mode {
	return s.mode
}

// Dataset returns a copy of the current dataset for safe handoff.
func (s *DatasetService) Dataset() core.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.Clone()
}

// Transactions returns a copy of the current transaction list.
func (s *DatasetService) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.ds.Transactions...)
}

// Settings returns the current settings.
func (s *DatasetService) Settings() core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.Settings
}

// AddTransaction validates and appends a transaction. An empty ID gets
// a generated one; the description defaults to the category.
func (s *DatasetService) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if strings.TrimSpace(tx.ID) == "" {
		tx.ID = uuid.NewString()
	}
	tx = tx.Normalize()
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	for _, existing := range s.ds.Transactions {
		if existing.ID == tx.ID {
			s.mu.Unlock()
			return core.Transaction{}, core.ErrDuplicateID
		}
	}
	s.ds.Transactions = append(s.ds.Transactions, tx)
	s.mu.Unlock()

	s.committed(ctx, "add", tx.ID)
	return tx, nil
}

// UpdateTransaction replaces the transaction with the same ID.
func (s *DatasetService) UpdateTransaction(ctx context.Context, tx core.Transaction) error {
	tx = tx.Normalize()
	if err := tx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	found := false
	for i, existing := range s.ds.Transactions {
		if existing.ID == tx.ID {
			s.ds.Transactions[i] = tx
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return core.ErrUnknownID
	}

	s.committed(ctx, "update", tx.ID)
	return nil
}

// DeleteTransaction removes the transaction with the given ID.
func (s *DatasetService) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	found := false
	for i, existing := range s.ds.Transactions {
		if existing.ID == id {
			s.ds.Transactions = append(s.ds.Transactions[:i], s.ds.Transactions[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return core.ErrUnknownID
	}

	s.committed(ctx, "delete", id)
	return nil
}

// ReplaceDataset swaps in a whole new dataset (import path). Advisory
// category colors are validated here; transactions were validated at
// decode.
func (s *DatasetService) ReplaceDataset(ctx context.Context, ds core.Dataset) error {
	for _, c := range append(append(core.CategoryList{}, ds.CreditCategories...), ds.DebitCategories...) {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}
	}

	s.mu.Lock()
	s.ds = ds.Clone()
	s.mu.Unlock()

	s.committed(ctx, "replace", "")
	return nil
}

// committed persists the dataset and fans out the change. Store
// failures are non-fatal; memory stays authoritative for the session.
func (s *DatasetService) committed(ctx context.Context, op, id string) {
	s.mu.Lock()
	s.revision++
	revision := s.revision
	snapshot := s.ds.Clone()
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange()
	}

	if err := s.store.Save(ctx, s.mode, snapshot); err != nil {
		slog.ErrorContext(ctx, "Failed to persist dataset, session continues in memory",
			"mode", s.mode, "operation", op, "transaction_id", id, "error", err)
	}

	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishDatasetChanged(ctx, s.mode.String(), revision, len(snapshot.Transactions)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish dataset change",
			"mode", s.mode, "revision", revision, "error", err)
	}
}

// SaveToFile writes a dataset to a durable JSON file, pretty-printed.
// This is the save-to-file side channel; it never touches the store.
func SaveToFile(ds core.Dataset, path string) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write dataset file: %w", err)
	}
	return nil
}
