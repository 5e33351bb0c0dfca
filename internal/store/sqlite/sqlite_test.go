package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Load(ctx, store.ModeReal); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on fresh database, got %v", err)
	}

	ds := core.Dataset{
		Settings: core.Settings{Currency: "EUR", StartingBalance: core.Money{Cents: 100000}},
		Transactions: []core.Transaction{{
			ID: "t1", Type: core.Debit, Date: core.NewDate(2024, 4, 2),
			Amount: core.Money{Cents: 4200}, Category: "Food", Description: "Groceries",
		}},
	}
	if err := s.Save(ctx, store.ModeReal, ds); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, store.ModeReal)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Transactions) != 1 || got.Transactions[0] != ds.Transactions[0] {
		t.Fatalf("unexpected transactions %+v", got.Transactions)
	}
	if got.Settings != ds.Settings {
		t.Fatalf("unexpected settings %+v", got.Settings)
	}
}

func TestStoreUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := core.Dataset{Transactions: []core.Transaction{{
		ID: "t1", Type: core.Credit, Date: core.NewDate(2024, 1, 1),
		Amount: core.Money{Cents: 100}, Category: "A", Description: "A",
	}}}
	if err := s.Save(ctx, store.ModeDemo, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := first.Clone()
	second.Transactions[0].Amount = core.Money{Cents: 999}
	if err := s.Save(ctx, store.ModeDemo, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.Load(ctx, store.ModeDemo)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Transactions[0].Amount.Cents != 999 {
		t.Fatalf("expected overwrite, got %d", got.Transactions[0].Amount.Cents)
	}
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ds := core.Dataset{Transactions: []core.Transaction{}}
	if err := s.Save(ctx, store.ModeDemo, ds); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(ctx, store.ModeDemo); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := s.Load(ctx, store.ModeDemo); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}
