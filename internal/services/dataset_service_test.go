package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/store"
	"fintrack/internal/store/memory"
)

func newTestService(t *testing.T, txs ...core.Transaction) (*DatasetService, *memory.Store) {
	t.Helper()
	st := memory.New()
	ds := core.Dataset{
		Settings:     core.Settings{Currency: "EUR", StartingBalance: core.Money{Cents: 100000}},
		Transactions: txs,
	}
	return NewDatasetService(store.ModeDemo, st, ds, nil), st
}

func sample(id string) core.Transaction {
	return core.Transaction{
		ID: id, Type: core.Debit, Date: core.NewDate(2024, 3, 15),
		Amount: core.Money{Cents: 4200}, Category: "Food",
	}
}

func TestAddTransaction(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	added, err := svc.AddTransaction(ctx, sample("t1"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.Description != "Food" {
		t.Fatalf("expected defaulted description, got %q", added.Description)
	}
	if got := svc.Transactions(); len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("unexpected transactions %+v", got)
	}

	// The mutation is persisted.
	persisted, err := st.Load(ctx, store.ModeDemo)
	if err != nil {
		t.Fatalf("load after add: %v", err)
	}
	if len(persisted.Transactions) != 1 {
		t.Fatalf("expected persisted transaction, got %+v", persisted.Transactions)
	}
}

func TestAddTransactionGeneratesID(t *testing.T) {
	svc, _ := newTestService(t)
	tx := sample("")
	added, err := svc.AddTransaction(context.Background(), tx)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected a generated ID")
	}
}

func TestAddTransactionRejectsDuplicateID(t *testing.T) {
	svc, _ := newTestService(t, sample("t1"))
	if _, err := svc.AddTransaction(context.Background(), sample("t1")); !errors.Is(err, core.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAddTransactionRejectsInvalid(t *testing.T) {
	svc, _ := newTestService(t)
	bad := sample("t1")
	bad.Amount = core.Money{}
	if _, err := svc.AddTransaction(context.Background(), bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if got := svc.Transactions(); len(got) != 0 {
		t.Fatalf("rejected transaction must not be stored, got %+v", got)
	}
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, sample("t1").Normalize())

	updated := sample("t1")
	updated.Amount = core.Money{Cents: 9999}
	if err := svc.UpdateTransaction(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := svc.Transactions(); got[0].Amount.Cents != 9999 {
		t.Fatalf("unexpected amount %d", got[0].Amount.Cents)
	}

	missing := sample("nope")
	if err := svc.UpdateTransaction(ctx, missing); !errors.Is(err, core.ErrUnknownID) {
		t.Fatalf("expected ErrUnknownID, got %v", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, sample("t1").Normalize(), sample("t2").Normalize())

	if err := svc.DeleteTransaction(ctx, "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := svc.Transactions(); len(got) != 1 || got[0].ID != "t2" {
		t.Fatalf("unexpected transactions %+v", got)
	}
	if err := svc.DeleteTransaction(ctx, "t1"); !errors.Is(err, core.ErrUnknownID) {
		t.Fatalf("expected ErrUnknownID, got %v", err)
	}

	persisted, err := st.Load(ctx, store.ModeDemo)
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if len(persisted.Transactions) != 1 {
		t.Fatalf("expected persisted deletion, got %+v", persisted.Transactions)
	}
}

func TestReplaceDataset(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, sample("old").Normalize())

	next := core.Dataset{
		Settings:        core.Settings{Currency: "USD"},
		DebitCategories: core.CategoryList{{Name: "Rent", Color: "#ef4444"}},
		Transactions:    []core.Transaction{sample("new").Normalize()},
	}
	if err := svc.ReplaceDataset(ctx, next); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := svc.Transactions(); len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("unexpected transactions %+v", got)
	}
	if got := svc.Settings(); got.Currency != "USD" {
		t.Fatalf("unexpected settings %+v", got)
	}
}

func TestReplaceDatasetRejectsBadColor(t *testing.T) {
	svc, _ := newTestService(t)
	bad := core.Dataset{
		CreditCategories: core.CategoryList{{Name: "Salary", Color: "green"}},
		Transactions:     []core.Transaction{},
	}
	if err := svc.ReplaceDataset(context.Background(), bad); !errors.Is(err, core.ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
}

func TestOnChangeHook(t *testing.T) {
	svc, _ := newTestService(t)
	fired := 0
	svc.OnChange(func() { fired++ })

	if _, err := svc.AddTransaction(context.Background(), sample("t1")); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteTransaction(context.Background(), "t1"); err != nil {
		t.Fatal(err)
	}
	if fired != 2 {
		t.Fatalf("expected 2 change notifications, got %d", fired)
	}
}

func TestDatasetReturnsCopy(t *testing.T) {
	svc, _ := newTestService(t, sample("t1").Normalize())
	cp := svc.Dataset()
	cp.Transactions[0].Category = "tampered"
	if got := svc.Transactions(); got[0].Category != "Food" {
		t.Fatal("Dataset must return an isolated copy")
	}
}

func TestSaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "dataset.json")
	ds := core.Dataset{
		Settings:     core.Settings{Currency: "EUR"},
		Transactions: []core.Transaction{sample("t1").Normalize()},
	}
	if err := SaveToFile(ds, path); err != nil {
		t.Fatalf("save to file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !json.Valid(data) {
		t.Fatal("written file is not valid JSON")
	}
	got, err := core.DecodeDataset(data)
	if err != nil {
		t.Fatalf("decode written file: %v", err)
	}
	if len(got.Transactions) != 1 || got.Transactions[0].ID != "t1" {
		t.Fatalf("unexpected file contents %+v", got.Transactions)
	}
}
