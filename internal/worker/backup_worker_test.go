package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/store"
	"fintrack/internal/store/memory"
)

func seedStore(t *testing.T, mode store.Mode, txs ...core.Transaction) *memory.Store {
	t.Helper()
	st := memory.New()
	ds := core.Dataset{
		Settings:     core.Settings{Currency: "EUR"},
		Transactions: txs,
	}
	if err := st.Save(context.Background(), mode, ds); err != nil {
		t.Fatal(err)
	}
	return st
}

func sampleTx(id string, cents int64) core.Transaction {
	return core.Transaction{
		ID: id, Type: core.Debit, Date: core.NewDate(2024, 2, 1),
		Amount: core.Money{Cents: cents}, Category: "Food", Description: "Food",
	}
}

func snapshotNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestBackupWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	st := seedStore(t, store.ModeDemo, sampleTx("t1", 100))
	w := NewBackupWorker(st, nil, dir)

	if err := w.Backup(context.Background(), store.ModeDemo); err != nil {
		t.Fatalf("backup: %v", err)
	}

	names := snapshotNames(t, dir)
	if len(names) != 2 {
		t.Fatalf("expected timestamped + latest snapshot, got %v", names)
	}
	latest := filepath.Join(dir, "demo-latest.json")
	data, err := os.ReadFile(latest)
	if err != nil {
		t.Fatalf("read latest: %v", err)
	}
	ds, err := core.DecodeDataset(data)
	if err != nil {
		t.Fatalf("snapshot must decode: %v", err)
	}
	if len(ds.Transactions) != 1 || ds.Transactions[0].ID != "t1" {
		t.Fatalf("unexpected snapshot contents %+v", ds.Transactions)
	}
}

func TestBackupSkipsUnchangedDataset(t *testing.T) {
	dir := t.TempDir()
	st := seedStore(t, store.ModeDemo, sampleTx("t1", 100))
	w := NewBackupWorker(st, nil, dir)
	ctx := context.Background()

	if err := w.Backup(ctx, store.ModeDemo); err != nil {
		t.Fatal(err)
	}
	before := snapshotNames(t, dir)

	// Nothing changed, so the second pass is a no-op.
	if err := w.Backup(ctx, store.ModeDemo); err != nil {
		t.Fatal(err)
	}
	after := snapshotNames(t, dir)
	if len(after) != len(before) {
		t.Fatalf("expected no new snapshots, got %v", after)
	}
}

func TestBackupMissingDataset(t *testing.T) {
	w := NewBackupWorker(memory.New(), nil, t.TempDir())
	err := w.Backup(context.Background(), store.ModeReal)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHandleDatasetChangedSkipsStaleRevisions(t *testing.T) {
	dir := t.TempDir()
	st := seedStore(t, store.ModeDemo, sampleTx("t1", 100))
	w := NewBackupWorker(st, nil, dir)
	ctx := context.Background()

	if err := w.HandleDatasetChanged(ctx, amqp.NewDatasetChangedMessage("demo", 5, 1)); err != nil {
		t.Fatal(err)
	}

	// Grow the dataset but deliver an older revision: the stale event
	// must not trigger another backup.
	ds, _ := st.Load(ctx, store.ModeDemo)
	ds.Transactions = append(ds.Transactions, sampleTx("t2", 200))
	if err := st.Save(ctx, store.ModeDemo, ds); err != nil {
		t.Fatal(err)
	}
	before := snapshotNames(t, dir)
	if err := w.HandleDatasetChanged(ctx, amqp.NewDatasetChangedMessage("demo", 3, 2)); err != nil {
		t.Fatal(err)
	}
	if after := snapshotNames(t, dir); len(after) != len(before) {
		t.Fatalf("stale event wrote a snapshot: %v", after)
	}

	// The newer revision goes through.
	if err := w.HandleDatasetChanged(ctx, amqp.NewDatasetChangedMessage("demo", 6, 2)); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, name := range snapshotNames(t, dir) {
		if strings.HasPrefix(name, "demo-") && name != "demo-latest.json" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a timestamped snapshot after the newer revision")
	}
}
