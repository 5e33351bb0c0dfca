// Package provision resolves the single authoritative dataset at
// startup: the persisted copy when one exists, otherwise a seed. The
// seed is persisted right away so re-resolution is unnecessary.
package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/seed"
	"fintrack/internal/store"
)

// SeedFetcher is the optional remote seed source for real mode.
type SeedFetcher interface {
	Fetch(ctx context.Context) (core.Dataset, error)
}

// Resolver picks the authoritative dataset for a mode. The persisted
// copy always wins; seeds only initialize an empty namespace.
type Resolver struct {
	store  store.Store
	remote SeedFetcher
}

func NewResolver(st store.Store, remote SeedFetcher) *Resolver {
	return &Resolver{store: st, remote: remote}
}

// Resolve returns the dataset for the mode. Partial persisted copies
// are completed field by field from the mode's seed defaults rather
// than rejected.
func (r *Resolver) Resolve(ctx context.Context, mode store.Mode) (core.Dataset, error) {
	if !mode.IsValid() {
		return core.Dataset{}, fmt.Errorf("resolve dataset: invalid mode %q", mode)
	}

	stored, err := r.store.Load(ctx, mode)
	switch {
	case err == nil:
		defaults, derr := r.defaultsFor(mode)
		if derr != nil {
			return core.Dataset{}, derr
		}
		return applyDefaults(stored, defaults), nil
	case errors.Is(err, store.ErrNotFound):
		// fall through to seeding
	default:
		// Store trouble is never fatal; continue with the seed and
		// keep the session in memory.
		slog.WarnContext(ctx, "Dataset load failed, falling back to seed",
			"mode", mode, "error", err)
	}

	if mode == store.ModeDemo {
		return r.seedDemo(ctx)
	}
	return r.seedReal(ctx)
}

func (r *Resolver) seedDemo(ctx context.Context) (core.Dataset, error) {
	ds, err := seed.Demo()
	if err != nil {
		return core.Dataset{}, fmt.Errorf("resolve dataset: %w", err)
	}
	if err := r.store.Save(ctx, store.ModeDemo, ds); err != nil {
		slog.WarnContext(ctx, "Failed to persist demo seed", "error", err)
	}
	return ds, nil
}

func (r *Resolver) seedReal(ctx context.Context) (core.Dataset, error) {
	if r.remote == nil {
		return seed.EmptyReal(), nil
	}

	fetched, err := r.remote.Fetch(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Remote seed unavailable, starting empty", "error", err)
		return seed.EmptyReal(), nil
	}

	ds := applyDefaults(fetched, seed.EmptyReal())
	if err := r.store.Save(ctx, store.ModeReal, ds); err != nil {
		slog.WarnContext(ctx, "Failed to persist remote seed", "error", err)
	}
	return ds, nil
}

func (r *Resolver) defaultsFor(mode store.Mode) (core.Dataset, error) {
	if mode == store.ModeDemo {
		ds, err := seed.Demo()
		if err != nil {
			return core.Dataset{}, fmt.Errorf("resolve dataset: %w", err)
		}
		return ds, nil
	}
	return seed.EmptyReal(), nil
}

// applyDefaults completes a partial dataset: missing settings and
// category lists fall back to the seed's; transactions are always the
// stored ones.
func applyDefaults(ds, defaults core.Dataset) core.Dataset {
	if ds.Settings == (core.Settings{}) {
		ds.Settings = defaults.Settings
	}
	if ds.CreditCategories == nil {
		ds.CreditCategories = defaults.CreditCategories
	}
	if ds.DebitCategories == nil {
		ds.DebitCategories = defaults.DebitCategories
	}
	if ds.Transactions == nil {
		ds.Transactions = []core.Transaction{}
	}
	return ds
}
