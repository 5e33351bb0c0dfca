// Package store defines the persistence boundary: a mode-keyed blob
// store for whole datasets. Implementations live in the subpackages;
// callers depend only on the Store interface so the engine and
// provisioning layers stay testable against the in-memory variant.
package store

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

const (
	// ModeDemo selects the bundled demo dataset namespace.
	ModeDemo Mode = "demo"
	// ModeReal selects the user's own dataset namespace.
	ModeReal Mode = "real"
)

// ErrNotFound reports that no usable dataset exists for the mode.
// Malformed persisted payloads surface as ErrNotFound too, so callers
// fall back to the seed instead of failing.
var ErrNotFound = errors.New("dataset not found")

// Mode is the dataset namespace ("demo" vs "real").
type Mode string

func (m Mode) String() string {
	return string(m)
}

// IsValid reports whether m names a known namespace.
func (m Mode) IsValid() bool {
	switch m {
	case ModeDemo, ModeReal:
		return true
	default:
		return false
	}
}

// Key returns the storage key for the mode's dataset blob.
func (m Mode) Key() string {
	return "finance-tracker-" + string(m)
}

// Store is the dataset blob store capability. Save replaces the whole
// dataset; there are no partial writes.
type Store interface {
	Load(ctx context.Context, mode Mode) (core.Dataset, error)
	Save(ctx context.Context, mode Mode, ds core.Dataset) error
	Clear(ctx context.Context, mode Mode) error
}
