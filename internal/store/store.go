// Package store provides the key-value persistence contract the record layer
// is built on. Values are whole-collection JSON blobs under fixed keys; there
// are no transactions and no partial updates, callers read-modify-write and
// the last write wins.
package store

import (
	"context"
	"errors"
)

// Fixed keys for the persisted collections.
const (
	KeyVehicles     = "autocare_vehicles"
	KeyMaintenances = "autocare_maintenances"
	KeyExpenses     = "autocare_expenses"
	KeyReminders    = "autocare_reminders"
	KeySettings     = "autocare_settings"

	// Ad frequency-gating state, kept out of the record collections.
	KeyAdActionCounter = "autocare_ads_action_counter"
	KeyAdLastShown     = "autocare_ads_last_interstitial"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Store is the device storage contract. Implementations must tolerate
// concurrent writers only in the trivial sense: no corruption, last write
// wins, no merging.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the given keys. Missing keys are not an error.
	Remove(ctx context.Context, keys ...string) error

	// Close releases backend resources.
	Close() error
}

// CollectionKeys lists the record-collection keys, in the order used by
// clear-all operations. Settings are intentionally excluded, matching the
// original reset behavior.
func CollectionKeys() []string {
	return []string{KeyVehicles, KeyMaintenances, KeyExpenses, KeyReminders}
}
