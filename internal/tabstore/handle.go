package tabstore

import "github.com/mesh-intelligence/tabvault/pkg/types"

// Handle is the capability surface the store requires of a storage engine.
// Implementations need no internal synchronization: the store guarantees
// single-goroutine invocation.
type Handle interface {
	// Sync pushes local tabs to and pulls remote tabs from the remote
	// service, authorized by the given unlock credentials.
	Sync(unlock types.UnlockInfo) error

	// Reset discards all synced remote state and sync bookkeeping,
	// preserving local tabs.
	Reset() error

	// ReplaceLocalTabs replaces the local client's stored tab records.
	ReplaceLocalTabs(recs []types.TabRecord) error

	// ReadAll returns the raw client bundles currently stored.
	ReadAll() ([]types.ClientRecord, error)

	// Close releases the underlying resources. The handle must not be
	// used afterwards.
	Close() error
}

// Opener constructs a fresh storage handle bound to the data directory in
// the given config.
type Opener func(cfg types.Config) (Handle, error)
