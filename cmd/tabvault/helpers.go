// Shared helpers for tabvault CLI commands.
package main

import (
	"fmt"

	"github.com/mesh-intelligence/tabvault/internal/sqlite"
	"github.com/mesh-intelligence/tabvault/internal/tabstore"
	"github.com/mesh-intelligence/tabvault/pkg/types"
)

// sqliteOpener adapts the engine constructor to the store's Opener shape.
func sqliteOpener(cfg types.Config) (tabstore.Handle, error) {
	return sqlite.Open(cfg)
}

// openStore resolves the data directory and returns an opened store. The
// caller must defer store.Shutdown().
func openStore() (*tabstore.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	store := tabstore.New(cfg, sqliteOpener, logger)
	if err := store.OpenIfClosed(); err != nil {
		_ = store.Shutdown()
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}
