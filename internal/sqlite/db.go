package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tabvault/internal/tabstore"
	"github.com/mesh-intelligence/tabvault/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "tabs.db"

// Name and device type recorded for the local client row.
const (
	localClientName = "local"
	localDeviceType = "desktop"
)

// Compile-time interface check: DB must satisfy the store's capability
// surface.
var _ tabstore.Handle = (*DB)(nil)

// DB is a live storage handle bound to one data directory. It is not safe
// for concurrent use; the serialized store guarantees single-goroutine
// access.
type DB struct {
	db      *sql.DB
	localID string
}

// Open creates the data directory if needed, opens (or creates) the
// database file, applies the schema, and ensures a local client row exists.
// The local client identifier is generated once (UUID v7) and persisted in
// the meta table.
func Open(cfg types.Config) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}

	d := &DB{db: db}
	if err := d.ensureLocalClient(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the database connection. The handle must not be used
// afterwards.
func (d *DB) Close() error {
	return d.db.Close()
}

// LocalClientID returns the persistent identifier of the local client.
func (d *DB) LocalClientID() string {
	return d.localID
}

// ensureLocalClient loads the local client id from meta, generating and
// persisting one on first open, and guarantees a clients row for it.
func (d *DB) ensureLocalClient() error {
	id, err := d.getMeta(metaLocalClientID)
	if err != nil {
		return err
	}
	if id == "" {
		newID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating local client id: %w", err)
		}
		id = newID.String()
		if err := d.setMeta(metaLocalClientID, id); err != nil {
			return err
		}
	}
	d.localID = id

	_, err = d.db.Exec(
		`INSERT INTO clients (client_id, client_name, device_type, is_local, payload, last_modified)
         VALUES (?, ?, ?, 1, '[]', 0)
         ON CONFLICT(client_id) DO NOTHING`,
		id, localClientName, localDeviceType,
	)
	if err != nil {
		return fmt.Errorf("ensuring local client row: %w", err)
	}
	return nil
}

// getMeta returns the value for key, or "" when the key is absent.
func (d *DB) getMeta(key string) (string, error) {
	var value string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading meta %q: %w", key, err)
	}
	return value, nil
}

func (d *DB) setMeta(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing meta %q: %w", key, err)
	}
	return nil
}
