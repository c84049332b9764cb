// Package sqlite implements the SQLite storage engine for the tabvault
// store. It satisfies the tabstore.Handle capability surface and performs
// no internal locking: the serialized store is its only caller.
package sqlite

// Schema DDL. The database file persists across opens, so all statements
// are idempotent.
const (
	createClients = `CREATE TABLE IF NOT EXISTS clients (
    client_id TEXT PRIMARY KEY,
    client_name TEXT NOT NULL,
    device_type TEXT NOT NULL,
    is_local INTEGER NOT NULL DEFAULT 0,
    payload TEXT NOT NULL,
    last_modified INTEGER NOT NULL
);`

	// staged_clients holds records delivered for the next sync; they are
	// invisible to ReadAll until Sync promotes them into clients.
	createStagedClients = `CREATE TABLE IF NOT EXISTS staged_clients (
    client_id TEXT PRIMARY KEY,
    client_name TEXT NOT NULL,
    device_type TEXT NOT NULL,
    payload TEXT NOT NULL,
    last_modified INTEGER NOT NULL
);`

	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`
)

// schemaStatements lists all DDL executed on open, in order.
var schemaStatements = []string{
	createClients,
	createStagedClients,
	createMeta,
}

// Meta keys.
const (
	metaLocalClientID = "local_client_id"
	metaLastSync      = "last_sync"
)
